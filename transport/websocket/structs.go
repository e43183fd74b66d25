package websocket

import "encoding/json"

// Message is the wire envelope in both directions: a named event and its
// payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateLobbyRequest struct {
	Nickname string `json:"nickname"`
}

type PlayBotRequest struct {
	Nickname   string `json:"nickname"`
	Difficulty string `json:"difficulty"`
}

type JoinLobbyRequest struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
}

// MoveRequest carries Index as a pointer so a missing or non-numeric index is
// rejected at the boundary instead of defaulting to cell 0.
type MoveRequest struct {
	Code  string `json:"code"`
	Index *int   `json:"index"`
}

type LobbyRequest struct {
	Code string `json:"code"`
}

type ChatRequest struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ReactionRequest struct {
	Code  string `json:"code"`
	Emoji string `json:"emoji"`
}

// AckPayload answers create_lobby, play_ai and join_lobby on the sending
// connection.
type AckPayload struct {
	Code      string            `json:"code,omitempty"`
	Role      string            `json:"role,omitempty"`
	Nicknames map[string]string `json:"nicknames,omitempty"`
	Error     string            `json:"error,omitempty"`
}
