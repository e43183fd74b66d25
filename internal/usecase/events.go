package usecase

// Server-pushed event names.
const (
	EventGameStart      = "game_start"
	EventOpponentJoined = "opponent_joined"
	EventPlayerLeft     = "player_left"
	EventGameUpdate     = "game_update"
	EventNewChat        = "new_chat"
	EventNewReaction    = "new_reaction"
)

// GameUpdate is broadcast to the whole lobby after every accepted move,
// forfeited turn and reset. Turn is flipped even on a terminal move; clients
// ignore it once winner or draw is set.
type GameUpdate struct {
	Board   [9]string `json:"board"`
	Turn    string    `json:"turn"`
	Winner  string    `json:"winner,omitempty"`
	Draw    bool      `json:"draw"`
	Timeout bool      `json:"timeout,omitempty"`
}

// GameStart goes to the joining client only.
type GameStart struct {
	Board     [9]string         `json:"board"`
	Turn      string            `json:"turn"`
	Role      string            `json:"role"`
	Nicknames map[string]string `json:"nicknames"`
}

// OpponentJoined goes to the room, excluding the joiner.
type OpponentJoined struct {
	Role      string            `json:"role"`
	Nicknames map[string]string `json:"nicknames"`
}

type PlayerLeft struct {
	Role string `json:"role"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type Reaction struct {
	Role  string `json:"role"`
	Emoji string `json:"emoji"`
}
