package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// decode fills req from the raw payload. An absent payload is legal for
// events whose fields are all optional.
func decode(payload json.RawMessage, req any) error {
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

func (that *Server) handleCreateLobby(c *client, payload json.RawMessage) error {
	var req CreateLobbyRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	code := that.game.CreateLobby(c.id, req.Nickname)

	return c.send("create_lobby", AckPayload{Code: code, Role: entity.PlayerX})
}

func (that *Server) handlePlayWithBot(c *client, payload json.RawMessage) error {
	var req PlayBotRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	code, nicknames := that.game.PlayWithBot(c.id, req.Nickname, req.Difficulty)

	return c.send("play_ai", AckPayload{Code: code, Role: entity.PlayerX, Nicknames: nicknames})
}

func (that *Server) handleJoinLobby(c *client, payload json.RawMessage) error {
	var req JoinLobbyRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	code, err := that.game.JoinLobby(req.Code, c.id, req.Nickname)
	if err != nil {
		return c.send("join_lobby", AckPayload{Error: err.Error()})
	}

	return c.send("join_lobby", AckPayload{Code: code, Role: entity.PlayerO})
}

func (that *Server) handleMakeMove(c *client, payload json.RawMessage) error {
	var req MoveRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	if req.Code == "" || req.Index == nil {
		return nil
	}

	that.game.MakeTurn(req.Code, c.id, *req.Index)

	return nil
}

func (that *Server) handleTurnTimeout(c *client, payload json.RawMessage) error {
	var req LobbyRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	if req.Code == "" {
		return nil
	}

	that.game.ForfeitTurn(req.Code, c.id)

	return nil
}

func (that *Server) handleResetGame(c *client, payload json.RawMessage) error {
	var req LobbyRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	if req.Code == "" {
		return nil
	}

	that.game.Reset(req.Code)

	return nil
}

func (that *Server) handleSendChat(c *client, payload json.RawMessage) error {
	var req ChatRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	if req.Code == "" {
		return nil
	}

	that.game.SendChat(req.Code, c.id, req.Message)

	return nil
}

func (that *Server) handleSendReaction(c *client, payload json.RawMessage) error {
	var req ReactionRequest
	if err := decode(payload, &req); err != nil {
		return err
	}

	if req.Code == "" {
		return nil
	}

	that.game.SendReaction(req.Code, c.id, req.Emoji)

	return nil
}
