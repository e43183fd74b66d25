package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/pkg"
)

type gameManager interface {
	CreateLobby(playerID, nickname string) string
	PlayWithBot(playerID, nickname, difficulty string) (string, map[string]string)
	JoinLobby(code, playerID, nickname string) (string, error)
	MakeTurn(code, playerID string, cell int)
	ForfeitTurn(code, playerID string)
	Reset(code string)
	SendChat(code, playerID, message string)
	SendReaction(code, playerID, emoji string)
	RemovePlayer(playerID string)
}

type Server struct {
	logger *slog.Logger
	game   gameManager
	hub    *Hub

	upgrader websocket.Upgrader
	handlers map[string]func(c *client, payload json.RawMessage) error
}

func New(logger *slog.Logger, game gameManager, hub *Hub) *Server {
	server := &Server{
		logger: logger,
		game:   game,
		hub:    hub,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(*client, json.RawMessage) error),
	}

	server.handlers["create_lobby"] = server.handleCreateLobby
	server.handlers["play_ai"] = server.handlePlayWithBot
	server.handlers["join_lobby"] = server.handleJoinLobby
	server.handlers["make_move"] = server.handleMakeMove
	server.handlers["turn_timeout"] = server.handleTurnTimeout
	server.handlers["reset_game"] = server.handleResetGame
	server.handlers["send_chat"] = server.handleSendChat
	server.handlers["send_reaction"] = server.handleSendReaction

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections are long-lived
		IdleTimeout: 0,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection upgrades the request, assigns the connection its session
// handle and runs the read loop until the client goes away. Disconnects take
// the same cleanup path as an explicit leave.
func (that *Server) handleConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   pkg.GenerateNewSessionID(),
		conn: conn,
	}

	that.hub.register(c)
	log.Info("WebSocket connection established", "playerID", c.id)

	defer func() {
		that.game.RemovePlayer(c.id)
		that.hub.unregister(c.id)
		_ = conn.Close()
		log.Info("player disconnected", "playerID", c.id)
	}()

	that.readMessages(c)
}

// readMessages - processes messages from the client.
func (that *Server) readMessages(c *client) {
	log := that.logger.With("method", "readMessages", "playerID", c.id)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(c, message.Payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
