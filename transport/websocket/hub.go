package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// client is one connected session. Writes are serialized by the client's own
// mutex; gorilla connections allow only one concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: event, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Hub tracks connected clients and the room (lobby code) each belongs to,
// and fans events out to a single client or a whole room. It implements
// usecase.Broadcaster.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, id)
	for code, members := range that.rooms {
		delete(members, id)
		if len(members) == 0 {
			delete(that.rooms, code)
		}
	}
}

func (that *Hub) JoinRoom(code, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	c, ok := that.clients[playerID]
	if !ok {
		return
	}

	members, ok := that.rooms[code]
	if !ok {
		members = make(map[string]*client)
		that.rooms[code] = members
	}

	members[playerID] = c
}

func (that *Hub) LeaveRoom(code, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	members, ok := that.rooms[code]
	if !ok {
		return
	}

	delete(members, playerID)
	if len(members) == 0 {
		delete(that.rooms, code)
	}
}

func (that *Hub) ToPlayer(playerID, event string, payload any) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	if err := c.send(event, payload); err != nil {
		that.logger.Error("failed to send event", "event", event, "playerID", playerID, "error", err)
	}
}

func (that *Hub) ToLobby(code, event string, payload any) {
	that.deliver(code, "", event, payload)
}

func (that *Hub) ToLobbyExcept(code, exceptID, event string, payload any) {
	that.deliver(code, exceptID, event, payload)
}

func (that *Hub) deliver(code, exceptID, event string, payload any) {
	that.mu.RLock()
	recipients := make([]*client, 0, len(that.rooms[code]))
	for id, c := range that.rooms[code] {
		if id == exceptID {
			continue
		}
		recipients = append(recipients, c)
	}
	that.mu.RUnlock()

	for _, c := range recipients {
		if err := c.send(event, payload); err != nil {
			that.logger.Error("failed to send event", "event", event, "playerID", c.id, "error", err)
		}
	}
}
