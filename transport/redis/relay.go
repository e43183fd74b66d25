package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-lobby/pkg"
)

const channelPrefix = "lobby.events."

type localHub interface {
	JoinRoom(code, playerID string)
	LeaveRoom(code, playerID string)
	ToPlayer(playerID, event string, payload any)
	ToLobby(code, event string, payload any)
	ToLobbyExcept(code, exceptID, event string, payload any)
}

// envelope is the wire form of a room broadcast on the relay channel. Origin
// lets each process drop its own messages on replay.
type envelope struct {
	Origin  string          `json:"origin"`
	Code    string          `json:"code"`
	Except  string          `json:"except,omitempty"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Relay decorates the local hub: every room broadcast is also published on a
// per-lobby Redis channel, and broadcasts published by other processes are
// replayed to local room members. It implements usecase.Broadcaster.
type Relay struct {
	logger *slog.Logger
	client *redis.Client
	hub    localHub
	origin string

	ctx context.Context
}

func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func NewRelay(logger *slog.Logger, client *redis.Client, hub localHub) *Relay {
	return &Relay{
		logger: logger,
		client: client,
		hub:    hub,
		origin: pkg.GenerateNewSessionID(),
		ctx:    context.Background(),
	}
}

// Start runs the subscriber loop until the context is canceled.
func (that *Relay) Start(ctx context.Context) {
	that.ctx = ctx

	pubsub := that.client.PSubscribe(ctx, channelPrefix+"*")

	go func() {
		<-ctx.Done()

		if err := pubsub.Close(); err != nil {
			that.logger.Error("failed to close pubsub", "error", err)
		}
	}()

	go that.replayLoop(pubsub)
}

func (that *Relay) replayLoop(pubsub *redis.PubSub) {
	log := that.logger.With("method", "replayLoop")

	for msg := range pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Error("failed to unmarshal relayed event", "error", err)
			continue
		}

		if env.Origin == that.origin {
			continue
		}

		if env.Except != "" {
			that.hub.ToLobbyExcept(env.Code, env.Except, env.Event, env.Payload)
			continue
		}

		that.hub.ToLobby(env.Code, env.Event, env.Payload)
	}
}

func (that *Relay) JoinRoom(code, playerID string) {
	that.hub.JoinRoom(code, playerID)
}

func (that *Relay) LeaveRoom(code, playerID string) {
	that.hub.LeaveRoom(code, playerID)
}

func (that *Relay) ToPlayer(playerID, event string, payload any) {
	that.hub.ToPlayer(playerID, event, payload)
}

func (that *Relay) ToLobby(code, event string, payload any) {
	that.hub.ToLobby(code, event, payload)
	that.publish(code, "", event, payload)
}

func (that *Relay) ToLobbyExcept(code, exceptID, event string, payload any) {
	that.hub.ToLobbyExcept(code, exceptID, event, payload)
	that.publish(code, exceptID, event, payload)
}

func (that *Relay) publish(code, exceptID, event string, payload any) {
	log := that.logger.With("method", "publish", "event", event, "code", code)

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	body, err := json.Marshal(envelope{
		Origin:  that.origin,
		Code:    code,
		Except:  exceptID,
		Event:   event,
		Payload: raw,
	})
	if err != nil {
		log.Error("failed to marshal envelope", "error", err)
		return
	}

	if err = that.client.Publish(that.ctx, channelFor(code), body).Err(); err != nil {
		log.Error("failed to publish event", "error", err)
	}
}

func channelFor(code string) string {
	return channelPrefix + strings.ToUpper(code)
}
