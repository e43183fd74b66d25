package redis

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/testing/suite"
)

type recordedEvent struct {
	scope    string
	code     string
	exceptID string
	event    string
	payload  any
}

// recordingHub stands in for the WebSocket hub behind a relay.
type recordingHub struct {
	mu   sync.Mutex
	seen []recordedEvent
}

func (that *recordingHub) JoinRoom(string, string)  {}
func (that *recordingHub) LeaveRoom(string, string) {}

func (that *recordingHub) ToPlayer(playerID, event string, payload any) {
	that.record(recordedEvent{scope: "player", code: playerID, event: event, payload: payload})
}

func (that *recordingHub) ToLobby(code, event string, payload any) {
	that.record(recordedEvent{scope: "lobby", code: code, event: event, payload: payload})
}

func (that *recordingHub) ToLobbyExcept(code, exceptID, event string, payload any) {
	that.record(recordedEvent{scope: "lobby-except", code: code, exceptID: exceptID, event: event, payload: payload})
}

func (that *recordingHub) record(ev recordedEvent) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.seen = append(that.seen, ev)
}

func (that *recordingHub) events() []recordedEvent {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]recordedEvent(nil), that.seen...)
}

func TestRelay_CrossProcessFanOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, s := suite.New(t)

	// Given: two relays on the same Redis, as if two server processes
	hubA := &recordingHub{}
	relayA := NewRelay(s.Logger, s.Redis, hubA)
	relayA.Start(ctx)

	clientB, err := NewClient(ctx, s.Addr)
	require.NoError(t, err)

	hubB := &recordingHub{}
	relayB := NewRelay(s.Logger, clientB, hubB)
	relayB.Start(ctx)

	// let both pattern subscriptions settle before publishing
	time.Sleep(time.Second)

	t.Run("Room broadcast reaches the other process", func(t *testing.T) {
		// When: process A broadcasts to a lobby
		relayA.ToLobby("ABC123", "game_update", map[string]string{"turn": "X"})

		// Then: process B replays it to its local hub
		require.Eventually(t, func() bool {
			return len(hubB.events()) == 1
		}, 5*time.Second, 50*time.Millisecond)

		replayed := hubB.events()[0]
		assert.Equal(t, "lobby", replayed.scope)
		assert.Equal(t, "ABC123", replayed.code)
		assert.Equal(t, "game_update", replayed.event)

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(replayed.payload.(json.RawMessage), &decoded))
		assert.Equal(t, map[string]string{"turn": "X"}, decoded)
	})

	t.Run("A relay never replays its own broadcast", func(t *testing.T) {
		// Then: process A delivered locally exactly once, no echo from Redis
		time.Sleep(500 * time.Millisecond)

		events := hubA.events()
		require.Len(t, events, 1)
		assert.Equal(t, "lobby", events[0].scope)
	})

	t.Run("Exclusions survive the relay hop", func(t *testing.T) {
		// When: process A broadcasts to everyone but one player
		relayA.ToLobbyExcept("ABC123", "player-1", "opponent_joined", map[string]string{"role": "O"})

		// Then: process B replays it with the exclusion intact
		require.Eventually(t, func() bool {
			return len(hubB.events()) == 2
		}, 5*time.Second, 50*time.Millisecond)

		replayed := hubB.events()[1]
		assert.Equal(t, "lobby-except", replayed.scope)
		assert.Equal(t, "player-1", replayed.exceptID)
	})

	t.Run("Direct messages stay local", func(t *testing.T) {
		// When: process A messages a single player
		relayA.ToPlayer("player-1", "game_start", map[string]string{"role": "O"})

		// Then: A's hub gets it and B never does
		require.Eventually(t, func() bool {
			for _, ev := range hubA.events() {
				if ev.scope == "player" {
					return true
				}
			}
			return false
		}, time.Second, 50*time.Millisecond)

		time.Sleep(500 * time.Millisecond)
		assert.Len(t, hubB.events(), 2)
	})
}
