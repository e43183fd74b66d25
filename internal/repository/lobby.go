package repository

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	maxLobbyMembers = 2
)

// Removal describes the outcome of taking a player out of their lobby.
type Removal struct {
	Lobby   *entity.Lobby
	Role    string
	Deleted bool
}

type LobbyRegistry interface {
	Create(ownerID, nickname string) *entity.Lobby
	CreateBotLobby(ownerID, nickname, difficulty string) *entity.Lobby
	Join(code, playerID, nickname string) (*entity.Lobby, error)
	GetByCode(code string) (*entity.Lobby, error)
	Remove(playerID string) (*Removal, bool)
}

type lobbyRegistry struct {
	mu      sync.RWMutex
	lobbies map[string]*entity.Lobby
}

func NewLobbyRegistry() LobbyRegistry {
	return &lobbyRegistry{
		lobbies: make(map[string]*entity.Lobby),
	}
}

func (that *lobbyRegistry) Create(ownerID, nickname string) *entity.Lobby {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.generateCode()
	lobby := entity.NewLobby(code, ownerID, nickname)
	that.lobbies[code] = lobby

	return lobby
}

func (that *lobbyRegistry) CreateBotLobby(ownerID, nickname, difficulty string) *entity.Lobby {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.generateCode()
	lobby := entity.NewBotLobby(code, ownerID, nickname, difficulty)
	that.lobbies[code] = lobby

	return lobby
}

func (that *lobbyRegistry) Join(code, playerID, nickname string) (*entity.Lobby, error) {
	lobby, err := that.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if nickname == "" {
		nickname = entity.DefaultNicknameO
	}

	lobby.Lock()
	defer lobby.Unlock()

	if lobby.MemberCount() >= maxLobbyMembers {
		return nil, fmt.Errorf("%w", apperror.ErrLobbyFull)
	}

	lobby.Players[playerID] = entity.PlayerO
	lobby.Nicknames[playerID] = nickname

	return lobby, nil
}

func (that *lobbyRegistry) GetByCode(code string) (*entity.Lobby, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	lobby, ok := that.lobbies[NormalizeCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w", apperror.ErrLobbyNotFound)
	}

	return lobby, nil
}

// Remove takes the player out of whichever lobby holds them. The lobby is
// deleted once its last human member is gone, which also covers bot lobbies:
// only the AI sentinel would remain.
func (that *lobbyRegistry) Remove(playerID string) (*Removal, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for code, lobby := range that.lobbies {
		lobby.Lock()

		role, ok := lobby.MarkOf(playerID)
		if !ok {
			lobby.Unlock()
			continue
		}

		delete(lobby.Players, playerID)
		delete(lobby.Nicknames, playerID)

		humansLeft := 0
		for id := range lobby.Players {
			if id != entity.BotPlayerID {
				humansLeft++
			}
		}
		lobby.Unlock()

		deleted := humansLeft == 0
		if deleted {
			delete(that.lobbies, code)
		}

		return &Removal{Lobby: lobby, Role: role, Deleted: deleted}, true
	}

	return nil, false
}

// generateCode draws 6-character codes until one is unused. Must be called
// with the registry write lock held.
func (that *lobbyRegistry) generateCode() string {
	for {
		chars := make([]byte, codeLength)
		for i := range chars {
			chars[i] = codeAlphabet[rand.Intn(len(codeAlphabet))] //nolint: gosec // it's ok
		}

		code := string(chars)
		if _, exists := that.lobbies[code]; !exists {
			return code
		}
	}
}

// NormalizeCode uppercases a lobby code; codes are case-insensitive on input.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
