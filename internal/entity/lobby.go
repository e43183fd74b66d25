package entity

import "sync"

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	DifficultyEasy = "easy"
	DifficultyHard = "hard"

	// BotPlayerID is the sentinel member key reserved for the AI opponent.
	BotPlayerID = "ai"
	BotNickname = "CPU 🤖"

	DefaultNicknameX = "Player X"
	DefaultNicknameO = "Player O"
)

// Lobby is one active game session, addressed by a short code. The board,
// turn state and membership maps are owned exclusively by the lobby and must
// only be touched while the lobby is locked.
type Lobby struct {
	mu sync.Mutex

	Code       string
	Board      [9]string
	Turn       string
	Winner     string
	Players    map[string]string // player ID -> assigned mark
	Nicknames  map[string]string // player ID -> display name
	IsBot      bool
	Difficulty string
}

func NewLobby(code, ownerID, nickname string) *Lobby {
	if nickname == "" {
		nickname = DefaultNicknameX
	}

	return &Lobby{
		Code:      code,
		Turn:      PlayerX,
		Players:   map[string]string{ownerID: PlayerX},
		Nicknames: map[string]string{ownerID: nickname},
	}
}

func NewBotLobby(code, ownerID, nickname, difficulty string) *Lobby {
	lobby := NewLobby(code, ownerID, nickname)

	lobby.IsBot = true
	lobby.Difficulty = difficulty
	lobby.Players[BotPlayerID] = PlayerO
	lobby.Nicknames[BotPlayerID] = BotNickname

	return lobby
}

func (that *Lobby) Lock()   { that.mu.Lock() }
func (that *Lobby) Unlock() { that.mu.Unlock() }

// MarkOf returns the mark assigned to the given player, if any.
func (that *Lobby) MarkOf(playerID string) (string, bool) {
	mark, ok := that.Players[playerID]
	return mark, ok
}

func (that *Lobby) MemberCount() int {
	return len(that.Players)
}

// NicknamesByRole maps each assigned mark to the display name of its owner.
func (that *Lobby) NicknamesByRole() map[string]string {
	byRole := make(map[string]string, len(that.Players))
	for id, mark := range that.Players {
		byRole[mark] = that.Nicknames[id]
	}

	return byRole
}

// Reset returns the lobby to a fresh game: empty board, X to move, no winner.
// Membership is untouched.
func (that *Lobby) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
