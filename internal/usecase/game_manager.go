package usecase

import (
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/tictactoe"
)

type lobbyRegistry interface {
	Create(ownerID, nickname string) *entity.Lobby
	CreateBotLobby(ownerID, nickname, difficulty string) *entity.Lobby
	Join(code, playerID, nickname string) (*entity.Lobby, error)
	GetByCode(code string) (*entity.Lobby, error)
	Remove(playerID string) (*repository.Removal, bool)
}

// Broadcaster delivers events to connected clients and tracks which room a
// connection belongs to. The WebSocket hub implements it directly; the Redis
// relay wraps it for cross-process fan-out.
type Broadcaster interface {
	JoinRoom(code, playerID string)
	LeaveRoom(code, playerID string)
	ToPlayer(playerID, event string, payload any)
	ToLobby(code, event string, payload any)
	ToLobbyExcept(code, exceptID, event string, payload any)
}

// GameManager is the authoritative session state machine. Every mutating
// operation serializes on the target lobby's own lock; invalid moves and
// stale client messages degrade to silent no-ops.
type GameManager struct {
	logger      *slog.Logger
	lobbies     lobbyRegistry
	broadcaster Broadcaster
	botDelay    time.Duration
}

func NewGameManager(logger *slog.Logger, lobbies lobbyRegistry, broadcaster Broadcaster, botDelay time.Duration) *GameManager {
	return &GameManager{
		logger:      logger,
		lobbies:     lobbies,
		broadcaster: broadcaster,
		botDelay:    botDelay,
	}
}

// CreateLobby allocates a fresh lobby owned by the player as X and returns
// its code. The player is first detached from any lobby they were in.
func (that *GameManager) CreateLobby(playerID, nickname string) string {
	log := that.logger.With("method", "CreateLobby", "playerID", playerID)

	that.RemovePlayer(playerID)

	lobby := that.lobbies.Create(playerID, nickname)
	that.broadcaster.JoinRoom(lobby.Code, playerID)

	log.Info("lobby created", "code", lobby.Code)

	return lobby.Code
}

// PlayWithBot creates a single-player lobby with the AI seated as O and
// returns the code plus the role-to-nickname map for the ack payload.
func (that *GameManager) PlayWithBot(playerID, nickname, difficulty string) (string, map[string]string) {
	log := that.logger.With("method", "PlayWithBot", "playerID", playerID)

	that.RemovePlayer(playerID)

	if difficulty != entity.DifficultyEasy {
		difficulty = entity.DifficultyHard
	}

	lobby := that.lobbies.CreateBotLobby(playerID, nickname, difficulty)
	that.broadcaster.JoinRoom(lobby.Code, playerID)

	lobby.Lock()
	nicknames := lobby.NicknamesByRole()
	lobby.Unlock()

	log.Info("bot lobby created", "code", lobby.Code, "difficulty", difficulty)

	return lobby.Code, nicknames
}

// JoinLobby seats the player as O, sends them the game_start snapshot and
// tells the rest of the room an opponent arrived. Returns the normalized
// code, or ErrLobbyNotFound / ErrLobbyFull.
func (that *GameManager) JoinLobby(code, playerID, nickname string) (string, error) {
	log := that.logger.With("method", "JoinLobby", "playerID", playerID)

	that.RemovePlayer(playerID)

	lobby, err := that.lobbies.Join(code, playerID, nickname)
	if err != nil {
		return "", err
	}

	that.broadcaster.JoinRoom(lobby.Code, playerID)

	lobby.Lock()
	start := GameStart{
		Board:     lobby.Board,
		Turn:      lobby.Turn,
		Role:      entity.PlayerO,
		Nicknames: lobby.NicknamesByRole(),
	}
	lobby.Unlock()

	that.broadcaster.ToPlayer(playerID, EventGameStart, start)
	that.broadcaster.ToLobbyExcept(lobby.Code, playerID, EventOpponentJoined, OpponentJoined{
		Role:      entity.PlayerO,
		Nicknames: start.Nicknames,
	})

	log.Info("player joined lobby", "code", lobby.Code)

	return lobby.Code, nil
}

// MakeTurn applies a move when the sender owns the current turn, the game is
// not terminal and the cell is free; anything else is ignored without an
// event. A bot reply is scheduled after the realism delay when it is now the
// AI's turn.
func (that *GameManager) MakeTurn(code, playerID string, cell int) {
	log := that.logger.With("method", "MakeTurn", "code", code)

	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		return
	}

	lobby.Lock()

	role, err := validateMove(lobby, playerID, cell)
	if err != nil {
		lobby.Unlock()
		log.Debug("move rejected", "playerID", playerID, "cell", cell, "error", err)
		return
	}

	update := that.applyMark(lobby, role, cell)

	botMark, seated := lobby.MarkOf(entity.BotPlayerID)
	scheduleBot := lobby.IsBot && seated && update.Winner == entity.EmptyCell && !update.Draw && lobby.Turn == botMark
	lobby.Unlock()

	that.broadcaster.ToLobby(lobby.Code, EventGameUpdate, update)

	if scheduleBot {
		time.AfterFunc(that.botDelay, func() {
			that.playBotTurn(lobby.Code)
		})
	}
}

// validateMove names why a move is rejected. Rejections are logged, never
// sent; a stale client resyncs from the next accepted game_update. Caller
// holds the lobby lock.
func validateMove(lobby *entity.Lobby, playerID string, cell int) (string, error) {
	role, ok := lobby.MarkOf(playerID)

	switch {
	case !ok || role != lobby.Turn:
		return "", apperror.ErrNotYourTurn
	case lobby.Winner != entity.EmptyCell:
		return "", apperror.ErrGameFinished
	case cell < 0 || cell >= len(lobby.Board):
		return "", apperror.ErrInvalidCell
	case lobby.Board[cell] != entity.EmptyCell:
		return "", apperror.ErrCellOccupied
	}

	return role, nil
}

// playBotTurn fires after the realism delay. The lobby is looked up again and
// the turn re-validated: a reset, a finished game or a torn-down lobby drops
// the move.
func (that *GameManager) playBotTurn(code string) {
	log := that.logger.With("method", "playBotTurn", "code", code)

	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		log.Debug("lobby gone before bot move")
		return
	}

	lobby.Lock()

	botMark, ok := lobby.MarkOf(entity.BotPlayerID)
	if !ok || !lobby.IsBot || lobby.Winner != entity.EmptyCell || lobby.Turn != botMark {
		lobby.Unlock()
		return
	}

	move := tictactoe.BestMove(lobby.Board, botMark, lobby.Difficulty)
	if move == tictactoe.NoMove {
		lobby.Unlock()
		log.Debug("bot move dropped", "error", apperror.ErrNoAvailableMoves)
		return
	}

	update := that.applyMark(lobby, botMark, move)
	lobby.Unlock()

	that.broadcaster.ToLobby(lobby.Code, EventGameUpdate, update)
}

// applyMark writes the mark, recomputes winner and draw, flips the turn and
// builds the resulting update. Caller holds the lobby lock.
func (that *GameManager) applyMark(lobby *entity.Lobby, mark string, cell int) GameUpdate {
	lobby.Board[cell] = mark

	winner := tictactoe.CheckWinner(lobby.Board)
	draw := tictactoe.IsBoardFull(lobby.Board) && winner == entity.EmptyCell

	if winner != entity.EmptyCell {
		lobby.Winner = winner
	}

	lobby.Turn = entity.ToggleMark(mark)

	return GameUpdate{
		Board:  lobby.Board,
		Turn:   lobby.Turn,
		Winner: winner,
		Draw:   draw,
	}
}

// ForfeitTurn hands the turn to the other player on a client-driven timeout.
// Multiplayer lobbies only; silent unless the caller owns the current turn
// and the game is still open.
func (that *GameManager) ForfeitTurn(code, playerID string) {
	log := that.logger.With("method", "ForfeitTurn", "code", code)

	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		return
	}

	lobby.Lock()

	if lobby.IsBot {
		lobby.Unlock()
		return
	}

	role, ok := lobby.MarkOf(playerID)
	if !ok || role != lobby.Turn || lobby.Winner != entity.EmptyCell {
		lobby.Unlock()
		return
	}

	lobby.Turn = entity.ToggleMark(role)
	update := GameUpdate{
		Board:   lobby.Board,
		Turn:    lobby.Turn,
		Timeout: true,
	}
	lobby.Unlock()

	log.Info("turn forfeited", "role", role)

	that.broadcaster.ToLobby(lobby.Code, EventGameUpdate, update)
}

// Reset clears the board and winner and gives the turn back to X. Allowed in
// any state.
func (that *GameManager) Reset(code string) {
	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		return
	}

	lobby.Lock()
	lobby.Reset()
	update := GameUpdate{
		Board: lobby.Board,
		Turn:  lobby.Turn,
	}
	lobby.Unlock()

	that.broadcaster.ToLobby(lobby.Code, EventGameUpdate, update)
}

// SendChat relays a chat line to the room, annotated with the sender's role
// and display name. Unknown senders are ignored.
func (that *GameManager) SendChat(code, playerID, message string) {
	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		return
	}

	lobby.Lock()
	role, ok := lobby.MarkOf(playerID)
	name := lobby.Nicknames[playerID]
	lobby.Unlock()

	if !ok {
		return
	}

	that.broadcaster.ToLobby(lobby.Code, EventNewChat, ChatMessage{
		Role:    role,
		Name:    name,
		Message: message,
	})
}

// SendReaction relays an emoji reaction to the room.
func (that *GameManager) SendReaction(code, playerID, emoji string) {
	lobby, err := that.lobbies.GetByCode(code)
	if err != nil {
		return
	}

	lobby.Lock()
	role, ok := lobby.MarkOf(playerID)
	lobby.Unlock()

	if !ok {
		return
	}

	that.broadcaster.ToLobby(lobby.Code, EventNewReaction, Reaction{
		Role:  role,
		Emoji: emoji,
	})
}

// RemovePlayer detaches the player from their lobby, tearing the lobby down
// when they were its last human member and naming the vacated role to anyone
// still seated. Disconnects and lobby switches share this path.
func (that *GameManager) RemovePlayer(playerID string) {
	log := that.logger.With("method", "RemovePlayer", "playerID", playerID)

	removal, ok := that.lobbies.Remove(playerID)
	if !ok {
		return
	}

	that.broadcaster.LeaveRoom(removal.Lobby.Code, playerID)

	if removal.Deleted {
		log.Info("lobby deleted, last player left", "code", removal.Lobby.Code)
		return
	}

	log.Info("player left lobby", "code", removal.Lobby.Code, "role", removal.Role)

	that.broadcaster.ToLobby(removal.Lobby.Code, EventPlayerLeft, PlayerLeft{Role: removal.Role})
}
