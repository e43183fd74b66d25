package apperror

import "errors"

var (
	ErrLobbyNotFound    = errors.New("Lobby not found")
	ErrLobbyFull        = errors.New("Lobby is full")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNoAvailableMoves = errors.New("no available moves")
)
