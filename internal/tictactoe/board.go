package tictactoe

import "github.com/rocketscienceinc/tictactoe-lobby/internal/entity"

// WinCombos are the 8 fixed triples checked for a win: rows, then columns,
// then diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CheckWinner returns the mark occupying the first uniform non-empty triple,
// or the empty string when no side has won.
func CheckWinner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
