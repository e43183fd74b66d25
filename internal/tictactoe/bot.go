package tictactoe

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// NoMove is returned when the board holds no empty cell.
const NoMove = -1

// BestMove picks the bot's next cell. Easy difficulty plays a uniformly
// random empty cell; any other difficulty runs a full minimax search and is
// deterministic for a given board, ties broken by lowest index.
func BestMove(board [9]string, botMark, difficulty string) int {
	if difficulty == entity.DifficultyEasy {
		return randomMove(board)
	}

	return minimaxMove(board, botMark)
}

func randomMove(board [9]string) int {
	availableCells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return NoMove
	}

	return availableCells[rand.Intn(len(availableCells))] //nolint: gosec // it's ok
}

func minimaxMove(board [9]string, botMark string) int {
	opponent := entity.ToggleMark(botMark)

	bestScore := -2
	move := NoMove

	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = botMark
		score := minimax(board, botMark, opponent, false)
		board[i] = entity.EmptyCell

		// strict comparison keeps the lowest-indexed move among equals
		if score > bestScore {
			bestScore = score
			move = i
		}
	}

	return move
}

// minimax scores a position from the bot's point of view: +1 when the bot
// wins, -1 when the opponent wins, 0 for a completed draw. The board is a
// value copy per call, so moves need no undo across recursion.
func minimax(board [9]string, botMark, opponent string, maximizing bool) int {
	switch CheckWinner(board) {
	case botMark:
		return 1
	case opponent:
		return -1
	}

	if IsBoardFull(board) {
		return 0
	}

	if maximizing {
		bestScore := -2
		for i, cell := range board {
			if cell != entity.EmptyCell {
				continue
			}

			board[i] = botMark
			if score := minimax(board, botMark, opponent, false); score > bestScore {
				bestScore = score
			}
			board[i] = entity.EmptyCell
		}

		return bestScore
	}

	bestScore := 2
	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = opponent
		if score := minimax(board, botMark, opponent, true); score < bestScore {
			bestScore = score
		}
		board[i] = entity.EmptyCell
	}

	return bestScore
}
