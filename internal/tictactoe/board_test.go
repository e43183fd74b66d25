package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWinner(t *testing.T) {
	t.Run("Returns X when X holds a row", func(t *testing.T) {
		// Given: a board where player X has the top row
		board := [9]string{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, "",
			"", "", "",
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: X should be declared the winner
		require.Equal(t, entity.PlayerX, winner)
	})

	t.Run("Returns O when O holds a column", func(t *testing.T) {
		// Given: a board where player O has the left column
		board := [9]string{
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, "",
			entity.PlayerO, "", "",
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: O should be declared the winner
		require.Equal(t, entity.PlayerO, winner)
	})

	t.Run("Returns X when X holds a diagonal", func(t *testing.T) {
		// Given: a board where player X has the main diagonal
		board := [9]string{
			entity.PlayerX, entity.PlayerO, "",
			entity.PlayerO, entity.PlayerX, "",
			"", "", entity.PlayerX,
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: X should be declared the winner
		require.Equal(t, entity.PlayerX, winner)
	})

	t.Run("Returns X when X holds the anti-diagonal", func(t *testing.T) {
		// Given: a board where player X has the anti-diagonal
		board := [9]string{
			entity.PlayerO, entity.PlayerO, entity.PlayerX,
			"", entity.PlayerX, "",
			entity.PlayerX, "", "",
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: X should be declared the winner
		require.Equal(t, entity.PlayerX, winner)
	})

	t.Run("Returns empty when no triple is uniform", func(t *testing.T) {
		// Given: an ongoing board with no winning triple
		board := [9]string{
			entity.PlayerX, entity.PlayerO, "",
			"", entity.PlayerX, "",
			"", "", entity.PlayerO,
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: no winner should be reported
		assert.Equal(t, entity.EmptyCell, winner)
	})

	t.Run("Returns empty on a drawn board", func(t *testing.T) {
		// Given: a full board with no winner
		board := [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}

		// When: checking for a winner
		winner := CheckWinner(board)

		// Then: no winner should be reported
		assert.Equal(t, entity.EmptyCell, winner)
	})
}

func TestIsBoardFull(t *testing.T) {
	t.Run("Returns false for an empty board", func(t *testing.T) {
		// Given: a fresh board
		board := [9]string{}

		// When: checking fullness
		full := IsBoardFull(board)

		// Then: the board is not full
		assert.False(t, full)
	})

	t.Run("Returns false with a single empty cell", func(t *testing.T) {
		// Given: a board with one empty cell
		board := [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, "",
		}

		// When: checking fullness
		full := IsBoardFull(board)

		// Then: the board is not full
		assert.False(t, full)
	})

	t.Run("Returns true when every cell is marked", func(t *testing.T) {
		// Given: a completely marked board
		board := [9]string{
			entity.PlayerX, entity.PlayerO, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerX, entity.PlayerO,
		}

		// When: checking fullness
		full := IsBoardFull(board)

		// Then: the board is full
		assert.True(t, full)
	})
}
