package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
)

func TestChooseMove(t *testing.T) {
	t.Run("Picks among the empty cells only", func(t *testing.T) {
		// Given: a board with two empty cells left
		board := entity.Board{
			entity.MarkX, entity.MarkO, entity.MarkX,
			entity.MarkO, entity.EmptyCell, entity.MarkX,
			entity.MarkO, entity.EmptyCell, entity.MarkX,
		}

		// When: the strategy picks with each possible rng value
		first, firstY, err := ChooseMove(board, &scriptRng{picks: []int{0}})
		require.NoError(t, err)
		second, secondY, err := ChooseMove(board, &scriptRng{picks: []int{1}})
		require.NoError(t, err)

		// Then: every pick is one of the empty cells
		assert.Equal(t, [2]int{1, 1}, [2]int{first, firstY})
		assert.Equal(t, [2]int{2, 1}, [2]int{second, secondY})
	})

	t.Run("Covers every empty cell across the rng domain", func(t *testing.T) {
		// Given: a board with three empty cells
		board := entity.Board{
			entity.MarkX, entity.EmptyCell, entity.MarkO,
			entity.EmptyCell, entity.MarkX, entity.MarkO,
			entity.MarkX, entity.EmptyCell, entity.MarkO,
		}
		available := board.EmptyCells()

		// When: walking the whole rng domain
		chosen := make(map[int]bool)
		for i := range available {
			x, y, err := ChooseMove(board, &scriptRng{picks: []int{i}})
			require.NoError(t, err)
			chosen[x*3+y] = true
		}

		// Then: each empty cell is reachable exactly once per rng value
		assert.Len(t, chosen, len(available))
		for _, idx := range available {
			assert.True(t, chosen[idx], "cell %d never chosen", idx)
		}
	})

	t.Run("Fails with ErrNoAvailableMoves on a full board", func(t *testing.T) {
		// Given: a completely full board
		board := entity.Board{
			entity.MarkX, entity.MarkO, entity.MarkX,
			entity.MarkO, entity.MarkX, entity.MarkO,
			entity.MarkX, entity.MarkO, entity.MarkX,
		}

		// When: the strategy is asked for a move
		_, _, err := ChooseMove(board, &scriptRng{picks: []int{0}})

		// Then: the invariant violation is reported
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}
