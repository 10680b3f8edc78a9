package tictactoe

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func newSelector(self entity.Mark) *MoveSelector {
	return NewMoveSelector(self, rand.New(rand.NewPCG(1, 2)))
}

func TestMoveSelector_Terminal(t *testing.T) {
	difficulties := []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}

	t.Run("Returns NoMove when the board has a winner", func(t *testing.T) {
		// Given: a board X already won with free cells left
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		for _, difficulty := range difficulties {
			// When: the bot is asked for a move
			cell := newSelector(o).SelectMove(board, difficulty)

			// Then: no move is available
			assert.Equal(t, NoMove, cell, difficulty)
		}
	})

	t.Run("Returns NoMove on a tied board", func(t *testing.T) {
		// Given: a full board without a line
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		for _, difficulty := range difficulties {
			// When: the bot is asked for a move
			cell := newSelector(o).SelectMove(board, difficulty)

			// Then: no move is available
			assert.Equal(t, NoMove, cell, difficulty)
		}
	})
}

func TestMoveSelector_Easy(t *testing.T) {
	t.Run("Only picks empty cells", func(t *testing.T) {
		// Given: a board with three free cells
		board := entity.Board{
			x, o, e,
			o, x, e,
			x, e, o,
		}
		selector := newSelector(o)

		seen := map[int]bool{}
		for range 200 {
			// When: the bot picks a move at easy
			cell := selector.SelectMove(board, entity.DifficultyEasy)

			// Then: the cell is always free
			require.Contains(t, []int{2, 5, 7}, cell)
			seen[cell] = true
		}

		// Then: every free cell shows up eventually
		assert.Len(t, seen, 3)
	})
}

func TestMoveSelector_Medium(t *testing.T) {
	t.Run("Completes its own row before blocking", func(t *testing.T) {
		// Given: both X and O have two in a row
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		// When: O picks a move at medium
		cell := newSelector(o).SelectMove(board, entity.DifficultyMedium)

		// Then: O completes the middle row
		assert.Equal(t, 5, cell)
	})

	t.Run("Blocks the opponent when it cannot win", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			x, x, e,
			o, e, e,
			e, e, e,
		}

		// When: O picks a move at medium
		cell := newSelector(o).SelectMove(board, entity.DifficultyMedium)

		// Then: O blocks cell 2
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the first winning cell in scan order", func(t *testing.T) {
		// Given: O can win at 2 and at 6
		board := entity.Board{
			o, o, e,
			o, x, x,
			e, x, x,
		}

		// When: O picks a move at medium
		cell := newSelector(o).SelectMove(board, entity.DifficultyMedium)

		// Then: the lower index wins
		assert.Equal(t, 2, cell)
	})

	t.Run("Works for a bot playing X", func(t *testing.T) {
		// Given: O threatens the left column and X has nothing
		board := entity.Board{
			o, x, e,
			o, e, e,
			e, e, x,
		}

		// When: X picks a move at medium
		cell := newSelector(x).SelectMove(board, entity.DifficultyMedium)

		// Then: X blocks cell 6
		assert.Equal(t, 6, cell)
	})

	t.Run("Falls back to a random empty cell", func(t *testing.T) {
		// Given: nobody threatens anything
		board := entity.Board{
			x, e, e,
			e, e, e,
			e, e, e,
		}

		// When: O picks a move at medium
		cell := newSelector(o).SelectMove(board, entity.DifficultyMedium)

		// Then: any empty cell is fine
		assert.Contains(t, board.EmptyCells(), cell)
	})

	t.Run("Unknown difficulty plays like medium", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			x, x, e,
			o, e, e,
			e, e, e,
		}

		// When: O picks a move with a bogus difficulty
		cell := newSelector(o).SelectMove(board, entity.Difficulty("nightmare"))

		// Then: O still blocks
		assert.Equal(t, 2, cell)
	})
}

func TestMoveSelector_Hard(t *testing.T) {
	t.Run("Empty board is a forced tie", func(t *testing.T) {
		// Given: an empty board and X to play
		selector := newSelector(x)

		// When: scoring the best move
		score := selector.BestScore(entity.Board{})

		// Then: optimal play ends in a tie
		assert.Equal(t, scoreTie, score)

		// Then: every opening draws, so the first cell is chosen
		assert.Equal(t, 0, selector.SelectMove(entity.Board{}, entity.DifficultyHard))
	})

	t.Run("Takes the only winning cell", func(t *testing.T) {
		// Given: O wins at 2 and any other move loses
		board := entity.Board{
			o, o, e,
			x, x, e,
			x, e, e,
		}

		// When: O picks a move at hard
		cell := newSelector(o).SelectMove(board, entity.DifficultyHard)

		// Then: O wins
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks an immediate threat", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}

		// When: O picks a move at hard
		cell := newSelector(o).SelectMove(board, entity.DifficultyHard)

		// Then: O blocks
		assert.Equal(t, 2, cell)
	})

	t.Run("Scores a lost position as a loss", func(t *testing.T) {
		// Given: X has a fork and O is to play
		board := entity.Board{
			x, e, o,
			e, o, e,
			x, e, x,
		}

		// Then: O cannot avoid losing
		assert.Equal(t, scoreLoss, newSelector(o).BestScore(board))
	})

	t.Run("Never loses as O", func(t *testing.T) {
		selector := newSelector(o)
		playAllLines(t, selector, entity.NewGame())
	})

	t.Run("Never loses as X", func(t *testing.T) {
		selector := newSelector(x)
		playAllLines(t, selector, entity.NewGame())
	})
}

// playAllLines plays every opponent reply against the hard bot and fails on any lost game.
func playAllLines(t *testing.T, selector *MoveSelector, game *entity.Game) {
	t.Helper()

	status := game.Status()
	if status.IsTerminal() {
		require.NotEqual(t, selector.Self().Opponent(), status.Winner, "bot lost on board %v", game.Board)
		return
	}

	if game.Turn == selector.Self() {
		cell := selector.SelectMove(game.Board, entity.DifficultyHard)
		require.True(t, game.ApplyMove(cell, selector.Self()), "bot picked illegal cell %d", cell)
		playAllLines(t, selector, game)

		return
	}

	for _, cell := range game.Board.EmptyCells() {
		next := *game
		require.True(t, next.ApplyMove(cell, game.Turn))
		playAllLines(t, selector, &next)
	}
}
