package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NoMove is returned when the board has a winner or no free cell.
const NoMove = -1

const (
	scoreWin  = 10
	scoreLoss = -10
	scoreTie  = 0
)

// MoveSelector picks cells for the automated player. Not safe for concurrent use
// because of the random source.
type MoveSelector struct {
	self entity.Mark
	rnd  *rand.Rand
}

func NewMoveSelector(self entity.Mark, rnd *rand.Rand) *MoveSelector {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
	}

	return &MoveSelector{
		self: self,
		rnd:  rnd,
	}
}

func (that *MoveSelector) Self() entity.Mark {
	return that.self
}

// SelectMove returns a free cell for the selector's mark, or NoMove.
// Unknown difficulties play like medium.
func (that *MoveSelector) SelectMove(board entity.Board, difficulty entity.Difficulty) int {
	if entity.Evaluate(board).HasWinner() {
		return NoMove
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return that.easy(board)
	case entity.DifficultyHard:
		return that.hard(board)
	default:
		return that.medium(board)
	}
}

func (that *MoveSelector) easy(board entity.Board) int {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return NoMove
	}

	return cells[that.rnd.IntN(len(cells))]
}

// medium wins if it can, blocks if it must, otherwise plays like easy.
func (that *MoveSelector) medium(board entity.Board) int {
	if cell := completingCell(board, that.self); cell != NoMove {
		return cell
	}

	if cell := completingCell(board, that.self.Opponent()); cell != NoMove {
		return cell
	}

	return that.easy(board)
}

// completingCell - first free cell in scan order that gives mark three in a row.
func completingCell(board entity.Board, mark entity.Mark) int {
	for _, cell := range board.EmptyCells() {
		board[cell] = mark
		won := entity.Evaluate(board).Winner == mark
		board[cell] = entity.EmptyCell

		if won {
			return cell
		}
	}

	return NoMove
}

func (that *MoveSelector) hard(board entity.Board) int {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return that.easy(board)
	}

	best, bestScore := NoMove, scoreLoss-1
	for _, cell := range cells {
		next := board
		next[cell] = that.self

		if score := that.minimax(next, false); score > bestScore {
			best, bestScore = cell, score
		}
	}

	return best
}

// minimax scores board from the selector's point of view. Scores are not
// discounted by depth, a late win counts as much as an early one.
// board is a copy owned by this call.
func (that *MoveSelector) minimax(board entity.Board, maximizing bool) int {
	switch status := entity.Evaluate(board); {
	case status.Winner == that.self:
		return scoreWin
	case status.HasWinner():
		return scoreLoss
	case status.State == entity.StateTied:
		return scoreTie
	}

	mark, best := that.self.Opponent(), scoreWin+1
	if maximizing {
		mark, best = that.self, scoreLoss-1
	}

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = mark

		score := that.minimax(next, !maximizing)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}

// BestScore is the minimax value of board for the selector's mark with that mark to play.
func (that *MoveSelector) BestScore(board entity.Board) int {
	return that.minimax(board, true)
}
