package entity

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// WinCombos - rows, columns and diagonals, in scan order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

type Board [BoardSize]Mark

// EmptyCells - indices of free cells in scan order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Game holds the board and whose turn it is. The status is never stored, use Evaluate.
type Game struct {
	Board Board `json:"board"`
	Turn  Mark  `json:"turn"`
}

func NewGame() *Game {
	return &Game{
		Turn: PlayerX,
	}
}

// ApplyMove places mark on cell and passes the turn. Illegal moves are ignored
// and reported with false: finished game, cell out of range or occupied, wrong turn.
func (that *Game) ApplyMove(cell int, mark Mark) bool {
	if Evaluate(that.Board).IsTerminal() {
		return false
	}

	if cell < 0 || cell >= BoardSize {
		return false
	}

	if that.Board[cell] != EmptyCell {
		return false
	}

	if that.Turn != mark {
		return false
	}

	that.Board[cell] = mark
	that.Turn = mark.Opponent()

	return true
}

func (that *Game) Status() Status {
	return Evaluate(that.Board)
}

func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
}
