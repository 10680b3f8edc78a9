package entity

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateTied       State = "tied"
)

// Status is the derived outcome of a board. Winner is set only for StateWon.
type Status struct {
	State  State `json:"state"`
	Winner Mark  `json:"winner,omitempty"`
}

func InProgress() Status {
	return Status{State: StateInProgress}
}

func Won(mark Mark) Status {
	return Status{State: StateWon, Winner: mark}
}

func Tied() Status {
	return Status{State: StateTied}
}

func (that Status) IsTerminal() bool {
	return that.State == StateWon || that.State == StateTied
}

func (that Status) HasWinner() bool {
	return that.State == StateWon && that.Winner.IsPlayer()
}

func (that Status) String() string {
	if that.State == StateWon {
		return string(that.Winner) + " won"
	}

	return string(that.State)
}

// Evaluate checks every win combo first, then declares a tie on a full board.
func Evaluate(board Board) Status {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Won(a)
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress()
	}

	return Tied()
}
