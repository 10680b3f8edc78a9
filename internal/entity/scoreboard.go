package entity

const PointsPerWin = 5

// Scoreboard accumulates points per mark across games of one session.
type Scoreboard struct {
	Points map[Mark]int `json:"points"`
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		Points: map[Mark]int{
			PlayerX: 0,
			PlayerO: 0,
		},
	}
}

// Record credits the winner. Ties and unfinished games change nothing.
func (that *Scoreboard) Record(status Status) {
	if !status.HasWinner() {
		return
	}

	if that.Points == nil {
		that.Points = make(map[Mark]int, 2)
	}

	that.Points[status.Winner] += PointsPerWin
}

func (that *Scoreboard) Score(mark Mark) int {
	return that.Points[mark]
}

func (that *Scoreboard) Snapshot() map[Mark]int {
	points := make(map[Mark]int, len(that.Points))
	for mark, score := range that.Points {
		points[mark] = score
	}

	return points
}
