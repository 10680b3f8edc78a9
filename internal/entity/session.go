package entity

import (
	"errors"
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

func ParseDifficulty(raw string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(raw))); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, raw)
	}
}

// Session owns one board and one scoreboard. Nothing is shared between sessions.
type Session struct {
	ID         string      `json:"id"`
	Game       *Game       `json:"game"`
	Score      *Scoreboard `json:"score"`
	BotMark    Mark        `json:"bot_mark"`
	Difficulty Difficulty  `json:"difficulty"`

	// Settled is true once the current game's result reached the scoreboard.
	Settled bool `json:"settled"`
}

func NewSession(id string, botMark Mark, difficulty Difficulty) *Session {
	return &Session{
		ID:         id,
		Game:       NewGame(),
		Score:      NewScoreboard(),
		BotMark:    botMark,
		Difficulty: difficulty,
	}
}

func (that *Session) HumanMark() Mark {
	return that.BotMark.Opponent()
}

func (that *Session) IsBotTurn() bool {
	return that.Game.Turn == that.BotMark && !that.Game.Status().IsTerminal()
}

// Settle records a finished game once. It reports whether the scoreboard was touched.
func (that *Session) Settle() bool {
	status := that.Game.Status()
	if that.Settled || !status.IsTerminal() {
		return false
	}

	that.Score.Record(status)
	that.Settled = true

	return true
}

// ResetGame starts a new game and keeps the scoreboard.
func (that *Session) ResetGame() {
	that.Game.Reset()
	that.Settled = false
}

// Clone returns a deep copy, sharing no board or scoreboard with the original.
func (that *Session) Clone() *Session {
	clone := *that

	if that.Game != nil {
		game := *that.Game
		clone.Game = &game
	}

	if that.Score != nil {
		clone.Score = &Scoreboard{Points: that.Score.Snapshot()}
	}

	return &clone
}
