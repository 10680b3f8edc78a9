package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	SelectMove(session *entity.Session) int
	MakeTurn(session *entity.Session) (int, error)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService - seed 0 picks a random seed.
func NewBotService(seed uint64) BotService {
	if seed == 0 {
		seed = rand.Uint64() //nolint: gosec // it's ok
	}

	return &botService{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint: gosec // it's ok
	}
}

// SelectMove picks a cell for the session's bot at the session's difficulty
// without touching the board. It returns tictactoe.NoMove on a finished game.
func (that *botService) SelectMove(session *entity.Session) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return tictactoe.NewMoveSelector(session.BotMark, that.rnd).SelectMove(session.Game.Board, session.Difficulty)
}

// MakeTurn selects and plays the bot's move.
func (that *botService) MakeTurn(session *entity.Session) (int, error) {
	if !session.IsBotTurn() {
		return tictactoe.NoMove, apperror.ErrNotBotTurn
	}

	cell := that.SelectMove(session)
	if cell == tictactoe.NoMove {
		return tictactoe.NoMove, ErrNoAvailableMoves
	}

	if !session.Game.ApplyMove(cell, session.BotMark) {
		return tictactoe.NoMove, fmt.Errorf("bot failed to make turn: cell %d rejected", cell)
	}

	return cell, nil
}
