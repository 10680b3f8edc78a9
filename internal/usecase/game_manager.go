package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	SelectMove(session *entity.Session) int
	MakeTurn(session *entity.Session) (int, error)
}

// Snapshot is what a host needs to redraw after an operation. It shares no
// memory with the session.
type Snapshot struct {
	SessionID  string              `json:"session_id"`
	Board      entity.Board        `json:"board"`
	Turn       entity.Mark         `json:"turn"`
	Status     entity.Status       `json:"status"`
	Scores     map[entity.Mark]int `json:"scores"`
	BotMark    entity.Mark         `json:"bot_mark"`
	Difficulty entity.Difficulty   `json:"difficulty"`

	// Applied is false when the requested human move was ignored.
	Applied bool `json:"applied"`
	// BotMove is the cell the bot played, or tictactoe.NoMove.
	BotMove int `json:"bot_move"`
}

// GameManager owns the sessions. Every operation loads, changes and stores a
// session under one lock, so calls on the same session never interleave.
type GameManager struct {
	logger *slog.Logger

	mu          sync.Mutex
	sessionRepo sessionRepo
	bot         botService
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		bot:         bot,
	}
}

// CreateSession starts a session with an empty board. A bot playing X opens at once.
func (that *GameManager) CreateSession(ctx context.Context, botMark entity.Mark, difficulty entity.Difficulty) (*Snapshot, error) {
	log := that.logger.With("method", "CreateSession")

	if !botMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, botMark)
	}

	level, err := entity.ParseDifficulty(string(difficulty))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, difficulty)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session := entity.NewSession(pkg.GenerateSessionID(), botMark, level)
	botMove := that.botOpening(session)

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session created", "sessionID", session.ID, "botMark", botMark, "difficulty", level)

	return newSnapshot(session, false, botMove), nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getSession(ctx, id)
}

func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "sessionID", id)

	return nil
}

// ApplyMove places mark on cell. Illegal moves are ignored and reported with false.
func (that *GameManager) ApplyMove(ctx context.Context, id string, cell int, mark entity.Mark) (bool, error) {
	var applied bool

	err := that.update(ctx, id, func(session *entity.Session) {
		applied = session.Game.ApplyMove(cell, mark)
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

// SelectMove suggests the bot's cell without playing it. tictactoe.NoMove means
// the game already has a winner or no free cell.
func (that *GameManager) SelectMove(ctx context.Context, id string) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return tictactoe.NoMove, err
	}

	return that.bot.SelectMove(session), nil
}

func (that *GameManager) Evaluate(ctx context.Context, id string) (entity.Status, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return entity.Status{}, err
	}

	return session.Game.Status(), nil
}

// RecordResult credits the winner of status on the session's scoreboard. When
// status is the finished board's own result, the game counts as settled and
// PlayMove does not score it again.
func (that *GameManager) RecordResult(ctx context.Context, id string, status entity.Status) error {
	return that.update(ctx, id, func(session *entity.Session) {
		session.Score.Record(status)

		if status.IsTerminal() && status == session.Game.Status() {
			session.Settled = true
		}
	})
}

// ResetGame clears the board and keeps the scoreboard. A bot playing X opens at once.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*Snapshot, error) {
	var snapshot *Snapshot

	err := that.update(ctx, id, func(session *entity.Session) {
		session.ResetGame()
		snapshot = newSnapshot(session, false, that.botOpening(session))
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (that *GameManager) SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) error {
	level, err := entity.ParseDifficulty(string(difficulty))
	if err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, difficulty)
	}

	return that.update(ctx, id, func(session *entity.Session) {
		session.Difficulty = level
	})
}

// PlayMove plays the human's cell, lets the bot answer while the game goes on,
// and settles the scoreboard once the game ends.
func (that *GameManager) PlayMove(ctx context.Context, id string, cell int) (*Snapshot, error) {
	log := that.logger.With("method", "PlayMove", "sessionID", id)

	var snapshot *Snapshot

	err := that.update(ctx, id, func(session *entity.Session) {
		applied := session.Game.ApplyMove(cell, session.HumanMark())
		if !applied {
			log.Debug("move ignored", "cell", cell)
			snapshot = newSnapshot(session, false, tictactoe.NoMove)

			return
		}

		botMove := tictactoe.NoMove
		if session.IsBotTurn() {
			botMove = that.botTurn(session)
		}

		that.settle(log, session)
		snapshot = newSnapshot(session, true, botMove)
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// BotMove lets the bot play if it is its turn.
func (that *GameManager) BotMove(ctx context.Context, id string) (*Snapshot, error) {
	log := that.logger.With("method", "BotMove", "sessionID", id)

	var snapshot *Snapshot

	err := that.update(ctx, id, func(session *entity.Session) {
		botMove := tictactoe.NoMove
		if session.IsBotTurn() {
			botMove = that.botTurn(session)
		}

		that.settle(log, session)
		snapshot = newSnapshot(session, false, botMove)
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (that *GameManager) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return newSnapshot(session, false, tictactoe.NoMove), nil
}

func (that *GameManager) update(ctx context.Context, id string, change func(session *entity.Session)) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, id)
	if err != nil {
		return err
	}

	change(session)

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *GameManager) getSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) botOpening(session *entity.Session) int {
	if !session.IsBotTurn() {
		return tictactoe.NoMove
	}

	return that.botTurn(session)
}

func (that *GameManager) botTurn(session *entity.Session) int {
	cell, err := that.bot.MakeTurn(session)
	if err != nil {
		that.logger.Error("bot failed to move", "sessionID", session.ID, "error", err)
		return tictactoe.NoMove
	}

	that.logger.Debug("bot moved", "sessionID", session.ID, "cell", cell, "difficulty", session.Difficulty)

	return cell
}

func (that *GameManager) settle(log *slog.Logger, session *entity.Session) {
	if session.Settle() {
		log.Info("game finished", "status", session.Game.Status().String(), "scores", session.Score.Snapshot())
	}
}

func newSnapshot(session *entity.Session, applied bool, botMove int) *Snapshot {
	return &Snapshot{
		SessionID:  session.ID,
		Board:      session.Game.Board,
		Turn:       session.Game.Turn,
		Status:     session.Game.Status(),
		Scores:     session.Score.Snapshot(),
		BotMark:    session.BotMark,
		Difficulty: session.Difficulty,
		Applied:    applied,
		BotMove:    botMove,
	}
}
