package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the console game until the input ends or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	botMark := entity.Mark(conf.Bot.Mark)
	if !botMark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, conf.Bot.Mark)
	}

	difficulty, err := entity.ParseDifficulty(conf.Bot.Difficulty)
	if err != nil {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, conf.Bot.Difficulty)
	}

	sessionRepo := repository.NewSessionRepository()
	botService := service.NewBotService(conf.Bot.Seed)
	gameManager := usecase.NewGameManager(logger, sessionRepo, botService)

	log.Info("Starting console game", "botMark", botMark, "difficulty", difficulty)

	server := console.New(logger, gameManager, botMark, difficulty)
	if err = server.Start(ctx, in, out); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console game finished")

	return nil
}
