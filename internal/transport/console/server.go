package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrQuit = errors.New("quit")

type uGame interface {
	CreateSession(ctx context.Context, botMark entity.Mark, difficulty entity.Difficulty) (*usecase.Snapshot, error)
	PlayMove(ctx context.Context, id string, cell int) (*usecase.Snapshot, error)
	BotMove(ctx context.Context, id string) (*usecase.Snapshot, error)
	ResetGame(ctx context.Context, id string) (*usecase.Snapshot, error)
	SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) error
	Snapshot(ctx context.Context, id string) (*usecase.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error
}

type handler func(ctx context.Context, args []string, out *bufio.Writer) error

// Server plays one session against the bot over a line based text protocol.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	botMark    entity.Mark
	difficulty entity.Difficulty
	sessionID  string

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, botMark entity.Mark, difficulty entity.Difficulty) *Server {
	server := &Server{
		logger:     logger.With("component", "console"),
		uGame:      uGame,
		botMark:    botMark,
		difficulty: difficulty,
	}

	server.handlers = map[string]handler{
		"move":       server.handleMove,
		"ai":         server.handleBotMove,
		"reset":      server.handleReset,
		"score":      server.handleScore,
		"difficulty": server.handleDifficulty,
		"board":      server.handleBoard,
		"help":       server.handleHelp,
		"quit":       server.handleQuit,
	}

	return server
}

// Start - reads commands from in until EOF, quit or ctx is done.
func (that *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Start")

	writer := bufio.NewWriter(out)
	defer writer.Flush()

	snapshot, err := that.uGame.CreateSession(ctx, that.botMark, that.difficulty)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	that.sessionID = snapshot.SessionID
	defer that.closeSession(log)

	log.Info("session started", "sessionID", that.sessionID)

	fmt.Fprintf(writer, "You play %s against a %s bot. Type help for commands.\n", that.botMark.Opponent(), that.difficulty)
	writeSnapshot(writer, snapshot)

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, leaving")
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}

			if err = that.handleLine(ctx, line, writer); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}

				return err
			}

			if err = writer.Flush(); err != nil {
				return fmt.Errorf("failed to write: %w", err)
			}
		}
	}
}

func (that *Server) handleLine(ctx context.Context, line string, out *bufio.Writer) error {
	log := that.logger.With("method", "handleLine")

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]

	handle, ok := that.handlers[command]
	if !ok {
		fmt.Fprintf(out, "unknown command %q, type help\n", command)
		return nil
	}

	if err := handle(ctx, args, out); err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}

		log.Error("error processing command", "command", command, "error", err)
		fmt.Fprintf(out, "error: %v\n", err)
	}

	return nil
}

func (that *Server) closeSession(log *slog.Logger) {
	// the request context may already be canceled here
	if err := that.uGame.DeleteSession(context.Background(), that.sessionID); err != nil {
		log.Error("failed to delete session", "sessionID", that.sessionID, "error", err)
	}
}
