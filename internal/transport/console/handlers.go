package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrUsage = errors.New("wrong arguments")

const helpText = `commands:
  move <0-8>        play a cell, the bot answers
  ai                let the bot move if it is its turn
  reset             new game, scores are kept
  score             show the scores
  difficulty <lvl>  easy, medium or hard
  board             show the board
  quit              leave
`

func (that *Server) handleMove(ctx context.Context, args []string, out *bufio.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: move <0-8>", ErrUsage)
	}

	cell, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: cell must be a number", ErrUsage)
	}

	snapshot, err := that.uGame.PlayMove(ctx, that.sessionID, cell)
	if err != nil {
		return fmt.Errorf("failed to play move: %w", err)
	}

	if !snapshot.Applied {
		fmt.Fprintf(out, "cell %d is not playable\n", cell)
	}

	writeBotMove(out, snapshot)
	writeSnapshot(out, snapshot)

	return nil
}

func (that *Server) handleBotMove(ctx context.Context, _ []string, out *bufio.Writer) error {
	snapshot, err := that.uGame.BotMove(ctx, that.sessionID)
	if err != nil {
		return fmt.Errorf("failed to make bot move: %w", err)
	}

	if snapshot.BotMove == tictactoe.NoMove {
		fmt.Fprintln(out, "it's not the bot's turn")
	}

	writeBotMove(out, snapshot)
	writeSnapshot(out, snapshot)

	return nil
}

func (that *Server) handleReset(ctx context.Context, _ []string, out *bufio.Writer) error {
	snapshot, err := that.uGame.ResetGame(ctx, that.sessionID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	writeBotMove(out, snapshot)
	writeSnapshot(out, snapshot)

	return nil
}

func (that *Server) handleScore(ctx context.Context, _ []string, out *bufio.Writer) error {
	snapshot, err := that.uGame.Snapshot(ctx, that.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get scores: %w", err)
	}

	writeScores(out, snapshot)

	return nil
}

func (that *Server) handleDifficulty(ctx context.Context, args []string, out *bufio.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: difficulty <easy|medium|hard>", ErrUsage)
	}

	difficulty, err := entity.ParseDifficulty(args[0])
	if err != nil {
		return err
	}

	if err = that.uGame.SetDifficulty(ctx, that.sessionID, difficulty); err != nil {
		return fmt.Errorf("failed to set difficulty: %w", err)
	}

	fmt.Fprintf(out, "difficulty set to %s\n", difficulty)

	return nil
}

func (that *Server) handleBoard(ctx context.Context, _ []string, out *bufio.Writer) error {
	snapshot, err := that.uGame.Snapshot(ctx, that.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}

	writeSnapshot(out, snapshot)

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string, out *bufio.Writer) error {
	_, err := out.WriteString(helpText)
	return err
}

func (that *Server) handleQuit(_ context.Context, _ []string, out *bufio.Writer) error {
	fmt.Fprintln(out, "bye")
	return ErrQuit
}

func writeBotMove(out *bufio.Writer, snapshot *usecase.Snapshot) {
	if snapshot.BotMove != tictactoe.NoMove {
		fmt.Fprintf(out, "bot plays %d\n", snapshot.BotMove)
	}
}

// writeSnapshot prints the grid with free cells numbered, then the status.
func writeSnapshot(out *bufio.Writer, snapshot *usecase.Snapshot) {
	for row := range 3 {
		cells := make([]string, 3)
		for col := range 3 {
			i := row*3 + col

			cells[col] = strconv.Itoa(i)
			if mark := snapshot.Board[i]; mark != entity.EmptyCell {
				cells[col] = string(mark)
			}
		}

		fmt.Fprintf(out, " %s\n", strings.Join(cells, " | "))
	}

	switch status := snapshot.Status; status.State {
	case entity.StateWon:
		fmt.Fprintf(out, "%s wins!\n", status.Winner)
		writeScores(out, snapshot)
	case entity.StateTied:
		fmt.Fprintln(out, "tie!")
		writeScores(out, snapshot)
	default:
		fmt.Fprintf(out, "%s to move\n", snapshot.Turn)
	}
}

func writeScores(out *bufio.Writer, snapshot *usecase.Snapshot) {
	fmt.Fprintf(out, "score: X %d, O %d\n", snapshot.Scores[entity.PlayerX], snapshot.Scores[entity.PlayerO])
}
