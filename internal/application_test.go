package application

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Plays until quit", func(t *testing.T) {
		conf := &config.Config{Bot: config.Bot{Mark: "O", Difficulty: "medium", Seed: 9}}

		var out bytes.Buffer
		err := RunApp(logger, conf, strings.NewReader("move 0\nquit\n"), &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "You play X against a medium bot")
		assert.Contains(t, out.String(), "bye")
	})

	t.Run("Rejects a bad bot mark", func(t *testing.T) {
		conf := &config.Config{Bot: config.Bot{Mark: "Z", Difficulty: "hard"}}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Rejects a bad difficulty", func(t *testing.T) {
		conf := &config.Config{Bot: config.Bot{Mark: "X", Difficulty: "brutal"}}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
		assert.EqualError(t, err, `invalid difficulty: "brutal"`)
	})
}
