package apperror

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrNotBotTurn        = errors.New("it's not the bot's turn")
)
