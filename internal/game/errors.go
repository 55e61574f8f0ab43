package game

import "errors"

var (
	// ErrInvalidConfig indicates bad constructor parameters. The game is
	// not created.
	ErrInvalidConfig = errors.New("invalid game configuration")

	// ErrInvalidAction indicates a malformed or out-of-range action
	// payload. Step recovers by skipping that player's entry and reporting
	// it in the step result.
	ErrInvalidAction = errors.New("invalid action")
)
