package scoring

import "errors"

var (
	// ErrNotANumber is returned by the throw parser for tokens that are neither
	// a recognized mark nor a base-10 integer.
	ErrNotANumber = errors.New("not a number")

	ErrInvalidFrame = errors.New("invalid frame")

	// ErrGameTransformFailed wraps every failure that happens while a game is
	// assembled. No partial game accompanies it.
	ErrGameTransformFailed = errors.New("game transform failed")
)
