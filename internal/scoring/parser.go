package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"bowling-tracker/internal/domain"
)

const (
	strikeToken     = "X"
	spareToken      = "/"
	gutterToken     = "–"
	tenthFrameIndex = domain.FramesPerGame - 1
)

// ParseInputValue converts an entry token into a pin count. frameIndex and
// throwIndex are 0-based; frames holds the values already recorded for the
// game, indexed by frame, and is only read to resolve spares.
//
// The result is not range checked; use IsValidThrowValue before storing it.
func ParseInputValue(token string, frameIndex, throwIndex int, frames [][]int) (int, error) {
	mark := strings.ToUpper(strings.TrimSpace(token))

	if frameIndex < tenthFrameIndex {
		switch {
		case throwIndex == 0 && mark == strikeToken:
			return domain.MaxPins, nil
		case throwIndex == 1 && mark == spareToken:
			prior := framePrior(frames, frameIndex)
			if len(prior) == 0 {
				return 0, fmt.Errorf("%w: spare without a first throw", ErrNotANumber)
			}
			return domain.MaxPins - prior[0], nil
		}
		return parseLiteral(token)
	}

	if frameIndex == tenthFrameIndex && throwIndex >= 0 && throwIndex < domain.MaxThrows {
		prior := make([]int, throwIndex)
		copy(prior, framePrior(frames, frameIndex))
		state := tenthFrameOf(prior)
		if state.accepts() {
			switch {
			case mark == strikeToken && state.fresh:
				return domain.MaxPins, nil
			case mark == spareToken && !state.fresh:
				return state.standing, nil
			}
		}
	}

	return parseLiteral(token)
}

func IsValidThrowValue(value int) bool {
	return value >= 0 && value <= domain.MaxPins
}

func framePrior(frames [][]int, frameIndex int) []int {
	if frameIndex < 0 || frameIndex >= len(frames) {
		return nil
	}
	return frames[frameIndex]
}

func parseLiteral(token string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, token)
	}
	return value, nil
}
