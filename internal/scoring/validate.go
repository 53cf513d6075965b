package scoring

import (
	"fmt"

	"bowling-tracker/internal/domain"
)

// ValidateFrames checks canonical frames against the rules of ten-pin
// bowling. It is meant for callers about to persist entered data; the engine
// itself never rejects frames.
func ValidateFrames(frames []domain.Frame) error {
	if len(frames) > domain.FramesPerGame {
		return fmt.Errorf("%w: game has %d frames", ErrInvalidFrame, len(frames))
	}

	for i, f := range frames {
		values := f.Values()
		for j, v := range values {
			if !IsValidThrowValue(v) {
				return fmt.Errorf("%w: frame %d throw %d has value %d", ErrInvalidFrame, i+1, j+1, v)
			}
		}

		if i < tenthFrameIndex {
			switch {
			case len(values) > 2:
				return fmt.Errorf("%w: frame %d has %d throws", ErrInvalidFrame, i+1, len(values))
			case len(values) == 2 && values[0] == domain.MaxPins:
				return fmt.Errorf("%w: frame %d continues after a strike", ErrInvalidFrame, i+1)
			case len(values) == 2 && values[0]+values[1] > domain.MaxPins:
				return fmt.Errorf("%w: frame %d knocks down %d pins", ErrInvalidFrame, i+1, values[0]+values[1])
			}
			continue
		}

		state := newTenthFrame()
		for j, v := range values {
			if !state.accepts() {
				return fmt.Errorf("%w: tenth frame has no throw %d (%s)", ErrInvalidFrame, j+1, state.phase)
			}
			if v > state.standing {
				return fmt.Errorf("%w: tenth frame throw %d knocks %d pins with %d standing", ErrInvalidFrame, j+1, v, state.standing)
			}
			state = state.roll(v)
		}
	}
	return nil
}
