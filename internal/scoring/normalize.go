package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"bowling-tracker/internal/domain"
)

// NormalizeFrames upgrades any mix of raw frame shapes into exactly ten
// canonical frames. Missing trailing frames come back empty and frames past
// the tenth are dropped. Normalizing canonical data again is a no-op.
func NormalizeFrames(raw []domain.RawFrame) ([]domain.Frame, error) {
	frames := make([]domain.Frame, domain.FramesPerGame)
	for i := range frames {
		frameIndex := i + 1
		if i >= len(raw) || raw[i] == nil {
			frames[i] = emptyFrame(frameIndex)
			continue
		}

		frame, err := normalizeFrame(frameIndex, raw[i])
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", frameIndex, err)
		}
		frames[i] = frame
	}
	return frames, nil
}

func normalizeFrame(frameIndex int, raw domain.RawFrame) (domain.Frame, error) {
	switch f := raw.(type) {
	case domain.LegacyFrame:
		throws := make([]domain.Throw, len(f))
		for i, v := range f {
			throws[i] = domain.Throw{Value: v, ThrowIndex: i + 1}
		}
		return domain.Frame{FrameIndex: frameIndex, Throws: throws}, nil

	case domain.StructuredFrame:
		throws := make([]domain.Throw, len(f.Throws))
		for i, t := range f.Throws {
			value, err := coerceValue(t.Value)
			if err != nil {
				return domain.Frame{}, fmt.Errorf("throw %d: %w", i+1, err)
			}
			throwIndex := i + 1
			if t.ThrowIndex != nil {
				throwIndex = *t.ThrowIndex
			}
			throws[i] = domain.Throw{
				Value:            value,
				ThrowIndex:       throwIndex,
				IsSplit:          t.IsSplit,
				PinsLeftStanding: slices.Clone(t.PinsLeftStanding),
				PinsKnockedDown:  slices.Clone(t.PinsKnockedDown),
			}
		}
		return domain.Frame{FrameIndex: frameIndex, Throws: throws}, nil

	case domain.EmptyFrame:
		return emptyFrame(frameIndex), nil
	}

	return domain.Frame{}, fmt.Errorf("unsupported frame type %T", raw)
}

func emptyFrame(frameIndex int) domain.Frame {
	return domain.Frame{FrameIndex: frameIndex, Throws: []domain.Throw{}}
}

func coerceValue(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return boundedValue(int64(n))
	case int64:
		return boundedValue(n)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("throw value %v is not an integer", n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("throw value %v is out of range", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("throw value %q: %w", n, err)
		}
		return boundedValue(i)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("throw value %q: %w", n, err)
		}
		return boundedValue(i)
	case nil:
		return 0, fmt.Errorf("throw value is missing")
	}
	return 0, fmt.Errorf("throw value of type %T", v)
}

// boundedValue keeps out-of-range numbers from wrapping into plausible pin
// counts on conversion.
func boundedValue(n int64) (int, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("throw value %d is out of range", n)
	}
	return int(n), nil
}
