package scoring

import (
	"testing"

	"bowling-tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

// legacyGame normalizes flat per-frame values into canonical frames.
func legacyGame(t *testing.T, values ...[]int) []domain.Frame {
	t.Helper()
	raw := make([]domain.RawFrame, len(values))
	for i, v := range values {
		raw[i] = domain.LegacyFrame(v)
	}
	frames, err := NormalizeFrames(raw)
	require.NoError(t, err)
	return frames
}

func strikes(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = []int{10}
	}
	return out
}

func perfectGame(t *testing.T) []domain.Frame {
	t.Helper()
	return legacyGame(t, append(strikes(9), []int{10, 10, 10})...)
}
