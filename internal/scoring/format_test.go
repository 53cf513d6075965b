package scoring

import (
	"strconv"
	"testing"

	"bowling-tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFormatThrowValue_FirstThrow(t *testing.T) {
	for v := 0; v <= 10; v++ {
		frames := legacyGame(t, []int{v})
		got := FormatThrowValue(0, 0, frames)
		switch v {
		case 0:
			require.Equal(t, "–", got)
		case 10:
			require.Equal(t, "X", got)
		default:
			require.Equal(t, strconv.Itoa(v), got)
		}
	}
}

func TestFormatThrowValue(t *testing.T) {
	tests := []struct {
		name       string
		frames     [][]int
		frameIndex int
		want       []string
	}{
		{name: "spare", frames: [][]int{{7, 3}}, frameIndex: 0, want: []string{"7", "/"}},
		{name: "open", frames: [][]int{{7, 2}}, frameIndex: 0, want: []string{"7", "2"}},
		{name: "gutter then spare", frames: [][]int{{0, 10}}, frameIndex: 0, want: []string{"–", "/"}},
		{name: "double gutter", frames: [][]int{{0, 0}}, frameIndex: 0, want: []string{"–", "–"}},
		{name: "strike has no second throw", frames: [][]int{{10}}, frameIndex: 0, want: []string{"X", ""}},
		{name: "tenth turkey", frames: tenth(10, 10, 10), frameIndex: 9, want: []string{"X", "X", "X"}},
		{name: "tenth double and count", frames: tenth(10, 10, 7), frameIndex: 9, want: []string{"X", "X", "7"}},
		{name: "tenth strike then spare", frames: tenth(10, 6, 4), frameIndex: 9, want: []string{"X", "6", "/"}},
		{name: "tenth strike then open", frames: tenth(10, 6, 2), frameIndex: 9, want: []string{"X", "6", "2"}},
		{name: "tenth spare then strike", frames: tenth(8, 2, 10), frameIndex: 9, want: []string{"8", "/", "X"}},
		{name: "tenth spare then count", frames: tenth(8, 2, 3), frameIndex: 9, want: []string{"8", "/", "3"}},
		{name: "tenth gutter second after strike", frames: tenth(10, 0, 10), frameIndex: 9, want: []string{"X", "–", "X"}},
		{name: "tenth open", frames: tenth(4, 5), frameIndex: 9, want: []string{"4", "5", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := legacyGame(t, tt.frames...)
			got := make([]string, len(tt.want))
			for i := range tt.want {
				got[i] = FormatThrowValue(tt.frameIndex, i, frames)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatThrowValue_MissingData(t *testing.T) {
	frames := legacyGame(t, []int{5})
	require.Equal(t, "", FormatThrowValue(0, 1, frames))
	require.Equal(t, "", FormatThrowValue(3, 0, frames))
	require.Equal(t, "", FormatThrowValue(10, 0, frames))
	require.Equal(t, "", FormatThrowValue(-1, 0, frames))
	require.Equal(t, "", FormatThrowValue(0, 0, nil))
}

func TestFormatThrowValue_PositionsPastTheRulesAreLiteral(t *testing.T) {
	frames := []domain.Frame{{FrameIndex: 1, Throws: []domain.Throw{{Value: 3}, {Value: 4}, {Value: 3}}}}
	require.Equal(t, "3", FormatThrowValue(0, 2, frames))
}

func TestFormatFrames(t *testing.T) {
	frames := legacyGame(t, append(strikes(9), []int{10, 10, 7})...)
	rows := FormatFrames(frames)
	require.Len(t, rows, 10)
	for i := 0; i < 9; i++ {
		require.Equal(t, []string{"X"}, rows[i])
	}
	require.Equal(t, []string{"X", "X", "7"}, rows[9])
}
