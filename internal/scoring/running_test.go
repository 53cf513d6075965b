package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunningScores(t *testing.T) {
	tests := []struct {
		name   string
		frames [][]int
		want   []int
	}{
		{name: "perfect", frames: append(strikes(9), []int{10, 10, 10}), want: []int{30, 60, 90, 120, 150, 180, 210, 240, 270, 300}},
		{name: "all nine spares", frames: append(repeat([]int{9, 1}, 9), []int{9, 1, 9}), want: []int{19, 38, 57, 76, 95, 114, 133, 152, 171, 190}},
		{name: "open frames", frames: append(repeat([]int{5, 4}, 9), []int{10, 0, 0}), want: []int{9, 18, 27, 36, 45, 54, 63, 72, 81, 91}},
		{name: "strike waits for two balls", frames: [][]int{{10}, {3}}, want: []int{}},
		{name: "strike scored after next frame", frames: [][]int{{10}, {3, 4}}, want: []int{17, 24}},
		{name: "spare waits for next ball", frames: [][]int{{6, 4}}, want: []int{}},
		{name: "spare scored with next ball", frames: [][]int{{6, 4}, {5}}, want: []int{15}},
		{name: "unfinished tenth", frames: append(strikes(9), []int{10, 10}), want: []int{30, 60, 90, 120, 150, 180, 210, 240, 270}},
		{name: "empty", frames: nil, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RunningScores(legacyGame(t, tt.frames...)))
		})
	}
}

func TestTotalScore(t *testing.T) {
	require.Equal(t, 300, TotalScore(perfectGame(t)))
	require.Equal(t, 0, TotalScore(legacyGame(t)))
}

func TestResolveScores(t *testing.T) {
	frames := perfectGame(t)

	scores, total := ResolveScores(frames, nil, nil)
	require.Len(t, scores, 10)
	require.Equal(t, 300, total)

	scores, total = ResolveScores(frames, []int{9}, nil)
	require.Equal(t, []int{9}, scores)
	require.Equal(t, 9, total)

	supplied := 120
	_, total = ResolveScores(frames, []int{9}, &supplied)
	require.Equal(t, 120, total)

	scores, total = ResolveScores(frames, []int{}, nil)
	require.Empty(t, scores)
	require.Equal(t, 0, total)
}
