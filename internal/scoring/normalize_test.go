package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"bowling-tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeFrames_Legacy(t *testing.T) {
	frames, err := NormalizeFrames([]domain.RawFrame{
		domain.LegacyFrame{10},
		domain.LegacyFrame{7, 3},
	})
	require.NoError(t, err)
	require.Len(t, frames, 10)

	require.Equal(t, domain.Frame{FrameIndex: 1, Throws: []domain.Throw{{Value: 10, ThrowIndex: 1}}}, frames[0])
	require.Equal(t, domain.Frame{FrameIndex: 2, Throws: []domain.Throw{{Value: 7, ThrowIndex: 1}, {Value: 3, ThrowIndex: 2}}}, frames[1])
	for i := 2; i < 10; i++ {
		require.Equal(t, i+1, frames[i].FrameIndex)
		require.Empty(t, frames[i].Throws)
		require.NotNil(t, frames[i].Throws)
	}
}

func TestNormalizeFrames_Structured(t *testing.T) {
	raw := []domain.RawFrame{
		domain.StructuredFrame{Throws: []domain.RawThrow{
			{Value: "8", ThrowIndex: intPtr(1), IsSplit: true, PinsLeftStanding: []int{7, 10}},
			{Value: float64(1)},
		}},
		domain.EmptyFrame{},
		nil,
	}

	frames, err := NormalizeFrames(raw)
	require.NoError(t, err)

	require.Equal(t, []domain.Throw{
		{Value: 8, ThrowIndex: 1, IsSplit: true, PinsLeftStanding: []int{7, 10}},
		{Value: 1, ThrowIndex: 2},
	}, frames[0].Throws)
	require.Empty(t, frames[1].Throws)
	require.Empty(t, frames[2].Throws)
}

func TestNormalizeFrames_DoesNotAliasInput(t *testing.T) {
	pins := []int{4, 7}
	raw := []domain.RawFrame{domain.StructuredFrame{Throws: []domain.RawThrow{{Value: 8, PinsLeftStanding: pins}}}}

	frames, err := NormalizeFrames(raw)
	require.NoError(t, err)

	pins[0] = 1
	require.Equal(t, []int{4, 7}, frames[0].Throws[0].PinsLeftStanding)
}

func TestNormalizeFrames_TruncatesExtraFrames(t *testing.T) {
	raw := make([]domain.RawFrame, 12)
	for i := range raw {
		raw[i] = domain.LegacyFrame{i % 10}
	}
	frames, err := NormalizeFrames(raw)
	require.NoError(t, err)
	require.Len(t, frames, 10)
	require.Equal(t, 9, frames[9].Throws[0].Value)
}

func TestNormalizeFrames_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "non numeric string", value: "strike"},
		{name: "fractional", value: 2.5},
		{name: "missing", value: nil},
		{name: "bool", value: true},
		{name: "huge float", value: 1e20},
		{name: "infinite float", value: math.Inf(1)},
		{name: "huge int64", value: int64(1<<32 + 7)},
		{name: "huge json number", value: json.Number("18446744069414584327")},
		{name: "huge json number in int64 range", value: json.Number("4294967303")},
		{name: "huge numeric string", value: "4294967303"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeFrames([]domain.RawFrame{
				domain.StructuredFrame{Throws: []domain.RawThrow{{Value: tt.value}}},
			})
			require.Error(t, err)
		})
	}
}

func TestNormalizeFrames_HugeValueDoesNotWrap(t *testing.T) {
	raw, err := domain.DecodeRawFrames([]byte(`[{"throws":[{"value":4294967303}]}]`))
	require.NoError(t, err)

	_, err = NormalizeFrames(raw)
	require.Error(t, err)
}

func TestNormalizeFrames_Idempotent(t *testing.T) {
	inputs := map[string]string{
		"legacy":     `[[10],[7,3],[9,0],[],[0,10]]`,
		"structured": `[{"frameIndex":1,"throws":[{"value":"9","throwIndex":1},{"value":1,"isSplit":true}]},null,{"throws":null}]`,
		"mixed":      `[[10],{"throws":[{"value":5},{"value":"5"}]},[3],null,[10],[10],[10],[10],[10],[10,10,7]]`,
		"empty":      `[]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			raw, err := domain.DecodeRawFrames([]byte(input))
			require.NoError(t, err)

			once, err := NormalizeFrames(raw)
			require.NoError(t, err)

			twice, err := NormalizeFrames(domain.RawFramesOf(once))
			require.NoError(t, err)
			require.Equal(t, once, twice)

			// through the stored JSON shape as well
			encoded, err := json.Marshal(once)
			require.NoError(t, err)
			decoded, err := domain.DecodeRawFrames(encoded)
			require.NoError(t, err)
			again, err := NormalizeFrames(decoded)
			require.NoError(t, err)
			require.Equal(t, once, again)
		})
	}
}
