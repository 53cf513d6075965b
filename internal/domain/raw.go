package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// RawFrame is a frame as it arrives from entry, storage or import, before
// normalization. The set of implementations is closed: LegacyFrame,
// StructuredFrame and EmptyFrame.
type RawFrame interface {
	rawFrame()
}

// LegacyFrame is the historical flat shape: one pin count per throw.
type LegacyFrame []int

// StructuredFrame carries throw objects whose values may still be strings and
// whose indices may be missing.
type StructuredFrame struct {
	FrameIndex int        `json:"frameIndex,omitempty"`
	Throws     []RawThrow `json:"throws"`
}

type EmptyFrame struct{}

type RawThrow struct {
	Value            any   `json:"value"` // number or numeric string
	ThrowIndex       *int  `json:"throwIndex,omitempty"`
	IsSplit          bool  `json:"isSplit,omitempty"`
	PinsLeftStanding []int `json:"pinsLeftStanding,omitempty"`
	PinsKnockedDown  []int `json:"pinsKnockedDown,omitempty"`
}

func (LegacyFrame) rawFrame()     {}
func (StructuredFrame) rawFrame() {}
func (EmptyFrame) rawFrame()      {}

// Raw turns a canonical frame back into the structured input shape.
func (f Frame) Raw() StructuredFrame {
	throws := make([]RawThrow, len(f.Throws))
	for i, t := range f.Throws {
		idx := t.ThrowIndex
		throws[i] = RawThrow{
			Value:            t.Value,
			ThrowIndex:       &idx,
			IsSplit:          t.IsSplit,
			PinsLeftStanding: slices.Clone(t.PinsLeftStanding),
			PinsKnockedDown:  slices.Clone(t.PinsKnockedDown),
		}
	}
	return StructuredFrame{FrameIndex: f.FrameIndex, Throws: throws}
}

func RawFramesOf(frames []Frame) RawFrames {
	raw := make(RawFrames, len(frames))
	for i, f := range frames {
		raw[i] = f.Raw()
	}
	return raw
}

// RawFrames decodes a JSON array whose elements may be any mix of the legacy
// array shape, the structured object shape, or null.
type RawFrames []RawFrame

func (r *RawFrames) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("frames must be an array: %w", err)
	}

	frames := make(RawFrames, len(elems))
	for i, elem := range elems {
		frame, err := decodeRawFrame(elem)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		frames[i] = frame
	}
	*r = frames
	return nil
}

func DecodeRawFrames(data []byte) (RawFrames, error) {
	var frames RawFrames
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, err
	}
	return frames, nil
}

func decodeRawFrame(data json.RawMessage) (RawFrame, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return EmptyFrame{}, nil
	}

	switch trimmed[0] {
	case '[':
		var legacy LegacyFrame
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("legacy frame: %w", err)
		}
		return legacy, nil
	case '{':
		var probe struct {
			Throws json.RawMessage `json:"throws"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, fmt.Errorf("structured frame: %w", err)
		}
		if len(probe.Throws) == 0 || bytes.Equal(probe.Throws, []byte("null")) {
			return EmptyFrame{}, nil
		}
		var structured StructuredFrame
		if err := json.Unmarshal(trimmed, &structured); err != nil {
			return nil, fmt.Errorf("structured frame: %w", err)
		}
		return structured, nil
	}

	return nil, fmt.Errorf("unsupported frame shape %s", trimmed)
}
