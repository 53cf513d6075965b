package scoring

import (
	"strconv"

	"bowling-tracker/internal/domain"
)

// FormatThrowValue renders one recorded throw as its scoreboard token: "X",
// "/", a digit string, or an en dash for a gutter ball. It returns "" when the
// frame or throw does not exist. frameIndex and throwIndex are 0-based.
func FormatThrowValue(frameIndex, throwIndex int, frames []domain.Frame) string {
	if frameIndex < 0 || frameIndex >= len(frames) {
		return ""
	}
	throws := frames[frameIndex].Throws
	if throwIndex < 0 || throwIndex >= len(throws) {
		return ""
	}

	value := throws[throwIndex].Value
	if value == 0 {
		return gutterToken
	}

	firstBall, hasFirst := throwAt(throws, 0)
	secondBall, hasSecond := throwAt(throws, 1)
	literal := strconv.Itoa(value)
	isTenth := frameIndex == tenthFrameIndex

	switch {
	case throwIndex == 0:
		if value == domain.MaxPins {
			return strikeToken
		}
		return literal

	case throwIndex == 1 && !isTenth:
		if isSpare(firstBall, hasFirst, value) {
			return spareToken
		}
		return literal

	case throwIndex == 1 && isTenth:
		if value == domain.MaxPins {
			return strikeToken
		}
		if isSpare(firstBall, hasFirst, value) {
			return spareToken
		}
		return literal

	case throwIndex == 2 && isTenth:
		if value == domain.MaxPins {
			return strikeToken
		}
		if firstBall == domain.MaxPins && hasSecond && secondBall != domain.MaxPins && secondBall+value == domain.MaxPins {
			return spareToken
		}
		return literal
	}

	return literal
}

// FormatFrames renders every recorded throw of every frame.
func FormatFrames(frames []domain.Frame) [][]string {
	rows := make([][]string, len(frames))
	for i, f := range frames {
		row := make([]string, len(f.Throws))
		for j := range f.Throws {
			row[j] = FormatThrowValue(i, j, frames)
		}
		rows[i] = row
	}
	return rows
}

func isSpare(firstBall int, hasFirst bool, value int) bool {
	return hasFirst && firstBall != domain.MaxPins && firstBall+value == domain.MaxPins
}

func throwAt(throws []domain.Throw, i int) (int, bool) {
	if i >= len(throws) {
		return 0, false
	}
	return throws[i].Value, true
}
