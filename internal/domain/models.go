package domain

import (
	"slices"
	"time"
)

const (
	FramesPerGame = 10
	MaxPins       = 10
	PerfectScore  = 300
	// MaxThrows is the throw count of a tenth frame with a fill ball.
	MaxThrows     = 3
)

type Throw struct {
	Value            int   `json:"value"`
	ThrowIndex       int   `json:"throwIndex"` // 1-based, 3 only in the tenth frame
	IsSplit          bool  `json:"isSplit,omitempty"`
	PinsLeftStanding []int `json:"pinsLeftStanding,omitempty"`
	PinsKnockedDown  []int `json:"pinsKnockedDown,omitempty"`
}

type Frame struct {
	FrameIndex int     `json:"frameIndex"` // 1-based
	Throws     []Throw `json:"throws"`
}

type Game struct {
	GameID      string   `json:"gameId"`
	Date        int64    `json:"date"` // epoch ms
	Frames      []Frame  `json:"frames"`
	FrameScores []int    `json:"frameScores"`
	TotalScore  int      `json:"totalScore"`
	IsPractice  bool     `json:"isPractice"`
	IsSeries    bool     `json:"isSeries"`
	SeriesID    *string  `json:"seriesId,omitempty"`
	Note        *string  `json:"note,omitempty"`
	League      *string  `json:"league,omitempty"`
	IsPinMode   bool     `json:"isPinMode"`
	Patterns    []string `json:"patterns"`
	Balls       []string `json:"balls"` // nil when not tracked
	IsClean     bool     `json:"isClean"`
	IsPerfect   bool     `json:"isPerfect"`
}

func (g Game) PlayedAt() time.Time {
	return time.UnixMilli(g.Date)
}

func (g Game) LeagueName() string {
	if g.League == nil {
		return ""
	}
	return *g.League
}

// Values returns the pin counts of the frame in throw order.
func (f Frame) Values() []int {
	values := make([]int, len(f.Throws))
	for i, t := range f.Throws {
		values[i] = t.Value
	}
	return values
}

func (f Frame) Clone() Frame {
	throws := make([]Throw, len(f.Throws))
	for i, t := range f.Throws {
		throws[i] = t.Clone()
	}
	return Frame{FrameIndex: f.FrameIndex, Throws: throws}
}

func (t Throw) Clone() Throw {
	t.PinsLeftStanding = slices.Clone(t.PinsLeftStanding)
	t.PinsKnockedDown = slices.Clone(t.PinsKnockedDown)
	return t
}
