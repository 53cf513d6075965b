package scoring

import "bowling-tracker/internal/domain"

type tenthPhase int

const (
	tenthFirstPending tenthPhase = iota
	tenthSecondPending
	tenthBonusEligible // strike or spare in the first two throws
	tenthComplete
)

func (p tenthPhase) String() string {
	switch p {
	case tenthFirstPending:
		return "first-throw-pending"
	case tenthSecondPending:
		return "second-throw-pending"
	case tenthBonusEligible:
		return "third-throw-eligible"
	case tenthComplete:
		return "frame-complete"
	}
	return "unknown"
}

// tenthFrame tracks the tenth frame as it is rolled. standing is the number of
// pins up for the next throw; fresh is set when the previous throw cleared the
// deck (strike or spare) and a new rack was set.
type tenthFrame struct {
	phase    tenthPhase
	standing int
	fresh    bool
}

func newTenthFrame() tenthFrame {
	return tenthFrame{phase: tenthFirstPending, standing: domain.MaxPins, fresh: true}
}

func tenthFrameOf(values []int) tenthFrame {
	t := newTenthFrame()
	for _, v := range values {
		t = t.roll(v)
	}
	return t
}

func (t tenthFrame) roll(value int) tenthFrame {
	switch t.phase {
	case tenthFirstPending:
		t.phase = tenthSecondPending
	case tenthSecondPending:
		if t.fresh || value >= t.standing {
			t.phase = tenthBonusEligible
		} else {
			t.phase = tenthComplete
		}
	case tenthBonusEligible:
		t.phase = tenthComplete
	case tenthComplete:
		return t
	}

	if value >= t.standing {
		t.standing = domain.MaxPins
		t.fresh = true
	} else {
		t.standing -= value
		t.fresh = false
	}
	return t
}

// accepts reports whether another throw may be recorded in the frame.
func (t tenthFrame) accepts() bool {
	return t.phase != tenthComplete
}
