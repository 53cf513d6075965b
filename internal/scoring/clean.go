package scoring

import "bowling-tracker/internal/domain"

// ComputeIsClean reports whether no frame recorded so far is open. Frames
// without throws are not yet played and never count against the game, and a
// tenth frame holding only its first throw is skipped as well, so a game in
// progress reads as clean until an open frame actually appears.
func ComputeIsClean(frames []domain.Frame) bool {
	for i, f := range frames {
		if i >= domain.FramesPerGame {
			break
		}
		if len(f.Throws) == 0 {
			continue
		}

		first := f.Throws[0].Value
		second, hasSecond := throwAt(f.Throws, 1)

		if i < tenthFrameIndex {
			if first != domain.MaxPins && (!hasSecond || first+second < domain.MaxPins) {
				return false
			}
			continue
		}

		if !hasSecond {
			continue
		}
		if first != domain.MaxPins && first+second < domain.MaxPins {
			return false
		}
	}
	return true
}
