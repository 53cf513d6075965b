package scoring

import "bowling-tracker/internal/domain"

// RunningScores returns the cumulative score after each frame, stopping at
// the first frame that cannot be scored yet because it is unfinished or its
// bonus throws have not been rolled.
func RunningScores(frames []domain.Frame) []int {
	var rolls []int
	starts := make([]int, 0, domain.FramesPerGame)
	for i, f := range frames {
		if i >= domain.FramesPerGame || len(f.Throws) == 0 {
			break
		}
		starts = append(starts, len(rolls))
		rolls = append(rolls, f.Values()...)
	}

	scores := make([]int, 0, len(starts))
	total := 0
	for i, start := range starts {
		values := frames[i].Values()

		if i == tenthFrameIndex {
			if tenthFrameOf(values).accepts() {
				break
			}
			for _, v := range values {
				total += v
			}
			scores = append(scores, total)
			break
		}

		switch {
		case values[0] == domain.MaxPins:
			if start+2 >= len(rolls) {
				return scores
			}
			total += domain.MaxPins + rolls[start+1] + rolls[start+2]
		case len(values) < 2:
			return scores
		case values[0]+values[1] == domain.MaxPins:
			if start+2 >= len(rolls) {
				return scores
			}
			total += domain.MaxPins + rolls[start+2]
		default:
			total += values[0] + values[1]
		}
		scores = append(scores, total)
	}
	return scores
}

// TotalScore is the last running score, or 0 before any frame can be scored.
func TotalScore(frames []domain.Frame) int {
	scores := RunningScores(frames)
	if len(scores) == 0 {
		return 0
	}
	return scores[len(scores)-1]
}

// ResolveScores fills in the running scores and total a caller left unset.
// A supplied total wins, otherwise the total is the last running score.
func ResolveScores(frames []domain.Frame, frameScores []int, total *int) ([]int, int) {
	if frameScores == nil {
		frameScores = RunningScores(frames)
	}
	switch {
	case total != nil:
		return frameScores, *total
	case len(frameScores) > 0:
		return frameScores, frameScores[len(frameScores)-1]
	}
	return frameScores, 0
}
