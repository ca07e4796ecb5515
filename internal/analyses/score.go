package analyses

import "math"

// Score computes the overall match percentage from a gap analysis: strong
// matches count 100, partial 50, gaps 0, averaged and rounded half away from
// zero. The second return is false when the gap analysis is empty and no
// score is defined.
func Score(gaps []GapItem) (int, bool) {
	if len(gaps) == 0 {
		return 0, false
	}
	total := 0
	for _, g := range gaps {
		switch g.MatchLevel {
		case MatchStrong:
			total += 100
		case MatchPartial:
			total += 50
		}
	}
	return int(math.Round(float64(total) / float64(len(gaps)))), true
}
