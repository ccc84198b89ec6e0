package travel

import "slices"

// CandidateSet holds unique values in first-seen order, each with the best
// confidence any rule gave it.
type CandidateSet []Candidate

// Reduce folds raw candidates into a set: a repeated value keeps its maximum
// confidence and its first position. Blank values are dropped and confidences
// are clamped to [0,1].
func Reduce(cands []Candidate) CandidateSet {
	if len(cands) == 0 {
		return nil
	}
	out := make(CandidateSet, 0, len(cands))
	index := make(map[string]int, len(cands))
	for _, c := range cands {
		if c.Value == "" {
			continue
		}
		c.Confidence = clamp(c.Confidence)
		if i, ok := index[c.Value]; ok {
			if c.Confidence > out[i].Confidence {
				out[i].Confidence = c.Confidence
			}
			continue
		}
		index[c.Value] = len(out)
		out = append(out, c)
	}
	return out
}

// Best returns the highest-confidence candidate; ties go to the first seen.
func (s CandidateSet) Best() (Candidate, bool) {
	if len(s) == 0 {
		return Candidate{}, false
	}
	best := s[0]
	for _, c := range s[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}

// Ranked returns a copy sorted by descending confidence, stable on ties.
func (s CandidateSet) Ranked() []Candidate {
	out := slices.Clone([]Candidate(s))
	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		default:
			return 0
		}
	})
	return out
}

func (s CandidateSet) Merge(o CandidateSet) CandidateSet {
	all := make([]Candidate, 0, len(s)+len(o))
	all = append(all, s...)
	all = append(all, o...)
	return Reduce(all)
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
