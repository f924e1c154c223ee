package game

// Scoring decides how many points an answer is worth. Kept separate from the
// ledger so the award rule can change without touching response bookkeeping.
type Scoring struct {
	PerCorrect int
}

func NewScoring() *Scoring {
	return &Scoring{PerCorrect: 1}
}

func (s *Scoring) Award(correct bool) int {
	if !correct {
		return 0
	}
	return s.PerCorrect
}
