package statistics

import (
	"fmt"
	"math"
	"sort"
)

// MatchResult represents the outcome of a single simulated match
type MatchResult struct {
	Seed             int64 // Deal seed (for replay)
	Players          int
	Actions          int  // Claims, passes and challenges recorded
	WinnerSeat       int  // Seat index of the winner, -1 if stalled
	Stalled          bool // Hit the action cap before anyone emptied their hand
	Consensus        int  // Rounds retired to the discard by passes
	BluffsCaught     int  // Challenges that exposed a bluff
	FalseAccusations int  // Challenges against honest claims
	LargestPile      int  // Most cards collected by a single resolution
}

// Rounds returns how many claims were resolved in the match
func (r MatchResult) Rounds() int {
	return r.Consensus + r.BluffsCaught + r.FalseAccusations
}

// Statistics aggregates simulated match results
type Statistics struct {
	Matches   int
	Completed int
	Stalled   int

	// Match length in actions, completed matches only
	SumActions  float64
	SumActions2 float64   // Sum of squares for variance calculation
	Values      []float64 // Store all values for median/percentile calculation

	// Resolution outcomes across all matches
	Consensus        int
	BluffsCaught     int
	FalseAccusations int
	MaxPile          int

	WinsBySeat []int
}

// Add incorporates a new match result into the statistics
func (s *Statistics) Add(result MatchResult) {
	s.Matches++
	s.Consensus += result.Consensus
	s.BluffsCaught += result.BluffsCaught
	s.FalseAccusations += result.FalseAccusations
	if result.LargestPile > s.MaxPile {
		s.MaxPile = result.LargestPile
	}

	if result.Stalled || result.WinnerSeat < 0 {
		s.Stalled++
		return
	}

	s.Completed++
	actions := float64(result.Actions)
	s.SumActions += actions
	s.SumActions2 += actions * actions
	s.Values = append(s.Values, actions)

	for len(s.WinsBySeat) <= result.WinnerSeat {
		s.WinsBySeat = append(s.WinsBySeat, 0)
	}
	s.WinsBySeat[result.WinnerSeat]++
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(o *Statistics) {
	s.Matches += o.Matches
	s.Completed += o.Completed
	s.Stalled += o.Stalled
	s.SumActions += o.SumActions
	s.SumActions2 += o.SumActions2
	s.Values = append(s.Values, o.Values...)
	s.Consensus += o.Consensus
	s.BluffsCaught += o.BluffsCaught
	s.FalseAccusations += o.FalseAccusations
	if o.MaxPile > s.MaxPile {
		s.MaxPile = o.MaxPile
	}
	for len(s.WinsBySeat) < len(o.WinsBySeat) {
		s.WinsBySeat = append(s.WinsBySeat, 0)
	}
	for seat, wins := range o.WinsBySeat {
		s.WinsBySeat[seat] += wins
	}
}

// Mean returns the mean match length in actions
func (s *Statistics) Mean() float64 {
	if s.Completed == 0 {
		return 0
	}
	return s.SumActions / float64(s.Completed)
}

// Variance returns the sample variance of match length
func (s *Statistics) Variance() float64 {
	if s.Completed < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumActions2 - float64(s.Completed)*mean*mean) / float64(s.Completed-1)
}

// StdDev returns the sample standard deviation of match length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Completed == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Completed))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median match length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the match length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatWinRate returns the share of completed matches won from seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= len(s.WinsBySeat) || s.Completed == 0 {
		return 0
	}
	return float64(s.WinsBySeat[seat]) / float64(s.Completed)
}

// ChallengeSuccessRate returns the share of challenges that caught a bluff
func (s *Statistics) ChallengeSuccessRate() float64 {
	challenges := s.BluffsCaught + s.FalseAccusations
	if challenges == 0 {
		return 0
	}
	return float64(s.BluffsCaught) / float64(challenges)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid matches count: %d", s.Matches)
	}

	if s.Completed+s.Stalled != s.Matches {
		return fmt.Errorf("completed (%d) + stalled (%d) does not match matches (%d)",
			s.Completed, s.Stalled, s.Matches)
	}

	if len(s.Values) != s.Completed {
		return fmt.Errorf("values array length (%d) does not match completed count (%d)",
			len(s.Values), s.Completed)
	}

	wins := 0
	for _, w := range s.WinsBySeat {
		wins += w
	}
	if wins != s.Completed {
		return fmt.Errorf("seat wins total (%d) does not match completed matches (%d)", wins, s.Completed)
	}

	return nil
}
