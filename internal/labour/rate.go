package labour

import "math"

// NewRate derives a percentage rate from a numerator/denominator pair.
// The result is 100*numerator/denominator rounded to one decimal place.
// A non-positive denominator produces an invalid rate, never zero.
func NewRate(numerator, denominator float64) Rate {
	if denominator <= 0 {
		return Rate{}
	}
	return Rate{Value: roundRate(100 * numerator / denominator), Valid: true}
}

// Sub returns the difference r - other in percentage points, rounded to one
// decimal place. The result is invalid when either operand is invalid.
func (r Rate) Sub(other Rate) Rate {
	if !r.Valid || !other.Valid {
		return Rate{}
	}
	return Rate{Value: roundRate(r.Value - other.Value), Valid: true}
}

// moreRate orders rates descending with invalid rates after all valid ones.
// Used as the shared comparator for gap ranking and rate-sorted summaries so
// the undefined-rate policy cannot drift between call sites.
func moreRate(a, b Rate) bool {
	switch {
	case a.Valid && b.Valid:
		return a.Value > b.Value
	case a.Valid:
		return true
	default:
		return false
	}
}

func roundRate(v float64) float64 {
	return math.Round(v*10) / 10
}
