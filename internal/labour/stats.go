package labour

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrNotComputable is returned when a contingency table has a zero margin,
// making the expected frequencies degenerate.
var ErrNotComputable = errors.New("chi-square not computable: contingency table has a zero margin")

// DefaultConfidenceLevel is the confidence level used when none is configured.
const DefaultConfidenceLevel = 0.95

// ChiSquareTest runs a Pearson chi-square independence test on the 2x2
// contingency table built from the (unemployed, employed) totals of two
// aggregate rows. One degree of freedom, no continuity correction. Returns
// ErrNotComputable when any row or column margin is zero; it never reports a
// degenerate table as a zero statistic.
func ChiSquareTest(a, b Aggregate) (*ChiSquareResult, error) {
	observed := [2][2]float64{
		{a.UnemployedTotal, a.EmployedTotal},
		{b.UnemployedTotal, b.EmployedTotal},
	}

	rowSums := [2]float64{
		observed[0][0] + observed[0][1],
		observed[1][0] + observed[1][1],
	}
	colSums := [2]float64{
		observed[0][0] + observed[1][0],
		observed[0][1] + observed[1][1],
	}
	total := rowSums[0] + rowSums[1]

	if rowSums[0] <= 0 || rowSums[1] <= 0 || colSums[0] <= 0 || colSums[1] <= 0 {
		return nil, ErrNotComputable
	}

	var statistic float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			expected := rowSums[i] * colSums[j] / total
			diff := observed[i][j] - expected
			statistic += diff * diff / expected
		}
	}

	dist := distuv.ChiSquared{K: 1}
	return &ChiSquareResult{
		Statistic:        statistic,
		PValue:           dist.Survival(statistic),
		DegreesOfFreedom: 1,
	}, nil
}

// ConfidenceInterval estimates a normal-approximation confidence interval for
// the unemployment rate p = unemployed/active, in percent. The interval is
// p +/- z*sqrt(p(1-p)/active) with z the standard normal quantile at
// (1+level)/2, clipped to [0, 100] after construction. Returns false when
// active is not positive or the level is outside (0, 1).
func ConfidenceInterval(unemployed, active, level float64) (Interval, bool) {
	if active <= 0 || level <= 0 || level >= 1 {
		return Interval{}, false
	}

	p := unemployed / active
	z := distuv.UnitNormal.Quantile((1 + level) / 2)
	half := 100 * z * math.Sqrt(p*(1-p)/active)

	return Interval{
		Lower: clipPercent(100*p - half),
		Upper: clipPercent(100*p + half),
		Level: level,
	}, true
}

// Compare builds the significance comparison between two aggregate rows at
// the given confidence level. A degenerate chi-square table or a zero active
// count leaves the corresponding field nil rather than failing the whole
// comparison.
func Compare(a, b Aggregate, level float64) Comparison {
	cmp := Comparison{A: a, B: b}

	if result, err := ChiSquareTest(a, b); err == nil {
		cmp.ChiSquare = result
	}

	if iv, ok := ConfidenceInterval(a.UnemployedTotal, a.ActiveTotal, level); ok {
		cmp.IntervalA = &iv
	}
	if iv, ok := ConfidenceInterval(b.UnemployedTotal, b.ActiveTotal, level); ok {
		cmp.IntervalB = &iv
	}
	if cmp.IntervalA != nil && cmp.IntervalB != nil {
		cmp.IntervalsOverlap = cmp.IntervalA.Overlaps(*cmp.IntervalB)
	}

	return cmp
}

func clipPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
