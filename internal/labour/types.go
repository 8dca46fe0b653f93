package labour

// Rate is a percentage quantity derived from a numerator/denominator pair,
// rounded to one decimal place. Valid is false when the denominator was not
// positive; an invalid rate carries no value and must never be treated as
// zero by ranking or selection.
type Rate struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Aggregate holds the summed counts and derived rates for one category key.
// Aggregates are computed once per run and not mutated afterwards.
type Aggregate struct {
	Key string `json:"key"`

	EmployedMale   float64 `json:"employed_male"`
	EmployedFemale float64 `json:"employed_female"`
	EmployedTotal  float64 `json:"employed_total"`

	UnemployedMale   float64 `json:"unemployed_male"`
	UnemployedFemale float64 `json:"unemployed_female"`
	UnemployedTotal  float64 `json:"unemployed_total"`

	ActiveMale   float64 `json:"active_male"`
	ActiveFemale float64 `json:"active_female"`
	ActiveTotal  float64 `json:"active_total"`

	UnemploymentRate       Rate `json:"unemployment_rate"`
	EmploymentRate         Rate `json:"employment_rate"`
	MaleUnemploymentRate   Rate `json:"male_unemployment_rate"`
	FemaleUnemploymentRate Rate `json:"female_unemployment_rate"`

	// GenderGap is the female unemployment rate minus the male unemployment
	// rate, in percentage points. Invalid when either operand is invalid.
	GenderGap Rate `json:"gender_gap"`
}

// GroupSummary holds national totals and rates for one population group,
// provinces ignored.
type GroupSummary struct {
	Group string `json:"group"`

	Employed   float64 `json:"employed"`
	Unemployed float64 `json:"unemployed"`
	Active     float64 `json:"active"`

	UnemploymentRate Rate `json:"unemployment_rate"`
	EmploymentRate   Rate `json:"employment_rate"`
}

// ChiSquareResult is the outcome of a chi-square independence test on a
// 2x2 contingency table.
type ChiSquareResult struct {
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
}

// Interval is a confidence interval for an unemployment rate, in percent,
// clipped to [0, 100].
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Overlaps reports whether the two intervals share any point.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Lower <= other.Upper && other.Lower <= iv.Upper
}

// Comparison bundles the significance test and interval estimates for two
// aggregate rows. ChiSquare is nil when the contingency table is degenerate;
// an interval pointer is nil when the row's active count is zero.
// IntervalsOverlap is meaningful only when both intervals are present.
type Comparison struct {
	A Aggregate `json:"a"`
	B Aggregate `json:"b"`

	ChiSquare *ChiSquareResult `json:"chi_square,omitempty"`

	IntervalA *Interval `json:"interval_a,omitempty"`
	IntervalB *Interval `json:"interval_b,omitempty"`

	IntervalsOverlap bool `json:"intervals_overlap"`
}
