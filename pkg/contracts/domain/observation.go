package domain

// Observation represents one row of the cleaned QLFS dataset: the labour
// force counts for a single (province, population group) cell, split by sex.
// Counts are non-negative; a missing cell in the source table is a structural
// zero, not an error.
type Observation struct {
	Province        string `json:"province" csv:"province" validate:"required"`
	PopulationGroup string `json:"population_group" csv:"population_group" validate:"required"`

	EmployedMale   float64 `json:"employed_male" csv:"employed_male" validate:"gte=0"`
	EmployedFemale float64 `json:"employed_female" csv:"employed_female" validate:"gte=0"`
	EmployedTotal  float64 `json:"employed_total" csv:"employed_total" validate:"gte=0"`

	UnemployedMale   float64 `json:"unemployed_male" csv:"unemployed_male" validate:"gte=0"`
	UnemployedFemale float64 `json:"unemployed_female" csv:"unemployed_female" validate:"gte=0"`
	UnemployedTotal  float64 `json:"unemployed_total" csv:"unemployed_total" validate:"gte=0"`

	ActiveMale   float64 `json:"active_male" csv:"active_male" validate:"gte=0"`
	ActiveFemale float64 `json:"active_female" csv:"active_female" validate:"gte=0"`
	ActiveTotal  float64 `json:"active_total" csv:"active_total" validate:"gte=0"`
}

// HasKey reports whether the observation carries both category keys.
// Rows without a full key are excluded from aggregation.
func (o Observation) HasKey() bool {
	return o.Province != "" && o.PopulationGroup != ""
}

// ObservationColumns is the fixed column contract of the cleaned dataset.
// Header names are matched lower-cased and trimmed.
var ObservationColumns = []string{
	"province",
	"population_group",
	"employed_male",
	"employed_female",
	"employed_total",
	"unemployed_male",
	"unemployed_female",
	"unemployed_total",
	"active_male",
	"active_female",
	"active_total",
}
