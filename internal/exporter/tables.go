package exporter

import (
	"strconv"

	"qlfscli/internal/labour"
)

var aggregateHeaders = []string{
	"province",
	"employed_total", "unemployed_total", "active_total",
	"unemployment_rate", "employment_rate",
	"male_unemployment_rate", "female_unemployment_rate",
	"gender_gap",
}

var groupSummaryHeaders = []string{
	"population_group",
	"employed", "unemployed", "active",
	"unemployment_rate", "employment_rate",
}

// WriteProvinceTable writes the per-province aggregates.
func (w *CSVWriter) WriteProvinceTable(fileName string, aggregates []labour.Aggregate) error {
	records := make([][]string, 0, len(aggregates))
	for _, agg := range aggregates {
		records = append(records, aggregateRecord(agg))
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   aggregateHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteGenderGapTable writes aggregates in gender-gap rank order. It is the
// caller's job to pass a ranked slice; the writer does not re-sort.
func (w *CSVWriter) WriteGenderGapTable(fileName string, ranked []labour.Aggregate) error {
	headers := append([]string{"rank"}, aggregateHeaders...)
	records := make([][]string, 0, len(ranked))
	for i, agg := range ranked {
		records = append(records, append([]string{strconv.Itoa(i + 1)}, aggregateRecord(agg)...))
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteGroupSummaryTable writes population-group summaries in the order
// given.
func (w *CSVWriter) WriteGroupSummaryTable(fileName string, summaries []labour.GroupSummary) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Group,
			formatCount(s.Employed),
			formatCount(s.Unemployed),
			formatCount(s.Active),
			formatRate(s.UnemploymentRate),
			formatRate(s.EmploymentRate),
		})
	}
	return w.WriteCSV(fileName, WriteOptions{
		Headers:   groupSummaryHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

func aggregateRecord(agg labour.Aggregate) []string {
	return []string{
		agg.Key,
		formatCount(agg.EmployedTotal),
		formatCount(agg.UnemployedTotal),
		formatCount(agg.ActiveTotal),
		formatRate(agg.UnemploymentRate),
		formatRate(agg.EmploymentRate),
		formatRate(agg.MaleUnemploymentRate),
		formatRate(agg.FemaleUnemploymentRate),
		formatRate(agg.GenderGap),
	}
}

// formatRate renders an undefined rate as an empty cell.
func formatRate(r labour.Rate) string {
	if !r.Valid {
		return ""
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
