package labour

import "sort"

// RankByGenderGap returns a new slice sorted descending by gender gap.
// Aggregates with an invalid gap sort after all valid ones; the sort is
// stable, so rows tied on gap (and all invalid rows) keep their incoming
// order. The input slice is not modified.
func RankByGenderGap(aggregates []Aggregate) []Aggregate {
	ranked := make([]Aggregate, len(aggregates))
	copy(ranked, aggregates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return moreRate(ranked[i].GenderGap, ranked[j].GenderGap)
	})

	return ranked
}
