package labour

import (
	"context"
	"sort"

	"qlfscli/pkg/contracts/domain"
)

// SummarizeGroups groups observations by population group only, ignoring
// province, and derives national employment and unemployment rates per group.
// The result is sorted alphabetically by group name.
func (a *Aggregator) SummarizeGroups(ctx context.Context, observations []domain.Observation) []GroupSummary {
	byGroup := a.ByPopulationGroup(ctx, observations)

	summaries := make([]GroupSummary, 0, len(byGroup))
	for _, agg := range byGroup {
		summaries = append(summaries, GroupSummary{
			Group:            agg.Key,
			Employed:         agg.EmployedTotal,
			Unemployed:       agg.UnemployedTotal,
			Active:           agg.ActiveTotal,
			UnemploymentRate: agg.UnemploymentRate,
			EmploymentRate:   agg.EmploymentRate,
		})
	}
	return summaries
}

// ByVolume returns a new slice of the summaries sorted descending by
// economically active volume. The input is not modified, so volume and rate
// orderings are independent views over the same set.
func ByVolume(summaries []GroupSummary) []GroupSummary {
	sorted := make([]GroupSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Active > sorted[j].Active
	})
	return sorted
}

// ByRate returns a new slice of the summaries sorted descending by
// unemployment rate, with undefined rates after all defined ones.
func ByRate(summaries []GroupSummary) []GroupSummary {
	sorted := make([]GroupSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return moreRate(sorted[i].UnemploymentRate, sorted[j].UnemploymentRate)
	})
	return sorted
}
