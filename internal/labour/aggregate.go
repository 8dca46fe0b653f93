package labour

import (
	"context"
	"log/slog"
	"sort"

	"qlfscli/pkg/contracts/domain"
)

// Aggregator groups survey observations and derives rates. It holds no state
// between calls; every method is a pure function of its input apart from
// logging.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator with the given logger.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// ByProvince groups observations by province, sums the nine counts and
// derives rates. Observations without a full category key are skipped.
// The result is sorted alphabetically by key; that ordering is the tie-break
// base for every downstream selection.
func (a *Aggregator) ByProvince(ctx context.Context, observations []domain.Observation) []Aggregate {
	return a.aggregate(ctx, observations, func(o domain.Observation) string { return o.Province })
}

// ByPopulationGroup groups observations by population group across all
// provinces, with the same ordering guarantees as ByProvince.
func (a *Aggregator) ByPopulationGroup(ctx context.Context, observations []domain.Observation) []Aggregate {
	return a.aggregate(ctx, observations, func(o domain.Observation) string { return o.PopulationGroup })
}

func (a *Aggregator) aggregate(ctx context.Context, observations []domain.Observation, keyFn func(domain.Observation) string) []Aggregate {
	sums := make(map[string]*Aggregate)
	skipped := 0

	for _, o := range observations {
		if !o.HasKey() {
			skipped++
			continue
		}
		key := keyFn(o)

		agg, ok := sums[key]
		if !ok {
			agg = &Aggregate{Key: key}
			sums[key] = agg
		}

		agg.EmployedMale += o.EmployedMale
		agg.EmployedFemale += o.EmployedFemale
		agg.EmployedTotal += o.EmployedTotal
		agg.UnemployedMale += o.UnemployedMale
		agg.UnemployedFemale += o.UnemployedFemale
		agg.UnemployedTotal += o.UnemployedTotal
		agg.ActiveMale += o.ActiveMale
		agg.ActiveFemale += o.ActiveFemale
		agg.ActiveTotal += o.ActiveTotal
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	aggregates := make([]Aggregate, 0, len(keys))
	for _, key := range keys {
		agg := sums[key]
		agg.UnemploymentRate = NewRate(agg.UnemployedTotal, agg.ActiveTotal)
		agg.EmploymentRate = NewRate(agg.EmployedTotal, agg.ActiveTotal)
		agg.MaleUnemploymentRate = NewRate(agg.UnemployedMale, agg.ActiveMale)
		agg.FemaleUnemploymentRate = NewRate(agg.UnemployedFemale, agg.ActiveFemale)
		agg.GenderGap = agg.FemaleUnemploymentRate.Sub(agg.MaleUnemploymentRate)
		aggregates = append(aggregates, *agg)
	}

	a.logger.InfoContext(ctx, "aggregated observations",
		"observations", len(observations),
		"skipped_missing_key", skipped,
		"aggregates", len(aggregates),
	)

	return aggregates
}
