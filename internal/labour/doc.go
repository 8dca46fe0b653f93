// Package labour implements the QLFS aggregation and hypothesis-testing
// pipeline over cleaned survey observations.
//
// The pipeline is a pure, deterministic function of its input: grouping and
// summing counts by category key, deriving percentage rates, selecting
// extremal rows, running a chi-square independence test and proportion
// confidence intervals between two aggregates, and ranking rows by gender
// gap. Given identical input, every operation yields identical output,
// including tie-breaks (aggregates are ordered alphabetically by key and
// ties resolve to the first occurrence in that order).
//
// # Architecture
//
//   - types.go: Rate, Aggregate, GroupSummary and comparison result types
//   - rate.go: rate derivation and the undefined-rate policy
//   - aggregate.go: group-and-sum by province key
//   - summary.go: population-group summaries with independent sort views
//   - stats.go: chi-square test and confidence intervals (gonum)
//   - selection.go: extremal row selection
//   - ranking.go: gender gap ranking
//
// # Undefined rates
//
// A rate whose denominator is not positive is undefined (Rate.Valid is
// false). Undefined rates are never coerced to zero: extremal selection
// skips them and gender-gap ranking sorts them after all defined values.
// This policy is fixed here rather than left to floating-point NaN
// propagation, so ordering is reproducible.
//
// # Usage
//
//	agg := labour.NewAggregator(slog.Default())
//	provinces := agg.ByProvince(ctx, observations)
//	highest, _ := labour.MaxBy(provinces, func(a labour.Aggregate) labour.Rate {
//	    return a.UnemploymentRate
//	})
//	cmp := labour.Compare(highest, lowest, 0.95)
package labour
