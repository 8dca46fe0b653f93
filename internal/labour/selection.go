package labour

// MaxBy returns the aggregate with the highest value of the given rate.
// Aggregates whose rate is invalid are skipped. Ties resolve to the first
// occurrence in the input order, which ByProvince guarantees is alphabetical
// by key. Returns false when no aggregate carries a valid rate.
func MaxBy(aggregates []Aggregate, rateFn func(Aggregate) Rate) (Aggregate, bool) {
	return extremalBy(aggregates, rateFn, func(candidate, best float64) bool {
		return candidate > best
	})
}

// MinBy is the counterpart of MaxBy for the lowest value.
func MinBy(aggregates []Aggregate, rateFn func(Aggregate) Rate) (Aggregate, bool) {
	return extremalBy(aggregates, rateFn, func(candidate, best float64) bool {
		return candidate < best
	})
}

// MaxByCount returns the aggregate with the highest value of the given count
// field, with the same first-occurrence tie-break as MaxBy. Returns false
// only for an empty input.
func MaxByCount(aggregates []Aggregate, countFn func(Aggregate) float64) (Aggregate, bool) {
	if len(aggregates) == 0 {
		return Aggregate{}, false
	}
	best := aggregates[0]
	for _, agg := range aggregates[1:] {
		if countFn(agg) > countFn(best) {
			best = agg
		}
	}
	return best, true
}

func extremalBy(aggregates []Aggregate, rateFn func(Aggregate) Rate, better func(candidate, best float64) bool) (Aggregate, bool) {
	var best Aggregate
	found := false
	for _, agg := range aggregates {
		rate := rateFn(agg)
		if !rate.Valid {
			continue
		}
		if !found || better(rate.Value, rateFn(best).Value) {
			best = agg
			found = true
		}
	}
	return best, found
}
