package labour

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlfscli/pkg/contracts/domain"
)

func testObservations() []domain.Observation {
	return []domain.Observation{
		{
			Province: "North West", PopulationGroup: "Black African",
			EmployedMale: 500000, EmployedFemale: 300000, EmployedTotal: 800000,
			UnemployedMale: 250000, UnemployedFemale: 300000, UnemployedTotal: 550000,
			ActiveMale: 750000, ActiveFemale: 600000, ActiveTotal: 1350000,
		},
		{
			Province: "North West", PopulationGroup: "Coloured",
			EmployedMale: 50000, EmployedFemale: 29353, EmployedTotal: 79353,
			UnemployedMale: 20000, UnemployedFemale: 26071, UnemployedTotal: 46071,
			ActiveMale: 70000, ActiveFemale: 55424, ActiveTotal: 125424,
		},
		{
			Province: "Western Cape", PopulationGroup: "Black African",
			EmployedMale: 800000, EmployedFemale: 774457, EmployedTotal: 1574457,
			UnemployedMale: 180000, UnemployedFemale: 203823, UnemployedTotal: 383823,
			ActiveMale: 980000, ActiveFemale: 978280, ActiveTotal: 1958280,
		},
	}
}

func TestAggregatorByProvince(t *testing.T) {
	agg := NewAggregator(slog.Default())
	provinces := agg.ByProvince(context.Background(), testObservations())

	require.Len(t, provinces, 2)

	// Alphabetical by key.
	assert.Equal(t, "North West", provinces[0].Key)
	assert.Equal(t, "Western Cape", provinces[1].Key)

	nw := provinces[0]
	assert.InDelta(t, 596071, nw.UnemployedTotal, 1e-9)
	assert.InDelta(t, 1475424, nw.ActiveTotal, 1e-9)
	require.True(t, nw.UnemploymentRate.Valid)
	assert.InDelta(t, 40.4, nw.UnemploymentRate.Value, 1e-9)

	wc := provinces[1]
	require.True(t, wc.UnemploymentRate.Valid)
	assert.InDelta(t, 19.6, wc.UnemploymentRate.Value, 1e-9)

	gap := nw.UnemploymentRate.Sub(wc.UnemploymentRate)
	require.True(t, gap.Valid)
	assert.InDelta(t, 20.8, gap.Value, 0.1)
}

func TestAggregatorSkipsRowsWithoutKey(t *testing.T) {
	agg := NewAggregator(slog.Default())
	observations := append(testObservations(),
		domain.Observation{Province: "", PopulationGroup: "Black African", ActiveTotal: 999999},
		domain.Observation{Province: "Gauteng", PopulationGroup: "", ActiveTotal: 999999},
	)

	provinces := agg.ByProvince(context.Background(), observations)
	require.Len(t, provinces, 2, "rows without a full category key must be excluded")
	for _, p := range provinces {
		assert.NotEqual(t, "Gauteng", p.Key)
	}
}

func TestAggregatorGenderGap(t *testing.T) {
	agg := NewAggregator(slog.Default())
	provinces := agg.ByProvince(context.Background(), []domain.Observation{
		{
			Province: "Eastern Cape", PopulationGroup: "Black African",
			UnemployedMale: 335, ActiveMale: 1000,
			UnemployedFemale: 450, ActiveFemale: 1000,
			UnemployedTotal: 785, ActiveTotal: 2000,
		},
	})

	require.Len(t, provinces, 1)
	gap := provinces[0].GenderGap
	require.True(t, gap.Valid)
	assert.InDelta(t, 11.5, gap.Value, 1e-9)
}

func TestAggregatorUndefinedRates(t *testing.T) {
	agg := NewAggregator(slog.Default())
	provinces := agg.ByProvince(context.Background(), []domain.Observation{
		{Province: "Free State", PopulationGroup: "White"}, // all counts zero
	})

	require.Len(t, provinces, 1)
	assert.False(t, provinces[0].UnemploymentRate.Valid, "zero denominator must yield an undefined rate, not zero")
	assert.False(t, provinces[0].GenderGap.Valid)
}

func TestAggregatorIsDeterministic(t *testing.T) {
	agg := NewAggregator(slog.Default())
	ctx := context.Background()

	first := agg.ByProvince(ctx, testObservations())
	second := agg.ByProvince(ctx, testObservations())
	assert.Equal(t, first, second, "identical input must yield identical output, ordering included")
}

func TestAggregatorByPopulationGroup(t *testing.T) {
	agg := NewAggregator(slog.Default())
	groups := agg.ByPopulationGroup(context.Background(), testObservations())

	require.Len(t, groups, 2)
	assert.Equal(t, "Black African", groups[0].Key)
	assert.Equal(t, "Coloured", groups[1].Key)

	// Black African spans two provinces and must be summed across them.
	assert.InDelta(t, 1350000+1958280, groups[0].ActiveTotal, 1e-9)
}
