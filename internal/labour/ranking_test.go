package labour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByGenderGap(t *testing.T) {
	aggregates := []Aggregate{
		{Key: "Eastern Cape", GenderGap: Rate{Value: 11.5, Valid: true}},
		{Key: "Free State"}, // undefined gap
		{Key: "Gauteng", GenderGap: Rate{Value: 4.2, Valid: true}},
		{Key: "Limpopo", GenderGap: Rate{Value: 8.9, Valid: true}},
	}

	ranked := RankByGenderGap(aggregates)

	require.Len(t, ranked, 4)
	assert.Equal(t, "Eastern Cape", ranked[0].Key)
	assert.Equal(t, "Limpopo", ranked[1].Key)
	assert.Equal(t, "Gauteng", ranked[2].Key)
	assert.Equal(t, "Free State", ranked[3].Key, "undefined gaps sort after all defined ones")

	// Input order untouched.
	assert.Equal(t, "Eastern Cape", aggregates[0].Key)
	assert.Equal(t, "Free State", aggregates[1].Key)
}

func TestRankByGenderGapStableOnTies(t *testing.T) {
	aggregates := []Aggregate{
		{Key: "Gauteng", GenderGap: Rate{Value: 5.0, Valid: true}},
		{Key: "Limpopo", GenderGap: Rate{Value: 5.0, Valid: true}},
		{Key: "Mpumalanga"},
		{Key: "Northern Cape"},
	}

	ranked := RankByGenderGap(aggregates)
	assert.Equal(t, "Gauteng", ranked[0].Key)
	assert.Equal(t, "Limpopo", ranked[1].Key)
	assert.Equal(t, "Mpumalanga", ranked[2].Key)
	assert.Equal(t, "Northern Cape", ranked[3].Key)
}

func TestRankByGenderGapNegativeGaps(t *testing.T) {
	// A province where men are worse off still ranks, just below.
	aggregates := []Aggregate{
		{Key: "A", GenderGap: Rate{Value: -3.0, Valid: true}},
		{Key: "B", GenderGap: Rate{Value: 2.0, Valid: true}},
	}

	ranked := RankByGenderGap(aggregates)
	assert.Equal(t, "B", ranked[0].Key)
	assert.Equal(t, "A", ranked[1].Key)
}
