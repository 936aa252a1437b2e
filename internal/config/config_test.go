package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.MaxActivePlayers)
	assert.Equal(t, 0.05, cfg.HouseEdge)
	assert.Equal(t, 3, cfg.MaxPrizeMultiplier)
	assert.Equal(t, 0.3, cfg.MaxPotPercentage)
	assert.Equal(t, 5, cfg.MinPrizeAmount)
	assert.Equal(t, []int{5, 10, 15, 20}, cfg.AllowedEntryAmounts)
	assert.True(t, cfg.UseWeightedSelection)
	assert.Equal(t, 1.2, cfg.WeightExponent)
}

func TestIsValidEntryAmount(t *testing.T) {
	cfg := Default()

	for _, amount := range []int{5, 10, 15, 20} {
		assert.True(t, cfg.IsValidEntryAmount(amount), "amount %d should be valid", amount)
	}

	for _, amount := range []int{0, -5, 1, 7, 25, 100} {
		assert.False(t, cfg.IsValidEntryAmount(amount), "amount %d should be invalid", amount)
	}
}

func TestHouseCommission(t *testing.T) {
	cfg := Default()

	testCases := []struct {
		amount     int
		commission int
	}{
		{amount: 5, commission: 0},
		{amount: 10, commission: 0},
		{amount: 15, commission: 0},
		{amount: 20, commission: 1},
		{amount: 100, commission: 5},
		{amount: 37, commission: 1},
		{amount: 0, commission: 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.commission, cfg.HouseCommission(tc.amount), "commission on %d", tc.amount)
		assert.Equal(t, tc.amount-tc.commission, cfg.NetAmount(tc.amount), "net of %d", tc.amount)
	}
}
