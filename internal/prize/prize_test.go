package prize

import (
	"math"
	"testing"

	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	cfg := config.Default()

	testCases := []struct {
		name        string
		entryAmount int
		pot         int
		expected    int
	}{
		{
			name:        "multiplier and pot caps equal",
			entryAmount: 5,
			pot:         50,
			expected:    15,
		},
		{
			name:        "pot capped",
			entryAmount: 20,
			pot:         100,
			expected:    30,
		},
		{
			name:        "multiplier capped",
			entryAmount: 10,
			pot:         200,
			expected:    30,
		},
		{
			name:        "empty pot pays nothing",
			entryAmount: 5,
			pot:         0,
			expected:    0,
		},
		{
			name:        "pot floor rounds down",
			entryAmount: 15,
			pot:         125,
			expected:    37,
		},
		{
			name:        "high entry still pot capped",
			entryAmount: 20,
			pot:         125,
			expected:    37,
		},
		{
			name:        "minimum guarantee raises small prize",
			entryAmount: 5,
			pot:         10,
			expected:    5,
		},
		{
			name:        "pot too small for guarantee",
			entryAmount: 5,
			pot:         3,
			expected:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prize, err := Calculate(cfg, tc.entryAmount, tc.pot)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, prize)
		})
	}
}

func TestCalculateExamplePot(t *testing.T) {
	// Four players with entries 5, 10, 15, 20 and an accumulated pot of 125
	cfg := config.Default()

	expected := map[int]int{5: 15, 10: 30, 15: 37, 20: 37}
	for entry, want := range expected {
		prize, err := Calculate(cfg, entry, 125)
		require.NoError(t, err)
		assert.Equal(t, want, prize, "entry %d", entry)
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	cfg := config.Default()

	_, err := Calculate(cfg, 7, 100)
	assert.ErrorIs(t, err, ErrInvalidEntryAmount)

	_, err = Calculate(cfg, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidEntryAmount)

	_, err = Calculate(cfg, 5, -1)
	assert.ErrorIs(t, err, ErrNegativePot)
}

func TestCalculateBounds(t *testing.T) {
	// For every valid entry and a sweep of pots the prize stays within the
	// multiplier cap, never exceeds the pot when the guarantee kicked in,
	// and is deterministic.
	cfg := config.Default()

	for _, entry := range cfg.AllowedEntryAmounts {
		for pot := 0; pot <= 500; pot++ {
			prize, err := Calculate(cfg, entry, pot)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, prize, 0)
			assert.LessOrEqual(t, prize, entry*cfg.MaxPrizeMultiplier)
			assert.LessOrEqual(t, prize, pot)

			potCap := int(math.Floor(float64(pot) * cfg.MaxPotPercentage))
			if prize > potCap {
				// Only the minimum guarantee may exceed the pot cap
				assert.LessOrEqual(t, prize, cfg.MinPrizeAmount)
			}

			again, err := Calculate(cfg, entry, pot)
			require.NoError(t, err)
			assert.Equal(t, prize, again)
		}
	}
}
