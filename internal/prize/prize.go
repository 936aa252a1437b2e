package prize

import (
	"math"

	"github.com/ruleta-game/ruleta/internal/config"
)

// PrizeError is a custom error type for prize calculation errors
type PrizeError string

// Error implements the error interface
func (e PrizeError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidEntryAmount PrizeError = "invalid entry amount"
	ErrNegativePot        PrizeError = "pot cannot be negative"
)

// Calculate returns the gross prize for a winner with the given entry amount
// and the current pot. The prize is the smaller of a multiple of the entry
// and a fraction of the pot, raised to the configured minimum when the pot
// can sustain it. All math is on integer currency units; fractions round
// down, never in the payer's favor.
func Calculate(cfg *config.GameConfig, entryAmount, pot int) (int, error) {
	if !cfg.IsValidEntryAmount(entryAmount) {
		return 0, ErrInvalidEntryAmount
	}

	if pot < 0 {
		return 0, ErrNegativePot
	}

	maxByMultiplier := entryAmount * cfg.MaxPrizeMultiplier
	maxByPot := int(math.Floor(float64(pot) * cfg.MaxPotPercentage))

	prize := min(maxByMultiplier, maxByPot)

	// Guarantee the minimum prize when the pot can sustain it
	if pot >= cfg.MinPrizeAmount && prize < cfg.MinPrizeAmount {
		prize = min(cfg.MinPrizeAmount, pot)
	}

	if prize < 0 {
		prize = 0
	}

	return prize, nil
}
