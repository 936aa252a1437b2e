package config

import (
	"math"
	"slices"
)

// GameConfig holds the economic and fairness parameters of the game. All
// prize and weight formulas read from here; changing a value must never
// require touching calculation code.
type GameConfig struct {
	// MaxActivePlayers is the capacity of the active seat set
	MaxActivePlayers int

	// HouseEdge is the fraction of a money flow retained as commission (0.05 = 5%)
	HouseEdge float64

	// MaxPrizeMultiplier caps the prize as a multiple of the entry amount
	MaxPrizeMultiplier int

	// MaxPotPercentage caps the prize as a fraction of the current pot
	MaxPotPercentage float64

	// MinPrizeAmount is the floor the engine guarantees when the pot can sustain it
	MinPrizeAmount int

	// AllowedEntryAmounts are the permitted entry fees
	AllowedEntryAmounts []int

	// UseWeightedSelection toggles weighted vs. uniform draws
	UseWeightedSelection bool

	// WeightExponent is applied to the entry amount to derive the selection
	// weight; >1 biases toward larger entries
	WeightExponent float64
}

// Default returns the default game configuration
func Default() *GameConfig {
	return &GameConfig{
		MaxActivePlayers:     10,
		HouseEdge:            0.05,
		MaxPrizeMultiplier:   3,
		MaxPotPercentage:     0.3,
		MinPrizeAmount:       5,
		AllowedEntryAmounts:  []int{5, 10, 15, 20},
		UseWeightedSelection: true,
		WeightExponent:       1.2,
	}
}

// IsValidEntryAmount reports whether amount is one of the allowed entry fees
func (c *GameConfig) IsValidEntryAmount(amount int) bool {
	return slices.Contains(c.AllowedEntryAmounts, amount)
}

// HouseCommission returns the commission retained on a money flow, rounded
// down so the house never rounds in its own favor past the configured edge
func (c *GameConfig) HouseCommission(amount int) int {
	return int(math.Floor(float64(amount) * c.HouseEdge))
}

// NetAmount returns an amount after the house commission is removed
func (c *GameConfig) NetAmount(amount int) int {
	return amount - c.HouseCommission(amount)
}
