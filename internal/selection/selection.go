package selection

import (
	"math"

	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/ruleta-game/ruleta/internal/models"
	"github.com/ruleta-game/ruleta/internal/rng"
)

// SelectionError is a custom error type for selection errors
type SelectionError string

// Error implements the error interface
func (e SelectionError) Error() string {
	return string(e)
}

// ErrNoPlayers is returned when selection is attempted over an empty set
const ErrNoPlayers SelectionError = "no players available for selection"

// weightedPlayer pairs a player with its weight and running cumulative weight
type weightedPlayer struct {
	player     *models.Player
	weight     float64
	cumulative float64
}

// Weight returns a player's selection weight for the given entry amount.
// With weighted selection disabled every player weighs the same.
//
// With the default exponent of 1.2:
//   - entry 5:  weight ≈ 6.9
//   - entry 10: weight ≈ 15.8
//   - entry 15: weight ≈ 26.0
//   - entry 20: weight ≈ 37.6
func Weight(cfg *config.GameConfig, entryAmount int) float64 {
	if !cfg.UseWeightedSelection {
		return 1
	}
	return math.Pow(float64(entryAmount), cfg.WeightExponent)
}

// prepareWeighted computes weights and cumulative weights in input order.
// The input order is the fixed, stable order the draw maps onto.
func prepareWeighted(cfg *config.GameConfig, players []*models.Player) []weightedPlayer {
	weighted := make([]weightedPlayer, 0, len(players))

	var cumulative float64
	for _, p := range players {
		w := Weight(cfg, p.EntryAmount)
		cumulative += w
		weighted = append(weighted, weightedPlayer{
			player:     p,
			weight:     w,
			cumulative: cumulative,
		})
	}

	return weighted
}

// SelectWinner picks one player by roulette-wheel sampling: a uniform draw in
// [0, totalWeight) lands in exactly one player's cumulative-weight interval.
// Ties at interval boundaries resolve to the lower-indexed player. A single
// player is returned without consuming randomness.
func SelectWinner(cfg *config.GameConfig, src rng.Source, players []*models.Player) (*models.Player, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	if len(players) == 1 {
		return players[0], nil
	}

	if !cfg.UseWeightedSelection {
		return players[src.Intn(len(players))], nil
	}

	weighted := prepareWeighted(cfg, players)
	totalWeight := weighted[len(weighted)-1].cumulative

	draw := src.Float64() * totalWeight

	// Binary search for the first interval containing the draw; a draw that
	// lands exactly on a boundary resolves to the lower-indexed player
	left := 0
	right := len(weighted) - 1
	for left < right {
		mid := (left + right) / 2
		if draw <= weighted[mid].cumulative {
			right = mid
		} else {
			left = mid + 1
		}
	}

	return weighted[left].player, nil
}

// WinProbabilities returns each user's chance of winning the next draw,
// keyed by user ID. Probabilities sum to 1 for any non-empty input; an empty
// input yields an empty map.
func WinProbabilities(cfg *config.GameConfig, players []*models.Player) map[string]float64 {
	probabilities := make(map[string]float64, len(players))
	if len(players) == 0 {
		return probabilities
	}

	if !cfg.UseWeightedSelection {
		uniform := 1 / float64(len(players))
		for _, p := range players {
			probabilities[p.UserID] = uniform
		}
		return probabilities
	}

	weighted := prepareWeighted(cfg, players)
	totalWeight := weighted[len(weighted)-1].cumulative

	for _, wp := range weighted {
		probabilities[wp.player.UserID] = wp.weight / totalWeight
	}

	return probabilities
}

// Stats summarizes the probability distribution over the active set
type Stats struct {
	// TotalPlayers is the number of players in the set
	TotalPlayers int

	// TotalEntry is the sum of entry amounts in the set
	TotalEntry int

	// MinProbability is the smallest win probability in the set
	MinProbability float64

	// MaxProbability is the largest win probability in the set
	MaxProbability float64
}

// SelectionStats reports distribution figures for a player set, useful for
// verifying fairness from an operator endpoint
func SelectionStats(cfg *config.GameConfig, players []*models.Player) *Stats {
	stats := &Stats{
		TotalPlayers: len(players),
	}
	if len(players) == 0 {
		return stats
	}

	probabilities := WinProbabilities(cfg, players)

	stats.MinProbability = 1
	for _, p := range players {
		stats.TotalEntry += p.EntryAmount

		prob := probabilities[p.UserID]
		stats.MinProbability = math.Min(stats.MinProbability, prob)
		stats.MaxProbability = math.Max(stats.MaxProbability, prob)
	}

	return stats
}
