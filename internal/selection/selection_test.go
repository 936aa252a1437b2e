package selection

import (
	"math"
	"testing"

	"github.com/ruleta-game/ruleta/internal/config"
	"github.com/ruleta-game/ruleta/internal/models"
	"github.com/ruleta-game/ruleta/internal/rng"
	rngMocks "github.com/ruleta-game/ruleta/internal/rng/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const probabilityTolerance = 1e-5

func testPlayers(entries ...int) []*models.Player {
	players := make([]*models.Player, 0, len(entries))
	for i, entry := range entries {
		players = append(players, &models.Player{
			ID:          string(rune('a' + i)),
			UserID:      string(rune('A' + i)),
			EntryAmount: entry,
			Position:    i,
		})
	}
	return players
}

func TestSelectWinnerNoPlayers(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := rngMocks.NewMockSource(ctrl)

	_, err := SelectWinner(config.Default(), src, nil)
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = SelectWinner(config.Default(), src, []*models.Player{})
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestSelectWinnerSinglePlayer(t *testing.T) {
	// A single player wins deterministically without consuming randomness;
	// the mock has no expectations, so any draw would fail the test.
	ctrl := gomock.NewController(t)
	src := rngMocks.NewMockSource(ctrl)

	players := testPlayers(10)

	winner, err := SelectWinner(config.Default(), src, players)
	require.NoError(t, err)
	assert.Same(t, players[0], winner)
}

func TestSelectWinnerFixedDraw(t *testing.T) {
	cfg := config.Default()
	players := testPlayers(5, 10, 15, 20)

	// Cumulative weights with exponent 1.2: ~6.90, ~22.75, ~48.74, ~86.30
	testCases := []struct {
		name     string
		draw     float64
		expected int
	}{
		{name: "draw at zero picks first", draw: 0, expected: 0},
		{name: "draw in first interval", draw: 0.05, expected: 0},
		{name: "draw in second interval", draw: 0.2, expected: 1},
		{name: "draw in third interval", draw: 0.4, expected: 2},
		{name: "draw near top picks last", draw: 0.99, expected: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := rngMocks.NewMockSource(ctrl)
			src.EXPECT().Float64().Return(tc.draw)

			winner, err := SelectWinner(cfg, src, players)
			require.NoError(t, err)
			assert.Same(t, players[tc.expected], winner)
		})
	}
}

func TestSelectWinnerBoundaryResolvesLower(t *testing.T) {
	// Exponent 0 makes every weight exactly 1, so the cumulative weights are
	// exact and a draw of 0.5 lands precisely on the first boundary. It
	// belongs to the lower-indexed player.
	cfg := config.Default()
	cfg.WeightExponent = 0

	players := testPlayers(5, 10)

	ctrl := gomock.NewController(t)
	src := rngMocks.NewMockSource(ctrl)
	src.EXPECT().Float64().Return(0.5)

	winner, err := SelectWinner(cfg, src, players)
	require.NoError(t, err)
	assert.Same(t, players[0], winner)
}

func TestSelectWinnerUniform(t *testing.T) {
	cfg := config.Default()
	cfg.UseWeightedSelection = false

	players := testPlayers(5, 10, 15)

	ctrl := gomock.NewController(t)
	src := rngMocks.NewMockSource(ctrl)
	src.EXPECT().Intn(3).Return(2)

	winner, err := SelectWinner(cfg, src, players)
	require.NoError(t, err)
	assert.Same(t, players[2], winner)
}

func TestWinProbabilitiesSumToOne(t *testing.T) {
	cfg := config.Default()

	testCases := [][]int{
		{5},
		{5, 20},
		{5, 10, 15, 20},
		{20, 20, 5, 10, 15, 5},
	}

	for _, entries := range testCases {
		probabilities := WinProbabilities(cfg, testPlayers(entries...))
		require.Len(t, probabilities, len(entries))

		var sum float64
		for _, p := range probabilities {
			sum += p
		}
		assert.InDelta(t, 1, sum, probabilityTolerance)
	}
}

func TestWinProbabilitiesEmpty(t *testing.T) {
	probabilities := WinProbabilities(config.Default(), nil)
	assert.Empty(t, probabilities)
}

func TestWinProbabilitiesEqualEntries(t *testing.T) {
	cfg := config.Default()
	players := testPlayers(10, 10, 10, 10)

	probabilities := WinProbabilities(cfg, players)
	for _, p := range players {
		assert.InDelta(t, 0.25, probabilities[p.UserID], probabilityTolerance)
	}
}

func TestWinProbabilitiesMonotonic(t *testing.T) {
	// A strictly larger entry must carry a strictly larger probability
	cfg := config.Default()
	players := testPlayers(5, 10, 15, 20)

	probabilities := WinProbabilities(cfg, players)
	for i := 1; i < len(players); i++ {
		assert.Greater(t,
			probabilities[players[i].UserID],
			probabilities[players[i-1].UserID],
			"entry %d vs %d", players[i].EntryAmount, players[i-1].EntryAmount)
	}
}

func TestWinProbabilitiesUniformToggle(t *testing.T) {
	cfg := config.Default()
	cfg.UseWeightedSelection = false

	players := testPlayers(5, 20)
	probabilities := WinProbabilities(cfg, players)

	assert.InDelta(t, 0.5, probabilities[players[0].UserID], probabilityTolerance)
	assert.InDelta(t, 0.5, probabilities[players[1].UserID], probabilityTolerance)
}

func TestWeightedDrawDistribution(t *testing.T) {
	// Over many draws the entry-20 player should win noticeably more than
	// half the time, but the sub-quadratic exponent keeps it from dominating.
	cfg := config.Default()
	src := rng.New(&rng.Config{Seed: 42})
	players := testPlayers(5, 20)

	const draws = 10000
	wins := 0
	for i := 0; i < draws; i++ {
		winner, err := SelectWinner(cfg, src, players)
		require.NoError(t, err)
		if winner.EntryAmount == 20 {
			wins++
		}
	}

	share := float64(wins) / draws
	assert.Greater(t, share, 0.5)
	assert.Less(t, share, 0.9)

	// The observed share should track the computed probability
	expected := WinProbabilities(cfg, players)[players[1].UserID]
	assert.InDelta(t, expected, share, 0.02)
}

func TestSelectionStats(t *testing.T) {
	cfg := config.Default()
	players := testPlayers(5, 10, 15, 20)

	stats := SelectionStats(cfg, players)
	assert.Equal(t, 4, stats.TotalPlayers)
	assert.Equal(t, 50, stats.TotalEntry)
	assert.Greater(t, stats.MaxProbability, stats.MinProbability)
	assert.InDelta(t, math.Pow(20, 1.2)/(math.Pow(5, 1.2)+math.Pow(10, 1.2)+math.Pow(15, 1.2)+math.Pow(20, 1.2)),
		stats.MaxProbability, probabilityTolerance)
}
