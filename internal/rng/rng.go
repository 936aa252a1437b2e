package rng

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/ruleta-game/ruleta/internal/rng Source

// Source provides the randomness consumed by the winner draw. Injecting it
// lets tests fix the draw value and assert the exact resulting winner.
type Source interface {
	// Float64 returns a uniform random value in [0.0, 1.0)
	Float64() float64

	// Intn returns a uniform random value in [0, n)
	Intn(n int) int
}

// Config for the default source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultSource implements Source using a seeded math/rand generator
type DefaultSource struct {
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *DefaultSource {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &DefaultSource{
		random: rand.New(source),
	}
}

// Float64 returns a uniform random value in [0.0, 1.0)
func (s *DefaultSource) Float64() float64 {
	return s.random.Float64()
}

// Intn returns a uniform random value in [0, n)
func (s *DefaultSource) Intn(n int) int {
	if n < 1 {
		return 0
	}
	return s.random.Intn(n)
}
