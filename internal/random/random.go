package random

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/avalon/internal/random Source

// Source provides the randomness used to deal roles and pick leaders
type Source interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements
	Shuffle(n int, swap func(i, j int))
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Rand is a Source backed by math/rand that is safe for concurrent use
type Rand struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *Rand {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Rand{
		random: random,
	}
}

// Intn returns a uniform value in [0, n). It returns 0 when n < 1.
func (r *Rand) Intn(n int) int {
	if n < 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// Shuffle pseudo-randomizes the order of n elements using the Fisher-Yates algorithm
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.random.Shuffle(n, swap)
}
