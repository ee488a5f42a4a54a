package coarsening

import (
	"fmt"
	"math/rand"
)

// TieBreakingPolicy decides whether a rating equal to the current maximum
// replaces it.
type TieBreakingPolicy interface {
	AcceptEqual() bool
	Name() string
}

// FirstRatingWins keeps the first maximal rating encountered.
type FirstRatingWins struct{}

func (FirstRatingWins) AcceptEqual() bool { return false }
func (FirstRatingWins) Name() string      { return "first" }

// LastRatingWins keeps the last maximal rating encountered.
type LastRatingWins struct{}

func (LastRatingWins) AcceptEqual() bool { return true }
func (LastRatingWins) Name() string      { return "last" }

// RandomRatingWins flips a coin for every tie.
type RandomRatingWins struct {
	rng *rand.Rand
}

// NewRandomRatingWins creates a random policy drawing from rng.
func NewRandomRatingWins(rng *rand.Rand) *RandomRatingWins {
	return &RandomRatingWins{rng: rng}
}

func (r *RandomRatingWins) AcceptEqual() bool { return r.rng.Intn(2) == 1 }
func (r *RandomRatingWins) Name() string      { return "random" }

// NewTieBreakingPolicy resolves a policy by its configuration name.
func NewTieBreakingPolicy(name string, rng *rand.Rand) (TieBreakingPolicy, error) {
	switch name {
	case "first":
		return FirstRatingWins{}, nil
	case "last":
		return LastRatingWins{}, nil
	case "random":
		return NewRandomRatingWins(rng), nil
	default:
		return nil, fmt.Errorf("unknown tie breaking policy %q", name)
	}
}
