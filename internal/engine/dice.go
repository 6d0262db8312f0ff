package engine

import (
	"math/rand/v2"
	"time"
)

// Dice is the randomness source used for damage variance and accuracy
// rolls. *rand.Rand from math/rand/v2 satisfies it.
type Dice interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewDice returns a generator seeded from the clock. Each battle session
// owns one; it is not safe for concurrent use.
func NewDice() Dice {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>7^0x9e3779b97f4a7c15))
}

// SeededDice returns a deterministic generator.
func SeededDice(seed uint64) Dice {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
