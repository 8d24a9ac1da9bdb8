// Package rng provides small, independent random number sources.
package rng

import (
	"fmt"
	"math/rand"
	"time"
)

// Randomizer draws bounded uniform integers and remembers the last one drawn.
// Instances share no state; construct one per decision site.
type Randomizer struct {
	r    *rand.Rand
	last int
}

// New returns a Randomizer seeded from the clock.
func New() *Randomizer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Randomizer.
func NewSeeded(seed int64) *Randomizer {
	return &Randomizer{r: rand.New(rand.NewSource(seed))}
}

// Next returns a value in [low, high] inclusive. It panics if low > high.
func (g *Randomizer) Next(low, high int) int {
	if low > high {
		panic(fmt.Sprintf("rng: invalid range [%d, %d]", low, high))
	}
	g.last = low + g.r.Intn(high-low+1)
	return g.last
}

// Last returns the value produced by the most recent Next call.
func (g *Randomizer) Last() int {
	return g.last
}

// Bool flips a fair coin.
func (g *Randomizer) Bool() bool {
	return g.r.Intn(2) == 1
}
