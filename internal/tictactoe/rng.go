package tictactoe

import "math/rand/v2"

// Rng is the randomness source for the opponent strategy. It is injected so
// move selection is reproducible under test; *rand.Rand from math/rand/v2
// satisfies it.
type Rng interface {
	IntN(n int) int
}

type systemRng struct{}

func (systemRng) IntN(n int) int {
	return rand.IntN(n)
}

// SystemRng returns the process-wide randomness source. It is safe for
// concurrent use.
func SystemRng() Rng {
	return systemRng{}
}
