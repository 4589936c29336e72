package game

import (
	"math/rand/v2"

	"github.com/rendis/mealee/internal/model"
)

// drawPair picks two distinct indexes in [0, n) uniformly, without
// replacement: the second draw is over the n-1 indexes left and is shifted
// past the first. n must be at least 2.
func drawPair(rng *rand.Rand, n int) (int, int) {
	first := rng.IntN(n)
	second := rng.IntN(n - 1)
	if second >= first {
		second++
	}
	return first, second
}

// removeIndexes returns a new slice without the given indexes, keeping order.
func removeIndexes(pool []model.Business, idx ...int) []model.Business {
	skip := make(map[int]bool, len(idx))
	for _, i := range idx {
		skip[i] = true
	}
	out := make([]model.Business, 0, len(pool))
	for i, b := range pool {
		if !skip[i] {
			out = append(out, b)
		}
	}
	return out
}
