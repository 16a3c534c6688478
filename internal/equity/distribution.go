package equity

import (
	"sort"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// DefaultDistributionIterations is the sampled-street default for
// HandDistribution (flop and preflop alike).
const DefaultDistributionIterations = 10_000

// Distribution maps hand categories to the probability that the hero's
// final hand lands in them. Only categories with non-zero probability are
// present; values sum to 1.
type Distribution map[evaluator.Category]float64

// CategoryShare is one Distribution entry in sorted form.
type CategoryShare struct {
	Category    evaluator.Category
	Probability float64
}

// Sorted returns the distribution ordered by descending probability,
// breaking ties by category strength.
func (d Distribution) Sorted() []CategoryShare {
	shares := make([]CategoryShare, 0, len(d))
	for category, p := range d {
		shares = append(shares, CategoryShare{Category: category, Probability: p})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Probability != shares[j].Probability {
			return shares[i].Probability > shares[j].Probability
		}
		return shares[i].Category > shares[j].Category
	})
	return shares
}

// HandDistribution computes the probability of the hero's final hand
// falling into each category. River is one deterministic evaluation, turn
// enumerates all 46 river cards, flop and preflop sample board runouts.
func HandDistribution(hero, board []deck.Card, opts Options) (Distribution, error) {
	remaining, err := validate(hero, board)
	if err != nil {
		return nil, err
	}

	heroHand := make([]deck.Card, 7)
	copy(heroHand, hero)
	copy(heroHand[2:], board)

	switch len(board) {
	case 5:
		category := evaluator.ScoreCategory(evaluator.Score7(heroHand))
		return Distribution{category: 1.0}, nil
	case 4:
		counts := make(map[evaluator.Category]int)
		for _, river := range remaining {
			heroHand[6] = river
			counts[evaluator.ScoreCategory(evaluator.Score7(heroHand))]++
		}
		return normalize(counts, len(remaining)), nil
	default:
		return distributionSampled(hero, board, remaining, opts), nil
	}
}

// distributionSampled draws the board completion per iteration; no
// opponent cards are involved since only the hero's own category counts.
func distributionSampled(hero, board, remaining []deck.Card, opts Options) Distribution {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultDistributionIterations
	}

	rng := randRNG(opts)
	toCome := 5 - len(board)

	scratch := make([]deck.Card, len(remaining))
	copy(scratch, remaining)

	heroHand := make([]deck.Card, 7)
	copy(heroHand, hero)
	copy(heroHand[2:], board)

	counts := make(map[evaluator.Category]int)
	for iter := 0; iter < iterations; iter++ {
		for k := 0; k < toCome; k++ {
			j := k + rng.IntN(len(scratch)-k)
			scratch[k], scratch[j] = scratch[j], scratch[k]
		}
		copy(heroHand[2+len(board):], scratch[:toCome])
		counts[evaluator.ScoreCategory(evaluator.Score7(heroHand))]++
	}
	return normalize(counts, iterations)
}

func normalize(counts map[evaluator.Category]int, total int) Distribution {
	dist := make(Distribution, len(counts))
	for category, count := range counts {
		dist[category] = float64(count) / float64(total)
	}
	return dist
}
