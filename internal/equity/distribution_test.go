package equity

import (
	"errors"
	"math"
	"testing"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
)

func TestHandDistributionRiver(t *testing.T) {
	// A complete board has exactly one made hand.
	hero := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJhTh2d3c")

	dist, err := HandDistribution(hero, board, Options{})
	if err != nil {
		t.Fatalf("HandDistribution: %v", err)
	}
	if len(dist) != 1 {
		t.Fatalf("river distribution has %d categories, want 1: %v", len(dist), dist)
	}
	if p := dist[evaluator.StraightFlush]; p != 1.0 {
		t.Errorf("P(straight flush) = %v, want 1.0", p)
	}
}

func TestHandDistributionTurn(t *testing.T) {
	// Flush draw on the turn: 9 of 46 rivers complete the flush.
	hero := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("Qh7h2s9d")

	dist, err := HandDistribution(hero, board, Options{})
	if err != nil {
		t.Fatalf("HandDistribution: %v", err)
	}

	var sum float64
	for _, p := range dist {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}

	if p := dist[evaluator.Flush]; math.Abs(p-9.0/46.0) > 1e-9 {
		t.Errorf("P(flush) = %v, want %v", p, 9.0/46.0)
	}
}

func TestHandDistributionFlopSeeded(t *testing.T) {
	hero := deck.MustParseCards("AhAd")
	board := deck.MustParseCards("Kc7s2h")
	seed := int64(11)
	opts := Options{Iterations: 5_000, Seed: &seed}

	a, err := HandDistribution(hero, board, opts)
	if err != nil {
		t.Fatalf("HandDistribution: %v", err)
	}
	b, err := HandDistribution(hero, board, opts)
	if err != nil {
		t.Fatalf("HandDistribution: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("seeded runs differ in categories: %v vs %v", a, b)
	}
	for cat, p := range a {
		if b[cat] != p {
			t.Errorf("seeded runs differ for %v: %v vs %v", cat, p, b[cat])
		}
	}

	var sum float64
	for _, p := range a {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}

	// An overpair is at least a pair on every runout.
	if p := a[evaluator.HighCard]; p != 0 {
		t.Errorf("P(high card) = %v, want 0 when holding a pair", p)
	}
}

func TestHandDistributionValidation(t *testing.T) {
	_, err := HandDistribution(deck.MustParseCards("Ah"), nil, Options{})
	if !errors.Is(err, ErrHeroSize) {
		t.Errorf("error = %v, want ErrHeroSize", err)
	}
}

func TestDistributionSorted(t *testing.T) {
	dist := Distribution{
		evaluator.Pair:     0.4,
		evaluator.HighCard: 0.4,
		evaluator.Flush:    0.2,
	}
	shares := dist.Sorted()
	if len(shares) != 3 {
		t.Fatalf("got %d shares, want 3", len(shares))
	}
	for i := 1; i < len(shares); i++ {
		prev, cur := shares[i-1], shares[i]
		if cur.Probability > prev.Probability {
			t.Errorf("shares not sorted by probability: %v before %v", prev, cur)
		}
		if cur.Probability == prev.Probability && cur.Category > prev.Category {
			t.Errorf("equal probabilities not sorted by strength: %v before %v", prev, cur)
		}
	}
	if shares[2].Category != evaluator.Flush {
		t.Errorf("lowest-probability share = %v, want Flush", shares[2].Category)
	}
}
