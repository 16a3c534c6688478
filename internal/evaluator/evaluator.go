// Package evaluator scores 5-card poker hands and finds the best 5-card
// hand among 7 cards.
//
// Scores are flattened integers: category*1_000_000 + tiebreak, where the
// tiebreak encodes the decisive ranks in a radix-15 positional scheme.
// Any hand in a higher category therefore outscores any hand in a lower
// category, and within a category higher decisive ranks always win. The
// wheel (A-2-3-4-5) is the lowest straight and scores as 5-high.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
)

// ErrHandSize signals a fixed-size evaluator input of the wrong length.
var ErrHandSize = errors.New("wrong number of cards")

// Score category bases. Category = score / ScoreBase.
const ScoreBase = 1_000_000

// Category identifies one of the nine 5-card hand categories, ordered
// weakest to strongest.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists all hand categories from strongest to weakest.
var Categories = []Category{
	StraightFlush, FourOfAKind, FullHouse, Flush, Straight,
	ThreeOfAKind, TwoPair, Pair, HighCard,
}

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Slug returns the snake_case wire name of the category
func (c Category) Slug() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "one_pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return "unknown"
	}
}

// ScoreCategory returns the category encoded in a hand score.
func ScoreCategory(score int) Category {
	c := Category(score / ScoreBase)
	if c < HighCard || c > StraightFlush {
		return HighCard
	}
	return c
}

// rankPrimes maps each rank (2-14) to a prime. The product of five primes
// uniquely identifies a rank multiset, so a straight is recognised by a
// single product lookup.
var rankPrimes = [15]uint32{
	2: 2, 3: 3, 4: 5, 5: 7, 6: 11, 7: 13, 8: 17,
	9: 19, 10: 23, 11: 29, 12: 31, 13: 37, 14: 41,
}

// straightProducts maps the prime product of each straight's five ranks to
// the straight's high card. The wheel maps to 5.
var straightProducts = func() map[uint32]int {
	table := make(map[uint32]int, 10)
	for high := 5; high <= 14; high++ {
		ranks := []int{high, high - 1, high - 2, high - 3, high - 4}
		if high == 5 {
			ranks = []int{14, 5, 4, 3, 2}
		}
		product := uint32(1)
		for _, r := range ranks {
			product *= rankPrimes[r]
		}
		table[product] = high
	}
	return table
}()

// combos7of5 holds all C(7,5)=21 index combinations for best-of-7 search.
var combos7of5 = [21][5]uint8{
	{0, 1, 2, 3, 4}, {0, 1, 2, 3, 5}, {0, 1, 2, 3, 6}, {0, 1, 2, 4, 5}, {0, 1, 2, 4, 6},
	{0, 1, 2, 5, 6}, {0, 1, 3, 4, 5}, {0, 1, 3, 4, 6}, {0, 1, 3, 5, 6}, {0, 1, 4, 5, 6},
	{0, 2, 3, 4, 5}, {0, 2, 3, 4, 6}, {0, 2, 3, 5, 6}, {0, 2, 4, 5, 6}, {0, 3, 4, 5, 6},
	{1, 2, 3, 4, 5}, {1, 2, 3, 4, 6}, {1, 2, 3, 5, 6}, {1, 2, 4, 5, 6}, {1, 3, 4, 5, 6},
	{2, 3, 4, 5, 6},
}

// eval5 scores five cards whose ranks are already sorted descending.
// Tiebreak radix is 15 (ranks span 2-14), applied positionally so that a
// higher decisive rank always dominates everything after it.
func eval5(r0, r1, r2, r3, r4 int, suitsSame bool, primeProduct uint32) int {
	if r0 != r1 && r1 != r2 && r2 != r3 && r3 != r4 {
		// Five distinct ranks: straight flush, flush, straight or high card.
		straightHigh, isStraight := straightProducts[primeProduct]
		if suitsSame {
			if isStraight {
				return 9_000_000 + straightHigh
			}
			return 6_000_000 + r0*50625 + r1*3375 + r2*225 + r3*15 + r4
		}
		if isStraight {
			return 5_000_000 + straightHigh
		}
		return 1_000_000 + r0*50625 + r1*3375 + r2*225 + r3*15 + r4
	}

	// At least one duplicated rank: flushes and straights are impossible,
	// so the pattern of equal neighbours decides the category.
	if r0 == r1 {
		if r1 == r2 {
			if r2 == r3 {
				return 8_000_000 + r0*100 + r4 // AAAA x
			}
			if r3 == r4 {
				return 7_000_000 + r0*100 + r3 // AAA BB
			}
			return 4_000_000 + r0*10000 + r3*15 + r4 // AAA x y
		}
		if r2 == r3 {
			if r3 == r4 {
				return 7_000_000 + r2*100 + r0 // AA BBB
			}
			return 3_000_000 + r0*10000 + r2*100 + r4 // AA BB x
		}
		if r3 == r4 {
			return 3_000_000 + r0*10000 + r3*100 + r2 // AA x YY
		}
		return 2_000_000 + r0*10000 + r2*225 + r3*15 + r4 // AA x y z
	}

	if r1 == r2 {
		if r2 == r3 {
			if r3 == r4 {
				return 8_000_000 + r1*100 + r0 // x BBBB
			}
			return 4_000_000 + r1*10000 + r0*15 + r4 // x BBB y
		}
		if r3 == r4 {
			return 3_000_000 + r1*10000 + r3*100 + r0 // x BB YY
		}
		return 2_000_000 + r1*10000 + r0*225 + r3*15 + r4 // x BB y z
	}

	if r2 == r3 {
		if r3 == r4 {
			return 4_000_000 + r2*10000 + r0*15 + r1 // x y CCC
		}
		return 2_000_000 + r2*10000 + r0*225 + r1*15 + r4 // x y CC z
	}

	// r3 == r4 is the only remaining pairing.
	return 2_000_000 + r3*10000 + r0*225 + r1*15 + r2 // x y z DD
}

// sort5 orders five ranks descending with a fixed 9-compare sorting network.
func sort5(r0, r1, r2, r3, r4 int) (int, int, int, int, int) {
	if r0 < r1 {
		r0, r1 = r1, r0
	}
	if r3 < r4 {
		r3, r4 = r4, r3
	}
	if r0 < r2 {
		r0, r2 = r2, r0
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	if r0 < r3 {
		r0, r3 = r3, r0
	}
	if r2 < r3 {
		r2, r3 = r3, r2
	}
	if r1 < r4 {
		r1, r4 = r4, r1
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	if r3 < r4 {
		r3, r4 = r4, r3
	}
	return r0, r1, r2, r3, r4
}

// Evaluate5 scores an exactly-5-card hand. Higher scores beat lower scores;
// equal scores are exact ties.
func Evaluate5(cards []deck.Card) (int, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("%w: Evaluate5 requires exactly 5 cards, got %d", ErrHandSize, len(cards))
	}

	r0, r1, r2, r3, r4 := sort5(
		int(cards[0].Rank), int(cards[1].Rank), int(cards[2].Rank),
		int(cards[3].Rank), int(cards[4].Rank),
	)

	suitsSame := cards[0].Suit == cards[1].Suit &&
		cards[1].Suit == cards[2].Suit &&
		cards[2].Suit == cards[3].Suit &&
		cards[3].Suit == cards[4].Suit

	product := rankPrimes[cards[0].Rank] * rankPrimes[cards[1].Rank] *
		rankPrimes[cards[2].Rank] * rankPrimes[cards[3].Rank] * rankPrimes[cards[4].Rank]

	return eval5(r0, r1, r2, r3, r4, suitsSame, product), nil
}

// BestHand7 scores the best 5-card hand among exactly 7 cards.
func BestHand7(cards []deck.Card) (int, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("%w: BestHand7 requires exactly 7 cards, got %d", ErrHandSize, len(cards))
	}
	return Score7(cards), nil
}

// Score7 scores the best 5-card hand among 7 cards without validating the
// input length. The equity hot loops call this once per enumerated or
// sampled outcome; cards must contain exactly seven entries.
func Score7(cards []deck.Card) int {
	var ranks [7]int
	var suits [7]deck.Suit
	var primes [7]uint32
	for i, c := range cards {
		ranks[i] = int(c.Rank)
		suits[i] = c.Suit
		primes[i] = rankPrimes[c.Rank]
	}

	best := 0
	for _, combo := range combos7of5 {
		a, b, c, d, e := combo[0], combo[1], combo[2], combo[3], combo[4]

		r0, r1, r2, r3, r4 := sort5(ranks[a], ranks[b], ranks[c], ranks[d], ranks[e])

		suitsSame := suits[a] == suits[b] && suits[b] == suits[c] &&
			suits[c] == suits[d] && suits[d] == suits[e]
		product := primes[a] * primes[b] * primes[c] * primes[d] * primes[e]

		if score := eval5(r0, r1, r2, r3, r4, suitsSame, product); score > best {
			best = score
		}
	}
	return best
}
