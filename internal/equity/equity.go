// Package equity computes win/tie/lose probabilities and hand-category
// distributions for a hero hand against a single random opponent.
//
// Streets dispatch to different algorithms: river and turn are enumerated
// exactly (990 and 46×990 opponent combinations respectively); flop and
// preflop would need millions of combinations and are sampled instead.
// Seeded runs are sequential with a fixed draw order (board-completion
// cards before opponent cards, one draw without replacement) and are
// bit-reproducible; unseeded runs fan iterations out across workers.
package equity

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/evaluator"
	"github.com/lox/holdem-odds/internal/randutil"
)

var (
	// ErrHeroSize signals a hero hand that is not exactly two cards.
	ErrHeroSize = errors.New("hero must hold exactly 2 cards")
	// ErrBoardSize signals a board that is not 0, 3, 4 or 5 cards.
	ErrBoardSize = errors.New("board must have 0, 3, 4 or 5 cards")
	// ErrDuplicateCard signals the same card appearing twice across hero and board.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Default sampling iteration counts per street. Exact streets ignore them.
const (
	DefaultFlopIterations    = 30_000
	DefaultPreflopIterations = 10_000
)

// Options controls sampling behaviour. The zero value gives street-default
// iteration counts and a time-seeded parallel run.
type Options struct {
	// Iterations overrides the street default for sampled streets.
	Iterations int
	// Seed makes sampled runs deterministic and sequential.
	Seed *int64
	// Workers bounds the unseeded fan-out (default: NumCPU, capped at 8).
	Workers int
}

func (o Options) iterations(street int) int {
	if o.Iterations > 0 {
		return o.Iterations
	}
	if street == 3 {
		return DefaultFlopIterations
	}
	return DefaultPreflopIterations
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	w := runtime.NumCPU()
	if w > 8 {
		w = 8
	}
	return w
}

// Street returns the conventional street name for a board size.
func Street(boardLen int) string {
	switch boardLen {
	case 0:
		return "preflop"
	case 3:
		return "flop"
	case 4:
		return "turn"
	case 5:
		return "river"
	default:
		return "unknown"
	}
}

// Result holds win/tie/lose probabilities for the hero. The three values
// sum to 1 (exactly for enumerated streets, within float tolerance for
// sampled ones).
type Result struct {
	Win  float64 `json:"win"`
	Tie  float64 `json:"tie"`
	Lose float64 `json:"lose"`
}

// Equity returns the hero's equity with ties counted as half a win.
func (r Result) Equity() float64 {
	return r.Win + r.Tie/2
}

func randRNG(opts Options) *rand.Rand {
	if opts.Seed != nil {
		return randutil.New(*opts.Seed)
	}
	return randutil.NewFromTime()
}

type tally struct {
	wins, ties, losses int
}

func (t tally) result() Result {
	total := t.wins + t.ties + t.losses
	if total == 0 {
		return Result{}
	}
	return Result{
		Win:  float64(t.wins) / float64(total),
		Tie:  float64(t.ties) / float64(total),
		Lose: float64(t.losses) / float64(total),
	}
}

// validate checks hero/board sizes and duplicate cards, returning the
// remaining deck on success.
func validate(hero, board []deck.Card) ([]deck.Card, error) {
	if len(hero) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrHeroSize, len(hero))
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, len(board))
	}

	known := make([]deck.Card, 0, len(hero)+len(board))
	known = append(known, hero...)
	known = append(known, board...)

	var seen deck.CardSet
	for _, card := range known {
		if seen.Contains(card) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCard, card)
		}
		seen.Add(card)
	}

	remaining, err := deck.Remaining(known...)
	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// VsRandom computes the hero's win/tie/lose probabilities against one
// random opponent hand.
func VsRandom(hero, board []deck.Card, opts Options) (Result, error) {
	remaining, err := validate(hero, board)
	if err != nil {
		return Result{}, err
	}

	switch len(board) {
	case 5:
		return riverExact(hero, board, remaining), nil
	case 4:
		return turnExact(hero, board, remaining), nil
	default:
		return sampled(hero, board, remaining, opts), nil
	}
}

// riverExact enumerates all C(45,2)=990 opponent hands on a complete board.
func riverExact(hero, board, remaining []deck.Card) Result {
	heroHand := make([]deck.Card, 7)
	copy(heroHand, hero)
	copy(heroHand[2:], board)
	heroScore := evaluator.Score7(heroHand)

	oppHand := make([]deck.Card, 7)
	copy(oppHand[2:], board)

	var t tally
	for i := 0; i < len(remaining); i++ {
		for j := i + 1; j < len(remaining); j++ {
			oppHand[0] = remaining[i]
			oppHand[1] = remaining[j]
			oppScore := evaluator.Score7(oppHand)
			switch {
			case heroScore > oppScore:
				t.wins++
			case heroScore == oppScore:
				t.ties++
			default:
				t.losses++
			}
		}
	}
	return t.result()
}

// turnExact enumerates every river card and, for each, all C(45,2)
// opponent hands drawn from the 45 cards left after that river.
func turnExact(hero, board, remaining []deck.Card) Result {
	heroHand := make([]deck.Card, 7)
	copy(heroHand, hero)
	copy(heroHand[2:6], board)

	oppHand := make([]deck.Card, 7)
	copy(oppHand[2:6], board)

	var t tally
	for r, river := range remaining {
		heroHand[6] = river
		oppHand[6] = river
		heroScore := evaluator.Score7(heroHand)

		for i := 0; i < len(remaining); i++ {
			if i == r {
				continue
			}
			for j := i + 1; j < len(remaining); j++ {
				if j == r {
					continue
				}
				oppHand[0] = remaining[i]
				oppHand[1] = remaining[j]
				oppScore := evaluator.Score7(oppHand)
				switch {
				case heroScore > oppScore:
					t.wins++
				case heroScore == oppScore:
					t.ties++
				default:
					t.losses++
				}
			}
		}
	}
	return t.result()
}

// sampled runs Monte Carlo for flop and preflop boards.
func sampled(hero, board, remaining []deck.Card, opts Options) Result {
	iterations := opts.iterations(len(board))

	if opts.Seed != nil {
		t := sampleRun(hero, board, remaining, iterations, randutil.New(*opts.Seed))
		return t.result()
	}

	// No seed requested: split the iterations across workers, each with an
	// independently derived RNG.
	workers := opts.workers()
	base := randutil.NewFromTime()
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = base.Int64()
	}

	results := make([]tally, workers)
	var g errgroup.Group
	per := iterations / workers
	extra := iterations % workers
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			results[w] = sampleRun(hero, board, remaining, n, randutil.New(seeds[w]))
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	var t tally
	for _, r := range results {
		t.wins += r.wins
		t.ties += r.ties
		t.losses += r.losses
	}
	return t.result()
}

// sampleRun draws cards_to_come board cards plus two opponent cards per
// iteration, all in one draw without replacement, board cards first. The
// draw order is fixed so seeded runs reproduce exactly.
func sampleRun(hero, board, remaining []deck.Card, iterations int, rng *rand.Rand) tally {
	toCome := 5 - len(board)
	sampleSize := toCome + 2

	scratch := make([]deck.Card, len(remaining))
	copy(scratch, remaining)

	heroHand := make([]deck.Card, 7)
	copy(heroHand, hero)
	copy(heroHand[2:], board)

	oppHand := make([]deck.Card, 7)

	var t tally
	for iter := 0; iter < iterations; iter++ {
		for k := 0; k < sampleSize; k++ {
			j := k + rng.IntN(len(scratch)-k)
			scratch[k], scratch[j] = scratch[j], scratch[k]
		}

		copy(heroHand[2+len(board):], scratch[:toCome])
		copy(oppHand[2:], heroHand[2:])
		oppHand[0] = scratch[toCome]
		oppHand[1] = scratch[toCome+1]

		heroScore := evaluator.Score7(heroHand)
		oppScore := evaluator.Score7(oppHand)
		switch {
		case heroScore > oppScore:
			t.wins++
		case heroScore == oppScore:
			t.ties++
		default:
			t.losses++
		}
	}
	return t
}
