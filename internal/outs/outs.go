// Package outs detects flush and straight draws for a hero hand on the
// flop or turn and counts the deduplicated cards that complete them.
package outs

import (
	"math/bits"
	"sort"

	"github.com/lox/holdem-odds/internal/deck"
)

// StraightDrawType classifies a straight draw.
type StraightDrawType int

const (
	OpenEnded StraightDrawType = iota
	Gutshot
)

func (t StraightDrawType) String() string {
	switch t {
	case OpenEnded:
		return "open-ended"
	case Gutshot:
		return "gutshot"
	default:
		return "unknown"
	}
}

// FlushDraw describes four cards to a flush with hero participation.
type FlushDraw struct {
	Suit     deck.Suit
	Outs     int
	HeroHeld int // hero cards of the draw suit
}

// StraightDraw describes a single missing rank that completes a straight.
type StraightDraw struct {
	Type   StraightDrawType
	Target deck.Rank
	Outs   int // live cards of the target rank
}

// Draws aggregates all detected draws. TotalOuts counts the union of
// completion cards: a card that completes both a flush and a straight is
// counted once.
type Draws struct {
	FlushDraw     *FlushDraw
	StraightDraws []StraightDraw
	TotalOuts     int
	OutCards      []deck.Card
}

// straightWindows lists the 10 five-consecutive-rank windows, wheel first.
// The ace sits at the high end of the wheel window and low elsewhere.
var straightWindows = func() [][5]deck.Rank {
	windows := [][5]deck.Rank{{deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five}}
	for low := deck.Two; low <= deck.Ten; low++ {
		windows = append(windows, [5]deck.Rank{low, low + 1, low + 2, low + 3, low + 4})
	}
	return windows
}()

// DetectDraws analyzes hero+board for draws. Only flop (3 board cards) and
// turn (4) are meaningful; any other board yields an empty result rather
// than an error.
func DetectDraws(hero, board []deck.Card) Draws {
	var result Draws
	if len(board) != 3 && len(board) != 4 {
		return result
	}

	all := make([]deck.Card, 0, len(hero)+len(board))
	all = append(all, hero...)
	all = append(all, board...)
	known := deck.NewCardSet(all)

	var allRanks, heroRanks uint16
	for _, c := range all {
		allRanks |= 1 << c.Rank
	}
	for _, c := range hero {
		heroRanks |= 1 << c.Rank
	}

	var outs deck.CardSet

	if fd, fdOuts := detectFlushDraw(hero, all, known); fd != nil {
		result.FlushDraw = fd
		outs |= fdOuts
	}

	result.StraightDraws = detectStraightDraws(heroRanks, allRanks, known)
	for _, sd := range result.StraightDraws {
		for suit := deck.Hearts; suit <= deck.Spades; suit++ {
			card := deck.NewCard(sd.Target, suit)
			if !known.Contains(card) {
				outs.Add(card)
			}
		}
	}

	result.TotalOuts = bits.OnesCount64(uint64(outs))
	result.OutCards = outsList(outs)
	return result
}

// CountOuts returns the deduplicated out count only.
func CountOuts(hero, board []deck.Card) int {
	return DetectDraws(hero, board).TotalOuts
}

// detectFlushDraw looks for exactly four cards of one suit among hero and
// board. A four-suited board that the hero does not participate in is not
// the hero's draw.
func detectFlushDraw(hero, all []deck.Card, known deck.CardSet) (*FlushDraw, deck.CardSet) {
	var suitCounts [4]int
	for _, c := range all {
		suitCounts[c.Suit]++
	}

	for suit := deck.Hearts; suit <= deck.Spades; suit++ {
		if suitCounts[suit] != 4 {
			continue
		}
		heroHeld := 0
		for _, c := range hero {
			if c.Suit == suit {
				heroHeld++
			}
		}
		if heroHeld == 0 {
			continue
		}

		var outs deck.CardSet
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			card := deck.NewCard(rank, suit)
			if !known.Contains(card) {
				outs.Add(card)
			}
		}
		return &FlushDraw{
			Suit:     suit,
			Outs:     bits.OnesCount64(uint64(outs)),
			HeroHeld: heroHeld,
		}, outs
	}
	return nil, 0
}

// detectStraightDraws scans every five-rank window for four held ranks and
// one missing rank, requiring at least one hero rank in the window. Each
// missing rank is reported once, open-ended when any qualifying window
// places it at either end, gutshot otherwise.
func detectStraightDraws(heroRanks, allRanks uint16, known deck.CardSet) []StraightDraw {
	var draws []StraightDraw
	var seenTargets uint16

	for _, window := range straightWindows {
		var windowMask uint16
		for _, r := range window {
			windowMask |= 1 << r
		}

		held := windowMask & allRanks
		if bits.OnesCount16(held) != 4 {
			continue
		}
		if heroRanks&windowMask == 0 {
			continue
		}

		missing := windowMask &^ allRanks
		target := deck.Rank(bits.TrailingZeros16(missing))
		if seenTargets&(1<<target) != 0 {
			continue
		}
		seenTargets |= 1 << target

		outsCount := 0
		for suit := deck.Hearts; suit <= deck.Spades; suit++ {
			if !known.Contains(deck.NewCard(target, suit)) {
				outsCount++
			}
		}

		draws = append(draws, StraightDraw{
			Type:   classifyTarget(target, allRanks),
			Target: target,
			Outs:   outsCount,
		})
	}
	return draws
}

// classifyTarget reports open-ended when any window with four held ranks
// has the target at index 0 or 4.
func classifyTarget(target deck.Rank, allRanks uint16) StraightDrawType {
	for _, window := range straightWindows {
		idx := -1
		var windowMask uint16
		for i, r := range window {
			windowMask |= 1 << r
			if r == target {
				idx = i
			}
		}
		if idx == -1 {
			continue
		}
		if bits.OnesCount16(windowMask&allRanks) != 4 {
			continue
		}
		if idx == 0 || idx == 4 {
			return OpenEnded
		}
	}
	return Gutshot
}

// outsList expands the out-card set, highest ranks first.
func outsList(outs deck.CardSet) []deck.Card {
	var cards []deck.Card
	for rank := deck.Two; rank <= deck.Ace; rank++ {
		for suit := deck.Hearts; suit <= deck.Spades; suit++ {
			card := deck.NewCard(rank, suit)
			if outs.Contains(card) {
				cards = append(cards, card)
			}
		}
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
	return cards
}
