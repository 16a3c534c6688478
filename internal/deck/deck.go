// Package deck models playing cards and the 52-card universe.
//
// The deck here is not a shuffled dealing deck: equity enumeration only
// needs "every card not already accounted for", so the package exposes the
// full universe and a removal operation over it.
package deck

import (
	"errors"
	"fmt"
)

// ErrCardNotInDeck signals an attempt to remove a card that is not present,
// which almost always means the same card was supplied twice upstream.
var ErrCardNotInDeck = errors.New("card not in deck")

// All returns the full 52-card universe in a fixed suit-major order.
func All() []Card {
	cards := make([]Card, 0, 52)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Remaining returns the 52-card universe minus the known cards, preserving
// the fixed deck order. Removing a card twice (or an otherwise absent card)
// is an error: it indicates duplicate-card input that validation should
// have caught.
func Remaining(known ...Card) ([]Card, error) {
	var seen CardSet
	for _, card := range known {
		if card.Rank < Two || card.Rank > Ace {
			return nil, fmt.Errorf("%w: %v has invalid rank", ErrCardNotInDeck, card)
		}
		if seen.Contains(card) {
			return nil, fmt.Errorf("%w: %v removed twice", ErrCardNotInDeck, card)
		}
		seen.Add(card)
	}

	remaining := make([]Card, 0, 52-len(known))
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := Card{Rank: rank, Suit: suit}
			if !seen.Contains(card) {
				remaining = append(remaining, card)
			}
		}
	}
	return remaining, nil
}
