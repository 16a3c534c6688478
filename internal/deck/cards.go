package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is wrapped by all card parsing failures.
var ErrParse = errors.New("malformed card")

// ParseCard parses a single two-character card token like "Ah", "Ks", "2d", "Tc".
// Ranks: A, K, Q, J, T, 9-2. Suits: h, d, c, s (case insensitive).
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("%w: token %q must be 2 characters (rank+suit)", ErrParse, token)
	}

	rank, err := parseRank(token[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: token %q: %v", ErrParse, token, err)
	}

	suit, err := parseSuit(token[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: token %q: %v", ErrParse, token, err)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a string of card tokens into a slice of cards.
// Tokens may be space separated ("Ah Ks") or concatenated ("AhKs").
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: string length %d is odd", ErrParse, len(s))
	}

	var cards []Card
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9', '8', '7', '6', '5', '4', '3', '2':
		return Rank(c - '0'), nil
	default:
		return 0, fmt.Errorf("unknown rank %q", c)
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", c)
	}
}
