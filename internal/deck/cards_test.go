package deck

import (
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input string
		want  Card
	}{
		{"As", Card{Ace, Spades}},
		{"as", Card{Ace, Spades}},
		{"Th", Card{Ten, Hearts}},
		{"2c", Card{Two, Clubs}},
		{"Kd", Card{King, Diamonds}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.input)
		if err != nil {
			t.Errorf("ParseCard(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCardErrors(t *testing.T) {
	for _, input := range []string{"", "A", "Axs", "Zs", "Ax", "1h"} {
		if _, err := ParseCard(input); !errors.Is(err, ErrParse) {
			t.Errorf("ParseCard(%q) error = %v, want ErrParse", input, err)
		}
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AhKs Td")
	if err != nil {
		t.Fatalf("ParseCards: %v", err)
	}
	want := []Card{{Ace, Hearts}, {King, Spades}, {Ten, Diamonds}}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("cards[%d] = %v, want %v", i, cards[i], want[i])
		}
	}
}

func TestParseCardsOddLength(t *testing.T) {
	if _, err := ParseCards("AhK"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for odd-length input, got %v", err)
	}
}

func TestRemaining(t *testing.T) {
	rest, err := Remaining(Card{Ace, Spades}, Card{King, Hearts})
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if len(rest) != 50 {
		t.Errorf("got %d cards, want 50", len(rest))
	}
	for _, card := range rest {
		if card == (Card{Ace, Spades}) || card == (Card{King, Hearts}) {
			t.Errorf("known card %v present in remaining deck", card)
		}
	}
}

func TestRemainingDuplicate(t *testing.T) {
	_, err := Remaining(Card{Ace, Spades}, Card{Ace, Spades})
	if !errors.Is(err, ErrCardNotInDeck) {
		t.Errorf("expected ErrCardNotInDeck for duplicate, got %v", err)
	}
}

func TestAll(t *testing.T) {
	cards := All()
	if len(cards) != 52 {
		t.Fatalf("All() returned %d cards, want 52", len(cards))
	}
	seen := make(map[Card]bool)
	for _, card := range cards {
		if seen[card] {
			t.Errorf("duplicate card %v", card)
		}
		seen[card] = true
	}
}
