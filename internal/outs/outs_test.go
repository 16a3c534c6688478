package outs

import (
	"testing"

	"github.com/lox/holdem-odds/internal/deck"
)

func TestDetectDrawsFlushDraw(t *testing.T) {
	hero := deck.MustParseCards("Ah9h")
	board := deck.MustParseCards("Kh7h3d")

	draws := DetectDraws(hero, board)
	if draws.FlushDraw == nil {
		t.Fatal("expected a flush draw")
	}
	if draws.FlushDraw.Suit != deck.Hearts {
		t.Errorf("suit = %v, want Hearts", draws.FlushDraw.Suit)
	}
	if draws.FlushDraw.Outs != 9 {
		t.Errorf("flush outs = %d, want 9", draws.FlushDraw.Outs)
	}
	if draws.FlushDraw.HeroHeld != 2 {
		t.Errorf("hero held = %d, want 2", draws.FlushDraw.HeroHeld)
	}
	if len(draws.StraightDraws) != 0 {
		t.Errorf("unexpected straight draws: %v", draws.StraightDraws)
	}
	if draws.TotalOuts != 9 {
		t.Errorf("total outs = %d, want 9", draws.TotalOuts)
	}
	if len(draws.OutCards) != 9 {
		t.Errorf("out cards = %d, want 9", len(draws.OutCards))
	}
	for _, card := range draws.OutCards {
		if card.Suit != deck.Hearts {
			t.Errorf("out card %v is not a heart", card)
		}
	}
}

func TestDetectDrawsBoardFlushNotHeros(t *testing.T) {
	// Four suited cards on board with no hero participation is not a draw.
	hero := deck.MustParseCards("As9c")
	board := deck.MustParseCards("Kh7h3h2h")

	draws := DetectDraws(hero, board)
	if draws.FlushDraw != nil {
		t.Errorf("unexpected flush draw: %+v", draws.FlushDraw)
	}
}

func TestDetectDrawsOpenEnded(t *testing.T) {
	hero := deck.MustParseCards("9h8d")
	board := deck.MustParseCards("7c6s2h")

	draws := DetectDraws(hero, board)
	if len(draws.StraightDraws) != 2 {
		t.Fatalf("got %d straight draws, want 2: %v", len(draws.StraightDraws), draws.StraightDraws)
	}

	targets := make(map[deck.Rank]StraightDrawType)
	for _, sd := range draws.StraightDraws {
		targets[sd.Target] = sd.Type
		if sd.Outs != 4 {
			t.Errorf("target %v outs = %d, want 4", sd.Target, sd.Outs)
		}
	}
	if targets[deck.Five] != OpenEnded {
		t.Errorf("five should be open-ended, got %v", targets[deck.Five])
	}
	if targets[deck.Ten] != OpenEnded {
		t.Errorf("ten should be open-ended, got %v", targets[deck.Ten])
	}
	if draws.TotalOuts != 8 {
		t.Errorf("total outs = %d, want 8", draws.TotalOuts)
	}
}

func TestDetectDrawsGutshot(t *testing.T) {
	hero := deck.MustParseCards("9h8d")
	board := deck.MustParseCards("6c5s2h")

	draws := DetectDraws(hero, board)
	if len(draws.StraightDraws) != 1 {
		t.Fatalf("got %d straight draws, want 1: %v", len(draws.StraightDraws), draws.StraightDraws)
	}
	sd := draws.StraightDraws[0]
	if sd.Target != deck.Seven {
		t.Errorf("target = %v, want Seven", sd.Target)
	}
	if sd.Type != Gutshot {
		t.Errorf("type = %v, want Gutshot", sd.Type)
	}
	if draws.TotalOuts != 4 {
		t.Errorf("total outs = %d, want 4", draws.TotalOuts)
	}
}

func TestDetectDrawsWheelDraw(t *testing.T) {
	hero := deck.MustParseCards("Ah2d")
	board := deck.MustParseCards("3c4sKh")

	draws := DetectDraws(hero, board)
	if len(draws.StraightDraws) != 1 {
		t.Fatalf("got %d straight draws, want 1: %v", len(draws.StraightDraws), draws.StraightDraws)
	}
	if draws.StraightDraws[0].Target != deck.Five {
		t.Errorf("target = %v, want Five", draws.StraightDraws[0].Target)
	}
}

func TestDetectDrawsComboDedup(t *testing.T) {
	// Flush draw plus open-ender sharing suits: union of out cards, so the
	// straight outs that are also hearts are not double counted.
	hero := deck.MustParseCards("QhJh")
	board := deck.MustParseCards("Th9h2c")

	draws := DetectDraws(hero, board)
	if draws.FlushDraw == nil {
		t.Fatal("expected a flush draw")
	}
	if draws.FlushDraw.Outs != 9 {
		t.Errorf("flush outs = %d, want 9", draws.FlushDraw.Outs)
	}
	if len(draws.StraightDraws) != 2 {
		t.Fatalf("got %d straight draws, want 2: %v", len(draws.StraightDraws), draws.StraightDraws)
	}
	// 9 hearts + {Kd,Ks,Kc} + {8d,8s,8c}; Kh and 8h already counted.
	if draws.TotalOuts != 15 {
		t.Errorf("total outs = %d, want 15", draws.TotalOuts)
	}
}

func TestDetectDrawsOnlyFlopAndTurn(t *testing.T) {
	hero := deck.MustParseCards("AhKh")
	boards := []string{"", "Qh7h2s9d3c"}
	for _, b := range boards {
		var board []deck.Card
		if b != "" {
			board = deck.MustParseCards(b)
		}
		draws := DetectDraws(hero, board)
		if draws.FlushDraw != nil || len(draws.StraightDraws) != 0 || draws.TotalOuts != 0 {
			t.Errorf("board %q: expected empty draws, got %+v", b, draws)
		}
	}
}

func TestDetectDrawsTurn(t *testing.T) {
	// The draw persists on the turn when the fourth board card misses.
	hero := deck.MustParseCards("Ah9h")
	board := deck.MustParseCards("Kh7h3d2c")

	draws := DetectDraws(hero, board)
	if draws.FlushDraw == nil {
		t.Fatal("expected a flush draw on the turn")
	}
	if draws.FlushDraw.Outs != 9 {
		t.Errorf("flush outs = %d, want 9", draws.FlushDraw.Outs)
	}
}

func TestCountOuts(t *testing.T) {
	hero := deck.MustParseCards("9h8d")
	board := deck.MustParseCards("7c6s2h")
	if got := CountOuts(hero, board); got != 8 {
		t.Errorf("CountOuts = %d, want 8", got)
	}
}
