package advisor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/outs"
)

func floatPtr(f float64) *float64 { return &f }

func TestDecideThresholds(t *testing.T) {
	strongDraw := outs.Draws{TotalOuts: 8}
	smallDraw := outs.Draws{TotalOuts: 4}

	tests := []struct {
		name       string
		eq         float64
		draws      outs.Draws
		hasPotInfo bool
		ev         float64
		action     Action
		confidence Confidence
		sizing     *float64
	}{
		{"monster raises full pot", 0.85, outs.Draws{}, false, 0, Raise, Strong, floatPtr(1.0)},
		{"strong raises 3/4 pot", 0.72, outs.Draws{}, false, 0, Raise, Strong, floatPtr(0.75)},
		{"good raises 2/3 pot", 0.60, outs.Draws{}, false, 0, Raise, Moderate, floatPtr(0.66)},
		{"good raises half pot", 0.56, outs.Draws{}, false, 0, Raise, Moderate, floatPtr(0.50)},
		{"draw calls without pot info", 0.45, smallDraw, false, 0, Call, Moderate, nil},
		{"draw calls with positive EV", 0.45, smallDraw, true, 12.5, Call, Moderate, nil},
		{"draw folds on bad odds", 0.45, smallDraw, true, -3.0, Fold, Marginal, nil},
		{"marginal calls without pot info", 0.40, outs.Draws{}, false, 0, Call, Marginal, nil},
		{"marginal folds on negative EV", 0.40, outs.Draws{}, true, -5.0, Fold, Marginal, nil},
		{"weak with strong draw calls", 0.28, strongDraw, false, 0, Call, Marginal, nil},
		{"weak with strong draw and odds calls", 0.28, strongDraw, true, 4.0, Call, Marginal, nil},
		{"weak with strong draw and bad odds folds", 0.28, strongDraw, true, -8.0, Fold, Strong, nil},
		{"trash folds", 0.15, outs.Draws{}, false, 0, Fold, Strong, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice := decide(tt.eq, tt.draws, tt.hasPotInfo, 0.30, tt.ev)
			assert.Equal(t, tt.action, advice.Action)
			assert.Equal(t, tt.confidence, advice.Confidence)
			if tt.sizing == nil {
				assert.Nil(t, advice.BetSizing)
			} else {
				require.NotNil(t, advice.BetSizing)
				assert.InDelta(t, *tt.sizing, *advice.BetSizing, 1e-12)
			}
			require.NotEmpty(t, advice.Rationale)
			assert.Contains(t, advice.Rationale[0], "Equity vs random")
		})
	}
}

func TestDecideDrawRationale(t *testing.T) {
	draws := outs.Draws{
		FlushDraw: &outs.FlushDraw{Suit: deck.Hearts, Outs: 9, HeroHeld: 2},
		StraightDraws: []outs.StraightDraw{
			{Type: outs.OpenEnded, Target: deck.Ten, Outs: 4},
			{Type: outs.Gutshot, Target: deck.Five, Outs: 4},
		},
		TotalOuts: 15,
	}
	advice := decide(0.45, draws, false, 0, 0)

	joined := strings.Join(advice.Rationale, "\n")
	assert.Contains(t, joined, "Flush draw (9 outs)")
	assert.Contains(t, joined, "OESD straight draw (4 outs)")
	assert.Contains(t, joined, "Gutshot straight draw (4 outs)")
}

func TestAdviseNutHandOnRiver(t *testing.T) {
	hero := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJhTh2d3c")

	advice, err := Advise(hero, board, Options{})
	require.NoError(t, err)

	assert.Equal(t, Raise, advice.Action)
	assert.Equal(t, Strong, advice.Confidence)
	require.NotNil(t, advice.BetSizing)
	assert.InDelta(t, 1.0, *advice.BetSizing, 1e-12)
}

func TestAdviseWeakHandOnRiver(t *testing.T) {
	hero := deck.MustParseCards("7c2d")
	board := deck.MustParseCards("AhKsQd9h4c")

	advice, err := Advise(hero, board, Options{})
	require.NoError(t, err)

	assert.Equal(t, Fold, advice.Action)
	assert.Nil(t, advice.BetSizing)
}

func TestAdviseWithPotInfo(t *testing.T) {
	hero := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJhTh2d3c")

	advice, err := Advise(hero, board, Options{
		Pot:  floatPtr(100),
		Call: floatPtr(50),
	})
	require.NoError(t, err)

	joined := strings.Join(advice.Rationale, "\n")
	assert.Contains(t, joined, "Pot odds")
	assert.Equal(t, Raise, advice.Action)
}

func TestAdviseFromMatchesAdvise(t *testing.T) {
	// Embedding surfaces hand AdviseFrom the equity and draws they already
	// computed; on an enumerated street that must give the same advice as
	// the self-contained path.
	hero := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJhTh2d3c")
	pot, call := floatPtr(100), floatPtr(50)

	full, err := Advise(hero, board, Options{Pot: pot, Call: call})
	require.NoError(t, err)

	result, err := equity.VsRandom(hero, board, equity.Options{})
	require.NoError(t, err)
	precomputed, err := AdviseFrom(result.Equity(), outs.DetectDraws(hero, board), pot, call)
	require.NoError(t, err)

	assert.Equal(t, full, precomputed)
}

func TestAdviseFromDomainErrors(t *testing.T) {
	_, err := AdviseFrom(0.5, outs.Draws{}, floatPtr(-10), floatPtr(50))
	assert.Error(t, err)
}

func TestAdviseValidationPassThrough(t *testing.T) {
	_, err := Advise(deck.MustParseCards("Ah"), nil, Options{})
	assert.True(t, errors.Is(err, equity.ErrHeroSize), "error = %v, want ErrHeroSize", err)
}
