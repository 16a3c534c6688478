// Package advisor turns the engine's equity, draw, and pot-odds outputs
// into a rule-based action recommendation. It is a thin policy layer over
// the core packages; the thresholds below are the documented consumer
// contract, not tuned strategy.
package advisor

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/odds"
	"github.com/lox/holdem-odds/internal/outs"
)

// Action is the recommended move.
type Action string

const (
	Fold  Action = "fold"
	Call  Action = "call"
	Raise Action = "raise"
)

// Confidence qualifies how clear-cut the recommendation is.
type Confidence string

const (
	Strong   Confidence = "strong"
	Moderate Confidence = "moderate"
	Marginal Confidence = "marginal"
)

// Options carries the optional betting context and sampling controls.
// Pot and Call must both be set for pot-odds reasoning to engage.
type Options struct {
	Pot        *float64
	Call       *float64
	Iterations int
	Seed       *int64
}

// Advice is the advisor's recommendation with its supporting rationale.
// BetSizing, when present, is a suggested raise as a fraction of the pot.
type Advice struct {
	Action     Action     `json:"action"`
	Confidence Confidence `json:"confidence"`
	Rationale  []string   `json:"rationale"`
	BetSizing  *float64   `json:"bet_sizing,omitempty"`
}

// Advise computes equity and draws for the hero and applies the decision
// rules. Validation failures from the underlying packages pass through.
func Advise(hero, board []deck.Card, opts Options) (Advice, error) {
	result, err := equity.VsRandom(hero, board, equity.Options{
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
	})
	if err != nil {
		return Advice{}, err
	}

	return AdviseFrom(result.Equity(), outs.DetectDraws(hero, board), opts.Pot, opts.Call)
}

// AdviseFrom applies the decision rules to equity and draws the caller has
// already computed, so surfaces that show both the raw numbers and the
// advice don't pay for a second sampling run.
func AdviseFrom(eq float64, draws outs.Draws, pot, call *float64) (Advice, error) {
	hasPotInfo := pot != nil && call != nil && *call > 0
	var ev, potOdds float64
	if hasPotInfo {
		var err error
		potOdds, err = odds.PotOdds(*pot, *call)
		if err != nil {
			return Advice{}, err
		}
		ev, err = odds.EVCall(*pot, *call, eq)
		if err != nil {
			return Advice{}, err
		}
	}

	return decide(eq, draws, hasPotInfo, potOdds, ev), nil
}

func decide(eq float64, draws outs.Draws, hasPotInfo bool, potOdds, ev float64) Advice {
	rationale := []string{fmt.Sprintf("Equity vs random: %.1f%%", eq*100)}

	if draws.FlushDraw != nil {
		rationale = append(rationale, fmt.Sprintf("Flush draw (%d outs)", draws.FlushDraw.Outs))
	}
	for _, sd := range draws.StraightDraws {
		label := "Gutshot"
		if sd.Type == outs.OpenEnded {
			label = "OESD"
		}
		rationale = append(rationale, fmt.Sprintf("%s straight draw (%d outs)", label, sd.Outs))
	}
	if draws.TotalOuts > 0 && draws.FlushDraw == nil && len(draws.StraightDraws) == 0 {
		rationale = append(rationale, fmt.Sprintf("%d draw outs", draws.TotalOuts))
	}

	if hasPotInfo {
		rationale = append(rationale, fmt.Sprintf(
			"Pot odds: need %.1f%%, have %.1f%% (EV %+.1f)", potOdds*100, eq*100, ev))
	}

	advice := func(action Action, confidence Confidence, sizing *float64, reason string) Advice {
		return Advice{
			Action:     action,
			Confidence: confidence,
			Rationale:  append(rationale, reason),
			BetSizing:  sizing,
		}
	}

	// Strong hand: raise for value.
	if eq >= 0.70 {
		return advice(Raise, Strong, raiseSizing(eq), "Strong hand, raise for value")
	}

	// Good hand.
	if eq >= 0.55 {
		if hasPotInfo && ev > 0 {
			return advice(Raise, Moderate, raiseSizing(eq), "Good equity and positive EV, raise")
		}
		return advice(Raise, Moderate, raiseSizing(eq), "Good equity, raise or call")
	}

	// Drawing hand with live outs.
	if eq >= 0.35 && draws.TotalOuts >= 4 {
		if hasPotInfo {
			if ev > 0 {
				return advice(Call, Moderate, nil, "Drawing hand with good pot odds, call")
			}
			return advice(Fold, Marginal, nil, "Drawing hand but pot odds unfavorable, fold or call small")
		}
		return advice(Call, Moderate, nil, "Drawing hand with outs, call to see next card")
	}

	// Decent equity, no meaningful draws.
	if eq >= 0.35 {
		if hasPotInfo {
			if ev > 0 {
				return advice(Call, Marginal, nil, "Decent equity and positive EV, call")
			}
			return advice(Fold, Marginal, nil, "Decent equity but negative EV, fold")
		}
		return advice(Call, Marginal, nil, "Marginal hand, proceed with caution")
	}

	// Weak hand, but a strong draw can still justify a call.
	if draws.TotalOuts >= 8 {
		if hasPotInfo && ev > 0 {
			return advice(Call, Marginal, nil, "Weak equity but strong draw with good odds, call")
		}
		if !hasPotInfo {
			return advice(Call, Marginal, nil, "Weak equity but strong draw, consider calling")
		}
	}

	return advice(Fold, Strong, nil, "Weak hand, fold")
}

// raiseSizing maps equity to a suggested bet as a fraction of the pot.
func raiseSizing(eq float64) *float64 {
	var sizing float64
	switch {
	case eq >= 0.80:
		sizing = 1.0
	case eq >= 0.70:
		sizing = 0.75
	case eq >= 0.60:
		sizing = 0.66
	default:
		sizing = 0.50
	}
	return &sizing
}
