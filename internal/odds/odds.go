// Package odds provides pot-odds and expected-value arithmetic for call
// decisions. Everything here is pure and stateless.
package odds

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativePot signals a negative pot size.
	ErrNegativePot = errors.New("pot cannot be negative")
	// ErrNonPositiveCall signals a zero or negative call amount.
	ErrNonPositiveCall = errors.New("call amount must be positive")
	// ErrEquityRange signals an equity outside [0,1].
	ErrEquityRange = errors.New("equity must be between 0 and 1")
)

// PotOdds returns call/(pot+call): the minimum equity needed to break
// even on a call.
func PotOdds(pot, call float64) (float64, error) {
	if pot < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNegativePot, pot)
	}
	if call <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNonPositiveCall, call)
	}
	return call / (pot + call), nil
}

// EVCall returns equity*(pot+call) - call: the expected value of calling.
// Ties are conventionally folded into equity as half a win.
func EVCall(pot, call, equity float64) (float64, error) {
	if pot < 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNegativePot, pot)
	}
	if call <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNonPositiveCall, call)
	}
	if equity < 0 || equity > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrEquityRange, equity)
	}
	return equity*(pot+call) - call, nil
}

// CallAnalysis summarises whether calling is profitable and by how much.
type CallAnalysis struct {
	PotOdds    float64 `json:"pot_odds"`
	Equity     float64 `json:"equity"`
	EV         float64 `json:"ev"`
	Profitable bool    `json:"profitable"`
	Edge       float64 `json:"edge"` // equity minus pot odds
}

// AnalyzeCall combines PotOdds and EVCall into a single call decision view.
func AnalyzeCall(pot, call, equity float64) (CallAnalysis, error) {
	po, err := PotOdds(pot, call)
	if err != nil {
		return CallAnalysis{}, err
	}
	ev, err := EVCall(pot, call, equity)
	if err != nil {
		return CallAnalysis{}, err
	}
	return CallAnalysis{
		PotOdds:    po,
		Equity:     equity,
		EV:         ev,
		Profitable: ev > 0,
		Edge:       equity - po,
	}, nil
}
