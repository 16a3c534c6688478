// Package server exposes the analysis engine over a websocket endpoint.
// Each connection carries a stream of JSON analysis requests; evaluations
// are pure functions of their inputs, so connections are served fully
// independently.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-odds/internal/advisor"
	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/outs"
)

// AnalyzeRequest is one analysis job sent over the websocket.
type AnalyzeRequest struct {
	Hero       string   `json:"hero"`
	Board      string   `json:"board,omitempty"`
	Pot        *float64 `json:"pot,omitempty"`
	Call       *float64 `json:"call,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
}

// FlushDrawPayload mirrors outs.FlushDraw for the wire.
type FlushDrawPayload struct {
	Suit     string `json:"suit"`
	Outs     int    `json:"outs"`
	HeroHeld int    `json:"hero_held"`
}

// StraightDrawPayload mirrors outs.StraightDraw for the wire.
type StraightDrawPayload struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Outs   int    `json:"outs"`
}

// DrawsPayload mirrors outs.Draws for the wire.
type DrawsPayload struct {
	FlushDraw     *FlushDrawPayload     `json:"flush_draw,omitempty"`
	StraightDraws []StraightDrawPayload `json:"straight_draws,omitempty"`
	TotalOuts     int                   `json:"total_outs"`
	OutCards      []string              `json:"out_cards,omitempty"`
}

// AnalyzeResponse is the full result for one request. Error is set (and
// the other fields left empty) when the request was invalid.
type AnalyzeResponse struct {
	Hero         string             `json:"hero,omitempty"`
	Board        string             `json:"board,omitempty"`
	Street       string             `json:"street,omitempty"`
	Equity       *equity.Result     `json:"equity,omitempty"`
	EquityTotal  float64            `json:"equity_total,omitempty"`
	Distribution map[string]float64 `json:"distribution,omitempty"`
	Draws        *DrawsPayload      `json:"draws,omitempty"`
	Advice       *advisor.Advice    `json:"advice,omitempty"`
	ElapsedMs    int64              `json:"elapsed_ms"`
	Error        string             `json:"error,omitempty"`
}

// Server serves analysis requests over websockets.
type Server struct {
	cfg      *Config
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
}

// New creates a Server with a real clock.
func New(cfg *Config, logger *log.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		clock:  quartz.NewReal(),
	}
}

// NewWithClock creates a Server with an injected clock, for tests.
func NewWithClock(cfg *Config, logger *log.Logger, clock quartz.Clock) *Server {
	s := New(cfg, logger)
	s.clock = clock
	return s
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("client connected", "remote", conn.RemoteAddr())
	for {
		var req AnalyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Error("read failed", "remote", conn.RemoteAddr(), "error", err)
			}
			return
		}

		resp := s.Analyze(req)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Error("write failed", "remote", conn.RemoteAddr(), "error", err)
			return
		}
	}
}

// Analyze runs the full engine for one request.
func (s *Server) Analyze(req AnalyzeRequest) AnalyzeResponse {
	start := s.clock.Now()

	hero, err := deck.ParseCards(req.Hero)
	if err != nil {
		return AnalyzeResponse{Error: err.Error()}
	}
	board, err := deck.ParseCards(req.Board)
	if err != nil {
		return AnalyzeResponse{Error: err.Error()}
	}

	iterations := req.Iterations
	if iterations == 0 {
		if len(board) == 3 {
			iterations = s.cfg.Analysis.FlopIterations
		} else {
			iterations = s.cfg.Analysis.PreflopIterations
		}
	}
	opts := equity.Options{Iterations: iterations, Seed: req.Seed}

	eq, err := equity.VsRandom(hero, board, opts)
	if err != nil {
		return AnalyzeResponse{Error: err.Error()}
	}
	dist, err := equity.HandDistribution(hero, board, opts)
	if err != nil {
		return AnalyzeResponse{Error: err.Error()}
	}
	draws := outs.DetectDraws(hero, board)

	resp := AnalyzeResponse{
		Hero:         req.Hero,
		Board:        req.Board,
		Street:       equity.Street(len(board)),
		Equity:       &eq,
		EquityTotal:  eq.Equity(),
		Distribution: distPayload(dist),
		Draws:        drawsPayload(draws),
	}

	if req.Pot != nil && req.Call != nil {
		adv, err := advisor.AdviseFrom(eq.Equity(), draws, req.Pot, req.Call)
		if err != nil {
			return AnalyzeResponse{Error: err.Error()}
		}
		resp.Advice = &adv
	}

	elapsed := s.clock.Since(start)
	resp.ElapsedMs = elapsed.Milliseconds()
	s.logger.Info("analyzed",
		"hero", req.Hero,
		"street", resp.Street,
		"equity", resp.EquityTotal,
		"elapsed", elapsed,
	)
	return resp
}

func distPayload(dist equity.Distribution) map[string]float64 {
	payload := make(map[string]float64, len(dist))
	for category, p := range dist {
		payload[category.Slug()] = p
	}
	return payload
}

func drawsPayload(draws outs.Draws) *DrawsPayload {
	payload := &DrawsPayload{TotalOuts: draws.TotalOuts}
	if draws.FlushDraw != nil {
		payload.FlushDraw = &FlushDrawPayload{
			Suit:     draws.FlushDraw.Suit.Letter(),
			Outs:     draws.FlushDraw.Outs,
			HeroHeld: draws.FlushDraw.HeroHeld,
		}
	}
	for _, sd := range draws.StraightDraws {
		payload.StraightDraws = append(payload.StraightDraws, StraightDrawPayload{
			Type:   sd.Type.String(),
			Target: sd.Target.String(),
			Outs:   sd.Outs,
		})
	}
	for _, card := range draws.OutCards {
		payload.OutCards = append(payload.OutCards, card.Token())
	}
	return payload
}
