// Package tui provides an interactive terminal analyzer: enter hero and
// board cards, get equity, distribution, draws, and advice as you go.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-odds/internal/advisor"
	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/outs"
)

// Model is the Bubble Tea model for the analyzer.
type Model struct {
	input  textinput.Model
	logger *log.Logger

	hero  []deck.Card
	board []deck.Card
	pot   *float64
	call  *float64
	seed  *int64

	results  string
	errMsg   string
	busy     bool
	quitting bool
}

// resultsMsg delivers a finished analysis back to the update loop.
type resultsMsg struct {
	rendered string
	err      error
}

// NewModel creates the analyzer model.
func NewModel(logger *log.Logger, seed *int64) Model {
	ti := textinput.New()
	ti.Placeholder = "hero Ah Kh | board 7c 8d Th | pot 100 50 | clear | quit"
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 60

	return Model{
		input:  ti,
		logger: logger,
		seed:   seed,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			return m.handleCommand(line)
		}
	case resultsMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
			m.results = msg.rendered
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	if line == "" {
		return m, nil
	}
	fields := strings.Fields(line)

	switch fields[0] {
	case "quit", "q", "exit":
		m.quitting = true
		return m, tea.Quit

	case "clear":
		m.hero, m.board, m.pot, m.call = nil, nil, nil, nil
		m.results, m.errMsg = "", ""
		return m, nil

	case "hero":
		cards, err := deck.ParseCards(strings.Join(fields[1:], " "))
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if len(cards) != 2 {
			m.errMsg = fmt.Sprintf("hero needs exactly 2 cards, got %d", len(cards))
			return m, nil
		}
		m.hero = cards

	case "board":
		cards, err := deck.ParseCards(strings.Join(fields[1:], " "))
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.board = cards

	case "pot":
		if len(fields) != 3 {
			m.errMsg = "usage: pot <pot> <call>"
			return m, nil
		}
		pot, err1 := strconv.ParseFloat(fields[1], 64)
		call, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			m.errMsg = "pot and call must be numbers"
			return m, nil
		}
		m.pot, m.call = &pot, &call

	default:
		m.errMsg = fmt.Sprintf("unknown command %q", fields[0])
		return m, nil
	}

	if len(m.hero) != 2 {
		m.errMsg = ""
		return m, nil
	}

	m.errMsg = ""
	m.busy = true
	return m, m.analyzeCmd()
}

// analyzeCmd runs the engine off the update loop so typing stays live
// during flop/preflop sampling.
func (m Model) analyzeCmd() tea.Cmd {
	hero, board := m.hero, m.board
	pot, call, seed := m.pot, m.call, m.seed
	logger := m.logger

	return func() tea.Msg {
		opts := equity.Options{Seed: seed}

		eq, err := equity.VsRandom(hero, board, opts)
		if err != nil {
			return resultsMsg{err: err}
		}
		dist, err := equity.HandDistribution(hero, board, opts)
		if err != nil {
			return resultsMsg{err: err}
		}
		draws := outs.DetectDraws(hero, board)

		var advice *advisor.Advice
		if pot != nil && call != nil {
			adv, err := advisor.AdviseFrom(eq.Equity(), draws, pot, call)
			if err != nil {
				return resultsMsg{err: err}
			}
			advice = &adv
		}

		logger.Debug("analysis complete", "street", equity.Street(len(board)), "equity", eq.Equity())
		return resultsMsg{rendered: renderResults(hero, board, eq, dist, draws, advice)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(" ♠ ♥ Hold'em Odds ♦ ♣ "))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("hero:  "))
	b.WriteString(cardStyle.Render(formatCards(m.hero)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("board: "))
	b.WriteString(cardStyle.Render(formatCards(m.board)))
	b.WriteString(labelStyle.Render("  (" + equity.Street(len(m.board)) + ")"))
	if m.pot != nil && m.call != nil {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  pot %.0f to call %.0f", *m.pot, *m.call)))
	}
	b.WriteString("\n\n")

	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	case m.busy:
		b.WriteString(labelStyle.Render("calculating..."))
		b.WriteString("\n\n")
	case m.results != "":
		b.WriteString(m.results)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter commands, esc to quit"))
	return b.String()
}

func renderResults(hero, board []deck.Card, eq equity.Result, dist equity.Distribution, draws outs.Draws, advice *advisor.Advice) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("win"), winStyle.Render(fmt.Sprintf("%.1f%%", eq.Win*100)),
		labelStyle.Render("tie"), tieStyle.Render(fmt.Sprintf("%.1f%%", eq.Tie*100)),
		labelStyle.Render("lose"), loseStyle.Render(fmt.Sprintf("%.1f%%", eq.Lose*100))))
	b.WriteString(labelStyle.Render(fmt.Sprintf("total equity %.1f%%", eq.Equity()*100)))
	b.WriteString("\n\n")

	for _, share := range dist.Sorted() {
		b.WriteString(fmt.Sprintf("  %-16s %5.1f%%\n", share.Category, share.Probability*100))
	}

	if draws.FlushDraw != nil || len(draws.StraightDraws) > 0 {
		b.WriteString("\n")
		if fd := draws.FlushDraw; fd != nil {
			b.WriteString(fmt.Sprintf("  flush draw %s (%d outs)\n", fd.Suit, fd.Outs))
		}
		for _, sd := range draws.StraightDraws {
			b.WriteString(fmt.Sprintf("  %s straight draw, needs %s (%d outs)\n", sd.Type, sd.Target, sd.Outs))
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %d total outs", draws.TotalOuts)))
		b.WriteString("\n")
	}

	if advice != nil {
		b.WriteString("\n")
		b.WriteString(adviceStyle.Render(fmt.Sprintf("%s (%s)", advice.Action, advice.Confidence)))
		if advice.BetSizing != nil {
			b.WriteString(adviceStyle.Render(fmt.Sprintf(" bet %.0f%% of pot", *advice.BetSizing*100)))
		}
		b.WriteString("\n")
		for _, reason := range advice.Rationale {
			b.WriteString(labelStyle.Render("  · " + reason))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// Run starts the TUI and blocks until it exits.
func Run(logger *log.Logger, seed *int64) error {
	_, err := tea.NewProgram(NewModel(logger, seed)).Run()
	return err
}
