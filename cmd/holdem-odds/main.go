package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-odds/internal/advisor"
	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/equity"
	"github.com/lox/holdem-odds/internal/outs"
	"github.com/lox/holdem-odds/internal/server"
	"github.com/lox/holdem-odds/internal/tui"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	adviceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)

type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Odds  OddsCmd  `cmd:"" default:"withargs" help:"Analyze a hero hand against a random opponent"`
	Tui   TuiCmd   `cmd:"" help:"Interactive terminal analyzer"`
	Serve ServeCmd `cmd:"" help:"Serve the analysis engine over websockets"`
}

type OddsCmd struct {
	Hero       string   `arg:"" help:"Hero's 2 hole cards (e.g. 'AhKs')" required:""`
	Board      string   `short:"b" help:"Community cards: 0, 3, 4 or 5 (e.g. 'Td7s8h')"`
	Iterations int      `short:"i" help:"Sampling iterations for flop/preflop (0 = street default)"`
	Seed       *int64   `help:"Random seed for reproducible sampling"`
	Pot        *float64 `help:"Current pot size (enables pot-odds advice)"`
	Call       *float64 `help:"Amount to call (enables pot-odds advice)"`
	Advice     bool     `short:"a" help:"Show action advice even without pot/call"`
}

type TuiCmd struct {
	Seed *int64 `help:"Random seed for reproducible sampling"`
}

type ServeCmd struct {
	Config string `short:"c" help:"HCL config file" default:"holdem-odds.hcl"`
}

func main() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-odds"),
		kong.Description("Texas Hold'em equity, outs and advice engine"),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx.Bind(logger)
	ctx.FatalIfErrorf(ctx.Run())
}

func (c *OddsCmd) Run(logger *log.Logger) error {
	hero, err := deck.ParseCards(c.Hero)
	if err != nil {
		return fmt.Errorf("parsing hero cards: %w", err)
	}
	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board cards: %w", err)
		}
	}

	opts := equity.Options{Iterations: c.Iterations, Seed: c.Seed}

	start := time.Now()
	eq, err := equity.VsRandom(hero, board, opts)
	if err != nil {
		return err
	}
	dist, err := equity.HandDistribution(hero, board, opts)
	if err != nil {
		return err
	}
	draws := outs.DetectDraws(hero, board)
	logger.Debug("analysis complete", "street", equity.Street(len(board)), "elapsed", time.Since(start))

	fmt.Printf("%s %s\n", headerStyle.Render("hero"), handStyle.Render(formatCards(hero)))
	if len(board) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("board"), handStyle.Render(formatCards(board)))
	}
	fmt.Printf("%s %s\n\n", headerStyle.Render("street"), equity.Street(len(board)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("win"), headerStyle.Render("tie"),
		headerStyle.Render("lose"), headerStyle.Render("equity"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		winStyle.Render(fmt.Sprintf("%.2f%%", eq.Win*100)),
		tieStyle.Render(fmt.Sprintf("%.2f%%", eq.Tie*100)),
		loseStyle.Render(fmt.Sprintf("%.2f%%", eq.Lose*100)),
		handStyle.Render(fmt.Sprintf("%.2f%%", eq.Equity()*100)))
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, share := range dist.Sorted() {
		fmt.Fprintf(w, "%s\t%.1f%%\n",
			categoryStyle.Render(share.Category.String()), share.Probability*100)
	}
	w.Flush()

	printDraws(draws)

	if c.Advice || (c.Pot != nil && c.Call != nil) {
		adv, err := advisor.AdviseFrom(eq.Equity(), draws, c.Pot, c.Call)
		if err != nil {
			return err
		}
		fmt.Println()
		sizing := ""
		if adv.BetSizing != nil {
			sizing = fmt.Sprintf(", bet %.0f%% of pot", *adv.BetSizing*100)
		}
		fmt.Printf("%s %s\n", headerStyle.Render("advice"),
			adviceStyle.Render(fmt.Sprintf("%s (%s)%s", adv.Action, adv.Confidence, sizing)))
		for _, reason := range adv.Rationale {
			fmt.Printf("  · %s\n", reason)
		}
	}

	return nil
}

func printDraws(draws outs.Draws) {
	if draws.FlushDraw == nil && len(draws.StraightDraws) == 0 {
		return
	}
	fmt.Println()
	if fd := draws.FlushDraw; fd != nil {
		fmt.Printf("%s %s (%d outs, %d hero card(s))\n",
			headerStyle.Render("flush draw"), fd.Suit, fd.Outs, fd.HeroHeld)
	}
	for _, sd := range draws.StraightDraws {
		fmt.Printf("%s needs %s (%d outs)\n",
			headerStyle.Render(sd.Type.String()+" straight draw"), sd.Target, sd.Outs)
	}
	fmt.Printf("%s %d\n", headerStyle.Render("total outs"), draws.TotalOuts)
}

func (c *TuiCmd) Run(logger *log.Logger) error {
	return tui.Run(logger, c.Seed)
}

func (c *ServeCmd) Run(logger *log.Logger) error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if cfg.Server.LogLevel == "debug" {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).Run(ctx)
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
