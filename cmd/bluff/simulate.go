package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/fileutil"
	"github.com/lox/bluff/internal/randutil"
	"github.com/lox/bluff/internal/simulator"
	"github.com/lox/bluff/internal/statistics"
)

type SimulateCmd struct {
	Matches    int    `help:"Number of matches (config default when 0)"`
	Players    int    `short:"p" help:"Computer players per match (config default when 0)"`
	Workers    int    `short:"w" help:"Parallel workers (0 uses GOMAXPROCS)"`
	MaxActions int    `help:"Per-match action cap (config default when 0)"`
	Out        string `short:"o" type:"path" help:"Write a JSON report to this file"`
}

// Report is the JSON document written by --out
type Report struct {
	Seed             int64                    `json:"seed"`
	Players          int                      `json:"players"`
	PassScope        string                   `json:"pass_scope"`
	Matches          int                      `json:"matches"`
	Completed        int                      `json:"completed"`
	Stalled          int                      `json:"stalled"`
	MeanActions      float64                  `json:"mean_actions"`
	MedianActions    float64                  `json:"median_actions"`
	ChallengeSuccess float64                  `json:"challenge_success"`
	WinsBySeat       []int                    `json:"wins_by_seat"`
	Results          []statistics.MatchResult `json:"results"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	c.applyConfig(cfg)

	logger := newLogger(os.Stderr, cfg.LogLevel())
	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := randutil.Seed(cfg.Match.Seed)
	fmt.Printf("Simulating %d matches with %d players (seed: %d)\n", c.Matches, c.Players, seed)

	start := time.Now()
	stats, results, err := simulator.New(simulator.Config{
		Matches:    c.Matches,
		Players:    c.Players,
		Workers:    c.Workers,
		MaxActions: c.MaxActions,
		Seed:       seed,
		Rules:      cfg.Rules(),
		Logger:     logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, c.Players)
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))

	if c.Out == "" {
		return nil
	}
	report := newReport(seed, c.Players, cfg.Match.PassScope, stats, results)
	if err := fileutil.WriteJSON(c.Out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", "path", c.Out)
	return nil
}

// applyConfig fills flags left at zero from the simulate block
func (c *SimulateCmd) applyConfig(cfg *config.Config) {
	if c.Matches == 0 {
		c.Matches = cfg.Simulate.Matches
	}
	if c.Players == 0 {
		c.Players = cfg.Simulate.Players
	}
	if c.Workers == 0 {
		c.Workers = cfg.Simulate.Workers
	}
	if c.MaxActions == 0 {
		c.MaxActions = cfg.Simulate.MaxActions
	}
}

func newReport(seed int64, players int, passScope string, stats *statistics.Statistics, results []statistics.MatchResult) Report {
	return Report{
		Seed:             seed,
		Players:          players,
		PassScope:        passScope,
		Matches:          stats.Matches,
		Completed:        stats.Completed,
		Stalled:          stats.Stalled,
		MeanActions:      stats.Mean(),
		MedianActions:    stats.Median(),
		ChallengeSuccess: stats.ChallengeSuccessRate(),
		WinsBySeat:       stats.WinsBySeat,
		Results:          results,
	}
}
