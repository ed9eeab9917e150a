package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bluff/internal/bot"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/randutil"
	"github.com/lox/bluff/internal/statistics"
)

// ErrNoActor means a match in progress had nobody able to move. It points at
// a reducer or NextActor bug, never at bad luck.
var ErrNoActor = errors.New("no scripted player can act")

// Config holds configuration for running simulations
type Config struct {
	Matches    int
	Players    int
	Workers    int // 0 uses GOMAXPROCS
	MaxActions int // Per-match cap; a match that reaches it counts as stalled
	Seed       int64
	Rules      game.Rules
	Policy     bot.Policy
	Logger     *log.Logger
}

// Simulator plays bot-only matches straight through the reducer, without
// sessions or timers
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Policy == nil {
		config.Policy = bot.NewScripted(config.Logger)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxActions <= 0 {
		config.MaxActions = 5000
	}
	if !config.Rules.PassScope.Valid() {
		config.Rules = game.DefaultRules()
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the aggregate statistics along with the
// per-match results in match order. Results are identical for a given seed
// whatever the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []statistics.MatchResult, error) {
	if s.config.Matches < 1 {
		return nil, nil, fmt.Errorf("matches must be positive, got %d", s.config.Matches)
	}
	if s.config.Players < 2 || s.config.Players > game.MaxPlayers {
		return nil, nil, fmt.Errorf("players must be between 2 and %d, got %d", game.MaxPlayers, s.config.Players)
	}

	start := time.Now()
	results := make([]statistics.MatchResult, s.config.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := randutil.Derive(s.config.Seed, i)
			result, _, err := s.PlayMatch(seed)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"matches", stats.Matches,
		"stalled", stats.Stalled,
		"workers", s.config.Workers,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return stats, results, nil
}

// PlayMatch plays one bot-only match from seed and returns its result and
// final state. The deal and every decision derive from seed.
func (s *Simulator) PlayMatch(seed int64) (statistics.MatchResult, game.State, error) {
	st := game.New(s.config.Rules)
	for i := 0; i < s.config.Players; i++ {
		st = game.Reduce(st, game.AddScriptedPlayer{ID: fmt.Sprintf("sim-%d", i)})
	}
	st, ok := game.Apply(st, game.StartGame{Seed: seed})
	if !ok {
		return statistics.MatchResult{}, st, fmt.Errorf("match did not start")
	}

	rng := randutil.New(randutil.Derive(seed, 1))
	result := statistics.MatchResult{Seed: seed, Players: s.config.Players, WinnerSeat: -1}

	for len(st.History) < s.config.MaxActions && !st.Ended {
		actor, ok := bot.NextActor(st)
		if !ok {
			return result, st, ErrNoActor
		}

		decision := s.config.Policy.Decide(bot.ViewFor(st, actor.ID), rng)
		next, ok := game.Apply(st, decision.Command(actor.ID, time.Time{}))
		if !ok {
			next, ok = game.Apply(st, bot.Fallback(st, actor.ID).Command(actor.ID, time.Time{}))
		}
		if !ok {
			return result, st, fmt.Errorf("%s could not act at version %d", actor.Name, st.Version)
		}

		if game.NewResolution(st, next) {
			tally(&result, *next.Resolution)
		}
		st = next
	}

	if err := game.Validate(st); err != nil {
		return result, st, fmt.Errorf("final state invalid: %w", err)
	}

	result.Actions = len(st.History)
	if st.Ended {
		result.WinnerSeat = st.PlayerIndex(st.Winner)
	} else {
		result.Stalled = true
	}

	s.config.Logger.Debug("Match finished", "seed", seed, "actions", result.Actions, "winner", result.WinnerSeat, "stalled", result.Stalled)
	return result, st, nil
}

func tally(r *statistics.MatchResult, res game.Resolution) {
	switch res.Kind {
	case game.ResolvedByConsensus:
		r.Consensus++
	case game.BluffCaught:
		r.BluffsCaught++
	case game.FalseAccusation:
		r.FalseAccusations++
	}
	if res.PileSize > r.LargestPile {
		r.LargestPile = res.PileSize
	}
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, matches, players int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	stats, _, err := New(Config{
		Matches: matches,
		Players: players,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
	return stats, err
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, players int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (%d players) ===\n", players)
	fmt.Fprintf(w, "Matches played: %d (%d completed, %d stalled)\n", stats.Matches, stats.Completed, stats.Stalled)

	fmt.Fprintf(w, "\n=== MATCH LENGTH (actions) ===\n")
	fmt.Fprintf(w, "Mean: %.2f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== ROUNDS ===\n")
	fmt.Fprintf(w, "Consensus: %d\n", stats.Consensus)
	fmt.Fprintf(w, "Bluffs caught: %d\n", stats.BluffsCaught)
	fmt.Fprintf(w, "False accusations: %d\n", stats.FalseAccusations)
	fmt.Fprintf(w, "Challenge success: %.1f%%\n", stats.ChallengeSuccessRate()*100)
	fmt.Fprintf(w, "Largest pile taken: %d cards\n", stats.MaxPile)

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for seat := 0; seat < players; seat++ {
		wins := 0
		if seat < len(stats.WinsBySeat) {
			wins = stats.WinsBySeat[seat]
		}
		fmt.Fprintf(w, "Seat %d: %d wins (%.1f%%)\n", seat, wins, stats.SeatWinRate(seat)*100)
	}
}
