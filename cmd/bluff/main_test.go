package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/session"
	"github.com/lox/bluff/internal/simulator"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("bluff"), kong.Vars{"version": "test"})
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &cli, ctx
}

func TestPlayIsTheDefaultCommand(t *testing.T) {
	cli, ctx := parse(t)
	if ctx.Command() != "play" {
		t.Fatalf("expected play, got %q", ctx.Command())
	}
	if filepath.Base(cli.Config) != "bluff.hcl" {
		t.Fatalf("unexpected default config %q", cli.Config)
	}
}

func TestSimulateFlags(t *testing.T) {
	cli, ctx := parse(t, "--seed", "7", "simulate", "--matches", "20", "-p", "3", "-o", "out.json")
	if ctx.Command() != "simulate" {
		t.Fatalf("expected simulate, got %q", ctx.Command())
	}
	if cli.Seed != 7 || cli.Simulate.Matches != 20 || cli.Simulate.Players != 3 {
		t.Fatalf("flags not bound: %+v", cli)
	}
	if filepath.Base(cli.Simulate.Out) != "out.json" {
		t.Fatalf("unexpected out path %q", cli.Simulate.Out)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), Seed: 42, Debug: true}
	cfg, err := g.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Match.Seed != 42 {
		t.Fatalf("seed override ignored: %d", cfg.Match.Seed)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Fatalf("debug override ignored: %v", cfg.LogLevel())
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bluff.hcl")
	if err := os.WriteFile(path, []byte("match {\n  pass_scope = \"round\"\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := &Globals{Config: path}
	if _, err := g.loadConfig(); err == nil {
		t.Fatalf("expected invalid pass_scope to fail")
	}
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(session.Config{
		ThinkDelay: time.Hour,
		Clock:      quartz.NewMock(t),
		Logger:     log.NewWithOptions(io.Discard, log.Options{}),
	})
	t.Cleanup(sess.Close)
	return sess
}

func TestSeatPlayers(t *testing.T) {
	sess := newSession(t)
	self, err := seatPlayers(sess, config.Default().Players)
	if err != nil {
		t.Fatalf("seatPlayers: %v", err)
	}

	st := sess.Snapshot()
	if len(st.Players) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(st.Players))
	}
	if st.Players[0].ID != self || st.Players[0].Name != "You" {
		t.Fatalf("first seat should be the local human, got %+v", st.Players[0])
	}
	if st.Players[1].Name != "Computer 1" || st.Players[2].Name != "Computer 2" {
		t.Fatalf("unexpected computer names %q %q", st.Players[1].Name, st.Players[2].Name)
	}
}

func TestSeatPlayersSpectator(t *testing.T) {
	sess := newSession(t)
	self, err := seatPlayers(sess, []config.PlayerConfig{
		{Name: "a", Scripted: true},
		{Name: "b", Scripted: true},
	})
	if err != nil {
		t.Fatalf("seatPlayers: %v", err)
	}
	if self != "" {
		t.Fatalf("expected no local player, got %q", self)
	}
}

func TestSeatPlayersRejectsSecondHuman(t *testing.T) {
	sess := newSession(t)
	_, err := seatPlayers(sess, []config.PlayerConfig{{Name: "Alice"}, {Name: "Bob"}})
	if err == nil {
		t.Fatalf("expected an error for two humans")
	}
}

func TestSimulateAppliesConfigDefaults(t *testing.T) {
	cmd := SimulateCmd{Players: 6}
	cmd.applyConfig(config.Default())
	if cmd.Matches != config.DefaultMatches {
		t.Fatalf("matches: want %d got %d", config.DefaultMatches, cmd.Matches)
	}
	if cmd.Players != 6 {
		t.Fatalf("flag should win over config, got %d players", cmd.Players)
	}
	if cmd.MaxActions != config.DefaultMaxActions {
		t.Fatalf("max actions: want %d got %d", config.DefaultMaxActions, cmd.MaxActions)
	}
}

func TestSimulateWritesReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	cfgPath := filepath.Join(t.TempDir(), "bluff.hcl")
	hcl := "match {\n  seed = 5\n  log_level = \"error\"\n}\nsimulate {\n  matches = 4\n  players = 3\n  workers = 2\n}\n"
	if err := os.WriteFile(cfgPath, []byte(hcl), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout := os.Stdout
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devnull.Close()
	os.Stdout = devnull
	cmd := &SimulateCmd{Out: out}
	err = cmd.Run(&Globals{Config: cfgPath})
	os.Stdout = stdout
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if report.Seed != 5 || report.Players != 3 || report.Matches != 4 || len(report.Results) != 4 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.PassScope != "claim" {
		t.Fatalf("unexpected pass scope %q", report.PassScope)
	}

	// The same seed reproduces the first match.
	sim := simulator.New(simulator.Config{Players: 3, Logger: log.NewWithOptions(io.Discard, log.Options{})})
	first, _, err := sim.PlayMatch(report.Results[0].Seed)
	if err != nil {
		t.Fatal(err)
	}
	if first != report.Results[0] {
		t.Fatalf("replay mismatch: %+v vs %+v", first, report.Results[0])
	}
}
