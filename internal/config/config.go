// Package config loads the optional HCL file that sets up a local match.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bluff/internal/game"
)

// Defaults applied to anything the file leaves out
const (
	DefaultThinkDelay = "1500ms"
	DefaultLogLevel   = "info"
	DefaultLogFile    = "bluff.log"
	DefaultMatches    = 1000
	DefaultPlayers    = 4
	DefaultMaxActions = 5000
)

// Config represents the complete configuration file
type Config struct {
	Match    *MatchSettings    `hcl:"match,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
	Players  []PlayerConfig    `hcl:"player,block"`
}

// MatchSettings contains match-level configuration
type MatchSettings struct {
	Seed       int64  `hcl:"seed,optional"`
	ThinkDelay string `hcl:"think_delay,optional"`
	PassScope  string `hcl:"pass_scope,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	LogFile    string `hcl:"log_file,optional"`
}

// SimulateSettings configures bot-only batch runs
type SimulateSettings struct {
	Matches    int `hcl:"matches,optional"`
	Workers    int `hcl:"workers,optional"`
	Players    int `hcl:"players,optional"`
	MaxActions int `hcl:"max_actions,optional"`
}

// PlayerConfig seats a player in the lobby before the match starts.
// Scripted players are named "Computer N" whatever their label says.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Scripted bool   `hcl:"scripted,optional"`
}

// Default returns the configuration used when no file is present: one
// human against two computers.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "You"},
			{Name: "Computer", Scripted: true},
			{Name: "Computer", Scripted: true},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	if c.Match.ThinkDelay == "" {
		c.Match.ThinkDelay = DefaultThinkDelay
	}
	if c.Match.PassScope == "" {
		c.Match.PassScope = string(game.PassScopeClaim)
	}
	if c.Match.LogLevel == "" {
		c.Match.LogLevel = DefaultLogLevel
	}
	if c.Match.LogFile == "" {
		c.Match.LogFile = DefaultLogFile
	}

	if c.Simulate == nil {
		c.Simulate = &SimulateSettings{}
	}
	if c.Simulate.Matches == 0 {
		c.Simulate.Matches = DefaultMatches
	}
	if c.Simulate.Players == 0 {
		c.Simulate.Players = DefaultPlayers
	}
	if c.Simulate.MaxActions == 0 {
		c.Simulate.MaxActions = DefaultMaxActions
	}
	// Workers stays 0 here; the simulator picks GOMAXPROCS.
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.ThinkDelay(); err != nil {
		return err
	}
	if !game.PassScope(c.Match.PassScope).Valid() {
		return fmt.Errorf("invalid pass_scope %q: want %q or %q", c.Match.PassScope, game.PassScopeClaim, game.PassScopeMatch)
	}
	if _, err := log.ParseLevel(c.Match.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.Match.LogLevel, err)
	}

	if c.Simulate.Matches < 1 {
		return fmt.Errorf("simulate: matches must be positive")
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate: workers cannot be negative")
	}
	if c.Simulate.Players < 2 || c.Simulate.Players > game.MaxPlayers {
		return fmt.Errorf("simulate: players must be between 2 and %d", game.MaxPlayers)
	}
	if c.Simulate.MaxActions < 1 {
		return fmt.Errorf("simulate: max_actions must be positive")
	}

	if len(c.Players) > game.MaxPlayers {
		return fmt.Errorf("at most %d players can be seated", game.MaxPlayers)
	}
	seen := make(map[string]bool)
	for _, p := range c.Players {
		if p.Scripted {
			continue
		}
		if p.Name == "" {
			return fmt.Errorf("player name cannot be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ThinkDelay returns the parsed scripted-player think delay
func (c *Config) ThinkDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Match.ThinkDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid think_delay %q: %w", c.Match.ThinkDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid think_delay %q: cannot be negative", c.Match.ThinkDelay)
	}
	return d, nil
}

// Rules returns the game rules selected by the configuration
func (c *Config) Rules() game.Rules {
	return game.Rules{PassScope: game.PassScope(c.Match.PassScope)}
}

// LogLevel returns the configured log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Match.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
