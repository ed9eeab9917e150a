package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bluff.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Default(), cfg)
	assert.Len(t, cfg.Players, 3)
	assert.False(t, cfg.Players[0].Scripted)

	delay, err := cfg.ThinkDelay()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, delay)
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
match {
  seed        = 42
  think_delay = "250ms"
  pass_scope  = "match"
  log_level   = "debug"
}

simulate {
  matches = 50
  workers = 2
}

player "Alice" {}
player "Computer" { scripted = true }
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Match.Seed)
	assert.Equal(t, DefaultLogFile, cfg.Match.LogFile)
	assert.Equal(t, game.PassScopeMatch, cfg.Rules().PassScope)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())

	delay, err := cfg.ThinkDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, delay)

	assert.Equal(t, 50, cfg.Simulate.Matches)
	assert.Equal(t, 2, cfg.Simulate.Workers)
	assert.Equal(t, DefaultPlayers, cfg.Simulate.Players)
	assert.Equal(t, DefaultMaxActions, cfg.Simulate.MaxActions)

	assert.Equal(t, []PlayerConfig{
		{Name: "Alice"},
		{Name: "Computer", Scripted: true},
	}, cfg.Players)
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeConfig(t, `match {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoadUnknownAttribute(t *testing.T) {
	_, err := Load(writeConfig(t, `match { blinds = 2 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad delay", func(c *Config) { c.Match.ThinkDelay = "soon" }, "think_delay"},
		{"negative delay", func(c *Config) { c.Match.ThinkDelay = "-1s" }, "negative"},
		{"bad pass scope", func(c *Config) { c.Match.PassScope = "round" }, "pass_scope"},
		{"bad log level", func(c *Config) { c.Match.LogLevel = "loud" }, "log_level"},
		{"no matches", func(c *Config) { c.Simulate.Matches = -1 }, "matches"},
		{"negative workers", func(c *Config) { c.Simulate.Workers = -1 }, "workers"},
		{"one player", func(c *Config) { c.Simulate.Players = 1 }, "players"},
		{"no actions", func(c *Config) { c.Simulate.MaxActions = -5 }, "max_actions"},
		{"empty name", func(c *Config) { c.Players[0].Name = "" }, "empty"},
		{"duplicate human", func(c *Config) {
			c.Players = append(c.Players, PlayerConfig{Name: "You"})
		}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestScriptedLabelsMayRepeat(t *testing.T) {
	cfg := Default()
	cfg.Players = append(cfg.Players, PlayerConfig{Name: "Computer", Scripted: true})
	assert.NoError(t, cfg.Validate())
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "bluff.example.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default(), cfg)
}
