package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/bluff/internal/config"
	"github.com/lox/bluff/internal/session"
	"github.com/lox/bluff/internal/tui"
)

type PlayCmd struct {
	Deal bool `help:"Deal straight away instead of waiting in the lobby"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Match.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel())

	delay, err := cfg.ThinkDelay()
	if err != nil {
		return err
	}
	sess := session.New(session.Config{
		Rules:      cfg.Rules(),
		ThinkDelay: delay,
		Seed:       cfg.Match.Seed,
		Logger:     logger,
	})
	defer sess.Close()

	self, err := seatPlayers(sess, cfg.Players)
	if err != nil {
		return err
	}
	if c.Deal {
		if err := sess.Start(); err != nil {
			return err
		}
	}

	model := tui.New(sess, self, logger)
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// seatPlayers adds the configured players in order and returns the ID of the
// human at the keyboard. With no human seat the terminal only watches.
func seatPlayers(sess *session.Session, players []config.PlayerConfig) (string, error) {
	var self string
	for _, p := range players {
		if p.Scripted {
			if _, err := sess.AddScriptedPlayer(); err != nil {
				return "", fmt.Errorf("seating computer player: %w", err)
			}
			continue
		}
		if self != "" {
			return "", fmt.Errorf("player %s: only one human can play at this terminal", p.Name)
		}
		id, err := sess.AddPlayer(p.Name)
		if err != nil {
			return "", fmt.Errorf("seating %s: %w", p.Name, err)
		}
		self = id
	}
	return self, nil
}
