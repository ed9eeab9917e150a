// Package session owns a single Bluff match for a local process. It guards
// the action API, serializes every transition through game.Reduce, fans
// snapshots out to subscribers and drives scripted players on a timer.
package session

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/bluff/internal/bot"
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
	"github.com/lox/bluff/internal/gameid"
	"github.com/lox/bluff/internal/randutil"
)

// DefaultThinkDelay is how long a scripted player "thinks" before acting
const DefaultThinkDelay = 1500 * time.Millisecond

// Config configures a Session
type Config struct {
	Rules      game.Rules
	ThinkDelay time.Duration
	Seed       int64 // 0 picks a time-derived seed
	Clock      quartz.Clock
	Logger     *log.Logger
	Policy     bot.Policy
}

// Session is a match plus the machinery around it. All methods are safe for
// concurrent use.
type Session struct {
	mu     sync.Mutex
	state  game.State
	closed bool

	clock  quartz.Clock
	logger *log.Logger
	policy bot.Policy
	rng    *rand.Rand
	ids    *gameid.Generator
	delay  time.Duration
	timer  *quartz.Timer

	subMu    sync.Mutex
	subs     map[int]func(game.State)
	nextSub  int
	notified uint64
}

// New creates a session with an empty lobby
func New(cfg Config) *Session {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Policy == nil {
		cfg.Policy = bot.NewScripted(cfg.Logger)
	}
	if cfg.ThinkDelay <= 0 {
		cfg.ThinkDelay = DefaultThinkDelay
	}
	seed := randutil.Seed(cfg.Seed)
	rng := randutil.New(seed)

	cfg.Logger.Debug("Session created", "seed", seed, "passScope", cfg.Rules.PassScope, "thinkDelay", cfg.ThinkDelay)

	return &Session{
		state:  game.New(cfg.Rules),
		clock:  cfg.Clock,
		logger: cfg.Logger,
		policy: cfg.Policy,
		rng:    rng,
		ids:    gameid.NewGenerator(rng, func() time.Time { return cfg.Clock.Now() }),
		delay:  cfg.ThinkDelay,
		subs:   make(map[int]func(game.State)),
	}
}

// Snapshot returns a copy of the current match state
func (s *Session) Snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every applied change.
// Snapshots arrive in version order; a subscriber that falls behind may skip
// intermediate versions. fn must not block. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(game.State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// AddPlayer adds a human player and returns their ID
func (s *Session) AddPlayer(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	id := "player-" + uuid.NewString()
	return id, s.lobbyDispatch(game.AddPlayer{ID: id, Name: name})
}

// AddScriptedPlayer adds a computer player and returns its ID
func (s *Session) AddScriptedPlayer() (string, error) {
	id := "computer-" + uuid.NewString()
	return id, s.lobbyDispatch(game.AddScriptedPlayer{ID: id})
}

func (s *Session) lobbyDispatch(cmd game.Command) error {
	return s.dispatch(cmd, func(st game.State) error {
		if st.Started {
			return ErrMatchStarted
		}
		return nil
	})
}

// Start deals a new match. A finished match must be reset first.
func (s *Session) Start() error {
	return s.dispatchWith(func(st game.State) (game.Command, error) {
		if st.Started {
			return nil, ErrMatchStarted
		}
		if len(st.Players) < 2 {
			return nil, ErrNotEnoughPlayers
		}
		return game.StartGame{Seed: s.rng.Int64(), MatchID: s.ids.Generate()}, nil
	})
}

// Play lays cards from actorID's hand claiming rank
func (s *Session) Play(cards []deck.Card, rank deck.Rank, actorID string) error {
	return s.dispatchWith(func(st game.State) (game.Command, error) {
		if !st.InProgress() {
			return nil, ErrMatchNotInProgress
		}
		return game.PlayCards{PlayerID: actorID, Cards: cards, Rank: rank, At: s.clock.Now()}, nil
	})
}

// Pass declines to challenge the pending claim
func (s *Session) Pass(actorID string) error {
	return s.dispatchWith(func(st game.State) (game.Command, error) {
		if !st.InProgress() {
			return nil, ErrMatchNotInProgress
		}
		return game.PassTurn{PlayerID: actorID, At: s.clock.Now()}, nil
	})
}

// Challenge calls the pending claim a bluff
func (s *Session) Challenge(challengerID string) error {
	return s.dispatchWith(func(st game.State) (game.Command, error) {
		if !st.InProgress() {
			return nil, ErrMatchNotInProgress
		}
		return game.ChallengeClaim{PlayerID: challengerID, At: s.clock.Now()}, nil
	})
}

// Reset returns to the lobby keeping the roster
func (s *Session) Reset() error {
	return s.dispatch(game.ResetGame{}, nil)
}

// Close stops any pending scripted turn. Further actions fail with
// ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
}

func (s *Session) dispatch(cmd game.Command, guard func(game.State) error) error {
	return s.dispatchWith(func(st game.State) (game.Command, error) {
		if guard != nil {
			if err := guard(st); err != nil {
				return nil, err
			}
		}
		return cmd, nil
	})
}

// dispatchWith builds a command from the current state under the lock,
// applies it and notifies subscribers once the lock is released.
func (s *Session) dispatchWith(build func(game.State) (game.Command, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	cmd, err := build(s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	next, ok := s.applyLocked(cmd)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %T", ErrRejected, cmd)
	}
	s.notify(next)
	return nil
}

// applyLocked runs cmd through the reducer and, when it is accepted,
// re-arms the scripted-turn timer. Callers must hold s.mu.
func (s *Session) applyLocked(cmd game.Command) (game.State, bool) {
	prev := s.state
	next, ok := game.Apply(prev, cmd)
	if !ok {
		s.logger.Debug("Command rejected", "command", fmt.Sprintf("%T", cmd), "version", prev.Version)
		return prev, false
	}
	s.state = next
	s.logTransition(prev, next, cmd)
	s.scheduleLocked()
	return next.Clone(), true
}

func (s *Session) logTransition(prev, next game.State, cmd game.Command) {
	switch c := cmd.(type) {
	case game.StartGame:
		s.logger.Info("Match started", "match", next.MatchID, "players", len(next.Players), "hands", next.HandSizes())
	case game.ResetGame:
		s.logger.Info("Match reset", "match", prev.MatchID)
	case game.PlayCards:
		s.logger.Debug("Claim", "player", c.PlayerID, "rank", c.Rank, "count", len(c.Cards), "pile", len(next.Pile))
	case game.PassTurn:
		s.logger.Debug("Pass", "player", c.PlayerID)
	case game.ChallengeClaim:
		s.logger.Debug("Challenge", "player", c.PlayerID)
	case game.AddPlayer, game.AddScriptedPlayer:
		added := next.Players[len(next.Players)-1]
		s.logger.Info("Player joined", "name", added.Name, "kind", added.Kind(), "host", added.Host)
	}
	if game.NewResolution(prev, next) {
		s.logger.Debug("Round resolved", "outcome", next.Resolution.Kind, "cards", next.Resolution.PileSize, "receiver", next.Resolution.ReceiverID)
	}
	if next.Ended && !prev.Ended {
		s.logger.Info("Match ended", "match", next.MatchID, "winner", next.Winner, "actions", len(next.History))
	}
}

func (s *Session) notify(st game.State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if st.Version <= s.notified {
		return
	}
	s.notified = st.Version
	for _, fn := range s.subs {
		fn(st)
	}
}
