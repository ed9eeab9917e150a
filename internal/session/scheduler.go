package session

import "github.com/lox/bluff/internal/bot"

// scheduleLocked cancels any pending scripted turn and, if a scripted
// player should act on the current state, arms a timer for it. The timer
// is keyed by state version so a callback that races a later change does
// nothing. Callers must hold s.mu.
func (s *Session) scheduleLocked() {
	s.stopTimerLocked()
	if s.closed {
		return
	}
	actor, ok := bot.NextActor(s.state)
	if !ok {
		return
	}
	version := s.state.Version
	id := actor.ID
	s.logger.Debug("Scheduling scripted turn", "player", actor.Name, "delay", s.delay, "version", version)
	// The clock may hold internal locks while running the callback, and the
	// scripted turn re-arms the timer, so hand off to a fresh goroutine.
	s.timer = s.clock.AfterFunc(s.delay, func() {
		go s.runScripted(id, version)
	}, "session", "scripted")
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// runScripted lets the scripted player act if the state has not moved on
// since the turn was scheduled.
func (s *Session) runScripted(id string, version uint64) {
	s.mu.Lock()
	if s.closed || s.state.Version != version {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	p, _ := s.state.Player(id)
	decision := s.policy.Decide(bot.ViewFor(s.state, id), s.rng)
	s.logger.Debug("Scripted player acts", "player", p.Name, "decision", decision.Kind, "reasoning", decision.Reasoning)

	next, ok := s.applyLocked(decision.Command(id, s.clock.Now()))
	if !ok {
		next, ok = s.applyLocked(bot.Fallback(s.state, id).Command(id, s.clock.Now()))
	}
	if !ok {
		s.logger.Error("Scripted player could not act", "player", p.Name, "version", version)
	}
	s.mu.Unlock()

	if ok {
		s.notify(next)
	}
}
