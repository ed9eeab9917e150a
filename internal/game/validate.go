package game

import (
	"fmt"

	"github.com/lox/bluff/internal/deck"
)

// Validate checks the structural invariants of a state: card conservation,
// a single host, a valid turn index and a claim that exists exactly when the
// pile is non-empty.
func Validate(s State) error {
	hosts := 0
	for _, p := range s.Players {
		if p.Host {
			hosts++
		}
	}
	if hosts > 1 {
		return fmt.Errorf("found %d hosts, want at most one", hosts)
	}
	if len(s.Players) > 0 && hosts != 1 {
		return fmt.Errorf("roster of %d players has no host", len(s.Players))
	}

	if !s.Started {
		if n := s.CardsInPlay(); n != 0 {
			return fmt.Errorf("lobby holds %d cards", n)
		}
		return nil
	}

	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return fmt.Errorf("turn index %d out of range for %d players", s.Turn, len(s.Players))
	}
	if err := ValidateCardConservation(s); err != nil {
		return err
	}
	if (s.Claim != nil) != (len(s.Pile) > 0) {
		return fmt.Errorf("claim pending=%t but pile holds %d cards", s.Claim != nil, len(s.Pile))
	}
	if s.Claim != nil && (s.Claim.Count < 1 || s.Claim.Count > len(s.Pile)) {
		return fmt.Errorf("claim count %d invalid for pile of %d", s.Claim.Count, len(s.Pile))
	}
	if s.Ended && s.PlayerIndex(s.Winner) < 0 {
		return fmt.Errorf("match ended without a known winner %q", s.Winner)
	}
	return nil
}

// ValidateCardConservation checks that hands, pile and discard together hold
// each card of one deck exactly once.
func ValidateCardConservation(s State) error {
	seen := make(map[string]string, deck.Size)
	check := func(where string, cards []deck.Card) error {
		for _, c := range cards {
			if prev, dup := seen[c.ID()]; dup {
				return fmt.Errorf("card conservation violation: %s found in %s and %s", c, prev, where)
			}
			seen[c.ID()] = where
		}
		return nil
	}
	for _, p := range s.Players {
		if err := check("hand of "+p.ID, p.Hand); err != nil {
			return err
		}
	}
	if err := check("pile", s.Pile); err != nil {
		return err
	}
	if err := check("discard", s.Discard); err != nil {
		return err
	}
	if len(seen) != deck.Size {
		return fmt.Errorf("card conservation violation: expected %d cards, but found %d (difference: %d)",
			deck.Size, len(seen), len(seen)-deck.Size)
	}
	return nil
}
