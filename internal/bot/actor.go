package bot

import (
	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// NextActor returns the scripted player that should act on s, if any.
//
// With nothing on the pile only the player on turn can act. With a claim
// pending, scripted players respond one at a time in seat order starting
// from the current turn, skipping the claim owner and anyone who has
// already passed on it. Humans respond whenever they like and are never
// waited on here.
func NextActor(s game.State) (game.Player, bool) {
	if !s.InProgress() || len(s.Players) == 0 {
		return game.Player{}, false
	}

	if s.Claim == nil {
		current, ok := s.CurrentPlayer()
		if !ok || !current.Scripted {
			return game.Player{}, false
		}
		return current, true
	}

	n := len(s.Players)
	for i := 0; i < n; i++ {
		p := s.Players[(s.Turn+i)%n]
		if !p.Scripted || p.ID == s.Claim.PlayerID {
			continue
		}
		if responded(s, p.ID) {
			continue
		}
		return p, true
	}
	return game.Player{}, false
}

// responded reports whether id already answered the pending claim
func responded(s game.State, id string) bool {
	for i := len(s.History) - 1; i >= 0; i-- {
		a := s.History[i]
		if a.Kind == game.ActionClaim {
			return false
		}
		if a.PlayerID == id {
			return true
		}
	}
	return false
}

// Fallback returns a decision that is legal whenever NextActor picked id:
// lead one card honestly, or pass on a pending claim.
func Fallback(s game.State, id string) Decision {
	p, _ := s.Player(id)
	if s.Claim == nil && len(p.Hand) > 0 {
		card := p.Hand[0]
		return Decision{Kind: Play, Cards: []deck.Card{card}, Rank: card.Rank, Reasoning: "fallback"}
	}
	return Decision{Kind: Pass, Reasoning: "fallback"}
}
