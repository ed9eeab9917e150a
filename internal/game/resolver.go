package game

import (
	"slices"

	"github.com/lox/bluff/internal/deck"
)

// The helpers in this file operate on a state already cloned by the calling
// command and mutate it in place.

func (s *State) record(a Action) {
	s.History = append(s.History, a)
	last := a
	s.LastAction = &last
}

// advanceTurn moves the turn to the next seat. Nobody is skipped, including
// players without cards.
func (s *State) advanceTurn() {
	s.setTurn((s.Turn + 1) % len(s.Players))
}

func (s *State) setTurn(i int) {
	s.Turn = i
	s.syncTurnFlags()
}

func (s *State) syncTurnFlags() {
	for i := range s.Players {
		s.Players[i].CurrentTurn = s.Started && i == s.Turn
	}
}

// checkWin ends the match if any hand is empty. The lowest seat wins ties.
func (s *State) checkWin() {
	for _, p := range s.Players {
		if len(p.Hand) == 0 {
			s.Ended = true
			s.Winner = p.ID
			return
		}
	}
}

// passedOnClaim reports whether id passed since the pending claim was made,
// regardless of PassScope.
func (s State) passedOnClaim(id string) bool {
	for i := len(s.History) - 1; i >= 0; i-- {
		a := s.History[i]
		if a.Kind == ActionClaim {
			return false
		}
		if a.Kind == ActionPass && a.PlayerID == id {
			return true
		}
	}
	return false
}

// consensusReached reports whether every player except the claim owner has
// passed.
func (s State) consensusReached() bool {
	for _, p := range s.Players {
		if p.ID == s.Claim.PlayerID {
			continue
		}
		if !s.HasPassed(p.ID) {
			return false
		}
	}
	return true
}

// settleByConsensus retires the pile and hands the turn to the seat after
// the claim owner.
func (s *State) settleByConsensus() {
	owner := s.PlayerIndex(s.Claim.PlayerID)
	if owner < 0 {
		owner = s.Turn
	}
	s.Rounds++
	s.Resolution = &Resolution{
		Kind:       ResolvedByConsensus,
		ClaimantID: s.Claim.PlayerID,
		Claim:      *s.Claim,
		PileSize:   len(s.Pile),
		Round:      s.Rounds,
	}
	s.Discard = append(s.Discard, s.Pile...)
	s.Pile = nil
	s.Claim = nil
	s.setTurn((owner + 1) % len(s.Players))
}

// settleByChallenge reveals the claimed batch and hands the pile to the
// loser. A caught bluffer takes the pile and the challenger moves next; a
// wrong challenger takes the pile and play continues after the current seat.
func (s *State) settleByChallenge(challenger int) {
	claim := *s.Claim
	owner := s.PlayerIndex(claim.PlayerID)
	honest := ClaimHonest(s.Pile, claim)

	receiver, turn := challenger, (s.Turn+1)%len(s.Players)
	kind := FalseAccusation
	if !honest {
		receiver, turn = owner, challenger
		kind = BluffCaught
	}

	s.Rounds++
	s.Resolution = &Resolution{
		Kind:         kind,
		ClaimantID:   claim.PlayerID,
		ChallengerID: s.Players[challenger].ID,
		Claim:        claim,
		Revealed:     slices.Clone(claimedBatch(s.Pile, claim)),
		PileSize:     len(s.Pile),
		ReceiverID:   s.Players[receiver].ID,
		Round:        s.Rounds,
	}
	s.Players[receiver].Hand = append(s.Players[receiver].Hand, s.Pile...)
	s.Pile = nil
	s.Claim = nil
	s.setTurn(turn)
}

// ClaimHonest reports whether the most recently claimed batch, the last
// claim.Count cards of the pile, all carry the claimed rank. Earlier cards in
// an accumulated pile are not inspected.
func ClaimHonest(pile []deck.Card, claim Claim) bool {
	for _, c := range claimedBatch(pile, claim) {
		if c.Rank != claim.Rank {
			return false
		}
	}
	return true
}

func claimedBatch(pile []deck.Card, claim Claim) []deck.Card {
	n := claim.Count
	if n > len(pile) {
		n = len(pile)
	}
	if n < 0 {
		n = 0
	}
	return pile[len(pile)-n:]
}
