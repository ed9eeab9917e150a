package game

import (
	"slices"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/randutil"
)

// Reduce is the transition function of a match. It never mutates s and never
// fails: a command that is illegal in s, out of turn, or nil yields s
// unchanged.
func Reduce(s State, cmd Command) State {
	next, _ := Apply(s, cmd)
	return next
}

// Apply is Reduce that also reports whether the command was accepted.
// Accepted commands bump Version.
func Apply(s State, cmd Command) (State, bool) {
	if cmd == nil {
		return s, false
	}
	next, ok := cmd.apply(s)
	if !ok {
		return s, false
	}
	next.Version = s.Version + 1
	return next, true
}

func (c AddPlayer) apply(s State) (State, bool) {
	if !canJoin(s, c.ID) {
		return s, false
	}
	next := s.Clone()
	next.Players = append(next.Players, Player{
		ID:   c.ID,
		Name: c.Name,
		Host: len(s.Players) == 0,
	})
	return next, true
}

func (c AddScriptedPlayer) apply(s State) (State, bool) {
	if !canJoin(s, c.ID) {
		return s, false
	}
	next := s.Clone()
	next.Players = append(next.Players, Player{
		ID:       c.ID,
		Name:     ScriptedName(s.Players),
		Scripted: true,
		Host:     len(s.Players) == 0,
	})
	next.ScriptedIDs = append(next.ScriptedIDs, c.ID)
	return next, true
}

func canJoin(s State, id string) bool {
	return !s.Started && id != "" && s.PlayerIndex(id) < 0 && len(s.Players) < MaxPlayers
}

func (c StartGame) apply(s State) (State, bool) {
	if s.Started || len(s.Players) < 2 {
		return s, false
	}

	cards := deck.Build(randutil.New(c.Seed))
	hands := deck.Deal(cards, len(s.Players))

	next := s.Clone()
	for i := range next.Players {
		next.Players[i].Hand = hands[i]
	}
	next.MatchID = c.MatchID
	next.Seed = c.Seed
	next.Turn = 0
	next.Pile = nil
	next.Discard = nil
	next.Claim = nil
	next.LastAction = nil
	next.History = nil
	next.Resolution = nil
	next.Rounds = 0
	next.Started = true
	next.Ended = false
	next.Winner = ""
	next.syncTurnFlags()
	return next, true
}

func (c PlayCards) apply(s State) (State, bool) {
	if !s.InProgress() || len(c.Cards) == 0 || !c.Rank.Valid() {
		return s, false
	}
	idx := s.PlayerIndex(c.PlayerID)
	if idx < 0 || idx != s.Turn {
		return s, false
	}
	if !holdsAll(s.Players[idx].Hand, c.Cards) {
		return s, false
	}

	next := s.Clone()
	played := make(map[string]bool, len(c.Cards))
	for _, card := range c.Cards {
		played[card.ID()] = true
	}
	hand := next.Players[idx].Hand[:0]
	for _, card := range next.Players[idx].Hand {
		if !played[card.ID()] {
			hand = append(hand, card)
		}
	}
	next.Players[idx].Hand = hand
	// The claimed batch is always the tail of the pile.
	next.Pile = append(next.Pile, c.Cards...)

	next.Claim = &Claim{PlayerID: c.PlayerID, Rank: c.Rank, Count: len(c.Cards)}
	next.record(Action{
		PlayerID: c.PlayerID,
		Kind:     ActionClaim,
		At:       c.At,
		Rank:     c.Rank,
		Count:    len(c.Cards),
	})
	next.advanceTurn()
	next.checkWin()
	return next, true
}

// holdsAll reports whether every card is in hand and no card is named twice
func holdsAll(hand, cards []deck.Card) bool {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		id := c.ID()
		if seen[id] || !deck.Contains(hand, id) {
			return false
		}
		seen[id] = true
	}
	return true
}

func (c PassTurn) apply(s State) (State, bool) {
	if !s.InProgress() || s.Claim == nil || len(s.Pile) == 0 {
		return s, false
	}
	if s.PlayerIndex(c.PlayerID) < 0 || c.PlayerID == s.Claim.PlayerID {
		return s, false
	}
	if s.passedOnClaim(c.PlayerID) {
		return s, false
	}

	next := s.Clone()
	next.record(Action{PlayerID: c.PlayerID, Kind: ActionPass, At: c.At})
	if next.consensusReached() {
		next.settleByConsensus()
	}
	return next, true
}

func (c ChallengeClaim) apply(s State) (State, bool) {
	if !s.InProgress() || s.Claim == nil || len(s.Pile) == 0 {
		return s, false
	}
	challenger := s.PlayerIndex(c.PlayerID)
	if challenger < 0 || c.PlayerID == s.Claim.PlayerID {
		return s, false
	}

	next := s.Clone()
	next.record(Action{PlayerID: c.PlayerID, Kind: ActionChallenge, At: c.At})
	next.settleByChallenge(challenger)
	next.checkWin()
	return next, true
}

func (ResetGame) apply(s State) (State, bool) {
	next := New(s.Rules)
	next.Players = slices.Clone(s.Players)
	for i := range next.Players {
		next.Players[i].Hand = nil
		next.Players[i].CurrentTurn = false
	}
	next.ScriptedIDs = slices.Clone(s.ScriptedIDs)
	return next, true
}
