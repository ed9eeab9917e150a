package game

import (
	"slices"
	"time"

	"github.com/lox/bluff/internal/deck"
)

// MaxPlayers caps the roster so every participant can be dealt a card
const MaxPlayers = deck.Size

// ActionKind is the kind of an entry in the action history
type ActionKind string

const (
	ActionClaim     ActionKind = "claim"
	ActionPass      ActionKind = "pass"
	ActionChallenge ActionKind = "challenge"
)

// String returns the string representation of the action kind
func (k ActionKind) String() string {
	return string(k)
}

// Action is an append-only history entry. Rank and Count are only set for
// claims.
type Action struct {
	PlayerID string
	Kind     ActionKind
	At       time.Time
	Rank     deck.Rank
	Count    int
}

// Claim is the pending assertion made by the last player to lay down cards
type Claim struct {
	PlayerID string
	Rank     deck.Rank
	Count    int
}

// Player is a participant in the match
type Player struct {
	ID          string
	Name        string
	Scripted    bool
	Host        bool
	Hand        []deck.Card
	CurrentTurn bool
}

// ResolutionKind describes how a round ended
type ResolutionKind string

const (
	// ResolvedByConsensus means every other player passed on the claim
	ResolvedByConsensus ResolutionKind = "consensus"
	// BluffCaught means a challenge exposed a false claim
	BluffCaught ResolutionKind = "bluff_caught"
	// FalseAccusation means a challenge hit an honest claim
	FalseAccusation ResolutionKind = "false_accusation"
)

// Resolution records the outcome of the most recently finished round
type Resolution struct {
	Kind         ResolutionKind
	ClaimantID   string
	ChallengerID string // empty for consensus
	Claim        Claim
	Revealed     []deck.Card // the claimed batch, revealed by a challenge
	PileSize     int         // cards that changed hands or were discarded
	ReceiverID   string      // who picked up the pile; empty for consensus
	Round        int         // 1-based, matches State.Rounds when recorded
}

// PassScope selects which passes count toward consensus
type PassScope string

const (
	// PassScopeClaim counts only passes made since the pending claim
	PassScopeClaim PassScope = "claim"
	// PassScopeMatch counts any pass made since the deal. Retained for
	// parity with the earliest rules, where an old pass could settle a
	// later claim.
	PassScopeMatch PassScope = "match"
)

// Valid reports whether the scope is a known value
func (p PassScope) Valid() bool {
	return p == PassScopeClaim || p == PassScopeMatch
}

// Rules holds the rule options of a match. They survive a reset.
type Rules struct {
	PassScope PassScope
}

// DefaultRules returns the standard rule set
func DefaultRules() Rules {
	return Rules{PassScope: PassScopeClaim}
}

// State is the single authoritative snapshot of a match. Values returned by
// Reduce share no mutable memory with their input.
type State struct {
	MatchID string
	Seed    int64
	Rules   Rules

	Players []Player
	Turn    int

	Pile    []deck.Card
	Discard []deck.Card
	Claim   *Claim

	LastAction *Action
	History    []Action
	Resolution *Resolution
	Rounds     int // claims resolved this match

	Started bool
	Ended   bool
	Winner  string

	ScriptedIDs []string

	// Version increments on every applied transition
	Version uint64
}

// New returns an empty lobby with the given rules
func New(rules Rules) State {
	if !rules.PassScope.Valid() {
		rules.PassScope = PassScopeClaim
	}
	return State{Rules: rules}
}

// InProgress reports whether cards have been dealt and nobody has won yet
func (s State) InProgress() bool {
	return s.Started && !s.Ended
}

// PlayerIndex returns the index of the player with the given ID, or -1
func (s State) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player returns the player with the given ID
func (s State) Player(id string) (Player, bool) {
	i := s.PlayerIndex(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

// CurrentPlayer returns the player whose turn it is
func (s State) CurrentPlayer() (Player, bool) {
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.Turn], true
}

// CardsInPlay returns the number of cards across hands, pile and discard
func (s State) CardsInPlay() int {
	n := len(s.Pile) + len(s.Discard)
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}

// HasPassed reports whether the player has passed in the window that counts
// toward consensus under the match's PassScope.
func (s State) HasPassed(id string) bool {
	for _, a := range s.passWindow() {
		if a.Kind == ActionPass && a.PlayerID == id {
			return true
		}
	}
	return false
}

// passWindow returns the slice of history in which passes count
func (s State) passWindow() []Action {
	if s.Rules.PassScope == PassScopeMatch {
		return s.History
	}
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Kind == ActionClaim {
			return s.History[i+1:]
		}
	}
	return s.History
}

// NewResolution reports whether next settled a round that prev had not
func NewResolution(prev, next State) bool {
	return next.Resolution != nil && next.Rounds > prev.Rounds
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	c := s
	c.Players = slices.Clone(s.Players)
	for i := range c.Players {
		c.Players[i].Hand = slices.Clone(s.Players[i].Hand)
	}
	c.Pile = slices.Clone(s.Pile)
	c.Discard = slices.Clone(s.Discard)
	c.History = slices.Clone(s.History)
	c.ScriptedIDs = slices.Clone(s.ScriptedIDs)
	if s.Claim != nil {
		claim := *s.Claim
		c.Claim = &claim
	}
	if s.LastAction != nil {
		last := *s.LastAction
		c.LastAction = &last
	}
	if s.Resolution != nil {
		res := *s.Resolution
		res.Revealed = slices.Clone(s.Resolution.Revealed)
		c.Resolution = &res
	}
	return c
}
