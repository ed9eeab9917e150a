package bot

import (
	rand "math/rand/v2"
	"time"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// DecisionKind is what a participant chooses to do
type DecisionKind int

const (
	Play DecisionKind = iota
	Pass
	Challenge
)

// String returns the string representation of the decision kind
func (k DecisionKind) String() string {
	switch k {
	case Play:
		return "play"
	case Pass:
		return "pass"
	case Challenge:
		return "challenge"
	default:
		return "unknown"
	}
}

// Decision is a participant's chosen action with reasoning
type Decision struct {
	Kind      DecisionKind
	Cards     []deck.Card // for Play
	Rank      deck.Rank   // claimed rank for Play
	Reasoning string      // Human-readable explanation
}

// View is the read-only information a policy may use: its own hand and the
// pending claim, if any.
type View struct {
	PlayerID string
	Hand     []deck.Card
	Claim    *game.Claim
}

// ViewFor builds the view of the player with the given ID
func ViewFor(s game.State, id string) View {
	v := View{PlayerID: id}
	if p, ok := s.Player(id); ok {
		v.Hand = p.Hand
	}
	if s.Claim != nil && len(s.Pile) > 0 {
		claim := *s.Claim
		v.Claim = &claim
	}
	return v
}

// Policy decides on an action from a view and a random source. Policies
// receive immutable state and return decisions; they never dispatch.
type Policy interface {
	Decide(v View, rng *rand.Rand) Decision
}

// Command converts a decision into the game command for the given player
func (d Decision) Command(playerID string, at time.Time) game.Command {
	switch d.Kind {
	case Play:
		return game.PlayCards{PlayerID: playerID, Cards: d.Cards, Rank: d.Rank, At: at}
	case Challenge:
		return game.ChallengeClaim{PlayerID: playerID, At: at}
	default:
		return game.PassTurn{PlayerID: playerID, At: at}
	}
}
