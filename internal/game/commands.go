package game

import (
	"time"

	"github.com/lox/bluff/internal/deck"
)

// Command is an intent submitted to Reduce. The set of commands is closed;
// every implementation lives in this package.
type Command interface {
	// apply returns the next state and whether the command was accepted.
	// It must not mutate s.
	apply(s State) (State, bool)
}

// AddPlayer adds a human participant to the lobby
type AddPlayer struct {
	ID   string
	Name string
}

// AddScriptedPlayer adds a participant driven by the scripted policy. Its
// name is assigned as "Computer N".
type AddScriptedPlayer struct {
	ID string
}

// StartGame shuffles a deck from Seed and deals it
type StartGame struct {
	Seed    int64
	MatchID string
}

// PlayCards lays cards face down on the pile with a claim of Rank
type PlayCards struct {
	PlayerID string
	Cards    []deck.Card
	Rank     deck.Rank
	At       time.Time
}

// PassTurn declines to challenge the pending claim
type PassTurn struct {
	PlayerID string
	At       time.Time
}

// ChallengeClaim calls the pending claim a bluff
type ChallengeClaim struct {
	PlayerID string
	At       time.Time
}

// ResetGame returns the match to the lobby, keeping the roster
type ResetGame struct{}
