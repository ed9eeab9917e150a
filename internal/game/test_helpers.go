package game

import (
	"fmt"

	"github.com/lox/bluff/internal/deck"
)

// NewTestLobby returns a lobby with n human players named p0..p(n-1)
func NewTestLobby(n int) State {
	s := New(DefaultRules())
	for i := 0; i < n; i++ {
		s = Reduce(s, AddPlayer{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player %d", i)})
	}
	return s
}

// NewTestMatch returns a started match whose hands are exactly the given
// card lists, parsed with deck.MustParseCards. Cards not listed are absent,
// so card conservation does not hold for these states.
func NewTestMatch(hands ...string) State {
	s := NewTestLobby(len(hands))
	s.Started = true
	for i, h := range hands {
		s.Players[i].Hand = deck.MustParseCards(h)
	}
	s.syncTurnFlags()
	return s
}
