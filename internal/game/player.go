package game

import "github.com/lox/bluff/internal/deck"

// CardCount returns the number of cards the player holds
func (p Player) CardCount() int {
	return len(p.Hand)
}

// Holds reports whether the player holds the card with the given ID
func (p Player) Holds(id string) bool {
	return deck.Contains(p.Hand, id)
}

// Kind returns "human" or "computer"
func (p Player) Kind() string {
	if p.Scripted {
		return "computer"
	}
	return "human"
}
