package deck

import (
	rand "math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = 52

// New returns all 52 cards in construction order (suits outer, ranks inner)
func New() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in place using Fisher–Yates
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Build returns a freshly shuffled 52-card deck
func Build(rng *rand.Rand) []Card {
	cards := New()
	Shuffle(cards, rng)
	return cards
}

// Deal partitions cards into n hands in deck order. The first n-1 hands
// receive len(cards)/n cards each and the last hand takes the remainder,
// so leftovers are not spread evenly.
func Deal(cards []Card, n int) [][]Card {
	if n <= 0 {
		return nil
	}
	perHand := len(cards) / n
	hands := make([][]Card, n)
	for i := 0; i < n; i++ {
		start := i * perHand
		end := start + perHand
		if i == n-1 {
			end = len(cards)
		}
		hand := make([]Card, end-start)
		copy(hand, cards[start:end])
		hands[i] = hand
	}
	return hands
}

// Contains reports whether a card with the given ID is in cards
func Contains(cards []Card, id string) bool {
	return IndexOf(cards, id) >= 0
}

// IndexOf returns the index of the card with the given ID, or -1
func IndexOf(cards []Card, id string) int {
	for i, c := range cards {
		if c.ID() == id {
			return i
		}
	}
	return -1
}
