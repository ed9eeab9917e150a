package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name used in card identifiers
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The ordering is for display only; bluff has
// no notion of one rank beating another.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in display order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// ID returns the stable identifier of the card, e.g. "10-hearts". A deck
// never holds two cards with the same ID.
func (c Card) ID() string {
	return c.Rank.String() + "-" + c.Suit.Name()
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseRank parses a rank such as "2", "10", "T", "q" or "A"
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank %q", s)
	}
}

// ParseSuit parses a suit letter (h, d, c, s) or symbol
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "♥":
		return Hearts, nil
	case "d", "♦":
		return Diamonds, nil
	case "c", "♣":
		return Clubs, nil
	case "s", "♠":
		return Spades, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", s)
	}
}

// ParseCard parses a short card form such as "Ah", "10d" or "Qs"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	// The suit is always the last rune, which may be a multi-byte symbol.
	runes := []rune(s)
	rank, err := ParseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := ParseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
