package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "letters",
			input: "Ah Kd Qc Js",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
			},
		},
		{
			name:  "tens both ways",
			input: "10h,Td",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Diamonds, Rank: Ten},
			},
		},
		{
			name:  "symbols",
			input: "2♥ 3♣",
			expected: []Card{
				{Suit: Hearts, Rank: Two},
				{Suit: Clubs, Rank: Three},
			},
		},
		{
			name:  "case insensitive",
			input: "aS kH",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
			},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "A",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func TestCardID(t *testing.T) {
	if got := NewCard(Hearts, Ten).ID(); got != "10-hearts" {
		t.Errorf("ID() = %q, want %q", got, "10-hearts")
	}
	if got := NewCard(Spades, Ace).ID(); got != "A-spades" {
		t.Errorf("ID() = %q, want %q", got, "A-spades")
	}
	if got := NewCard(Clubs, Queen).String(); got != "Q♣" {
		t.Errorf("String() = %q, want %q", got, "Q♣")
	}
}

func TestParseRank(t *testing.T) {
	for _, r := range Ranks {
		got, err := ParseRank(r.String())
		if err != nil {
			t.Fatalf("ParseRank(%q): %v", r.String(), err)
		}
		if got != r {
			t.Errorf("ParseRank(%q) = %v, want %v", r.String(), got, r)
		}
	}
	if _, err := ParseRank("1"); err == nil {
		t.Error("ParseRank(\"1\") should fail")
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Rank != b[i].Rank || a[i].Suit != b[i].Suit {
			return false
		}
	}
	return true
}
