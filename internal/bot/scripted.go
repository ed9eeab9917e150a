package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/bluff/internal/deck"
)

const (
	// honestGroupChance is how often a bot with a pair or better plays it
	// straight
	honestGroupChance = 0.7
	// maxPlay bounds how many cards a bot lays down at once
	maxPlay = 3
	// semiHonestChance is how often a random play claims one of its own ranks
	semiHonestChance = 0.4

	baseChallenge      = 0.3
	challengePerCard   = 0.1
	maxChallengeChance = 0.7
)

// Scripted is the built-in policy for computer players. It has no memory of
// previous rounds; every decision depends only on the view and the rng.
type Scripted struct {
	logger *log.Logger
}

// NewScripted creates a new Scripted policy
func NewScripted(logger *log.Logger) *Scripted {
	return &Scripted{logger: logger}
}

// Decide picks a play when nothing is pending and otherwise chooses between
// challenging and passing.
func (b *Scripted) Decide(v View, rng *rand.Rand) Decision {
	var d Decision
	if v.Claim == nil {
		d = b.lead(v.Hand, rng)
	} else {
		d = b.respond(v.Claim.Count, rng)
	}
	if b.logger != nil {
		b.logger.Debug("Scripted decision",
			"player", v.PlayerID,
			"decision", d.Kind,
			"cards", len(d.Cards),
			"reasoning", d.Reasoning)
	}
	return d
}

func (b *Scripted) lead(hand []deck.Card, rng *rand.Rand) Decision {
	if len(hand) == 0 {
		return Decision{Kind: Pass, Reasoning: "no cards to play"}
	}

	best, group := largestGroup(hand)
	if len(group) >= 2 && rng.Float64() < honestGroupChance {
		return Decision{
			Kind:      Play,
			Cards:     group[:min(maxPlay, len(group))],
			Rank:      best,
			Reasoning: fmt.Sprintf("honest play of %d %ss", min(maxPlay, len(group)), best),
		}
	}

	n := min(rng.IntN(maxPlay)+1, len(hand))
	cards := randomCards(hand, n, rng)
	if rng.Float64() < semiHonestChance {
		return Decision{
			Kind:      Play,
			Cards:     cards,
			Rank:      cards[0].Rank,
			Reasoning: "random play claiming one of its ranks",
		}
	}
	return Decision{
		Kind:      Play,
		Cards:     cards,
		Rank:      deck.Ranks[rng.IntN(len(deck.Ranks))],
		Reasoning: "random play with a bluff rank",
	}
}

func (b *Scripted) respond(count int, rng *rand.Rand) Decision {
	threshold := ChallengeThreshold(count)
	if rng.Float64() < threshold {
		return Decision{Kind: Challenge, Reasoning: fmt.Sprintf("challenge at %.0f%% for %d cards", threshold*100, count)}
	}
	return Decision{Kind: Pass, Reasoning: "let the claim stand"}
}

// ChallengeThreshold is the chance of challenging a claim of count cards
func ChallengeThreshold(count int) float64 {
	return min(baseChallenge+float64(count)*challengePerCard, maxChallengeChance)
}

// largestGroup returns the rank held most often and the cards of that rank.
// Ties go to the rank seen first in the hand.
func largestGroup(hand []deck.Card) (deck.Rank, []deck.Card) {
	groups := make(map[deck.Rank][]deck.Card)
	var order []deck.Rank
	for _, c := range hand {
		if _, ok := groups[c.Rank]; !ok {
			order = append(order, c.Rank)
		}
		groups[c.Rank] = append(groups[c.Rank], c)
	}

	var best deck.Rank
	for _, r := range order {
		if len(groups[r]) > len(groups[best]) {
			best = r
		}
	}
	return best, groups[best]
}

// randomCards returns n distinct cards drawn uniformly from hand
func randomCards(hand []deck.Card, n int, rng *rand.Rand) []deck.Card {
	pool := make([]deck.Card, len(hand))
	copy(pool, hand)
	deck.Shuffle(pool, rng)
	return pool[:n]
}
