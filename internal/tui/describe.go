package tui

import (
	"fmt"
	"strings"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

// name returns a display name for id, "you" for the local player
func name(st game.State, id, self string) string {
	if id != "" && id == self {
		return "You"
	}
	if p, ok := st.Player(id); ok {
		return p.Name
	}
	return "Someone"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// DescribeAction renders a history entry as a log line
func DescribeAction(st game.State, a game.Action, self string) string {
	who := name(st, a.PlayerID, self)
	switch a.Kind {
	case game.ActionClaim:
		return fmt.Sprintf("%s played %s, claiming %s", who, plural(a.Count, "card", "cards"), a.Rank)
	case game.ActionPass:
		return fmt.Sprintf("%s passed", who)
	case game.ActionChallenge:
		return fmt.Sprintf("%s called bluff!", who)
	default:
		return fmt.Sprintf("%s did something unexpected (%s)", who, a.Kind)
	}
}

// DescribeResolution renders how a round ended
func DescribeResolution(st game.State, r game.Resolution, self string) string {
	claimant := name(st, r.ClaimantID, self)
	switch r.Kind {
	case game.ResolvedByConsensus:
		return fmt.Sprintf("Nobody challenged %s; %s discarded", claimant, plural(r.PileSize, "card", "cards"))
	case game.BluffCaught:
		return fmt.Sprintf("Bluff! %s revealed %s and picks up %s",
			claimant, formatPlain(r.Revealed), plural(r.PileSize, "card", "cards"))
	case game.FalseAccusation:
		return fmt.Sprintf("Honest! %s revealed %s; %s picks up %s",
			claimant, formatPlain(r.Revealed), name(st, r.ChallengerID, self), plural(r.PileSize, "card", "cards"))
	default:
		return string(r.Kind)
	}
}

func formatPlain(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Changes returns the log lines that take a view from prev to next
func Changes(prev, next game.State, self string) []string {
	if next.Version <= prev.Version {
		return nil
	}

	var lines []string
	switch {
	case !next.Started && prev.Started:
		return []string{"Back in the lobby"}
	case next.Started && (!prev.Started || next.MatchID != prev.MatchID):
		lines = append(lines, fmt.Sprintf("Match %s dealt to %d players", next.MatchID, len(next.Players)))
		prev.History, prev.Rounds, prev.Ended = nil, 0, false
	case !next.Started && len(next.Players) > len(prev.Players):
		for _, p := range next.Players[len(prev.Players):] {
			lines = append(lines, fmt.Sprintf("%s joined (%s)", p.Name, p.Kind()))
		}
		return lines
	}

	if len(next.History) > len(prev.History) {
		for _, a := range next.History[len(prev.History):] {
			lines = append(lines, DescribeAction(next, a, self))
		}
	}
	if game.NewResolution(prev, next) {
		lines = append(lines, DescribeResolution(next, *next.Resolution, self))
	}
	if next.Ended && !prev.Ended {
		lines = append(lines, fmt.Sprintf("%s won the match!", name(next, next.Winner, self)))
	}
	return lines
}
