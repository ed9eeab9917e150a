package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/bluff/internal/deck"
)

// CommandKind identifies what the user typed
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdPlay
	CmdPass
	CmdChallenge
	CmdStart
	CmdAddBot
	CmdReset
	CmdHelp
	CmdQuit
)

// Command is a parsed line of user input
type Command struct {
	Kind    CommandKind
	Indexes []int // 1-based positions in the sorted hand, for CmdPlay
	Rank    deck.Rank
}

var errPlayUsage = errors.New("usage: play <card numbers> as <rank>, e.g. play 1 3 as Q")

// ParseCommand parses a line typed into the action pane. Card numbers refer
// to the hand as displayed, which is sorted by rank.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(strings.ToLower(strings.ReplaceAll(input, ",", " ")))
	if len(parts) == 0 {
		return Command{Kind: CmdNone}, nil
	}

	switch parts[0] {
	case "play", "p":
		return parsePlay(parts[1:])
	case "pass", "ok":
		return Command{Kind: CmdPass}, nil
	case "challenge", "bluff", "c", "liar":
		return Command{Kind: CmdChallenge}, nil
	case "start", "deal":
		return Command{Kind: CmdStart}, nil
	case "bot", "add", "addbot":
		return Command{Kind: CmdAddBot}, nil
	case "reset", "new":
		return Command{Kind: CmdReset}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q, type help for a list", parts[0])
	}
}

// parsePlay accepts "1 3 as Q" and the shorter "1 3 Q"
func parsePlay(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, errPlayUsage
	}

	rankArg := args[len(args)-1]
	nums := args[:len(args)-1]
	if len(nums) > 0 && nums[len(nums)-1] == "as" {
		nums = nums[:len(nums)-1]
	}
	if len(nums) == 0 {
		return Command{}, errPlayUsage
	}

	rank, err := deck.ParseRank(rankArg)
	if err != nil {
		return Command{}, fmt.Errorf("unknown rank %q", rankArg)
	}

	cmd := Command{Kind: CmdPlay, Rank: rank}
	for _, n := range nums {
		i, err := strconv.Atoi(n)
		if err != nil || i < 1 {
			return Command{}, fmt.Errorf("bad card number %q", n)
		}
		if slices.Contains(cmd.Indexes, i) {
			return Command{}, fmt.Errorf("card %d listed twice", i)
		}
		cmd.Indexes = append(cmd.Indexes, i)
	}
	return cmd, nil
}

// Select picks the cards a play command names from a displayed hand
func (c Command) Select(hand []deck.Card) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(c.Indexes))
	for _, i := range c.Indexes {
		if i > len(hand) {
			return nil, fmt.Errorf("you only hold %d cards", len(hand))
		}
		cards = append(cards, hand[i-1])
	}
	return cards, nil
}

// SortHand returns the hand ordered by rank then suit, the order card
// numbers refer to
func SortHand(hand []deck.Card) []deck.Card {
	sorted := slices.Clone(hand)
	slices.SortFunc(sorted, func(a, b deck.Card) int {
		if a.Rank != b.Rank {
			return int(a.Rank) - int(b.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})
	return sorted
}

const helpText = `Commands:
  play 1 3 as Q   lay cards 1 and 3 from your hand claiming queens
  pass            accept the pending claim
  challenge       call the pending claim a bluff
  bot             add a computer player (lobby only)
  start           deal a new match
  reset           back to the lobby, keeping the players
  quit            leave`
