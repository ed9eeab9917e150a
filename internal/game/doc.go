// Package game implements the rules of Bluff, the card game also known as
// Cheat.
//
// A match is a State value. The only way to change it is Reduce, a pure
// transition function that takes a State and a Command and returns the next
// State:
//
//	s := game.New(game.DefaultRules())
//	s = game.Reduce(s, game.AddPlayer{ID: "p1", Name: "Alice"})
//	s = game.Reduce(s, game.AddScriptedPlayer{ID: "c1"})
//	s = game.Reduce(s, game.StartGame{Seed: 42})
//
// Commands that are illegal in the current state (acting out of turn,
// playing cards the player does not hold, passing with nothing on the pile)
// return the input unchanged. There is no error path; callers that want to
// tell the user why something did not happen check the state themselves
// before dispatching, or use Apply to learn whether a command was accepted.
//
// # Rounds
//
// The player whose turn it is lays one or more cards face down and claims a
// rank. The turn passes to the next seat. Any other player may then:
//   - challenge: the claimed batch is revealed. A caught bluffer picks up
//     the whole pile and the challenger plays next; otherwise the challenger
//     picks it up and play continues.
//   - pass: once everyone but the claim owner has passed, the pile is
//     discarded and the seat after the claim owner plays.
//
// The player on turn may also play on top of a pending claim, which accepts
// it and grows the pile. The first player to empty their hand wins.
//
// # Deterministic Testing
//
// StartGame carries the shuffle seed, so a match is reproducible from its
// seed and command log.
package game
