package session

import "errors"

// Advisory errors returned by the session API. They describe why an intent
// was not applied and never accompany a state change; presentation layers
// show them as notices.
var (
	ErrMatchStarted       = errors.New("match already started")
	ErrNotEnoughPlayers   = errors.New("at least 2 players are needed to start")
	ErrMatchNotInProgress = errors.New("no match in progress")
	ErrEmptyName          = errors.New("player name cannot be empty")
	ErrRejected           = errors.New("action not allowed right now")
	ErrClosed             = errors.New("session closed")
)
