package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bluff/internal/deck"
	"github.com/lox/bluff/internal/game"
)

const testDelay = time.Second

func newTestSession(t *testing.T, seed int64) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	s := New(Config{
		Rules:      game.DefaultRules(),
		ThinkDelay: testDelay,
		Seed:       seed,
		Clock:      clock,
		Logger:     log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	})
	t.Cleanup(s.Close)
	return s, clock
}

// advance fires the pending scripted turn and waits for it to land
func advance(t *testing.T, s *Session, clock *quartz.Mock) {
	t.Helper()
	before := s.Snapshot().Version
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testDelay).MustWait(ctx)
	require.Eventually(t, func() bool {
		return s.Snapshot().Version != before
	}, 5*time.Second, time.Millisecond, "scripted player did not act")
}

func TestLobby(t *testing.T) {
	s, _ := newTestSession(t, 1)

	assert.ErrorIs(t, s.Start(), ErrNotEnoughPlayers)

	_, err := s.AddPlayer("   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	alice, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	assert.Contains(t, alice, "player-")

	_, err = s.AddScriptedPlayer()
	require.NoError(t, err)

	st := s.Snapshot()
	require.Len(t, st.Players, 2)
	assert.True(t, st.Players[0].Host)
	assert.Equal(t, "Alice", st.Players[0].Name)
	assert.Equal(t, "Computer 1", st.Players[1].Name)
	assert.True(t, st.Players[1].Scripted)

	require.NoError(t, s.Start())
	st = s.Snapshot()
	assert.True(t, st.InProgress())
	assert.NotEmpty(t, st.MatchID)
	assert.NoError(t, game.ValidateCardConservation(st))

	_, err = s.AddPlayer("Bob")
	assert.ErrorIs(t, err, ErrMatchStarted)
	_, err = s.AddScriptedPlayer()
	assert.ErrorIs(t, err, ErrMatchStarted)
	assert.ErrorIs(t, s.Start(), ErrMatchStarted)
}

func TestActionsNeedMatchInProgress(t *testing.T) {
	s, _ := newTestSession(t, 1)
	alice, err := s.AddPlayer("Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Play(deck.MustParseCards("2h"), deck.Two, alice), ErrMatchNotInProgress)
	assert.ErrorIs(t, s.Pass(alice), ErrMatchNotInProgress)
	assert.ErrorIs(t, s.Challenge(alice), ErrMatchNotInProgress)
}

func TestRejectedActionLeavesStateAlone(t *testing.T) {
	s, _ := newTestSession(t, 3)
	_, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	bob, err := s.AddPlayer("Bob")
	require.NoError(t, err)
	require.NoError(t, s.Start())

	before := s.Snapshot()
	p, ok := before.Player(bob)
	require.True(t, ok)

	err = s.Play(p.Hand[:1], p.Hand[0].Rank, bob)
	assert.ErrorIs(t, err, ErrRejected, "Bob is not on turn")
	assert.ErrorIs(t, s.Pass(bob), ErrRejected, "nothing to pass on")
	assert.Equal(t, before, s.Snapshot())
}

func TestScriptedPlayerRespondsAfterThinkDelay(t *testing.T) {
	s, clock := newTestSession(t, 7)
	alice, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	computer, err := s.AddScriptedPlayer()
	require.NoError(t, err)
	require.NoError(t, s.Start())

	p, _ := s.Snapshot().Player(alice)
	require.NoError(t, s.Play(p.Hand[:1], p.Hand[0].Rank, alice))
	played := s.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testDelay / 2).MustWait(ctx)
	assert.Never(t, func() bool {
		return s.Snapshot().Version != played.Version
	}, 50*time.Millisecond, 5*time.Millisecond, "acted before the delay elapsed")

	clock.Advance(testDelay / 2).MustWait(ctx)
	require.Eventually(t, func() bool {
		return s.Snapshot().Version != played.Version
	}, 5*time.Second, time.Millisecond)

	st := s.Snapshot()
	require.NotNil(t, st.Resolution, "a two player claim settles on the first response")
	assert.Equal(t, computer, st.History[len(st.History)-1].PlayerID)
	assert.NoError(t, game.Validate(st))
}

func TestHumanActionCancelsPendingScriptedTurn(t *testing.T) {
	s, clock := newTestSession(t, 11)
	alice, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	_, err = s.AddScriptedPlayer()
	require.NoError(t, err)
	_, err = s.AddPlayer("Bob")
	require.NoError(t, err)
	bob := s.Snapshot().Players[2].ID
	require.NoError(t, s.Start())

	p, _ := s.Snapshot().Player(alice)
	require.NoError(t, s.Play(p.Hand[:1], p.Hand[0].Rank, alice))

	// Bob challenges before the computer gets round to answering.
	require.NoError(t, s.Challenge(bob))
	afterChallenge := s.Snapshot()
	require.NotNil(t, afterChallenge.Resolution)

	// An honest lead loses the challenge for Bob, who takes the pile and
	// the turn, so the computer has nothing left to do.
	assert.Equal(t, bob, afterChallenge.Resolution.ReceiverID)
	assert.Equal(t, 2, afterChallenge.Turn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testDelay).MustWait(ctx)
	assert.Never(t, func() bool {
		return s.Snapshot().Version != afterChallenge.Version
	}, 50*time.Millisecond, 5*time.Millisecond, "stale scripted turn fired")
}

func TestResetCancelsScriptedTurn(t *testing.T) {
	s, clock := newTestSession(t, 5)
	alice, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	_, err = s.AddScriptedPlayer()
	require.NoError(t, err)
	require.NoError(t, s.Start())

	p, _ := s.Snapshot().Player(alice)
	require.NoError(t, s.Play(p.Hand[:1], p.Hand[0].Rank, alice))
	require.NoError(t, s.Reset())
	reset := s.Snapshot()
	assert.False(t, reset.Started)
	assert.Len(t, reset.Players, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testDelay).MustWait(ctx)
	assert.Never(t, func() bool {
		return s.Snapshot().Version != reset.Version
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestScriptedMatchPlaysToTheEnd(t *testing.T) {
	s, clock := newTestSession(t, 42)
	for i := 0; i < 3; i++ {
		_, err := s.AddScriptedPlayer()
		require.NoError(t, err)
	}
	require.NoError(t, s.Start())

	for i := 0; i < 5000 && !s.Snapshot().Ended; i++ {
		advance(t, s, clock)
		require.NoError(t, game.Validate(s.Snapshot()))
	}

	st := s.Snapshot()
	require.True(t, st.Ended, "scripted match did not finish")
	winner, ok := st.Player(st.Winner)
	require.True(t, ok)
	assert.Empty(t, winner.Hand)
}

func TestSubscribersSeeOrderedSnapshots(t *testing.T) {
	s, _ := newTestSession(t, 1)

	var mu sync.Mutex
	var versions []uint64
	unsubscribe := s.Subscribe(func(st game.State) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, st.Version)
	})

	_, err := s.AddPlayer("Alice")
	require.NoError(t, err)
	_, err = s.AddPlayer("Bob")
	require.NoError(t, err)
	_, err = s.AddPlayer("")
	require.Error(t, err)

	mu.Lock()
	assert.Equal(t, []uint64{1, 2}, versions)
	mu.Unlock()

	unsubscribe()
	require.NoError(t, s.Start())

	mu.Lock()
	assert.Len(t, versions, 2, "no snapshots after unsubscribe")
	mu.Unlock()
}

func TestSeedReproducesDeal(t *testing.T) {
	a, _ := newTestSession(t, 99)
	b, _ := newTestSession(t, 99)
	for _, s := range []*Session{a, b} {
		_, err := s.AddPlayer("Alice")
		require.NoError(t, err)
		_, err = s.AddPlayer("Bob")
		require.NoError(t, err)
		require.NoError(t, s.Start())
	}
	assert.Equal(t, a.Snapshot().Players[0].Hand, b.Snapshot().Players[0].Hand)
	assert.Equal(t, a.Snapshot().Seed, b.Snapshot().Seed)
}

func TestClose(t *testing.T) {
	s, _ := newTestSession(t, 1)
	s.Close()
	_, err := s.AddPlayer("Alice")
	assert.ErrorIs(t, err, ErrClosed)
}
