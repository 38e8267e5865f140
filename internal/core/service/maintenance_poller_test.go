package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.once.Do(func() { close(m.stopped) }) }

// tick blocks until the poller has taken the tick.
func (m *manualTicker) tick() { m.ch <- time.Now() }

type countingSource struct {
	mu    sync.Mutex
	calls int
	state domain.MaintenanceState
	err   error
	// fetched receives once per completed fetch.
	fetched chan struct{}
}

func newCountingSource(state domain.MaintenanceState, err error) *countingSource {
	return &countingSource{state: state, err: err, fetched: make(chan struct{}, 16)}
}

func (c *countingSource) MaintenanceStatus(context.Context) (domain.MaintenanceState, error) {
	c.mu.Lock()
	c.calls++
	st, err := c.state, c.err
	c.mu.Unlock()
	c.fetched <- struct{}{}
	return st, err
}

func (c *countingSource) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *countingSource) set(state domain.MaintenanceState, err error) {
	c.mu.Lock()
	c.state, c.err = state, err
	c.mu.Unlock()
}

func waitFetch(t *testing.T, c *countingSource) {
	t.Helper()
	select {
	case <-c.fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a maintenance fetch")
	}
}

func startPoller(t *testing.T, src *countingSource) (*MaintenancePoller, *manualTicker, context.CancelFunc, chan error) {
	t.Helper()
	tk := newManualTicker()
	var gotInterval time.Duration
	p := NewMaintenancePoller(src, zerolog.Nop(), WithTicker(func(d time.Duration) Ticker {
		gotInterval = d
		return tk
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	waitFetch(t, src)
	assert.Equal(t, DefaultPollInterval, gotInterval)
	return p, tk, cancel, done
}

func TestPoller_DefaultInterval(t *testing.T) {
	p := NewMaintenancePoller(newCountingSource(domain.MaintenanceState{}, nil), zerolog.Nop())
	assert.Equal(t, 30*time.Second, p.Interval())

	p = NewMaintenancePoller(nil, zerolog.Nop(), WithInterval(0))
	assert.Equal(t, 30*time.Second, p.Interval())
}

func TestPoller_Cadence(t *testing.T) {
	src := newCountingSource(domain.MaintenanceState{}, nil)
	_, tk, cancel, done := startPoller(t, src)

	assert.Equal(t, 1, src.Calls(), "one fetch on mount")

	for i := 0; i < 3; i++ {
		tk.tick()
		waitFetch(t, src)
	}
	assert.Equal(t, 4, src.Calls(), "one fetch per interval")

	cancel()
	require.NoError(t, <-done)
	<-tk.stopped

	select {
	case tk.ch <- time.Now():
		t.Fatal("poller still receiving ticks after unmount")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 4, src.Calls(), "no fetch after unmount")
}

// stallingSource answers the first read and holds every later read until its
// context is done.
type stallingSource struct {
	mu      sync.Mutex
	calls   int
	stalled chan struct{}
}

func (s *stallingSource) MaintenanceStatus(ctx context.Context) (domain.MaintenanceState, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()
	if first {
		return domain.MaintenanceState{IsMaintenance: true, Message: "down"}, nil
	}
	close(s.stalled)
	<-ctx.Done()
	return domain.MaintenanceState{}, ctx.Err()
}

func TestPoller_FetchInFlightAtUnmountIsDiscarded(t *testing.T) {
	src := &stallingSource{stalled: make(chan struct{})}
	tk := newManualTicker()
	p := NewMaintenancePoller(src, zerolog.Nop(), WithTicker(func(time.Duration) Ticker { return tk }))
	updates, unsubscribe := p.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	tk.tick()
	<-src.stalled
	require.True(t, (<-updates).IsMaintenance)

	cancel()
	require.NoError(t, <-done)

	assert.True(t, p.Current().IsMaintenance, "a cancelled read must not fail open")
	select {
	case st := <-updates:
		t.Fatalf("unexpected state published after unmount: %+v", st)
	default:
	}
}

func TestPoller_RefreshWithCancelledContextKeepsState(t *testing.T) {
	src := newCountingSource(domain.MaintenanceState{IsMaintenance: true}, nil)
	p := NewMaintenancePoller(src, zerolog.Nop())
	require.True(t, p.Refresh(context.Background()).IsMaintenance)
	waitFetch(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src.set(domain.MaintenanceState{}, context.Canceled)

	assert.True(t, p.Refresh(ctx).IsMaintenance)
	assert.True(t, p.Current().IsMaintenance)
}

func TestPoller_FailOpen(t *testing.T) {
	src := newCountingSource(domain.MaintenanceState{IsMaintenance: true, Message: "down"}, nil)
	p, tk, cancel, done := startPoller(t, src)
	defer func() { cancel(); <-done }()

	assert.True(t, p.Current().IsMaintenance)

	src.set(domain.MaintenanceState{IsMaintenance: true}, errors.New("connection refused"))
	tk.tick()
	waitFetch(t, src)

	assert.Eventually(t, func() bool { return !p.Current().IsMaintenance }, time.Second, 5*time.Millisecond)
}

func TestPoller_RefreshFailOpen(t *testing.T) {
	p := NewMaintenancePoller(newCountingSource(domain.MaintenanceState{}, errors.New("boom")), zerolog.Nop())
	got := p.Refresh(context.Background())
	assert.False(t, got.IsMaintenance)
	assert.False(t, p.Current().IsMaintenance)
}

func TestPoller_RunWithCancelledContextFetchesNothing(t *testing.T) {
	src := newCountingSource(domain.MaintenanceState{}, nil)
	p := NewMaintenancePoller(src, zerolog.Nop(), WithTicker(func(time.Duration) Ticker { return newManualTicker() }))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 0, src.Calls())
}

func TestPoller_SubscribeReceivesLatest(t *testing.T) {
	src := newCountingSource(domain.MaintenanceState{}, nil)
	p := NewMaintenancePoller(src, zerolog.Nop())
	ch, unsubscribe := p.Subscribe()

	p.Refresh(context.Background())
	src.set(domain.MaintenanceState{IsMaintenance: true, Message: "later"}, nil)
	p.Refresh(context.Background())

	got := <-ch
	assert.True(t, got.IsMaintenance)
	assert.Equal(t, "later", got.Message)

	unsubscribe()
	unsubscribe()
	p.Refresh(context.Background())
	select {
	case <-ch:
		t.Fatal("unsubscribed channel received a state")
	default:
	}
}
