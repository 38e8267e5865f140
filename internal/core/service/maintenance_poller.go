package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/api/metrics"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// DefaultPollInterval is how often the maintenance flag is re-read.
const DefaultPollInterval = 30 * time.Second

// Ticker abstracts time.Ticker so tests can drive the cadence by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc builds a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func newStdTicker(d time.Duration) Ticker { return stdTicker{t: time.NewTicker(d)} }

// PollerOption configures a MaintenancePoller.
type PollerOption func(*MaintenancePoller)

// WithInterval overrides DefaultPollInterval. Non-positive values are ignored.
func WithInterval(d time.Duration) PollerOption {
	return func(p *MaintenancePoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTicker replaces the wall-clock ticker.
func WithTicker(f TickerFunc) PollerOption {
	return func(p *MaintenancePoller) { p.newTicker = f }
}

// MaintenancePoller keeps the last known maintenance state. A failed read
// stores the inactive state.
type MaintenancePoller struct {
	source    ports.MaintenanceSource
	log       zerolog.Logger
	interval  time.Duration
	newTicker TickerFunc

	mu      sync.RWMutex
	current domain.MaintenanceState
	subs    map[int]chan domain.MaintenanceState
	nextSub int
}

func NewMaintenancePoller(source ports.MaintenanceSource, log zerolog.Logger, opts ...PollerOption) *MaintenancePoller {
	p := &MaintenancePoller{
		source:    source,
		log:       log.With().Str("component", "maintenance_poller").Logger(),
		interval:  DefaultPollInterval,
		newTicker: newStdTicker,
		subs:      make(map[int]chan domain.MaintenanceState),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Interval returns the configured cadence.
func (p *MaintenancePoller) Interval() time.Duration { return p.interval }

// Run fetches once immediately and then once per interval until ctx is done.
// No fetch is issued after ctx is cancelled.
func (p *MaintenancePoller) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	t := p.newTicker(p.interval)
	defer t.Stop()

	p.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C():
			if ctx.Err() != nil {
				return nil
			}
			p.Refresh(ctx)
		}
	}
}

// Refresh reads the flag now and publishes the result. A read that ends
// after ctx is done is discarded and the last published state returned.
func (p *MaintenancePoller) Refresh(ctx context.Context) domain.MaintenanceState {
	state, err := p.source.MaintenanceStatus(ctx)
	if ctx.Err() != nil {
		return p.Current()
	}
	switch {
	case err != nil:
		p.log.Warn().Err(err).Msg("maintenance status unavailable, assuming inactive")
		metrics.MaintenancePollsTotal.WithLabelValues("failed").Inc()
		state = domain.MaintenanceState{}
	case state.IsMaintenance:
		metrics.MaintenancePollsTotal.WithLabelValues("active").Inc()
	default:
		metrics.MaintenancePollsTotal.WithLabelValues("inactive").Inc()
	}
	if state.IsMaintenance {
		metrics.MaintenanceActive.Set(1)
	} else {
		metrics.MaintenanceActive.Set(0)
	}
	p.publish(state)
	return state
}

// Current returns the last published state.
func (p *MaintenancePoller) Current() domain.MaintenanceState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Subscribe returns a channel that always holds the newest state and a
// function that ends the subscription. Slow readers only miss intermediate
// states.
func (p *MaintenancePoller) Subscribe() (<-chan domain.MaintenanceState, func()) {
	ch := make(chan domain.MaintenanceState, 1)

	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *MaintenancePoller) publish(state domain.MaintenanceState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = state
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}
