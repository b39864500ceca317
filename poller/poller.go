// Package poller re-fetches a coverage's feed and metadata on a
// user-selectable cadence, standing in for the push channel the site
// does not have.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"politiquensemble-live/client"
	"politiquensemble-live/feed"
	"politiquensemble-live/metrics"

	"go.uber.org/zap"
)

// IntervalOptions are the cadences offered to users. Zero means no
// automatic refetch; manual refresh stays available.
var IntervalOptions = []time.Duration{
	0,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

var ErrInvalidInterval = errors.New("interval not in the allowed set")

// Source supplies one coverage's data. client.CoverageSource is the
// HTTP-backed implementation; tests plug in fakes.
type Source interface {
	Coverage(ctx context.Context) (*client.Coverage, error)
	Updates(ctx context.Context) ([]feed.Update, error)
	Editors(ctx context.Context) ([]client.Editor, error)
}

// gate orders responses per resource: a fetch may only apply its result
// if no later fetch of the same resource already has. Last sequence
// wins, not last arrival.
type gate struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func (g *gate) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

func (g *gate) commit(n uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n <= g.applied {
		return false
	}
	g.applied = n
	return true
}

type Poller struct {
	src     Source
	store   *feed.Store
	logger  *zap.Logger
	allowed []time.Duration

	mu       sync.RWMutex
	interval time.Duration
	coverage *client.Coverage
	editors  []client.Editor

	updatesGate gate
	metaGate    gate
	editorsGate gate

	intervalCh chan time.Duration
	done       chan struct{}
	stopOnce   sync.Once
}

type Option func(*Poller)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

// WithIntervals replaces the allowed cadence set. Meant for tests and
// embedded deployments; the public site sticks to IntervalOptions.
func WithIntervals(intervals ...time.Duration) Option {
	return func(p *Poller) { p.allowed = intervals }
}

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func New(src Source, store *feed.Store, opts ...Option) *Poller {
	p := &Poller{
		src:        src,
		store:      store,
		logger:     zap.NewNop(),
		allowed:    IntervalOptions,
		intervalCh: make(chan time.Duration, 1),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling loop. It stops when ctx is cancelled or
// Stop is called.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// SetInterval changes the cadence immediately; the current wait is
// abandoned and the next automatic fetch is scheduled from now. Zero
// disables automatic fetching.
func (p *Poller) SetInterval(d time.Duration) error {
	if !p.intervalAllowed(d) {
		return ErrInvalidInterval
	}

	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()

	// Replace any pending change so the loop only sees the latest.
	select {
	case <-p.intervalCh:
	default:
	}
	p.intervalCh <- d
	return nil
}

func (p *Poller) intervalAllowed(d time.Duration) bool {
	for _, a := range p.allowed {
		if d == a {
			return true
		}
	}
	return false
}

func (p *Poller) Interval() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.interval
}

// RefreshNow fetches coverage metadata, the update list and the editor
// roster out of band, independent of the schedule.
func (p *Poller) RefreshNow(ctx context.Context) error {
	metaErr := p.fetchCoverage(ctx)
	updatesErr := p.fetchUpdates(ctx)
	editorsErr := p.fetchEditors(ctx)

	if metaErr != nil {
		return metaErr
	}
	if updatesErr != nil {
		return updatesErr
	}
	return editorsErr
}

// Stop ends the polling loop. In-flight fetches finish on their own;
// the sequence gates keep their stale results from clobbering anything.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// Coverage returns the most recently fetched coverage metadata, nil
// before the first successful fetch.
func (p *Poller) Coverage() *client.Coverage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.coverage
}

// Editors returns the most recently fetched roster.
func (p *Poller) Editors() []client.Editor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]client.Editor, len(p.editors))
	copy(out, p.editors)
	return out
}

func (p *Poller) run(ctx context.Context) {
	var timer *time.Timer
	var tick <-chan time.Time

	arm := func(d time.Duration) {
		if timer != nil {
			timer.Stop()
			timer, tick = nil, nil
		}
		if d > 0 {
			timer = time.NewTimer(d)
			tick = timer.C
		}
	}

	arm(p.Interval())
	defer arm(0)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case d := <-p.intervalCh:
			arm(d)
		case <-tick:
			p.pollOnce(ctx)
			arm(p.Interval())
		}
	}
}

// pollOnce is one scheduled tick: the feed plus coverage metadata.
func (p *Poller) pollOnce(ctx context.Context) {
	if err := p.fetchUpdates(ctx); err != nil {
		p.logger.Warn("poll updates failed", zap.Error(err))
	}
	if err := p.fetchCoverage(ctx); err != nil {
		p.logger.Warn("poll coverage failed", zap.Error(err))
	}
}

func (p *Poller) fetchUpdates(ctx context.Context) error {
	n := p.updatesGate.begin()
	updates, err := p.src.Updates(ctx)
	if !p.updatesGate.commit(n) {
		metrics.PollFetches.WithLabelValues("stale").Inc()
		return nil
	}
	if err != nil {
		metrics.PollFetches.WithLabelValues("error").Inc()
		p.store.Fail(err)
		return err
	}
	metrics.PollFetches.WithLabelValues("success").Inc()
	p.store.Replace(updates)
	return nil
}

func (p *Poller) fetchCoverage(ctx context.Context) error {
	n := p.metaGate.begin()
	coverage, err := p.src.Coverage(ctx)
	if !p.metaGate.commit(n) {
		metrics.PollFetches.WithLabelValues("stale").Inc()
		return nil
	}
	if err != nil {
		metrics.PollFetches.WithLabelValues("error").Inc()
		return err
	}
	metrics.PollFetches.WithLabelValues("success").Inc()
	p.mu.Lock()
	p.coverage = coverage
	p.mu.Unlock()
	return nil
}

func (p *Poller) fetchEditors(ctx context.Context) error {
	n := p.editorsGate.begin()
	editors, err := p.src.Editors(ctx)
	if !p.editorsGate.commit(n) {
		metrics.PollFetches.WithLabelValues("stale").Inc()
		return nil
	}
	if err != nil {
		metrics.PollFetches.WithLabelValues("error").Inc()
		return err
	}
	metrics.PollFetches.WithLabelValues("success").Inc()
	p.mu.Lock()
	p.editors = editors
	p.mu.Unlock()
	return nil
}
