package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"politiquensemble-live/client"
	"politiquensemble-live/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	updates  []feed.Update
	coverage *client.Coverage
	editors  []client.Editor

	updatesErr error
	updatesFn  func(ctx context.Context) ([]feed.Update, error)

	updatesCalls  int32
	coverageCalls int32
	editorsCalls  int32
}

func (s *fakeSource) Coverage(ctx context.Context) (*client.Coverage, error) {
	atomic.AddInt32(&s.coverageCalls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coverage == nil {
		return &client.Coverage{ID: 7, Title: "Soirée électorale", Slug: "soiree", Active: true}, nil
	}
	return s.coverage, nil
}

func (s *fakeSource) Updates(ctx context.Context) ([]feed.Update, error) {
	atomic.AddInt32(&s.updatesCalls, 1)
	if s.updatesFn != nil {
		return s.updatesFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updatesErr != nil {
		return nil, s.updatesErr
	}
	out := make([]feed.Update, len(s.updates))
	copy(out, s.updates)
	return out, nil
}

func (s *fakeSource) Editors(ctx context.Context) ([]client.Editor, error) {
	atomic.AddInt32(&s.editorsCalls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editors, nil
}

func (s *fakeSource) updateCount() int32 {
	return atomic.LoadInt32(&s.updatesCalls)
}

func testIntervals() Option {
	return WithIntervals(0, 20*time.Millisecond, 50*time.Millisecond)
}

func TestSetIntervalRejectsUnknownCadence(t *testing.T) {
	p := New(&fakeSource{}, feed.NewStore())
	assert.ErrorIs(t, p.SetInterval(7*time.Second), ErrInvalidInterval)
	assert.NoError(t, p.SetInterval(30*time.Second))
	assert.Equal(t, 30*time.Second, p.Interval())
}

func TestPollingFetchesOnSchedule(t *testing.T) {
	src := &fakeSource{updates: []feed.Update{{ID: 1, Content: "début"}}}
	store := feed.NewStore()
	p := New(src, store, testIntervals(), WithInterval(20*time.Millisecond))
	defer p.Stop()

	p.Start(context.Background())

	require.Eventually(t, func() bool {
		return src.updateCount() >= 3
	}, time.Second, 5*time.Millisecond)

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "début", snap[0].Content)
	assert.NotNil(t, p.Coverage())
}

func TestIntervalZeroStopsAutomaticFetches(t *testing.T) {
	src := &fakeSource{}
	p := New(src, feed.NewStore(), testIntervals(), WithInterval(20*time.Millisecond))
	defer p.Stop()

	p.Start(context.Background())

	require.Eventually(t, func() bool {
		return src.updateCount() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, p.SetInterval(0))
	// Let a possibly in-flight tick drain before counting.
	time.Sleep(40 * time.Millisecond)
	before := src.updateCount()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, before, src.updateCount(), "no automatic fetches once the interval is off")

	// Manual refresh still works while automatic polling is off.
	require.NoError(t, p.RefreshNow(context.Background()))
	assert.Equal(t, before+1, src.updateCount())
}

func TestRefreshNowFetchesEverything(t *testing.T) {
	src := &fakeSource{
		updates: []feed.Update{{ID: 1, Content: "x"}},
		editors: []client.Editor{{ID: 1, UserID: 2, Role: "Reporter"}},
	}
	store := feed.NewStore()
	p := New(src, store, testIntervals())

	require.NoError(t, p.RefreshNow(context.Background()))

	assert.EqualValues(t, 1, atomic.LoadInt32(&src.coverageCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&src.updatesCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&src.editorsCalls))

	assert.Len(t, store.Snapshot(), 1)
	require.NotNil(t, p.Coverage())
	assert.Equal(t, "soiree", p.Coverage().Slug)
	require.Len(t, p.Editors(), 1)
	assert.Equal(t, "Reporter", p.Editors()[0].Role)
}

func TestFetchErrorKeepsLastKnownGood(t *testing.T) {
	src := &fakeSource{updates: []feed.Update{{ID: 1, Content: "ok"}}}
	store := feed.NewStore()
	p := New(src, store, testIntervals())

	require.NoError(t, p.RefreshNow(context.Background()))
	require.Len(t, store.Snapshot(), 1)

	src.mu.Lock()
	src.updatesErr = errors.New("network down")
	src.mu.Unlock()

	err := p.RefreshNow(context.Background())
	require.Error(t, err)

	// The feed keeps its last good snapshot and flags the failure.
	assert.Len(t, store.Snapshot(), 1)
	assert.Error(t, store.Err())
}

func TestStaleResponseDoesNotOverwriteNewer(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	src := &fakeSource{}
	src.updatesFn = func(ctx context.Context) ([]feed.Update, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			<-release
			return []feed.Update{{ID: 1, Content: "ancien"}}, nil
		}
		return []feed.Update{{ID: 2, Content: "récent"}}, nil
	}

	store := feed.NewStore()
	p := New(src, store, testIntervals())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.fetchUpdates(context.Background())
	}()

	// Wait until the slow first fetch is in flight, then complete a
	// second one.
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)
	require.NoError(t, p.fetchUpdates(context.Background()))

	close(release)
	wg.Wait()

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "récent", snap[0].Content, "older in-flight response must be discarded")
}

func TestGateOrdersCommits(t *testing.T) {
	var g gate
	first := g.begin()
	second := g.begin()
	assert.True(t, g.commit(second))
	assert.False(t, g.commit(first))
	assert.False(t, g.commit(second))
}

func TestStopEndsLoop(t *testing.T) {
	src := &fakeSource{}
	p := New(src, feed.NewStore(), testIntervals(), WithInterval(20*time.Millisecond))
	p.Start(context.Background())

	require.Eventually(t, func() bool {
		return src.updateCount() >= 1
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	time.Sleep(40 * time.Millisecond)
	before := src.updateCount()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, before, src.updateCount())
}
