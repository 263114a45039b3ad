package monitor_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"shipwatch/internal/cache"
	"shipwatch/internal/deploy"
	"shipwatch/internal/monitor"
	"shipwatch/internal/notify"
)

type scriptedProvider struct {
	results [][]deploy.Run
	errs    []error
	calls   int
}

func (p *scriptedProvider) ListRuns(_ context.Context, _ deploy.Repository) ([]deploy.Run, error) {
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return p.results[i], err
}

type captureSink struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (c *captureSink) Publish(n notify.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, n)
	return nil
}

func (c *captureSink) notifications() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Notification, len(c.seen))
	copy(out, c.seen)
	return out
}

func newTestEngine(t *testing.T, p *scriptedProvider, sink notify.Notifier) (*monitor.Engine, *cache.Store) {
	t.Helper()
	store := cache.NewStoreAt(filepath.Join(t.TempDir(), "runs.json"))
	eng := &monitor.Engine{
		Provider: p,
		Repo:     deploy.Repository{Owner: "acme", Name: "webapp"},
		Monitor:  monitor.New(5*time.Millisecond, 5*time.Millisecond),
		Cache:    store,
		Notifier: sink,
		Logger:   log.New(io.Discard),
	}
	return eng, store
}

func TestPollOnce_AppliesRunsAndSavesCache(t *testing.T) {
	p := &scriptedProvider{results: [][]deploy.Run{{activeRun("1001")}}}
	eng, store := newTestEngine(t, p, notify.Nop{})

	eng.PollOnce(context.Background())

	head, ok := eng.Monitor.Head()
	if !ok || head.ID != "1001" {
		t.Fatalf("expected head '1001', got %v (ok=%v)", head.ID, ok)
	}
	cached := store.Load()
	if len(cached) != 1 || cached[0].ID != "1001" {
		t.Errorf("expected cache to hold the fetched run, got %v", cached)
	}
}

func TestPollOnce_FetchErrorKeepsState(t *testing.T) {
	p := &scriptedProvider{
		results: [][]deploy.Run{{activeRun("1001")}, nil},
		errs:    []error{nil, errors.New("github API error: 502 Bad Gateway")},
	}
	eng, store := newTestEngine(t, p, notify.Nop{})

	eng.PollOnce(context.Background())
	eng.PollOnce(context.Background())

	head, ok := eng.Monitor.Head()
	if !ok || head.ID != "1001" {
		t.Errorf("expected stale head '1001' after failed fetch, got %v (ok=%v)", head.ID, ok)
	}
	cached := store.Load()
	if len(cached) != 1 {
		t.Errorf("expected cache untouched by failed fetch, got %v", cached)
	}
}

func TestPollOnce_NotifiesOnTransition(t *testing.T) {
	p := &scriptedProvider{results: [][]deploy.Run{
		{activeRun("1001")},
		{completedRun("1001", deploy.ConclusionSuccess)},
	}}
	sink := &captureSink{}
	eng, _ := newTestEngine(t, p, sink)

	eng.PollOnce(context.Background())
	eng.PollOnce(context.Background())

	seen := sink.notifications()
	if len(seen) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(seen))
	}
	if seen[0].ID != "deploy-success-1001" {
		t.Errorf("unexpected notification ID '%s'", seen[0].ID)
	}
}

func TestPollOnce_NoRepeatNotificationOnStableState(t *testing.T) {
	p := &scriptedProvider{results: [][]deploy.Run{
		{activeRun("1001")},
		{completedRun("1001", deploy.ConclusionSuccess)},
		{completedRun("1001", deploy.ConclusionSuccess)},
	}}
	sink := &captureSink{}
	eng, _ := newTestEngine(t, p, sink)

	eng.PollOnce(context.Background())
	eng.PollOnce(context.Background())
	eng.PollOnce(context.Background())

	if seen := sink.notifications(); len(seen) != 1 {
		t.Errorf("expected a single notification across repeated completed polls, got %d", len(seen))
	}
}

func TestRun_SeedsFromCache(t *testing.T) {
	store := cache.NewStoreAt(filepath.Join(t.TempDir(), "runs.json"))
	store.Save([]deploy.Run{activeRun("1001")})

	p := &scriptedProvider{results: [][]deploy.Run{{completedRun("1001", deploy.ConclusionSuccess)}}}
	sink := &captureSink{}
	eng := &monitor.Engine{
		Provider: p,
		Repo:     deploy.Repository{Owner: "acme", Name: "webapp"},
		Monitor:  monitor.New(time.Hour, time.Hour),
		Cache:    store,
		Notifier: sink,
		Logger:   log.New(io.Discard),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	deadline := time.After(time.Second)
	for len(sink.notifications()) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("expected a notification against cache-seeded state")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if seen := sink.notifications(); seen[0].ID != "deploy-success-1001" {
		t.Errorf("unexpected notification ID '%s'", seen[0].ID)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	p := &scriptedProvider{results: [][]deploy.Run{nil}}
	eng, _ := newTestEngine(t, p, notify.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected Run to stop after cancel")
	}
}
