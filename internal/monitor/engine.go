package monitor

import (
	"context"

	"github.com/charmbracelet/log"

	"shipwatch/internal/cache"
	"shipwatch/internal/deploy"
	"shipwatch/internal/notify"
	"shipwatch/internal/provider"
)

// Engine is the headless polling loop: one provider, one monitor, one
// scheduler. It drives --no-ui mode; the TUI runs the same refresh cycle
// through its own message loop instead.
type Engine struct {
	Provider provider.RunProvider
	Repo     deploy.Repository
	Monitor  *Monitor
	Cache    *cache.Store
	Notifier notify.Notifier
	Logger   *log.Logger
}

// Run polls until ctx is cancelled. The first poll happens immediately;
// every later one is scheduled for the interval the monitor reports after
// the previous cycle finished.
func (e *Engine) Run(ctx context.Context) error {
	if cached := e.Cache.Load(); len(cached) > 0 {
		e.Monitor.Seed(cached)
		e.Logger.Debug("seeded state from cache", "runs", len(cached))
	}

	e.PollOnce(ctx)
	sched := NewScheduler(e.Monitor.Interval())
	defer sched.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sched.C():
			e.PollOnce(ctx)
			sched.Reschedule(e.Monitor.Interval())
		}
	}
}

// PollOnce performs one refresh cycle: fetch, apply, persist, notify. A
// fetch failure leaves the last-known runs untouched.
func (e *Engine) PollOnce(ctx context.Context) {
	runs, err := e.Provider.ListRuns(ctx, e.Repo)
	if err != nil {
		e.Logger.Warn("fetch failed, keeping last known runs", "err", err)
		return
	}

	t, fired := e.Monitor.Apply(runs)
	e.Cache.Save(runs)

	if head, ok := e.Monitor.Head(); ok {
		d := deploy.Describe(head)
		e.Logger.Debug("refreshed", "run", head.ID, "state", d.Label, "runs", len(runs))
	} else {
		e.Logger.Debug("refreshed", "runs", 0)
	}

	if fired {
		e.Logger.Info("head run completed", "run", t.Run.ID, "number", t.Run.RunNumber, "outcome", t.Kind)
		if err := e.Notifier.Publish(t.Notification()); err != nil {
			e.Logger.Warn("notification delivery failed", "err", err)
		}
	}
}
