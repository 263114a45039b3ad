package monitor

import "time"

// Scheduler owns the poll timer for the headless engine. Each refresh
// reschedules it for the interval the monitor reports, so there is never
// more than one pending fire.
type Scheduler struct {
	timer *time.Timer
}

// NewScheduler creates a scheduler that fires once after d.
func NewScheduler(d time.Duration) *Scheduler {
	return &Scheduler{timer: time.NewTimer(d)}
}

// C fires when the current interval elapses.
func (s *Scheduler) C() <-chan time.Time {
	return s.timer.C
}

// Reschedule discards any pending fire and re-arms the timer for d.
func (s *Scheduler) Reschedule(d time.Duration) {
	if !s.timer.Stop() {
		select {
		case <-s.timer.C:
		default:
		}
	}
	s.timer.Reset(d)
}

// Stop cancels the timer. The scheduler cannot be reused afterwards.
func (s *Scheduler) Stop() {
	s.timer.Stop()
}
