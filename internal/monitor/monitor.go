package monitor

import (
	"fmt"
	"time"

	"shipwatch/internal/deploy"
	"shipwatch/internal/notify"
)

// TransitionKind is the outcome of a head-run completion.
type TransitionKind string

const (
	TransitionSucceeded TransitionKind = "succeeded"
	TransitionFailed    TransitionKind = "failed"
)

// Transition records the head run finishing between two consecutive
// refreshes.
type Transition struct {
	Run  deploy.Run
	Kind TransitionKind
}

// Notification renders the transition as a deliverable message. The ID
// embeds the run and its conclusion so repeated deliveries collapse
// downstream.
func (t Transition) Notification() notify.Notification {
	n := notify.Notification{
		ID:   fmt.Sprintf("deploy-%s-%s", t.Run.Conclusion, t.Run.ID),
		Link: t.Run.HTMLURL,
	}
	switch t.Kind {
	case TransitionFailed:
		n.Kind = notify.KindFailure
		n.Title = "Deploy failed"
	default:
		n.Kind = notify.KindSuccess
		n.Title = "Deploy succeeded"
	}
	msg := fmt.Sprintf("Run #%d", t.Run.RunNumber)
	if subject := t.Run.Subject(); subject != "" {
		msg += " · " + subject
	}
	n.Message = msg
	return n
}

// Monitor holds the deploy-run state shared by every frontend: the current
// run list, the previous list kept for transition detection, and the two
// poll intervals.
type Monitor struct {
	runs      []deploy.Run
	lastKnown []deploy.Run
	active    time.Duration
	idle      time.Duration
}

// New creates a monitor polling at the active interval while a run is
// executing and at the idle interval otherwise.
func New(active, idle time.Duration) *Monitor {
	return &Monitor{active: active, idle: idle}
}

// Seed installs cached runs as the starting state. Seeded runs take part
// in transition detection, so a deploy that finished while the watcher was
// down still notifies on the first live refresh.
func (m *Monitor) Seed(runs []deploy.Run) {
	m.runs = runs
	m.lastKnown = runs
}

// Apply installs a freshly fetched run list and reports whether the head
// run completed since the previous list. The new list always replaces the
// old one, whatever the detection outcome.
func (m *Monitor) Apply(runs []deploy.Run) (Transition, bool) {
	t, ok := detectTransition(m.lastKnown, runs)
	m.runs = runs
	m.lastKnown = runs
	return t, ok
}

// Runs returns a copy of the current run list.
func (m *Monitor) Runs() []deploy.Run {
	out := make([]deploy.Run, len(m.runs))
	copy(out, m.runs)
	return out
}

// Head returns the most recent run, if any.
func (m *Monitor) Head() (deploy.Run, bool) {
	if len(m.runs) == 0 {
		return deploy.Run{}, false
	}
	return m.runs[0], true
}

// Interval returns the poll interval for the current state: active while
// the head run is executing, idle otherwise. An empty list polls at the
// idle interval.
func (m *Monitor) Interval() time.Duration {
	if len(m.runs) > 0 && m.runs[0].Active() {
		return m.active
	}
	return m.idle
}

// detectTransition fires only when both lists share the same head run and
// that run moved from in_progress to completed. Cancelled and unknown
// conclusions complete silently.
func detectTransition(previous, next []deploy.Run) (Transition, bool) {
	if len(previous) == 0 || len(next) == 0 {
		return Transition{}, false
	}
	prev, head := previous[0], next[0]
	if prev.ID != head.ID {
		return Transition{}, false
	}
	if prev.Status != deploy.StatusInProgress || head.Status != deploy.StatusCompleted {
		return Transition{}, false
	}
	switch head.Conclusion {
	case deploy.ConclusionSuccess:
		return Transition{Run: head, Kind: TransitionSucceeded}, true
	case deploy.ConclusionFailure:
		return Transition{Run: head, Kind: TransitionFailed}, true
	}
	return Transition{}, false
}
