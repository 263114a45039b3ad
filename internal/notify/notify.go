package notify

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Kind classifies a notification for downstream routing.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
)

// Notification is a single deploy-transition message. The ID is stable per
// run and outcome so consumers can collapse repeated deliveries.
type Notification struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	Link    string
}

// Notifier delivers deploy notifications. Implementations must tolerate
// being called again with a previously seen ID.
type Notifier interface {
	Publish(n Notification) error
}

// Nop discards every notification.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) Publish(Notification) error { return nil }

// Multi fans a notification out to several sinks. Every sink is attempted
// even when an earlier one fails; the failures come back joined.
type Multi []Notifier

var _ Notifier = Multi{}

func (m Multi) Publish(n Notification) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to a structured logger. It backs the
// headless mode, where there is no badge to look at.
type LogNotifier struct {
	Logger *log.Logger
}

var _ Notifier = LogNotifier{}

func (l LogNotifier) Publish(n Notification) error {
	switch n.Kind {
	case KindFailure:
		l.Logger.Error(n.Title, "id", n.ID, "detail", n.Message, "url", n.Link)
	default:
		l.Logger.Info(n.Title, "id", n.ID, "detail", n.Message, "url", n.Link)
	}
	return nil
}
