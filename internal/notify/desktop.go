package notify

import "github.com/gen2brain/beeep"

// Desktop delivers notifications through the OS notification center.
type Desktop struct{}

var _ Notifier = Desktop{}

// Publish shows the notification. Failures use Alert so platforms that
// support it also play the attention sound.
func (Desktop) Publish(n Notification) error {
	if n.Kind == KindFailure {
		return beeep.Alert(n.Title, n.Message, "")
	}
	return beeep.Notify(n.Title, n.Message, "")
}
