package deploy

import (
	"fmt"
	"time"
)

// StyleClass is a semantic rendering hint attached to a descriptor. The UI
// maps classes to concrete colors.
type StyleClass string

const (
	StyleActive  StyleClass = "active"
	StyleSuccess StyleClass = "success"
	StyleFailure StyleClass = "failure"
	StyleWarn    StyleClass = "warn"
	StyleNeutral StyleClass = "neutral"
)

// Descriptor is the display projection of a run's state: an icon, a short
// label, and a style class.
type Descriptor struct {
	Icon  string
	Label string
	Style StyleClass
}

// Describe maps a run's status and conclusion to its display descriptor.
// The mapping is total: adapters fold unknown provider statuses into
// queued, and unknown conclusions fall through to the informational row
// with the raw value as the label.
func Describe(r Run) Descriptor {
	switch r.Status {
	case StatusInProgress:
		return Descriptor{Icon: "⏳", Label: "Deploying", Style: StyleActive}
	case StatusQueued:
		return Descriptor{Icon: "⏳", Label: "Queued", Style: StyleActive}
	case StatusCompleted:
		switch r.Conclusion {
		case ConclusionSuccess:
			return Descriptor{Icon: "✅", Label: "Deployed", Style: StyleSuccess}
		case ConclusionFailure:
			return Descriptor{Icon: "❌", Label: "Failed", Style: StyleFailure}
		case ConclusionCancelled:
			return Descriptor{Icon: "⚠️", Label: "Cancelled", Style: StyleWarn}
		case "":
			return Descriptor{Icon: "ℹ️", Label: "Completed", Style: StyleNeutral}
		default:
			return Descriptor{Icon: "ℹ️", Label: string(r.Conclusion), Style: StyleNeutral}
		}
	}
	return Descriptor{Icon: "ℹ️", Label: string(r.Status), Style: StyleNeutral}
}

// Elapsed returns the time column for a run at the given instant: a live
// minutes:seconds counter while the run is active, a relative age once it
// has completed.
func Elapsed(r Run, now time.Time) string {
	if r.Active() {
		if r.CreatedAt.IsZero() {
			return "--"
		}
		return formatClock(now.Sub(r.CreatedAt))
	}
	if r.UpdatedAt.IsZero() {
		return "--"
	}
	return formatAgo(now.Sub(r.UpdatedAt))
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatAgo(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours())/24)
	}
}
