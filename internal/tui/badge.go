package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"shipwatch/internal/deploy"
)

// RenderBadge renders the always-visible one-line summary of the head run:
// icon and label, the live elapsed counter or age, the run number, and as
// much of the commit subject as fits.
func RenderBadge(runs []deploy.Run, now time.Time, st Styles, width int) string {
	if len(runs) == 0 {
		return st.Muted.Render("○ no deploy data")
	}

	head := runs[0]
	d := deploy.Describe(head)
	status := d.Icon + " " + d.Label
	clock := deploy.Elapsed(head, now)
	var num string
	if head.RunNumber > 0 {
		num = fmt.Sprintf("#%d", head.RunNumber)
	}

	subject := head.Subject()
	if width > 0 && subject != "" {
		used := runewidth.StringWidth(status) + runewidth.StringWidth(clock) + runewidth.StringWidth(num) + 8
		if rest := width - used; rest > 3 {
			subject = Truncate(subject, rest)
		} else {
			subject = ""
		}
	}

	parts := []string{
		st.ForClass(d.Style).Bold(true).Render(status),
		st.Badge.Render(clock),
	}
	if num != "" {
		parts = append(parts, st.Muted.Render(num))
	}
	if subject != "" {
		parts = append(parts, st.Muted.Render(subject))
	}
	return strings.Join(parts, "  ")
}
