package tui

import (
	"fmt"
	"strings"
	"time"

	"shipwatch/internal/deploy"
)

// PanelModel is the expandable recent-runs list shown under the badge. It
// is an immutable value model: every mutation returns a copy.
type PanelModel struct {
	runs   []deploy.Run
	cursor int
	styles Styles
	width  int
}

// NewPanelModel creates a panel over the given runs.
func NewPanelModel(runs []deploy.Run, st Styles) PanelModel {
	return PanelModel{runs: runs, styles: st}
}

// UpdateRuns returns a panel showing the new list. The cursor follows the
// previously selected run when it is still present, so a refresh never
// yanks the selection away.
func (m PanelModel) UpdateRuns(runs []deploy.Run) PanelModel {
	var selectedID string
	if m.cursor < len(m.runs) {
		selectedID = m.runs[m.cursor].ID
	}
	m.runs = runs
	m.cursor = 0
	for i, r := range runs {
		if r.ID == selectedID {
			m.cursor = i
			break
		}
	}
	return m
}

// SetWidth returns a panel rendering at the given terminal width.
func (m PanelModel) SetWidth(w int) PanelModel {
	m.width = w
	return m
}

// MoveDown returns a panel with the cursor moved down by one.
func (m PanelModel) MoveDown() PanelModel {
	if m.cursor < len(m.runs)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a panel with the cursor moved up by one.
func (m PanelModel) MoveUp() PanelModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Select returns a panel with the cursor on row i. Out-of-range rows leave
// the cursor unchanged.
func (m PanelModel) Select(i int) PanelModel {
	if i >= 0 && i < len(m.runs) {
		m.cursor = i
	}
	return m
}

// Selected returns the currently highlighted run, zero-valued when the
// panel is empty.
func (m PanelModel) Selected() deploy.Run {
	if len(m.runs) == 0 {
		return deploy.Run{}
	}
	return m.runs[m.cursor]
}

// Runs returns the runs the panel is showing.
func (m PanelModel) Runs() []deploy.Run {
	return m.runs
}

// View renders the bordered run list at the given instant.
func (m PanelModel) View(now time.Time) string {
	if len(m.runs) == 0 {
		return m.styles.Panel.Render(m.styles.Muted.Render("No runs to show."))
	}

	subjWidth := 30
	if m.width > 0 {
		subjWidth = m.width - 40
		if subjWidth < 10 {
			subjWidth = 10
		}
	}

	var rows []string
	for i, r := range m.runs {
		d := deploy.Describe(r)
		prefix := "  "
		if i == m.cursor {
			prefix = m.styles.Selected.Render("> ")
		}
		statusCell := m.styles.ForClass(d.Style).Render(Pad(d.Icon+" "+d.Label, 13))
		numCell := m.styles.Muted.Render(Pad(fmt.Sprintf("#%d", r.RunNumber), 6))
		subjCell := Pad(r.Subject(), subjWidth)
		timeCell := m.styles.Muted.Render(deploy.Elapsed(r, now))
		rows = append(rows, prefix+statusCell+" "+numCell+" "+subjCell+" "+timeCell)
	}

	if url := m.Selected().HTMLURL; url != "" {
		rows = append(rows, m.styles.Muted.Render(Truncate(url, subjWidth+22)))
	}
	return m.styles.Panel.Render(strings.Join(rows, "\n"))
}
