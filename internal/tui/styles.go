package tui

import (
	"github.com/charmbracelet/lipgloss"

	"shipwatch/internal/deploy"
)

// Styles bundles every lipgloss style the watch UI uses.
type Styles struct {
	Badge    lipgloss.Style
	Active   lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
	Warn     lipgloss.Style
	Neutral  lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Toast    lipgloss.Style
	ToastErr lipgloss.Style
	ErrLine  lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Badge:    lipgloss.NewStyle().Bold(true),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Neutral:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("10")).
			Padding(0, 1),
		ToastErr: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("9")).
			Padding(0, 1),
		ErrLine: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// ForClass maps a descriptor style class to its lipgloss style.
func (s Styles) ForClass(c deploy.StyleClass) lipgloss.Style {
	switch c {
	case deploy.StyleActive:
		return s.Active
	case deploy.StyleSuccess:
		return s.Success
	case deploy.StyleFailure:
		return s.Failure
	case deploy.StyleWarn:
		return s.Warn
	default:
		return s.Neutral
	}
}
