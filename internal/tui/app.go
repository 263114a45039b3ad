package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shipwatch/internal/cache"
	"shipwatch/internal/deploy"
	"shipwatch/internal/monitor"
	"shipwatch/internal/notify"
	"shipwatch/internal/provider"
)

const toastDuration = 4 * time.Second

// RunsLoadedMsg is sent when a refresh against the provider finishes.
// Scheduled marks refreshes originating from the poll chain; only those
// schedule a successor, so manual refreshes never stack extra timers.
// It is exported so that tests can inject it directly into AppModel.Update.
type RunsLoadedMsg struct {
	Runs      []deploy.Run
	Err       error
	Scheduled bool
}

// pollTickMsg fires when the poll interval elapses.
type pollTickMsg struct{}

// uiTickMsg drives the once-a-second redraw of elapsed counters.
type uiTickMsg time.Time

// Options configures the watch UI.
type Options struct {
	Repo     deploy.Repository
	Provider provider.RunProvider
	Cache    *cache.Store
	Notifier notify.Notifier
	Active   time.Duration
	Idle     time.Duration
}

// AppModel is the root Bubbletea model for the watch UI.
type AppModel struct {
	repo     deploy.Repository
	provider provider.RunProvider
	cache    *cache.Store
	notifier notify.Notifier
	mon      *monitor.Monitor

	panel  PanelModel
	keys   KeyMap
	help   help.Model
	spin   spinner.Model
	styles Styles

	panelOpen bool
	fetching  bool
	lastErr   error
	lastSync  time.Time

	toast      string
	toastKind  notify.Kind
	toastUntil time.Time

	width  int
	height int
}

// NewAppModel creates the root model. Cached runs, when present, seed the
// badge so it has something to show before the first live fetch lands.
func NewAppModel(opts Options) AppModel {
	mon := monitor.New(opts.Active, opts.Idle)
	if cached := opts.Cache.Load(); len(cached) > 0 {
		mon.Seed(cached)
	}

	st := DefaultStyles()
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = st.Active

	return AppModel{
		repo:     opts.Repo,
		provider: opts.Provider,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		mon:      mon,
		panel:    NewPanelModel(mon.Runs(), st),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spin:     spin,
		styles:   st,
		fetching: true,
	}
}

// Init triggers the first refresh and starts the elapsed-counter ticker.
// The poll chain itself is armed when that first refresh completes.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(true), tickUI(), m.spin.Tick)
}

func (m AppModel) refresh(scheduled bool) tea.Cmd {
	return func() tea.Msg {
		runs, err := m.provider.ListRuns(context.Background(), m.repo)
		return RunsLoadedMsg{Runs: runs, Err: err, Scheduled: scheduled}
	}
}

func (m AppModel) publish(n notify.Notification) tea.Cmd {
	return func() tea.Msg {
		_ = m.notifier.Publish(n)
		return nil
	}
}

func schedulePoll(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func tickUI() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.panel = m.panel.SetWidth(msg.Width)

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case uiTickMsg:
		if m.toast != "" && time.Time(msg).After(m.toastUntil) {
			m.toast = ""
		}
		return m, tickUI()

	case pollTickMsg:
		m.fetching = true
		return m, tea.Batch(m.refresh(true), m.spin.Tick)

	case RunsLoadedMsg:
		return m.applyRuns(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// applyRuns folds a finished refresh into the model. Failed fetches keep
// the last known runs on screen; the successor poll is scheduled either
// way so the chain never dies.
func (m AppModel) applyRuns(msg RunsLoadedMsg) (tea.Model, tea.Cmd) {
	m.fetching = false
	var cmds []tea.Cmd

	if msg.Err != nil {
		m.lastErr = msg.Err
		if msg.Scheduled {
			cmds = append(cmds, schedulePoll(m.mon.Interval()))
		}
		return m, tea.Batch(cmds...)
	}

	m.lastErr = nil
	m.lastSync = time.Now()
	t, fired := m.mon.Apply(msg.Runs)
	m.cache.Save(msg.Runs)
	m.panel = m.panel.UpdateRuns(m.mon.Runs())

	if fired {
		n := t.Notification()
		m.toast = n.Title + ": " + n.Message
		m.toastKind = n.Kind
		m.toastUntil = time.Now().Add(toastDuration)
		cmds = append(cmds, m.publish(n))
	}
	if msg.Scheduled {
		cmds = append(cmds, schedulePoll(m.mon.Interval()))
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.panelOpen = !m.panelOpen
	case key.Matches(msg, m.keys.Close):
		m.panelOpen = false
	case key.Matches(msg, m.keys.Refresh):
		m.fetching = true
		return m, tea.Batch(m.refresh(false), m.spin.Tick)
	case key.Matches(msg, m.keys.Up):
		if m.panelOpen {
			m.panel = m.panel.MoveUp()
		}
	case key.Matches(msg, m.keys.Down):
		if m.panelOpen {
			m.panel = m.panel.MoveDown()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse mirrors the badge widget's pointer behavior: clicking the
// badge toggles the panel, clicking a panel row selects it, and clicking
// anywhere else closes the panel.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if msg.Y == 0 {
		m.panelOpen = !m.panelOpen
		return m, nil
	}
	if !m.panelOpen {
		return m, nil
	}
	// The panel starts on the line below the badge.
	panelHeight := lipgloss.Height(m.panel.View(time.Now()))
	if msg.Y >= 1 && msg.Y < 1+panelHeight {
		m.panel = m.panel.Select(msg.Y - 2)
		return m, nil
	}
	m.panelOpen = false
	return m, nil
}

// View renders the badge, the optional detail panel, the toast line, and
// the status footer.
func (m AppModel) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	now := time.Now()

	badge := RenderBadge(m.mon.Runs(), now, m.styles, m.width)
	if m.fetching {
		badge += " " + m.spin.View()
	}
	b.WriteString(badge + "\n")

	if m.panelOpen {
		b.WriteString(m.panel.View(now) + "\n")
	}

	if m.toast != "" {
		style := m.styles.Toast
		if m.toastKind == notify.KindFailure {
			style = m.styles.ToastErr
		}
		b.WriteString(style.Render(Truncate(m.toast, m.width-2)) + "\n")
	}

	switch {
	case m.lastErr != nil:
		line := fmt.Sprintf("fetch failed: %v (showing last known data)", m.lastErr)
		b.WriteString(m.styles.ErrLine.Render(Truncate(line, m.width)) + "\n")
	case !m.lastSync.IsZero():
		b.WriteString(m.styles.Muted.Render("updated "+m.lastSync.Format("15:04:05")) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// Run starts the Bubbletea program. Exits on error.
func Run(opts Options) {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "shipwatch error: %v\n", err)
		os.Exit(1)
	}
}
