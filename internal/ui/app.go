package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kgrange/tempo/internal/store"
	"github.com/kgrange/tempo/internal/tracker"
	"github.com/kgrange/tempo/internal/ui/keys"
	"github.com/kgrange/tempo/internal/ui/styles"
	"github.com/kgrange/tempo/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewTimer
	ViewStats
)

// tickMsg drives the once-per-second refresh of the live duration.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type App struct {
	store   *store.Store
	tracker *tracker.Tracker

	currentView View
	taskList    *views.TaskListView
	timer       *views.TimerView
	stats       *views.StatsView

	styles *styles.Styles
	keys   keys.KeyMap

	status views.StatusMsg
	hasMsg bool

	// ticking is true while a tick command is in flight. The loop is
	// armed only while the tracker is tracking and is not re-armed
	// once it goes idle.
	ticking bool

	width  int
	height int
}

// NewApp creates the application over the loaded store.
func NewApp(s *store.Store, tr *tracker.Tracker) *App {
	return &App{
		store:    s,
		tracker:  tr,
		taskList: views.NewTaskListView(s, tr),
		timer:    views.NewTimerView(s, tr),
		stats:    views.NewStatsView(s),
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.taskList.Update(msg)
		a.timer.Update(msg)
		a.stats.Update(msg)
		return a, nil

	case views.StatusMsg:
		a.status = msg
		a.hasMsg = true
		return a, a.armTick()

	case tickMsg:
		a.ticking = false
		if _, ok := a.tracker.Tick(); ok {
			a.ticking = true
			return a, tickCmd()
		}
		return a, nil

	case tea.KeyMsg:
		if !a.taskList.Capturing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Tab):
				a.currentView = (a.currentView + 1) % 3
				a.hasMsg = false
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	case ViewTimer:
		_, cmd = a.timer.Update(msg)
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	}

	return a, tea.Batch(cmd, a.armTick())
}

// armTick starts the tick loop when tracking begins. At most one tick
// command is in flight at a time.
func (a *App) armTick() tea.Cmd {
	if a.ticking || !a.tracker.Tracking() {
		return nil
	}
	a.ticking = true
	return tickCmd()
}

func (a *App) View() string {
	var body string
	switch a.currentView {
	case ViewTimer:
		body = a.timer.View()
	case ViewStats:
		body = a.stats.View()
	default:
		body = a.taskList.View()
	}

	return body + "\n" + a.statusBar()
}

func (a *App) statusBar() string {
	if !a.hasMsg {
		return ""
	}
	switch a.status.Level {
	case views.StatusWarn:
		return a.styles.StatusWarn.Render(a.status.Text)
	case views.StatusError:
		return a.styles.StatusErr.Render(a.status.Text)
	default:
		return a.styles.StatusOK.Render(a.status.Text)
	}
}
