package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kgrange/tempo/internal/stats"
	"github.com/kgrange/tempo/internal/store"
	"github.com/kgrange/tempo/internal/timeutil"
	"github.com/kgrange/tempo/internal/tracker"
	"github.com/kgrange/tempo/internal/ui/keys"
	"github.com/kgrange/tempo/internal/ui/styles"
)

// TimerView shows the currently tracked task with its live session
// duration and today's total. It renders whatever the store snapshot
// holds; the app's tick loop keeps that fresh while tracking.
type TimerView struct {
	store   *store.Store
	tracker *tracker.Tracker
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int
}

// NewTimerView creates the timer view.
func NewTimerView(s *store.Store, tr *tracker.Tracker) *TimerView {
	return &TimerView{
		store:   s,
		tracker: tr,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
	}
}

func (v *TimerView) Init() tea.Cmd { return nil }

func (v *TimerView) Update(msg tea.Msg) (*TimerView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		task, tracking := v.tracker.CurrentTask()
		if !tracking {
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.Track):
			log, stopped, err := v.tracker.Stop(task.ID)
			if !stopped {
				return v, nil
			}
			return v, statusCmd(err, fmt.Sprintf("Stopped %q at %s", task.Title, timeutil.FormatDuration(log.Duration)))

		case key.Matches(msg, v.keys.Reset):
			_, err := v.tracker.Restart(task.ID)
			return v, statusCmd(err, fmt.Sprintf("Restarted timer for %q", task.Title))
		}
	}

	return v, nil
}

func (v *TimerView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Timer"))
	b.WriteString("\n\n")

	task, tracking := v.tracker.CurrentTask()
	if !tracking {
		b.WriteString(v.styles.TitleMuted.Render("No task is being tracked."))
		b.WriteString("\n")
		b.WriteString(v.styles.TitleMuted.Render("Pick a task in the task list and press s."))
		b.WriteString("\n")
	} else {
		session := 0
		if open := task.OpenLog(); open != nil {
			session = open.Duration
		}
		b.WriteString("  " + v.styles.Tracking.Render("● ") + task.Title + "\n")
		b.WriteString(v.styles.TimerBig.Render("  " + timeutil.FormatDuration(session)))
		b.WriteString("\n")
		b.WriteString(v.styles.TimerLabel.Render(fmt.Sprintf("  this session · task total %s",
			timeutil.FormatDuration(task.TotalDuration()))))
		b.WriteString("\n")
	}

	today := stats.TodayTrackedSeconds(v.store.Tasks(), time.Now())
	b.WriteString("\n")
	b.WriteString(v.styles.TimerLabel.Render(fmt.Sprintf("  tracked today: %s", timeutil.FormatDuration(today))))
	b.WriteString("\n")

	b.WriteString(v.viewHelp(tracking))
	return b.String()
}

func (v *TimerView) viewHelp(tracking bool) string {
	pairs := [][2]string{
		{"tab", "view"},
		{"q", "quit"},
	}
	if tracking {
		pairs = append([][2]string{{"s", "stop"}, {"r", "restart"}}, pairs...)
	}
	var parts []string
	for _, p := range pairs {
		parts = append(parts, v.styles.HelpKey.Render(p[0])+" "+v.styles.HelpDesc.Render(p[1]))
	}
	return v.styles.Help.Render(strings.Join(parts, "  "))
}
