package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kgrange/tempo/internal/stats"
	"github.com/kgrange/tempo/internal/store"
	"github.com/kgrange/tempo/internal/timeutil"
	"github.com/kgrange/tempo/internal/ui/styles"
)

const barWidth = 24

// StatsView renders the aggregation rollups: time per category, the
// weekly overview and the daily activity histogram. Read-only; every
// render recomputes from the current snapshot.
type StatsView struct {
	store  *store.Store
	styles *styles.Styles

	width  int
	height int
}

// NewStatsView creates the statistics view.
func NewStatsView(s *store.Store) *StatsView {
	return &StatsView{
		store:  s,
		styles: styles.NewStyles(),
	}
}

func (v *StatsView) Init() tea.Cmd { return nil }

func (v *StatsView) Update(msg tea.Msg) (*StatsView, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *StatsView) View() string {
	var b strings.Builder
	now := time.Now()
	tasks := v.store.Tasks()

	b.WriteString(v.styles.Title.Render("Statistics"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.TitleMuted.Render("Time by category"))
	b.WriteString("\n")
	dist := stats.CategoryDistribution(tasks, v.store.Categories())
	if len(dist) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("  no tracked time yet"))
		b.WriteString("\n")
	}
	maxSeconds := 0
	for _, d := range dist {
		if d.TotalSeconds > maxSeconds {
			maxSeconds = d.TotalSeconds
		}
	}
	for _, d := range dist {
		b.WriteString(fmt.Sprintf("  %-12s %s %8s  %d tasks, %d done\n",
			d.Name, v.bar(d.TotalSeconds, maxSeconds),
			timeutil.FormatDuration(d.TotalSeconds), d.TaskCount, d.CompletedCount))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.TitleMuted.Render("This week (from Monday)"))
	b.WriteString("\n")
	w := stats.WeeklyStats(tasks, now)
	b.WriteString(fmt.Sprintf("  created %d · completed %d · tracked %s · productivity %d%%\n",
		w.CreatedCount, w.CompletedCount, timeutil.FormatDuration(w.TrackedSeconds), w.ProductivityScore))

	b.WriteString("\n")
	b.WriteString(v.styles.TitleMuted.Render("Last 7 days (scheduled / completed)"))
	b.WriteString("\n")
	for _, day := range stats.DailyActivity(tasks, now) {
		b.WriteString(fmt.Sprintf("  %s  %2d / %-2d %s\n",
			day.Date.Format("Mon"), day.ScheduledCount, day.CompletedCount,
			v.styles.Bar.Render(strings.Repeat("▇", day.ScheduledCount+day.CompletedCount))))
	}

	b.WriteString(v.styles.Help.Render(
		v.styles.HelpKey.Render("tab") + " " + v.styles.HelpDesc.Render("view") + "  " +
			v.styles.HelpKey.Render("q") + " " + v.styles.HelpDesc.Render("quit")))
	return b.String()
}

func (v *StatsView) bar(value, maxValue int) string {
	if maxValue == 0 {
		return v.styles.BarEmpty.Render(strings.Repeat("─", barWidth))
	}
	filled := value * barWidth / maxValue
	return v.styles.Bar.Render(strings.Repeat("█", filled)) +
		v.styles.BarEmpty.Render(strings.Repeat("─", barWidth-filled))
}
