package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/store"
	"github.com/kgrange/tempo/internal/timeutil"
	"github.com/kgrange/tempo/internal/tracker"
	"github.com/kgrange/tempo/internal/ui/keys"
	"github.com/kgrange/tempo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// TaskListView shows the task collection with search, filtering,
// completion toggling and timer control.
type TaskListView struct {
	store   *store.Store
	tracker *tracker.Tracker
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	tasks  []models.Task
	cursor int

	// Search
	searching   bool
	searchInput textinput.Model

	// Completion filter cycles nil -> open -> done
	completedFilter *bool

	// Task creation
	creating   bool
	titleInput textinput.Model
	descInput  textinput.Model
	catIdx     int
	focusIdx   int // 0=title, 1=desc, 2=category

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

// NewTaskListView creates the task list over the store and tracker.
func NewTaskListView(s *store.Store, tr *tracker.Tracker) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 500

	return &TaskListView{
		store:       s,
		tracker:     tr,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
		titleInput:  title,
		descInput:   desc,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	v.refresh()
	return nil
}

// Capturing reports whether the view owns all key input (text entry or
// a confirmation prompt), so app-level bindings must stay out.
func (v *TaskListView) Capturing() bool {
	return v.searching || v.creating || v.confirmingDelete
}

// refresh re-reads the task snapshot applying search and filters.
func (v *TaskListView) refresh() {
	if q := v.searchInput.Value(); q != "" {
		v.tasks = v.store.SearchTasks(q)
	} else {
		v.tasks = v.store.FilterTasks(store.Filter{Completed: v.completedFilter})
	}
	v.cursor = clamp(v.cursor, 0, max(len(v.tasks)-1, 0))
}

func (v *TaskListView) selected() *models.Task {
	if len(v.tasks) == 0 {
		return nil
	}
	return &v.tasks[v.cursor]
}

func (v *TaskListView) Update(msg tea.Msg) (*TaskListView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.confirmingDelete {
			return v.updateConfirmingDelete(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *TaskListView) updateList(msg tea.KeyMsg) (*TaskListView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, max(len(v.tasks)-1, 0))

	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, max(len(v.tasks)-1, 0))

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.cycleCompletedFilter()
		v.refresh()

	case key.Matches(msg, v.keys.New):
		if len(v.store.Categories()) == 0 {
			return v, statusCmd(fmt.Errorf("create a category first"), "")
		}
		v.creating = true
		v.focusIdx = 0
		v.catIdx = 0
		v.titleInput.SetValue("")
		v.descInput.SetValue("")
		v.titleInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if t := v.selected(); t != nil {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Title
		}

	case key.Matches(msg, v.keys.Toggle):
		if t := v.selected(); t != nil {
			got, err := v.store.ToggleTaskCompletion(t.ID)
			v.refresh()
			text := "Task completed"
			if !got.Completed {
				text = "Task marked as incomplete"
			}
			return v, statusCmd(err, text)
		}

	case key.Matches(msg, v.keys.Track):
		if t := v.selected(); t != nil {
			return v, v.toggleTracking(t)
		}

	case key.Matches(msg, v.keys.Reset):
		if t := v.selected(); t != nil && v.tracker.CurrentTaskID() == t.ID {
			_, err := v.tracker.Restart(t.ID)
			v.refresh()
			return v, statusCmd(err, fmt.Sprintf("Restarted timer for %q", t.Title))
		}
	}

	return v, nil
}

// toggleTracking starts the timer on the task, or stops it when the
// task is already being tracked.
func (v *TaskListView) toggleTracking(t *models.Task) tea.Cmd {
	if v.tracker.CurrentTaskID() == t.ID {
		log, stopped, err := v.tracker.Stop(t.ID)
		v.refresh()
		if !stopped {
			return nil
		}
		return statusCmd(err, fmt.Sprintf("Stopped %q at %s", t.Title, timeutil.FormatDuration(log.Duration)))
	}

	_, err := v.tracker.Start(t.ID)
	v.refresh()
	return statusCmd(err, fmt.Sprintf("Started tracking %q", t.Title))
}

func (v *TaskListView) cycleCompletedFilter() {
	switch {
	case v.completedFilter == nil:
		f := false
		v.completedFilter = &f
	case !*v.completedFilter:
		f := true
		v.completedFilter = &f
	default:
		v.completedFilter = nil
	}
}

func (v *TaskListView) updateSearching(msg tea.KeyMsg) (*TaskListView, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searching = false
		v.searchInput.SetValue("")
		v.searchInput.Blur()
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.refresh()
	return v, cmd
}

func (v *TaskListView) updateCreating(msg tea.KeyMsg) (*TaskListView, tea.Cmd) {
	categories := v.store.Categories()

	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		v.titleInput.Blur()
		v.descInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		v.titleInput.Blur()
		v.descInput.Blur()
		switch v.focusIdx {
		case 0:
			v.titleInput.Focus()
		case 1:
			v.descInput.Focus()
		}
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Enter):
		title := strings.TrimSpace(v.titleInput.Value())
		if title == "" {
			return v, statusCmd(fmt.Errorf("task title is required"), "")
		}
		_, err := v.store.AddTask(store.TaskDraft{
			Title:       title,
			Description: strings.TrimSpace(v.descInput.Value()),
			CategoryID:  categories[v.catIdx].ID,
		})
		v.creating = false
		v.titleInput.Blur()
		v.descInput.Blur()
		v.refresh()
		return v, statusCmd(err, "Task added")
	}

	if v.focusIdx == 2 {
		switch msg.String() {
		case "left", "h":
			v.catIdx = clamp(v.catIdx-1, 0, len(categories)-1)
		case "right", "l":
			v.catIdx = clamp(v.catIdx+1, 0, len(categories)-1)
		}
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.titleInput, cmd = v.titleInput.Update(msg)
	} else {
		v.descInput, cmd = v.descInput.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) updateConfirmingDelete(msg tea.KeyMsg) (*TaskListView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := v.deleteTargetID
		v.confirmingDelete = false
		err := v.store.DeleteTask(id)
		v.refresh()
		return v, statusCmd(err, "Task deleted")
	default:
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TaskListView) View() string {
	var b strings.Builder
	width := styles.ContentWidth(v.width)

	b.WriteString(v.styles.Title.Render("Tasks"))
	b.WriteString("  ")
	b.WriteString(v.styles.TitleMuted.Render(v.filterLabel()))
	b.WriteString("\n\n")

	if v.searching || v.searchInput.Value() != "" {
		b.WriteString(v.styles.InputFocused.Width(width - 4).Render(v.searchInput.View()))
		b.WriteString("\n")
	}

	if v.creating {
		b.WriteString(v.viewCreateForm(width))
		return b.String()
	}

	if v.confirmingDelete {
		b.WriteString(fmt.Sprintf("Delete %q and its time logs? (y/n)\n", v.deleteTargetName))
		return b.String()
	}

	if len(v.tasks) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("No tasks. Press n to add one."))
		b.WriteString("\n")
	}

	trackedID := v.tracker.CurrentTaskID()
	for i, t := range v.tasks {
		b.WriteString(v.renderTask(t, i == v.cursor, t.ID == trackedID, width))
		b.WriteString("\n")
	}

	b.WriteString(v.viewHelp())
	return b.String()
}

func (v *TaskListView) renderTask(t models.Task, selected, tracked bool, width int) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	title := t.Title
	if t.Completed {
		title = v.styles.Done.Render(title)
	}

	var meta []string
	if c, ok := v.store.CategoryByID(t.CategoryID); ok {
		meta = append(meta, c.Name)
	}
	for _, tagID := range t.Tags {
		if tag, ok := v.store.TagByID(tagID); ok {
			meta = append(meta, v.styles.Tag.Render("#"+tag.Name))
		}
	}
	if total := t.TotalDuration(); total > 0 {
		meta = append(meta, timeutil.FormatDuration(total))
	}
	if t.ScheduledDate != nil {
		meta = append(meta, timeutil.RelativeDateLabel(t.ScheduledDate, v.nowForLabels()))
	}

	line := fmt.Sprintf("%s %s", check, title)
	if tracked {
		line = v.styles.Tracking.Render("● ") + line
	} else {
		line = "  " + line
	}
	if len(meta) > 0 {
		line += "  " + v.styles.TitleMuted.Render(strings.Join(meta, " · "))
	}

	if selected {
		return v.styles.ListSelected.Width(max(width-4, 20)).Render(line)
	}
	return v.styles.ListItem.Render(line)
}

func (v *TaskListView) viewCreateForm(width int) string {
	categories := v.store.Categories()
	var b strings.Builder

	inputStyle := func(idx int) func(string) string {
		s := v.styles.Input
		if v.focusIdx == idx {
			s = v.styles.InputFocused
		}
		styled := s.Width(width - 4)
		return func(str string) string { return styled.Render(str) }
	}

	b.WriteString(inputStyle(0)(v.titleInput.View()))
	b.WriteString("\n")
	b.WriteString(inputStyle(1)(v.descInput.View()))
	b.WriteString("\n")

	cat := fmt.Sprintf("Category: < %s >", categories[v.catIdx].Name)
	if v.focusIdx == 2 {
		cat = v.styles.Title.Render(cat)
	} else {
		cat = v.styles.TitleMuted.Render(cat)
	}
	b.WriteString("  " + cat + "\n")
	b.WriteString(v.styles.Help.Render("tab: next field · enter: save · esc: cancel"))
	return b.String()
}

// nowForLabels feeds the relative date labels. Display only, so the
// wall clock is fine here.
func (v *TaskListView) nowForLabels() time.Time { return time.Now() }

func (v *TaskListView) filterLabel() string {
	if v.searchInput.Value() != "" {
		return "search"
	}
	if v.completedFilter == nil {
		return "all"
	}
	if *v.completedFilter {
		return "done"
	}
	return "open"
}

func (v *TaskListView) viewHelp() string {
	pairs := [][2]string{
		{"s", "start/stop"},
		{"r", "restart"},
		{"space", "done"},
		{"n", "new"},
		{"d", "delete"},
		{"/", "search"},
		{"f", "filter"},
		{"tab", "view"},
		{"q", "quit"},
	}
	var parts []string
	for _, p := range pairs {
		parts = append(parts, v.styles.HelpKey.Render(p[0])+" "+v.styles.HelpDesc.Render(p[1]))
	}
	return v.styles.Help.Render(strings.Join(parts, "  "))
}
