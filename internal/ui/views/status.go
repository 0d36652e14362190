package views

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kgrange/tempo/internal/store"
)

// StatusLevel classifies a status-bar message.
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarn
	StatusError
)

// StatusMsg carries the outcome of a mutation to the status bar. The
// three levels map to the three mutation outcomes: applied and
// persisted, applied locally only, and rejected.
type StatusMsg struct {
	Text  string
	Level StatusLevel
}

// statusCmd turns a store mutation result into a status message.
// okText is shown on full success.
func statusCmd(err error, okText string) tea.Cmd {
	var msg StatusMsg
	switch {
	case err == nil:
		msg = StatusMsg{Text: okText, Level: StatusOK}
	case errors.Is(err, store.ErrNotPersisted):
		msg = StatusMsg{Text: okText + " (saved locally, sync failed)", Level: StatusWarn}
	default:
		msg = StatusMsg{Text: err.Error(), Level: StatusError}
	}
	return func() tea.Msg { return msg }
}
