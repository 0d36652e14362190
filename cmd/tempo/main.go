package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/persist"
	"github.com/kgrange/tempo/internal/session"
	"github.com/kgrange/tempo/internal/store"
	"github.com/kgrange/tempo/internal/tracker"
	"github.com/kgrange/tempo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("tempo %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// Optional .env; absence is fine.
	godotenv.Load()

	// TEMPO_MEMORY=1 runs without durable storage.
	var db *persist.SQLite
	var backend persist.Backend
	if os.Getenv("TEMPO_MEMORY") == "" {
		var err error
		db, err = persist.Open(os.Getenv("TEMPO_DB"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		backend = db
	}

	st := store.New(backend, nil)
	tr := tracker.New(st, nil)
	sess := session.NewManager(st)

	user := resolveUser(db)
	if err := sess.SetUser(user); err != nil && !errors.Is(err, store.ErrNotPersisted) {
		fmt.Fprintf(os.Stderr, "Error loading user data: %v\n", err)
		os.Exit(1)
	}
	if db != nil {
		db.SetSetting("last_user_id", user.ID)
	}

	app := ui.NewApp(st, tr)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// resolveUser builds the session identity from the environment, falling
// back to the last signed-in user and then to a local default.
func resolveUser(db *persist.SQLite) *models.User {
	id := os.Getenv("TEMPO_USER_ID")
	if id == "" && db != nil {
		id, _ = db.GetSetting("last_user_id")
	}
	if id == "" {
		id = "local"
	}

	name := os.Getenv("TEMPO_USER_NAME")
	if name == "" {
		name = "Local User"
	}

	return &models.User{
		ID:    id,
		Name:  name,
		Email: os.Getenv("TEMPO_USER_EMAIL"),
	}
}
