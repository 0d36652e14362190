package session

import (
	"testing"

	"github.com/kgrange/tempo/internal/models"
	"github.com/kgrange/tempo/internal/store"
)

func TestSetUserSeedsDefaults(t *testing.T) {
	s := store.New(nil, nil)
	m := NewManager(s)

	if err := m.SetUser(&models.User{ID: "u1", Name: "Kim"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	categories := s.Categories()
	if len(categories) != 4 {
		t.Fatalf("got %d categories, want 4", len(categories))
	}
	wantColors := map[string]string{
		"Work":     "#4f46e5",
		"Personal": "#10b981",
		"Health":   "#ef4444",
		"Learning": "#f59e0b",
	}
	for _, c := range categories {
		if wantColors[c.Name] != c.Color {
			t.Errorf("category %q color = %q, want %q", c.Name, c.Color, wantColors[c.Name])
		}
	}

	tags := s.Tags()
	if len(tags) != 3 {
		t.Fatalf("got %d tags, want 3", len(tags))
	}
	wantTags := map[string]bool{"Urgent": true, "Important": true, "Low Priority": true}
	for _, tag := range tags {
		if !wantTags[tag.Name] {
			t.Errorf("unexpected seed tag %q", tag.Name)
		}
	}
}

func TestSetUserDoesNotReseed(t *testing.T) {
	s := store.New(nil, nil)
	m := NewManager(s)
	m.SetUser(&models.User{ID: "u1"})
	s.AddCategory("Custom", "#000000")

	// Switching identities reloads; with no backend the new user starts
	// empty and gets seeded fresh.
	m.SetUser(&models.User{ID: "u2"})
	if len(s.Categories()) != 4 {
		t.Errorf("u2 got %d categories, want the 4 defaults", len(s.Categories()))
	}
	for _, c := range s.Categories() {
		if c.Name == "Custom" {
			t.Error("u1's category leaked into u2's session")
		}
	}
}

func TestClearUser(t *testing.T) {
	s := store.New(nil, nil)
	m := NewManager(s)
	m.SetUser(&models.User{ID: "u1"})
	s.AddTask(store.TaskDraft{Title: "Secret", CategoryID: "c1"})

	m.ClearUser()
	if m.User() != nil {
		t.Error("user still set after clear")
	}
	if len(s.Tasks()) != 0 || len(s.Categories()) != 0 || len(s.Tags()) != 0 {
		t.Error("store not emptied on sign-out")
	}
}

func TestNilUserIsNotAnError(t *testing.T) {
	s := store.New(nil, nil)
	m := NewManager(s)
	m.SetUser(&models.User{ID: "u1"})

	if err := m.SetUser(nil); err != nil {
		t.Fatalf("SetUser(nil): %v", err)
	}
	if len(s.Categories()) != 0 {
		t.Error("store not cleared when identity went away")
	}
}
