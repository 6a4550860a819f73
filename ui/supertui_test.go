package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/auth"
	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

func setupModel(t *testing.T) (MainModel, *db.DB) {
	store, err := db.Open(":memory:", db.Options{AllowSelfRetweet: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sess := session.New(store)
	m := NewModel(sess, auth.NewService(store), 120, 40)
	return m, store
}

func loggedInModel(t *testing.T, m MainModel, store *db.DB) MainModel {
	usr, err := store.CreateUser("Alice", "alice@example.com", "123", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	updated, _ := m.Update(common.LoggedInMsg{User: domain.User{Usr: usr, Name: "Alice"}})
	return updated.(MainModel)
}

// The view must never panic, whatever state it is in
func TestViewDoesNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("View panicked: %v", r)
		}
	}()

	m, store := setupModel(t)
	_ = m.View()

	m = loggedInModel(t, m, store)
	_ = m.View()

	for _, key := range []string{"ctrl+n", "ctrl+t", "ctrl+f", "ctrl+u", "ctrl+o", "ctrl+l"} {
		updated, _ := m.Update(keyMsg(key))
		m = updated.(MainModel)
		_ = m.View()
	}
}

func TestLoginStateBlocksNavigation(t *testing.T) {
	m, _ := setupModel(t)

	updated, _ := m.Update(keyMsg("ctrl+t"))
	m = updated.(MainModel)
	if m.state != common.LoginView {
		t.Errorf("Navigation before login should be ignored, got state %d", m.state)
	}
}

func TestLoggedInStartsSession(t *testing.T) {
	m, store := setupModel(t)
	m = loggedInModel(t, m, store)

	if m.sess.User() == "" {
		t.Error("Session should carry the logged-in user")
	}
	if m.sess.State() == session.LoggedOut {
		t.Error("Session should have left the logged-out state")
	}
}

func TestLogoutResetsToLogin(t *testing.T) {
	m, store := setupModel(t)
	m = loggedInModel(t, m, store)

	updated, _ := m.Update(keyMsg("ctrl+q"))
	m = updated.(MainModel)
	if m.state != common.LoginView {
		t.Errorf("Expected login view after logout, got %d", m.state)
	}
	if m.sess.State() != session.LoggedOut {
		t.Errorf("Expected logged-out session, got %v", m.sess.State())
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := setupModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(MainModel)
	_ = m.View()
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
