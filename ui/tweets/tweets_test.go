package tweets

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

func setupBrowse(t *testing.T, tweetCount int) Model {
	store, err := db.Open(":memory:", db.Options{})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	alice, err := store.CreateUser("Alice", "alice@example.com", "123", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	bob, err := store.CreateUser("Bob", "bob@example.com", "456", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if err := store.CreateFollow(bob, alice); err != nil {
		t.Fatalf("Failed to follow: %v", err)
	}
	for i := 0; i < tweetCount; i++ {
		if _, err := store.CreateTweet(alice, fmt.Sprintf("tweet %d", i)); err != nil {
			t.Fatalf("Failed to create tweet: %v", err)
		}
	}

	sess := session.New(store)
	sess.Begin(bob)
	m := InitialModel(sess, 120, 40)

	cursor, err := sess.Timeline()
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	m, cmd := m.Update(common.BrowseTweetsMsg{Title: "timeline", Cursor: cursor})
	if cmd == nil {
		t.Fatal("Browse should trigger a page load")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestBrowseLoadsFirstPage(t *testing.T) {
	m := setupBrowse(t, 12)

	if !m.Loaded {
		t.Fatal("Model should be loaded")
	}
	if len(m.Page.Items) != 5 || !m.Page.HasNext || m.Page.HasPrev {
		t.Errorf("Unexpected first page: %+v", m.Page)
	}
	_ = m.View()
}

func TestPagingKeys(t *testing.T) {
	m := setupBrowse(t, 12)

	// Forward to the last page
	for i := 0; i < 2; i++ {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
		if cmd == nil {
			t.Fatalf("Page %d should have a successor", i+1)
		}
		next, _ = next.Update(cmd())
		m = next
	}
	if len(m.Page.Items) != 2 || m.Page.HasNext {
		t.Errorf("Unexpected last page: %+v", m.Page)
	}

	// Next at the edge is a no-op
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd != nil {
		t.Error("Next at last page should not reload")
	}

	// Back one page
	prev, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if cmd == nil {
		t.Fatal("Prev should reload")
	}
	prev, _ = prev.Update(cmd())
	if len(prev.Page.Items) != 5 {
		t.Errorf("Expected a full middle page, got %d items", len(prev.Page.Items))
	}
	_ = prev.View()
}

func TestSelectOpensDetail(t *testing.T) {
	m := setupBrowse(t, 3)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter should emit a view message")
	}
	msg := cmd()
	view, ok := msg.(common.ViewTweetMsg)
	if !ok {
		t.Fatalf("Expected ViewTweetMsg, got %T", msg)
	}
	if view.Item.Tid == 0 {
		t.Error("Selected item should carry a tid")
	}
	if m.Sess.State() != session.ItemDetail {
		t.Errorf("Session should be in item detail, got %v", m.Sess.State())
	}

	// Number selection beyond the page is out of range
	m2 := setupBrowse(t, 3)
	m2, _ = m2.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	if m2.Error == "" {
		t.Error("Selecting 5 of 3 should set an error")
	}
}
