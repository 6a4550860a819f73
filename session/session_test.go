package session

import (
	"errors"
	"testing"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
)

func setupSession(t *testing.T) (*Session, *db.DB) {
	store, err := db.Open(":memory:", db.Options{AllowSelfRetweet: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func registerUser(t *testing.T, store *db.DB, name string) string {
	usr, err := store.CreateUser(name, name+"@example.com", "123", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return usr
}

func TestStateTransitions(t *testing.T) {
	sess, store := setupSession(t)
	alice := registerUser(t, store, "alice")

	if sess.State() != LoggedOut {
		t.Fatalf("New session should be logged out, got %v", sess.State())
	}

	if err := sess.Begin(alice); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if sess.State() != MainMenu {
		t.Errorf("Expected main menu after begin, got %v", sess.State())
	}

	if _, err := sess.Timeline(); err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if sess.State() != Browsing {
		t.Errorf("Expected browsing after timeline, got %v", sess.State())
	}

	sess.Enter()
	if sess.State() != ItemDetail {
		t.Errorf("Expected item detail after enter, got %v", sess.State())
	}

	sess.Back()
	if sess.State() != Browsing {
		t.Errorf("Expected browsing after back, got %v", sess.State())
	}

	sess.Cancel()
	if sess.State() != MainMenu {
		t.Errorf("Expected main menu after cancel, got %v", sess.State())
	}

	// Cancel in the main menu stays put
	sess.Cancel()
	if sess.State() != MainMenu {
		t.Errorf("Cancel in main menu should be a no-op, got %v", sess.State())
	}

	sess.Logout()
	if sess.State() != LoggedOut || sess.User() != "" {
		t.Errorf("Expected clean logged-out state, got %v user %q", sess.State(), sess.User())
	}
}

func TestOperationsRequireLogin(t *testing.T) {
	sess, _ := setupSession(t)

	if _, err := sess.Timeline(); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Timeline without login should fail, got %v", err)
	}
	if _, err := sess.Compose("hi"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Compose without login should fail, got %v", err)
	}
	if err := sess.Follow("2"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Follow without login should fail, got %v", err)
	}
}

func TestInvalidInputKeepsState(t *testing.T) {
	sess, store := setupSession(t)
	alice := registerUser(t, store, "alice")
	sess.Begin(alice)

	if _, err := sess.SearchTweets(nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Expected invalid input, got %v", err)
	}
	if sess.State() != MainMenu {
		t.Errorf("Invalid input should keep the session in place, got %v", sess.State())
	}

	if _, err := sess.SearchUsers(""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Expected invalid input, got %v", err)
	}
	if sess.State() != MainMenu {
		t.Errorf("Invalid input should keep the session in place, got %v", sess.State())
	}
}

func TestStoreErrorReturnsToMainMenu(t *testing.T) {
	sess, store := setupSession(t)
	alice := registerUser(t, store, "alice")
	sess.Begin(alice)

	if _, err := sess.Timeline(); err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if sess.State() != Browsing {
		t.Fatalf("Expected browsing, got %v", sess.State())
	}

	// Kill the store underneath the session
	store.Close()

	_, err := sess.FavoriteLists()
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("Expected store error, got %v", err)
	}
	if sess.State() != MainMenu {
		t.Errorf("Store error should land in main menu, got %v", sess.State())
	}
}

func TestSessionFlow(t *testing.T) {
	sess, store := setupSession(t)
	alice := registerUser(t, store, "alice")
	bob := registerUser(t, store, "bob")

	sess.Begin(alice)
	if _, err := sess.Compose("hello #world"); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	sess.Logout()

	sess.Begin(bob)
	if err := sess.Follow(alice); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	cur, err := sess.Timeline()
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	page, err := cur.Page()
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].WriterId != alice {
		t.Fatalf("Expected alice's tweet in bob's timeline, got %v", page.Items)
	}

	item, err := page.Select(1)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := sess.Retweet(item.Tid); err != nil {
		t.Fatalf("Retweet failed: %v", err)
	}
	if err := sess.Retweet(item.Tid); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Duplicate retweet should conflict, got %v", err)
	}

	if err := sess.CreateList("faves"); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if err := sess.AddToList("faves", item.Tid); err != nil {
		t.Fatalf("AddToList failed: %v", err)
	}

	names, err := sess.FavoriteLists()
	if err != nil {
		t.Fatalf("FavoriteLists failed: %v", err)
	}
	if len(names) != 1 || names[0] != "faves" {
		t.Errorf("Expected [faves], got %v", names)
	}
}
