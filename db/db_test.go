package db

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkeen/dodo/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T, opts Options) *DB {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	// An in-memory database exists per connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := &DB{db: sqlDB, opts: opts}
	if err := db.CreateDB(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *DB, name string) string {
	usr, err := db.CreateUser(name, name+"@example.com", "123456", "hash")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return usr
}

func TestCreateUserAllocatesSequentialIds(t *testing.T) {
	db := setupTestDB(t, Options{})

	first := createTestUser(t, db, "alice")
	second := createTestUser(t, db, "bob")

	if first != "1" || second != "2" {
		t.Errorf("Expected ids 1 and 2, got %s and %s", first, second)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t, Options{})
	createTestUser(t, db, "alice")

	_, err := db.CreateUser("other", "alice@example.com", "999", "hash")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}
}

func TestCreateTweetBounds(t *testing.T) {
	db := setupTestDB(t, Options{})
	alice := createTestUser(t, db, "alice")

	if _, err := db.CreateTweet(alice, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for empty tweet, got %v", err)
	}
	if _, err := db.CreateTweet(alice, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for blank tweet, got %v", err)
	}
	if _, err := db.CreateTweet(alice, strings.Repeat("x", 281)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for 281 chars, got %v", err)
	}

	tid, err := db.CreateTweet(alice, strings.Repeat("x", 280))
	if err != nil {
		t.Fatalf("Expected 280 chars to be accepted: %v", err)
	}
	if tid != 1 {
		t.Errorf("Expected first tid to be 1, got %d", tid)
	}
}

func TestCreateTweetStoresHashtags(t *testing.T) {
	db := setupTestDB(t, Options{})
	alice := createTestUser(t, db, "alice")

	tid, err := db.CreateTweet(alice, "go #foo and #bar and #foo again")
	if err != nil {
		t.Fatalf("Failed to create tweet: %v", err)
	}

	rows, err := db.db.Query(`SELECT term FROM hashtag_mentions WHERE tid = ? ORDER BY term`, tid)
	if err != nil {
		t.Fatalf("Failed to query hashtags: %v", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			t.Fatalf("Failed to scan: %v", err)
		}
		terms = append(terms, term)
	}
	if len(terms) != 2 || terms[0] != "#bar" || terms[1] != "#foo" {
		t.Errorf("Expected deduplicated #bar and #foo, got %v", terms)
	}
}

func TestCreateFollow(t *testing.T) {
	db := setupTestDB(t, Options{})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.CreateFollow(bob, alice); err != nil {
		t.Fatalf("Failed to create follow: %v", err)
	}

	// Duplicate edge is a conflict, the edge stays intact
	if err := db.CreateFollow(bob, alice); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected conflict for duplicate follow, got %v", err)
	}

	var count int
	db.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE flwer = ? AND flwee = ?`, bob, alice).Scan(&count)
	if count != 1 {
		t.Errorf("Expected exactly one edge, got %d", count)
	}

	if err := db.CreateFollow(bob, bob); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for self-follow, got %v", err)
	}
	if err := db.CreateFollow(bob, "99"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for missing flwee, got %v", err)
	}
}

func TestCreateFollowSelfAllowedByPolicy(t *testing.T) {
	db := setupTestDB(t, Options{AllowSelfFollow: true})
	alice := createTestUser(t, db, "alice")

	if err := db.CreateFollow(alice, alice); err != nil {
		t.Errorf("Expected self-follow to pass with policy enabled, got %v", err)
	}
}

func TestCreateRetweet(t *testing.T) {
	db := setupTestDB(t, Options{AllowSelfRetweet: true})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	tid, err := db.CreateTweet(alice, "hello")
	if err != nil {
		t.Fatalf("Failed to create tweet: %v", err)
	}

	if err := db.CreateRetweet(tid, bob); err != nil {
		t.Fatalf("Failed to create retweet: %v", err)
	}
	if err := db.CreateRetweet(tid, bob); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected conflict for duplicate retweet, got %v", err)
	}
	if err := db.CreateRetweet(99, bob); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for missing tweet, got %v", err)
	}

	// writer_id is copied from the original tweet
	var writer string
	db.db.QueryRow(`SELECT writer_id FROM retweets WHERE tid = ? AND retweeter_id = ?`, tid, bob).Scan(&writer)
	if writer != alice {
		t.Errorf("Expected writer_id %s, got %s", alice, writer)
	}
}

func TestCreateRetweetSelfRejectedByPolicy(t *testing.T) {
	db := setupTestDB(t, Options{AllowSelfRetweet: false})
	alice := createTestUser(t, db, "alice")

	tid, _ := db.CreateTweet(alice, "mine")
	if err := db.CreateRetweet(tid, alice); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for self-retweet, got %v", err)
	}
}

func TestWindowSpamClassifierFlagsHeavyRetweeters(t *testing.T) {
	db := setupTestDB(t, Options{
		AllowSelfRetweet: true,
		Spam:             WindowSpamClassifier(1, 7*24*time.Hour),
	})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, _ := db.CreateTweet(alice, "one")
	second, _ := db.CreateTweet(alice, "two")

	if err := db.CreateRetweet(first, bob); err != nil {
		t.Fatalf("Failed to create retweet: %v", err)
	}
	if err := db.CreateRetweet(second, bob); err != nil {
		t.Fatalf("Failed to create retweet: %v", err)
	}

	var spam int
	db.db.QueryRow(`SELECT spam FROM retweets WHERE tid = ?`, first).Scan(&spam)
	if spam != 0 {
		t.Errorf("Expected first retweet unflagged, got spam=%d", spam)
	}
	db.db.QueryRow(`SELECT spam FROM retweets WHERE tid = ?`, second).Scan(&spam)
	if spam != 1 {
		t.Errorf("Expected second retweet flagged, got spam=%d", spam)
	}
}

func TestCreateReply(t *testing.T) {
	db := setupTestDB(t, Options{})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if _, err := db.CreateReply(bob, 42, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for missing target, got %v", err)
	}

	target, _ := db.CreateTweet(alice, "original")
	reply, err := db.CreateReply(bob, target, "answer")
	if err != nil {
		t.Fatalf("Failed to create reply: %v", err)
	}

	err2, tweet := db.ReadTweet(reply)
	if err2 != nil {
		t.Fatalf("Failed to read reply: %v", err2)
	}
	if tweet.ReplyTo == nil || *tweet.ReplyTo != target {
		t.Errorf("Expected reply to %d, got %v", target, tweet.ReplyTo)
	}
}

func TestFavoriteListRoundTrip(t *testing.T) {
	db := setupTestDB(t, Options{})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.CreateList(alice, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected invalid input for empty name, got %v", err)
	}
	if err := db.CreateList(alice, "faves"); err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	if err := db.CreateList(alice, "faves"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected conflict for duplicate list, got %v", err)
	}

	tid, _ := db.CreateTweet(bob, "worth saving")

	if err := db.AddToList(alice, "missing", tid); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for missing list, got %v", err)
	}
	if err := db.AddToList(alice, "faves", 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for missing tweet, got %v", err)
	}
	if err := db.AddToList(alice, "faves", tid); err != nil {
		t.Fatalf("Failed to add to list: %v", err)
	}
	if err := db.AddToList(alice, "faves", tid); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Expected conflict for duplicate membership, got %v", err)
	}

	err, items := db.ReadListContents(alice, "faves", 0, 10)
	if err != nil {
		t.Fatalf("Failed to read list contents: %v", err)
	}
	if len(*items) != 1 || (*items)[0].Tid != tid {
		t.Errorf("Expected the saved tweet back, got %v", *items)
	}
}
