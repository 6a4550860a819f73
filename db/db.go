package db

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/mkeen/dodo/domain"
)

// DB is the database struct.
type DB struct {
	db   *sql.DB
	opts Options
}

// Options are the store-level policy switches. The zero value is the
// strict default: no self-follow, no self-retweet, own posts excluded
// from the own timeline, spam classification off.
type Options struct {
	AllowSelfFollow     bool
	AllowSelfRetweet    bool
	TimelineIncludeSelf bool

	// Spam decides the spam flag of a new retweet. Nil means nothing
	// is ever flagged.
	Spam SpamClassifier
}

// Open opens (or creates) the sqlite database at path and runs the
// schema setup.
func Open(path string, opts Options) (*DB, error) {
	log.Printf("Using database at: %s", path)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// An in-memory database exists per connection, so the pool
		// must not grow past one.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	var journalMode string
	if err := sqlDB.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
		log.Printf("Warning: Failed to enable WAL mode: %v", err)
	} else {
		log.Printf("Database journal mode: %s", journalMode)
	}

	sqlDB.Exec("PRAGMA synchronous = NORMAL")
	sqlDB.Exec("PRAGMA busy_timeout = 5000")
	sqlDB.Exec("PRAGMA foreign_keys = ON")

	db := &DB{db: sqlDB, opts: opts}
	if err := db.CreateDB(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// wrapTransaction runs the given function within a transaction.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("error starting transaction: %s", err)
		return domain.StoreErrf("begin transaction: %s", err)
	}
	for {
		err = f(tx)
		if err != nil {
			serr, ok := err.(*sqlite.Error)
			if ok && serr.Code() == sqlitelib.SQLITE_BUSY {
				continue
			}
			tx.Rollback()
			return err
		}
		err = tx.Commit()
		if err != nil {
			log.Printf("error committing transaction: %s", err)
			return domain.StoreErrf("commit transaction: %s", err)
		}
		break
	}
	return nil
}

// storeErr maps raw database failures to the store error kind. Errors
// that already carry a kind pass through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrConflict, domain.ErrOutOfRange, domain.ErrStore} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return domain.StoreErrf("%s: %s", op, err)
}
