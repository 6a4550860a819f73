package db

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/util"
)

const (
	sqlMaxUsr         = `SELECT COALESCE(MAX(CAST(usr AS INTEGER)), 0) FROM users`
	sqlMaxTid         = `SELECT COALESCE(MAX(tid), 0) FROM tweets`
	sqlInsertUser     = `INSERT INTO users(usr, name, email, phone, pwd) VALUES (?, ?, ?, ?, ?)`
	sqlInsertTweet    = `INSERT INTO tweets(tid, writer_id, text, tdate, ttime, replyto_tid) VALUES (?, ?, ?, ?, ?, ?)`
	sqlInsertHashtag  = `INSERT INTO hashtag_mentions(tid, term) VALUES (?, ?)`
	sqlInsertFollow   = `INSERT INTO follows(id, flwer, flwee, start_date) VALUES (?, ?, ?, ?)`
	sqlInsertRetweet  = `INSERT INTO retweets(id, tid, retweeter_id, writer_id, spam, rdate) VALUES (?, ?, ?, ?, ?, ?)`
	sqlInsertList     = `INSERT INTO lists(owner_id, lname) VALUES (?, ?)`
	sqlInsertInclude  = `INSERT INTO include(owner_id, lname, tid) VALUES (?, ?, ?)`
	sqlCountFollowRow = `SELECT COUNT(*) FROM follows WHERE flwer = ? AND flwee = ?`
	sqlCountRetweet   = `SELECT COUNT(*) FROM retweets WHERE tid = ? AND retweeter_id = ?`
	sqlCountList      = `SELECT COUNT(*) FROM lists WHERE owner_id = ? AND lname = ?`
	sqlCountInclude   = `SELECT COUNT(*) FROM include WHERE owner_id = ? AND lname = ? AND tid = ?`
	sqlCountEmailTx   = `SELECT COUNT(*) FROM users WHERE email = ?`
	sqlCountUsrTx     = `SELECT COUNT(*) FROM users WHERE usr = ?`
	sqlSelectWriterTx = `SELECT writer_id FROM tweets WHERE tid = ?`
)

// CreateUser registers an account and returns its sequentially
// allocated usr. pwdHash must already be a bcrypt hash; input
// validation happens in the auth layer.
func (db *DB) CreateUser(name, email, phone, pwdHash string) (string, error) {
	var usr string
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(sqlCountEmailTx, email).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflictf("email %s already registered", email)
		}

		var maxUsr int64
		if err := tx.QueryRow(sqlMaxUsr).Scan(&maxUsr); err != nil {
			return err
		}
		usr = strconv.FormatInt(maxUsr+1, 10)

		_, err := tx.Exec(sqlInsertUser, usr, name, email, phone, pwdHash)
		return err
	})
	if err != nil {
		return "", storeErr("create user", err)
	}
	return usr, nil
}

// CreateTweet posts a new top-level tweet and returns its tid. The
// tweet's hashtags are extracted and stored in the same transaction.
func (db *DB) CreateTweet(author, text string) (int64, error) {
	return db.createTweet(author, text, nil)
}

// CreateReply posts a reply to target. Fails NotFound when the target
// tweet does not exist.
func (db *DB) CreateReply(author string, target int64, text string) (int64, error) {
	return db.createTweet(author, text, &target)
}

func (db *DB) createTweet(author, text string, replyTo *int64) (int64, error) {
	if ok, msg := util.IsValidTweetText(text); !ok {
		return 0, domain.InvalidInputf("%s", msg)
	}

	var tid int64
	now := time.Now()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		if replyTo != nil {
			var writer string
			err := tx.QueryRow(sqlSelectWriterTx, *replyTo).Scan(&writer)
			if err == sql.ErrNoRows {
				return domain.NotFoundf("tweet %d", *replyTo)
			}
			if err != nil {
				return err
			}
		}

		var maxTid int64
		if err := tx.QueryRow(sqlMaxTid).Scan(&maxTid); err != nil {
			return err
		}
		tid = maxTid + 1

		var replyArg any
		if replyTo != nil {
			replyArg = *replyTo
		}
		_, err := tx.Exec(sqlInsertTweet, tid, author, text,
			util.FormattedDate(now), util.FormattedTime(now), replyArg)
		if err != nil {
			return err
		}

		for _, term := range util.ExtractHashtags(text) {
			if _, err := tx.Exec(sqlInsertHashtag, tid, term); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("create tweet", err)
	}
	return tid, nil
}

// CreateFollow adds the edge flwer -> flwee. Duplicate edges are a
// Conflict; a missing flwee is NotFound; self-follow is rejected
// unless the store allows it.
func (db *DB) CreateFollow(flwer, flwee string) error {
	if flwer == flwee && !db.opts.AllowSelfFollow {
		return domain.InvalidInputf("cannot follow yourself")
	}

	now := time.Now()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(sqlCountUsrTx, flwee).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return domain.NotFoundf("user %s", flwee)
		}

		if err := tx.QueryRow(sqlCountFollowRow, flwer, flwee).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflictf("already following %s", flwee)
		}

		_, err := tx.Exec(sqlInsertFollow, uuid.New(), flwer, flwee, util.FormattedDate(now))
		return err
	})
	return storeErr("create follow", err)
}

// CreateRetweet records that retweeter shared tweet tid. The original
// author is copied onto the row and the spam classifier decides the
// flag. A flagged retweet is still stored.
func (db *DB) CreateRetweet(tid int64, retweeter string) error {
	now := time.Now()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		var writer string
		err := tx.QueryRow(sqlSelectWriterTx, tid).Scan(&writer)
		if err == sql.ErrNoRows {
			return domain.NotFoundf("tweet %d", tid)
		}
		if err != nil {
			return err
		}

		if writer == retweeter && !db.opts.AllowSelfRetweet {
			return domain.InvalidInputf("cannot retweet your own tweet")
		}

		var count int
		if err := tx.QueryRow(sqlCountRetweet, tid, retweeter).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflictf("already retweeted tweet %d", tid)
		}

		spam := 0
		if db.opts.Spam != nil {
			flagged, err := db.opts.Spam(tx, retweeter, writer, now)
			if err != nil {
				return err
			}
			if flagged {
				spam = 1
			}
		}

		_, err = tx.Exec(sqlInsertRetweet, uuid.New(), tid, retweeter, writer, spam, util.FormattedDate(now))
		return err
	})
	return storeErr("create retweet", err)
}

// CreateList creates an empty favorite list for the owner.
func (db *DB) CreateList(owner, lname string) error {
	if strings.TrimSpace(lname) == "" {
		return domain.InvalidInputf("list name must not be empty")
	}

	err := db.wrapTransaction(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(sqlCountList, owner, lname).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflictf("list %s already exists", lname)
		}
		_, err := tx.Exec(sqlInsertList, owner, lname)
		return err
	})
	return storeErr("create list", err)
}

// AddToList saves a tweet to one of the owner's favorite lists.
func (db *DB) AddToList(owner, lname string, tid int64) error {
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(sqlCountList, owner, lname).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return domain.NotFoundf("list %s", lname)
		}

		var writer string
		err := tx.QueryRow(sqlSelectWriterTx, tid).Scan(&writer)
		if err == sql.ErrNoRows {
			return domain.NotFoundf("tweet %d", tid)
		}
		if err != nil {
			return err
		}

		if err := tx.QueryRow(sqlCountInclude, owner, lname, tid).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflictf("tweet %d already in list %s", tid, lname)
		}

		_, err = tx.Exec(sqlInsertInclude, owner, lname, tid)
		return err
	})
	return storeErr("add to list", err)
}
