package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mkeen/dodo/domain"
)

const (
	// Feed queries. Retweets enter merged feeds with the retweet date
	// as their effective date and the original tweet's time of day;
	// ties break on tid descending so paging stays stable.
	sqlSelectTimelineFmt = `SELECT kind, tid, writer_id, retweeter, text, edate, etime, spam FROM (
                            SELECT 'tweet' AS kind, t.tid, t.writer_id, t.writer_id AS retweeter, t.text, t.tdate AS edate, t.ttime AS etime, 0 AS spam
                            FROM tweets t
                            WHERE t.writer_id IN (SELECT flwee FROM follows WHERE flwer = ?)%s
                            UNION ALL
                            SELECT 'retweet', t.tid, t.writer_id, r.retweeter_id, t.text, r.rdate, t.ttime, r.spam
                            FROM retweets r
                            INNER JOIN tweets t ON t.tid = r.tid
                            WHERE r.spam = 0 AND r.retweeter_id IN (SELECT flwee FROM follows WHERE flwer = ?)%s
                            ) ORDER BY edate DESC, etime DESC, tid DESC LIMIT ? OFFSET ?`

	sqlSelectRecentByUser = `SELECT kind, tid, writer_id, retweeter, text, edate, etime, spam FROM (
                            SELECT 'tweet' AS kind, t.tid, t.writer_id, t.writer_id AS retweeter, t.text, t.tdate AS edate, t.ttime AS etime, 0 AS spam
                            FROM tweets t
                            WHERE t.writer_id = ?
                            UNION ALL
                            SELECT 'retweet', t.tid, t.writer_id, r.retweeter_id, t.text, r.rdate, t.ttime, r.spam
                            FROM retweets r
                            INNER JOIN tweets t ON t.tid = r.tid
                            WHERE r.spam = 0 AND r.retweeter_id = ?
                            ) ORDER BY edate DESC, etime DESC, tid DESC LIMIT ? OFFSET ?`

	sqlSelectTweetsFmt = `SELECT 'tweet', t.tid, t.writer_id, t.writer_id, t.text, t.tdate, t.ttime, 0
                            FROM tweets t
                            WHERE %s
                            ORDER BY t.tdate DESC, t.ttime DESC, t.tid DESC LIMIT ? OFFSET ?`

	sqlSelectListContents = `SELECT 'tweet', t.tid, t.writer_id, t.writer_id, t.text, t.tdate, t.ttime, 0
                            FROM include i
                            INNER JOIN tweets t ON t.tid = i.tid
                            WHERE i.owner_id = ? AND i.lname = ?
                            ORDER BY t.tdate DESC, t.ttime DESC, t.tid DESC LIMIT ? OFFSET ?`

	// Users. Name search favors the shortest (closest) match first.
	sqlSelectUsersByName = `SELECT usr, name, email, phone FROM users
                            WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
                            ORDER BY LENGTH(name) ASC, usr ASC LIMIT ? OFFSET ?`
	sqlSelectUserByUsr = `SELECT usr, name, email, phone FROM users WHERE usr = ?`
	sqlSelectPwdByUsr  = `SELECT pwd FROM users WHERE usr = ?`
	sqlCountUserEmail  = `SELECT COUNT(*) FROM users WHERE email = ?`

	sqlSelectFollowers = `SELECT f.flwer, u.name, f.start_date FROM follows f
                            INNER JOIN users u ON u.usr = f.flwer
                            WHERE f.flwee = ?
                            ORDER BY f.start_date DESC, f.flwer ASC LIMIT ? OFFSET ?`

	sqlSelectTweetByTid = `SELECT tid, writer_id, text, tdate, ttime, replyto_tid FROM tweets WHERE tid = ?`
	sqlSelectListNames  = `SELECT lname FROM lists WHERE owner_id = ? ORDER BY lname ASC`

	// Counters
	sqlCountRetweetsOfTweet = `SELECT COUNT(*) FROM retweets WHERE tid = ? AND spam = 0`
	sqlCountRepliesToTweet  = `SELECT COUNT(*) FROM tweets WHERE replyto_tid = ?`
	sqlCountTweetsByUser    = `SELECT COUNT(*) FROM tweets WHERE writer_id = ?`
	sqlCountFollowing       = `SELECT COUNT(*) FROM follows WHERE flwer = ?`
	sqlCountFollowers       = `SELECT COUNT(*) FROM follows WHERE flwee = ?`
)

// ReadTimeline returns one window of usr's home feed: tweets and
// non-spam retweets of the users usr follows, newest first. An empty
// follow set yields an empty slice, not an error.
func (db *DB) ReadTimeline(usr string, offset, limit int) (error, *[]domain.FeedItem) {
	selfTweets, selfRetweets := "", ""
	args := []any{usr}
	if db.opts.TimelineIncludeSelf {
		selfTweets = ` OR t.writer_id = ?`
		args = append(args, usr)
	}
	args = append(args, usr)
	if db.opts.TimelineIncludeSelf {
		selfRetweets = ` OR r.retweeter_id = ?`
		args = append(args, usr)
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(sqlSelectTimelineFmt, selfTweets, selfRetweets)
	return db.readFeedItems(query, args...)
}

// ReadTweetSearch returns tweets matching any of the given terms,
// case-insensitively. A bare term matches the text as a substring or
// the equivalent hashtag; a '#'-prefixed term matches hashtags only.
func (db *DB) ReadTweetSearch(terms []string, offset, limit int) (error, *[]domain.FeedItem) {
	clauses := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2+2)
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.HasPrefix(term, "#") {
			clauses = append(clauses, `EXISTS (SELECT 1 FROM hashtag_mentions h WHERE h.tid = t.tid AND LOWER(h.term) = LOWER(?))`)
			args = append(args, term)
		} else {
			clauses = append(clauses, `(LOWER(t.text) LIKE '%' || LOWER(?) || '%' OR EXISTS (SELECT 1 FROM hashtag_mentions h WHERE h.tid = t.tid AND LOWER(h.term) = LOWER(?)))`)
			args = append(args, term, "#"+term)
		}
	}
	if len(clauses) == 0 {
		return domain.InvalidInputf("no search terms given"), nil
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(sqlSelectTweetsFmt, strings.Join(clauses, " OR "))
	return db.readFeedItems(query, args...)
}

// ReadUserSearch returns users whose name contains the keyword,
// shortest names first.
func (db *DB) ReadUserSearch(keyword string, offset, limit int) (error, *[]domain.User) {
	if strings.TrimSpace(keyword) == "" {
		return domain.InvalidInputf("no search keyword given"), nil
	}

	rows, err := db.db.Query(sqlSelectUsersByName, keyword, limit, offset)
	if err != nil {
		return storeErr("search users", err), nil
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Usr, &u.Name, &u.Email, &u.Phone); err != nil {
			return storeErr("scan user", err), nil
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return storeErr("search users", err), nil
	}
	return nil, &users
}

// ReadFollowers returns one window of usr's followers, most recent
// edge first.
func (db *DB) ReadFollowers(usr string, offset, limit int) (error, *[]domain.FollowerEntry) {
	rows, err := db.db.Query(sqlSelectFollowers, usr, limit, offset)
	if err != nil {
		return storeErr("read followers", err), nil
	}
	defer rows.Close()

	var entries []domain.FollowerEntry
	for rows.Next() {
		var e domain.FollowerEntry
		if err := rows.Scan(&e.Usr, &e.Name, &e.StartDate); err != nil {
			return storeErr("scan follower", err), nil
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return storeErr("read followers", err), nil
	}
	return nil, &entries
}

// ReadListContents returns one window of the tweets saved to the
// owner's favorite list, newest first.
func (db *DB) ReadListContents(owner, lname string, offset, limit int) (error, *[]domain.FeedItem) {
	if strings.TrimSpace(lname) == "" {
		return domain.InvalidInputf("no list name given"), nil
	}
	return db.readFeedItems(sqlSelectListContents, owner, lname, limit, offset)
}

// ReadRecentByUser returns the user's own latest tweets and non-spam
// retweets, merged newest first.
func (db *DB) ReadRecentByUser(usr string, offset, limit int) (error, *[]domain.FeedItem) {
	return db.readFeedItems(sqlSelectRecentByUser, usr, usr, limit, offset)
}

func (db *DB) ReadFavoriteLists(owner string) (error, *[]string) {
	rows, err := db.db.Query(sqlSelectListNames, owner)
	if err != nil {
		return storeErr("read lists", err), nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return storeErr("scan list name", err), nil
		}
		names = append(names, n)
	}
	if err = rows.Err(); err != nil {
		return storeErr("read lists", err), nil
	}
	return nil, &names
}

func (db *DB) ReadTweet(tid int64) (error, *domain.Tweet) {
	var t domain.Tweet
	var replyTo sql.NullInt64
	err := db.db.QueryRow(sqlSelectTweetByTid, tid).Scan(&t.Tid, &t.WriterId, &t.Text, &t.Tdate, &t.Ttime, &replyTo)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("tweet %d", tid), nil
	}
	if err != nil {
		return storeErr("read tweet", err), nil
	}
	if replyTo.Valid {
		t.ReplyTo = &replyTo.Int64
	}
	return nil, &t
}

func (db *DB) ReadUser(usr string) (error, *domain.User) {
	var u domain.User
	err := db.db.QueryRow(sqlSelectUserByUsr, usr).Scan(&u.Usr, &u.Name, &u.Email, &u.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("user %s", usr), nil
	}
	if err != nil {
		return storeErr("read user", err), nil
	}
	return nil, &u
}

// ReadPasswordHash returns the stored bcrypt hash for usr.
func (db *DB) ReadPasswordHash(usr string) (error, *string) {
	var pwd string
	err := db.db.QueryRow(sqlSelectPwdByUsr, usr).Scan(&pwd)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("user %s", usr), nil
	}
	if err != nil {
		return storeErr("read password", err), nil
	}
	return nil, &pwd
}

func (db *DB) EmailRegistered(email string) (error, bool) {
	var count int
	if err := db.db.QueryRow(sqlCountUserEmail, email).Scan(&count); err != nil {
		return storeErr("count email", err), false
	}
	return nil, count > 0
}

func (db *DB) ReadTweetStats(tid int64) (error, *domain.TweetStats) {
	err, _ := db.ReadTweet(tid)
	if err != nil {
		return err, nil
	}
	stats := domain.TweetStats{Tid: tid}
	if err := db.db.QueryRow(sqlCountRetweetsOfTweet, tid).Scan(&stats.Retweets); err != nil {
		return storeErr("count retweets", err), nil
	}
	if err := db.db.QueryRow(sqlCountRepliesToTweet, tid).Scan(&stats.Replies); err != nil {
		return storeErr("count replies", err), nil
	}
	return nil, &stats
}

func (db *DB) ReadUserStats(usr string) (error, *domain.UserStats) {
	err, _ := db.ReadUser(usr)
	if err != nil {
		return err, nil
	}
	stats := domain.UserStats{Usr: usr}
	if err := db.db.QueryRow(sqlCountTweetsByUser, usr).Scan(&stats.Tweets); err != nil {
		return storeErr("count tweets", err), nil
	}
	if err := db.db.QueryRow(sqlCountFollowing, usr).Scan(&stats.Following); err != nil {
		return storeErr("count following", err), nil
	}
	if err := db.db.QueryRow(sqlCountFollowers, usr).Scan(&stats.Followers); err != nil {
		return storeErr("count followers", err), nil
	}
	return nil, &stats
}

func (db *DB) readFeedItems(query string, args ...any) (error, *[]domain.FeedItem) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return storeErr("read feed", err), nil
	}
	defer rows.Close()

	var items []domain.FeedItem
	for rows.Next() {
		var item domain.FeedItem
		var spam int
		if err := rows.Scan(&item.Kind, &item.Tid, &item.WriterId, &item.Retweeter, &item.Text, &item.Date, &item.Time, &spam); err != nil {
			return storeErr("scan feed item", err), nil
		}
		item.Spam = spam != 0
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return storeErr("read feed", err), nil
	}
	return nil, &items
}
