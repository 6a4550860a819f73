package db

import (
	"database/sql"
	"time"

	"github.com/mkeen/dodo/util"
)

// SpamClassifier decides the spam flag of a retweet being created.
// It runs inside the retweet's transaction; the retweet itself is not
// visible to it yet.
type SpamClassifier func(tx *sql.Tx, retweeter, writer string, now time.Time) (bool, error)

const sqlCountRecentRetweetsOfAuthor = `SELECT COUNT(*) FROM retweets
                            WHERE retweeter_id = ? AND writer_id = ? AND rdate >= ?`

// WindowSpamClassifier flags a retweet when the retweeter already has
// maxPerAuthor or more retweets of the same author within the
// trailing window.
func WindowSpamClassifier(maxPerAuthor int, window time.Duration) SpamClassifier {
	return func(tx *sql.Tx, retweeter, writer string, now time.Time) (bool, error) {
		cutoff := util.FormattedDate(now.Add(-window))
		var count int
		if err := tx.QueryRow(sqlCountRecentRetweetsOfAuthor, retweeter, writer, cutoff).Scan(&count); err != nil {
			return false, err
		}
		return count >= maxPerAuthor, nil
	}
}
