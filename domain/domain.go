package domain

import "github.com/google/uuid"

// MaxTweetLen is the upper bound for tweet text, replies included.
const MaxTweetLen = 280

// User is an account row. Usr is a numeric id stored as text,
// assigned sequentially at registration. The password hash stays in
// the db/auth layers and is not part of the profile.
type User struct {
	Usr   string
	Name  string
	Email string
	Phone string
}

// Follow is a directed edge: Flwer follows Flwee.
type Follow struct {
	Id        uuid.UUID
	Flwer     string
	Flwee     string
	StartDate string
}

// FollowerEntry is one row of a followers listing, joined with the
// follower's profile.
type FollowerEntry struct {
	Usr       string
	Name      string
	StartDate string
}

type Tweet struct {
	Tid      int64
	WriterId string
	Text     string
	Tdate    string
	Ttime    string
	// ReplyTo is nil for top-level tweets.
	ReplyTo *int64
}

// Retweet references an existing tweet. WriterId is copied from the
// original tweet at creation so feed queries avoid an extra join.
type Retweet struct {
	Id          uuid.UUID
	Tid         int64
	RetweeterId string
	WriterId    string
	Spam        bool
	Rdate       string
}

type HashtagMention struct {
	Tid  int64
	Term string
}

type FavoriteList struct {
	OwnerId string
	Lname   string
}

// FeedItem is one renderable row of a merged feed. For retweets,
// Date is the retweet date and Time the original tweet's time.
type FeedItem struct {
	Kind      string // "tweet" or "retweet"
	Tid       int64
	WriterId  string
	Retweeter string
	Text      string
	Date      string
	Time      string
	Spam      bool
}

const (
	KindTweet   = "tweet"
	KindRetweet = "retweet"
)

// IsRetweet reports whether the item entered the feed through a
// retweet rather than as an original post.
func (f FeedItem) IsRetweet() bool {
	return f.Kind == KindRetweet
}

// TweetStats are the counters shown on a tweet's detail view.
// Retweets counts non-spam retweets only.
type TweetStats struct {
	Tid      int64
	Retweets int
	Replies  int
}

// UserStats are the counters shown on a profile.
type UserStats struct {
	Usr       string
	Tweets    int
	Following int
	Followers int
}
