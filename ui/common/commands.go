package common

import (
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
)

type SessionState uint

const (
	LoginView         SessionState = iota
	ComposeView                    // Write a tweet or reply
	TweetsView                     // Browse a page of feed items (timeline, search, list)
	SearchTweetsView               // Keyword entry for tweet search
	SearchUsersView                // Keyword entry for user search
	UsersView                      // Browse user search results
	FollowersView                  // View who follows you
	FavListsView                   // Manage favorite lists
	TweetDetailView                // Single tweet with stats and actions
)

// LoggedInMsg is sent when login or registration succeeds
type LoggedInMsg struct {
	User domain.User
}

// BrowseTweetsMsg switches to the tweets view with a fresh cursor
type BrowseTweetsMsg struct {
	Title  string
	Cursor paginate.Cursor[domain.FeedItem]
}

// BrowseUsersMsg switches to the users view with a fresh cursor
type BrowseUsersMsg struct {
	Title  string
	Cursor paginate.Cursor[domain.User]
}

// ViewTweetMsg is sent when user presses Enter on a feed item
type ViewTweetMsg struct {
	Item domain.FeedItem
}

// ReplyToTweetMsg is sent when user presses 'r' on a tweet detail
type ReplyToTweetMsg struct {
	Tid     int64
	Preview string
}

// TweetPostedMsg is sent after a successful compose or reply
type TweetPostedMsg struct {
	Tid int64
}

// StatusMsg carries a transient footer message
type StatusMsg struct {
	Text  string
	IsErr bool
}
