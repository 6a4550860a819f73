// Package session holds the per-connection state machine and the
// query facade the views talk to. One Session serves exactly one
// authenticated user at a time.
package session

import (
	"errors"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
)

// State is the coarse position of the session. Every state accepts
// Cancel; a store failure during any operation lands in MainMenu.
type State int

const (
	LoggedOut State = iota
	MainMenu
	Browsing
	ItemDetail
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case MainMenu:
		return "main-menu"
	case Browsing:
		return "browsing"
	case ItemDetail:
		return "item-detail"
	}
	return "unknown"
}

type Session struct {
	store *db.DB
	user  string
	state State
}

func New(store *db.DB) *Session {
	return &Session{store: store, state: LoggedOut}
}

func (s *Session) State() State { return s.state }
func (s *Session) User() string { return s.user }

// Begin binds an already-authenticated user to the session and moves
// it to the main menu.
func (s *Session) Begin(usr string) error {
	if usr == "" {
		return domain.InvalidInputf("empty user id")
	}
	s.user = usr
	s.state = MainMenu
	return nil
}

// Logout drops the user from any state.
func (s *Session) Logout() {
	s.user = ""
	s.state = LoggedOut
}

// Cancel backs out one level: detail to browsing, browsing to the
// main menu. In MainMenu and LoggedOut it is a no-op; quitting the
// process is the caller's decision.
func (s *Session) Cancel() {
	switch s.state {
	case ItemDetail:
		s.state = Browsing
	case Browsing:
		s.state = MainMenu
	}
}

// Enter marks that the user opened an item from a browse page.
func (s *Session) Enter() {
	if s.state == Browsing {
		s.state = ItemDetail
	}
}

// Back returns from an item detail to its browse page.
func (s *Session) Back() {
	if s.state == ItemDetail {
		s.state = Browsing
	}
}

// fail applies the error policy: store failures abort the current
// flow and land in the main menu, everything else leaves the state
// alone so the user can correct the input.
func (s *Session) fail(err error) error {
	if errors.Is(err, domain.ErrStore) && s.state != LoggedOut {
		s.state = MainMenu
	}
	return err
}

func (s *Session) requireUser() error {
	if s.user == "" {
		return domain.InvalidInputf("not logged in")
	}
	return nil
}

// Timeline opens a cursor over the user's home feed and moves the
// session to Browsing.
func (s *Session) Timeline() (paginate.Cursor[domain.FeedItem], error) {
	return s.browseFeed(func(offset, limit int) ([]domain.FeedItem, error) {
		err, items := s.store.ReadTimeline(s.user, offset, limit)
		if err != nil {
			return nil, err
		}
		return *items, nil
	})
}

// SearchTweets opens a cursor over tweets matching the terms.
func (s *Session) SearchTweets(terms []string) (paginate.Cursor[domain.FeedItem], error) {
	if len(terms) == 0 {
		return paginate.Cursor[domain.FeedItem]{}, s.fail(domain.InvalidInputf("no search terms given"))
	}
	return s.browseFeed(func(offset, limit int) ([]domain.FeedItem, error) {
		err, items := s.store.ReadTweetSearch(terms, offset, limit)
		if err != nil {
			return nil, err
		}
		return *items, nil
	})
}

// ListContents opens a cursor over one of the user's favorite lists.
func (s *Session) ListContents(lname string) (paginate.Cursor[domain.FeedItem], error) {
	return s.browseFeed(func(offset, limit int) ([]domain.FeedItem, error) {
		err, items := s.store.ReadListContents(s.user, lname, offset, limit)
		if err != nil {
			return nil, err
		}
		return *items, nil
	})
}

// RecentByUser opens a cursor over another user's own posts.
func (s *Session) RecentByUser(usr string) (paginate.Cursor[domain.FeedItem], error) {
	return s.browseFeed(func(offset, limit int) ([]domain.FeedItem, error) {
		err, items := s.store.ReadRecentByUser(usr, offset, limit)
		if err != nil {
			return nil, err
		}
		return *items, nil
	})
}

// SearchUsers opens a cursor over users whose name matches keyword.
func (s *Session) SearchUsers(keyword string) (paginate.Cursor[domain.User], error) {
	var cur paginate.Cursor[domain.User]
	if err := s.requireUser(); err != nil {
		return cur, err
	}
	if keyword == "" {
		return cur, s.fail(domain.InvalidInputf("no search keyword given"))
	}
	cur = paginate.New(func(offset, limit int) ([]domain.User, error) {
		err, users := s.store.ReadUserSearch(keyword, offset, limit)
		if err != nil {
			return nil, err
		}
		return *users, nil
	}, paginate.DefaultPageSize)
	if _, err := cur.Page(); err != nil {
		return cur, s.fail(err)
	}
	s.state = Browsing
	return cur, nil
}

// Followers opens a cursor over the users following the session user.
func (s *Session) Followers() (paginate.Cursor[domain.FollowerEntry], error) {
	var cur paginate.Cursor[domain.FollowerEntry]
	if err := s.requireUser(); err != nil {
		return cur, err
	}
	cur = paginate.New(func(offset, limit int) ([]domain.FollowerEntry, error) {
		err, entries := s.store.ReadFollowers(s.user, offset, limit)
		if err != nil {
			return nil, err
		}
		return *entries, nil
	}, paginate.DefaultPageSize)
	if _, err := cur.Page(); err != nil {
		return cur, s.fail(err)
	}
	s.state = Browsing
	return cur, nil
}

func (s *Session) browseFeed(src paginate.Source[domain.FeedItem]) (paginate.Cursor[domain.FeedItem], error) {
	var cur paginate.Cursor[domain.FeedItem]
	if err := s.requireUser(); err != nil {
		return cur, err
	}
	cur = paginate.New(src, paginate.DefaultPageSize)
	// Probe the first page so input errors surface before the view
	// switches to browsing.
	if _, err := cur.Page(); err != nil {
		return cur, s.fail(err)
	}
	s.state = Browsing
	return cur, nil
}

// FavoriteLists returns the names of the user's favorite lists.
func (s *Session) FavoriteLists() ([]string, error) {
	if err := s.requireUser(); err != nil {
		return nil, err
	}
	err, names := s.store.ReadFavoriteLists(s.user)
	if err != nil {
		return nil, s.fail(err)
	}
	return *names, nil
}

// Compose posts a new tweet as the session user.
func (s *Session) Compose(text string) (int64, error) {
	if err := s.requireUser(); err != nil {
		return 0, err
	}
	tid, err := s.store.CreateTweet(s.user, text)
	if err != nil {
		return 0, s.fail(err)
	}
	return tid, nil
}

// Reply posts a reply to target as the session user.
func (s *Session) Reply(target int64, text string) (int64, error) {
	if err := s.requireUser(); err != nil {
		return 0, err
	}
	tid, err := s.store.CreateReply(s.user, target, text)
	if err != nil {
		return 0, s.fail(err)
	}
	return tid, nil
}

// Retweet shares the given tweet as the session user.
func (s *Session) Retweet(tid int64) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	return s.fail(s.store.CreateRetweet(tid, s.user))
}

// Follow adds a follow edge from the session user.
func (s *Session) Follow(flwee string) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	return s.fail(s.store.CreateFollow(s.user, flwee))
}

// CreateList creates a new favorite list for the session user.
func (s *Session) CreateList(lname string) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	return s.fail(s.store.CreateList(s.user, lname))
}

// AddToList saves a tweet into one of the user's favorite lists.
func (s *Session) AddToList(lname string, tid int64) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	return s.fail(s.store.AddToList(s.user, lname, tid))
}

// TweetStats returns the counters for a tweet's detail view.
func (s *Session) TweetStats(tid int64) (*domain.TweetStats, error) {
	err, stats := s.store.ReadTweetStats(tid)
	if err != nil {
		return nil, s.fail(err)
	}
	return stats, nil
}

// UserStats returns the counters for a profile view.
func (s *Session) UserStats(usr string) (*domain.UserStats, error) {
	err, stats := s.store.ReadUserStats(usr)
	if err != nil {
		return nil, s.fail(err)
	}
	return stats, nil
}
