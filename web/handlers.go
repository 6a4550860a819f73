package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/util"
)

const defaultPageLimit = 20

// ParsePageParam parses a 1-based page query parameter, defaulting to
// the first page.
func ParsePageParam(pageStr string) int {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pageWindow(c *gin.Context) (offset, limit int) {
	page := ParsePageParam(c.Query("page"))
	return (page - 1) * defaultPageLimit, defaultPageLimit
}

type feedItemJSON struct {
	Kind      string `json:"kind"`
	Tid       int64  `json:"tid"`
	Writer    string `json:"writer"`
	Retweeter string `json:"retweeter,omitempty"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

func toFeedJSON(items []domain.FeedItem) []feedItemJSON {
	out := make([]feedItemJSON, 0, len(items))
	for _, item := range items {
		j := feedItemJSON{
			Kind:   item.Kind,
			Tid:    item.Tid,
			Writer: item.WriterId,
			Text:   item.Text,
			Date:   item.Date,
			Time:   item.Time,
		}
		if item.IsRetweet() {
			j.Retweeter = item.Retweeter
		}
		out = append(out, j)
	}
	return out
}

// HandleProfile serves a public profile with its counters.
func HandleProfile(c *gin.Context, store *db.DB) {
	usr := c.Param("usr")
	err, user := store.ReadUser(usr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	err, stats := store.ReadUserStats(usr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"usr":       user.Usr,
		"name":      user.Name,
		"tweets":    stats.Tweets,
		"following": stats.Following,
		"followers": stats.Followers,
	})
}

// HandleUserTweets serves a user's recent tweets and retweets.
func HandleUserTweets(c *gin.Context, store *db.DB) {
	usr := c.Param("usr")
	if err, _ := store.ReadUser(usr); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	offset, limit := pageWindow(c)
	err, items := store.ReadRecentByUser(usr, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feed unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usr": usr, "items": toFeedJSON(*items)})
}

// HandleSearch serves a public tweet search. Terms come as a
// comma-separated q parameter.
func HandleSearch(c *gin.Context, store *db.DB) {
	terms := util.SplitTerms(c.Query("q"))
	if len(terms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q parameter"})
		return
	}
	offset, limit := pageWindow(c)
	err, items := store.ReadTweetSearch(terms, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"terms": terms, "items": toFeedJSON(*items)})
}
