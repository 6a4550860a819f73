package web

import (
	"log"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"golang.org/x/time/rate"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/util"
)

// Router builds the read-only HTTP surface: public profiles, tweet
// search and RSS feeds. All writes go through the TUI.
func Router(store *db.DB, conf *util.AppConfig) (*gin.Engine, error) {
	log.Printf("Starting HTTP server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)

	gin.SetMode(gin.ReleaseMode)
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))
	g.Use(MaxBytesMiddleware(1 << 20))

	g.GET("/u/:usr", func(c *gin.Context) {
		HandleProfile(c, store)
	})

	g.GET("/u/:usr/tweets", func(c *gin.Context) {
		HandleUserTweets(c, store)
	})

	g.GET("/search", func(c *gin.Context) {
		HandleSearch(c, store)
	})

	// RSS Feed
	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		usr := c.Query("usr")
		rss, err := GetRSS(store, conf, usr)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	return g, nil
}
