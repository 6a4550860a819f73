package web

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/util"
)

const rssItemLimit = 25

// GetRSS renders a user's recent posts as an RSS feed.
func GetRSS(store *db.DB, conf *util.AppConfig, usr string) (string, error) {
	err, user := store.ReadUser(usr)
	if err != nil {
		return "", err
	}

	err, items := store.ReadRecentByUser(usr, 0, rssItemLimit)
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("http://%s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s (@%s)", user.Name, user.Usr),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/u/%s", base, user.Usr)},
		Description: fmt.Sprintf("Posts by %s", user.Name),
		Created:     time.Now(),
	}

	for _, item := range *items {
		title := item.Text
		if item.IsRetweet() {
			title = fmt.Sprintf("RT @%s: %s", item.WriterId, item.Text)
		}
		created, _ := time.Parse(util.DateLayout+" "+util.TimeLayout, item.Date+" "+item.Time)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/tweets/%d", base, item.Tid),
			Title:       util.TruncateDisplay(title, 80),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/u/%s", base, item.WriterId)},
			Description: item.Text,
			Author:      &feeds.Author{Name: "@" + item.WriterId},
			Created:     created,
		})
	}

	return feed.ToRss()
}
