package tweets

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
	"github.com/mkeen/dodo/util"
)

// Model browses any paged feed: the timeline, search results, another
// user's posts or a favorite list. The cursor decides what it shows.
type Model struct {
	Sess     *session.Session
	Title    string
	Cursor   paginate.Cursor[domain.FeedItem]
	Page     paginate.Page[domain.FeedItem]
	Selected int
	Loaded   bool
	Error    string
	Width    int
	Height   int
}

func InitialModel(sess *session.Session, width, height int) Model {
	return Model{Sess: sess, Width: width, Height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type pageLoadedMsg struct {
	cursor paginate.Cursor[domain.FeedItem]
	page   paginate.Page[domain.FeedItem]
	err    error
}

func loadPage(cursor paginate.Cursor[domain.FeedItem]) tea.Cmd {
	return func() tea.Msg {
		page, err := cursor.Page()
		if err != nil {
			log.Printf("Failed to load feed page: %v", err)
		}
		return pageLoadedMsg{cursor: cursor, page: page, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.BrowseTweetsMsg:
		m.Title = msg.Title
		m.Cursor = msg.Cursor
		m.Selected = 0
		m.Loaded = false
		m.Error = ""
		return m, loadPage(msg.Cursor)

	case pageLoadedMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Cursor = msg.cursor
		m.Page = msg.page
		m.Loaded = true
		m.Error = ""
		if m.Selected >= len(m.Page.Items) {
			m.Selected = 0
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Loaded {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < len(m.Page.Items)-1 {
				m.Selected++
			}
		case "n", "right", "l":
			if m.Page.HasNext {
				m.Cursor = m.Cursor.Next(m.Page)
				m.Selected = 0
				return m, loadPage(m.Cursor)
			}
		case "p", "left", "h":
			if m.Page.HasPrev {
				m.Cursor = m.Cursor.Prev()
				m.Selected = 0
				return m, loadPage(m.Cursor)
			}
		case "1", "2", "3", "4", "5":
			n := int(msg.String()[0] - '0')
			item, err := m.Page.Select(n)
			if err != nil {
				m.Error = err.Error()
				return m, nil
			}
			m.Sess.Enter()
			return m, func() tea.Msg { return common.ViewTweetMsg{Item: item} }
		case "enter":
			item, err := m.Page.Select(m.Selected + 1)
			if err != nil {
				m.Error = err.Error()
				return m, nil
			}
			m.Sess.Enter()
			return m, func() tea.Msg { return common.ViewTweetMsg{Item: item} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(m.Title))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	if !m.Loaded {
		s.WriteString(common.ListEmptyStyle.Render("loading..."))
		return s.String()
	}

	if len(m.Page.Items) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("Nothing here yet."))
		return s.String()
	}

	contentWidth := util.Min(m.Width, common.MaxContentTruncateWidth)
	for i, item := range m.Page.Items {
		line := renderItem(i+1, item, contentWidth)
		if i == m.Selected {
			s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(line))
		} else {
			s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	pageInfo := fmt.Sprintf("page %d", m.Cursor.PageNum())
	if m.Page.HasPrev {
		pageInfo = "< " + pageInfo
	}
	if m.Page.HasNext {
		pageInfo = pageInfo + " >"
	}
	s.WriteString(common.ListBadgeStyle.Render(pageInfo))

	return s.String()
}

func renderItem(n int, item domain.FeedItem, width int) string {
	badge := ""
	if item.IsRetweet() {
		badge = fmt.Sprintf(" [rt by @%s]", item.Retweeter)
	}
	head := fmt.Sprintf("%d. @%s%s %s %s", n, item.WriterId, badge, item.Date, item.Time)
	text := util.TruncateDisplay(item.Text, width)
	return head + "\n   " + text
}
