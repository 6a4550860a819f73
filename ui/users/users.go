package users

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

// Model browses user search results. 'f' follows the selected user,
// enter opens their recent posts.
type Model struct {
	Sess     *session.Session
	Title    string
	Cursor   paginate.Cursor[domain.User]
	Page     paginate.Page[domain.User]
	Selected int
	Loaded   bool
	Status   string
	IsErr    bool
	Stats    map[string]domain.UserStats
}

func InitialModel(sess *session.Session) Model {
	return Model{Sess: sess, Stats: map[string]domain.UserStats{}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type pageLoadedMsg struct {
	cursor paginate.Cursor[domain.User]
	page   paginate.Page[domain.User]
	stats  map[string]domain.UserStats
	err    error
}

type followResultMsg struct {
	flwee string
	err   error
}

func (m Model) loadPage(cursor paginate.Cursor[domain.User]) tea.Cmd {
	return func() tea.Msg {
		page, err := cursor.Page()
		if err != nil {
			return pageLoadedMsg{cursor: cursor, err: err}
		}
		stats := make(map[string]domain.UserStats, len(page.Items))
		for _, u := range page.Items {
			if st, err := m.Sess.UserStats(u.Usr); err == nil {
				stats[u.Usr] = *st
			}
		}
		return pageLoadedMsg{cursor: cursor, page: page, stats: stats}
	}
}

func (m Model) followCmd(flwee string) tea.Cmd {
	return func() tea.Msg {
		return followResultMsg{flwee: flwee, err: m.Sess.Follow(flwee)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.BrowseUsersMsg:
		m.Title = msg.Title
		m.Cursor = msg.Cursor
		m.Selected = 0
		m.Loaded = false
		m.Status = ""
		return m, m.loadPage(msg.Cursor)

	case pageLoadedMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		m.Cursor = msg.cursor
		m.Page = msg.page
		m.Stats = msg.stats
		m.Loaded = true
		if m.Selected >= len(m.Page.Items) {
			m.Selected = 0
		}
		return m, nil

	case openPostsMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		title, cursor := msg.title, msg.cursor
		return m, func() tea.Msg {
			return common.BrowseTweetsMsg{Title: title, Cursor: cursor}
		}

	case followResultMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
		} else {
			m.Status = fmt.Sprintf("now following @%s", msg.flwee)
			m.IsErr = false
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
		case "n", "right":
			if m.Page.HasNext {
				m.Cursor = m.Cursor.Next(m.Page)
				m.Selected = 0
				return m, m.loadPage(m.Cursor)
			}
		case "p", "left":
			if m.Page.HasPrev {
				m.Cursor = m.Cursor.Prev()
				m.Selected = 0
				return m, m.loadPage(m.Cursor)
			}
		case "f":
			user, err := m.Page.Select(m.Selected + 1)
			if err != nil {
				m.Status = err.Error()
				m.IsErr = true
				return m, nil
			}
			return m, m.followCmd(user.Usr)
		case "enter":
			user, err := m.Page.Select(m.Selected + 1)
			if err != nil {
				m.Status = err.Error()
				m.IsErr = true
				return m, nil
			}
			return m, m.openPostsCmd(user.Usr)
		}
	}
	return m, nil
}

type openPostsMsg struct {
	title  string
	cursor paginate.Cursor[domain.FeedItem]
	err    error
}

func (m Model) openPostsCmd(usr string) tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.Sess.RecentByUser(usr)
		return openPostsMsg{title: "posts by @" + usr, cursor: cursor, err: err}
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(m.Title))
	s.WriteString("\n\n")

	if !m.Loaded {
		s.WriteString(common.ListEmptyStyle.Render("loading..."))
		return s.String()
	}

	if len(m.Page.Items) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No users found."))
		return s.String()
	}

	for i, u := range m.Page.Items {
		line := fmt.Sprintf("@%s %s", u.Usr, u.Name)
		if st, ok := m.Stats[u.Usr]; ok {
			line += common.ListBadgeStyle.Render(
				fmt.Sprintf(" [%d tweets, %d followers]", st.Tweets, st.Followers))
		}
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

	if m.Status != "" {
		s.WriteString("\n")
		if m.IsErr {
			s.WriteString(common.ListErrorStyle.Render(m.Status))
		} else {
			s.WriteString(common.ListStatusStyle.Render(m.Status))
		}
	}

	return s.String()
}
