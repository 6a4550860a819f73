package followers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

// Model lists who follows the session user, newest edge first.
// 'f' follows the selected user back.
type Model struct {
	Sess     *session.Session
	Cursor   paginate.Cursor[domain.FollowerEntry]
	Page     paginate.Page[domain.FollowerEntry]
	Selected int
	Loaded   bool
	Status   string
	IsErr    bool
}

func InitialModel(sess *session.Session) Model {
	return Model{Sess: sess}
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

type followersLoadedMsg struct {
	cursor paginate.Cursor[domain.FollowerEntry]
	page   paginate.Page[domain.FollowerEntry]
	err    error
}

type followBackResultMsg struct {
	flwee string
	err   error
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.Sess.Followers()
		if err != nil {
			return followersLoadedMsg{err: err}
		}
		page, err := cursor.Page()
		return followersLoadedMsg{cursor: cursor, page: page, err: err}
	}
}

func loadPage(cursor paginate.Cursor[domain.FollowerEntry]) tea.Cmd {
	return func() tea.Msg {
		page, err := cursor.Page()
		return followersLoadedMsg{cursor: cursor, page: page, err: err}
	}
}

func (m Model) followBackCmd(flwee string) tea.Cmd {
	return func() tea.Msg {
		return followBackResultMsg{flwee: flwee, err: m.Sess.Follow(flwee)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case followersLoadedMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		m.Cursor = msg.cursor
		m.Page = msg.page
		m.Loaded = true
		if m.Selected >= len(m.Page.Items) {
			m.Selected = 0
		}
		return m, nil

	case followBackResultMsg:
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
				return m, loadPage(m.Cursor)
			}
		case "p", "left":
			if m.Page.HasPrev {
				m.Cursor = m.Cursor.Prev()
				m.Selected = 0
				return m, loadPage(m.Cursor)
			}
		case "f":
			entry, err := m.Page.Select(m.Selected + 1)
			if err != nil {
				m.Status = err.Error()
				m.IsErr = true
				return m, nil
			}
			return m, m.followBackCmd(entry.Usr)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("followers"))
	s.WriteString("\n\n")

	if !m.Loaded {
		s.WriteString(common.ListEmptyStyle.Render("loading..."))
		return s.String()
	}

	if len(m.Page.Items) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No followers yet."))
		return s.String()
	}

	for i, entry := range m.Page.Items {
		line := fmt.Sprintf("@%s %s", entry.Usr, entry.Name)
		line += common.ListBadgeStyle.Render(" since " + entry.StartDate)
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
