package favlists

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

// Model manages the user's favorite lists: browse names, create a
// new list, open one as a tweet page.
type Model struct {
	Sess      *session.Session
	Names     []string
	Selected  int
	Creating  bool
	TextInput textinput.Model
	Status    string
	IsErr     bool
}

func InitialModel(sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "list name"
	ti.CharLimit = 100
	ti.Width = common.TextInputDefaultWidth
	return Model{Sess: sess, TextInput: ti}
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

type listsLoadedMsg struct {
	names []string
	err   error
}

type listCreatedMsg struct {
	err error
}

type openListMsg struct {
	lname  string
	cursor paginate.Cursor[domain.FeedItem]
	err    error
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		names, err := m.Sess.FavoriteLists()
		return listsLoadedMsg{names: names, err: err}
	}
}

func (m Model) createCmd(lname string) tea.Cmd {
	return func() tea.Msg {
		return listCreatedMsg{err: m.Sess.CreateList(lname)}
	}
}

func (m Model) openCmd(lname string) tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.Sess.ListContents(lname)
		return openListMsg{lname: lname, cursor: cursor, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case listsLoadedMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		m.Names = msg.names
		if m.Selected >= len(m.Names) {
			m.Selected = 0
		}
		return m, nil

	case listCreatedMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		m.Status = "list created"
		m.IsErr = false
		return m, m.reloadCmd()

	case openListMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		lname, cursor := msg.lname, msg.cursor
		return m, func() tea.Msg {
			return common.BrowseTweetsMsg{Title: "list: " + lname, Cursor: cursor}
		}

	case tea.KeyMsg:
		if m.Creating {
			switch msg.String() {
			case "enter":
				lname := strings.TrimSpace(m.TextInput.Value())
				m.Creating = false
				m.TextInput.SetValue("")
				m.TextInput.Blur()
				if lname == "" {
					m.Status = "List name must not be empty"
					m.IsErr = true
					return m, nil
				}
				return m, m.createCmd(lname)
			case "esc":
				m.Creating = false
				m.TextInput.SetValue("")
				m.TextInput.Blur()
				return m, nil
			}
			m.TextInput, cmd = m.TextInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < len(m.Names)-1 {
				m.Selected++
			}
		case "a":
			m.Creating = true
			m.Status = ""
			m.TextInput.Focus()
			return m, textinput.Blink
		case "enter":
			if m.Selected < len(m.Names) {
				return m, m.openCmd(m.Names[m.Selected])
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("favorite lists"))
	s.WriteString("\n\n")

	if m.Creating {
		s.WriteString(m.TextInput.View())
		s.WriteString("\n\n")
		s.WriteString(common.HelpStyle.Render("enter create • esc cancel"))
		return s.String()
	}

	if len(m.Names) == 0 {
		s.WriteString(common.ListEmptyStyle.Render("No lists yet. Press 'a' to create one."))
	} else {
		for i, name := range m.Names {
			if i == m.Selected {
				s.WriteString(common.ListSelectedPrefix + common.ListItemSelectedStyle.Render(name))
			} else {
				s.WriteString(common.ListUnselectedPrefix + common.ListItemStyle.Render(name))
			}
			s.WriteString("\n")
		}
	}

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
