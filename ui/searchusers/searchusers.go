package searchusers

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

type Model struct {
	Sess      *session.Session
	TextInput textinput.Model
	Error     string
}

func InitialModel(sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 100
	ti.Width = common.TextInputDefaultWidth
	ti.Focus()
	return Model{Sess: sess, TextInput: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

type searchResultMsg struct {
	keyword string
	cursor  paginate.Cursor[domain.User]
	err     error
}

func (m Model) searchCmd(keyword string) tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.Sess.SearchUsers(keyword)
		return searchResultMsg{keyword: keyword, cursor: cursor, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.TextInput.SetValue("")
		return m, func() tea.Msg {
			return common.BrowseUsersMsg{Title: "users: " + msg.keyword, Cursor: msg.cursor}
		}

	case tea.KeyMsg:
		if msg.String() == "enter" {
			keyword := strings.TrimSpace(m.TextInput.Value())
			if keyword == "" {
				m.Error = "Enter a name to search for"
				return m, nil
			}
			return m, m.searchCmd(keyword)
		}
	}

	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("search users"))
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n\n")
	}

	s.WriteString(m.TextInput.View())
	s.WriteString("\n\n")
	s.WriteString(common.HelpStyle.Render("enter search"))
	return s.String()
}
