package searchtweets

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
	"github.com/mkeen/dodo/util"
)

type Model struct {
	Sess      *session.Session
	TextInput textinput.Model
	Error     string
}

func InitialModel(sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "keywords, comma-separated (#tag for hashtags)"
	ti.CharLimit = 200
	ti.Width = common.TextInputDefaultWidth * 2
	ti.Focus()
	return Model{Sess: sess, TextInput: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

type searchResultMsg struct {
	terms  []string
	cursor paginate.Cursor[domain.FeedItem]
	err    error
}

func (m Model) searchCmd(terms []string) tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.Sess.SearchTweets(terms)
		return searchResultMsg{terms: terms, cursor: cursor, err: err}
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
		title := "tweets: " + strings.Join(msg.terms, ", ")
		return m, func() tea.Msg {
			return common.BrowseTweetsMsg{Title: title, Cursor: msg.cursor}
		}

	case tea.KeyMsg:
		if msg.String() == "enter" {
			terms := util.SplitTerms(m.TextInput.Value())
			if len(terms) == 0 {
				m.Error = "Enter at least one keyword"
				return m, nil
			}
			return m, m.searchCmd(terms)
		}
	}

	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render("search tweets"))
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
