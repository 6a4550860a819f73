package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
)

type Model struct {
	Sess     *session.Session
	TextArea textarea.Model
	Error    string

	// Reply target, zero when composing a top-level tweet.
	ReplyTo      int64
	ReplyPreview string
}

func InitialModel(sess *session.Session, width int) Model {
	ta := textarea.New()
	ta.Placeholder = "What's happening?"
	ta.CharLimit = domain.MaxTweetLen
	ta.SetWidth(width)
	ta.SetHeight(common.ComposeHeight)
	ta.Focus()
	return Model{Sess: sess, TextArea: ta}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

type postResultMsg struct {
	tid int64
	err error
}

func (m Model) postCmd(text string) tea.Cmd {
	replyTo := m.ReplyTo
	return func() tea.Msg {
		var tid int64
		var err error
		if replyTo != 0 {
			tid, err = m.Sess.Reply(replyTo, text)
		} else {
			tid, err = m.Sess.Compose(text)
		}
		return postResultMsg{tid: tid, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ReplyToTweetMsg:
		m.ReplyTo = msg.Tid
		m.ReplyPreview = msg.Preview
		m.TextArea.Reset()
		m.TextArea.Focus()
		return m, textarea.Blink

	case postResultMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			return m, nil
		}
		m.Error = ""
		m.ReplyTo = 0
		m.ReplyPreview = ""
		m.TextArea.Reset()
		return m, func() tea.Msg { return common.TweetPostedMsg{Tid: msg.tid} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			text := m.TextArea.Value()
			if strings.TrimSpace(text) == "" {
				m.Error = "Tweet text must not be empty"
				return m, nil
			}
			return m, m.postCmd(text)
		case "esc":
			// Abandon a reply, keep the view
			m.ReplyTo = 0
			m.ReplyPreview = ""
			m.Error = ""
			m.TextArea.Reset()
			return m, nil
		}
	}

	m.TextArea, cmd = m.TextArea.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	if m.ReplyTo != 0 {
		s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("reply to #%d", m.ReplyTo)))
		s.WriteString("\n")
		s.WriteString(common.ListBadgeStyle.Render(m.ReplyPreview))
	} else {
		s.WriteString(common.CaptionStyle.Render("compose"))
	}
	s.WriteString("\n\n")

	s.WriteString(m.TextArea.View())
	s.WriteString("\n")

	counter := fmt.Sprintf("%d/%d", len([]rune(m.TextArea.Value())), domain.MaxTweetLen)
	s.WriteString(common.ListBadgeStyle.Render(counter))
	s.WriteString("\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n")
	}

	s.WriteString(common.HelpStyle.Render("ctrl+s post • esc clear"))
	return s.String()
}
