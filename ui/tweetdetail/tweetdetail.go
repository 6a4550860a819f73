package tweetdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
	"github.com/mkeen/dodo/util"
)

// Model shows a single feed item with its counters. From here the
// user can retweet, reply or save the tweet to a favorite list.
type Model struct {
	Sess      *session.Session
	Item      domain.FeedItem
	Stats     *domain.TweetStats
	Saving    bool
	TextInput textinput.Model
	Status    string
	IsErr     bool
	Width     int
}

func InitialModel(sess *session.Session, width int) Model {
	ti := textinput.New()
	ti.Placeholder = "list name"
	ti.CharLimit = 100
	ti.Width = common.TextInputDefaultWidth
	return Model{Sess: sess, TextInput: ti, Width: width}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type statsLoadedMsg struct {
	stats *domain.TweetStats
	err   error
}

type retweetResultMsg struct {
	err error
}

type savedResultMsg struct {
	lname string
	err   error
}

func (m Model) loadStatsCmd(tid int64) tea.Cmd {
	return func() tea.Msg {
		stats, err := m.Sess.TweetStats(tid)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) retweetCmd(tid int64) tea.Cmd {
	return func() tea.Msg {
		return retweetResultMsg{err: m.Sess.Retweet(tid)}
	}
}

func (m Model) saveCmd(lname string, tid int64) tea.Cmd {
	return func() tea.Msg {
		return savedResultMsg{lname: lname, err: m.Sess.AddToList(lname, tid)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.ViewTweetMsg:
		m.Item = msg.Item
		m.Stats = nil
		m.Status = ""
		m.Saving = false
		return m, m.loadStatsCmd(msg.Item.Tid)

	case statsLoadedMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
			return m, nil
		}
		m.Stats = msg.stats
		return m, nil

	case retweetResultMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
		} else {
			m.Status = "retweeted"
			m.IsErr = false
		}
		// Refresh the counters either way
		return m, m.loadStatsCmd(m.Item.Tid)

	case savedResultMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
			m.IsErr = true
		} else {
			m.Status = fmt.Sprintf("saved to %s", msg.lname)
			m.IsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.Saving {
			switch msg.String() {
			case "enter":
				lname := strings.TrimSpace(m.TextInput.Value())
				m.Saving = false
				m.TextInput.SetValue("")
				m.TextInput.Blur()
				if lname == "" {
					return m, nil
				}
				return m, m.saveCmd(lname, m.Item.Tid)
			case "esc":
				m.Saving = false
				m.TextInput.SetValue("")
				m.TextInput.Blur()
				return m, nil
			}
			m.TextInput, cmd = m.TextInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "t":
			return m, m.retweetCmd(m.Item.Tid)
		case "r":
			m.Sess.Back()
			preview := util.TruncateDisplay(m.Item.Text, 60)
			item := m.Item
			return m, func() tea.Msg {
				return common.ReplyToTweetMsg{Tid: item.Tid, Preview: preview}
			}
		case "s":
			m.Saving = true
			m.Status = ""
			m.TextInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(common.CaptionStyle.Render(fmt.Sprintf("tweet #%d", m.Item.Tid)))
	s.WriteString("\n\n")

	head := common.UsernameStyle.Render("@"+m.Item.WriterId) + " " +
		common.TimestampStyle.Render(m.Item.Date+" "+m.Item.Time)
	if m.Item.IsRetweet() {
		head += common.ListBadgeStyle.Render(fmt.Sprintf(" [rt by @%s]", m.Item.Retweeter))
	}
	s.WriteString(head)
	s.WriteString("\n\n")

	width := util.Min(m.Width, common.MaxContentTruncateWidth)
	s.WriteString(util.TruncateDisplay(m.Item.Text, width))
	s.WriteString("\n\n")

	if m.Stats != nil {
		s.WriteString(common.ListBadgeStyle.Render(
			fmt.Sprintf("%d retweets • %d replies", m.Stats.Retweets, m.Stats.Replies)))
		s.WriteString("\n")
	}

	if m.Saving {
		s.WriteString("\n")
		s.WriteString(m.TextInput.View())
		s.WriteString("\n")
		s.WriteString(common.HelpStyle.Render("enter save • esc cancel"))
		return s.String()
	}

	if m.Status != "" {
		s.WriteString("\n")
		if m.IsErr {
			s.WriteString(common.ListErrorStyle.Render(m.Status))
		} else {
			s.WriteString(common.ListStatusStyle.Render(m.Status))
		}
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("t retweet • r reply • s save to list • esc back"))
	return s.String()
}
