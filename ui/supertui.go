package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkeen/dodo/auth"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/paginate"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui/common"
	"github.com/mkeen/dodo/ui/compose"
	"github.com/mkeen/dodo/ui/favlists"
	"github.com/mkeen/dodo/ui/followers"
	"github.com/mkeen/dodo/ui/login"
	"github.com/mkeen/dodo/ui/searchtweets"
	"github.com/mkeen/dodo/ui/searchusers"
	"github.com/mkeen/dodo/ui/tweetdetail"
	"github.com/mkeen/dodo/ui/tweets"
	"github.com/mkeen/dodo/ui/users"
	"github.com/mkeen/dodo/util"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(common.COLOR_ACCENT)).
	Bold(true).
	Padding(0, 2)

type MainModel struct {
	width  int
	height int
	sess   *session.Session
	user   domain.User
	state  common.SessionState

	loginModel        login.Model
	composeModel      compose.Model
	tweetsModel       tweets.Model
	searchTweetsModel searchtweets.Model
	searchUsersModel  searchusers.Model
	usersModel        users.Model
	followersModel    followers.Model
	favListsModel     favlists.Model
	tweetDetailModel  tweetdetail.Model
}

func NewModel(sess *session.Session, authSvc *auth.Service, width, height int) MainModel {
	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	m := MainModel{state: common.LoginView}
	m.sess = sess
	m.loginModel = login.InitialModel(authSvc)
	m.composeModel = compose.InitialModel(sess, width/2)
	m.tweetsModel = tweets.InitialModel(sess, width, height)
	m.searchTweetsModel = searchtweets.InitialModel(sess)
	m.searchUsersModel = searchusers.InitialModel(sess)
	m.usersModel = users.InitialModel(sess)
	m.followersModel = followers.InitialModel(sess)
	m.favListsModel = favlists.InitialModel(sess)
	m.tweetDetailModel = tweetdetail.InitialModel(sess, width)
	m.width = width
	m.height = height
	return m
}

func (m MainModel) Init() tea.Cmd {
	return m.loginModel.Init()
}

type timelineLoadedMsg struct {
	cursor paginate.Cursor[domain.FeedItem]
	err    error
}

func (m MainModel) timelineCmd() tea.Cmd {
	return func() tea.Msg {
		cursor, err := m.sess.Timeline()
		return timelineLoadedMsg{cursor: cursor, err: err}
	}
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = common.DefaultWindowWidth(msg.Width)
		m.height = common.DefaultWindowHeight(msg.Height)
		m.tweetsModel.Width = m.width
		m.tweetsModel.Height = m.height
		m.tweetDetailModel.Width = m.width
		return m, nil

	case common.LoggedInMsg:
		m.user = msg.User
		if err := m.sess.Begin(msg.User.Usr); err != nil {
			m.loginModel.Error = err.Error()
			return m, nil
		}
		// Land on compose while the timeline loads
		m.state = common.ComposeView
		return m, tea.Batch(m.composeModel.Init(), m.timelineCmd())

	case timelineLoadedMsg:
		if msg.err != nil {
			m.state = common.ComposeView
			return m, nil
		}
		cursor := msg.cursor
		return m, func() tea.Msg {
			return common.BrowseTweetsMsg{Title: "timeline", Cursor: cursor}
		}

	case common.BrowseTweetsMsg:
		m.state = common.TweetsView
		m.tweetsModel, cmd = m.tweetsModel.Update(msg)
		return m, cmd

	case common.BrowseUsersMsg:
		m.state = common.UsersView
		m.usersModel, cmd = m.usersModel.Update(msg)
		return m, cmd

	case common.ViewTweetMsg:
		m.state = common.TweetDetailView
		m.tweetDetailModel, cmd = m.tweetDetailModel.Update(msg)
		return m, cmd

	case common.ReplyToTweetMsg:
		m.state = common.ComposeView
		m.composeModel, cmd = m.composeModel.Update(msg)
		return m, cmd

	case common.TweetPostedMsg:
		// After posting, show the fresh timeline
		return m, m.timelineCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

		if m.state == common.LoginView {
			m.loginModel, cmd = m.loginModel.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+q":
			m.sess.Logout()
			m.state = common.LoginView
			m.loginModel.Error = ""
			return m, m.loginModel.Init()
		case "ctrl+n":
			m.state = common.ComposeView
			return m, m.composeModel.Init()
		case "ctrl+t":
			return m, m.timelineCmd()
		case "ctrl+f":
			m.state = common.SearchTweetsView
			return m, m.searchTweetsModel.Init()
		case "ctrl+u":
			m.state = common.SearchUsersView
			return m, m.searchUsersModel.Init()
		case "ctrl+o":
			m.state = common.FollowersView
			return m, m.followersModel.Init()
		case "ctrl+l":
			m.state = common.FavListsView
			return m, m.favListsModel.Init()
		case "esc":
			return m.cancel()
		}

		return m.routeToActive(msg)
	}

	// Async results find their owner regardless of the active view
	return m.routeToAll(msg)
}

// cancel backs out one level, mirroring the session state machine.
func (m MainModel) cancel() (tea.Model, tea.Cmd) {
	switch m.state {
	case common.TweetDetailView:
		m.sess.Back()
		m.state = common.TweetsView
		return m, nil
	case common.TweetsView, common.UsersView, common.FollowersView,
		common.FavListsView, common.SearchTweetsView, common.SearchUsersView:
		m.sess.Cancel()
		m.state = common.ComposeView
		return m, nil
	}
	// Let the active view handle esc (compose uses it to clear)
	return m.routeToActive(tea.KeyMsg{Type: tea.KeyEsc})
}

func (m MainModel) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case common.LoginView:
		m.loginModel, cmd = m.loginModel.Update(msg)
	case common.ComposeView:
		m.composeModel, cmd = m.composeModel.Update(msg)
	case common.TweetsView:
		m.tweetsModel, cmd = m.tweetsModel.Update(msg)
	case common.SearchTweetsView:
		m.searchTweetsModel, cmd = m.searchTweetsModel.Update(msg)
	case common.SearchUsersView:
		m.searchUsersModel, cmd = m.searchUsersModel.Update(msg)
	case common.UsersView:
		m.usersModel, cmd = m.usersModel.Update(msg)
	case common.FollowersView:
		m.followersModel, cmd = m.followersModel.Update(msg)
	case common.FavListsView:
		m.favListsModel, cmd = m.favListsModel.Update(msg)
	case common.TweetDetailView:
		m.tweetDetailModel, cmd = m.tweetDetailModel.Update(msg)
	}
	return m, cmd
}

func (m MainModel) routeToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.loginModel, cmd = m.loginModel.Update(msg)
	cmds = append(cmds, cmd)
	m.composeModel, cmd = m.composeModel.Update(msg)
	cmds = append(cmds, cmd)
	m.tweetsModel, cmd = m.tweetsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.searchTweetsModel, cmd = m.searchTweetsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.searchUsersModel, cmd = m.searchUsersModel.Update(msg)
	cmds = append(cmds, cmd)
	m.usersModel, cmd = m.usersModel.Update(msg)
	cmds = append(cmds, cmd)
	m.followersModel, cmd = m.followersModel.Update(msg)
	cmds = append(cmds, cmd)
	m.favListsModel, cmd = m.favListsModel.Update(msg)
	cmds = append(cmds, cmd)
	m.tweetDetailModel, cmd = m.tweetDetailModel.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m MainModel) View() string {
	var s strings.Builder

	title := "dodo " + util.GetVersion()
	if m.sess.User() != "" {
		title += fmt.Sprintf(" • @%s (%s)", m.sess.User(), m.user.Name)
	}
	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n")

	switch m.state {
	case common.LoginView:
		s.WriteString(m.loginModel.View())
	case common.ComposeView:
		s.WriteString(m.composeModel.View())
	case common.TweetsView:
		s.WriteString(m.tweetsModel.View())
	case common.SearchTweetsView:
		s.WriteString(m.searchTweetsModel.View())
	case common.SearchUsersView:
		s.WriteString(m.searchUsersModel.View())
	case common.UsersView:
		s.WriteString(m.usersModel.View())
	case common.FollowersView:
		s.WriteString(m.followersModel.View())
	case common.FavListsView:
		s.WriteString(m.favListsModel.View())
	case common.TweetDetailView:
		s.WriteString(m.tweetDetailModel.View())
	}

	if m.state != common.LoginView {
		s.WriteString("\n\n")
		s.WriteString(common.HelpStyle.Render(
			"^n compose • ^t timeline • ^f tweets • ^u users • ^o followers • ^l lists • ^q logout • ^c quit"))
	}

	return s.String()
}
