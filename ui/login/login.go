package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkeen/dodo/auth"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/ui/common"
)

// Steps of the two flows. Login asks for usr and password, register
// walks through the profile fields.
const (
	stepLoginUsr = iota
	stepLoginPwd
	stepRegName
	stepRegEmail
	stepRegPhone
	stepRegPwd
)

type Model struct {
	Auth      *auth.Service
	TextInput textinput.Model
	Step      int
	Error     string

	usr      string
	name     string
	email    string
	phone    string
	password string
}

func InitialModel(authSvc *auth.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "user id"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = common.TextInputDefaultWidth
	return Model{Auth: authSvc, TextInput: ti, Step: stepLoginUsr}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

type loginResultMsg struct {
	user *domain.User
	err  error
}

func (m Model) loginCmd(usr, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.Auth.Login(usr, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) registerCmd(name, email, phone, password string) tea.Cmd {
	return func() tea.Msg {
		usr, err := m.Auth.Register(name, email, phone, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		user, err := m.Auth.Login(usr, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil {
			m.Error = msg.err.Error()
			m = m.reset(stepLoginUsr, "user id", false)
			return m, nil
		}
		return m, func() tea.Msg { return common.LoggedInMsg{User: *msg.user} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+r":
			// Toggle between login and registration
			if m.Step <= stepLoginPwd {
				m = m.reset(stepRegName, "display name", false)
			} else {
				m = m.reset(stepLoginUsr, "user id", false)
			}
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.TextInput.Value())
	switch m.Step {
	case stepLoginUsr:
		if value == "" {
			return m, nil
		}
		m.usr = value
		m = m.reset(stepLoginPwd, "password", true)
	case stepLoginPwd:
		m.password = m.TextInput.Value()
		cmd := m.loginCmd(m.usr, m.password)
		m = m.reset(stepLoginUsr, "user id", false)
		return m, cmd
	case stepRegName:
		m.name = value
		m = m.reset(stepRegEmail, "email", false)
	case stepRegEmail:
		m.email = value
		m = m.reset(stepRegPhone, "phone", false)
	case stepRegPhone:
		m.phone = value
		m = m.reset(stepRegPwd, "password", true)
	case stepRegPwd:
		m.password = m.TextInput.Value()
		cmd := m.registerCmd(m.name, m.email, m.phone, m.password)
		m = m.reset(stepLoginUsr, "user id", false)
		return m, cmd
	}
	return m, nil
}

func (m Model) reset(step int, placeholder string, masked bool) Model {
	m.Step = step
	m.TextInput.SetValue("")
	m.TextInput.Placeholder = placeholder
	if masked {
		m.TextInput.EchoMode = textinput.EchoPassword
	} else {
		m.TextInput.EchoMode = textinput.EchoNormal
	}
	m.TextInput.Focus()
	return m
}

func (m Model) View() string {
	var s strings.Builder

	if m.Step <= stepLoginPwd {
		s.WriteString(common.CaptionStyle.Render("log in"))
	} else {
		s.WriteString(common.CaptionStyle.Render("register"))
	}
	s.WriteString("\n\n")

	if m.Error != "" {
		s.WriteString(common.ListErrorStyle.Render(m.Error))
		s.WriteString("\n\n")
	}

	s.WriteString(m.TextInput.View())
	s.WriteString("\n\n")
	s.WriteString(common.HelpStyle.Render("enter confirm • ctrl+r switch login/register • ctrl+c quit"))
	return s.String()
}
