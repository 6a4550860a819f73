// Package middleware wires the TUI into the SSH server. Every SSH
// session gets its own session.Session, so concurrent connections
// never share state.
package middleware

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/mkeen/dodo/auth"
	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/session"
	"github.com/mkeen/dodo/ui"
)

// MainTui returns the wish middleware hosting the bubbletea app.
func MainTui(store *db.DB) wish.Middleware {
	teaHandler := func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := s.Pty()
		if !active {
			log.Printf("no active terminal for %s, skipping", s.User())
			return nil, nil
		}

		sess := session.New(store)
		authSvc := auth.NewService(store)
		m := ui.NewModel(sess, authSvc, pty.Window.Width, pty.Window.Height)
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
	return bm.MiddlewareWithColorProfile(teaHandler, termenv.ANSI256)
}
