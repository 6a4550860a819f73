package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/middleware"
	"github.com/mkeen/dodo/util"
	"github.com/mkeen/dodo/web"
)

// App represents the main application with all its servers and dependencies
type App struct {
	config     *util.AppConfig
	store      *db.DB
	sshServer  *ssh.Server
	httpServer *http.Server
	done       chan os.Signal
}

// New creates a new App instance with the given configuration
func New(conf *util.AppConfig) (*App, error) {
	return &App{
		config: conf,
		done:   make(chan os.Signal, 1),
	}, nil
}

// Initialize opens the database and sets up the servers
func (a *App) Initialize() error {
	dbPath, err := util.ResolveFilePath(a.config.Conf.DbFile)
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}

	opts := db.Options{
		AllowSelfFollow:     a.config.Conf.AllowSelfFollow,
		AllowSelfRetweet:    a.config.Conf.AllowSelfRetweet,
		TimelineIncludeSelf: a.config.Conf.TimelineIncludeSelf,
	}
	if a.config.Conf.SpamMaxPerAuthor > 0 {
		window := time.Duration(a.config.Conf.SpamWindowDays) * 24 * time.Hour
		opts.Spam = db.WindowSpamClassifier(a.config.Conf.SpamMaxPerAuthor, window)
	}

	store, err := db.Open(dbPath, opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.store = store

	// Initialize SSH server. Connections are accepted with any key or
	// none; the TUI runs its own password login.
	hostKeyPath, err := util.ResolveFilePath("hostkey")
	if err != nil {
		return fmt.Errorf("failed to resolve host key path: %w", err)
	}
	log.Printf("Using SSH host key at: %s", hostKeyPath)

	sshServer, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%d", a.config.Conf.Host, a.config.Conf.SshPort)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithMiddleware(
			middleware.MainTui(a.store),
			logging.MiddlewareWithLogger(log.Default()),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	a.sshServer = sshServer

	if a.config.Conf.WithHttp {
		router, err := web.Router(a.store, a.config)
		if err != nil {
			return fmt.Errorf("failed to initialize HTTP router: %w", err)
		}
		a.httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", a.config.Conf.HttpPort),
			Handler: router,
		}
	}

	return nil
}

// Start starts all servers and blocks until a shutdown signal is received
func (a *App) Start() error {
	signal.Notify(a.done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%d", a.config.Conf.Host, a.config.Conf.SshPort)
	go func() {
		if err := a.sshServer.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			log.Fatalf("SSH server error: %v", err)
		}
	}()

	if a.httpServer != nil {
		log.Printf("Starting HTTP server on %s:%d", a.config.Conf.Host, a.config.Conf.HttpPort)
		go func() {
			if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTP server error: %v", err)
			}
		}()
	}

	<-a.done
	log.Println("Shutdown signal received")

	return a.Shutdown()
}

// Shutdown gracefully stops all servers with a 30 second timeout
func (a *App) Shutdown() error {
	log.Println("Initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var shutdownErr error

	if a.httpServer != nil {
		log.Println("Stopping HTTP server...")
		if err := a.httpServer.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			shutdownErr = err
		}
	}

	log.Println("Stopping SSH server...")
	if err := a.sshServer.Shutdown(ctx); err != nil {
		log.Printf("SSH server shutdown error: %v", err)
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}

	log.Println("All servers stopped")
	return shutdownErr
}
