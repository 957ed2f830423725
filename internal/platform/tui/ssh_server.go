package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-frogger/internal/config"
	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.frogger/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every session plays with.
	Game config.FroggerConfig

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultFroggerConfig(),
	}
}

// SSHServer serves one independent game per SSH session. All sessions
// share one in-memory run ledger, dropped when the server stops.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64

	storeOnce sync.Once
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "frogger-ssh",
		})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: cfg.Logger}

	srv.store, err = storage.OpenMemory()
	if err != nil {
		// Sessions still play; they just have no scoreboard.
		srv.logger.Warn("could not open run ledger", "error", err)
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the host key location, defaulting to
// ~/.frogger/host_key, and makes sure its directory exists. Wish generates
// the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		dir := config.Dir()
		if dir == "" {
			return "", errors.New("cannot locate home directory for the host key")
		}
		path = filepath.Join(dir, "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler starts a fresh game for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(ModelOptions{
		Config: s.config.Game,
		Store:  s.store,
		Player: sess.User(),
		Logger: s.logger.With("session", sessionID(sess), "user", sess.User()),
		Screen: core.RuntimeConfig{ScreenW: pty.Window.Width, ScreenH: pty.Window.Height},
	})

	// The game's event source runs until stopped, so tie it to the connection.
	go func() {
		<-sess.Context().Done()
		model.Stop()
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionMiddleware tags each session with an id and logs its lifetime.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		sess.Context().SetValue(sessionKey{}, id)

		started := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", s.active.Add(1),
		)
		next(sess)
		s.logger.Info("session ended",
			"session", id,
			"user", sess.User(),
			"duration", time.Since(started).Round(time.Second),
			"active", s.active.Add(-1),
		)
	}
}

type sessionKey struct{}

func sessionID(sess ssh.Session) string {
	id, _ := sess.Context().Value(sessionKey{}).(string)
	return id
}

// ListenAndServe serves until ctx is cancelled or the listener fails, then
// shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
	case err := <-errCh:
		if !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			serveErr = err
		}
	}

	return errors.Join(serveErr, s.Shutdown())
}

// Shutdown gracefully stops the server and drops the run ledger.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// closeStore closes the ledger once. The field itself is never cleared:
// sessions accepted during shutdown may still read it.
func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	s.storeOnce.Do(func() {
		if stats, err := s.store.Stats(); err == nil {
			s.logger.Info("run ledger closed", "runs", stats.Runs, "best", stats.Best)
		}
		//nolint:errcheck // Best-effort close on shutdown
		s.store.Close()
	})
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
