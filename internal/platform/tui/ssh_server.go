package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sandfall/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Sand and Preset configure every session's engine.
	Sand   config.SandConfig
	Preset config.Preset
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.sandfall/sessions.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Sand:        config.DefaultSandConfig(),
	}
}

// SSHServer wraps a Wish SSH server serving one sandbox per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandfall-ssh",
	})

	// Sessions still run without a database
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sandfall", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := Options{
		Config: s.config.Sand,
		Preset: s.config.Preset,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
	}

	return NewSessionModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenSandbox
	screenHistory
)

// SessionModel manages the full flow inside one program:
// menu -> sandbox -> menu, with the session history reachable from the menu.
type SessionModel struct {
	opts     Options
	screen   sessionScreen
	menu     MenuModel
	sandbox  SandboxModel
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenSandbox:
		return m.updateSandbox(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		scene, err := registry.Create(selected.SceneID)
		if err != nil {
			// Shouldn't happen since menu only shows registered scenes
			m.menu = NewMenuModel(m.opts.Runtime)
			return m, nil
		}

		opts := m.opts
		opts.Runtime.Seed = time.Now().UnixNano()
		m.sandbox = NewSandboxModel(scene, opts)
		m.sandbox.embedded = true
		m.screen = screenSandbox
		return m, m.sandbox.Init()
	}

	return m, cmd
}

// updateSandbox handles updates while a sandbox is running.
func (m SessionModel) updateSandbox(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sandbox.Update(msg)
	if sandbox, ok := newModel.(SandboxModel); ok {
		m.sandbox = sandbox
	}

	if m.sandbox.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.sandbox.BackToMenu() {
		m.menu = NewMenuModel(m.opts.Runtime)
		m.screen = screenMenu
		// The pending tick is dropped by the menu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates while the history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.menu = NewMenuModel(m.opts.Runtime)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSandbox:
		return m.sandbox.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}
