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

	"github.com/vovakirdan/geoquiz/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.geoquiz/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves quiz sessions over SSH with Wish. Every connection
// gets its own session id and its own game seed.
type SSHServer struct {
	config SSHServerConfig
	base   Session
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. base is copied into every
// connection's session; its Player, ID and Seed are filled per connection.
func NewSSHServer(cfg SSHServerConfig, base Session) (*SSHServer, error) {
	if err := base.validate(); err != nil {
		return nil, err
	}

	logger := base.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "geoquiz-ssh",
		})
		base.Logger = logger
	}

	srv := &SSHServer{
		config: cfg,
		base:   base,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".geoquiz", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionFor builds the quiz session for one SSH connection.
func (s *SSHServer) sessionFor(user string) Session {
	sess := s.base
	sess.ID = storage.NewSessionID()
	sess.Player = user
	if sess.Seed == 0 {
		sess.Seed = time.Now().UnixNano()
	}
	return sess
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sess := s.sessionFor(sshSession.User())
	s.logger.Info("quiz session", "user", sess.Player, "session", sess.ID)

	model := NewSessionModel(sess, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
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

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or
// scoreboard -> menu. It is the top-level model for SSH sessions and for
// the local menu command.
type SessionModel struct {
	sess     Session
	screen   screen
	menu     MenuModel
	game     *GameModel
	board    *ScoreboardModel
	width    int
	height   int
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(sess Session, width, height int) SessionModel {
	return SessionModel{
		sess:   sess,
		menu:   NewMenuModel(sess.Engine.Modes(), sess.Settings.Difficulty, width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.sess.Store, m.sess.Engine.Modes(), m.sess.Dataset.Name, m.width, m.height)
		m.board = &board
		m.screen = screenScores
		return m, board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		sess := m.sess
		sess.Settings.GameMode = selected.ModeID
		sess.Settings.Difficulty = m.menu.Difficulty()
		// A fresh seed per game unless the session pins one.
		if m.game != nil {
			sess.Seed = m.game.seed + 1
		}

		game, err := NewGameModel(sess)
		if err != nil {
			m.err = err
			m.menu = m.resetMenu()
			return m, nil
		}
		game.width, game.height = m.width, m.height
		m.game = &game
		m.screen = screenGame
		return m, game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game.backToMenu = false
		m.screen = screenMenu
		m.menu = m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.board = nil
		m.screen = screenMenu
		m.menu = m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) resetMenu() MenuModel {
	return NewMenuModel(m.sess.Engine.Modes(), m.menu.Difficulty(), m.width, m.height)
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(wrongStyle.Render(m.err.Error()), m.width)
	}
	return view
}

// RunSession runs the menu-driven session in the current terminal.
func RunSession(sess Session, width, height int) error {
	p := tea.NewProgram(NewSessionModel(sess, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
