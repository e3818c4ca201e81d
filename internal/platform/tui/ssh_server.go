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

	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/session"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

// noticeDuration is how long a server notice stays on screen.
const noticeDuration = 5 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.labyrinth/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.labyrinth/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server that lets players walk mazes remotely.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	sessions *session.Registry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "labyrinth-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		sessions: session.NewRegistry(),
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".labyrinth", "host_key")
	}

	// Ensure host key directory exists
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

// teaHandler creates a Bubble Tea program for each SSH session and registers
// the connection so it can receive server notices.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	handle := session.NewChannelSession(session.NewID(), 0)
	info := session.Info{
		ID:         handle.ID(),
		User:       sshSession.User(),
		RemoteAddr: sshSession.RemoteAddr().String(),
		StartedAt:  time.Now(),
	}
	s.sessions.Register(handle, info)

	go func() {
		<-sshSession.Context().Done()
		s.sessions.Unregister(handle.ID())
		handle.Close()
	}()

	model := NewSessionModel(s.store, cfg, s.sessions, handle, info, s.logger)

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
			"online", s.sessions.Count()+1,
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

	// Setup signal handling for graceful shutdown
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

// Shutdown tells connected players the server is closing and stops it.
func (s *SSHServer) Shutdown() error {
	logActiveSessions(s.logger, s.sessions)
	notified := s.sessions.Broadcast(session.NewEvent(session.EventServerClosing, "Server is shutting down"))
	s.logger.Info("notified sessions", "count", notified)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// logActiveSessions logs every connected player and the maze they are on.
func logActiveSessions(logger *log.Logger, reg *session.Registry) {
	infos := reg.Snapshot()
	logger.Info("active sessions", "count", len(infos))
	for _, info := range infos {
		game := info.GameID
		if game == "" {
			game = "menu"
		}
		logger.Info("session",
			"id", info.ID.Short(),
			"user", info.User,
			"remote", info.RemoteAddr,
			"game", game,
			"seed", info.Seed,
			"online", time.Since(info.StartedAt).Round(time.Second),
		)
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Sessions returns the registry of connected players.
func (s *SSHServer) Sessions() *session.Registry {
	return s.sessions
}

// sessionEventMsg carries a server notice into the Bubble Tea loop.
type sessionEventMsg session.Event

// clearNoticeMsg hides the notice with the given sequence number.
type clearNoticeMsg int

// waitForEvent returns a command that waits for the next server notice.
func waitForEvent(handle *session.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		if handle == nil {
			return nil
		}
		select {
		case evt, ok := <-handle.Events():
			if !ok {
				return nil
			}
			return sessionEventMsg(evt)
		case <-handle.Done():
			return nil
		}
	}
}

// SessionModel manages one remote player's flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	sessions  *session.Registry
	handle    *session.ChannelSession
	info      session.Info
	logger    *log.Logger
	menu      MenuModel
	board     *ScoreboardModel
	gameModel *GameModel
	notice    string
	noticeSeq int
	inGame    bool
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(
	store *storage.Store,
	cfg core.RuntimeConfig,
	sessions *session.Registry,
	handle *session.ChannelSession,
	info session.Info,
	logger *log.Logger,
) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		sessions: sessions,
		handle:   handle,
		info:     info,
		logger:   logger,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForEvent(m.handle))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case sessionEventMsg:
		return m.handleEvent(session.Event(msg))

	case clearNoticeMsg:
		if int(msg) == m.noticeSeq {
			m.setNotice("")
		}
		return m, nil
	}

	switch {
	case m.inGame && m.gameModel != nil:
		return m.updateGame(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// handleEvent shows a server notice and waits for the next one.
func (m SessionModel) handleEvent(evt session.Event) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.setNotice(evt.Message)

	seq := m.noticeSeq
	clearCmd := tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg(seq)
	})
	return m, tea.Batch(clearCmd, waitForEvent(m.handle))
}

// setNotice updates the notice shown in the menu and in game.
func (m *SessionModel) setNotice(text string) {
	m.notice = text
	if m.gameModel != nil {
		m.gameModel.notice = text
	}
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

	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.store, m.info.User, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.menu = NewMenuModel(m.store, m.config)
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			return m, nil
		}

		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()

		gameModel := NewGameModel(game, m.store, m.config, m.info.User)
		gameModel.notice = m.notice
		m.gameModel = &gameModel
		m.inGame = true

		initCmd := m.gameModel.Init()
		if m.sessions != nil {
			seed := m.config.Seed
			if s, ok := game.(summarizer); ok {
				seed = s.Summary().Seed
			}
			m.sessions.SetRun(m.info.ID, game.ID(), seed)
		}

		return m, initCmd
	}

	return m, cmd
}

// updateBoard handles updates while the scoreboard is open. Leaving it
// returns to the menu instead of ending the session.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	board, ok := newBoard.(ScoreboardModel)
	if !ok {
		return m, cmd
	}

	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}

	m.board = &board
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if run := m.gameModel.takeRun(); run != nil {
		m.announce(*run)
	}

	if m.gameModel.BackToMenu() {
		m.inGame = false
		m.gameModel = nil
		if m.sessions != nil {
			m.sessions.SetRun(m.info.ID, "", 0)
		}
		m.menu = NewMenuModel(m.store, m.config)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// announce logs a finished run and tells the other players about it.
func (m SessionModel) announce(run storage.Run) {
	m.logger.Info("run completed",
		"session", m.info.ID.Short(),
		"user", m.info.User,
		"game", run.GameID,
		"size", fmt.Sprintf("%dx%d", run.Width, run.Height),
		"moves", run.Moves,
		"optimal", run.Optimal,
		"score", run.Score,
	)

	if m.sessions == nil {
		return
	}
	// Connections that already closed stay quiet
	if _, ok := m.sessions.Get(m.info.ID); !ok {
		return
	}
	evt := session.NewEvent(session.EventRunCompleted,
		fmt.Sprintf("%s escaped a %dx%d maze in %d moves (score %d)",
			m.info.User, run.Width, run.Height, run.Moves, run.Score))
	evt.From = m.info.ID
	m.sessions.Broadcast(evt)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.gameModel != nil {
		return m.gameModel.View()
	}

	view := m.menu.View()
	if m.board != nil {
		view = m.board.View()
	}
	if m.notice != "" {
		view += "\n" + centerText("* "+m.notice+" *", m.config.ScreenW) + "\n"
	}
	return view
}

// GameModel runs a game inside an SSH session with back-to-menu support.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	player     string
	notice     string
	pending    *storage.Run // finished run not yet announced
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewGameModel creates a new game model for a remote player.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     player,
	}
}

// Init initializes the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		resizeGame(m.game, m.config)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc leaves the maze at any time
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// Ticks of a game the player already left are dropped
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		m.runSaved = false
	case !m.runSaved:
		if run, ok := recordRun(m.game, m.store, m.player); ok {
			m.pending = &run
		}
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// takeRun returns the finished run waiting to be announced and clears it.
func (m *GameModel) takeRun() *storage.Run {
	run := m.pending
	m.pending = nil
	return run
}

// View renders the game with the current server notice on the bottom row.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		y := m.screen.Height() - 1
		m.screen.DrawHLine(0, y, m.screen.Width(), ' ')
		m.screen.DrawTextColored(1, y, m.notice, core.ColorCyan)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
