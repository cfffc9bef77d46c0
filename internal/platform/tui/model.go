package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

const (
	helpHeight  = 1 // Rows reserved below the game for the short help
	minTickRate = 1
	maxTickRate = 240
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	input    core.InputFrame
	state    core.GameState
	lastTick time.Time
	started  bool
	quitting bool
}

// NewModel creates a model for the given game.
// A zero seed is replaced with a time-based one and the tick rate is
// clamped to a range the terminal can keep up with.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = core.Clamp(cfg.TickRate, minTickRate, maxTickRate)
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		logger: logger,
		input:  core.NewInputFrame(),
	}
}

// Init starts the tick loop.
// The game is reset on the first tick: Init has a value receiver and
// cannot record the initial state.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.logger.Info("quit", "game", m.game.ID(), "score", m.state.Score)
		return m, tea.Quit
	}
	m.input.Set(action)
	return m, nil
}

// handleResize lays the game out again for the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	h := max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, h)

	if !m.started {
		return m, nil
	}
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, h)
	} else if !m.state.GameOver {
		m.game.Reset(m.gameConfig())
	}
	m.logger.Debug("resized", "width", msg.Width, "height", msg.Height)
	return m, nil
}

// gameConfig returns the runtime config with the help rows removed.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

// handleTick runs one simulation frame with the real elapsed time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.started {
		m.game.Reset(m.gameConfig())
		m.state = m.game.State()
		m.started = true
		m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	}

	dt := elapsed(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	prev := m.state
	m.state = m.game.Step(m.input, dt).State
	m.logTransition(prev, m.state)
	m.input.Clear()

	return m, tickCmd(m.config.TickRate)
}

// logTransition logs pause, game over and restart events.
func (m Model) logTransition(prev, next core.GameState) {
	switch {
	case !prev.GameOver && next.GameOver:
		m.logger.Info("game over", "game", m.game.ID(), "score", next.Score)
	case prev.GameOver && !next.GameOver:
		m.logger.Info("game restarted", "game", m.game.ID())
	case prev.Paused != next.Paused:
		m.logger.Debug("pause toggled", "paused", next.Paused)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || !m.started {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(game, cfg, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
