package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

const (
	hudHeight  = 2  // Title line plus separator
	sideWidth  = 14 // Panel right of the playfield
	cellWidth  = 2  // Terminal columns per board cell
	blockRune  = '█'
	emptyRune  = '·'
	frameWidth = 2 // Box border, left plus right
)

// Package-level settings applied on the next Reset (set by the CLI).
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file used by games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game adapts the Engine to the arcade platform.
type Game struct {
	fixed   *config.TetrisConfig // Used instead of loading from disk when set
	cfg     config.TetrisConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	engine  *Engine
	frame   uint64
	paused  bool
	err     error // Config problem reported in the HUD; defaults are used

	tooSmall bool
	originX  int // Screen column of the playfield box
	originY  int
}

// New creates a game that loads its config from the search path on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed config, bypassing the loader.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{fixed: &cfg}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.frame = 0
	g.paused = false
	g.err = nil

	g.cfg = g.loadConfig()
	engine, err := NewEngine(ConfigFrom(g.cfg), g.rng)
	if err != nil {
		g.err = err
		g.cfg = config.DefaultTetrisConfig()
		engine, _ = NewEngine(DefaultEngineConfig(), g.rng)
	}
	g.engine = engine
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) loadConfig() config.TetrisConfig {
	if g.fixed != nil {
		return *g.fixed
	}

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		g.err = err
		cfg = config.DefaultTetrisConfig()
	}
	preset, ok := config.ParsePreset(difficultyPreset)
	if !ok {
		g.err = fmt.Errorf("unknown difficulty %q", difficultyPreset)
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return cfg
}

// Resize lays the playfield out for a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h

	boxW := g.cfg.Board.Width*cellWidth + frameWidth
	boxH := g.cfg.Board.Height + frameWidth
	g.tooSmall = w < boxW+sideWidth || h < boxH+hudHeight
	if g.tooSmall {
		return
	}

	g.originX = (w - boxW - sideWidth) / 2
	g.originY = hudHeight + (h-hudHeight-boxH)/2
}

// Engine exposes the rules engine, mainly for tests and tooling.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one frame of dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.frame++

	// Handle restart
	if in.Has(core.ActionRestart) && g.engine.Lost() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.Lost() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.engine.Lost() {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		if ea, ok := engineAction(a); ok {
			g.engine.EnqueueAction(ea)
		}
	}
	g.engine.Update(dt)

	return core.StepResult{State: g.State()}
}

// engineAction maps platform actions to engine actions.
func engineAction(a core.Action) (Action, bool) {
	switch a {
	case core.ActionLeft:
		return ActionLeft, true
	case core.ActionRight:
		return ActionRight, true
	case core.ActionRotate:
		return ActionRotate, true
	case core.ActionSoftDrop:
		return ActionSoftDrop, true
	case core.ActionHardDrop:
		return ActionHardDrop, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Lost(),
		Paused:   g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderSide(dst)

	switch {
	case g.engine.Lost():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - R to restart", g.engine.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Tetris | Score: %06d  Lines: %d", g.engine.DisplayScore(), g.engine.Lines())
	if g.err != nil {
		hud += "  (config: " + g.err.Error() + ")"
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws the frame, the settled cells and the falling piece.
func (g *Game) renderBoard(dst *core.Screen) {
	w, h := g.engine.Width(), g.engine.Height()
	dst.DrawBox(core.NewRect(g.originX, g.originY, w*cellWidth+frameWidth, h+frameWidth))

	for y := range h {
		for x := range w {
			g.drawCell(dst, x, y, emptyRune, core.ColorGray)
		}
	}
	for p, color := range g.engine.OccupiedCells() {
		g.drawCell(dst, p.X, p.Y, blockRune, color)
	}
	if !g.engine.Lost() {
		color := g.engine.ActiveColor()
		for p := range g.engine.ActivePieceCells() {
			g.drawCell(dst, p.X, p.Y, blockRune, color)
		}
	}
}

// drawCell paints one board cell, two terminal columns wide.
func (g *Game) drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	sx := g.originX + 1 + x*cellWidth
	sy := g.originY + 1 + y
	if r == emptyRune {
		dst.SetColored(sx, sy, ' ', c)
		dst.SetColored(sx+1, sy, r, c)
		return
	}
	dst.SetColored(sx, sy, r, c)
	dst.SetColored(sx+1, sy, r, c)
}

// renderSide draws the next-piece preview and pace.
func (g *Game) renderSide(dst *core.Screen) {
	x := g.originX + g.engine.Width()*cellWidth + frameWidth + 2
	y := g.originY + 1

	dst.DrawText(x, y, "Next")
	next := g.engine.Next()
	for c := range (Piece{Kind: next, Rot: RotUp}).Cells() {
		px := x + c.X*cellWidth
		py := y + 2 + c.Y
		dst.SetColored(px, py, blockRune, next.Color())
		dst.SetColored(px+1, py, blockRune, next.Color())
	}

	dst.DrawText(x, y+7, fmt.Sprintf("Pace %.2fs", g.engine.Pace()))
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	g.drawCenteredText(dst, line1, box.Y+1)
	g.drawCenteredText(dst, line2, box.Y+3)
}

// drawCenteredText draws text centered horizontally.
func (g *Game) drawCenteredText(dst *core.Screen, text string, y int) {
	if y < 0 || y >= dst.Height() {
		return
	}
	dst.DrawTextCentered(y, text)
}
