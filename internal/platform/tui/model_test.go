package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// recordingGame records what the model passes in.
type recordingGame struct {
	resets  int
	resized [2]int
	frames  [][]core.Action
	dts     []float64
	state   core.GameState
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *recordingGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.frames = append(g.frames, in.Clone().Actions)
	g.dts = append(g.dts, dt)
	return core.StepResult{State: g.state}
}

func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "recording") }
func (g *recordingGame) State() core.GameState   { return g.state }
func (g *recordingGame) Resize(w, h int)         { g.resized = [2]int{w, h} }

func newTestModel(g *recordingGame) Model {
	return NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 50, Seed: 1}, log.New(io.Discard))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTickResetsOnceAndMeasuresTime(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)

	start := time.Unix(100, 0)
	m, cmd := update(t, m, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(start.Add(30*time.Millisecond)))

	if g.resets != 1 {
		t.Errorf("expected one reset, got %d", g.resets)
	}
	if len(g.dts) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(g.dts))
	}
	if g.dts[0] != 0.02 {
		t.Errorf("first frame dt = %v, want nominal 0.02", g.dts[0])
	}
	if g.dts[1] < 0.0299 || g.dts[1] > 0.0301 {
		t.Errorf("second frame dt = %v, want 0.03", g.dts[1])
	}
	if m.View() == "" {
		t.Error("expected a view after the first tick")
	}
}

func TestKeysReachGameInPressOrder(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)
	m, _ = update(t, m, TickMsg(time.Unix(0, 0)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, runeKey('x'))
	m, _ = update(t, m, TickMsg(time.Unix(1, 0)))

	got := g.frames[1]
	want := []core.Action{core.ActionRotate, core.ActionLeft, core.ActionHardDrop}
	if len(got) != len(want) {
		t.Fatalf("frame = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Input is consumed by the tick.
	_, _ = update(t, m, TickMsg(time.Unix(2, 0)))
	if len(g.frames[2]) != 0 {
		t.Errorf("expected empty frame, got %v", g.frames[2])
	}
}

func TestQuitKey(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := &recordingGame{}
	m := newTestModel(g)
	m, _ = update(t, m, TickMsg(time.Unix(0, 0)))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resize should not reset a resizable game, got %d resets", g.resets)
	}
	if g.resized != [2]int{100, 30 - helpHeight} {
		t.Errorf("resized to %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}
