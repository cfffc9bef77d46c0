package tetris

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

const frame = 1.0 / 60

func newTestEngine(t *testing.T, w, h int) *Engine {
	t.Helper()
	cfg := DefaultEngineConfig()
	cfg.Width, cfg.Height = w, h
	e, err := NewEngine(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"zero pace", func(c *Config) { c.Pace.Start = 0 }},
		{"zero min pace", func(c *Config) { c.Pace.Min = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tc.mutate(&cfg)
			_, err := NewEngine(cfg, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.True(t, errors.Is(err, config.ErrInvalid))
		})
	}
}

func TestNewEngineSpawnsAtTop(t *testing.T) {
	for seed := range int64(50) {
		e, err := NewEngine(DefaultEngineConfig(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		p := e.Current()
		assert.Equal(t, 0, p.Y)
		assert.Equal(t, RotUp, p.Rot)
		assert.GreaterOrEqual(t, p.X, 0)
		assert.Less(t, p.X, 10-p.Kind.Size())
		assert.False(t, e.Occupied(p))
		assert.False(t, e.Lost())
	}
}

func TestOccupiedOutOfBounds(t *testing.T) {
	e := newTestEngine(t, 10, 20)

	tests := []struct {
		name     string
		piece    Piece
		expected bool
	}{
		{"inside", Piece{Kind: KindO, X: 0, Y: 0}, false},
		{"left wall", Piece{Kind: KindO, X: -1, Y: 0}, true},
		{"right wall", Piece{Kind: KindO, X: 9, Y: 0}, true},
		{"above top", Piece{Kind: KindO, X: 3, Y: -1}, true},
		{"below floor", Piece{Kind: KindO, X: 3, Y: 19}, true},
		{"empty mask columns may hang off", Piece{Kind: KindI, Rot: RotRight, X: -2, Y: 0}, false},
		{"bottom edge", Piece{Kind: KindO, X: 8, Y: 18}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, e.Occupied(tc.piece))
		})
	}

	e.board.Set(5, 5, KindZ)
	assert.True(t, e.Occupied(Piece{Kind: KindO, X: 4, Y: 4}))
	assert.False(t, e.Occupied(Piece{Kind: KindO, X: 6, Y: 4}))
}

func TestHardDropOPiece(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 4, Y: 0}

	e.EnqueueAction(ActionHardDrop)
	e.Update(frame)

	for y := range 20 {
		for x := range 10 {
			filled := (y == 18 || y == 19) && (x == 4 || x == 5)
			expected := KindNone
			if filled {
				expected = KindO
			}
			assert.Equal(t, expected, e.board.At(x, y), "cell (%d, %d)", x, y)
		}
	}
	assert.Equal(t, 10, e.Score())
	assert.False(t, e.Lost())
	assert.Equal(t, 0, e.Current().Y)
	assert.Equal(t, 2, e.Pieces())
}

func TestLockClearsSingleRow(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	for x := 1; x < 10; x++ {
		e.board.Set(x, 19, KindZ)
	}
	e.board.Set(3, 18, KindT)
	e.board.Set(7, 17, KindS)

	// Vertical I in column 0, resting on the floor: only row 19 completes.
	e.current = Piece{Kind: KindI, Rot: RotRight, X: -2, Y: 15}
	before := e.Score()

	e.EnqueueAction(ActionHardDrop)
	e.Update(frame)

	assert.Equal(t, before+110, e.Score(), "lock bonus plus one line")
	assert.Equal(t, 1, e.Lines())

	// Rows above shifted down by one, contents preserved.
	assert.Equal(t, KindT, e.board.At(3, 19))
	assert.Equal(t, KindS, e.board.At(7, 18))
	for y := 17; y < 20; y++ {
		assert.Equal(t, KindI, e.board.At(0, y), "remaining I cell at row %d", y)
	}
	assert.Equal(t, KindNone, e.board.At(0, 16))
	assert.Equal(t, 5, e.board.FilledCount())
}

func TestLineScoring(t *testing.T) {
	tests := []struct {
		lines    int
		expected int
	}{
		{0, 10},
		{1, 110},
		{2, 210},
		{3, 410},
		{4, 810},
	}

	for _, tc := range tests {
		e := newTestEngine(t, 4, 8)
		// Complete rows except column 0; the I piece fills column 0 of the bottom four.
		for y := 8 - tc.lines; y < 8; y++ {
			for x := 1; x < 4; x++ {
				e.board.Set(x, y, KindZ)
			}
		}
		e.current = Piece{Kind: KindI, Rot: RotRight, X: -2, Y: 0}

		e.EnqueueAction(ActionHardDrop)
		e.Update(0)

		assert.Equal(t, tc.expected, e.Score(), "%d lines", tc.lines)
		assert.Equal(t, tc.lines, e.Lines())
	}
}

func TestOneActionPerUpdate(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindT, Rot: RotUp, X: 4, Y: 0}

	e.EnqueueAction(ActionLeft)
	e.EnqueueAction(ActionLeft)
	e.EnqueueAction(ActionRotate)

	e.Update(frame)
	assert.Equal(t, 3, e.Current().X)
	assert.Equal(t, 2, e.Pending())

	e.Update(frame)
	assert.Equal(t, 2, e.Current().X)

	e.Update(frame)
	assert.Equal(t, RotRight, e.Current().Rot)
	assert.Equal(t, 0, e.Pending())
}

func TestRejectedMovesKeepPiece(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	start := Piece{Kind: KindO, Rot: RotUp, X: 0, Y: 0}
	e.current = start

	e.EnqueueAction(ActionLeft)
	e.Update(0)
	assert.Equal(t, start, e.Current())

	e.current = Piece{Kind: KindI, Rot: RotRight, X: 6, Y: 0}
	e.EnqueueAction(ActionRotate)
	e.Update(0)
	assert.Equal(t, RotDown, e.Current().Rot, "flat I fits in columns 6-9")

	// Vertical I against the right wall cannot rotate back to flat.

	e.current = Piece{Kind: KindI, Rot: RotLeft, X: 8, Y: 0}
	e.EnqueueAction(ActionRotate)
	e.Update(0)
	assert.Equal(t, Piece{Kind: KindI, Rot: RotLeft, X: 8, Y: 0}, e.Current(), "no wall kick")
}

func TestGravityDropsOncePerPace(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 4, Y: 0}

	e.Update(0.4)
	assert.Equal(t, 0, e.Current().Y, "pace not reached")

	e.Update(0.2)
	assert.Equal(t, 1, e.Current().Y)

	// A stall crossing several intervals drops one row per interval.
	e.Update(2.0)
	assert.Equal(t, 5, e.Current().Y)
	assert.InDelta(t, 0.1, e.elapsed, 1e-9)
}

func TestBadDeltaIgnored(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 4, Y: 0}

	e.Update(-5)
	assert.Equal(t, 0.0, e.elapsed)
	e.Update(math.Inf(1))
	assert.Equal(t, 0.0, e.elapsed)
	e.Update(math.NaN())
	assert.Equal(t, 0.0, e.elapsed)
	assert.Equal(t, 0, e.Current().Y)
}

func TestSoftDropLocksOnFloor(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 0, Y: 17}

	e.EnqueueAction(ActionSoftDrop)
	e.Update(0)
	assert.Equal(t, 18, e.Current().Y)
	assert.Equal(t, 0, e.Score())

	e.EnqueueAction(ActionSoftDrop)
	e.Update(0)
	assert.Equal(t, 10, e.Score())
	assert.Equal(t, KindO, e.board.At(0, 19))
}

func TestLockClearsActionQueue(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 4, Y: 0}

	e.EnqueueAction(ActionHardDrop)
	e.EnqueueAction(ActionLeft)
	e.EnqueueAction(ActionLeft)
	next := e.Next()

	e.Update(frame)

	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, next, e.Current().Kind)
}

// fillTop fills rows 0-2 except a diagonal of holes, so no row is complete
// and no spawned piece fits.
func fillTop(e *Engine) {
	for y := range 3 {
		for x := range e.Width() {
			if x != y {
				e.board.Set(x, y, KindT)
			}
		}
	}
}

func TestLossOnBlockedSpawn(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	fillTop(e)
	before := e.board.Clone()

	e.current = Piece{Kind: KindO, Rot: RotUp, X: 0, Y: 3}
	e.lock()

	require.True(t, e.Lost())
	assert.Equal(t, LockBonus, e.Score())
	assert.True(t, e.Occupied(e.Current()))

	// Only the locked O was written; the failed spawn left the board alone.
	for p, k := range before.Cells() {
		assert.Equal(t, k, e.board.At(p.X, p.Y))
	}
	assert.Equal(t, before.FilledCount()+4, e.board.FilledCount())
	for _, p := range []Point{{0, 3}, {1, 3}, {0, 4}, {1, 4}} {
		assert.Equal(t, KindO, e.board.At(p.X, p.Y))
	}
}

func TestLostEngineKeepsRunning(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	fillTop(e)
	e.current = Piece{Kind: KindO, Rot: RotUp, X: 0, Y: 3}
	e.lock()
	require.True(t, e.Lost())

	score := e.Score()
	assert.NotPanics(t, func() {
		for range 10 {
			e.EnqueueAction(ActionHardDrop)
			e.Update(1)
		}
	})
	assert.GreaterOrEqual(t, e.Score(), score)
	assert.True(t, e.Lost(), "lost is terminal")
}

func TestDisplayScoreCatchUp(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.score = 137

	var steps []int
	prev := 0
	for range 100 {
		e.Update(0)
		require.LessOrEqual(t, e.DisplayScore(), e.Score())
		steps = append(steps, e.DisplayScore()-prev)
		prev = e.DisplayScore()
		if e.DisplayScore() == e.Score() {
			break
		}
	}

	assert.Equal(t, 137, e.DisplayScore())
	// Gap 137 closes by 10 four times to 97, by 5 ten times to 47, then by 1.
	expectedSteps := 4 + 10 + 47
	assert.Len(t, steps, expectedSteps)
	assert.Equal(t, 10, steps[0])
	assert.Equal(t, 5, steps[4])
	assert.Equal(t, 1, steps[len(steps)-1])

	e.Update(0)
	assert.Equal(t, 137, e.DisplayScore(), "no movement once caught up")
}

func TestPaceAcceleration(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Width, cfg.Height = 4, 8

	run := func(accelerate bool) float64 {
		cfg.Pace.Accelerate = accelerate
		e, err := NewEngine(cfg, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		for y := 4; y < 8; y++ {
			for x := 1; x < 4; x++ {
				e.board.Set(x, y, KindZ)
			}
		}
		e.current = Piece{Kind: KindI, Rot: RotRight, X: -2, Y: 0}
		e.EnqueueAction(ActionHardDrop)
		e.Update(0)
		require.Equal(t, 4, e.Lines())
		return e.Pace()
	}

	assert.Equal(t, 0.5, run(false), "pace is constant by default")
	assert.InDelta(t, 0.48, run(true), 1e-9)
}

func TestOccupiedCellsColors(t *testing.T) {
	e := newTestEngine(t, 10, 20)
	e.board.Set(2, 3, KindI)
	e.board.Set(1, 4, KindZ)

	var colors []string
	for p, c := range e.OccupiedCells() {
		colors = append(colors, c.String())
		assert.Contains(t, []Point{{2, 3}, {1, 4}}, p)
	}
	assert.Equal(t, []string{"cyan", "red"}, colors)

	n := 0
	for range e.ActivePieceCells() {
		n++
	}
	assert.Equal(t, 4, n)
	assert.Equal(t, e.Current().Kind.Color(), e.ActiveColor())
}

func TestEnginesWithSameSeedAgree(t *testing.T) {
	a, err := NewEngine(DefaultEngineConfig(), rand.New(rand.NewSource(2024)))
	require.NoError(t, err)
	b, err := NewEngine(DefaultEngineConfig(), rand.New(rand.NewSource(2024)))
	require.NoError(t, err)

	script := []Action{ActionLeft, ActionRotate, ActionRight, ActionHardDrop, ActionSoftDrop}
	for i := range 2000 {
		if i%7 == 0 {
			a.EnqueueAction(script[i%len(script)])
			b.EnqueueAction(script[i%len(script)])
		}
		a.Update(frame)
		b.Update(frame)
	}

	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.Current(), b.Current())
	assert.True(t, a.board.Equal(b.board))
}
