// Package tetris implements the tetris rules engine and its arcade adapter.
//
// The Engine is frame driven: the platform queues input actions as they
// happen, calls Update once per frame with the elapsed time, and then reads
// the settled cells and the active piece to draw them. Illegal moves are
// rejected silently and losing is a state, so the engine never returns
// errors after construction.
package tetris

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Scoring constants.
const (
	LockBonus = 10  // Awarded every time a piece locks
	LineBonus = 100 // Awarded for one line; doubles per extra line in the same lock
)

// ErrInvalidConfig is returned by NewEngine for unusable configurations.
var ErrInvalidConfig = errors.New("tetris: invalid engine config")

// Action is an input the engine can queue.
type Action uint8

const (
	ActionLeft Action = iota + 1
	ActionRight
	ActionRotate
	ActionSoftDrop
	ActionHardDrop
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionRotate:
		return "rotate"
	case ActionSoftDrop:
		return "soft-drop"
	case ActionHardDrop:
		return "hard-drop"
	default:
		return "unknown"
	}
}

// Config holds the rules that are fixed for the life of an engine.
type Config struct {
	Width, Height int
	Pace          config.PaceConfig
}

// ConfigFrom converts a loaded game config to an engine config.
func ConfigFrom(c config.TetrisConfig) Config {
	return Config{
		Width:  c.Board.Width,
		Height: c.Board.Height,
		Pace:   c.Pace,
	}
}

// DefaultEngineConfig returns the classic 10x20 rules.
func DefaultEngineConfig() Config {
	return ConfigFrom(config.DefaultTetrisConfig())
}

func (c Config) validate() error {
	err := config.TetrisConfig{
		Board: config.BoardConfig{Width: c.Width, Height: c.Height},
		Pace:  c.Pace,
	}.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Engine owns the board, the falling piece, the score and the drop clock.
type Engine struct {
	cfg   Config
	rng   *rand.Rand
	board *Board
	bag   *Bag

	current Piece
	actions []Action

	elapsed      float64 // Seconds since the last gravity drop
	pace         float64 // Seconds per gravity drop
	score        int
	displayScore int
	lines        int
	pieces       int
	lost         bool
}

// NewEngine creates an engine with an empty board and spawns the first piece.
func NewEngine(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	e := &Engine{
		cfg:   cfg,
		rng:   rng,
		board: NewBoard(cfg.Width, cfg.Height),
		bag:   NewBag(rng),
		pace:  cfg.Pace.Start,
	}
	e.spawn()
	return e, nil
}

// EnqueueAction appends an input to the action queue.
// Actions are applied one per Update, oldest first.
func (e *Engine) EnqueueAction(a Action) {
	e.actions = append(e.actions, a)
}

// Pending returns the number of queued actions.
func (e *Engine) Pending() int {
	return len(e.actions)
}

// Update advances the simulation by dt seconds.
//
// At most one queued action is applied, then the drop clock advances and
// the piece falls one row for every full pace interval crossed. A long
// stall therefore produces several single-row drops rather than a jump.
func (e *Engine) Update(dt float64) {
	if len(e.actions) > 0 {
		a := e.actions[0]
		e.actions = e.actions[1:]
		e.handle(a)
	}

	if dt > 0 && !math.IsInf(dt, 1) {
		e.elapsed += dt
	}
	for e.elapsed > e.pace {
		e.elapsed -= e.pace
		e.drop()
	}

	e.catchUpScore()
}

func (e *Engine) handle(a Action) {
	switch a {
	case ActionLeft:
		e.move(DirLeft)
	case ActionRight:
		e.move(DirRight)
	case ActionRotate:
		e.rotate()
	case ActionSoftDrop:
		e.drop()
	case ActionHardDrop:
		for e.move(DirDown) {
		}
		e.lock()
	}
}

// move shifts the current piece if the destination is free.
func (e *Engine) move(d Direction) bool {
	return e.try(e.current.Move(d))
}

// rotate turns the current piece if the rotated shape fits.
func (e *Engine) rotate() bool {
	return e.try(e.current.Rotate())
}

func (e *Engine) try(next Piece) bool {
	if e.Occupied(next) {
		return false
	}
	e.current = next
	return true
}

// drop moves the current piece down one row, locking it when it cannot fall.
func (e *Engine) drop() {
	if !e.move(DirDown) {
		e.lock()
	}
}

// lock settles the current piece and deals the next one.
func (e *Engine) lock() {
	e.score += LockBonus
	e.board.Lock(e.current)
	// Input buffered during the fall must not steer the next piece.
	e.actions = e.actions[:0]

	if n := e.board.ClearLines(); n > 0 {
		e.score += LineBonus << (n - 1)
		e.lines += n
		e.pace = e.cfg.Pace.Accelerated(e.pace, n)
	}

	e.spawn()
	if e.Occupied(e.current) {
		e.lost = true
	}
}

// spawn deals the next piece at the top row in a random column that
// keeps its bounding box on the board.
func (e *Engine) spawn() {
	k := e.bag.Next()
	x := 0
	if span := e.cfg.Width - k.Size(); span > 0 {
		x = e.rng.Intn(span)
	}
	e.current = Piece{Kind: k, Rot: RotUp, X: x, Y: 0}
	e.pieces++
}

// catchUpScore moves the display score toward the real score in steps
// that shrink as the gap closes.
func (e *Engine) catchUpScore() {
	gap := e.score - e.displayScore
	step := 0
	switch {
	case gap > 100:
		step = 10
	case gap > 50:
		step = 5
	case gap > 0:
		step = 1
	}
	e.displayScore += min(step, gap)
}

// Occupied reports whether p overlaps a settled cell or leaves the board.
func (e *Engine) Occupied(p Piece) bool {
	for c := range p.Cells() {
		if !e.board.InBounds(c.X, c.Y) || e.board.At(c.X, c.Y) != KindNone {
			return true
		}
	}
	return false
}

// Score returns the real score.
func (e *Engine) Score() int { return e.score }

// DisplayScore returns the animated score, which trails Score.
func (e *Engine) DisplayScore() int { return e.displayScore }

// Lost reports whether a spawned piece could not be placed.
func (e *Engine) Lost() bool { return e.lost }

// Pace returns the current drop interval in seconds.
func (e *Engine) Pace() float64 { return e.pace }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// Pieces returns how many pieces have been spawned.
func (e *Engine) Pieces() int { return e.pieces }

// Current returns the falling piece.
func (e *Engine) Current() Piece { return e.current }

// Next returns the kind that will spawn after the current piece locks.
func (e *Engine) Next() Kind { return e.bag.Peek() }

// Width returns the board width in cells.
func (e *Engine) Width() int { return e.cfg.Width }

// Height returns the board height in cells.
func (e *Engine) Height() int { return e.cfg.Height }

// OccupiedCells yields every settled cell with its color, row by row.
func (e *Engine) OccupiedCells() iter.Seq2[Point, core.Color] {
	return func(yield func(Point, core.Color) bool) {
		for p, k := range e.board.Cells() {
			if !yield(p, k.Color()) {
				return
			}
		}
	}
}

// ActivePieceCells yields the cells of the falling piece.
func (e *Engine) ActivePieceCells() iter.Seq[Point] {
	return e.current.Cells()
}

// ActiveColor returns the color of the falling piece.
func (e *Engine) ActiveColor() core.Color {
	return e.current.Color()
}
