// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris game.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Board BoardConfig `yaml:"board"`
	Pace  PaceConfig  `yaml:"pace"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PaceConfig defines how long a piece waits before dropping one row.
type PaceConfig struct {
	Start     float64 `yaml:"start"`     // Seconds per row at game start
	Decrement float64 `yaml:"decrement"` // Seconds removed per cleared line
	Min       float64 `yaml:"min"`       // Floor for the drop interval
	// Accelerate applies Decrement on line clears. Off by default:
	// the classic game never speeds up.
	Accelerate bool `yaml:"accelerate"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid tetris config")

// Validate checks that the configuration can drive a game.
// Non-positive sizes or intervals would otherwise surface later as
// out-of-range access or a gravity loop that never terminates.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width <= 0:
		return fmt.Errorf("%w: board width must be positive, got %d", ErrInvalid, c.Board.Width)
	case c.Board.Height <= 0:
		return fmt.Errorf("%w: board height must be positive, got %d", ErrInvalid, c.Board.Height)
	case c.Pace.Start <= 0:
		return fmt.Errorf("%w: pace start must be positive, got %g", ErrInvalid, c.Pace.Start)
	case c.Pace.Min <= 0:
		return fmt.Errorf("%w: pace min must be positive, got %g", ErrInvalid, c.Pace.Min)
	case c.Pace.Min > c.Pace.Start:
		return fmt.Errorf("%w: pace min %g exceeds start %g", ErrInvalid, c.Pace.Min, c.Pace.Start)
	case c.Pace.Decrement < 0:
		return fmt.Errorf("%w: pace decrement must not be negative, got %g", ErrInvalid, c.Pace.Decrement)
	}
	return nil
}
