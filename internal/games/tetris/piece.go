package tetris

import (
	"iter"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies a tetromino. The zero value marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// Kinds lists every playable tetromino in bag order.
var Kinds = [...]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// Rotation is one of the four orientations of a piece.
type Rotation uint8

const (
	RotUp Rotation = iota
	RotRight
	RotDown
	RotLeft
)

// Next returns the clockwise successor: up -> right -> down -> left -> up.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

func (r Rotation) String() string {
	switch r {
	case RotUp:
		return "up"
	case RotRight:
		return "right"
	case RotDown:
		return "down"
	case RotLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Direction is a one-cell translation.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

// Delta returns the (dx, dy) offset of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// shape describes a tetromino.
//
// Each mask is a 4x4 occupancy grid packed into 16 bits, read row by row
// from the most significant bit. J up = 0x44C0:
//
//	0100
//	0100
//	1100
//	0000
type shape struct {
	name  string
	size  int // side of the minimal bounding box, bounds the spawn column
	masks [4]uint16
	color core.Color
}

var shapes = [...]shape{
	KindNone: {name: "-"},
	KindI:    {name: "I", size: 4, masks: [4]uint16{0x0F00, 0x2222, 0x00F0, 0x4444}, color: core.ColorCyan},
	KindJ:    {name: "J", size: 3, masks: [4]uint16{0x44C0, 0x8E00, 0x6440, 0x0E20}, color: core.ColorBlue},
	KindL:    {name: "L", size: 3, masks: [4]uint16{0x4460, 0x0E80, 0xC440, 0x2E00}, color: core.ColorOrange},
	KindO:    {name: "O", size: 2, masks: [4]uint16{0xCC00, 0xCC00, 0xCC00, 0xCC00}, color: core.ColorYellow},
	KindS:    {name: "S", size: 3, masks: [4]uint16{0x06C0, 0x8C40, 0x6C00, 0x4620}, color: core.ColorGreen},
	KindT:    {name: "T", size: 3, masks: [4]uint16{0x0E40, 0x4C40, 0x4E00, 0x4640}, color: core.ColorMagenta},
	KindZ:    {name: "Z", size: 3, masks: [4]uint16{0x0C60, 0x4C80, 0xC600, 0x2640}, color: core.ColorRed},
}

func (k Kind) shape() shape {
	if int(k) >= len(shapes) {
		return shapes[KindNone]
	}
	return shapes[k]
}

// Size returns the side of the piece's bounding box (2, 3 or 4).
func (k Kind) Size() int { return k.shape().size }

// Mask returns the occupancy mask for a rotation.
func (k Kind) Mask(r Rotation) uint16 { return k.shape().masks[r%4] }

// Color returns the display color.
func (k Kind) Color() core.Color { return k.shape().color }

func (k Kind) String() string { return k.shape().name }

// Point is a board cell coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Piece is a tetromino placed on the board. Pieces are values:
// Rotate and Move return a new piece and leave the receiver untouched.
type Piece struct {
	Kind Kind
	Rot  Rotation
	X, Y int // Top-left of the 4x4 bounding box
}

// Rotate returns the piece turned clockwise in place.
// No wall-kick is attempted; callers reject rotations that do not fit.
func (p Piece) Rotate() Piece {
	p.Rot = p.Rot.Next()
	return p
}

// Move returns the piece shifted one cell in the given direction.
func (p Piece) Move(d Direction) Piece {
	dx, dy := d.Delta()
	p.X += dx
	p.Y += dy
	return p
}

// Color returns the display color of the piece.
func (p Piece) Color() core.Color {
	return p.Kind.Color()
}

// Cells yields the board cells covered by the piece, row by row.
// Each call starts a fresh scan of the mask.
func (p Piece) Cells() iter.Seq[Point] {
	mask := p.Kind.Mask(p.Rot)
	return func(yield func(Point) bool) {
		for i := range 16 {
			if mask&(0x8000>>i) == 0 {
				continue
			}
			if !yield(Point{X: p.X + i%4, Y: p.Y + i/4}) {
				return
			}
		}
	}
}
