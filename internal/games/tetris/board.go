package tetris

import "iter"

// Board is the grid of settled cells, indexed [x][y].
// Only locked pieces are written here; the falling piece lives in the engine.
type Board struct {
	w, h  int
	cells [][]Kind
}

// NewBoard creates an empty w*h board.
func NewBoard(w, h int) *Board {
	b := &Board{w: w, h: h, cells: make([][]Kind, w)}
	for x := range b.cells {
		b.cells[x] = make([]Kind, h)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// At returns the kind settled at (x, y), or KindNone if empty or off the board.
func (b *Board) At(x, y int) Kind {
	if !b.InBounds(x, y) {
		return KindNone
	}
	return b.cells[x][y]
}

// Set stores k at (x, y). Off-board writes are ignored.
func (b *Board) Set(x, y int, k Kind) {
	if b.InBounds(x, y) {
		b.cells[x][y] = k
	}
}

// Lock writes every cell of p into the board.
func (b *Board) Lock(p Piece) {
	for c := range p.Cells() {
		b.Set(c.X, c.Y, p.Kind)
	}
}

// RowComplete reports whether every column of row y is filled.
func (b *Board) RowComplete(y int) bool {
	for x := range b.w {
		if b.cells[x][y] == KindNone {
			return false
		}
	}
	return true
}

// RemoveRow deletes row n: every row above moves down one and row 0 empties.
func (b *Board) RemoveRow(n int) {
	for y := n; y >= 0; y-- {
		for x := range b.w {
			if y == 0 {
				b.cells[x][y] = KindNone
			} else {
				b.cells[x][y] = b.cells[x][y-1]
			}
		}
	}
}

// ClearLines removes every complete row and returns how many were removed.
// Rows are scanned top to bottom; a removal only shifts rows that were
// already scanned, so rows still to be checked keep their contents.
func (b *Board) ClearLines() int {
	removed := 0
	for y := range b.h {
		if b.RowComplete(y) {
			b.RemoveRow(y)
			removed++
		}
	}
	return removed
}

// Cells yields every filled cell in row-major order.
func (b *Board) Cells() iter.Seq2[Point, Kind] {
	return func(yield func(Point, Kind) bool) {
		for y := range b.h {
			for x := range b.w {
				k := b.cells[x][y]
				if k == KindNone {
					continue
				}
				if !yield(Point{X: x, Y: y}, k) {
					return
				}
			}
		}
	}
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for range b.Cells() {
		n++
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.w, b.h)
	for x := range b.cells {
		copy(c.cells[x], b.cells[x])
	}
	return c
}

// Equal returns true if both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.w != other.w || b.h != other.h {
		return false
	}
	for x := range b.cells {
		for y := range b.cells[x] {
			if b.cells[x][y] != other.cells[x][y] {
				return false
			}
		}
	}
	return true
}
