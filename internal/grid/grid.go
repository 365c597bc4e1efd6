package grid

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned when a logical size exceeds the provisioned storage.
var ErrCapacity = errors.New("grid capacity exceeded")

// Grid is a dense integer matrix stored row-major in a flat buffer.
//
// The buffer is provisioned once for Stride×Rows cells. Width and Height are the
// logical dimensions and may change (within capacity) as seams are carved.
type Grid struct {
	Width, Height int
	Stride, Rows  int
	Cells         []int // row-major: index = r*Stride + c
}

// New allocates a grid with the given logical size and capacity.
func New(width, height, stride, rows int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if width > stride || height > rows {
		return nil, fmt.Errorf("%w: %dx%d does not fit %dx%d", ErrCapacity, width, height, stride, rows)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Stride: stride,
		Rows:   rows,
		Cells:  make([]int, stride*rows),
	}, nil
}

func (g *Grid) index(r, c int) int {
	if r < 0 || r >= g.Height || c < 0 || c >= g.Width {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", r, c, g.Width, g.Height))
	}
	return r*g.Stride + c
}

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) int {
	return g.Cells[g.index(r, c)]
}

// Set stores v at row r, column c.
func (g *Grid) Set(r, c, v int) {
	g.Cells[g.index(r, c)] = v
}

// Add adds v to the value at row r, column c.
func (g *Grid) Add(r, c, v int) {
	g.Cells[g.index(r, c)] += v
}

// Row returns the logical cells of row r. The slice aliases the grid.
func (g *Grid) Row(r int) []int {
	if r < 0 || r >= g.Height {
		panic(fmt.Sprintf("grid: row %d out of range [0,%d)", r, g.Height))
	}
	off := r * g.Stride
	return g.Cells[off : off+g.Width : off+g.Stride]
}

// Resize changes the logical dimensions without touching cell contents.
func (g *Grid) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if width > g.Stride || height > g.Rows {
		return fmt.Errorf("%w: %dx%d does not fit %dx%d", ErrCapacity, width, height, g.Stride, g.Rows)
	}
	g.Width, g.Height = width, height
	return nil
}

// CopyFrom replaces the logical contents and size of g with those of src.
// Both grids must share the same capacity.
func (g *Grid) CopyFrom(src *Grid) {
	if g.Stride != src.Stride || g.Rows != src.Rows {
		panic("grid: CopyFrom between grids of different capacity")
	}
	g.Width, g.Height = src.Width, src.Height
	for r := 0; r < src.Height; r++ {
		copy(g.Row(r), src.Row(r))
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Stride: g.Stride,
		Rows:   g.Rows,
		Cells:  make([]int, len(g.Cells)),
	}
	copy(out.Cells, g.Cells)
	return out
}

// Fill sets every logical cell to v.
func (g *Grid) Fill(v int) {
	for r := 0; r < g.Height; r++ {
		row := g.Row(r)
		for c := range row {
			row[c] = v
		}
	}
}

// MaxBelow returns the largest interior value strictly below limit, or 0 if
// there is none. Interior excludes row 0, the last row, column 0 and the last column.
func (g *Grid) MaxBelow(limit int) int {
	max := 0
	for r := 1; r < g.Height-1; r++ {
		row := g.Row(r)
		for c := 1; c < g.Width-1; c++ {
			if v := row[c]; v > max && v < limit {
				max = v
			}
		}
	}
	return max
}
