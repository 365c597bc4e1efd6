// Package seam finds, removes and inserts vertical seams in grids.
package seam

import (
	"slices"

	"github.com/maax3v3/seamcarve/internal/grid"
)

// OverlayMark is written into an overlay grid at every seam pixel.
const OverlayMark = -1

// Seam is a connected top-to-bottom path of one column per interior row.
// Columns[i] is the column of row i+1; the frame rows 0 and height-1 are not stored.
type Seam struct {
	Columns []int
	Cost    int // accumulated cost at the bottom row when the seam was selected
}

// Col returns the seam column for row r. Frame rows use the column of the
// nearest interior row.
func (s Seam) Col(r int) int {
	i := r - 1
	if i < 0 {
		i = 0
	}
	if i >= len(s.Columns) {
		i = len(s.Columns) - 1
	}
	return s.Columns[i]
}

// Clone returns a copy that does not share the column slice.
func (s Seam) Clone() Seam {
	return Seam{Columns: slices.Clone(s.Columns), Cost: s.Cost}
}

// Find returns the cheapest seam in a cumulative cost grid.
//
// The start is the leftmost minimum of the last interior row. The backtrace
// prefers the column straight above, then the left one if strictly cheaper,
// then the right one if strictly cheaper than the current choice. Frame columns
// are never candidates. The grid must be at least 3×3.
func Find(acc *grid.Grid) Seam {
	w, h := acc.Width, acc.Height
	bottom := acc.Row(h - 2)

	col := 1
	for c := 2; c < w-1; c++ {
		if bottom[c] < bottom[col] {
			col = c
		}
	}
	s := Seam{Columns: make([]int, 0, h-2), Cost: bottom[col]}
	s.Columns = append(s.Columns, col)

	for r := h - 2; r > 1; r-- {
		up := acc.Row(r - 1)
		next := col
		if col-1 >= 1 && up[col-1] < up[next] {
			next = col - 1
		}
		if col+1 <= w-2 && up[col+1] < up[next] {
			next = col + 1
		}
		col = next
		s.Columns = append(s.Columns, col)
	}

	slices.Reverse(s.Columns)
	return s
}

// Remove deletes one pixel per row along s, shifting the rest of each row
// left, and shrinks g by one column.
func Remove(g *grid.Grid, s Seam) {
	for r := 0; r < g.Height; r++ {
		row := g.Row(r)
		c := s.Col(r)
		copy(row[c:], row[c+1:])
	}
	if err := g.Resize(g.Width-1, g.Height); err != nil {
		panic(err)
	}
}

// Insert adds one pixel per row at the seam column, shifting the rest of each
// row right, and widens g by one column. The new pixel averages its left
// neighbor and the pixel it displaced; next to the frame it copies its single
// interior neighbor instead.
func Insert(g *grid.Grid, s Seam) error {
	w := g.Width
	if err := g.Resize(w+1, g.Height); err != nil {
		return err
	}
	for r := 0; r < g.Height; r++ {
		row := g.Row(r)
		c := s.Col(r)
		copy(row[c+1:], row[c:w])
		switch c {
		case 1:
			row[c] = row[c+1]
		case w - 2:
			row[c] = row[c-1]
		default:
			row[c] = (row[c-1] + row[c+1]) / 2
		}
	}
	return nil
}

// Correct maps a carving log into a common coordinate space. For every pair of
// seams i < j and every row, a column of j lying right of i's column is shifted
// by delta (+1 after removals, -1 after insertions). The input is not modified.
func Correct(seams []Seam, delta int) []Seam {
	out := make([]Seam, len(seams))
	for i := range seams {
		out[i] = seams[i].Clone()
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			later := out[j].Columns
			for k, c := range out[i].Columns {
				if k < len(later) && later[k] > c {
					later[k] += delta
				}
			}
		}
	}
	return out
}

// Mark writes OverlayMark into overlay at every seam pixel. Pixels outside the
// overlay are skipped.
func Mark(overlay *grid.Grid, seams []Seam) {
	for _, s := range seams {
		for i, c := range s.Columns {
			r := i + 1
			if r >= overlay.Height || c < 0 || c >= overlay.Width {
				continue
			}
			overlay.Set(r, c, OverlayMark)
		}
	}
}
