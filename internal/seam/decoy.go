package seam

import (
	"github.com/maax3v3/seamcarve/internal/grid"
)

const (
	decoyCenter = 25 // penalty per row index on the seam itself
	decoyStep   = 5  // decay per pixel of distance

	// pixels raised on each side; one further out the weight is zero
	decoySpread = decoyCenter/decoyStep - 1
)

// SoftMask is a working copy of a cumulative cost grid that collects decoy
// penalties while a batch of seams is selected for insertion. The grid it was
// built from is never modified.
type SoftMask struct {
	g *grid.Grid
}

// NewSoftMask copies cost into a new mask.
func NewSoftMask(cost *grid.Grid) *SoftMask {
	return &SoftMask{g: cost.Clone()}
}

// Grid returns the masked cost grid to search.
func (m *SoftMask) Grid() *grid.Grid {
	return m.g
}

// Inject raises the cost along s so later searches steer away from it.
// Row r gets r·25 on the seam and r·(25-5d) at distance d = 1..4 on either
// side, never touching the frame columns.
func (m *SoftMask) Inject(s Seam) {
	last := m.g.Width - 2
	for i, col := range s.Columns {
		r := i + 1
		if r >= m.g.Height-1 {
			break
		}
		m.g.Add(r, col, r*decoyCenter)
		for d := 1; d <= decoySpread; d++ {
			weight := r * (decoyCenter - d*decoyStep)
			if c := col - d; c >= 1 {
				m.g.Add(r, c, weight)
			}
			if c := col + d; c <= last {
				m.g.Add(r, c, weight)
			}
		}
	}
}
