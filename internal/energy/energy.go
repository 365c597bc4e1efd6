// Package energy derives per-pixel importance and the cumulative seam cost
// from an intensity grid.
package energy

import (
	"github.com/maax3v3/seamcarve/internal/grid"
)

// Sentinel is the cost of a border cell. It is far above any reachable
// interior cost so that no seam ever selects a frame pixel.
const Sentinel = 10_000_000

// MaxEnergy caps the gradient magnitude of an interior pixel.
const MaxEnergy = 255

// Mode selects the cost model used by Accumulate.
type Mode int

const (
	Standard Mode = iota // transition costs are zero
	Forward              // charge the discontinuities a seam introduces
)

func (m Mode) String() string {
	if m == Forward {
		return "forward"
	}
	return "standard"
}

// Compute fills dst with the gradient energy of src. Border rows and columns
// get Sentinel. dst is resized to src's logical dimensions and must share its
// capacity.
//
// Interior cells use a Sobel-style operator in both axes, each term divided by 4,
// and the sum is capped at MaxEnergy.
func Compute(src, dst *grid.Grid) {
	mustResize(dst, src.Width, src.Height)
	w, h := src.Width, src.Height

	dst.Fill(Sentinel)

	for i := 1; i < h-1; i++ {
		up, mid, down := src.Row(i-1), src.Row(i), src.Row(i+1)
		out := dst.Row(i)
		for j := 1; j < w-1; j++ {
			gx := abs((down[j-1]+2*down[j]+down[j+1])-(up[j-1]+2*up[j]+up[j+1])) / 4
			gy := abs((up[j+1]+2*mid[j+1]+down[j+1])-(up[j-1]+2*mid[j-1]+down[j-1])) / 4
			out[j] = min(gx+gy, MaxEnergy)
		}
	}
}

// Accumulate fills acc with the cumulative minimum seam cost over e.
// acc is resized to e's logical dimensions and must share its capacity.
//
// Row 1 is the base case (a verbatim copy of e). Every later interior cell adds
// the cheapest of its three upper neighbors plus the transition cost of mode.
// In Forward mode the two columns next to the frame use zero transition costs
// so the sentinel border is never read into a difference.
func Accumulate(e, acc *grid.Grid, mode Mode) {
	acc.CopyFrom(e)
	w, h := e.Width, e.Height

	for r := 2; r < h-1; r++ {
		prev := acc.Row(r - 1)
		out := acc.Row(r)
		er, eup := e.Row(r), e.Row(r-1)
		for c := 1; c < w-1; c++ {
			var cl, cu, cr int
			if mode == Forward && c != 1 && c != w-2 {
				cu = abs(er[c+1] - er[c-1])
				cl = cu + abs(eup[c]-er[c-1])
				cr = cu + abs(eup[c]-er[c+1])
			}

			best := prev[c] + cu
			if v := prev[c-1] + cl; v < best {
				best = v
			}
			if v := prev[c+1] + cr; v < best {
				best = v
			}
			out[c] += best
		}
	}
}

func mustResize(g *grid.Grid, w, h int) {
	if err := g.Resize(w, h); err != nil {
		panic(err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
