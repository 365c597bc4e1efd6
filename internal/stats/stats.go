// Package stats summarizes a resize: how many seams were carved and what they cost.
package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/maax3v3/seamcarve/internal/energy"
	"github.com/maax3v3/seamcarve/internal/grid"
	"github.com/maax3v3/seamcarve/internal/seam"
)

// Report describes the outcome of one resize.
type Report struct {
	Direction  string        `json:"direction"`
	Seams      int           `json:"seams"`
	MeanCost   float64       `json:"mean_cost"`
	StdDevCost float64       `json:"stddev_cost"`
	MeanEnergy float64       `json:"mean_energy"`
	Duration   time.Duration `json:"duration"`
}

// Summarize builds a Report from the seams of a resize and the energy grid
// of the final image.
func Summarize(direction string, seams []seam.Seam, e *grid.Grid, took time.Duration) Report {
	rep := Report{
		Direction:  direction,
		Seams:      len(seams),
		MeanEnergy: MeanEnergy(e),
		Duration:   took,
	}
	if len(seams) == 0 {
		return rep
	}

	costs := make([]float64, len(seams))
	for i, s := range seams {
		costs[i] = float64(s.Cost)
	}
	if len(costs) == 1 {
		rep.MeanCost = costs[0]
		return rep
	}
	rep.MeanCost, rep.StdDevCost = stat.MeanStdDev(costs, nil)
	return rep
}

// MeanEnergy returns the mean interior energy of e, ignoring sentinel cells.
func MeanEnergy(e *grid.Grid) float64 {
	var values []float64
	for r := 1; r < e.Height-1; r++ {
		row := e.Row(r)
		for c := 1; c < e.Width-1; c++ {
			if row[c] < energy.Sentinel {
				values = append(values, float64(row[c]))
			}
		}
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
