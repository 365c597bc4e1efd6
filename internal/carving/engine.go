// Package carving drives content-aware width resizing of a loaded image.
//
// An Engine owns the intensity, color, energy and cost grids of one image.
// Every resize starts again from the image as it was loaded, so resizing to
// 300 and then to 350 gives the same result as resizing to 350 directly.
package carving

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	mcol "github.com/maax3v3/seamcarve/internal/color"
	"github.com/maax3v3/seamcarve/internal/energy"
	"github.com/maax3v3/seamcarve/internal/grid"
	"github.com/maax3v3/seamcarve/internal/renderer"
	"github.com/maax3v3/seamcarve/internal/seam"
	"github.com/maax3v3/seamcarve/internal/stats"
)

// DefaultCapacityFactor is the growth headroom provisioned at load time.
const DefaultCapacityFactor = 2

// ProgressFunc receives the completion percentage of a running resize.
// It is called synchronously on the resizing goroutine.
type ProgressFunc func(percent float64)

// Options configures an Engine.
type Options struct {
	// ForwardEnergy selects the forward energy cost model.
	ForwardEnergy bool

	// CapacityFactor multiplies the loaded width and height to size the
	// backing storage. Zero means DefaultCapacityFactor.
	CapacityFactor int

	// Highlight is the color of seam pixels in SeamImage.
	// A fully transparent value means the renderer default (red).
	Highlight color.RGBA

	// Logger receives per-seam debug lines and a summary per resize.
	// Nil discards all output.
	Logger logrus.FieldLogger
}

// DefaultOptions returns Options with the standard cost model and a
// capacity factor of 2.
func DefaultOptions() Options {
	return Options{
		CapacityFactor: DefaultCapacityFactor,
		Highlight:      renderer.DefaultConfig().Highlight,
	}
}

// Engine carves one loaded image. It is safe for concurrent use; resizes are
// serialized.
type Engine struct {
	mu  sync.Mutex
	log logrus.FieldLogger
	cfg renderer.Config

	mode energy.Mode

	width, height int // loaded size

	loaded   *grid.Grid
	loadedCh mcol.Channels

	gray    *grid.Grid
	ch      mcol.Channels
	energy  *grid.Grid
	cost    *grid.Grid
	overlay *grid.Grid

	seams  []seam.Seam
	report stats.Report
}

// Load converts img into the engine's grids and computes its energy and
// cost. Images smaller than 3×3 are rejected with ErrInvalidDimensions.
func Load(img image.Image, opts Options) (*Engine, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, w, h)
	}
	factor := opts.CapacityFactor
	if factor <= 0 {
		factor = DefaultCapacityFactor
	}

	e := &Engine{
		log:    opts.Logger,
		cfg:    renderer.DefaultConfig(),
		width:  w,
		height: h,
	}
	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}
	if opts.Highlight.A != 0 {
		e.cfg.Highlight = opts.Highlight
	}
	if opts.ForwardEnergy {
		e.mode = energy.Forward
	}

	stride, rows := w*factor, h*factor
	var err error
	alloc := func() *grid.Grid {
		if err != nil {
			return nil
		}
		var g *grid.Grid
		g, err = grid.New(w, h, stride, rows)
		return g
	}
	e.loaded, e.gray, e.energy, e.cost, e.overlay = alloc(), alloc(), alloc(), alloc(), alloc()
	for i := range e.ch {
		e.loadedCh[i], e.ch[i] = alloc(), alloc()
	}
	if err != nil {
		return nil, fmt.Errorf("allocating grids: %w", err)
	}

	mcol.Grayscale(img, e.loaded, &e.loadedCh)
	e.reset()

	e.log.WithFields(logrus.Fields{
		"size":     e.formattedSize(),
		"capacity": fmt.Sprintf("%dx%d", stride, rows),
		"mode":     e.mode,
	}).Debug("image loaded")
	return e, nil
}

// reset restores the loaded image and re-derives energy, cost and overlay.
func (e *Engine) reset() {
	e.gray.CopyFrom(e.loaded)
	for i := range e.ch {
		e.ch[i].CopyFrom(e.loadedCh[i])
	}
	e.overlay.CopyFrom(e.loaded)
	e.recompute()
	e.seams = nil
	e.report = stats.Report{}
}

func (e *Engine) recompute() {
	energy.Compute(e.gray, e.energy)
	energy.Accumulate(e.energy, e.cost, e.mode)
}

// Resize carves the loaded image to newWidth columns. See ResizeContext.
func (e *Engine) Resize(newWidth int, progress ProgressFunc) error {
	return e.ResizeContext(context.Background(), newWidth, progress)
}

// ResizeContext carves the loaded image to newWidth columns, narrowing by
// seam removal or widening by batched seam insertion. progress may be nil.
//
// Preconditions are checked before any state changes: a failed call leaves
// the result of the previous resize in place. ctx is checked between seams;
// on cancellation the engine is reset to the loaded image and ctx.Err() is
// returned.
func (e *Engine) ResizeContext(ctx context.Context, newWidth int, progress ProgressFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	w := e.width
	diff := w - newWidth
	if newWidth <= 0 || diff > w-2 {
		return fmt.Errorf("%w: cannot resize width %d to %d", ErrDegenerateResize, w, newWidth)
	}
	if newWidth > e.gray.Stride {
		return fmt.Errorf("%w: width %d, capacity %d", ErrCapacityExceeded, newWidth, e.gray.Stride)
	}
	if progress == nil {
		progress = func(float64) {}
	}

	start := time.Now()
	e.reset()

	var (
		found     []seam.Seam
		delta     int
		direction string
		err       error
	)
	switch {
	case diff > 0:
		direction, delta = "shrink", +1
		found, err = e.shrink(ctx, diff, progress)
	case diff < 0:
		direction, delta = "grow", -1
		found, err = e.grow(ctx, -diff, progress)
	default:
		direction = "none"
	}
	if err != nil {
		e.reset()
		e.log.WithError(err).WithField("target", newWidth).Warn("resize aborted")
		return err
	}

	e.seams = seam.Correct(found, delta)
	seam.Mark(e.overlay, e.seams)
	e.report = stats.Summarize(direction, found, e.energy, time.Since(start))

	e.log.WithFields(logrus.Fields{
		"from":      fmt.Sprintf("%dx%d", e.width, e.height),
		"to":        e.formattedSize(),
		"seams":     len(found),
		"mode":      e.mode,
		"mean_cost": e.report.MeanCost,
		"took":      e.report.Duration,
	}).Info("resize complete")
	return nil
}

func (e *Engine) shrink(ctx context.Context, n int, progress ProgressFunc) ([]seam.Seam, error) {
	found := make([]seam.Seam, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := seam.Find(e.cost)
		seam.Remove(e.gray, s)
		for _, c := range e.ch {
			seam.Remove(c, s)
		}
		e.recompute()
		found = append(found, s)

		e.log.WithFields(logrus.Fields{"seam": i, "cost": s.Cost, "width": e.gray.Width}).Debug("seam removed")
		progress(float64(i+1) * 100 / float64(n))
	}
	return found, nil
}

// grow selects n seams on the frozen image, steering each search away from
// earlier picks with a soft mask, then inserts them in the order found.
func (e *Engine) grow(ctx context.Context, n int, progress ProgressFunc) ([]seam.Seam, error) {
	mask := seam.NewSoftMask(e.cost)
	found := make([]seam.Seam, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := seam.Find(mask.Grid())
		mask.Inject(s)
		found = append(found, s)

		e.log.WithFields(logrus.Fields{"seam": i, "cost": s.Cost}).Debug("seam selected")
		progress(float64(i) * 50 / float64(n))
	}

	for i, s := range found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := seam.Insert(e.gray, s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
		}
		for _, c := range e.ch {
			if err := seam.Insert(c, s); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
			}
		}

		e.log.WithFields(logrus.Fields{"seam": i, "width": e.gray.Width}).Debug("seam inserted")
		progress(50 + float64(i+1)*50/float64(n))
	}
	e.recompute()
	return found, nil
}

// SetForwardEnergy switches the cost model and rebuilds the cost grid.
// The next resize uses the new model.
func (e *Engine) SetForwardEnergy(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = energy.Standard
	if on {
		e.mode = energy.Forward
	}
	energy.Accumulate(e.energy, e.cost, e.mode)
}

// ForwardEnergy reports whether the forward energy cost model is active.
func (e *Engine) ForwardEnergy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode == energy.Forward
}

// Size returns the current width and height.
func (e *Engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gray.Width, e.gray.Height
}

// FormattedSize returns the current size as "WxH".
func (e *Engine) FormattedSize() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formattedSize()
}

func (e *Engine) formattedSize() string {
	return fmt.Sprintf("%dx%d", e.gray.Width, e.gray.Height)
}

// Seams returns the seams of the last resize in loaded-image coordinates.
func (e *Engine) Seams() []seam.Seam {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]seam.Seam, len(e.seams))
	for i, s := range e.seams {
		out[i] = s.Clone()
	}
	return out
}

// Report returns statistics of the last resize.
func (e *Engine) Report() stats.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.report
}

// OriginalImage renders the current intensity grid.
func (e *Engine) OriginalImage() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderer.Grid(e.gray, e.cfg)
}

// EnergyImage renders the current energy grid.
func (e *Engine) EnergyImage() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderer.Grid(e.energy, e.cfg)
}

// CostImage renders the current cumulative cost grid.
func (e *Engine) CostImage() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderer.Grid(e.cost, e.cfg)
}

// SeamImage renders the loaded image in grayscale with the seams of the last
// resize drawn in the highlight color.
func (e *Engine) SeamImage() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderer.Grid(e.overlay, e.cfg)
}

// ColorImage renders the carved color image.
func (e *Engine) ColorImage() *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderer.Channels(e.ch)
}
