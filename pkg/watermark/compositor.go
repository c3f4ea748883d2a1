package watermark

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// Placement maps base coordinates to watermark coordinates.
type Placement interface {
	// locate returns the watermark pixel covering base pixel (x, y), if any.
	locate(x, y int, mark image.Point) (image.Point, bool)
	String() string
}

// Single anchors the watermark's top-left corner at (X, Y) on the base.
type Single struct {
	X, Y int
}

func (s Single) locate(x, y int, mark image.Point) (image.Point, bool) {
	if x < s.X || x >= s.X+mark.X || y < s.Y || y >= s.Y+mark.Y {
		return image.Point{}, false
	}
	return image.Pt(x-s.X, y-s.Y), true
}

func (s Single) String() string { return fmt.Sprintf("single(%d,%d)", s.X, s.Y) }

// Grid tiles the watermark over the whole base starting at the origin.
type Grid struct{}

func (Grid) locate(x, y int, mark image.Point) (image.Point, bool) {
	return image.Pt(x%mark.X, y%mark.Y), true
}

func (Grid) String() string { return "grid" }

// Option configures a Compositor.
type Option func(*Compositor) error

// WithWorkers splits the pixel scan into n bands of rows processed
// concurrently. The result is identical to a sequential scan.
func WithWorkers(n int) Option {
	return func(c *Compositor) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		c.workers = n
		return nil
	}
}

// Compositor lays a watermark over a base image.
type Compositor struct {
	base    *image.NRGBA
	mark    *image.NRGBA
	mode    TransparencyMode
	weight  int
	workers int
}

// NewCompositor validates the inputs and returns a Compositor. It fails
// before any pixel is touched when the watermark exceeds the base in either
// dimension or weight is outside 0..100.
func NewCompositor(base, mark image.Image, mode TransparencyMode, weight int, opts ...Option) (*Compositor, error) {
	if base == nil || mark == nil {
		return nil, errors.New("base and watermark images are required")
	}
	if mark.Bounds().Empty() {
		return nil, errors.New("watermark image is empty")
	}
	if err := CheckDimensions(base, mark); err != nil {
		return nil, err
	}
	if weight < 0 || weight > 100 {
		return nil, NewPercentageRangeError()
	}
	c := &Compositor{
		base:    imaging.Clone(base),
		mark:    imaging.Clone(mark),
		mode:    mode,
		weight:  weight,
		workers: 1,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MaxOffset returns the largest valid Single anchor for mark on base.
func MaxOffset(base, mark image.Image) image.Point {
	return base.Bounds().Size().Sub(mark.Bounds().Size())
}

// CheckPosition fails unless s keeps mark entirely inside base.
func CheckPosition(base, mark image.Image, s Single) error {
	limit := MaxOffset(base, mark)
	if s.X < 0 || s.Y < 0 || s.X > limit.X || s.Y > limit.Y {
		return errPositionRange()
	}
	return nil
}

// Composite renders a new opaque image the size of the base. Pixels outside
// the placement's footprint are copied from the base unchanged.
func (c *Compositor) Composite(p Placement) (*image.RGBA, error) {
	if s, ok := p.(Single); ok {
		if err := CheckPosition(c.base, c.mark, s); err != nil {
			return nil, err
		}
	}

	size := c.base.Bounds().Size()
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	start := time.Now()
	workers := min(c.workers, max(size.Y, 1))
	if workers == 1 {
		c.scan(out, p, 0, size.Y)
	} else {
		band := (size.Y + workers - 1) / workers
		var wg sync.WaitGroup
		for y0 := 0; y0 < size.Y; y0 += band {
			wg.Add(1)
			go func(y0, y1 int) {
				defer wg.Done()
				c.scan(out, p, y0, y1)
			}(y0, min(y0+band, size.Y))
		}
		wg.Wait()
	}

	Logger().Debug("composited watermark",
		slog.String("placement", p.String()),
		slog.String("mode", c.mode.String()),
		slog.Int("weight", c.weight),
		slog.String("base", size.String()),
		slog.String("watermark", c.mark.Bounds().Size().String()),
		slog.Int("workers", workers),
		slog.Duration("elapsed", time.Since(start)),
	)
	if sameRGB(c.base, out) {
		Logger().Warn("result identical to source; watermark not visible (raise the percentage or check the transparency settings)")
	}
	return out, nil
}

// scan writes rows [y0, y1) of out.
func (c *Compositor) scan(out *image.RGBA, p Placement, y0, y1 int) {
	msize := c.mark.Bounds().Size()
	width := out.Bounds().Dx()
	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			b := c.base.NRGBAAt(x, y)
			base := color.RGBA{R: b.R, G: b.G, B: b.B, A: 0xff}
			pt, ok := p.locate(x, y, msize)
			if !ok {
				out.SetRGBA(x, y, base)
				continue
			}
			out.SetRGBA(x, y, c.mode.Apply(c.mark.NRGBAAt(pt.X, pt.Y), base, c.weight))
		}
	}
}

func sameRGB(src *image.NRGBA, out *image.RGBA) bool {
	for i := 0; i < len(src.Pix); i += 4 {
		if src.Pix[i] != out.Pix[i] || src.Pix[i+1] != out.Pix[i+1] || src.Pix[i+2] != out.Pix[i+2] {
			return false
		}
	}
	return true
}
