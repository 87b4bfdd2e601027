package easel

import (
	"runtime"
	"sync"
	"time"

	"github.com/gogpu/easel/internal/blend"
)

// Compositor deterministically flattens a layer stack into one pixmap.
//
// Composite is pure: it only reads the stack. Callers may run it on a worker
// goroutine per invocation as long as the stack is not mutated for the
// duration; abandoning a pending composite has no side effects.
type Compositor struct {
	workers int
}

// CompositorOption configures a Compositor during creation.
type CompositorOption func(*Compositor)

// WithWorkers fixes the number of row-band workers. Defaults to GOMAXPROCS.
func WithWorkers(n int) CompositorOption {
	return func(c *Compositor) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewCompositor creates a compositor.
func NewCompositor(opts ...CompositorOption) *Compositor {
	c := &Compositor{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// layerPass is one visible layer resolved for compositing.
type layerPass struct {
	buffer  *Pixmap
	opacity float64
	fn      blend.Func
	mask    *Pixmap
}

// Composite flattens the stack bottom-to-top onto a background of the given
// size. Invisible layers and mask layers are skipped in the main pass;
// a visible mask multiplies its parent's contribution. Layers without a
// pixel buffer contribute nothing.
func (c *Compositor) Composite(stack *LayerStack, width, height int, background RGBA) *Pixmap {
	result := NewPixmap(width, height)
	c.CompositeInto(result, stack, background)
	return result
}

// CompositeInto flattens the stack into an existing buffer, reusing its
// allocation. The buffer is cleared first; its size fixes the output size.
func (c *Compositor) CompositeInto(dst *Pixmap, stack *LayerStack, background RGBA) {
	start := time.Now()
	width, height := dst.Width(), dst.Height()

	dst.Clear(background)

	passes := make([]layerPass, 0, stack.Len())
	for _, l := range stack.Layers() {
		if !l.Visible || l.IsMask || l.Pixmap() == nil {
			continue
		}
		pass := layerPass{
			buffer:  l.Pixmap(),
			opacity: l.Opacity(),
			fn:      l.Mode.fn(),
		}
		if mask, ok := stack.maskFor(l.ID()); ok && mask.Pixmap() != nil {
			pass.mask = mask.Pixmap()
		}
		passes = append(passes, pass)
	}

	if len(passes) > 0 {
		c.run(dst, passes, height)
	}

	Logger().Debug("composite finished",
		"layers", len(passes),
		"width", width,
		"height", height,
		"elapsed", time.Since(start))
}

// run splits the canvas into row bands and composites them concurrently.
// Bands never overlap, so no two workers write the same pixel.
func (c *Compositor) run(dst *Pixmap, passes []layerPass, height int) {
	workers := c.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		compositeRows(dst, passes, 0, height)
		return
	}

	var wg sync.WaitGroup
	band := (height + workers - 1) / workers
	for y0 := 0; y0 < height; y0 += band {
		y1 := y0 + band
		if y1 > height {
			y1 = height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			compositeRows(dst, passes, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// compositeRows composites all passes for rows [y0, y1).
func compositeRows(dst *Pixmap, passes []layerPass, y0, y1 int) {
	width := dst.Width()
	for _, pass := range passes {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				px := pass.buffer.GetPixel(x, y)
				a := px.A * pass.opacity
				if pass.mask != nil {
					a *= pass.mask.GetPixel(x, y).A
				}
				if a == 0 {
					continue
				}
				px.A = a
				dst.BlendPixel(x, y, px, pass.fn)
			}
		}
	}
}

// drawLayerOnto blends one buffer onto dst with a uniform opacity and blend
// mode. Used by layer merging, where no mask or visibility rules apply.
func drawLayerOnto(dst *Pixmap, src *Pixmap, opacity float64, mode BlendMode, mask *Pixmap) {
	passes := []layerPass{{buffer: src, opacity: opacity, fn: mode.fn(), mask: mask}}
	compositeRows(dst, passes, 0, dst.Height())
}
