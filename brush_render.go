package easel

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/easel/internal/blend"
	"github.com/gogpu/easel/internal/raster"
	"github.com/gogpu/easel/internal/stroke"
)

// paintTarget adapts a Pixmap to the rasterizer, combining every written
// pixel with the existing content through a blend function.
type paintTarget struct {
	pm *Pixmap
	fn blend.Func
}

func (t *paintTarget) Width() int  { return t.pm.Width() }
func (t *paintTarget) Height() int { return t.pm.Height() }

func (t *paintTarget) SetPixel(x, y int, c raster.RGBA) {
	t.pm.BlendPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, t.fn)
}

// renderTo rasterizes the stroke onto dst. Rendering is a state machine
// keyed by variant: continuous paths for hard tools, tapered per-segment
// mini-paths for pressure tools, stamps for airbrush and texture.
func (s Stroke) renderTo(dst *Pixmap) {
	if len(s.Points) == 0 {
		return
	}

	switch s.Variant {
	case VariantPencil, VariantPen, VariantMarker:
		s.renderPath(dst, blend.GetFunc(blend.ModeNormal))
	case VariantEraser:
		s.renderPath(dst, blend.GetFunc(blend.ModeErase))
	case VariantBrush, VariantWatercolor:
		s.renderTapered(dst)
	case VariantAirbrush:
		s.renderStamps(dst)
	case VariantTexture:
		if s.Settings.Texture != nil {
			s.renderTextureStamps(dst)
		} else {
			Logger().Warn("texture brush has no texture loaded, falling back to circle stamps")
			s.renderStamps(dst)
		}
	case VariantSmudge:
		// Needs destination read-back mid-stroke; not supported by the
		// forward-compositing pipeline.
		Logger().Warn("smudge brush is not supported, stroke ignored")
	}
}

// paintColor returns the stroke color with the settings opacity folded in.
// The eraser paints pure coverage; its recorded color stays transparent.
func (s Stroke) paintColor() RGBA {
	if s.Variant == VariantEraser {
		return RGBA{A: s.Settings.Opacity}
	}
	c := s.Color
	c.A = clamp01(c.A * s.Settings.Opacity)
	return c
}

// renderPath draws the whole stroke as one continuous constant-width path.
func (s Stroke) renderPath(dst *Pixmap, fn blend.Func) {
	if len(s.Points) == 1 {
		s.renderDot(dst, fn, s.Points[0].Position, s.Settings.Size/2)
		return
	}

	pts := make([]stroke.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = stroke.Point{X: p.Position.X, Y: p.Position.Y}
	}

	outline := stroke.ExpandPolyline(pts, s.Settings.Size, expandCap(s.Cap), expandJoin(s.Join))
	if outline == nil {
		// All points coincident; degrade to a dot.
		s.renderDot(dst, fn, s.Points[0].Position, s.Settings.Size/2)
		return
	}

	target := &paintTarget{pm: dst, fn: fn}
	r := raster.NewRasterizer(dst.Width(), dst.Height())
	c := s.paintColor()
	r.Fill(target, outlinePoints(outline), raster.FillRuleNonZero, raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// renderTapered draws every segment as its own mini-path whose width is
// interpolated from the pressure at each endpoint, so the stroke tapers
// continuously instead of looking faceted.
func (s Stroke) renderTapered(dst *Pixmap) {
	fn := blend.GetFunc(blend.ModeNormal)
	if len(s.Points) == 1 {
		s.renderDot(dst, fn, s.Points[0].Position, s.widthAt(s.Points[0].Pressure)/2)
		return
	}

	target := &paintTarget{pm: dst, fn: fn}
	r := raster.NewRasterizer(dst.Width(), dst.Height())
	c := s.paintColor()
	rc := raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}

	for i := 0; i < len(s.Points)-1; i++ {
		p0, p1 := s.Points[i], s.Points[i+1]
		w0 := s.widthAt(p0.Pressure)
		w1 := s.widthAt(p1.Pressure)

		outline := stroke.ExpandSegment(
			stroke.Point{X: p0.Position.X, Y: p0.Position.Y},
			stroke.Point{X: p1.Position.X, Y: p1.Position.Y},
			w0, w1,
		)
		if outline == nil {
			continue
		}
		r.Fill(target, outlinePoints(outline), raster.FillRuleNonZero, rc)
	}
}

// renderStamps stamps a filled circle at every resampled point. Overlapping
// stamps accumulate opacity, simulating airbrush spray buildup.
func (s Stroke) renderStamps(dst *Pixmap) {
	target := &paintTarget{pm: dst, fn: blend.GetFunc(blend.ModeNormal)}
	r := raster.NewRasterizer(dst.Width(), dst.Height())

	c := s.Color
	c.A = clamp01(c.A * s.Settings.Opacity * s.Settings.Flow)
	rc := raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	radius := s.Settings.Size / 2

	for _, p := range s.Points {
		r.FillCircle(target, p.Position.X, p.Position.Y, radius, rc)
	}
}

// renderTextureStamps stamps the texture image at every point, clipped to a
// square of twice the stroke width.
func (s Stroke) renderTextureStamps(dst *Pixmap) {
	side := int(math.Ceil(s.Settings.Size * 2))
	if side < 1 {
		return
	}

	// Prescale the stamp once; every stamp in a stroke is the same size.
	stamp := image.NewNRGBA(image.Rect(0, 0, side, side))
	xdraw.ApproxBiLinear.Scale(stamp, stamp.Bounds(), s.Settings.Texture.ToImage(), s.Settings.Texture.Bounds(), xdraw.Over, nil)

	fn := blend.GetFunc(blend.ModeNormal)
	flow := clamp01(s.Settings.Opacity * s.Settings.Flow)
	half := float64(side) / 2

	for _, p := range s.Points {
		originX := int(math.Round(p.Position.X - half))
		originY := int(math.Round(p.Position.Y - half))
		for sy := 0; sy < side; sy++ {
			for sx := 0; sx < side; sx++ {
				px := stamp.NRGBAAt(sx, sy)
				if px.A == 0 {
					continue
				}
				c := RGBA{
					R: float64(px.R) / 255,
					G: float64(px.G) / 255,
					B: float64(px.B) / 255,
					A: float64(px.A) / 255 * flow,
				}
				dst.BlendPixel(originX+sx, originY+sy, c, fn)
			}
		}
	}
}

// renderDot draws a single filled circle, used when a stroke degenerates to
// one point.
func (s Stroke) renderDot(dst *Pixmap, fn blend.Func, at Point, radius float64) {
	target := &paintTarget{pm: dst, fn: fn}
	r := raster.NewRasterizer(dst.Width(), dst.Height())
	c := s.paintColor()
	r.FillCircle(target, at.X, at.Y, radius, raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// widthAt maps pressure to width with the same curve the engine applies.
func (s Stroke) widthAt(pressure float64) float64 {
	if !s.Settings.PressureSensitive {
		return s.Settings.Size
	}
	scale := math.Pow(clamp01(pressure), 1.5)
	if scale < minPressureScale {
		scale = minPressureScale
	}
	return s.Settings.Size * scale
}

// outlinePoints converts expander output to rasterizer points.
func outlinePoints(outline []stroke.Point) []raster.Point {
	pts := make([]raster.Point, len(outline))
	for i, p := range outline {
		pts[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return pts
}

// expandCap maps the public cap style to the expander's.
func expandCap(c LineCap) stroke.Cap {
	switch c {
	case LineCapButt:
		return stroke.CapButt
	case LineCapSquare:
		return stroke.CapSquare
	default:
		return stroke.CapRound
	}
}

// expandJoin maps the public join style to the expander's.
func expandJoin(j LineJoin) stroke.Join {
	if j == LineJoinBevel {
		return stroke.JoinBevel
	}
	return stroke.JoinRound
}
