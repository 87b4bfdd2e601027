// Package raster provides scanline rasterization for stroke outlines and stamps.
package raster

import "math"

// RGBA represents a color (internal copy to avoid import cycle).
type RGBA struct {
	R, G, B, A float64
}

// Pixmap is an interface for writing pixels (avoids import cycle).
// Implementations decide how a written pixel combines with existing
// content (plain replacement, source-over, erase).
type Pixmap interface {
	Width() int
	Height() int
	SetPixel(x, y int, c RGBA)
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Rasterizer performs scanline rasterization.
type Rasterizer struct {
	width  int
	height int
	aet    *ActiveEdgeTable
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
	}
}

// Fill rasterizes a filled polygon onto a pixmap. The polygon is given as a
// closed point loop (last point need not repeat the first; an implicit
// closing edge is added).
func (r *Rasterizer) Fill(pixmap Pixmap, points []Point, fillRule FillRule, color RGBA) {
	if len(points) < 3 {
		return
	}

	// Build edge list, with an implicit closing edge.
	edges := make([]Edge, 0, len(points))
	for i := 0; i < len(points); i++ {
		p0 := points[i]
		p1 := points[(i+1)%len(points)]

		// Skip horizontal edges
		if math.Abs(p1.Y-p0.Y) < 0.001 {
			continue
		}

		edges = append(edges, NewEdge(p0, p1))
	}

	if len(edges) == 0 {
		return
	}

	// Find y bounds
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, e := range edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	yMinInt := int(math.Floor(yMin))
	yMaxInt := int(math.Ceil(yMax))

	// Clamp to pixmap bounds
	if yMinInt < 0 {
		yMinInt = 0
	}
	if yMaxInt > pixmap.Height() {
		yMaxInt = pixmap.Height()
	}

	for y := yMinInt; y < yMaxInt; y++ {
		scanY := float64(y) + 0.5
		r.scanline(pixmap, edges, scanY, fillRule, color)
	}
}

// FillCircle rasterizes a filled circle, approximated as a polygon whose
// segment count adapts to the radius.
func (r *Rasterizer) FillCircle(pixmap Pixmap, cx, cy, radius float64, color RGBA) {
	if radius <= 0 {
		return
	}

	segments := int(math.Ceil(radius * 2))
	if segments < 8 {
		segments = 8
	}
	if segments > 64 {
		segments = 64
	}

	points := make([]Point, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	r.Fill(pixmap, points, FillRuleNonZero, color)
}

// scanline processes a single scanline.
func (r *Rasterizer) scanline(pixmap Pixmap, edges []Edge, y float64, fillRule FillRule, color RGBA) {
	r.aet.Clear()

	for i := range edges {
		if edges[i].y0 <= y && y < edges[i].y1 {
			r.aet.AddAtY(edges[i], y)
		}
	}

	if len(r.aet.Edges()) == 0 {
		return
	}

	r.aet.Sort()

	activeEdges := r.aet.Edges()
	if fillRule == FillRuleNonZero {
		r.fillNonZero(pixmap, activeEdges, int(y), color)
	} else {
		r.fillEvenOdd(pixmap, activeEdges, int(y), color)
	}
}

// fillNonZero fills using the non-zero winding rule.
func (r *Rasterizer) fillNonZero(pixmap Pixmap, edges []ActiveEdge, y int, color RGBA) {
	winding := 0
	var x1 float64

	for i := 0; i < len(edges); i++ {
		edge := edges[i]

		if winding == 0 {
			x1 = edge.x
		}

		winding += edge.dir

		if winding == 0 {
			x2 := edge.x
			r.fillSpan(pixmap, int(x1), int(x2), y, color)
		}
	}
}

// fillEvenOdd fills using the even-odd rule.
func (r *Rasterizer) fillEvenOdd(pixmap Pixmap, edges []ActiveEdge, y int, color RGBA) {
	for i := 0; i+1 < len(edges); i += 2 {
		x1 := int(edges[i].x)
		x2 := int(edges[i+1].x)
		r.fillSpan(pixmap, x1, x2, y, color)
	}
}

// fillSpan fills a horizontal span of pixels.
func (r *Rasterizer) fillSpan(pixmap Pixmap, x1, x2, y int, color RGBA) {
	if y < 0 || y >= pixmap.Height() {
		return
	}

	if x1 > x2 {
		x1, x2 = x2, x1
	}

	if x1 < 0 {
		x1 = 0
	}
	if x2 > pixmap.Width() {
		x2 = pixmap.Width()
	}

	for x := x1; x < x2; x++ {
		pixmap.SetPixel(x, y, color)
	}
}
