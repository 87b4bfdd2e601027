// Package stroke converts stroked polylines into filled outlines.
//
// Key algorithm insight: a stroke is converted to a FILL polygon where
// the outer offset path goes forward, the inner offset path is reversed,
// and line caps connect the endpoints. The resulting loop is rasterized
// with the non-zero winding rule, which makes self-overlap at joins
// harmless.
package stroke

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns the point displaced by a vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Length returns the vector length.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perp returns the counter-clockwise perpendicular vector.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Cap is the shape of line endpoints.
type Cap int

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a semicircle.
	CapRound
	// CapSquare extends the stroke by half its width.
	CapSquare
)

// Join is the shape of the connection between segments.
type Join int

const (
	// JoinBevel connects segments with a straight edge.
	JoinBevel Join = iota
	// JoinRound connects segments with an arc.
	JoinRound
)

// capArcStep is the angular resolution of round caps and joins.
const capArcStep = math.Pi / 8

// ExpandPolyline converts a polyline with a constant stroke width into a
// closed outline polygon. Returns nil when fewer than 2 distinct points or
// a non-positive width make the stroke empty.
func ExpandPolyline(points []Point, width float64, lineCap Cap, join Join) []Point {
	points = dropCoincident(points)
	if len(points) < 2 || width <= 0 {
		return nil
	}

	half := width / 2

	// Per-vertex unit normals, averaged at interior vertices.
	normals := vertexNormals(points)

	outline := make([]Point, 0, len(points)*2+16)

	// Forward side.
	outline = append(outline, points[0].Add(normals[0].Scale(half)))
	for i := 1; i < len(points); i++ {
		if join == JoinRound && i < len(points)-1 {
			outline = appendJoinArc(outline, points[i], normals[i], half)
		} else {
			outline = append(outline, points[i].Add(normals[i].Scale(half)))
		}
	}

	// End cap.
	last := len(points) - 1
	endDir := points[last].Sub(points[last-1]).Normalize()
	outline = appendCap(outline, points[last], endDir, normals[last], half, lineCap)

	// Return side, reversed.
	for i := last; i >= 0; i-- {
		outline = append(outline, points[i].Add(normals[i].Scale(-half)))
	}

	// Start cap.
	startDir := points[0].Sub(points[1]).Normalize()
	outline = appendCap(outline, points[0], startDir, normals[0].Neg(), half, lineCap)

	return outline
}

// ExpandSegment converts a single segment with differing half-widths at each
// end into a tapered outline with rounded ends. Used for pressure-tapered
// brush segments where every segment is its own mini-path.
func ExpandSegment(p0, p1 Point, w0, w1 float64) []Point {
	dir := p1.Sub(p0)
	if dir.Length() < 1e-9 {
		return nil
	}
	if w0 <= 0 && w1 <= 0 {
		return nil
	}
	if w0 < 0 {
		w0 = 0
	}
	if w1 < 0 {
		w1 = 0
	}

	n := dir.Normalize().Perp()
	h0, h1 := w0/2, w1/2

	outline := make([]Point, 0, 4+2*int(math.Pi/capArcStep))
	outline = append(outline, p0.Add(n.Scale(h0)))
	outline = append(outline, p1.Add(n.Scale(h1)))

	// Round end at p1.
	endDir := dir.Normalize()
	outline = appendCap(outline, p1, endDir, n, h1, CapRound)

	outline = append(outline, p1.Add(n.Scale(-h1)))
	outline = append(outline, p0.Add(n.Scale(-h0)))

	// Round end at p0.
	outline = appendCap(outline, p0, endDir.Neg(), n.Neg(), h0, CapRound)

	return outline
}

// vertexNormals computes a unit normal per vertex. Interior vertices use the
// average of the adjacent segment normals so both offset sides stay parallel.
func vertexNormals(points []Point) []Vec2 {
	segNormals := make([]Vec2, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		segNormals[i] = points[i+1].Sub(points[i]).Normalize().Perp()
	}

	normals := make([]Vec2, len(points))
	normals[0] = segNormals[0]
	normals[len(points)-1] = segNormals[len(segNormals)-1]
	for i := 1; i < len(points)-1; i++ {
		sum := Vec2{
			X: segNormals[i-1].X + segNormals[i].X,
			Y: segNormals[i-1].Y + segNormals[i].Y,
		}
		n := sum.Normalize()
		if n.Length() == 0 {
			// 180-degree reversal; fall back to the incoming normal.
			n = segNormals[i-1]
		}
		normals[i] = n
	}
	return normals
}

// appendCap appends the cap geometry at an endpoint. dir points out of the
// stroke, normal points toward the side the outline is currently on.
func appendCap(outline []Point, p Point, dir, normal Vec2, half float64, lineCap Cap) []Point {
	switch lineCap {
	case CapRound:
		// Arc from +normal around through dir to -normal.
		start := math.Atan2(normal.Y, normal.X)
		end := math.Atan2(-normal.Y, -normal.X)
		// Walk the half circle passing through dir.
		mid := math.Atan2(dir.Y, dir.X)
		outline = append(outline, arcPoints(p, half, start, mid)...)
		outline = append(outline, arcPoints(p, half, mid, end)...)
	case CapSquare:
		ext := dir.Scale(half)
		outline = append(outline,
			p.Add(normal.Scale(half)).Add(ext),
			p.Add(normal.Scale(-half)).Add(ext),
		)
	}
	// CapButt adds nothing; the side-to-side edge closes the end.
	return outline
}

// appendJoinArc appends a small arc at an interior vertex for round joins.
func appendJoinArc(outline []Point, p Point, normal Vec2, half float64) []Point {
	angle := math.Atan2(normal.Y, normal.X)
	return append(outline, arcPoints(p, half, angle-capArcStep, angle+capArcStep)...)
}

// arcPoints samples an arc from angle a0 to a1, walking the shorter way.
func arcPoints(center Point, radius, a0, a1 float64) []Point {
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}

	steps := int(math.Ceil(math.Abs(delta) / capArcStep))
	if steps < 1 {
		steps = 1
	}

	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := a0 + delta*float64(i)/float64(steps)
		pts = append(pts, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}

// dropCoincident removes consecutive duplicate points that would produce
// zero-length segments.
func dropCoincident(points []Point) []Point {
	if len(points) < 2 {
		return points
	}
	out := make([]Point, 0, len(points))
	out = append(out, points[0])
	for _, p := range points[1:] {
		if p.Sub(out[len(out)-1]).Length() > 1e-9 {
			out = append(out, p)
		}
	}
	return out
}
