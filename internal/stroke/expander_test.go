package stroke

import (
	"math"
	"testing"
)

func TestExpandPolylineHorizontal(t *testing.T) {
	points := []Point{{X: 10, Y: 50}, {X: 90, Y: 50}}
	outline := ExpandPolyline(points, 10, CapButt, JoinBevel)

	if len(outline) < 4 {
		t.Fatalf("outline has %d points, want at least 4", len(outline))
	}

	// Every outline point of a butt-capped horizontal stroke lies within
	// half a width of the centerline.
	for _, p := range outline {
		if math.Abs(p.Y-50) > 5.001 {
			t.Errorf("outline point %v further than half width from centerline", p)
		}
		if p.X < 9.999 || p.X > 90.001 {
			t.Errorf("butt-capped outline point %v extends past endpoints", p)
		}
	}
}

func TestExpandPolylineRoundCapExtends(t *testing.T) {
	points := []Point{{X: 10, Y: 50}, {X: 90, Y: 50}}
	outline := ExpandPolyline(points, 10, CapRound, JoinRound)

	maxX := -math.MaxFloat64
	for _, p := range outline {
		maxX = math.Max(maxX, p.X)
	}
	if maxX < 94 {
		t.Errorf("round cap max x = %v, want close to 95", maxX)
	}
}

func TestExpandPolylineDegenerate(t *testing.T) {
	if got := ExpandPolyline(nil, 10, CapButt, JoinBevel); got != nil {
		t.Error("nil points should expand to nil")
	}
	if got := ExpandPolyline([]Point{{X: 1, Y: 1}}, 10, CapButt, JoinBevel); got != nil {
		t.Error("single point should expand to nil")
	}
	// Coincident points collapse to a single point.
	coincident := []Point{{X: 5, Y: 5}, {X: 5, Y: 5}}
	if got := ExpandPolyline(coincident, 10, CapButt, JoinBevel); got != nil {
		t.Error("coincident points should expand to nil")
	}
	if got := ExpandPolyline([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 0, CapButt, JoinBevel); got != nil {
		t.Error("zero width should expand to nil")
	}
}

func TestExpandSegmentTaper(t *testing.T) {
	outline := ExpandSegment(Point{X: 0, Y: 0}, Point{X: 100, Y: 0}, 20, 4)
	if len(outline) == 0 {
		t.Fatal("tapered segment expanded to nothing")
	}

	// Near the fat end the outline reaches close to y = +-10; near the thin
	// end it stays within about +-2 (excluding the round cap bulge along x).
	for _, p := range outline {
		if p.X > 40 && p.X < 60 {
			if math.Abs(p.Y) > 10 {
				t.Errorf("midpoint outline %v wider than fat half-width", p)
			}
		}
	}
}

func TestExpandSegmentDegenerate(t *testing.T) {
	if got := ExpandSegment(Point{X: 3, Y: 3}, Point{X: 3, Y: 3}, 10, 10); got != nil {
		t.Error("zero-length segment should expand to nil")
	}
	if got := ExpandSegment(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 0, 0); got != nil {
		t.Error("zero-width segment should expand to nil")
	}
}

func TestVertexNormalsParallel(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	normals := vertexNormals(points)

	for i, n := range normals {
		if math.Abs(n.X) > 1e-9 || math.Abs(math.Abs(n.Y)-1) > 1e-9 {
			t.Errorf("normal %d = %v, want unit vertical", i, n)
		}
	}
}
