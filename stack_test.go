package easel

import "testing"

func penStroke(points ...Point) Stroke {
	eng := NewBrushEngine()
	eng.SelectVariant(VariantPen)
	eng.SetSize(10)
	pts := make([]PressurePoint, len(points))
	for i, p := range points {
		pts[i] = PressurePoint{Position: p, Pressure: 1}
	}
	return eng.BuildStroke(pts)
}

func TestAddLayerInsertsAfterCurrent(t *testing.T) {
	s := NewLayerStack(100, 100)
	a := s.AddLayer("A") // [L1 A], current A
	s.SetCurrentIndex(0)
	b := s.AddLayer("B") // inserted after L1: [L1 B A]

	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if got, _ := s.Layer(1); got != b {
		t.Error("B not inserted directly after current")
	}
	if got, _ := s.Layer(2); got != a {
		t.Error("A not pushed up by insertion")
	}
	if s.Current() != b {
		t.Error("new layer did not become current")
	}
}

func TestAddLayerDefaultName(t *testing.T) {
	s := NewLayerStack(10, 10)
	l := s.AddLayer("")
	if l.Name != "Layer 2" {
		t.Errorf("default name = %q, want \"Layer 2\"", l.Name)
	}
}

func TestAddLayerOptions(t *testing.T) {
	s := NewLayerStack(10, 10)
	parent := s.Current()
	l := s.AddLayer("mask", WithBlendMode(BlendMultiply), WithOpacity(1.5), AsMask(parent.ID()))

	if l.Mode != BlendMultiply {
		t.Errorf("mode = %v, want multiply", l.Mode)
	}
	if l.Opacity() != 1 {
		t.Errorf("opacity = %v, want clamped to 1", l.Opacity())
	}
	if !l.IsMask || l.ParentID != parent.ID() {
		t.Error("mask linkage not set")
	}

	got, ok := s.ResolveParent(l)
	if !ok || got != parent {
		t.Error("ResolveParent failed for live parent")
	}
}

func TestResolveParentAfterRemoval(t *testing.T) {
	s := NewLayerStack(10, 10)
	parent := s.AddLayer("parent")
	mask := s.AddLayer("mask", AsMask(parent.ID()))

	s.DeleteLayer(s.IndexOf(parent.ID()))
	if _, ok := s.ResolveParent(mask); ok {
		t.Error("ResolveParent succeeded for removed parent")
	}
}

func TestDeleteLastLayerRejected(t *testing.T) {
	s := NewLayerStack(10, 10)
	if _, ok := s.DeleteLayer(0); ok {
		t.Error("deleting the last layer succeeded")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestDeleteLayerCursor(t *testing.T) {
	s := NewLayerStack(10, 10)
	s.AddLayer("A")
	s.AddLayer("B") // [L1 A B], current 2

	if _, ok := s.DeleteLayer(2); !ok {
		t.Fatal("delete failed")
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("cursor = %d, want 1 after deleting current top", s.CurrentIndex())
	}

	// Deleting below the cursor shifts it left.
	s.AddLayer("B")           // [L1 A B], current 2
	if _, ok := s.DeleteLayer(0); !ok {
		t.Fatal("delete failed")
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("cursor = %d, want 1 after deleting below", s.CurrentIndex())
	}
}

func TestDeleteLayerOutOfRange(t *testing.T) {
	s := NewLayerStack(10, 10)
	s.AddLayer("A")
	if _, ok := s.DeleteLayer(-1); ok {
		t.Error("negative index accepted")
	}
	if _, ok := s.DeleteLayer(2); ok {
		t.Error("past-end index accepted")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestMoveLayer(t *testing.T) {
	s := NewLayerStack(10, 10)
	a := s.AddLayer("A")
	b := s.AddLayer("B") // [L1 A B]

	if !s.MoveLayer(2, 0) { // [B L1 A]
		t.Fatal("move failed")
	}
	if got, _ := s.Layer(0); got != b {
		t.Error("B not at bottom after move")
	}
	// Cursor follows the moved current layer.
	if s.Current() != b {
		t.Error("cursor did not follow moved layer")
	}

	// Moving back restores the original order absent other mutations.
	s.MoveLayer(0, 2)
	if got, _ := s.Layer(1); got != a {
		t.Error("order not restored by inverse move")
	}
	if got, _ := s.Layer(2); got != b {
		t.Error("order not restored by inverse move")
	}
}

func TestMoveLayerOutOfRange(t *testing.T) {
	s := NewLayerStack(10, 10)
	s.AddLayer("A")
	for _, c := range [][2]int{{-1, 0}, {0, 2}, {5, 0}} {
		if s.MoveLayer(c[0], c[1]) {
			t.Errorf("MoveLayer(%d, %d) accepted", c[0], c[1])
		}
	}
}

func TestSetFieldsOutOfRange(t *testing.T) {
	s := NewLayerStack(10, 10)
	if s.SetVisibility(5, false) || s.SetOpacity(5, 0.5) || s.SetBlendMode(5, BlendScreen) {
		t.Error("out-of-range field set accepted")
	}
}

func TestSetOpacityClamps(t *testing.T) {
	s := NewLayerStack(10, 10)
	s.SetOpacity(0, 3.0)
	if got := s.Current().Opacity(); got != 1 {
		t.Errorf("opacity = %v, want 1", got)
	}
	s.SetOpacity(0, -0.5)
	if got := s.Current().Opacity(); got != 0 {
		t.Errorf("opacity = %v, want 0", got)
	}
}

func TestApplyStroke(t *testing.T) {
	s := NewLayerStack(50, 50)

	prev, next, ok := s.ApplyStroke(penStroke(Pt(10, 25), Pt(40, 25)))
	if !ok {
		t.Fatal("stroke rejected")
	}
	if prev != nil {
		t.Error("prev buffer not nil for empty layer")
	}
	if next == nil || s.Current().Pixmap() != next {
		t.Error("new buffer not published")
	}
	if next.GetPixel(25, 25).A == 0 {
		t.Error("stroke did not paint")
	}

	// A second stroke builds on a clone: the first buffer stays intact.
	first := next
	firstCopy := first.Clone()
	_, second, _ := s.ApplyStroke(penStroke(Pt(25, 5), Pt(25, 45)))
	if !first.Equal(firstCopy) {
		t.Error("prior buffer mutated in place")
	}
	if second == first {
		t.Error("stroke did not produce a new buffer")
	}
}

func TestApplyStrokeLocked(t *testing.T) {
	s := NewLayerStack(50, 50)
	s.Current().Locked = true
	if _, _, ok := s.ApplyStroke(penStroke(Pt(0, 0), Pt(10, 10))); ok {
		t.Error("stroke on locked layer accepted")
	}
	if s.Current().Pixmap() != nil {
		t.Error("locked layer gained a buffer")
	}
}

func TestMergeDown(t *testing.T) {
	s := NewLayerStack(50, 50)
	s.ApplyStroke(penStroke(Pt(10, 10), Pt(40, 10))) // bottom layer pixels

	s.AddLayer("top")
	s.ApplyStroke(penStroke(Pt(10, 40), Pt(40, 40))) // top layer pixels

	if !s.MergeDown(1, 0) {
		t.Fatal("merge rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	merged := s.Current().Pixmap()
	if merged.GetPixel(25, 10).A == 0 || merged.GetPixel(25, 40).A == 0 {
		t.Error("merged buffer missing content from one side")
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("cursor = %d, want 0 (merged layer)", s.CurrentIndex())
	}
}

func TestMergeDownWithoutPixels(t *testing.T) {
	s := NewLayerStack(50, 50)
	s.AddLayer("top") // neither layer has pixels
	if s.MergeDown(1, 0) {
		t.Error("merge of empty layers accepted")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestDeepCloneIndependence(t *testing.T) {
	s := NewLayerStack(50, 50)
	s.ApplyStroke(penStroke(Pt(10, 25), Pt(40, 25)))

	clone := s.DeepClone()
	if clone.Len() != s.Len() {
		t.Fatal("clone layer count differs")
	}
	if !clone.Current().Pixmap().Equal(s.Current().Pixmap()) {
		t.Error("clone pixels differ")
	}

	// Painting on the clone leaves the original untouched.
	before := s.Current().Pixmap().Clone()
	clone.ApplyStroke(penStroke(Pt(25, 5), Pt(25, 45)))
	if !s.Current().Pixmap().Equal(before) {
		t.Error("clone stroke affected original stack")
	}
}

func TestDeepCloneRemapsParentIDs(t *testing.T) {
	s := NewLayerStack(10, 10)
	parent := s.AddLayer("parent")
	s.AddLayer("mask", AsMask(parent.ID()))

	clone := s.DeepClone()
	mask, _ := clone.Layer(2)
	resolved, ok := clone.ResolveParent(mask)
	if !ok {
		t.Fatal("cloned mask lost its parent")
	}
	if resolved.ID() == parent.ID() {
		t.Error("cloned mask still points at the original parent")
	}
}
