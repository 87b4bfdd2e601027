package easel

import "testing"

// stackFingerprint captures the structural and pixel state of a stack for
// round-trip comparisons.
type stackFingerprint struct {
	names   []string
	visible []bool
	opacity []float64
	modes   []BlendMode
	current int
	pixmaps []*Pixmap
}

func fingerprint(s *LayerStack) stackFingerprint {
	fp := stackFingerprint{current: s.CurrentIndex()}
	for _, l := range s.Layers() {
		fp.names = append(fp.names, l.Name)
		fp.visible = append(fp.visible, l.Visible)
		fp.opacity = append(fp.opacity, l.Opacity())
		fp.modes = append(fp.modes, l.Mode)
		fp.pixmaps = append(fp.pixmaps, l.Pixmap())
	}
	return fp
}

func (fp stackFingerprint) equal(o stackFingerprint) bool {
	if fp.current != o.current || len(fp.names) != len(o.names) {
		return false
	}
	for i := range fp.names {
		if fp.names[i] != o.names[i] || fp.visible[i] != o.visible[i] ||
			fp.opacity[i] != o.opacity[i] || fp.modes[i] != o.modes[i] {
			return false
		}
		if !fp.pixmaps[i].Equal(o.pixmaps[i]) {
			return false
		}
	}
	return true
}

// roundTrip drives undo-then-redo around a single mutation and checks the
// round-trip law: the state before equals the state after undo, and the
// state after the mutation equals the state after redo.
func roundTrip(t *testing.T, d *Document, mutate func()) {
	t.Helper()
	stack := d.Stack()

	before := fingerprint(stack)
	mutate()
	after := fingerprint(stack)

	if !d.Undo() {
		t.Fatal("undo rejected")
	}
	if !fingerprint(stack).equal(before) {
		t.Fatal("undo did not restore prior state")
	}
	if !d.Redo() {
		t.Fatal("redo rejected")
	}
	if !fingerprint(stack).equal(after) {
		t.Fatal("redo did not reproduce mutated state")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	t.Run("addLayer", func(t *testing.T) {
		d := NewDocument(20, 20)
		roundTrip(t, d, func() { d.AddLayer("A") })
	})

	t.Run("deleteLayer", func(t *testing.T) {
		d := NewDocument(20, 20)
		d.AddLayer("A")
		roundTrip(t, d, func() { d.DeleteLayer(1) })
	})

	t.Run("moveLayer", func(t *testing.T) {
		d := NewDocument(20, 20)
		d.AddLayer("A")
		d.AddLayer("B")
		roundTrip(t, d, func() { d.MoveLayer(2, 0) })
	})

	t.Run("setVisibility", func(t *testing.T) {
		d := NewDocument(20, 20)
		roundTrip(t, d, func() { d.SetLayerVisibility(0, false) })
	})

	t.Run("setOpacity", func(t *testing.T) {
		d := NewDocument(20, 20)
		roundTrip(t, d, func() { d.SetLayerOpacity(0, 0.25) })
	})

	t.Run("setBlendMode", func(t *testing.T) {
		d := NewDocument(20, 20)
		roundTrip(t, d, func() { d.SetLayerBlendMode(0, BlendScreen) })
	})

	t.Run("strokeApplied", func(t *testing.T) {
		d := NewDocument(50, 50)
		roundTrip(t, d, func() { d.ApplyStroke(penStroke(Pt(10, 25), Pt(40, 25))) })
	})

	t.Run("strokeOnExistingPixels", func(t *testing.T) {
		d := NewDocument(50, 50)
		d.ApplyStroke(penStroke(Pt(10, 25), Pt(40, 25)))
		roundTrip(t, d, func() { d.ApplyStroke(penStroke(Pt(25, 5), Pt(25, 45))) })
	})

	t.Run("mergeLayers", func(t *testing.T) {
		d := NewDocument(50, 50)
		d.ApplyStroke(penStroke(Pt(10, 10), Pt(40, 10)))
		d.AddLayer("top")
		d.ApplyStroke(penStroke(Pt(10, 40), Pt(40, 40)))
		roundTrip(t, d, func() { d.MergeDown(1, 0) })
	})
}

func TestHistoryUnderflowIsNoOp(t *testing.T) {
	d := NewDocument(10, 10)
	if d.Undo() {
		t.Error("undo on empty history succeeded")
	}
	if d.Redo() {
		t.Error("redo on empty history succeeded")
	}
}

func TestHistoryBoundEvictsOldest(t *testing.T) {
	d := NewDocument(10, 10, WithHistoryDepth(2))
	d.AddLayer("A")
	d.AddLayer("B")
	d.AddLayer("C")

	if !d.CanUndo() {
		t.Fatal("canUndo false after mutations")
	}

	undone := 0
	for d.Undo() {
		undone++
	}
	if undone != 2 {
		t.Errorf("undid %d mutations, want 2 (oldest evicted)", undone)
	}
	// The first AddLayer survives: it fell off the history bound.
	if d.Stack().Len() != 2 {
		t.Errorf("stack len = %d, want 2 (initial layer + unrecoverable A)", d.Stack().Len())
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	d := NewDocument(10, 10)
	d.AddLayer("A")
	d.Undo()
	if !d.CanRedo() {
		t.Fatal("redo unavailable after undo")
	}

	d.AddLayer("B")
	if d.CanRedo() {
		t.Error("redo stack not cleared by new mutation")
	}
}

func TestUndoAcrossMultipleMutations(t *testing.T) {
	d := NewDocument(50, 50)
	d.AddLayer("A")
	d.ApplyStroke(penStroke(Pt(10, 25), Pt(40, 25)))
	d.SetLayerOpacity(1, 0.5)

	for d.Undo() {
	}

	s := d.Stack()
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1 after full unwind", s.Len())
	}
	if s.Current().Pixmap() != nil {
		t.Error("pixels survived full unwind")
	}
}

func TestFrameActionsRoundTrip(t *testing.T) {
	d := NewDocument(20, 20)
	d.EnableAnimation(12)

	d.AddFrame()
	if d.Timeline().FrameCount() != 2 {
		t.Fatal("frame not added")
	}

	d.Undo()
	if got := d.Timeline().FrameCount(); got != 1 {
		t.Errorf("frames after undo = %d, want 1", got)
	}
	d.Redo()
	if got := d.Timeline().FrameCount(); got != 2 {
		t.Errorf("frames after redo = %d, want 2", got)
	}

	// Frame numbers stay contiguous through the round trip.
	for i, f := range d.Timeline().Frames() {
		if f.Number() != i+1 {
			t.Errorf("frame %d numbered %d", i, f.Number())
		}
	}

	d.DeleteFrame()
	if got := d.Timeline().FrameCount(); got != 1 {
		t.Fatal("frame not deleted")
	}
	d.Undo()
	if got := d.Timeline().FrameCount(); got != 2 {
		t.Errorf("frames after delete undo = %d, want 2", got)
	}
}
