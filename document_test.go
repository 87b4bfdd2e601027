package easel

import (
	"image"
	"image/color"
	"testing"
)

func TestNewDocumentDefaults(t *testing.T) {
	d := NewDocument(800, 600, WithName("Sketch"))

	if d.Name() != "Sketch" {
		t.Errorf("name = %q, want Sketch", d.Name())
	}
	if d.Width() != 800 || d.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", d.Width(), d.Height())
	}
	if d.DPI() != 72 {
		t.Errorf("dpi = %v, want 72", d.DPI())
	}
	if d.ColorMode() != ColorModeRGB {
		t.Errorf("color mode = %v, want rgb", d.ColorMode())
	}
	if d.Background() != White {
		t.Errorf("background = %v, want white", d.Background())
	}
	if d.Stack().Len() != 1 {
		t.Errorf("layer count = %d, want 1", d.Stack().Len())
	}
	if d.ID() == "" {
		t.Error("document id is empty")
	}
}

func TestDocumentRGBABackground(t *testing.T) {
	d := NewDocument(10, 10, WithColorMode(ColorModeRGBA))
	if d.Background() != Transparent {
		t.Errorf("background = %v, want transparent", d.Background())
	}
}

// Painting a stroke then undoing it must return the composite to a blank
// canvas, and the stroke itself must only touch pixels along its path.
func TestStrokeCompositeAndUndo(t *testing.T) {
	d := NewDocument(800, 600)
	d.AddLayer("Sketch")
	blank := d.Flatten()

	ok := d.ApplyStroke(penStroke(Pt(100, 100), Pt(400, 300), Pt(700, 100)))
	if !ok {
		t.Fatal("stroke rejected")
	}

	painted := d.Flatten()
	if painted.Equal(blank) {
		t.Fatal("stroke left no mark")
	}

	// Pixels far from the polyline stay untouched.
	for _, p := range []Point{Pt(100, 500), Pt(700, 500), Pt(10, 10)} {
		got := painted.GetPixel(int(p.X), int(p.Y))
		want := blank.GetPixel(int(p.X), int(p.Y))
		if got != want {
			t.Errorf("pixel at %v changed: %v, want %v", p, got, want)
		}
	}
	// A pixel on the path carries the stroke color.
	if c := painted.GetPixel(400, 300); c.A != 1 || c.R != 0 {
		t.Errorf("pixel on path = %v, want opaque black", c)
	}

	if !d.Undo() {
		t.Fatal("undo rejected")
	}
	if !d.Flatten().Equal(blank) {
		t.Error("composite after undo differs from blank canvas")
	}
}

func TestApplyStrokeLockedLayer(t *testing.T) {
	d := NewDocument(100, 100)
	d.Stack().Current().Locked = true

	if d.ApplyStroke(penStroke(Pt(10, 10), Pt(90, 90))) {
		t.Fatal("stroke on locked layer accepted")
	}
	if d.CanUndo() {
		t.Error("rejected stroke recorded in history")
	}
}

func TestImportImage(t *testing.T) {
	d := NewDocument(100, 100)

	src := image.NewNRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}

	layer := d.ImportImage("photo", src)
	if layer.ContentType != ContentImage {
		t.Errorf("content type = %v, want image", layer.ContentType)
	}
	pm := layer.Pixmap()
	if pm == nil {
		t.Fatal("imported layer has no pixels")
	}
	// 400x200 fit into 100x100 preserves aspect ratio.
	if pm.Width() != 100 || pm.Height() != 50 {
		t.Errorf("imported size = %dx%d, want 100x50", pm.Width(), pm.Height())
	}
	if d.Stack().Len() != 2 {
		t.Errorf("layer count = %d, want 2", d.Stack().Len())
	}
	if !d.CanUndo() {
		t.Error("import not undoable")
	}
}

func TestImportImageSmallerThanCanvas(t *testing.T) {
	d := NewDocument(100, 100)
	src := image.NewNRGBA(image.Rect(0, 0, 30, 20))

	layer := d.ImportImage("icon", src)
	pm := layer.Pixmap()
	if pm.Width() != 30 || pm.Height() != 20 {
		t.Errorf("imported size = %dx%d, want 30x20 (no scaling)", pm.Width(), pm.Height())
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	d := NewDocument(120, 80, WithName("Round"), WithDPI(300), WithColorMode(ColorModeRGBA))
	d.ApplyStroke(penStroke(Pt(20, 40), Pt(100, 40)))
	ink := d.AddLayer("ink", WithBlendMode(BlendMultiply), WithOpacity(0.6))
	d.AddLayer("", AsMask(ink.ID()))

	m, records := d.Snapshot()
	restored, err := RestoreDocument(m, records)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.Name() != "Round" || restored.DPI() != 300 {
		t.Errorf("manifest mismatch: %q %v", restored.Name(), restored.DPI())
	}
	if restored.ColorMode() != ColorModeRGBA {
		t.Errorf("color mode = %v, want rgba", restored.ColorMode())
	}
	if restored.ID() != d.ID() {
		t.Error("document id changed")
	}

	src, dst := d.Stack(), restored.Stack()
	if dst.Len() != src.Len() {
		t.Fatalf("layer count = %d, want %d", dst.Len(), src.Len())
	}
	for i, want := range src.Layers() {
		got, _ := dst.Layer(i)
		if got.ID() != want.ID() || got.Name != want.Name {
			t.Errorf("layer %d identity mismatch", i)
		}
		if got.Mode != want.Mode || got.Opacity() != want.Opacity() {
			t.Errorf("layer %d appearance mismatch", i)
		}
		if got.IsMask != want.IsMask || got.ParentID != want.ParentID {
			t.Errorf("layer %d mask linkage mismatch", i)
		}
		if !got.Pixmap().Equal(want.Pixmap()) {
			t.Errorf("layer %d pixels differ", i)
		}
	}

	if !restored.Flatten().Equal(d.Flatten()) {
		t.Error("restored composite differs")
	}
	if restored.CanUndo() {
		t.Error("restored document carries history")
	}
}

func TestRestoreDocumentErrors(t *testing.T) {
	if _, err := RestoreDocument(Manifest{Width: 10, Height: 10}, nil); err != ErrEmptyDocument {
		t.Errorf("empty restore err = %v, want ErrEmptyDocument", err)
	}

	bad := []LayerRecord{{Name: "x", Width: 4, Height: 4, Pixels: make([]byte, 7)}}
	if _, err := RestoreDocument(Manifest{Width: 10, Height: 10}, bad); err != ErrPixelSizeMismatch {
		t.Errorf("bad pixels err = %v, want ErrPixelSizeMismatch", err)
	}
}

func TestSnapshotCopiesPixels(t *testing.T) {
	d := NewDocument(40, 40)
	d.ApplyStroke(penStroke(Pt(5, 20), Pt(35, 20)))

	_, records := d.Snapshot()
	before := make([]byte, len(records[0].Pixels))
	copy(before, records[0].Pixels)

	d.ApplyStroke(penStroke(Pt(20, 5), Pt(20, 35)))

	for i := range before {
		if records[0].Pixels[i] != before[i] {
			t.Fatal("snapshot pixels alias live buffer")
		}
	}
}
