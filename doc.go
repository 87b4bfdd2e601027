// Package easel is the raster-editing core of a layered digital-painting
// tool: a mutable stack of image layers, a brush-stroke generator that turns
// pointer input into rendered strokes, a blend-mode compositor that flattens
// layers into a single image, and a bounded undo/redo history that makes
// every structural and pixel-level edit reversible.
//
// The core operates purely on RGBA raster buffers in a single working color
// space. Encoding to on-disk formats, UI concerns, and color-space
// conversions are left to callers; the persistence boundary is the
// LayerRecord/Manifest pair produced by Document.Snapshot.
//
// Basic usage:
//
//	doc := easel.NewDocument(800, 600)
//	doc.AddLayer("Sketch")
//	eng := easel.NewBrushEngine()
//	eng.SelectVariant(easel.VariantPen)
//	eng.SetColor(easel.RGB(0, 0, 0))
//	stroke := eng.BuildStroke(points)
//	doc.ApplyStroke(stroke)
//	flat := easel.NewCompositor().Composite(doc.Stack(), 800, 600, easel.White)
//
// All mutating operations on a Document are recorded and reversible via
// Undo/Redo. Pixel buffers follow a copy-on-write discipline: once published
// into a Layer, a Pixmap is never mutated in place, only swapped for a new
// one, so concurrently-held history snapshots and in-flight composites never
// observe a torn image.
package easel
