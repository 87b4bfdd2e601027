package easel

import "github.com/google/uuid"

// ContentType tags what kind of content a layer carries. The core renders
// every kind from its raster payload; the tag survives round-trips through
// persistence so upstream tools can re-edit their own content.
type ContentType int

const (
	// ContentDrawing is freehand raster content produced by strokes.
	ContentDrawing ContentType = iota
	// ContentImage is imported bitmap content.
	ContentImage
	// ContentText is pre-rendered text content.
	ContentText
)

// Layer is one named raster unit in the compositing order.
//
// ParentID is a weak reference: a lookup key into the owning stack, never an
// owning pointer. Resolving it may fail after reordering or deletion, which
// is not an error.
type Layer struct {
	id          string
	Name        string
	Visible     bool
	opacity     float64
	Mode        BlendMode
	Locked      bool
	IsMask      bool
	ParentID    string
	ContentType ContentType

	// pixmap is the published pixel payload. Nil until the first stroke
	// or image import. Treated as immutable once set; mutations swap in
	// a new pixmap.
	pixmap *Pixmap
}

// NewLayer creates a visible, unlocked, fully opaque layer with no pixel
// payload.
func NewLayer(name string) *Layer {
	return &Layer{
		id:      uuid.NewString(),
		Name:    name,
		Visible: true,
		opacity: 1.0,
		Mode:    BlendNormal,
	}
}

// ID returns the layer's opaque unique identifier.
func (l *Layer) ID() string {
	return l.id
}

// Opacity returns the layer opacity in [0, 1].
func (l *Layer) Opacity() float64 {
	return l.opacity
}

// SetOpacity replaces the layer opacity, clamping to [0, 1].
func (l *Layer) SetOpacity(opacity float64) {
	l.opacity = clamp01(opacity)
}

// Pixmap returns the published pixel payload, or nil if the layer has none.
func (l *Layer) Pixmap() *Pixmap {
	return l.pixmap
}

// SetPixmap atomically swaps the pixel payload. The caller must not mutate
// pm after publishing it.
func (l *Layer) SetPixmap(pm *Pixmap) {
	l.pixmap = pm
}

// Clone returns a copy of the layer with a fresh identity. The pixel payload
// pointer is shared: published pixmaps are immutable, so sharing is safe
// until either copy swaps in a new buffer.
func (l *Layer) Clone() *Layer {
	clone := *l
	clone.id = uuid.NewString()
	return &clone
}

// DeepClone returns a copy of the layer with a fresh identity and its own
// copy of the pixel payload. Used when duplicating animation frames, whose
// layers must evolve independently.
func (l *Layer) DeepClone() *Layer {
	clone := l.Clone()
	if l.pixmap != nil {
		clone.pixmap = l.pixmap.Clone()
	}
	return clone
}
