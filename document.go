package easel

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Document is one live painting session: pixel dimensions, resolution,
// color mode, a layer stack, and the bounded history that makes every edit
// reversible. Exactly one mutable Document is live at a time; all
// mutations run to completion before the next is accepted.
//
// When animation is enabled the document gains a timeline whose current
// frame's stack becomes the target of all layer operations.
type Document struct {
	id        string
	name      string
	width     int
	height    int
	dpi       float64
	colorMode ColorMode
	filePath  string

	stack    *LayerStack
	history  *History
	timeline *Timeline
}

// NewDocument creates a document of the given pixel size with one empty
// layer and an empty history.
func NewDocument(width, height int, opts ...DocumentOption) *Document {
	o := defaultDocumentOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Document{
		id:        uuid.NewString(),
		name:      o.name,
		width:     width,
		height:    height,
		dpi:       o.dpi,
		colorMode: o.colorMode,
		filePath:  o.filePath,
		stack:     NewLayerStack(width, height),
		history:   NewHistory(o.historyDepth),
	}
}

// ID returns the document's opaque unique identifier.
func (d *Document) ID() string { return d.id }

// Name returns the document name.
func (d *Document) Name() string { return d.name }

// Width returns the canvas width in device pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in device pixels.
func (d *Document) Height() int { return d.height }

// DPI returns the document resolution.
func (d *Document) DPI() float64 { return d.dpi }

// ColorMode returns the document's working color mode.
func (d *Document) ColorMode() ColorMode { return d.colorMode }

// FilePath returns the associated on-disk location, if any.
func (d *Document) FilePath() string { return d.filePath }

// SetFilePath associates the document with an on-disk location.
func (d *Document) SetFilePath(path string) { d.filePath = path }

// History returns the document's history engine.
func (d *Document) History() *History { return d.history }

// Stack returns the active layer stack: the current animation frame's stack
// when animation is enabled, the document's own stack otherwise.
func (d *Document) Stack() *LayerStack {
	if d.timeline != nil {
		return d.timeline.CurrentFrame().Stack()
	}
	return d.stack
}

// Background returns the compositing background implied by the color mode.
func (d *Document) Background() RGBA {
	if d.colorMode == ColorModeRGBA {
		return Transparent
	}
	return White
}

// Flatten composites the active stack into a single pixmap.
func (d *Document) Flatten() *Pixmap {
	return NewCompositor().Composite(d.Stack(), d.width, d.height, d.Background())
}

// AddLayer inserts a new layer after the current one, makes it current, and
// records the insertion.
func (d *Document) AddLayer(name string, opts ...LayerOption) *Layer {
	stack := d.Stack()
	prevCurrent := stack.CurrentIndex()
	layer := stack.AddLayer(name, opts...)
	d.history.Record(&addLayerAction{
		stack:       stack,
		index:       stack.CurrentIndex(),
		layer:       layer,
		prevCurrent: prevCurrent,
	})
	return layer
}

// DeleteLayer removes the layer at index. Deleting the last remaining layer
// is rejected.
func (d *Document) DeleteLayer(index int) bool {
	stack := d.Stack()
	prevCurrent := stack.CurrentIndex()
	layer, ok := stack.DeleteLayer(index)
	if !ok {
		return false
	}
	d.history.Record(&deleteLayerAction{
		stack:       stack,
		index:       index,
		layer:       layer,
		prevCurrent: prevCurrent,
		nextCurrent: stack.CurrentIndex(),
	})
	return true
}

// MoveLayer moves a layer to a new position in the compositing order.
func (d *Document) MoveLayer(oldIndex, newIndex int) bool {
	stack := d.Stack()
	prevCurrent := stack.CurrentIndex()
	if !stack.MoveLayer(oldIndex, newIndex) {
		return false
	}
	d.history.Record(&moveLayerAction{
		stack:       stack,
		from:        oldIndex,
		to:          newIndex,
		prevCurrent: prevCurrent,
		nextCurrent: stack.CurrentIndex(),
	})
	return true
}

// SetLayerVisibility replaces a layer's visibility flag.
func (d *Document) SetLayerVisibility(index int, visible bool) bool {
	stack := d.Stack()
	layer, ok := stack.Layer(index)
	if !ok || layer.Visible == visible {
		return ok
	}
	prev := layer.Visible
	stack.SetVisibility(index, visible)
	d.history.Record(&setVisibilityAction{stack: stack, index: index, prev: prev, next: visible})
	return true
}

// SetLayerOpacity replaces a layer's opacity, clamped to [0, 1].
func (d *Document) SetLayerOpacity(index int, opacity float64) bool {
	stack := d.Stack()
	layer, ok := stack.Layer(index)
	if !ok {
		return false
	}
	prev := layer.Opacity()
	stack.SetOpacity(index, opacity)
	d.history.Record(&setOpacityAction{stack: stack, index: index, prev: prev, next: layer.Opacity()})
	return true
}

// SetLayerBlendMode replaces a layer's blend mode.
func (d *Document) SetLayerBlendMode(index int, mode BlendMode) bool {
	stack := d.Stack()
	layer, ok := stack.Layer(index)
	if !ok {
		return false
	}
	prev := layer.Mode
	stack.SetBlendMode(index, mode)
	d.history.Record(&setBlendModeAction{stack: stack, index: index, prev: prev, next: mode})
	return true
}

// ApplyStroke rasterizes a stroke onto the current layer and records the
// prior buffer for undo. Rejected when the current layer is locked.
func (d *Document) ApplyStroke(s Stroke) bool {
	stack := d.Stack()
	prev, next, ok := stack.ApplyStroke(s)
	if !ok {
		return false
	}
	d.history.Record(&strokeAction{
		stack: stack,
		index: stack.CurrentIndex(),
		prev:  prev,
		next:  next,
	})
	return true
}

// MergeDown merges the layer at topIndex onto the layer at bottomIndex.
// A no-op unless both layers carry pixel data.
func (d *Document) MergeDown(topIndex, bottomIndex int) bool {
	stack := d.Stack()
	top, okTop := stack.Layer(topIndex)
	bottom, okBottom := stack.Layer(bottomIndex)
	if !okTop || !okBottom {
		return false
	}
	prevBottom := bottom.Pixmap()
	prevCurrent := stack.CurrentIndex()

	if !stack.MergeDown(topIndex, bottomIndex) {
		return false
	}
	d.history.Record(&mergeLayersAction{
		stack:       stack,
		topIndex:    topIndex,
		bottomIndex: bottomIndex,
		topLayer:    top,
		prevBottom:  prevBottom,
		merged:      bottom.Pixmap(),
		prevCurrent: prevCurrent,
		nextCurrent: stack.CurrentIndex(),
	})
	return true
}

// ImportImage adds a new image-content layer holding the given bitmap,
// downscaled to fit the canvas when larger.
func (d *Document) ImportImage(name string, img image.Image) *Layer {
	bounds := img.Bounds()
	if bounds.Dx() > d.width || bounds.Dy() > d.height {
		img = imaging.Fit(img, d.width, d.height, imaging.Lanczos)
	}

	layer := d.AddLayer(name, WithContentType(ContentImage))
	layer.SetPixmap(FromImage(img))
	return layer
}

// Undo reverts the most recent mutation. A no-op when nothing is undoable.
func (d *Document) Undo() bool { return d.history.Undo() }

// Redo re-applies the most recently undone mutation.
func (d *Document) Redo() bool { return d.history.Redo() }

// CanUndo reports whether an undoable mutation exists.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether a redoable mutation exists.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// EnableAnimation attaches a timeline whose first frame adopts the
// document's layer stack. Subsequent layer operations target the current
// frame. Returns the existing timeline when already enabled.
func (d *Document) EnableAnimation(frameRate float64) *Timeline {
	if d.timeline != nil {
		return d.timeline
	}
	t := NewTimeline(d.width, d.height, frameRate)
	t.frames[0].stack = d.stack
	d.timeline = t
	return t
}

// Timeline returns the attached timeline, or nil when animation is not
// enabled.
func (d *Document) Timeline() *Timeline { return d.timeline }

// AddFrame duplicates the current frame and records the insertion.
// Returns false when animation is not enabled.
func (d *Document) AddFrame() bool {
	if d.timeline == nil {
		return false
	}
	frame, index := d.timeline.AddFrame()
	d.history.Record(&addFrameAction{timeline: d.timeline, index: index, frame: frame})
	return true
}

// DeleteFrame removes the current frame and records the removal. Rejected
// when exactly one frame remains or animation is not enabled.
func (d *Document) DeleteFrame() bool {
	if d.timeline == nil {
		return false
	}
	frame, index, ok := d.timeline.DeleteFrame()
	if !ok {
		return false
	}
	d.history.Record(&deleteFrameAction{timeline: d.timeline, index: index, frame: frame})
	return true
}
