package easel

import "fmt"

// LayerOption customizes a layer at creation time.
type LayerOption func(*Layer)

// WithBlendMode sets the new layer's blend mode.
func WithBlendMode(m BlendMode) LayerOption {
	return func(l *Layer) { l.Mode = m }
}

// WithOpacity sets the new layer's opacity, clamped to [0, 1].
func WithOpacity(opacity float64) LayerOption {
	return func(l *Layer) { l.SetOpacity(opacity) }
}

// WithContentType tags the new layer's content kind.
func WithContentType(ct ContentType) LayerOption {
	return func(l *Layer) { l.ContentType = ct }
}

// AsMask marks the new layer as a mask attached to the given parent layer id.
// A mask has no independent render order; it is drawn only in the context of
// its parent.
func AsMask(parentID string) LayerOption {
	return func(l *Layer) {
		l.IsMask = true
		l.ParentID = parentID
	}
}

// LayerStack is the ordered collection of layers forming one document or one
// animation frame. Order is the compositing order: bottom is index 0.
//
// Invariants: the stack is never empty (deleting the last layer is
// rejected), and the current index always refers to a valid layer.
type LayerStack struct {
	width   int
	height  int
	layers  []*Layer
	current int
}

// NewLayerStack creates a stack of the given canvas size holding one
// initial empty layer.
func NewLayerStack(width, height int) *LayerStack {
	s := &LayerStack{width: width, height: height}
	s.layers = []*Layer{NewLayer("Layer 1")}
	return s
}

// Width returns the canvas width in pixels.
func (s *LayerStack) Width() int { return s.width }

// Height returns the canvas height in pixels.
func (s *LayerStack) Height() int { return s.height }

// Len returns the number of layers.
func (s *LayerStack) Len() int { return len(s.layers) }

// Layer returns the layer at index, or false when out of range.
func (s *LayerStack) Layer(index int) (*Layer, bool) {
	if index < 0 || index >= len(s.layers) {
		return nil, false
	}
	return s.layers[index], true
}

// Layers returns the layers in compositing order. The slice is shared;
// callers must treat it as read-only.
func (s *LayerStack) Layers() []*Layer {
	return s.layers
}

// Current returns the layer under the current-layer cursor.
func (s *LayerStack) Current() *Layer {
	return s.layers[s.current]
}

// CurrentIndex returns the current-layer cursor.
func (s *LayerStack) CurrentIndex() int {
	return s.current
}

// SetCurrentIndex moves the cursor. Out-of-range indices are ignored.
func (s *LayerStack) SetCurrentIndex(index int) {
	if index >= 0 && index < len(s.layers) {
		s.current = index
	}
}

// IndexOf returns the index of the layer with the given id, or -1.
func (s *LayerStack) IndexOf(id string) int {
	for i, l := range s.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}

// ResolveParent looks up a layer's parent by its weak reference. Returns
// false when the layer has no parent or the parent has been removed.
func (s *LayerStack) ResolveParent(l *Layer) (*Layer, bool) {
	if l.ParentID == "" {
		return nil, false
	}
	i := s.IndexOf(l.ParentID)
	if i < 0 {
		return nil, false
	}
	return s.layers[i], true
}

// maskFor returns the visible mask layer attached to the given layer id,
// if any.
func (s *LayerStack) maskFor(id string) (*Layer, bool) {
	for _, l := range s.layers {
		if l.IsMask && l.Visible && l.ParentID == id {
			return l, true
		}
	}
	return nil, false
}

// AddLayer inserts a new layer directly after the current one and makes it
// current. An empty name defaults to "Layer {stack length}".
func (s *LayerStack) AddLayer(name string, opts ...LayerOption) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(s.layers)+1)
	}
	l := NewLayer(name)
	for _, opt := range opts {
		opt(l)
	}

	at := s.current + 1
	s.insertAt(at, l)
	s.current = at
	return l
}

// insertAt splices a layer into the stack at the given index.
func (s *LayerStack) insertAt(index int, l *Layer) {
	s.layers = append(s.layers, nil)
	copy(s.layers[index+1:], s.layers[index:])
	s.layers[index] = l
}

// DeleteLayer removes the layer at index. Removing the last remaining layer
// is rejected, keeping the stack non-empty. Returns the removed layer.
func (s *LayerStack) DeleteLayer(index int) (*Layer, bool) {
	if index < 0 || index >= len(s.layers) || len(s.layers) == 1 {
		return nil, false
	}

	removed := s.layers[index]
	s.layers = append(s.layers[:index], s.layers[index+1:]...)

	if s.current >= index && s.current > 0 {
		s.current--
	}
	if s.current >= len(s.layers) {
		s.current = len(s.layers) - 1
	}
	return removed, true
}

// MoveLayer moves the layer at oldIndex to newIndex. Out-of-range indices
// are rejected without mutation. The cursor follows the current layer.
func (s *LayerStack) MoveLayer(oldIndex, newIndex int) bool {
	if oldIndex < 0 || oldIndex >= len(s.layers) ||
		newIndex < 0 || newIndex >= len(s.layers) {
		return false
	}
	if oldIndex == newIndex {
		return true
	}

	currentLayer := s.layers[s.current]

	moved := s.layers[oldIndex]
	s.layers = append(s.layers[:oldIndex], s.layers[oldIndex+1:]...)
	s.insertAt(newIndex, moved)

	// Recompute the cursor from the layer it pointed at.
	for i, l := range s.layers {
		if l == currentLayer {
			s.current = i
			break
		}
	}
	return true
}

// SetVisibility replaces the visibility flag. Out-of-range is a no-op.
func (s *LayerStack) SetVisibility(index int, visible bool) bool {
	l, ok := s.Layer(index)
	if !ok {
		return false
	}
	l.Visible = visible
	return true
}

// SetOpacity replaces the opacity, clamped to [0, 1]. Out-of-range is a
// no-op.
func (s *LayerStack) SetOpacity(index int, opacity float64) bool {
	l, ok := s.Layer(index)
	if !ok {
		return false
	}
	l.SetOpacity(opacity)
	return true
}

// SetBlendMode replaces the blend mode. Out-of-range is a no-op.
func (s *LayerStack) SetBlendMode(index int, mode BlendMode) bool {
	l, ok := s.Layer(index)
	if !ok {
		return false
	}
	l.Mode = mode
	return true
}

// ApplyStroke rasterizes the stroke onto the current layer. The existing
// buffer content is drawn first (when present), then the stroke on top; the
// result replaces the layer's buffer. Returns the prior and new buffers so
// the caller can record a reversible action. Rejected when the current
// layer is locked.
func (s *LayerStack) ApplyStroke(stroke Stroke) (prev, next *Pixmap, ok bool) {
	layer := s.Current()
	if layer.Locked {
		return nil, nil, false
	}

	prev = layer.pixmap
	if prev != nil {
		next = prev.Clone()
	} else {
		next = NewPixmap(s.width, s.height)
	}

	stroke.renderTo(next)
	layer.pixmap = next
	return prev, next, true
}

// MergeDown merges the layer at topIndex onto the layer at bottomIndex:
// bottom is drawn first, then top with its opacity and blend mode. The
// merge result replaces the bottom layer's buffer and the top layer is
// removed. A no-op unless both layers carry pixel data.
func (s *LayerStack) MergeDown(topIndex, bottomIndex int) bool {
	top, okTop := s.Layer(topIndex)
	bottom, okBottom := s.Layer(bottomIndex)
	if !okTop || !okBottom || topIndex == bottomIndex {
		return false
	}
	if top.pixmap == nil || bottom.pixmap == nil {
		return false
	}

	merged := NewPixmap(s.width, s.height)
	drawLayerOnto(merged, bottom.pixmap, 1.0, BlendNormal, nil)
	drawLayerOnto(merged, top.pixmap, top.opacity, top.Mode, nil)

	bottom.pixmap = merged
	s.layers = append(s.layers[:topIndex], s.layers[topIndex+1:]...)

	// The cursor follows the merged layer when it pointed at the removed
	// top layer, and shifts down when it sat above the removed slot.
	bi := bottomIndex
	if bottomIndex > topIndex {
		bi--
	}
	switch {
	case s.current == topIndex:
		s.current = bi
	case s.current > topIndex:
		s.current--
	}
	return true
}

// Clone returns a copy of the stack sharing layer pixel buffers. Layer
// records themselves are copied, so field edits on either stack stay
// independent.
func (s *LayerStack) Clone() *LayerStack {
	clone := &LayerStack{width: s.width, height: s.height, current: s.current}
	clone.layers = make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		c := *l // keep the id: this is a snapshot, not a new layer
		clone.layers[i] = &c
	}
	return clone
}

// DeepClone returns a copy of the stack with copied pixel buffers and fresh
// layer identities, for duplicating animation frames.
func (s *LayerStack) DeepClone() *LayerStack {
	clone := &LayerStack{width: s.width, height: s.height, current: s.current}
	clone.layers = make([]*Layer, len(s.layers))
	remapped := make(map[string]string, len(s.layers))
	for i, l := range s.layers {
		c := l.DeepClone()
		remapped[l.id] = c.id
		clone.layers[i] = c
	}
	// Re-point weak parent references at the cloned layers.
	for _, l := range clone.layers {
		if newID, ok := remapped[l.ParentID]; ok {
			l.ParentID = newID
		}
	}
	return clone
}

// restore replaces this stack's contents with the snapshot's. Used by the
// history engine.
func (s *LayerStack) restore(snapshot *LayerStack) {
	s.width = snapshot.width
	s.height = snapshot.height
	s.current = snapshot.current
	s.layers = make([]*Layer, len(snapshot.layers))
	for i, l := range snapshot.layers {
		c := *l
		s.layers[i] = &c
	}
}
