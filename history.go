package easel

// Action is a recorded, invertible description of one state mutation.
//
// This is a sealed interface: each mutation kind has its own variant
// carrying exactly the data needed to revert and to re-apply it, so every
// action supports full-fidelity redo. Pixel-mutating actions capture whole
// prior buffers; structural actions capture only prior field values.
type Action interface {
	// revert applies the inverse of the mutation.
	revert()
	// reapply re-applies the forward mutation.
	reapply()
}

// History records reversible state transitions and exposes bounded
// undo/redo. The action list is owned exclusively by the history engine:
// popped actions move to the opposite stack, never aliased.
//
// Branching history is not supported: recording a new action clears the
// redo stack, invalidating any previously-undone future.
type History struct {
	undo  []Action
	redo  []Action
	limit int
}

// DefaultHistoryDepth bounds the undo stack when no depth is configured.
const DefaultHistoryDepth = 50

// NewHistory creates a history bounded to the given depth. Non-positive
// depths fall back to DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{limit: depth}
}

// Record pushes a completed mutation onto the undo stack and clears the
// redo stack. When the bound is exceeded the oldest entry is evicted and
// becomes unrecoverable.
func (h *History) Record(a Action) {
	h.undo = append(h.undo, a)
	if len(h.undo) > h.limit {
		Logger().Debug("history bound exceeded, evicting oldest action", "depth", h.limit)
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = nil
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.redo = h.redo[:0]
}

// Undo reverts the most recent mutation and moves it to the redo stack.
// A no-op returning false when the undo stack is empty.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	a := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]

	a.revert()
	h.redo = append(h.redo, a)
	return true
}

// Redo re-applies the most recently undone mutation and moves it back to
// the undo stack. A no-op returning false when the redo stack is empty.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	a := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]

	a.reapply()
	h.undo = append(h.undo, a)
	return true
}

// CanUndo reports whether an undoable action exists.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redoable action exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the configured undo bound.
func (h *History) Depth() int { return h.limit }

// Clear discards both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Action variants. Each holds the stack (or timeline) it acted on, so undo
// keeps working after the session switches frames.

type addLayerAction struct {
	stack       *LayerStack
	index       int
	layer       *Layer
	prevCurrent int
}

func (a *addLayerAction) revert() {
	a.stack.layers = append(a.stack.layers[:a.index], a.stack.layers[a.index+1:]...)
	a.stack.current = a.prevCurrent
}

func (a *addLayerAction) reapply() {
	a.stack.insertAt(a.index, a.layer)
	a.stack.current = a.index
}

type deleteLayerAction struct {
	stack       *LayerStack
	index       int
	layer       *Layer
	prevCurrent int
	nextCurrent int
}

func (a *deleteLayerAction) revert() {
	a.stack.insertAt(a.index, a.layer)
	a.stack.current = a.prevCurrent
}

func (a *deleteLayerAction) reapply() {
	a.stack.layers = append(a.stack.layers[:a.index], a.stack.layers[a.index+1:]...)
	a.stack.current = a.nextCurrent
}

type moveLayerAction struct {
	stack       *LayerStack
	from        int
	to          int
	prevCurrent int
	nextCurrent int
}

func (a *moveLayerAction) revert() {
	a.stack.MoveLayer(a.to, a.from)
	a.stack.current = a.prevCurrent
}

func (a *moveLayerAction) reapply() {
	a.stack.MoveLayer(a.from, a.to)
	a.stack.current = a.nextCurrent
}

type setVisibilityAction struct {
	stack *LayerStack
	index int
	prev  bool
	next  bool
}

func (a *setVisibilityAction) revert()  { a.stack.SetVisibility(a.index, a.prev) }
func (a *setVisibilityAction) reapply() { a.stack.SetVisibility(a.index, a.next) }

type setOpacityAction struct {
	stack *LayerStack
	index int
	prev  float64
	next  float64
}

func (a *setOpacityAction) revert()  { a.stack.SetOpacity(a.index, a.prev) }
func (a *setOpacityAction) reapply() { a.stack.SetOpacity(a.index, a.next) }

type setBlendModeAction struct {
	stack *LayerStack
	index int
	prev  BlendMode
	next  BlendMode
}

func (a *setBlendModeAction) revert()  { a.stack.SetBlendMode(a.index, a.prev) }
func (a *setBlendModeAction) reapply() { a.stack.SetBlendMode(a.index, a.next) }

// strokeAction captures the entire prior buffer, not a diff: both buffers
// stay alive under the copy-on-write discipline, so revert and reapply are
// plain pointer swaps.
type strokeAction struct {
	stack *LayerStack
	index int
	prev  *Pixmap
	next  *Pixmap
}

func (a *strokeAction) revert() {
	if l, ok := a.stack.Layer(a.index); ok {
		l.pixmap = a.prev
	}
}

func (a *strokeAction) reapply() {
	if l, ok := a.stack.Layer(a.index); ok {
		l.pixmap = a.next
	}
}

type mergeLayersAction struct {
	stack       *LayerStack
	topIndex    int
	bottomIndex int
	topLayer    *Layer
	prevBottom  *Pixmap
	merged      *Pixmap
	prevCurrent int
	nextCurrent int
}

func (a *mergeLayersAction) revert() {
	bi := a.bottomIndex
	if bi > a.topIndex {
		bi--
	}
	if l, ok := a.stack.Layer(bi); ok {
		l.pixmap = a.prevBottom
	}
	a.stack.insertAt(a.topIndex, a.topLayer)
	a.stack.current = a.prevCurrent
}

func (a *mergeLayersAction) reapply() {
	a.stack.layers = append(a.stack.layers[:a.topIndex], a.stack.layers[a.topIndex+1:]...)
	bi := a.bottomIndex
	if bi > a.topIndex {
		bi--
	}
	if l, ok := a.stack.Layer(bi); ok {
		l.pixmap = a.merged
	}
	a.stack.current = a.nextCurrent
}

type addFrameAction struct {
	timeline *Timeline
	index    int
	frame    *AnimationFrame
}

func (a *addFrameAction) revert() {
	a.timeline.removeFrameAt(a.index)
}

func (a *addFrameAction) reapply() {
	a.timeline.insertFrameAt(a.index, a.frame)
}

type deleteFrameAction struct {
	timeline *Timeline
	index    int
	frame    *AnimationFrame
}

func (a *deleteFrameAction) revert() {
	a.timeline.insertFrameAt(a.index, a.frame)
}

func (a *deleteFrameAction) reapply() {
	a.timeline.removeFrameAt(a.index)
}
