package easel

import (
	"time"

	"github.com/google/uuid"
)

// AnimationFrame is one frame of an animation: its own layer stack plus a
// display duration. Frame numbers are 1-indexed and kept contiguous across
// every insert and delete.
type AnimationFrame struct {
	id       string
	number   int
	Duration time.Duration
	stack    *LayerStack
}

// ID returns the frame's opaque unique identifier.
func (f *AnimationFrame) ID() string { return f.id }

// Number returns the frame's 1-indexed position.
func (f *AnimationFrame) Number() int { return f.number }

// Stack returns the frame's layer stack.
func (f *AnimationFrame) Stack() *LayerStack { return f.stack }

// OnionFrame pairs a neighboring frame with the preview opacity it should be
// rendered at.
type OnionFrame struct {
	Frame   *AnimationFrame
	Opacity float64
}

// Timeline is an ordered sequence of animation frames with a playback
// cursor. At least one frame always exists.
type Timeline struct {
	frames    []*AnimationFrame
	current   int
	frameRate float64
	playing   bool
}

// DefaultFrameRate is the playback rate used when none is configured.
const DefaultFrameRate = 12.0

// NewTimeline creates a timeline with a single empty frame of the given
// canvas size. Non-positive frame rates fall back to DefaultFrameRate.
func NewTimeline(width, height int, frameRate float64) *Timeline {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	t := &Timeline{frameRate: frameRate}
	t.frames = []*AnimationFrame{{
		id:       uuid.NewString(),
		number:   1,
		Duration: t.TickInterval(),
		stack:    NewLayerStack(width, height),
	}}
	return t
}

// FrameCount returns the number of frames.
func (t *Timeline) FrameCount() int { return len(t.frames) }

// Frame returns the frame at index, or false when out of range.
func (t *Timeline) Frame(index int) (*AnimationFrame, bool) {
	if index < 0 || index >= len(t.frames) {
		return nil, false
	}
	return t.frames[index], true
}

// Frames returns the frames in playback order. The slice is shared; callers
// must treat it as read-only.
func (t *Timeline) Frames() []*AnimationFrame { return t.frames }

// CurrentFrame returns the frame under the playback cursor.
func (t *Timeline) CurrentFrame() *AnimationFrame { return t.frames[t.current] }

// CurrentIndex returns the playback cursor.
func (t *Timeline) CurrentIndex() int { return t.current }

// SetCurrentIndex moves the cursor. Out-of-range indices are ignored.
func (t *Timeline) SetCurrentIndex(index int) {
	if index >= 0 && index < len(t.frames) {
		t.current = index
	}
}

// AddFrame deep-copies the current frame's layers (pixel buffers included)
// and inserts the copy immediately after the current frame, which it then
// becomes. Returns the new frame and its insertion index.
func (t *Timeline) AddFrame() (*AnimationFrame, int) {
	src := t.CurrentFrame()
	frame := &AnimationFrame{
		id:       uuid.NewString(),
		Duration: src.Duration,
		stack:    src.stack.DeepClone(),
	}
	at := t.current + 1
	t.insertFrameAt(at, frame)
	return frame, at
}

// DeleteFrame removes the current frame. Rejected when exactly one frame
// remains. Returns the removed frame and its index.
func (t *Timeline) DeleteFrame() (*AnimationFrame, int, bool) {
	if len(t.frames) == 1 {
		return nil, 0, false
	}
	index := t.current
	frame := t.frames[index]
	t.removeFrameAt(index)
	return frame, index, true
}

// insertFrameAt splices a frame in at index, renumbers, and moves the
// cursor to it.
func (t *Timeline) insertFrameAt(index int, frame *AnimationFrame) {
	t.frames = append(t.frames, nil)
	copy(t.frames[index+1:], t.frames[index:])
	t.frames[index] = frame
	t.current = index
	t.renumber()
}

// removeFrameAt deletes the frame at index and renumbers.
func (t *Timeline) removeFrameAt(index int) {
	t.frames = append(t.frames[:index], t.frames[index+1:]...)
	if t.current >= len(t.frames) {
		t.current = len(t.frames) - 1
	} else if t.current > index {
		t.current--
	}
	t.renumber()
}

// renumber keeps frame numbers contiguous and 1-indexed.
func (t *Timeline) renumber() {
	for i, f := range t.frames {
		f.number = i + 1
	}
}

// OnionSkin returns up to beforeCount preceding and afterCount following
// frames, each paired with a preview opacity that decays linearly with
// distance: the frame at distance i gets baseOpacity * (1 - (i-1)/count).
func (t *Timeline) OnionSkin(beforeCount, afterCount int, baseOpacity float64) []OnionFrame {
	baseOpacity = clamp01(baseOpacity)
	var out []OnionFrame

	for i := beforeCount; i >= 1; i-- {
		index := t.current - i
		if index < 0 {
			continue
		}
		out = append(out, OnionFrame{
			Frame:   t.frames[index],
			Opacity: baseOpacity * (1 - float64(i-1)/float64(beforeCount)),
		})
	}
	for i := 1; i <= afterCount; i++ {
		index := t.current + i
		if index >= len(t.frames) {
			break
		}
		out = append(out, OnionFrame{
			Frame:   t.frames[index],
			Opacity: baseOpacity * (1 - float64(i-1)/float64(afterCount)),
		})
	}
	return out
}

// Play starts playback.
func (t *Timeline) Play() { t.playing = true }

// Pause stops playback without moving the cursor.
func (t *Timeline) Pause() { t.playing = false }

// IsPlaying reports whether playback is active.
func (t *Timeline) IsPlaying() bool { return t.playing }

// FrameRate returns the playback rate in frames per second.
func (t *Timeline) FrameRate() float64 { return t.frameRate }

// TickInterval returns the delay between playback ticks: 1000/frameRate ms.
// Fractional milliseconds are kept, so 12 fps ticks every 83.33ms.
func (t *Timeline) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / t.frameRate)
}

// Advance moves the cursor one frame forward. While playing, the last frame
// loops back to the first; stepping manually past the last frame while
// paused does not loop.
func (t *Timeline) Advance() {
	if t.current+1 < len(t.frames) {
		t.current++
		return
	}
	if t.playing {
		t.current = 0
	}
}

// StepBackward moves the cursor one frame back, clamped at the first frame.
func (t *Timeline) StepBackward() {
	if t.current > 0 {
		t.current--
	}
}

// RenderFrames composites every frame in order, returning one flattened
// pixmap per frame plus each frame's duration, for animation export.
func (t *Timeline) RenderFrames(c *Compositor, background RGBA) ([]*Pixmap, []time.Duration) {
	buffers := make([]*Pixmap, len(t.frames))
	durations := make([]time.Duration, len(t.frames))
	for i, f := range t.frames {
		buffers[i] = c.Composite(f.stack, f.stack.Width(), f.stack.Height(), background)
		durations[i] = f.Duration
	}
	return buffers, durations
}
