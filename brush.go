package easel

import "math"

// BrushVariant identifies one of the recognized brush behaviors. Selecting a
// variant replaces the active BrushSettings wholesale with that variant's
// preset; presets are never merged.
type BrushVariant int

const (
	// VariantPencil draws a hard continuous path of constant width.
	VariantPencil BrushVariant = iota
	// VariantBrush draws pressure-tapered segments.
	VariantBrush
	// VariantAirbrush stamps accumulating circles at every point.
	VariantAirbrush
	// VariantMarker draws a wide semi-transparent constant path.
	VariantMarker
	// VariantPen draws a crisp constant-width path.
	VariantPen
	// VariantEraser removes paint along a constant-width path.
	VariantEraser
	// VariantSmudge is reserved; it needs destination read-back mid-stroke,
	// which the forward-compositing pipeline does not provide yet.
	VariantSmudge
	// VariantWatercolor draws soft pressure-tapered segments at low opacity.
	VariantWatercolor
	// VariantTexture stamps a texture image at every point.
	VariantTexture
)

// variantNames is indexed by BrushVariant.
var variantNames = [...]string{
	"pencil", "brush", "airbrush", "marker", "pen",
	"eraser", "smudge", "watercolor", "texture",
}

// String returns the canonical lowercase name of the variant.
func (v BrushVariant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "pencil"
}

// BrushSettings is the rendering recipe for one brush variant.
type BrushSettings struct {
	// Size is the base stroke width in pixels.
	Size float64
	// Opacity is the paint coverage per pass, in [0, 1].
	Opacity float64
	// Flow scales how much paint each stamp deposits, in [0, 1].
	Flow float64
	// Hardness controls edge falloff, in [0, 1]. 1 is a hard edge.
	Hardness float64
	// Spacing is the maximum gap between resampled points as a fraction
	// of Size.
	Spacing float64
	// PressureSensitive selects whether pen pressure modulates width.
	PressureSensitive bool
	// Texture is the stamp image for the texture variant. Nil falls back
	// to plain circle stamps.
	Texture *Pixmap
}

// brushPresets holds the canonical settings per variant. SelectVariant
// copies from this table, so mutating the active settings never corrupts
// the preset.
var brushPresets = map[BrushVariant]BrushSettings{
	VariantPencil:     {Size: 2, Opacity: 1.0, Flow: 1.0, Hardness: 1.0, Spacing: 0.25},
	VariantBrush:      {Size: 12, Opacity: 1.0, Flow: 0.9, Hardness: 0.8, Spacing: 0.15, PressureSensitive: true},
	VariantAirbrush:   {Size: 24, Opacity: 0.1, Flow: 0.5, Hardness: 0.2, Spacing: 0.1},
	VariantMarker:     {Size: 16, Opacity: 0.6, Flow: 1.0, Hardness: 0.9, Spacing: 0.25},
	VariantPen:        {Size: 4, Opacity: 1.0, Flow: 1.0, Hardness: 1.0, Spacing: 0.25},
	VariantEraser:     {Size: 20, Opacity: 1.0, Flow: 1.0, Hardness: 1.0, Spacing: 0.25},
	VariantSmudge:     {Size: 18, Opacity: 0.8, Flow: 0.7, Hardness: 0.5, Spacing: 0.15, PressureSensitive: true},
	VariantWatercolor: {Size: 20, Opacity: 0.35, Flow: 0.6, Hardness: 0.4, Spacing: 0.15, PressureSensitive: true},
	VariantTexture:    {Size: 24, Opacity: 1.0, Flow: 1.0, Hardness: 1.0, Spacing: 0.3},
}

// minPressureScale keeps low-pressure strokes from vanishing entirely.
const minPressureScale = 0.2

// Stroke is the resampled, styled path produced from raw pointer input,
// ready to be rasterized. Immutable once built.
type Stroke struct {
	Points   []PressurePoint
	Color    RGBA
	Cap      LineCap
	Join     LineJoin
	Variant  BrushVariant
	Settings BrushSettings
}

// Width returns the stroke's base width.
func (s Stroke) Width() float64 {
	return s.Settings.Size
}

// LineCap is the shape of stroke endpoints.
type LineCap int

const (
	// LineCapRound ends the stroke with a semicircle.
	LineCapRound LineCap = iota
	// LineCapButt ends the stroke flat at the endpoint.
	LineCapButt
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin is the shape of the connection between stroke segments.
type LineJoin int

const (
	// LineJoinRound connects segments with an arc.
	LineJoinRound LineJoin = iota
	// LineJoinBevel connects segments with a straight edge.
	LineJoinBevel
)

// BrushEngine converts raw pointer samples into renderable strokes.
// One engine holds the active variant, its settings, and the paint color.
//
// The engine is not safe for concurrent use; the session drives it from
// a single goroutine between pointer-down and pointer-up.
type BrushEngine struct {
	variant  BrushVariant
	settings BrushSettings
	color    RGBA
}

// NewBrushEngine creates a brush engine with the pencil variant selected.
func NewBrushEngine() *BrushEngine {
	e := &BrushEngine{color: Black}
	e.SelectVariant(VariantPencil)
	return e
}

// SelectVariant replaces the active settings with the variant's preset.
// The replacement is atomic: either the whole preset applies or, for an
// unknown variant, nothing changes.
func (e *BrushEngine) SelectVariant(v BrushVariant) {
	preset, ok := brushPresets[v]
	if !ok {
		return
	}
	e.variant = v
	e.settings = preset
}

// Variant returns the active brush variant.
func (e *BrushEngine) Variant() BrushVariant {
	return e.variant
}

// Settings returns a copy of the active settings.
func (e *BrushEngine) Settings() BrushSettings {
	return e.settings
}

// SetSize overrides the active brush size. Non-positive sizes are ignored.
func (e *BrushEngine) SetSize(size float64) {
	if size > 0 {
		e.settings.Size = size
	}
}

// SetOpacity overrides the active brush opacity, clamped to [0, 1].
func (e *BrushEngine) SetOpacity(opacity float64) {
	e.settings.Opacity = clamp01(opacity)
}

// SetTexture installs a stamp image for the texture variant.
func (e *BrushEngine) SetTexture(t *Pixmap) {
	e.settings.Texture = t
}

// SetColor sets the active paint color.
func (e *BrushEngine) SetColor(c RGBA) {
	e.color = c
}

// Color returns the active paint color.
func (e *BrushEngine) Color() RGBA {
	return e.color
}

// ApplyPressureCurve maps a pressure sample to a stroke width. When the
// variant is not pressure sensitive the width is the fixed size. Otherwise
// the curve is size * max(0.2, pressure^1.5): the exponent biases low
// pressures toward a visible minimum so strokes never vanish.
func (e *BrushEngine) ApplyPressureCurve(pressure float64) float64 {
	if !e.settings.PressureSensitive {
		return e.settings.Size
	}
	scale := math.Pow(clamp01(pressure), 1.5)
	if scale < minPressureScale {
		scale = minPressureScale
	}
	return e.settings.Size * scale
}

// Resample inserts intermediate points between raw samples so the path never
// has a gap wider than size * spacing. Position and pressure are both
// linearly interpolated. Fewer than 2 input points are returned unchanged.
func (e *BrushEngine) Resample(points []PressurePoint) []PressurePoint {
	if len(points) < 2 {
		return points
	}

	maxGap := e.settings.Size * e.settings.Spacing
	if maxGap <= 0 {
		return points
	}

	out := make([]PressurePoint, 0, len(points))
	out = append(out, points[0])
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		dist := p0.Position.Distance(p1.Position)
		if dist/maxGap >= 1 {
			segments := int(math.Floor(dist/maxGap)) + 1
			for j := 1; j < segments; j++ {
				t := float64(j) / float64(segments)
				out = append(out, p0.Lerp(p1, t))
			}
		}
		out = append(out, p1)
	}
	return out
}

// BuildStroke resamples the raw points and packages them with the active
// rendering recipe. The eraser variant paints with transparent color; all
// other variants inherit the engine's color.
func (e *BrushEngine) BuildStroke(points []PressurePoint) Stroke {
	color := e.color
	if e.variant == VariantEraser {
		color = Transparent
	}

	resampled := e.Resample(points)
	owned := make([]PressurePoint, len(resampled))
	copy(owned, resampled)

	return Stroke{
		Points:   owned,
		Color:    color,
		Cap:      LineCapRound,
		Join:     LineJoinRound,
		Variant:  e.variant,
		Settings: e.settings,
	}
}
