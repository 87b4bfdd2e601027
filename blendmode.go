package easel

import "github.com/gogpu/easel/internal/blend"

// BlendMode is the per-pixel combination rule applied when compositing one
// layer onto the accumulated result.
type BlendMode uint8

const (
	// BlendNormal is standard alpha-over compositing.
	BlendNormal BlendMode = iota
	// BlendMultiply multiplies channels, darkening the result.
	BlendMultiply
	// BlendScreen inverts, multiplies, and inverts again, lightening.
	BlendScreen
	// BlendOverlay multiplies or screens depending on the backdrop.
	BlendOverlay
	// BlendDarken keeps the darker channel.
	BlendDarken
	// BlendLighten keeps the lighter channel.
	BlendLighten
	// BlendColorDodge brightens the backdrop to reflect the source.
	BlendColorDodge
	// BlendColorBurn darkens the backdrop to reflect the source.
	BlendColorBurn
	// BlendHardLight multiplies or screens depending on the source.
	BlendHardLight
	// BlendSoftLight is a softer version of hard light.
	BlendSoftLight
	// BlendDifference takes the absolute channel difference.
	BlendDifference
	// BlendExclusion is like difference with lower contrast.
	BlendExclusion
)

// blendModeNames is indexed by BlendMode. Order must match the constants.
var blendModeNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light",
	"difference", "exclusion",
}

// String returns the canonical lowercase name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "normal"
}

// ParseBlendMode resolves a canonical name back to a BlendMode.
// Unknown names resolve to BlendNormal.
func ParseBlendMode(name string) BlendMode {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i)
		}
	}
	return BlendNormal
}

// fn returns the internal blend function for this mode. The public constants
// are declared in the same order as the internal modes.
func (m BlendMode) fn() blend.Func {
	return blend.GetFunc(blend.Mode(m))
}
