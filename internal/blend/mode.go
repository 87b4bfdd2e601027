// Package blend implements the per-pixel combination rules used when
// compositing one layer onto the accumulated result.
//
// All blend operations work with premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode identifies a per-pixel combination rule.
type Mode uint8

const (
	// ModeNormal is standard source-over alpha compositing. Result: S + D*(1-Sa)
	ModeNormal Mode = iota
	// ModeMultiply multiplies source and destination. Result: S * D
	ModeMultiply
	// ModeScreen produces a lighter result than multiply. Result: 1 - (1-S)*(1-D)
	ModeScreen
	// ModeOverlay is HardLight with swapped layers.
	ModeOverlay
	// ModeDarken selects the darker channel. Result: min(S, D)
	ModeDarken
	// ModeLighten selects the lighter channel. Result: max(S, D)
	ModeLighten
	// ModeColorDodge brightens the destination to reflect the source.
	ModeColorDodge
	// ModeColorBurn darkens the destination to reflect the source.
	ModeColorBurn
	// ModeHardLight is Multiply or Screen depending on the source channel.
	ModeHardLight
	// ModeSoftLight is a soft version of HardLight.
	ModeSoftLight
	// ModeDifference takes the absolute channel difference. Result: |S - D|
	ModeDifference
	// ModeExclusion is like Difference with lower contrast. Result: S + D - 2*S*D
	ModeExclusion

	// Compositing operators used internally by stroke rendering and masks,
	// never selectable as a layer blend mode.

	// ModeErase keeps destination where source is transparent (destination-out).
	// Result: D * (1 - Sa)
	ModeErase
	// ModeMaskIn keeps destination where source is opaque (destination-in).
	// Result: D * Sa
	ModeMaskIn
	// ModeReplace replaces the destination with the source.
	ModeReplace
)

// Func is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
// Parameters:
//   - sr, sg, sb, sa: source color (red, green, blue, alpha)
//   - dr, dg, db, da: destination color
//
// Returns: resulting color (r, g, b, a) after blending.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetFunc returns the blend function for the given mode.
// Returns normal (source-over) for unknown modes.
func GetFunc(mode Mode) Func {
	switch mode {
	case ModeNormal:
		return blendNormal
	case ModeMultiply:
		return blendMultiply
	case ModeScreen:
		return blendScreen
	case ModeOverlay:
		return blendOverlay
	case ModeDarken:
		return blendDarken
	case ModeLighten:
		return blendLighten
	case ModeColorDodge:
		return blendColorDodge
	case ModeColorBurn:
		return blendColorBurn
	case ModeHardLight:
		return blendHardLight
	case ModeSoftLight:
		return blendSoftLight
	case ModeDifference:
		return blendDifference
	case ModeExclusion:
		return blendExclusion
	case ModeErase:
		return blendErase
	case ModeMaskIn:
		return blendMaskIn
	case ModeReplace:
		return blendReplace
	default:
		return blendNormal
	}
}

// Porter-Duff operators (premultiplied alpha)

// blendNormal composites source over destination.
// Formula: S + D * (1 - Sa)
func blendNormal(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// blendErase keeps destination where source is transparent.
// Formula: D * (1 - Sa)
func blendErase(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// blendMaskIn keeps destination where source is opaque.
// Formula: D * Sa
func blendMaskIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// blendReplace replaces destination with source.
func blendReplace(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}
