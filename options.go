package easel

// ColorMode selects the document's working raster mode. It decides the
// compositor's background: opaque white for RGB, transparent for RGBA.
type ColorMode int

const (
	// ColorModeRGB composites over an opaque white background.
	ColorModeRGB ColorMode = iota
	// ColorModeRGBA composites over a transparent background.
	ColorModeRGBA
)

// String returns the canonical lowercase name of the color mode.
func (m ColorMode) String() string {
	if m == ColorModeRGBA {
		return "rgba"
	}
	return "rgb"
}

// ParseColorMode resolves a canonical name back to a ColorMode.
// Unknown names resolve to ColorModeRGB.
func ParseColorMode(name string) ColorMode {
	if name == "rgba" {
		return ColorModeRGBA
	}
	return ColorModeRGB
}

// DocumentOption configures a Document during creation.
// Use functional options to customize document behavior.
//
// Example:
//
//	doc := easel.NewDocument(800, 600,
//	    easel.WithName("Sketchbook"),
//	    easel.WithDPI(300),
//	    easel.WithHistoryDepth(100))
type DocumentOption func(*documentOptions)

// documentOptions holds optional configuration for Document creation.
type documentOptions struct {
	name         string
	dpi          float64
	colorMode    ColorMode
	historyDepth int
	filePath     string
}

// defaultDocumentOptions returns the default document options.
func defaultDocumentOptions() documentOptions {
	return documentOptions{
		name:         "Untitled",
		dpi:          72,
		colorMode:    ColorModeRGB,
		historyDepth: DefaultHistoryDepth,
	}
}

// WithName sets the document name.
func WithName(name string) DocumentOption {
	return func(o *documentOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithDPI sets the document resolution in dots per inch.
func WithDPI(dpi float64) DocumentOption {
	return func(o *documentOptions) {
		if dpi > 0 {
			o.dpi = dpi
		}
	}
}

// WithColorMode sets the document's working color mode.
func WithColorMode(mode ColorMode) DocumentOption {
	return func(o *documentOptions) { o.colorMode = mode }
}

// WithHistoryDepth bounds the undo stack.
func WithHistoryDepth(depth int) DocumentOption {
	return func(o *documentOptions) {
		if depth > 0 {
			o.historyDepth = depth
		}
	}
}

// WithFilePath associates the document with an on-disk location.
func WithFilePath(path string) DocumentOption {
	return func(o *documentOptions) { o.filePath = path }
}
