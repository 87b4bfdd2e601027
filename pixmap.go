package easel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/easel/internal/blend"
)

// Pixmap represents a rectangular pixel buffer.
//
// A Pixmap is mutable while it is being produced (stroke rasterization,
// compositing) and treated as immutable once published into a Layer: edits
// always build a new Pixmap and swap the Layer's reference. This
// copy-on-write discipline is what lets the history engine retain "the
// buffer before" while the layer already holds "the buffer after".
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel, not premultiplied
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// silently dropped.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel. Out-of-bounds reads return
// Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	clone := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(clone.data, p.data)
	return clone
}

// Equal reports whether two pixmaps have identical dimensions and pixels.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.width == q.width && p.height == q.height && bytes.Equal(p.data, q.data)
}

// premulPixel reads pixel (x, y) as premultiplied bytes. The caller must
// ensure the coordinates are in bounds.
func (p *Pixmap) premulPixel(x, y int) (r, g, b, a byte) {
	i := (y*p.width + x) * 4
	a = p.data[i+3]
	if a == 255 {
		return p.data[i], p.data[i+1], p.data[i+2], a
	}
	if a == 0 {
		return 0, 0, 0, 0
	}
	r = byte(uint16(p.data[i]) * uint16(a) / 255)
	g = byte(uint16(p.data[i+1]) * uint16(a) / 255)
	b = byte(uint16(p.data[i+2]) * uint16(a) / 255)
	return r, g, b, a
}

// setPremulPixel stores premultiplied bytes at pixel (x, y), unpremultiplying
// into the pixmap's straight-alpha representation.
func (p *Pixmap) setPremulPixel(x, y int, r, g, b, a byte) {
	i := (y*p.width + x) * 4
	if a == 0 {
		p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = 0, 0, 0, 0
		return
	}
	if a == 255 {
		p.data[i], p.data[i+1], p.data[i+2], p.data[i+3] = r, g, b, a
		return
	}
	p.data[i] = clampByte(uint16(r) * 255 / uint16(a))
	p.data[i+1] = clampByte(uint16(g) * 255 / uint16(a))
	p.data[i+2] = clampByte(uint16(b) * 255 / uint16(a))
	p.data[i+3] = a
}

// BlendPixel combines a straight-alpha color into pixel (x, y) using the
// given blend function. Out-of-bounds writes are silently dropped.
func (p *Pixmap) BlendPixel(x, y int, c RGBA, f blend.Func) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	sa := byte(clamp255(c.A * 255))
	sr := byte(clamp255(c.R * c.A * 255))
	sg := byte(clamp255(c.G * c.A * 255))
	sb := byte(clamp255(c.B * c.A * 255))

	dr, dg, db, da := p.premulPixel(x, y)
	r, g, b, a := f(sr, sg, sb, sa, dr, dg, db, da)
	p.setPremulPixel(x, y, r, g, b, a)
}

// clampByte clamps a uint16 to the byte range.
func clampByte(v uint16) byte {
	if v > 255 {
		return 255
	}
	return byte(v)
}

// ToImage converts the pixmap to a standard library image.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from a standard library image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	p := NewPixmap(bounds.Dx(), bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == bounds.Dx()*4 {
		copy(p.data, nrgba.Pix)
		return p
	}

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return p
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
