package easel

import (
	"image"

	"github.com/disintegration/imaging"
)

// maxTextureSide bounds loaded brush textures; stamps are prescaled to the
// stroke width at render time anyway, so oversized sources only waste memory.
const maxTextureSide = 256

// LoadTexture reads a brush texture image from disk, downscaling it when it
// exceeds the maximum texture side.
func LoadTexture(path string) (*Pixmap, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts an image into a brush texture, downscaling it
// when it exceeds the maximum texture side.
func TextureFromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	if bounds.Dx() > maxTextureSide || bounds.Dy() > maxTextureSide {
		Logger().Debug("downscaling brush texture",
			"width", bounds.Dx(), "height", bounds.Dy(), "max", maxTextureSide)
		img = imaging.Fit(img, maxTextureSide, maxTextureSide, imaging.Lanczos)
	}
	return FromImage(img)
}
