package depth

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// DefaultScale converts 16-bit millimeter depth images to meters.
const DefaultScale = 0.001

// FromImage decodes a grayscale depth image, where each pixel value times
// scale is the distance in meters. 16-bit grayscale keeps full precision;
// other color models are converted through color.Gray16Model.
//
// Arguments:
//   - img: The decoded depth image.
//   - scale: Meters per gray level, e.g. DefaultScale for millimeter PNGs.
//
// Returns:
//   - *Map: The depth map with the image's dimensions.
//   - error: If the image is empty or scale is not positive.
func FromImage(img image.Image, scale float64) (*Map, error) {
	if img == nil {
		return nil, errors.New("depth image is nil")
	}
	if scale <= 0 {
		return nil, errors.Errorf("depth scale must be positive, got %f", scale)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("depth image is empty: %dx%d", w, h)
	}

	samples := make([]float32, w*h)
	switch src := img.(type) {
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				samples[y*w+x] = float32(float64(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y) * scale)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				samples[y*w+x] = float32(float64(g.Y) * scale)
			}
		}
	}
	return New(w, h, samples)
}

// Resample scales a depth image to width x height so that its pixels line up
// with the source image. Nearest-neighbor keeps depths from blending across
// object boundaries.
func Resample(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}
