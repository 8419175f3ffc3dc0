package extraction

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerboard draws dark text-like strokes on a light background.
func checkerboard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 230, G: 225, B: 210, A: 255}
			if (x/3+y/3)%2 == 0 {
				c = color.RGBA{R: 30, G: 40, B: 90, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocessDoublesDimensions(t *testing.T) {
	out := Preprocess(checkerboard(20, 10))

	assert.Equal(t, 40, out.Bounds().Dx())
	assert.Equal(t, 20, out.Bounds().Dy())
}

func TestPreprocessOutputIsGrayscaleFixedPoint(t *testing.T) {
	out := Preprocess(checkerboard(16, 16))

	again := Grayscale(out)
	require.Equal(t, out.Bounds(), again.Bounds())
	assert.Equal(t, out.Pix, again.Pix)
}

func TestPreprocessTwiceStaysGray(t *testing.T) {
	once := Preprocess(checkerboard(8, 6))
	twice := Preprocess(once)

	assert.Equal(t, 32, twice.Bounds().Dx())
	assert.Equal(t, 24, twice.Bounds().Dy())
	assert.Equal(t, twice.Pix, Grayscale(twice).Pix)
}

func TestGrayscaleNonZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 8))
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	gray := Grayscale(src)

	assert.Equal(t, image.Rect(0, 0, 4, 3), gray.Bounds())
	for _, v := range gray.Pix {
		assert.Equal(t, uint8(200), v)
	}
}

func TestBoostContrast(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[1] = 100, 140

	out := boostContrast(img, 3.0)
	assert.Equal(t, []uint8{60, 180}, out.Pix)

	flat := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range flat.Pix {
		flat.Pix[i] = 77
	}
	assert.Equal(t, flat.Pix, boostContrast(flat, 3.0).Pix)
}

func TestBoostContrastClamps(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[1] = 10, 250

	out := boostContrast(img, 3.0)
	assert.Equal(t, []uint8{0, 255}, out.Pix)
}

func TestBoostContrastEmpty(t *testing.T) {
	out := boostContrast(image.NewGray(image.Rect(0, 0, 0, 0)), 3.0)
	assert.Empty(t, out.Pix)
}
