package extraction

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	upscaleFactor  = 2
	contrastFactor = 3.0
)

// sharpenKernel is the classic 3x3 sharpen mask; Normalize divides it by its
// sum (16).
var sharpenKernel = [9]float64{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

// Preprocess prepares a scan for OCR: 2x Lanczos upscale, grayscale, sharpen,
// then a 3x contrast boost around the mean intensity. Every step always runs,
// in this order.
func Preprocess(img image.Image) *image.Gray {
	up := upscale(img)
	gray := Grayscale(up)
	sharp := sharpen(gray)
	return boostContrast(sharp, contrastFactor)
}

func upscale(img image.Image) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*upscaleFactor, b.Dy()*upscaleFactor, imaging.Lanczos)
}

// Grayscale converts img to a single-channel image anchored at the origin.
// Converting an *image.Gray returns an identical copy.
func Grayscale(img image.Image) *image.Gray {
	src := imaging.Grayscale(img)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range dstRow {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

func sharpen(img *image.Gray) *image.Gray {
	return Grayscale(imaging.Convolve3x3(img, sharpenKernel, &imaging.ConvolveOptions{Normalize: true}))
}

// boostContrast blends every pixel away from the rounded mean intensity:
// out = mean + factor*(in-mean), clamped to [0, 255].
func boostContrast(img *image.Gray, factor float64) *image.Gray {
	dst := image.NewGray(img.Bounds())
	if len(img.Pix) == 0 {
		return dst
	}

	mean := meanIntensity(img)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(img.GrayAt(x, y).Y)
			dst.SetGray(x, y, color.Gray{Y: clampUint8(mean + factor*(v-mean))})
		}
	}
	return dst
}

func meanIntensity(img *image.Gray) float64 {
	b := img.Bounds()
	var sum, n float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += float64(img.GrayAt(x, y).Y)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(int(sum/n + 0.5))
}

func clampUint8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
