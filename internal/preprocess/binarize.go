package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

const (
	// Ink is the dark extreme a foreground pixel is mapped to.
	Ink uint8 = 0

	// Background is the light extreme a background pixel is mapped to.
	Background uint8 = 255

	// DefaultThreshold is the per-channel intensity below which a pixel
	// counts as ink for the fixed-threshold strategy.
	DefaultThreshold uint8 = 40
)

var (
	// ErrNotImage marks invalid-argument failures: a stage received a nil or
	// wrong-mode image.
	ErrNotImage = errors.New("input is not a decoded image")

	// ErrNotGrayscale is returned by operations that require a
	// single-channel input.
	ErrNotGrayscale = errors.New("image must be grayscale")
)

// Grayscale converts an image to a single-channel grayscale bitmap.
//
// The luminance mapping is delegated to the imaging library; the result is
// collapsed into an *image.Gray so downstream stages can rely on one byte
// per pixel.
func Grayscale(img image.Image) *image.Gray {
	flat := imaging.Grayscale(img)
	bounds := flat.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// After imaging.Grayscale all channels are equal.
			gray.SetGray(x, y, color.Gray{Y: flat.NRGBAAt(x+bounds.Min.X, y+bounds.Min.Y).R})
		}
	}
	return gray
}

// BinarizeFixed classifies every pixel as ink or background using a fixed
// per-channel threshold.
//
// A pixel is mapped to the dark extreme only when ALL of its channels are
// strictly below the threshold; any pixel with a brighter channel is mapped
// to the light extreme. This keeps colored decorations out of the
// foreground: printed ink is dark in every channel, a red border is not.
//
// Parameters:
//   - img: Source image in any color model.
//   - threshold: Per-channel cutoff on a 0-255 scale. Use DefaultThreshold
//     when in doubt.
//
// Returns a single-channel image with the same dimensions as the input and
// every pixel either Ink (0) or Background (255).
func BinarizeFixed(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// Convert from 16-bit to 8-bit
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

			v := Background
			if r8 < threshold && g8 < threshold && b8 < threshold {
				v = Ink
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}

// BinarizeOtsu classifies every pixel as ink or background using a global
// threshold computed from the image's luminance histogram (Otsu's method).
//
// Otsu's method picks the split point that maximizes the between-class
// variance of the two resulting pixel populations. It adapts to lighting
// conditions the fixed threshold cannot, at the cost of pulling cluttered
// backgrounds into the foreground.
//
// The input must be a single-channel image (convert with Grayscale first);
// anything else fails with ErrNotGrayscale naming the expected mode.
func BinarizeOtsu(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: got nil", ErrNotImage)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotGrayscale, img)
	}

	threshold := otsuThreshold(gray)

	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := Ink
			if gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y > threshold {
				v = Background
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out, nil
}

// otsuThreshold computes the Otsu split point from the luminance histogram.
// For a grayscale image all histogram channels are identical, so the red
// channel bins serve as the luminance distribution.
func otsuThreshold(gray *image.Gray) uint8 {
	bins := histogram.NewRGBAHistogram(gray).R.Bins

	total := 0
	sum := 0.0
	for i, count := range bins {
		total += count
		sum += float64(i) * float64(count)
	}
	if total == 0 {
		return DefaultThreshold
	}

	var (
		sumBack    float64
		weightBack int
		maxVar     float64
		threshold  uint8
	)
	for i, count := range bins {
		weightBack += count
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}

		sumBack += float64(i) * float64(count)
		meanBack := sumBack / float64(weightBack)
		meanFore := (sum - sumBack) / float64(weightFore)

		diff := meanBack - meanFore
		betweenVar := float64(weightBack) * float64(weightFore) * diff * diff
		if betweenVar > maxVar {
			maxVar = betweenVar
			threshold = uint8(i)
		}
	}
	return threshold
}
