package preprocess

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LowContrast is the Lab distance below which ink and background are
// considered too similar for reliable OCR. The value is empirical: menus
// photographed in dim light or through glass land around 0.15-0.25.
const LowContrast = 0.2

// MeasureContrast estimates how well ink separates from background in a
// menu photograph.
//
// Pixels are partitioned with the fixed-threshold ink test, the mean color
// of each partition is computed, and the perceptual (CIE Lab) distance
// between the two means is returned. A clean black-on-white menu scores
// close to 1.0; values below LowContrast predict poor OCR output.
//
// An image with no ink pixels at all (or no background pixels) returns 0:
// there is nothing to separate.
func MeasureContrast(img image.Image, threshold uint8) float64 {
	bounds := img.Bounds()

	var (
		inkR, inkG, inkB    float64
		backR, backG, backB float64
		inkN, backN         int
	)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			rf := float64(r8) / 255.0
			gf := float64(g8) / 255.0
			bf := float64(b8) / 255.0

			if r8 < threshold && g8 < threshold && b8 < threshold {
				inkR += rf
				inkG += gf
				inkB += bf
				inkN++
			} else {
				backR += rf
				backG += gf
				backB += bf
				backN++
			}
		}
	}
	if inkN == 0 || backN == 0 {
		return 0
	}

	ink := colorful.Color{
		R: inkR / float64(inkN),
		G: inkG / float64(inkN),
		B: inkB / float64(inkN),
	}
	back := colorful.Color{
		R: backR / float64(backN),
		G: backG / float64(backN),
		B: backB / float64(backN),
	}
	return ink.DistanceLab(back)
}
