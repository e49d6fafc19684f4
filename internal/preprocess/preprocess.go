package preprocess

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/blur"
)

// Strategy selects the binarization approach.
type Strategy int

const (
	// StrategyFixed uses the fixed per-channel ink threshold. Tuned for
	// dark typographic ink on light menu paper; the default.
	StrategyFixed Strategy = iota

	// StrategyOtsu computes a global threshold from the luminance
	// histogram. More general, less reliable on cluttered backgrounds.
	StrategyOtsu
)

// String returns the strategy name for logging and CLI flags.
func (s Strategy) String() string {
	switch s {
	case StrategyFixed:
		return "fixed"
	case StrategyOtsu:
		return "otsu"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name ("fixed", "otsu") to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "fixed", "":
		return StrategyFixed, nil
	case "otsu":
		return StrategyOtsu, nil
	default:
		return StrategyFixed, fmt.Errorf("unknown binarization strategy: %q", name)
	}
}

// Options controls the preprocessing pipeline.
//
// The zero value is usable: fixed-threshold strategy, DefaultThreshold, no
// smoothing.
type Options struct {
	// Strategy selects the binarization approach.
	Strategy Strategy

	// Threshold is the per-channel ink cutoff for StrategyFixed.
	// Zero means DefaultThreshold.
	Threshold uint8

	// Smooth, when positive, applies a Gaussian blur with this radius
	// before binarization to suppress sensor noise on phone photographs.
	Smooth float64
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// Preprocess runs the full preprocessing pipeline on an image file:
// decode, optional smoothing, binarization.
//
// Returns a single-channel image with the same dimensions as the source,
// every pixel either Ink (0) or Background (255). Failures are wrapped per
// stage: ErrDecode for open/decode problems, ErrNotGrayscale for a
// wrong-mode Otsu input.
//
// A contrast diagnostic is measured before binarization and logged; inputs
// below LowContrast produce a warning but still run to completion since the
// downstream OCR stage tolerates empty output.
func Preprocess(path string, opts Options) (*image.Gray, error) {
	opts = opts.withDefaults()
	slog.Info("preprocessing image", "path", path, "strategy", opts.Strategy.String(), "threshold", opts.Threshold)

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	if opts.Smooth > 0 {
		slog.Debug("smoothing image", "radius", opts.Smooth)
		img = blur.Gaussian(img, opts.Smooth)
	}

	if contrast := MeasureContrast(img, opts.Threshold); contrast < LowContrast {
		slog.Warn("low ink/background contrast, OCR quality may suffer",
			"path", path,
			"contrast", contrast,
		)
	} else {
		slog.Debug("contrast measured", "contrast", contrast)
	}

	var binary *image.Gray
	switch opts.Strategy {
	case StrategyOtsu:
		binary, err = BinarizeOtsu(Grayscale(img))
		if err != nil {
			return nil, fmt.Errorf("binarizing %s: %w", path, err)
		}
	default:
		binary = BinarizeFixed(img, opts.Threshold)
	}

	bounds := binary.Bounds()
	slog.Info("preprocessing complete",
		"path", path,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
	)
	return binary, nil
}
