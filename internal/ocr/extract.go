package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const (
	// DefaultLanguage is the Tesseract language code for Slovenian.
	DefaultLanguage = "slv"

	// DefaultPageSegMode is fully automatic page segmentation (PSM 3).
	DefaultPageSegMode = 3
)

var (
	// ErrNilImage marks invalid-argument failures: the extractor was given
	// something that is not a decoded image.
	ErrNilImage = errors.New("ocr input is not a decoded image")

	// ErrEngine marks failures inside the Tesseract engine: missing
	// installation, unsupported language pack, or corrupt input.
	ErrEngine = errors.New("ocr engine failure")
)

// Options configures a single OCR invocation.
//
// The zero value is usable: Slovenian, automatic page segmentation, no
// engine variables, default tessdata location.
type Options struct {
	// Language is the Tesseract language code. Empty means DefaultLanguage.
	Language string

	// PageSegMode is the Tesseract page segmentation mode.
	// Zero means DefaultPageSegMode.
	PageSegMode int

	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the engine's compiled-in default.
	TessdataPrefix string

	// Variables holds extra engine settings passed through verbatim,
	// e.g. "tessedit_char_whitelist".
	Variables map[string]string
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.PageSegMode == 0 {
		o.PageSegMode = DefaultPageSegMode
	}
	return o
}

// Extract performs OCR on an in-memory image and returns the recognized
// text verbatim.
//
// Tesseract consumes files, so the image is bridged through a temporary PNG
// that is removed before returning. The image may be in any color model;
// in this pipeline it is normally the binary output of the preprocessing
// stage.
//
// The returned string may be empty: a blank image is a valid input that
// recognizes to nothing. A nil image fails with ErrNilImage before the
// engine is touched.
func Extract(img image.Image, opts Options) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: got nil", ErrNilImage)
	}

	tmpFile, err := os.CreateTemp("", "menuscan-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp file for OCR: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("encoding temp image for OCR: %w", err)
	}
	tmpFile.Close()

	return ExtractFile(tmpPath, opts)
}

// ExtractFile performs OCR on an image file and returns the recognized text
// verbatim. Used directly by the CLI when preprocessing is skipped.
func ExtractFile(path string, opts Options) (string, error) {
	opts = opts.withDefaults()

	client := gosseract.NewClient()
	defer client.Close()

	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			return "", fmt.Errorf("%w: setting tessdata prefix: %v", ErrEngine, err)
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		return "", fmt.Errorf("%w: setting language %q: %v", ErrEngine, opts.Language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		return "", fmt.Errorf("%w: setting page segmentation mode %d: %v", ErrEngine, opts.PageSegMode, err)
	}
	for name, value := range opts.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(name), value); err != nil {
			return "", fmt.Errorf("%w: setting variable %s: %v", ErrEngine, name, err)
		}
	}

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("%w: setting image %s: %v", ErrEngine, path, err)
	}

	slog.Info("running OCR", "path", path, "lang", opts.Language, "psm", opts.PageSegMode)

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}

	logExtraction(text)
	return text, nil
}

// logExtraction reports character and non-empty-line counts; empty output
// gets a warning since it usually means the preprocessing washed the text
// out.
func logExtraction(text string) {
	chars := len(strings.TrimSpace(text))
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	slog.Info("ocr complete", "chars", chars, "lines", lines)

	if chars == 0 {
		slog.Warn("no text extracted from image")
	}
}
