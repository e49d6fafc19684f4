// Package pipeline chains the three extraction stages: preprocess the menu
// photograph, recognize its text, structure the text into a Menu.
//
// The flow is strictly linear and fail-fast. Each stage either succeeds and
// hands its output to the next, or the run stops and the caller receives a
// single *StageError naming the failing stage with the original cause
// preserved. There is no retry at this layer; transient-failure policy
// lives in the Gemini client.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/mkoblar/menuscan/internal/menu"
	"github.com/mkoblar/menuscan/internal/ocr"
	"github.com/mkoblar/menuscan/internal/preprocess"
)

// Stage names reported in StageError.
const (
	StagePreprocess = "preprocess"
	StageOCR        = "ocr"
	StageStructure  = "structure"
)

// StageError is the single error a pipeline run surfaces: which stage
// failed and why. OCRText carries the intermediate OCR output for
// diagnostics, and only when the runner was built WithDebugText.
type StageError struct {
	Stage   string
	OCRText string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Runner executes the extraction pipeline. The stage functions default to
// the real implementations and are replaceable in tests.
type Runner struct {
	preprocessFn func(path string, opts preprocess.Options) (*image.Gray, error)
	recognizeFn  func(img image.Image, opts ocr.Options) (string, error)
	structureFn  func(ctx context.Context, text string) (*menu.Menu, error)

	debugText bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithDebugText attaches the intermediate OCR text to errors raised by the
// structuring stage. Off by default: the text can be large and is only
// useful when debugging extraction quality.
func WithDebugText() Option {
	return func(r *Runner) { r.debugText = true }
}

// New builds a Runner around a configured menu extractor.
func New(extractor *menu.Extractor, opts ...Option) *Runner {
	r := &Runner{
		preprocessFn: preprocess.Preprocess,
		recognizeFn:  ocr.Extract,
		structureFn:  extractor.ExtractMenu,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes preprocess, OCR, and structuring in sequence on one image
// file and returns the extracted Menu.
//
// On failure the returned error is a *StageError wrapping the stage's
// error; errors.Is sees through it to the underlying kind (e.g.
// preprocess.ErrDecode, ocr.ErrEngine, menu.ErrSchema). A partial result is
// never returned: raw OCR text without a structured menu is a failure, not
// a success.
func (r *Runner) Run(ctx context.Context, imagePath string, preOpts preprocess.Options, ocrOpts ocr.Options) (*menu.Menu, error) {
	slog.Info("pipeline start", "path", imagePath)

	binary, err := r.preprocessFn(imagePath, preOpts)
	if err != nil {
		slog.Error("pipeline failed", "stage", StagePreprocess, "path", imagePath, "error", err)
		return nil, &StageError{Stage: StagePreprocess, Err: err}
	}

	text, err := r.recognizeFn(binary, ocrOpts)
	if err != nil {
		bounds := binary.Bounds()
		slog.Error("pipeline failed",
			"stage", StageOCR,
			"path", imagePath,
			"width", bounds.Dx(),
			"height", bounds.Dy(),
			"error", err,
		)
		return nil, &StageError{Stage: StageOCR, Err: err}
	}

	m, err := r.structureFn(ctx, text)
	if err != nil {
		slog.Error("pipeline failed", "stage", StageStructure, "ocr_chars", len(text), "error", err)
		stageErr := &StageError{Stage: StageStructure, Err: err}
		if r.debugText {
			stageErr.OCRText = text
		}
		return nil, stageErr
	}

	slog.Info("pipeline complete", "path", imagePath, "items", len(m.Items))
	return m, nil
}

// Structure runs only the structuring stage on already-extracted OCR text.
// Used when the caller needs the intermediate text (e.g. to persist it)
// before handing it to the model. Failures carry the same *StageError shape
// as Run.
func (r *Runner) Structure(ctx context.Context, text string) (*menu.Menu, error) {
	m, err := r.structureFn(ctx, text)
	if err != nil {
		slog.Error("pipeline failed", "stage", StageStructure, "ocr_chars", len(text), "error", err)
		stageErr := &StageError{Stage: StageStructure, Err: err}
		if r.debugText {
			stageErr.OCRText = text
		}
		return nil, stageErr
	}
	return m, nil
}
