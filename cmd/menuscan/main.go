// Command menuscan extracts a structured weekly lunch menu from a
// photograph of a Slovenian restaurant menu.
//
// The pipeline is preprocess (binarization), OCR (Tesseract, Slovenian),
// and LLM structuring (Gemini). The result is printed as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkoblar/menuscan/internal/config"
	"github.com/mkoblar/menuscan/internal/menu"
	"github.com/mkoblar/menuscan/internal/ocr"
	"github.com/mkoblar/menuscan/internal/pipeline"
	"github.com/mkoblar/menuscan/internal/preprocess"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		imagePath      = flag.String("image", "", "path to the menu photograph (required)")
		strategy       = flag.String("strategy", "fixed", "binarization strategy: fixed or otsu")
		threshold      = flag.Uint("threshold", uint(preprocess.DefaultThreshold), "per-channel ink threshold for the fixed strategy (1-255)")
		smooth         = flag.Float64("smooth", 0, "Gaussian blur radius applied before binarization (0 disables)")
		lang           = flag.String("lang", "", "Tesseract language code (default from MENU_OCR_LANG, normally slv)")
		psm            = flag.Int("psm", ocr.DefaultPageSegMode, "Tesseract page segmentation mode")
		skipPreprocess = flag.Bool("skip-preprocess", false, "run OCR on the original image without binarization")
		saveImage      = flag.String("save-image", "", "write the preprocessed image to this path for inspection")
		saveOCR        = flag.String("save-ocr", "", "write the raw OCR text to this path for inspection")
		debugText      = flag.Bool("debug-text", false, "attach OCR text to structuring-stage errors")
		showVersion    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("menuscan %s (commit %s)\n", Version, GitCommit)
		return
	}
	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "menuscan: -image is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "menuscan: loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	if missing := cfg.Validate(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "menuscan: missing required configuration: %v\n", missing)
		os.Exit(1)
	}

	if err := run(cfg, *imagePath, *strategy, uint8(*threshold), *smooth, *lang, *psm,
		*skipPreprocess, *saveImage, *saveOCR, *debugText); err != nil {
		fmt.Fprintf(os.Stderr, "menuscan: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, imagePath, strategyName string, threshold uint8, smooth float64,
	lang string, psm int, skipPreprocess bool, saveImage, saveOCR string, debugText bool) error {

	strategy, err := preprocess.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	if lang == "" {
		lang = cfg.Language
	}

	preOpts := preprocess.Options{
		Strategy:  strategy,
		Threshold: threshold,
		Smooth:    smooth,
	}
	ocrOpts := ocr.Options{
		Language:       lang,
		PageSegMode:    psm,
		TessdataPrefix: cfg.TessdataPrefix,
	}

	extractor, err := menu.NewExtractor(menu.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if debugText {
		opts = append(opts, pipeline.WithDebugText())
	}
	runner := pipeline.New(extractor, opts...)

	if skipPreprocess {
		// OCR the original file directly; still the same downstream flow.
		text, err := ocr.ExtractFile(imagePath, ocrOpts)
		if err != nil {
			return err
		}
		if saveOCR != "" {
			if err := os.WriteFile(saveOCR, []byte(text), 0644); err != nil {
				return fmt.Errorf("saving OCR text: %w", err)
			}
		}
		m, err := extractor.ExtractMenu(context.Background(), text)
		if err != nil {
			return err
		}
		return printMenu(m)
	}

	if saveImage != "" || saveOCR != "" {
		return runWithArtifacts(runner, imagePath, preOpts, ocrOpts, saveImage, saveOCR)
	}

	m, err := runner.Run(context.Background(), imagePath, preOpts, ocrOpts)
	if err != nil {
		return err
	}
	return printMenu(m)
}

// runWithArtifacts runs the stages individually so intermediate output can
// be written to disk between them.
func runWithArtifacts(runner *pipeline.Runner, imagePath string, preOpts preprocess.Options,
	ocrOpts ocr.Options, saveImage, saveOCR string) error {

	binary, err := preprocess.Preprocess(imagePath, preOpts)
	if err != nil {
		return err
	}
	if saveImage != "" {
		if err := preprocess.Save(binary, saveImage); err != nil {
			return err
		}
	}

	text, err := ocr.Extract(binary, ocrOpts)
	if err != nil {
		return err
	}
	if saveOCR != "" {
		if err := os.WriteFile(saveOCR, []byte(text), 0644); err != nil {
			return fmt.Errorf("saving OCR text: %w", err)
		}
	}

	m, err := runner.Structure(context.Background(), text)
	if err != nil {
		return err
	}
	return printMenu(m)
}

func printMenu(m *menu.Menu) error {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
