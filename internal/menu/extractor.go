package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Extractor turns raw OCR text into a validated Menu through the Gemini
// client. Construct with NewExtractor; a missing credential surfaces there,
// before any prompt is built.
type Extractor struct {
	client *Client
}

// NewExtractor validates the configuration and builds an extractor.
func NewExtractor(cfg Config) (*Extractor, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Extractor{client: client}, nil
}

// ExtractMenu structures raw OCR text into a Menu.
//
// Empty or whitespace-only input short-circuits to an empty Menu with no
// network call: a blank image is a valid pipeline input and there is
// nothing to ask the model about.
//
// The model's response is decoded and re-validated locally; a response that
// decodes but misses required fields fails with ErrSchema. On any failure
// the error carries the cause and no partial Menu is returned.
func (e *Extractor) ExtractMenu(ctx context.Context, ocrText string) (*Menu, error) {
	if strings.TrimSpace(ocrText) == "" {
		slog.Info("empty ocr text, returning empty menu")
		return &Menu{Items: []MenuItem{}}, nil
	}

	prompt := BuildPrompt(ocrText)
	slog.Info("requesting menu extraction", "ocr_chars", len(ocrText), "model", e.client.cfg.Model)

	content, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("menu extraction failed: %w", err)
	}

	var m Menu
	if err := json.Unmarshal([]byte(stripFences(content)), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if m.Items == nil {
		return nil, fmt.Errorf("%w: missing items field", ErrSchema)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	slog.Info("menu extracted", "items", len(m.Items))
	return &m, nil
}

// stripFences removes a markdown code fence around the model output.
// JSON response mode usually prevents fences, but not reliably.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
