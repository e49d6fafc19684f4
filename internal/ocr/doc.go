// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) for
// extracting raw text from preprocessed menu images.
//
// # Prerequisites
//
// Tesseract and the Slovenian language data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-slv
//   - macOS: brew install tesseract tesseract-lang
//
// The tessdata location can be overridden per call through
// Options.TessdataPrefix, fed from the TESSDATA_PREFIX environment variable
// by the configuration layer.
//
// # Contract
//
// Extract returns the engine's output verbatim, including whitespace and
// newlines, with no trimming or post-processing. Empty output is a valid
// result (a blank image recognizes to nothing) and is logged as a warning,
// not returned as an error.
//
// # Error Handling
//
//   - ErrNilImage: the input is not a decoded image.
//   - ErrEngine: Tesseract itself failed (missing install, unknown
//     language pack, corrupt input). The engine's message is preserved.
//
// Any other failure (temporary file I/O, encoding) is wrapped generically
// with its cause.
package ocr
