// Package preprocess normalizes menu photographs into binary images suited
// for OCR.
//
// A typical restaurant menu photograph has dark typographic ink on a light,
// often cluttered background. Tesseract performs noticeably better on a clean
// two-level image, so the preprocessing pipeline is: decode, optional
// smoothing, grayscale conversion, and binarization.
//
// # Binarization Strategies
//
// Two strategies are provided and neither fully supersedes the other:
//
//   - StrategyFixed classifies a pixel as ink only when ALL of its channels
//     fall below a fixed threshold (default 40 on a 0-255 scale). This is
//     tuned for dark ink on light paper and is robust against colored
//     decorations, which rarely have every channel that dark.
//
//   - StrategyOtsu computes a global split point from the luminance histogram
//     (Otsu's method). It is the more general approach but tends to pull
//     background clutter into the foreground on busy menu photos.
//
// # Output Contract
//
// All binarization functions return a single-channel *image.Gray with the
// same dimensions as the input, every pixel either 0 (ink) or 255
// (background).
//
// # Error Handling
//
// Load wraps open/decode failures in ErrDecode. BinarizeOtsu requires a
// grayscale input and reports ErrNotGrayscale otherwise. All errors preserve
// the underlying cause in their message.
package preprocess
