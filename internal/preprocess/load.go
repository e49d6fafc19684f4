package preprocess

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
)

// ErrDecode marks I/O failures: the file is missing, unreadable, or not a
// decodable raster image. Check with errors.Is.
var ErrDecode = errors.New("image decode failed")

// Load reads and decodes an image file.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG,
//     and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the format
//     and color model (e.g., *image.NRGBA, *image.YCbCr, *image.Gray).
//   - error: Wraps ErrDecode if the file cannot be opened or decoded; the
//     underlying cause is preserved in the message.
func Load(path string) (image.Image, error) {
	slog.Debug("opening image", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrDecode, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrDecode, path, err)
	}

	bounds := img.Bounds()
	slog.Info("image opened",
		"path", path,
		"format", format,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
	)
	return img, nil
}

// Save writes an image to disk, inferring the encoder from the file
// extension (.png, .jpg, .jpeg, .gif, .tif, .bmp).
//
// This is a debugging affordance for inspecting intermediate pipeline output;
// the extraction pipeline itself never persists images.
func Save(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrNotImage)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving image to %s: %w", path, err)
	}
	slog.Debug("image saved", "path", path)
	return nil
}
