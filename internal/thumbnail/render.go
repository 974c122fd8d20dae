// Package thumbnail turns cover image bytes into bounded PNG thumbnails.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultSize is the thumbnail bound used by desktop thumbnailers.
	DefaultSize = 124
	// defaultMaxPixels caps decoded images at 100 megapixels.
	defaultMaxPixels = 100 * 1000 * 1000
)

// ErrDecode is returned when cover bytes are not a decodable image.
var ErrDecode = errors.New("thumbnail: cannot decode image")

// Renderer decodes, downsizes and encodes thumbnails.
type Renderer struct {
	Filter    imaging.ResampleFilter
	MaxPixels int // total pixel limit checked before decoding
}

// NewRenderer returns a renderer using Lanczos resampling.
func NewRenderer() *Renderer {
	return &Renderer{
		Filter:    imaging.Lanczos,
		MaxPixels: defaultMaxPixels,
	}
}

// Decode decodes image bytes, applying any EXIF orientation.
func (r *Renderer) Decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if r.MaxPixels > 0 && uint64(cfg.Width)*uint64(cfg.Height) > uint64(r.MaxPixels) {
		return nil, fmt.Errorf("%w: image too large: %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Thumbnail scales img down to fit within size×size, preserving the aspect
// ratio. Smaller images keep their dimensions. The result is always NRGBA,
// so CMYK and other color models are converted.
func (r *Renderer) Thumbnail(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, size, size, r.Filter)
}

// Encode writes img as PNG.
func (r *Renderer) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return nil
}

// WriteFile encodes img as PNG at path. The file only appears once it has
// been fully written.
func (r *Renderer) WriteFile(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := r.Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
