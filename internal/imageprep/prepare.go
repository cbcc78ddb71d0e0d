package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrDecode reports bytes that are not a supported image.
var ErrDecode = errors.New("decode image")

// Options controls the prepared payload.
type Options struct {
	Width   int
	Height  int
	Quality int
}

// DefaultOptions matches the catalogue's 1200x800 JPEG layout.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 800, Quality: 95}
}

// Prepare decodes a jpg, png or webp image, scales it to exactly
// Width x Height and re-encodes it as JPEG. Transparent areas are flattened
// onto white.
func Prepare(data []byte, opts Options) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", opts.Width, opts.Height)
	}
	quality := opts.Quality
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg (source %s): %w", format, err)
	}
	return out.Bytes(), nil
}
