// Package encode writes frames to lossless image formats.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is a lossless image file format.
type Format uint8

const (
	PNG Format = iota
	BMP
	TIFF
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name or extension.
	ErrUnsupportedFormat = errors.New("encode: unsupported format")

	// ErrEmptyImage is returned when the image has no pixels.
	ErrEmptyImage = errors.New("encode: empty image")
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	return "image/" + f.String()
}

// ParseFormat parses a format name ("png", "bmp", "tiff" or "tif").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format from the file extension. A path without
// an extension is written as PNG.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("encode: %v: %w", f, err)
	}
	return nil
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// so no colour is invented. A factor below 2 returns img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
