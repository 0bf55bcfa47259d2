// Package sink writes finished frames to disk.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type Format int

const (
	PNG Format = iota
	JPEG
	// RawZstd is row-major 8-bit RGB behind a "P6"-style text header, zstd
	// compressed.
	RawZstd
)

const jpegQuality = 95

var ErrUnsupportedFormat = errors.New("unsupported image format")

// SinkError is returned when a frame cannot be saved.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("save %q: %v", e.Path, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".zst":
		return RawZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return &SinkError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &SinkError{Path: path, Err: err}
	}

	err = Encode(f, format, img)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Partial output is never left behind.
		_ = os.Remove(path)
		return &SinkError{Path: path, Err: err}
	}

	return nil
}

func Encode(w io.Writer, format Format, img image.Image) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case RawZstd:
		return encodeRaw(w, img)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
}

func encodeRaw(w io.Writer, img image.Image) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	bw := bufio.NewWriter(enc)

	_, err = fmt.Fprintf(bw, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	if err != nil {
		_ = enc.Close()
		return err
	}

	row := make([]byte, 3*bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			i := 3 * (x - bounds.Min.X)
			row[i] = uint8(r >> 8)
			row[i+1] = uint8(g >> 8)
			row[i+2] = uint8(b >> 8)
		}
		if _, err = bw.Write(row); err != nil {
			_ = enc.Close()
			return err
		}
	}

	if err = bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}

	return enc.Close()
}
