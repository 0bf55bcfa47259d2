// Package frame holds the pixel grid that a render assembles.
//
// A Frame is not safe for concurrent use. It is meant to be owned by exactly
// one goroutine, which writes every cell once and then hands the image off.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrOutOfBounds = errors.New("pixel out of bounds")
	ErrDuplicate   = errors.New("pixel already written")
	ErrIncomplete  = errors.New("frame incomplete")
	ErrFrozen      = errors.New("frame already handed off")
)

type Frame struct {
	img    *image.RGBA
	writes []uint8

	written int
	frozen  bool
}

func New(width, height int) *Frame {
	return &Frame{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		writes: make([]uint8, width*height),
	}
}

func (f *Frame) Width() int {
	return f.img.Rect.Dx()
}

func (f *Frame) Height() int {
	return f.img.Rect.Dy()
}

// Set writes c at (x, y). Each cell accepts exactly one write.
func (f *Frame) Set(x, y int, c color.RGBA) error {
	if f.frozen {
		return ErrFrozen
	}
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return fmt.Errorf("%w: (%d, %d) in %v", ErrOutOfBounds, x, y, f.img.Rect)
	}

	p := x + y*f.Width()
	if f.writes[p] > 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicate, x, y)
	}

	f.writes[p]++
	f.written++
	f.img.SetRGBA(x, y, c)

	return nil
}

// Writes returns how many times (x, y) has been written.
func (f *Frame) Writes(x, y int) int {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return 0
	}
	return int(f.writes[x+y*f.Width()])
}

// Remaining is the number of cells not yet written.
func (f *Frame) Remaining() int {
	return len(f.writes) - f.written
}

// Missing lists unwritten cells in row-major order.
func (f *Frame) Missing() []image.Point {
	var missing []image.Point
	w := f.Width()
	for p, n := range f.writes {
		if n == 0 {
			missing = append(missing, image.Point{X: p % w, Y: p / w})
		}
	}
	return missing
}

// Image freezes the frame and returns its pixels. The frame rejects writes
// afterwards.
func (f *Frame) Image() (*image.RGBA, error) {
	if n := f.Remaining(); n > 0 {
		return nil, fmt.Errorf("%w: %d of %d pixels unwritten", ErrIncomplete, n, len(f.writes))
	}
	f.frozen = true
	return f.img, nil
}
