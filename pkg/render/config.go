package render

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

var ErrInvalidConfig = errors.New("invalid render config")

// MaxPixels caps Width*Height so the frame's RGBA buffer stays addressable.
const MaxPixels = 1 << 28

// Config describes a single render. It is copied into every worker and never
// mutated during a render.
type Config struct {
	Width  int
	Height int

	// C is the Julia set parameter.
	C complex128

	MaxIterations int

	// Workers is the size of the worker pool.
	Workers int

	// Timeout bounds the whole render. Zero means no deadline.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Width:         1920,
		Height:        1080,
		C:             complex(-0.7269, 0.1889),
		MaxIterations: 300,
		Workers:       runtime.NumCPU(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.Width > MaxPixels/c.Height:
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidConfig, c.Width, c.Height, MaxPixels)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}
