package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"sort"
	"sync"

	"github.com/willbeason/julia-spectrum/pkg/escape"
	"github.com/willbeason/julia-spectrum/pkg/frame"
	"github.com/willbeason/julia-spectrum/pkg/spectrum"
)

const resultBuffer = 10000

// Pixel is a computed color tagged with its destination.
type Pixel struct {
	X, Y  int
	Color color.RGBA
}

// result is either a Pixel or, when err is set, the failure of row Y. A
// failure accounts for the unsent pixels of that row so the aggregator never
// waits for them.
type result struct {
	Pixel

	err    error
	unsent int
}

type pixelFunc func(x, y int) color.RGBA

func julia(cfg Config) pixelFunc {
	return func(x, y int) color.RGBA {
		i := escape.Iterations(cfg.C, x, y, cfg.Width, cfg.Height, cfg.MaxIterations)
		return spectrum.Color(spectrum.Wavelength(i, cfg.MaxIterations))
	}
}

// Render computes the Julia set described by cfg. It returns either a complete
// image or an error; never a partial image.
func Render(ctx context.Context, cfg Config) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := run(ctx, cfg, julia(cfg))
	if err != nil {
		return nil, err
	}

	return f.Image()
}

func run(ctx context.Context, cfg Config, pixel pixelFunc) (*frame.Frame, error) {
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	// Unblocks workers if aggregation stops early.
	defer cancel()

	rows := make(chan int)

	go func() {
		defer close(rows)
		for y := 0; y < cfg.Height; y++ {
			select {
			case rows <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan result, resultBuffer)

	wg := sync.WaitGroup{}
	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				if !computeRow(ctx, cfg.Width, y, pixel, results) {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return aggregate(ctx, cfg.Width, cfg.Height, results)
}

// computeRow sends every pixel of row y. A panic is converted into a row
// failure. It returns false once ctx is done.
func computeRow(ctx context.Context, width, y int, pixel pixelFunc, results chan<- result) (ok bool) {
	sent := 0

	defer func() {
		if r := recover(); r != nil {
			ok = send(ctx, results, result{
				Pixel:  Pixel{Y: y},
				err:    fmt.Errorf("row %d: panic: %v", y, r),
				unsent: width - sent,
			})
		}
	}()

	for x := 0; x < width; x++ {
		if !send(ctx, results, result{Pixel: Pixel{X: x, Y: y, Color: pixel(x, y)}}) {
			return false
		}
		sent++
	}

	return true
}

func send(ctx context.Context, results chan<- result, r result) bool {
	select {
	case results <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// aggregate is the sole owner of the frame. It receives until every pixel is
// accounted for, then drains the channel to confirm nothing else was sent.
func aggregate(ctx context.Context, width, height int, results <-chan result) (*frame.Frame, error) {
	f := frame.New(width, height)

	total := width * height
	accounted := 0
	received := 0

	var failedRows []int
	var failures []error

	for accounted < total {
		if ctx.Err() != nil {
			return f, aborted(ctx, total-received, total)
		}

		select {
		case r, ok := <-results:
			if !ok {
				return f, &IntegrityError{Expected: total, Received: received, Err: ErrChannelClosed}
			}

			if r.err != nil {
				log.Printf("render: %v", r.err)
				failedRows = append(failedRows, r.Y)
				failures = append(failures, r.err)
				accounted += r.unsent
				continue
			}

			if err := f.Set(r.X, r.Y, r.Color); err != nil {
				return f, &IntegrityError{Expected: total, Received: received, Err: err}
			}
			accounted++
			received++
		case <-ctx.Done():
			return f, aborted(ctx, total-received, total)
		}
	}

	for {
		select {
		case r, ok := <-results:
			if !ok {
				if len(failedRows) > 0 {
					sort.Ints(failedRows)
					return f, &ComputationError{
						Rows:    failedRows,
						Missing: total - received,
						Pixels:  f.Missing(),
						Err:     errors.Join(failures...),
					}
				}
				return f, nil
			}
			return f, &IntegrityError{
				Expected: total,
				Received: received + 1,
				Err:      fmt.Errorf("%w: (%d, %d)", ErrExtraResult, r.X, r.Y),
			}
		case <-ctx.Done():
			return f, fmt.Errorf("render aborted while draining results: %w", ctx.Err())
		}
	}
}

func aborted(ctx context.Context, missing, total int) error {
	return fmt.Errorf("render aborted with %d of %d pixels missing: %w", missing, total, ctx.Err())
}
