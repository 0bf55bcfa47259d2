package escape

import (
	"math/cmplx"

	"github.com/willbeason/julia-spectrum/pkg/transforms"
)

// Bailout is the orbit magnitude at which a point is considered escaped.
const Bailout = 2.0

// Iterations returns the escape-time count for pixel (x, y) of a width x height
// image under z -> z^2 + c.
//
// The count is the index of the last completed iteration, so an orbit that
// never escapes reports maxIterations-1 rather than maxIterations, and a point
// outside the bailout radius from the start reports 0. The result is in
// [0, maxIterations). maxIterations must be positive; otherwise 0 is returned
// without iterating.
func Iterations(c complex128, x, y, width, height, maxIterations int) int {
	j := transforms.Julia2{C: c}
	z := transforms.Viewport{Width: width, Height: height}.Point(x, y)

	iterations := 0
	for t := 0; t < maxIterations; t++ {
		if cmplx.Abs(z) >= Bailout {
			break
		}
		z = j.Next(z)
		iterations = t
	}

	return iterations
}
