package transforms

// Julia2 is the quadratic Julia map z -> z^2 + C.
type Julia2 struct {
	C complex128
}

func (j Julia2) Next(z complex128) complex128 {
	return z*z + j.C
}

// Viewport maps pixel coordinates onto the complex plane.
//
// The window is fixed at roughly [-1.5, 1.5] x [-1.0, 1.0] regardless of
// aspect ratio, with the origin at the image center.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Point(x, y int) complex128 {
	w := float64(v.Width)
	h := float64(v.Height)

	re := 3.0 * (float64(x) - 0.5*w) / w
	im := 2.0 * (float64(y) - 0.5*h) / h

	return complex(re, im)
}
