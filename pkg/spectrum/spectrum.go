// Package spectrum approximates the visible light spectrum in RGB.
//
// Based on the piecewise model from http://www.efg2.com/Lab/ScienceAndEngineering/Spectra.htm.
package spectrum

import (
	"image/color"
	"math"
)

const (
	// Violet and Red bound the visible range in nanometers, inclusive.
	Violet = 380
	Red    = 780

	gamma = 0.8
)

// Wavelength rescales an iteration count into [Violet, Red] nanometers.
// maxIterations must be positive; otherwise Violet is returned.
func Wavelength(iterations, maxIterations int) int {
	if maxIterations <= 0 {
		return Violet
	}
	return Violet + iterations*(Red-Violet)/maxIterations
}

// Color returns the RGB approximation of light at the given wavelength.
// Wavelengths outside [Violet, Red] are black.
func Color(wavelength int) color.RGBA {
	w := float64(wavelength)

	r, g, b := 0.0, 0.0, 0.0
	switch {
	case wavelength < 380:
	case wavelength < 440:
		r, b = (440.0-w)/(440.0-380.0), 1.0
	case wavelength < 490:
		g, b = (w-440.0)/(490.0-440.0), 1.0
	case wavelength < 510:
		g, b = 1.0, (510.0-w)/(510.0-490.0)
	case wavelength < 580:
		r, g = (w-510.0)/(580.0-510.0), 1.0
	case wavelength < 645:
		r, g = 1.0, (645.0-w)/(645.0-580.0)
	case wavelength <= 780:
		r = 1.0
	}

	f := fade(wavelength)

	return color.RGBA{
		R: normalize(r, f),
		G: normalize(g, f),
		B: normalize(b, f),
		A: math.MaxUint8,
	}
}

// fade dims the edges of the spectrum where the eye is less sensitive.
func fade(wavelength int) float64 {
	w := float64(wavelength)

	switch {
	case wavelength >= 380 && wavelength < 420:
		return 0.3 + 0.7*(w-380.0)/(420.0-380.0)
	case wavelength > 700 && wavelength <= 780:
		return 0.3 + 0.7*(780.0-w)/(780.0-700.0)
	default:
		return 1.0
	}
}

func normalize(c, factor float64) uint8 {
	return uint8(math.Floor(math.Pow(c*factor, gamma) * math.MaxUint8))
}
