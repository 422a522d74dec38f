package render

import (
	"fmt"
	"math"
)

// sRGB transfer curve breakpoints.
const (
	srgbLinearCutoff = 0.0031308
	srgbLinearScale  = 12.92
	srgbGamma        = 1 / 2.4
	srgbOffset       = 0.055
)

// LinearToSRGB converts one linear-space component in [0, 1] to its sRGB
// byte value using the standard transfer curve.
func LinearToSRGB(c float64) uint8 {
	c = math.Max(0, math.Min(1, c))
	var s float64
	if c <= srgbLinearCutoff {
		s = c * srgbLinearScale
	} else {
		s = (1+srgbOffset)*math.Pow(c, srgbGamma) - srgbOffset
	}
	return uint8(math.Round(s * 255))
}

// HexColor renders a linear RGBA tuple as a #rrggbb sRGB hex string. Alpha
// is dropped; SVG opacity is handled separately where needed.
func HexColor(rgba [4]float64) string {
	return fmt.Sprintf("#%02x%02x%02x",
		LinearToSRGB(rgba[0]),
		LinearToSRGB(rgba[1]),
		LinearToSRGB(rgba[2]),
	)
}
