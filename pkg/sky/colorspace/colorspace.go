// Package colorspace converts between the colour spaces the sky models work in (xyY, CIE XYZ)
// and linear RGB.
package colorspace

import (
	"fmt"
	"strings"

	"github.com/Faultbox/sunsky/pkg/math"
)

// Primaries selects the XYZ -> RGB matrix used for final output.
type Primaries int

const (
	// SRGB uses the Rec. 709 / sRGB primaries with a D65 white point.
	SRGB Primaries = iota
	// Monitor is the legacy gamut of the original sky tool (a measured desktop monitor).
	Monitor
)

var xyzToRGB = [...]math.Mat3{
	SRGB: {
		{X: 3.2404542, Y: -1.5371385, Z: -0.4985314},
		{X: -0.9692660, Y: 1.8760108, Z: 0.0415560},
		{X: 0.0556434, Y: -0.2040259, Z: 1.0572252},
	},
	Monitor: {
		{X: 2.80298, Y: -1.18735, Z: -0.437286},
		{X: -1.07909, Y: 1.97927, Z: 0.0423073},
		{X: 0.0746015, Y: -0.248513, Z: 1.08196},
	},
}

var rgbToXYZ = math.Mat3{
	{X: 0.4124564, Y: 0.3575761, Z: 0.1804375},
	{X: 0.2126729, Y: 0.7151522, Z: 0.0721750},
	{X: 0.0193339, Y: 0.1191920, Z: 0.9503041},
}

// String returns the config name of the primaries.
func (p Primaries) String() string {
	switch p {
	case SRGB:
		return "srgb"
	case Monitor:
		return "monitor"
	default:
		return fmt.Sprintf("Primaries(%d)", int(p))
	}
}

// ParsePrimaries converts a config name into Primaries.
func ParsePrimaries(name string) (Primaries, error) {
	switch strings.ToLower(name) {
	case "", "srgb", "rec709":
		return SRGB, nil
	case "monitor", "legacy":
		return Monitor, nil
	default:
		return SRGB, fmt.Errorf("unknown primaries %q", name)
	}
}

// XYZToRGB converts CIE XYZ to linear RGB.
func (p Primaries) XYZToRGB(c math.Vec3) math.Vec3 {
	if p < 0 || int(p) >= len(xyzToRGB) {
		p = SRGB
	}
	return xyzToRGB[p].MulVec3(c)
}

// XyYToRGB converts xyY to linear RGB.
func (p Primaries) XyYToRGB(c math.Vec3) math.Vec3 {
	return p.XYZToRGB(XyYToXYZ(c))
}

// minChroma keeps xyY -> XYZ finite as the y chromaticity collapses.
const minChroma = 1e-6

// XyYToXYZ converts chromaticity x, y and luminance Y into tristimulus XYZ.
// A degenerate y chromaticity yields black.
func XyYToXYZ(c math.Vec3) math.Vec3 {
	if !(c.Y > minChroma) {
		return math.Vec3{}
	}
	s := c.Z / c.Y
	return math.Vec3{X: c.X * s, Y: c.Z, Z: (1 - c.X - c.Y) * s}
}

// Chroma returns the xy chromaticity of an XYZ colour, or zero when the colour is black.
func Chroma(c math.Vec3) math.Vec2 {
	sum := c.X + c.Y + c.Z
	if !(sum > minChroma) {
		return math.Vec2{}
	}
	return math.Vec2{X: c.X / sum, Y: c.Y / sum}
}

// RGBToXYZ converts linear sRGB to XYZ.
func RGBToXYZ(c math.Vec3) math.Vec3 {
	return rgbToXYZ.MulVec3(c)
}
