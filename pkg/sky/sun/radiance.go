package sun

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

const (
	tableSize = 16

	// LuminousEfficacy converts watts to lumens at 540e12 Hz (555 nm).
	LuminousEfficacy = 683

	// Useful turbidity range of the radiance table.
	minTurbidity = 2
	maxTurbidity = 12

	radiusMeters   = 0.696e9
	distanceMeters = 149.6e9
)

// SolidAngle is the solid angle subtended by the sun disc, in steradians.
var SolidAngle = 2 * math32.Pi * (1 - math32.Cos(math32.Atan(radiusMeters/distanceMeters)))

// Radiance returns the RGB luminance of the sun disc for the given cosine of the sun zenith
// angle and turbidity. It is zero once the sun is below the horizon. Turbidity outside the
// table's 2-12 range is clamped.
func Radiance(cosTheta, turbidity float32) math.Vec3 {
	if !(cosTheta >= 0) {
		return math.Vec3{}
	}

	s := math.Saturate(cosTheta)
	t := math.Saturate((turbidity - minTurbidity) / (maxTurbidity - minTurbidity))

	is, fs := math.TableIndex(s, tableSize)
	it, ft := math.TableIndex(t, tableSize)

	c00 := entry(it, is)
	c01 := entry(it, is+1)
	c10 := entry(it+1, is)
	c11 := entry(it+1, is+1)

	return math.Bilerp(c00, c01, c10, c11, fs, ft).Scale(LuminousEfficacy * SolidAngle)
}

func entry(t, s int) math.Vec3 {
	e := radianceTable[t][s]
	return math.Vec3{X: e[0], Y: e[1], Z: e[2]}
}
