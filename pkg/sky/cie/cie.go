// Package cie implements the empirical CIE sky luminance distributions: the legacy overcast,
// clear and partly cloudy formulas, the fifteen CIE standard general skies, and the zenith
// luminance estimate shared by the analytic models.
//
// Directions use the sky frame (Z up). All functions are pure and total: view directions below
// the horizon are clamped to a grazing angle rather than rejected.
package cie

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

const (
	// minCosTheta keeps 1/cosθ terms finite at and below the horizon.
	minCosTheta = 1e-3

	// maxChi keeps tan(chi) away from its pole.
	maxChi = math32.Pi/2 - 1e-3
)

var (
	// OvercastChroma is the achromatic xy chromaticity used for overcast skies.
	OvercastChroma = math.Vec2{X: 1.0 / 3.0, Y: 1.0 / 3.0}
	// PartlyCloudyChroma is the xy chromaticity used for partly cloudy skies.
	PartlyCloudyChroma = math.Vec2{X: 1.0 / 3.0, Y: 1.0 / 3.0}
)

// ZenithLuminance estimates the sky luminance at the zenith, in cd/m², for the given sun zenith
// angle (radians) and turbidity.
func ZenithLuminance(thetaS, turbidity float32) float32 {
	chi := (4.0/9.0 - turbidity/120) * (math32.Pi - 2*thetaS)
	chi = math.Clamp(chi, -maxChi, maxChi)

	// kcd/m² -> cd/m²
	l := ((4.0453*turbidity-4.9710)*math32.Tan(chi) - 0.2155*turbidity + 2.4192) * 1000
	return max(l, 0)
}

// OvercastLuminance is the CIE overcast sky: luminance rises from a third of the zenith value at
// the horizon to lz at the zenith, independent of the sun.
func OvercastLuminance(v math.Vec3, lz float32) float32 {
	cosTheta := max(v.Z, 0)
	return lz * ((1 + 2*cosTheta) / 3)
}

// ClearLuminance is the legacy CIE clear sky formula.
func ClearLuminance(v, sun math.Vec3, lz float32) float32 {
	cosTheta, gamma, cosGamma, thetaS := angles(v, sun)
	cosThetaS := math32.Cos(thetaS)

	top1 := 0.91 + 10*math32.Exp(-3*gamma) + 0.45*cosGamma*cosGamma
	bot1 := 0.91 + 10*math32.Exp(-3*thetaS) + 0.45*cosThetaS*cosThetaS

	top2 := 1 - math32.Exp(-0.32/cosTheta)
	bot2 := 1 - math32.Exp(-0.32)

	return lz * ((top1 * top2) / (bot1 * bot2))
}

// PartlyCloudyLuminance is the legacy CIE partly cloudy sky formula.
func PartlyCloudyLuminance(v, sun math.Vec3, lz float32) float32 {
	cosTheta, gamma, _, thetaS := angles(v, sun)

	top1 := 0.526 + 5*math32.Exp(-1.5*gamma)
	bot1 := 0.526 + 5*math32.Exp(-1.5*thetaS)

	top2 := 1 - math32.Exp(-0.8/cosTheta)
	bot2 := 1 - math32.Exp(-0.8)

	return lz * ((top1 * top2) / (bot1 * bot2))
}

// angles returns the clamped view cosθ, the view-sun angle γ with its cosine, and the sun
// zenith angle.
func angles(v, sun math.Vec3) (cosTheta, gamma, cosGamma, thetaS float32) {
	cosTheta = max(v.Z, minCosTheta)
	cosGamma = math.Clamp(v.Dot(sun), -1, 1)
	gamma = math32.Acos(cosGamma)
	thetaS = math32.Acos(math.Clamp(sun.Z, -1, 1))
	return cosTheta, gamma, cosGamma, thetaS
}
