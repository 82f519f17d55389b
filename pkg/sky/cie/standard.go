package cie

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

// NumStandardSkies is the number of CIE standard general sky types.
const NumStandardSkies = 15

// StandardSky holds the gradation (A, B) and indicatrix (C, D, E) parameters of one CIE
// standard general sky (Darula and Kittler).
type StandardSky struct {
	A, B, C, D, E float32
	Description   string
}

// StandardSkies lists the CIE standard general skies; type n is StandardSkies[n-1].
var StandardSkies = [NumStandardSkies]StandardSky{
	{4.0, -0.70, 0, -1.0, 0.00, "overcast, steep gradation, azimuthal uniformity"},
	{4.0, -0.70, 2, -1.5, 0.15, "overcast, steep gradation, slight brightening toward the sun"},
	{1.1, -0.80, 0, -1.0, 0.00, "overcast, moderate gradation, azimuthal uniformity"},
	{1.1, -0.80, 2, -1.5, 0.15, "overcast, moderate gradation, slight brightening toward the sun"},
	{0.0, -1.00, 0, -1.0, 0.00, "uniform luminance"},
	{0.0, -1.00, 2, -1.5, 0.15, "partly cloudy, no gradation, slight brightening toward the sun"},
	{0.0, -1.00, 5, -2.5, 0.30, "partly cloudy, no gradation, brighter circumsolar region"},
	{0.0, -1.00, 10, -3.0, 0.45, "partly cloudy, no gradation, distinct solar corona"},
	{-1.0, -0.55, 2, -1.5, 0.15, "partly cloudy, obscured sun"},
	{-1.0, -0.55, 5, -2.5, 0.30, "partly cloudy, brighter circumsolar region"},
	{-1.0, -0.55, 10, -3.0, 0.45, "white-blue sky, distinct solar corona"},
	{-1.0, -0.32, 10, -3.0, 0.45, "clear, low luminance turbidity"},
	{-1.0, -0.32, 16, -3.0, 0.30, "clear, polluted atmosphere"},
	{-1.0, -0.15, 16, -3.0, 0.30, "cloudless turbid, broad solar corona"},
	{-1.0, -0.15, 24, -2.8, 0.15, "white-blue turbid, broad solar corona"},
}

// Standard returns the standard sky of the given type, clamping kind to 1-15.
func Standard(kind int) StandardSky {
	kind = min(max(kind, 1), NumStandardSkies)
	return StandardSkies[kind-1]
}

// Ratio returns the luminance in direction v relative to the zenith luminance:
//
//	[(1 + a e^(b/cosθv)) (1 + c e^(dγ) + e cos²γ)] / [(1 + a e^b) (1 + c e^(dθs) + e cos²θs)]
func (s StandardSky) Ratio(v, sun math.Vec3) float32 {
	cosTheta, gamma, cosGamma, thetaS := angles(v, sun)
	cosThetaS := math32.Cos(thetaS)

	gradation := 1 + s.A*math32.Exp(s.B/cosTheta)
	indicatrix := 1 + s.C*math32.Exp(s.D*gamma) + s.E*cosGamma*cosGamma

	zenithGradation := 1 + s.A*math32.Exp(s.B)
	zenithIndicatrix := 1 + s.C*math32.Exp(s.D*thetaS) + s.E*cosThetaS*cosThetaS

	return (gradation * indicatrix) / (zenithGradation * zenithIndicatrix)
}

// Luminance returns the luminance in direction v given the zenith luminance lz.
func (s StandardSky) Luminance(v, sun math.Vec3, lz float32) float32 {
	return lz * s.Ratio(v, sun)
}

// StandardLuminance evaluates CIE standard sky type kind (1-15).
func StandardLuminance(kind int, v, sun math.Vec3, lz float32) float32 {
	return Standard(kind).Luminance(v, sun, lz)
}
