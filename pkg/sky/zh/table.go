package zh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

// Theta tables cover the whole sphere, entry i at z = 2i/(n-1) - 1 (nadir to zenith).
// Gamma tables are parameterised by t = sin(γ/2), entry i at t = i/(n-1), z = cos γ = 1 - 2t²,
// so entry 0 is the pole.

func thetaZ(i, n int) float32 {
	return 2*float32(i)/float32(n-1) - 1
}

func gammaT(i, n int) float32 {
	return float32(i) / float32(n-1)
}

// ProjectTheta projects a theta table onto zonal harmonics. dω = 2π dz.
func ProjectTheta(table []math.Vec3) Coeffs {
	var zc Coeffs
	n := len(table)
	for i, c := range table {
		zc.AddSample(thetaZ(i, n), c)
	}
	return zc.Scale(4 * math32.Pi / float32(n))
}

// ProjectGamma projects a gamma table onto zonal harmonics. dω = 2π |dz| = 2π · 4t dt.
func ProjectGamma(table []math.Vec3) Coeffs {
	var zc Coeffs
	n := len(table)
	for i, c := range table {
		t := gammaT(i, n)
		zc.AddSample(1-2*t*t, c.Scale(4*t))
	}
	return zc.Scale(2 * math32.Pi / float32(n))
}

// ResampleTheta evaluates the coefficients onto a theta table.
func (zc Coeffs) ResampleTheta(table []math.Vec3) {
	n := len(table)
	for i := range table {
		table[i] = zc.Eval(thetaZ(i, n))
	}
}

// ResampleGamma evaluates the coefficients onto a gamma table.
func (zc Coeffs) ResampleGamma(table []math.Vec3) {
	n := len(table)
	for i := range table {
		t := gammaT(i, n)
		table[i] = zc.Eval(1 - 2*t*t)
	}
}

// minBiasWeight is the luminance floor used when removing the bias.
const minBiasWeight = 0.01

// Bias converts a negated Perez theta term in xyY, F, into the luminance weighted form
// (Fx·w, Fy·w, w) with w = 1 - F_Y, so that the projected quantity behaves like a radiance.
func Bias(c math.Vec3) math.Vec3 {
	w := 1 - c.Z
	return math.Vec3{X: c.X * w, Y: c.Y * w, Z: w}
}

// Unbias inverts Bias. The luminance weight is floored at 0.01.
func Unbias(b math.Vec3) math.Vec3 {
	w := max(b.Z, minBiasWeight)
	return math.Vec3{X: b.X / w, Y: b.Y / w, Z: 1 - b.Z}
}
