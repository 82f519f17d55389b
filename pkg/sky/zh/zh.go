// Package zh implements seventh order (degree 0-6) zonal harmonics over RGB-like vectors:
// projection of 1-D angular tables, convolution with saturated cosine-power lobes, ringing
// suppression and resampling back onto tables.
package zh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

// NumCoeffs is the number of zonal harmonic coefficients (degrees 0-6).
const NumCoeffs = 7

// Coeffs holds one zonal harmonic coefficient per degree.
type Coeffs [NumCoeffs]math.Vec3

// Normalisation constants of the zonal harmonics Y_l0.
var norm = [NumCoeffs]float32{
	math32.Sqrt(1 / (4 * math32.Pi)),
	math32.Sqrt(3 / (4 * math32.Pi)),
	math32.Sqrt(5 / (16 * math32.Pi)),
	math32.Sqrt(7 / (16 * math32.Pi)),
	math32.Sqrt(9 / (256 * math32.Pi)),
	math32.Sqrt(11 / (256 * math32.Pi)),
	math32.Sqrt(13 / (1024 * math32.Pi)),
}

// Basis returns Y_l0(z) for l = 0..6, where z is the cosine of the angle from the pole.
func Basis(z float32) [NumCoeffs]float32 {
	z2 := z * z
	z3 := z2 * z
	z4 := z2 * z2
	z5 := z2 * z3
	z6 := z3 * z3

	return [NumCoeffs]float32{
		norm[0],
		norm[1] * z,
		norm[2] * (3*z2 - 1),
		norm[3] * (5*z3 - 3*z),
		norm[4] * (35*z4 - 30*z2 + 3),
		norm[5] * (63*z5 - 70*z3 + 15*z),
		norm[6] * (231*z6 - 315*z4 + 105*z2 - 5),
	}
}

// AddSample accumulates c·Y_l(z) into every coefficient.
func (zc *Coeffs) AddSample(z float32, c math.Vec3) {
	for l, y := range Basis(z) {
		zc[l] = zc[l].Add(c.Scale(y))
	}
}

// Eval reconstructs the function at z.
func (zc Coeffs) Eval(z float32) math.Vec3 {
	var c math.Vec3
	for l, y := range Basis(z) {
		c = c.Add(zc[l].Scale(y))
	}
	return c
}

// Scale returns the coefficients multiplied by s.
func (zc Coeffs) Scale(s float32) Coeffs {
	for l := range zc {
		zc[l] = zc[l].Scale(s)
	}
	return zc
}

// CosPowerSat returns the zonal harmonic coefficients of max(cos θ, 0)^n.
func CosPowerSat(n float32) [NumCoeffs]float32 {
	z := [NumCoeffs]float32{
		1 / (n + 1),
		1 / (n + 2),
		3/(n+3) - 1/(n+1),
		5/(n+4) - 3/(n+2),
		35/(n+5) - 30/(n+3) + 3/(n+1),
		63/(n+6) - 70/(n+4) + 15/(n+2),
		231/(n+7) - 315/(n+5) + 105/(n+3) - 5/(n+1),
	}
	for l := range z {
		z[l] *= 2 * math32.Pi * norm[l]
	}
	return z
}

// CosPowerFactors returns the per-degree convolution factors for a normalised max(cos θ, 0)^n
// lobe. The DC factor is 1, so convolution preserves the mean.
func CosPowerFactors(n float32) [NumCoeffs]float32 {
	f := CosPowerSat(n)
	for l := range f {
		f[l] *= math32.Sqrt(4 * math32.Pi / float32(2*l+1))
	}
	for l := 1; l < NumCoeffs; l++ {
		f[l] /= f[0]
	}
	f[0] = 1
	return f
}

// ConvolveCosPower returns the coefficients convolved with a normalised max(cos θ, 0)^n lobe.
func (zc Coeffs) ConvolveCosPower(n float32) Coeffs {
	f := CosPowerFactors(n)
	for l := 1; l < NumCoeffs; l++ {
		zc[l] = zc[l].Scale(f[l])
	}
	return zc
}

// WindowScale is the ringing suppression factor 1/(1 + γ(l(l+1))²) for degree l.
func WindowScale(l int, gamma float32) float32 {
	nt := float32(l * (l + 1))
	return 1 / (1 + gamma*nt*nt)
}

// Window returns the coefficients attenuated by WindowScale.
func (zc Coeffs) Window(gamma float32) Coeffs {
	for l := range zc {
		zc[l] = zc[l].Scale(WindowScale(l, gamma))
	}
	return zc
}
