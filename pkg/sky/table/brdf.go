package table

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/zh"
)

// NumRows is the number of roughness rows in a BRDF. Row 0 is unconvolved.
const NumRows = 4

// rowPowers are the cosine-power exponents of rows 1 and up, from glossy to diffuse.
var rowPowers = [NumRows - 1]float32{128, 16, 1}

// RowPower returns the cosine-power exponent row r is convolved with, or 0 for row 0.
func RowPower(r int) float32 {
	if r <= 0 || r >= NumRows {
		return 0
	}
	return rowPowers[r-1]
}

// Ringing suppression strengths for the theta and gamma series.
const (
	thetaWindow      = 0.01
	gammaWindow      = 0.002
	thetaWindowHosek = 0.05
	gammaWindowHosek = 0.005
)

// belowGround is the theta term projected for directions under the horizon. (1 - F) is then
// nearly zero, so ground luminance does not leak into the convolved sky.
const belowGround = 0.999

// BRDF holds theta and gamma tables for a set of roughness levels.
//
// Theta rows cover the whole sphere: entry i is at cosθ = 2i/63 - 1. Gamma rows use the same
// parameterisation as Table. For Hosek-Wilkie skies H holds the zenith term and FH the product
// of the theta term and the zenith term, each convolved on its own.
type BRDF struct {
	Primaries colorspace.Primaries

	Format Format
	SunDir math.Vec3
	Norm   math.Vec3
	Theta  [NumRows][Size]math.Vec3
	Gamma  [NumRows][Size]math.Vec3
	H      [NumRows][Size]math.Vec3
	FH     [NumRows][Size]math.Vec3
}

func sphereCos(i int) float32 {
	return 2*float32(i)/(Size-1) - 1
}

// Find builds every row from the separable table t.
func (b *BRDF) Find(t *Table) {
	hosek := t.Format == FormatXYZ

	b.Format = t.Format
	b.SunDir = t.SunDir
	b.Norm = t.Norm

	const half = Size / 2
	var theta, h, fh [Size]math.Vec3

	for i := half; i < Size; i++ {
		cosTheta := sphereCos(i)
		theta[i] = math.TableLerp(cosTheta, t.Theta[:])
		h[i] = math.TableLerp(cosTheta, t.H[:])
		fh[i] = theta[i].Mul(h[i])
	}

	// Projection sees an almost black ground.
	ground := math.Vec3{Z: belowGround}
	if hosek {
		ground = math.Splat(belowGround)
	}
	for i := 0; i < half; i++ {
		theta[i], h[i], fh[i] = ground, math.Vec3{}, math.Vec3{}
	}

	projected := theta
	if !hosek {
		for i := range projected {
			projected[i] = zh.Bias(projected[i])
		}
	}
	zTheta := zh.ProjectTheta(projected[:])
	zGamma := zh.ProjectGamma(t.Gamma[:])
	zH := zh.ProjectTheta(h[:])
	zFH := zh.ProjectTheta(fh[:])

	// The unconvolved row reflects the sky below the horizon, fading toward the nadir, so
	// that lookups just under the horizon stay continuous.
	for i := 0; i < half; i++ {
		cosTheta := -sphereCos(i)
		s := math32.Sqrt((float32(i) + 0.5) / half)

		f := math.TableLerp(cosTheta, t.Theta[:])
		if hosek {
			f = f.Scale(s).Add(math.Splat(1 - s))
		} else {
			f.Z = f.Z*s + (1 - s)
		}
		hr := math.TableLerp(cosTheta, t.H[:]).Scale(s)

		theta[i], h[i], fh[i] = f, hr, f.Mul(hr)
	}
	b.Theta[0], b.Gamma[0], b.H[0], b.FH[0] = theta, t.Gamma, h, fh

	tw, gw := float32(thetaWindow), float32(gammaWindow)
	if hosek {
		tw, gw = thetaWindowHosek, gammaWindowHosek
	}

	for r := 1; r < NumRows; r++ {
		n := rowPowers[r-1]

		zTheta.ConvolveCosPower(n).Window(tw).ResampleTheta(b.Theta[r][:])
		zGamma.ConvolveCosPower(n).Window(gw).ResampleGamma(b.Gamma[r][:])

		if !hosek {
			for i := range b.Theta[r] {
				b.Theta[r][i] = zh.Unbias(b.Theta[r][i])
			}
			b.H[r], b.FH[r] = [Size]math.Vec3{}, [Size]math.Vec3{}
			continue
		}
		zH.ConvolveCosPower(n).Window(tw).ResampleTheta(b.H[r][:])
		zFH.ConvolveCosPower(n).Window(tw).ResampleTheta(b.FH[r][:])
	}
}

func rowLerp(rows *[NumRows][Size]math.Vec3, r int, rf float32, i int, f float32) math.Vec3 {
	return math.Bilerp(rows[r][i], rows[r][i+1], rows[r+1][i], rows[r+1][i+1], f, rf)
}

// Sky returns the sky in direction v seen through a surface of the given roughness in [0, 1],
// in the table's own colour space. Ringing is clamped away.
func (b *BRDF) Sky(v math.Vec3, roughness float32) math.Vec3 {
	cosTheta := math.Clamp(v.Z, -1, 1)
	cosGamma := math.Clamp(b.SunDir.Dot(v), -1, 1)

	ti, tf := math.TableIndex(0.5*(cosTheta+1), Size)
	gi, gf := math.TableIndex(gammaParam(cosGamma), Size)
	r, rf := math.TableIndex(math.Saturate(roughness), NumRows)

	f := rowLerp(&b.Theta, r, rf, ti, tf)
	g := rowLerp(&b.Gamma, r, rf, gi, gf)
	h := rowLerp(&b.H, r, rf, ti, tf)
	fh := rowLerp(&b.FH, r, rf, ti, tf)

	// (1 - F)(1 + G + H) with the H·F product taken from its own table.
	one := math.Splat(1)
	c := one.Sub(f).Mul(one.Add(g)).Add(h).Sub(fh)
	return c.ClampNonNegative().Mul(b.Norm)
}

// SkyXYZ returns the convolved sky in direction v as CIE XYZ.
func (b *BRDF) SkyXYZ(v math.Vec3, roughness float32) math.Vec3 {
	return b.Format.toXYZ(b.Sky(v, roughness))
}

// SkyRGB returns the convolved linear RGB sky radiance in direction v.
func (b *BRDF) SkyRGB(v math.Vec3, roughness float32) math.Vec3 {
	return b.Primaries.XYZToRGB(b.SkyXYZ(v, roughness))
}
