// Package table fits the analytic sky models into one-dimensional lookup tables.
//
// Both Preetham and Hosek-Wilkie skies factor into a term that depends only on the view zenith
// angle θ and a term that depends only on the angle to the sun γ. A Table stores each factor
// sampled 64 times, so a query is two clamped lookups and a multiply. A BRDF stacks rows of such
// tables convolved with cosine-power lobes of decreasing sharpness.
package table

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/hosek"
	"github.com/Faultbox/sunsky/pkg/sky/preetham"
)

// Size is the number of entries in every theta and gamma table.
const Size = 64

// Format is the colour space table entries are stored in.
type Format int

const (
	// FormatxyY tables come from the Preetham model.
	FormatxyY Format = iota
	// FormatXYZ tables come from the Hosek-Wilkie model.
	FormatXYZ
)

func (f Format) String() string {
	if f == FormatXYZ {
		return "XYZ"
	}
	return "xyY"
}

// Table is a separable fit of an analytic sky.
//
// Theta entry i holds the negated θ term at cosθ = i/63, from the horizon up to the zenith.
// Gamma entry i holds the γ term at t = i/63 where cosγ = 1 - 2t², so entry 0 is the centre
// of the sun and the last entry the antisolar point. H holds the additive zenith term of the
// Hosek-Wilkie model at the same cosθ samples and is zero for Preetham tables.
type Table struct {
	Primaries colorspace.Primaries

	Format   Format
	SunDir   math.Vec3
	Theta    [Size]math.Vec3
	Gamma    [Size]math.Vec3
	H        [Size]math.Vec3
	Norm     math.Vec3
	MaxGamma float32
}

func thetaCos(i int) float32 {
	return float32(i) / (Size - 1)
}

// gammaAngle returns γ and cosγ for gamma entry i.
func gammaAngle(i int) (gamma, cosGamma float32) {
	t := float32(i) / (Size - 1)
	cosGamma = math.Clamp(1-2*t*t, -1, 1)
	return math32.Acos(cosGamma), cosGamma
}

// gammaParam maps cosγ onto the gamma table parameter t = sqrt(0.5(1 - cosγ)).
func gammaParam(cosGamma float32) float32 {
	return math32.Sqrt(max(0.5*(1-cosGamma), 0))
}

// FindPreetham fits the table to the current state of m.
func (t *Table) FindPreetham(m *preetham.Model) {
	cx := m.Coeffs(preetham.ChannelX)
	cy := m.Coeffs(preetham.ChannelY)
	cl := m.Coeffs(preetham.ChannelLuminance)

	t.Format = FormatxyY
	t.SunDir = m.SunDir()
	t.Norm = m.Normalization()
	t.H = [Size]math.Vec3{}
	t.MaxGamma = 0

	for i := 0; i < Size; i++ {
		cosTheta := thetaCos(i)
		t.Theta[i] = math.Vec3{X: -cx.Theta(cosTheta), Y: -cy.Theta(cosTheta), Z: -cl.Theta(cosTheta)}

		gamma, cosGamma := gammaAngle(i)
		t.Gamma[i] = math.Vec3{
			X: cx.Gamma(gamma, cosGamma),
			Y: cy.Gamma(gamma, cosGamma),
			Z: cl.Gamma(gamma, cosGamma),
		}
	}
}

// FindHosek fits the table to the current state of m, and records the largest gamma entry.
func (t *Table) FindHosek(m *hosek.Model) {
	cx := m.Coeffs(hosek.ChannelX)
	cy := m.Coeffs(hosek.ChannelY)
	cz := m.Coeffs(hosek.ChannelZ)

	t.Format = FormatXYZ
	t.SunDir = m.SunDir()
	t.Norm = m.Radiance()
	t.MaxGamma = 0

	for i := 0; i < Size; i++ {
		cosTheta := thetaCos(i)
		t.Theta[i] = math.Vec3{X: -cx.Theta(cosTheta), Y: -cy.Theta(cosTheta), Z: -cz.Theta(cosTheta)}
		t.H[i] = math.Vec3{X: cx.Zenith(cosTheta), Y: cy.Zenith(cosTheta), Z: cz.Zenith(cosTheta)}

		gamma, cosGamma := gammaAngle(i)
		g := math.Vec3{
			X: cx.Gamma(gamma, cosGamma),
			Y: cy.Gamma(gamma, cosGamma),
			Z: cz.Gamma(gamma, cosGamma),
		}
		t.Gamma[i] = g
		t.MaxGamma = max(t.MaxGamma, g.X, g.Y, g.Z)
	}
}

// Sky returns the table reconstruction (1 - F)(1 + G + H) in direction v, scaled by the
// normalisation, in the table's own colour space.
func (t *Table) Sky(v math.Vec3) math.Vec3 {
	cosTheta := max(v.Z, 0)
	cosGamma := math.Clamp(t.SunDir.Dot(v), -1, 1)

	f := math.TableLerp(cosTheta, t.Theta[:])
	g := math.TableLerp(gammaParam(cosGamma), t.Gamma[:])
	h := math.TableLerp(cosTheta, t.H[:])

	one := math.Splat(1)
	return one.Sub(f).Mul(one.Add(g).Add(h)).Mul(t.Norm)
}

// SkyXYZ returns the sky colour in direction v as CIE XYZ.
func (t *Table) SkyXYZ(v math.Vec3) math.Vec3 {
	return t.Format.toXYZ(t.Sky(v))
}

// SkyRGB returns the linear RGB sky radiance in direction v.
func (t *Table) SkyRGB(v math.Vec3) math.Vec3 {
	return t.Primaries.XYZToRGB(t.SkyXYZ(v))
}

func (f Format) toXYZ(c math.Vec3) math.Vec3 {
	if f == FormatxyY {
		return colorspace.XyYToXYZ(c)
	}
	return c
}
