// Package hosek implements the Hosek-Wilkie analytic sky model over CIE XYZ, extended with the
// same below-horizon fade and overcast blend as the Preetham model.
//
// The fitted coefficients are an input: see Dataset and LoadDataset. A Model without a dataset
// evaluates to black.
package hosek

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/cie"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/internal/blend"
	"github.com/Faultbox/sunsky/pkg/sky/sun"
)

// Turbidity range of the dataset.
const (
	MinTurbidity = 1
	MaxTurbidity = NumTurbidities
)

// Coefficient indices, in dataset order.
const (
	A = iota // gradation strength
	B        // gradation falloff
	I        // constant term
	C        // circumsolar strength
	D        // circumsolar falloff
	E        // Rayleigh term
	F        // Mie term
	H        // zenith term
	G        // Mie anisotropy
	NumCoeffs
)

// Channel indices.
const (
	ChannelX = iota
	ChannelY
	ChannelZ
	NumChannels
)

const (
	// thetaEpsilon keeps e^(B/cosθ) finite at the horizon.
	thetaEpsilon = 0.01
	minMieDenom  = 1e-6
)

// Coeffs holds the nine coefficients of one channel.
type Coeffs [NumCoeffs]float32

// Theta returns the view-zenith gradation term A·e^(B/(cosθ + 0.01)).
func (c Coeffs) Theta(cosTheta float32) float32 {
	return c[A] * math32.Exp(c[B]/(max(cosTheta, 0)+thetaEpsilon))
}

// Gamma returns the sun-angle dependent terms C·e^(Dγ) + E·cos²γ + F·mie(γ) + (I - 1).
func (c Coeffs) Gamma(gamma, cosGamma float32) float32 {
	cos2 := cosGamma * cosGamma
	base := max(1+c[G]*c[G]-2*c[G]*cosGamma, 0)
	mie := (1 + cos2) / max(math32.Pow(base, 1.5), minMieDenom)
	return c[C]*math32.Exp(c[D]*gamma) + c[E]*cos2 + c[F]*mie + (c[I] - 1)
}

// Zenith returns the zenith term H·sqrt(cosθ).
func (c Coeffs) Zenith(cosTheta float32) float32 {
	return c[H] * math32.Sqrt(max(cosTheta, 0))
}

// Eval returns (1 + Theta) · (1 + Gamma + Zenith).
func (c Coeffs) Eval(cosTheta, gamma, cosGamma float32) float32 {
	return (1 + c.Theta(cosTheta)) * (1 + c.Gamma(gamma, cosGamma) + c.Zenith(cosTheta))
}

// Model is the Hosek-Wilkie sky for one sun position and atmosphere. The zero Model is black.
// Queries are safe for concurrent use between calls to Update.
type Model struct {
	// Dataset holds the fitted coefficients. Nil gives a black sky.
	Dataset *Dataset
	// Primaries selects the RGB space returned by SkyRGB.
	Primaries colorspace.Primaries

	sunDir    math.Vec3
	thetaS    float32
	turbidity float32

	coeffs   [NumChannels]Coeffs
	radiance math.Vec3 // XYZ, cd/m²
}

// Update recomputes the coefficients for the given sun direction (unit length, Z up), turbidity,
// ground albedo (linear RGB) and overcast factor in [0, 1].
func (m *Model) Update(sunDir math.Vec3, turbidity float32, albedo math.Vec3, overcast float32) {
	t := math.Clamp(turbidity, MinTurbidity, MaxTurbidity)

	m.sunDir = sunDir
	m.turbidity = t
	m.thetaS = math32.Acos(math.Clamp(sunDir.Z, -1, 1))
	m.coeffs = [NumChannels]Coeffs{}
	m.radiance = math.Vec3{}

	if m.Dataset == nil {
		return
	}

	elevation := math32.Asin(math.Saturate(sunDir.Z))
	x := math32.Pow(elevation/(math32.Pi/2), 1.0/3)
	albedoXYZ := colorspace.RGBToXYZ(albedo)
	alb := [NumChannels]float32{
		math.Saturate(albedoXYZ.X),
		math.Saturate(albedoXYZ.Y),
		math.Saturate(albedoXYZ.Z),
	}

	var rad [NumChannels]float32
	for ch := range m.coeffs {
		m.coeffs[ch] = cookCoeffs(&m.Dataset.Coeffs[ch], t, alb[ch], x)
		rad[ch] = cookRadiance(&m.Dataset.Radiance[ch], t, alb[ch], x)
	}
	m.radiance = math.Vec3{X: rad[0], Y: rad[1], Z: rad[2]}.Scale(sun.LuminousEfficacy)

	if sunDir.Z < 0 {
		s := blend.SunFade(sunDir.Z)
		for ch := range m.coeffs {
			c := m.coeffs[ch][:]
			blend.Scale(c, s, C, E, F, H)
			blend.Toward(c, I, 1, 1-s)
		}

		// The fit does not extend below the horizon: darken as the zenith does.
		horizon := cie.ZenithLuminance(math32.Pi/2, t)
		if horizon > 0 {
			m.radiance = m.radiance.Scale(math.Saturate(cie.ZenithLuminance(m.thetaS, t) / horizon))
		}
	}

	if o := math.Saturate(overcast); o > 0 {
		before := m.referenceLuminance()
		for ch := range m.coeffs {
			c := m.coeffs[ch][:]
			blend.TowardZero(c, o, C, E, F, H)
			blend.Toward(c, I, 1, o)
			blend.TowardCloudy(c, A, B, o)
		}
		if after := m.referenceLuminance(); after > 0 {
			m.radiance = m.radiance.Scale(before / after)
		}

		m.radiance.X = m.radiance.X*(1-o) + m.radiance.Y*o
		m.radiance.Z = m.radiance.Z*(1-o) + m.radiance.Y*o
	}
}

// referenceLuminance sums the luminance at the zenith and at the two horizon points along the
// sun's azimuth.
func (m *Model) referenceLuminance() float32 {
	h := math.Vec3{X: m.sunDir.X, Y: m.sunDir.Y}.Normalize()
	if h == (math.Vec3{}) {
		h = math.Vec3{X: 1}
	}
	return m.SkyLuminance(math.Vec3{Z: 1}) + m.SkyLuminance(h) + m.SkyLuminance(h.Scale(-1))
}

// quintic returns the Bernstein weights of the six elevation control points at x in [0, 1].
func quintic(x float32) [NumControl]float32 {
	ix := 1 - x
	x2, x3 := x*x, x*x*x
	ix2, ix3 := ix*ix, ix*ix*ix
	return [NumControl]float32{
		ix2 * ix3,
		5 * ix2 * ix2 * x,
		10 * ix3 * x2,
		10 * ix2 * x3,
		5 * ix * x2 * x2,
		x2 * x3,
	}
}

// binWeights lists the (albedo bin, turbidity bin, weight) corners blended for a turbidity in
// [1, 10] and an albedo in [0, 1].
func binWeights(turbidity, albedo float32) (bins [4][2]int, weights [4]float32, n int) {
	it := int(turbidity)
	rem := turbidity - float32(it)

	bins[0], weights[0] = [2]int{0, it - 1}, (1-albedo)*(1-rem)
	bins[1], weights[1] = [2]int{1, it - 1}, albedo*(1-rem)
	n = 2
	if it < NumTurbidities {
		bins[2], weights[2] = [2]int{0, it}, (1-albedo)*rem
		bins[3], weights[3] = [2]int{1, it}, albedo*rem
		n = 4
	}
	return bins, weights, n
}

func cookCoeffs(d *ChannelCoeffs, turbidity, albedo, x float32) Coeffs {
	w := quintic(x)
	bins, weights, n := binWeights(turbidity, albedo)

	var c Coeffs
	for k := 0; k < n; k++ {
		control := &d[bins[k][0]][bins[k][1]]
		for q := range control {
			for i := range c {
				c[i] += weights[k] * w[q] * control[q][i]
			}
		}
	}
	return c
}

func cookRadiance(d *ChannelRadiance, turbidity, albedo, x float32) float32 {
	w := quintic(x)
	bins, weights, n := binWeights(turbidity, albedo)

	var r float32
	for k := 0; k < n; k++ {
		control := &d[bins[k][0]][bins[k][1]]
		for q := range control {
			r += weights[k] * w[q] * control[q]
		}
	}
	return r
}

// SkyXYZ returns the sky colour in direction v as CIE XYZ (cd/m² in Y). Directions below the
// horizon are evaluated at the horizon.
func (m *Model) SkyXYZ(v math.Vec3) math.Vec3 {
	cosTheta, gamma, cosGamma := m.angles(v)
	return math.Vec3{
		X: m.coeffs[ChannelX].Eval(cosTheta, gamma, cosGamma),
		Y: m.coeffs[ChannelY].Eval(cosTheta, gamma, cosGamma),
		Z: m.coeffs[ChannelZ].Eval(cosTheta, gamma, cosGamma),
	}.Mul(m.radiance)
}

// SkyRGB returns the linear RGB sky radiance in direction v.
func (m *Model) SkyRGB(v math.Vec3) math.Vec3 {
	return m.Primaries.XYZToRGB(m.SkyXYZ(v))
}

// SkyLuminance returns the sky luminance in direction v, in cd/m².
func (m *Model) SkyLuminance(v math.Vec3) float32 {
	cosTheta, gamma, cosGamma := m.angles(v)
	return m.coeffs[ChannelY].Eval(cosTheta, gamma, cosGamma) * m.radiance.Y
}

// SkyChroma returns the xy chromaticity of the sky in direction v.
func (m *Model) SkyChroma(v math.Vec3) math.Vec2 {
	return colorspace.Chroma(m.SkyXYZ(v))
}

func (m *Model) angles(v math.Vec3) (cosTheta, gamma, cosGamma float32) {
	cosTheta = max(v.Z, 0)
	cosGamma = math.Clamp(m.sunDir.Dot(v), -1, 1)
	gamma = math32.Acos(cosGamma)
	return cosTheta, gamma, cosGamma
}

// Coeffs returns the coefficients of channel ch (ChannelX, ChannelY or ChannelZ).
func (m *Model) Coeffs(ch int) Coeffs { return m.coeffs[ch] }

// Radiance returns the per-channel radiance scale in XYZ. Its Y component is the representative
// sky luminance used for exposure.
func (m *Model) Radiance() math.Vec3 { return m.radiance }

// SunDir returns the sun direction of the last Update.
func (m *Model) SunDir() math.Vec3 { return m.sunDir }

// ThetaS returns the sun zenith angle in radians.
func (m *Model) ThetaS() float32 { return m.thetaS }

// Turbidity returns the clamped turbidity of the last Update.
func (m *Model) Turbidity() float32 { return m.turbidity }
