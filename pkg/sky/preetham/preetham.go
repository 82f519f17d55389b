// Package preetham implements the Preetham, Shirley and Smits analytic daylight model, extended
// with a below-horizon fade, an overcast blend toward the CIE overcast sky and an optional
// horizon crush.
//
// The model works in xyY: one Perez function per channel, normalised so that each channel
// reproduces the fitted zenith value when looking straight up.
package preetham

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/cie"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/internal/blend"
)

// Turbidity range of the fit. Below MinTurbidity the luminance normalisation changes sign.
const (
	MinTurbidity = 1.7
	MaxTurbidity = 32
)

// Perez coefficient indices.
const (
	A = iota
	B
	C
	D
	E
	NumCoeffs
)

// Channel indices, in xyY order.
const (
	ChannelX = iota
	ChannelY
	ChannelLuminance
	NumChannels
)

const (
	// minCosTheta keeps e^(B/cosθ) finite at and below the horizon.
	minCosTheta = 1e-3
	// minDenominator keeps the normalisation finite for extreme horizon crush settings.
	minDenominator = 1e-3
)

// Coeffs holds the five Perez coefficients of one channel.
type Coeffs [NumCoeffs]float32

// Theta returns the view-zenith dependent term A·e^(B/cosθ).
func (c Coeffs) Theta(cosTheta float32) float32 {
	return c[A] * math32.Exp(c[B]/max(cosTheta, minCosTheta))
}

// Gamma returns the sun-angle dependent term C·e^(Dγ) + E·cos²γ.
func (c Coeffs) Gamma(gamma, cosGamma float32) float32 {
	return c[C]*math32.Exp(c[D]*gamma) + c[E]*cosGamma*cosGamma
}

// Eval returns the unnormalised Perez function (1 + Theta)(1 + Gamma).
func (c Coeffs) Eval(cosTheta, gamma, cosGamma float32) float32 {
	return (1 + c.Theta(cosTheta)) * (1 + c.Gamma(gamma, cosGamma))
}

// Model is the Preetham sky for one sun position and atmosphere. The zero Model is black until
// Update is called. Queries are safe for concurrent use between calls to Update.
type Model struct {
	// Primaries selects the RGB space returned by SkyRGB.
	Primaries colorspace.Primaries

	sunDir    math.Vec3
	thetaS    float32
	turbidity float32

	perez  [NumChannels]Coeffs
	zenith math.Vec3 // xyY
	norm   math.Vec3 // zenith / Perez(θs, 0)
}

// Update recomputes every coefficient for the given sun direction (unit length, Z up),
// turbidity, overcast factor in [0, 1] and horizon crush (0 disables it).
func (m *Model) Update(sunDir math.Vec3, turbidity, overcast, horizCrush float32) {
	t := math.Clamp(turbidity, MinTurbidity, MaxTurbidity)

	m.sunDir = sunDir
	m.turbidity = t
	m.thetaS = math32.Acos(math.Clamp(sunDir.Z, -1, 1))

	m.perez = perezCoeffs(t)
	m.zenith = zenithxyY(m.thetaS, t)

	if sunDir.Z < 0 {
		s := blend.SunFade(sunDir.Z)
		for ch := range m.perez {
			blend.Scale(m.perez[ch][:], s, C, E)
		}
	}

	if o := math.Saturate(overcast); o > 0 {
		blend.TowardZero(m.perez[ChannelX][:], o, A, C, E)
		blend.TowardZero(m.perez[ChannelY][:], o, A, C, E)
		blend.TowardZero(m.perez[ChannelLuminance][:], o, C, E)
		blend.TowardCloudy(m.perez[ChannelLuminance][:], A, B, o)

		m.zenith.X = m.zenith.X*(1-o) + cie.OvercastChroma.X*o
		m.zenith.Y = m.zenith.Y*(1-o) + cie.OvercastChroma.Y*o
	}

	if horizCrush > 0 {
		for ch := range m.perez {
			m.perez[ch][B] *= horizCrush
		}
	}

	cosThetaS := math32.Cos(m.thetaS)
	zenith := [NumChannels]float32{m.zenith.X, m.zenith.Y, m.zenith.Z}
	var norm [NumChannels]float32
	for ch, c := range m.perez {
		den := c.Eval(1, m.thetaS, cosThetaS)
		norm[ch] = zenith[ch] / max(den, minDenominator)
	}
	m.norm = math.Vec3{X: norm[0], Y: norm[1], Z: norm[2]}
}

// perezCoeffs returns the clear sky Perez coefficients as linear functions of turbidity.
func perezCoeffs(t float32) [NumChannels]Coeffs {
	return [NumChannels]Coeffs{
		ChannelX: {
			-0.01925*t - 0.25922,
			-0.06651*t + 0.00081,
			-0.00041*t + 0.21247,
			-0.06409*t - 0.89887,
			-0.00325*t + 0.04517,
		},
		ChannelY: {
			-0.01669*t - 0.26078,
			-0.09495*t + 0.00921,
			-0.00792*t + 0.21023,
			-0.04405*t - 1.65369,
			-0.01092*t + 0.05291,
		},
		ChannelLuminance: {
			0.17872*t - 1.46303,
			-0.35540*t + 0.42749,
			-0.02266*t + 5.32505,
			0.12064*t - 2.57705,
			-0.06696*t + 0.37027,
		},
	}
}

// zenithxyY returns the fitted zenith chromaticity and luminance (cd/m²).
func zenithxyY(thetaS, t float32) math.Vec3 {
	th := thetaS
	th2 := th * th
	th3 := th2 * th
	t2 := t * t

	x := (0.00165*th3-0.00374*th2+0.00208*th)*t2 +
		(-0.02902*th3+0.06377*th2-0.03202*th+0.00394)*t +
		(0.11693*th3 - 0.21196*th2 + 0.06052*th + 0.25885)

	y := (0.00275*th3-0.00610*th2+0.00316*th)*t2 +
		(-0.04214*th3+0.08970*th2-0.04153*th+0.00515)*t +
		(0.15346*th3 - 0.26756*th2 + 0.06669*th + 0.26688)

	return math.Vec3{X: x, Y: y, Z: cie.ZenithLuminance(thetaS, t)}
}

// SkyxyY returns the sky colour in direction v as xyY. Directions below the horizon are
// evaluated at a grazing angle.
func (m *Model) SkyxyY(v math.Vec3) math.Vec3 {
	cosTheta, gamma, cosGamma := m.angles(v)
	return math.Vec3{
		X: m.perez[ChannelX].Eval(cosTheta, gamma, cosGamma) * m.norm.X,
		Y: m.perez[ChannelY].Eval(cosTheta, gamma, cosGamma) * m.norm.Y,
		Z: m.perez[ChannelLuminance].Eval(cosTheta, gamma, cosGamma) * m.norm.Z,
	}
}

// SkyXYZ returns the sky colour in direction v as CIE XYZ.
func (m *Model) SkyXYZ(v math.Vec3) math.Vec3 {
	return colorspace.XyYToXYZ(m.SkyxyY(v))
}

// SkyRGB returns the linear RGB sky radiance in direction v.
func (m *Model) SkyRGB(v math.Vec3) math.Vec3 {
	return m.Primaries.XyYToRGB(m.SkyxyY(v))
}

// SkyLuminance returns the sky luminance in direction v, in cd/m².
func (m *Model) SkyLuminance(v math.Vec3) float32 {
	cosTheta, gamma, cosGamma := m.angles(v)
	return m.perez[ChannelLuminance].Eval(cosTheta, gamma, cosGamma) * m.norm.Z
}

// SkyChroma returns the xy chromaticity of the sky in direction v.
func (m *Model) SkyChroma(v math.Vec3) math.Vec2 {
	cosTheta, gamma, cosGamma := m.angles(v)
	return math.Vec2{
		X: m.perez[ChannelX].Eval(cosTheta, gamma, cosGamma) * m.norm.X,
		Y: m.perez[ChannelY].Eval(cosTheta, gamma, cosGamma) * m.norm.Y,
	}
}

func (m *Model) angles(v math.Vec3) (cosTheta, gamma, cosGamma float32) {
	cosTheta = max(v.Z, minCosTheta)
	cosGamma = math.Clamp(m.sunDir.Dot(v), -1, 1)
	gamma = math32.Acos(cosGamma)
	return cosTheta, gamma, cosGamma
}

// Coeffs returns the Perez coefficients of channel ch (ChannelX, ChannelY or ChannelLuminance).
func (m *Model) Coeffs(ch int) Coeffs { return m.perez[ch] }

// Zenith returns the zenith colour as xyY.
func (m *Model) Zenith() math.Vec3 { return m.zenith }

// Normalization returns the per-channel factor applied to the Perez numerator, in xyY order.
func (m *Model) Normalization() math.Vec3 { return m.norm }

// SunDir returns the sun direction of the last Update.
func (m *Model) SunDir() math.Vec3 { return m.sunDir }

// ThetaS returns the sun zenith angle in radians.
func (m *Model) ThetaS() float32 { return m.thetaS }

// Turbidity returns the clamped turbidity of the last Update.
func (m *Model) Turbidity() float32 { return m.turbidity }
