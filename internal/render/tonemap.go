package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky"
)

// ToneMap compresses weighted radiance into displayable [0, 1] values.
type ToneMap int

const (
	Linear      ToneMap = iota // c·w, clipped
	Exponential                // 1 - exp(-w·c)
	Reinhard                   // c·w / (1 + c·w)
)

var toneMapNames = [...]struct{ name, short string }{
	{"linear", "l"},
	{"exponential", "ex"},
	{"reinhard", "rh"},
}

func (t ToneMap) String() string {
	if t < 0 || int(t) >= len(toneMapNames) {
		return fmt.Sprintf("ToneMap(%d)", int(t))
	}
	return toneMapNames[t].name
}

// ParseToneMap accepts a tone map name or its short form, ignoring case.
func ParseToneMap(s string) (ToneMap, error) {
	for i, n := range toneMapNames {
		if strings.EqualFold(s, n.name) || strings.EqualFold(s, n.short) {
			return ToneMap(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown tone map %q", s)
}

// Apply maps radiance c with luminance weight w.
func (t ToneMap) Apply(c math.Vec3, w float32) math.Vec3 {
	switch t {
	case Exponential:
		return math.Vec3{
			X: 1 - math32.Exp(-w*c.X),
			Y: 1 - math32.Exp(-w*c.Y),
			Z: 1 - math32.Exp(-w*c.Z),
		}
	case Reinhard:
		c = c.Scale(w)
		return c.Div(math.Splat(1).Add(c))
	default:
		return c.Scale(w)
	}
}

// Exposure constants for auto scaling.
const (
	autoLumTarget = 0.4
	minAutoLum    = 2000 // below this the sky is allowed to go dark
)

// DefaultWeight returns the luminance weight used when none is configured. Hosek-Wilkie skies
// are dimmer at the same turbidity, so they get a little more.
func DefaultWeight(t sky.SkyType) float32 {
	if t.IsHosek() {
		return 8e-5
	}
	return 5e-5
}

// AutoWeight returns the weight that maps the given average luminance to a mid grey. It stops
// scaling once the sky is darker than twilight, so a setting sun fades out rather than snapping.
func AutoWeight(avgLum float32) float32 {
	return autoLumTarget / max(avgLum, minAutoLum)
}

// SRGBGamma selects the piecewise sRGB transfer curve instead of a power law.
const SRGBGamma = -1

// Settings turns HDR images into display values.
type Settings struct {
	ToneMap ToneMap
	Weight  float32
	Gamma   float32 // > 0 power law, < 0 sRGB curve, 0 linear
}

// Color returns the display colour of radiance c, clamped to the unit cube.
func (s Settings) Color(c math.Vec3) colorful.Color {
	c = s.ToneMap.Apply(c, s.Weight)
	switch {
	case s.Gamma < 0:
		return colorful.LinearRgb(float64(c.X), float64(c.Y), float64(c.Z)).Clamped()
	case s.Gamma > 0:
		inv := 1 / s.Gamma
		c = math.Vec3{
			X: math32.Pow(max(c.X, 0), inv),
			Y: math32.Pow(max(c.Y, 0), inv),
			Z: math32.Pow(max(c.Z, 0), inv),
		}
	}
	return colorful.Color{R: float64(c.X), G: float64(c.Y), B: float64(c.Z)}.Clamped()
}

// LDR converts img to 8-bit display colours. Uncovered pixels are opaque black.
func (s Settings) LDR(img *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+3] = 0xFF
			if !img.Covered(x, y) {
				continue
			}
			r, g, b := s.Color(img.At(x, y)).RGB255()
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, b
		}
	}
	return out
}

// LDR16 converts img to 16-bit display colours.
func (s Settings) LDR16(img *Image) *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if !img.Covered(x, y) {
				out.Set(x, y, colorful.Color{})
				continue
			}
			out.Set(x, y, s.Color(img.At(x, y)))
		}
	}
	return out
}

// Weighted returns a copy of img scaled by the luminance weight, without tone mapping. This is
// what HDR files store.
func (s Settings) Weighted(img *Image) *Image {
	out := &Image{Width: img.Width, Height: img.Height, Pix: make([]math.Vec3, len(img.Pix)), Mask: img.Mask}
	for i, c := range img.Pix {
		out.Pix[i] = c.Scale(s.Weight)
	}
	return out
}
