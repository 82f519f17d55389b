// Package blend holds the coefficient adjustments shared by the analytic sky models: fading the
// sun terms out as the sun sets, and moving the sky gradient toward the CIE overcast fit.
package blend

import "github.com/Faultbox/sunsky/pkg/math"

// Gradation terms of the CIE overcast sky expressed as Perez A and B coefficients.
const (
	CloudyA = 4.0
	CloudyB = -0.7
)

// SunFade returns the weight of the sun terms for a sun direction with the given Z: 1 at or above
// the horizon, falling linearly to 0 once the sun is 0.02 below it.
func SunFade(sunZ float32) float32 {
	return math.Saturate(1 + 50*sunZ)
}

// Scale multiplies the coefficients at the given indices by s.
func Scale(c []float32, s float32, indices ...int) {
	for _, i := range indices {
		c[i] *= s
	}
}

// Toward moves c[i] toward target by t. t = 0 leaves c[i] unchanged, t = 1 sets it to target.
func Toward(c []float32, i int, target, t float32) {
	c[i] = c[i]*(1-t) + target*t
}

// TowardZero moves the coefficients at the given indices toward zero by t.
func TowardZero(c []float32, t float32, indices ...int) {
	Scale(c, 1-t, indices...)
}

// TowardCloudy moves the gradation pair at indices a and b toward (CloudyA, CloudyB) by t.
func TowardCloudy(c []float32, a, b int, t float32) {
	Toward(c, a, CloudyA, t)
	Toward(c, b, CloudyB, t)
}
