// Package hosektest provides a synthetic Hosek-Wilkie dataset for tests.
//
// The values are not a physical fit. They are shaped like one: a sky that brightens toward the
// horizon and around the sun, gets brighter with elevation and turbidity, and is bluer at Z.
package hosektest

import "github.com/Faultbox/sunsky/pkg/sky/hosek"

var base = [hosek.NumChannels]hosek.Coeffs{
	hosek.ChannelX: {hosek.A: -0.8, hosek.B: -0.30, hosek.I: 1.0, hosek.C: 3.0, hosek.D: -2.5, hosek.E: 0.6, hosek.F: 0.20, hosek.H: 0.5, hosek.G: 0.5},
	hosek.ChannelY: {hosek.A: -0.8, hosek.B: -0.28, hosek.I: 1.0, hosek.C: 3.2, hosek.D: -2.6, hosek.E: 0.6, hosek.F: 0.20, hosek.H: 0.5, hosek.G: 0.5},
	hosek.ChannelZ: {hosek.A: -0.9, hosek.B: -0.25, hosek.I: 1.0, hosek.C: 2.6, hosek.D: -2.8, hosek.E: 0.5, hosek.F: 0.15, hosek.H: 0.4, hosek.G: 0.5},
}

var baseRadiance = [hosek.NumChannels]float32{2.2, 2.4, 2.9}

// Dataset returns a new synthetic dataset.
func Dataset() *hosek.Dataset {
	d := &hosek.Dataset{}
	for ch := 0; ch < hosek.NumChannels; ch++ {
		for a := 0; a < hosek.NumAlbedos; a++ {
			for t := 0; t < hosek.NumTurbidities; t++ {
				for q := 0; q < hosek.NumControl; q++ {
					c := base[ch]
					c[hosek.A] *= 1 - 0.02*float32(t)
					c[hosek.C] *= (1 + 0.05*float32(t)) * (1 + 0.05*float32(q))
					c[hosek.H] += 0.02 * float32(q)
					c[hosek.I] += 0.1 * float32(a)
					d.Coeffs[ch][a][t][q] = c

					d.Radiance[ch][a][t][q] = baseRadiance[ch] *
						(0.8 + 0.1*float32(q)) * (1 + 0.05*float32(t)) * (1 + 0.2*float32(a))
				}
			}
		}
	}
	return d
}

// Uniform returns a dataset in which every bin holds the same coefficients and radiance, so
// that the cooked model reproduces them for any sun elevation, turbidity and albedo.
func Uniform(c hosek.Coeffs, radiance float32) *hosek.Dataset {
	d := &hosek.Dataset{}
	for ch := range d.Coeffs {
		for a := range d.Coeffs[ch] {
			for t := range d.Coeffs[ch][a] {
				for q := range d.Coeffs[ch][a][t] {
					d.Coeffs[ch][a][t][q] = c
					d.Radiance[ch][a][t][q] = radiance
				}
			}
		}
	}
	return d
}
