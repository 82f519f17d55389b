package cie

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

var (
	zenith = math.Vec3{Z: 1}
	nadir  = math.Vec3{Z: -1}
)

func sunAt(elevationDeg float32) math.Vec3 {
	e := elevationDeg * math32.Pi / 180
	return math.Vec3{Y: math32.Cos(e), Z: math32.Sin(e)}
}

func TestOvercastZenithIsZenithLuminance(t *testing.T) {
	for _, lz := range []float32{1, 1234.5, 8000} {
		if got := OvercastLuminance(zenith, lz); got != lz {
			t.Errorf("OvercastLuminance(zenith, %v) = %v, want %v", lz, got, lz)
		}
		if got, want := OvercastLuminance(math.Vec3{X: 1}, lz), lz/3; math32.Abs(got-want) > 1e-4*lz {
			t.Errorf("OvercastLuminance(horizon, %v) = %v, want %v", lz, got, want)
		}
	}
}

func TestLegacySkiesAtZenith(t *testing.T) {
	const lz = 5000
	for _, elevation := range []float32{5, 30, 60, 89} {
		sun := sunAt(elevation)
		if got := ClearLuminance(zenith, sun, lz); math32.Abs(got-lz) > 1e-3*lz {
			t.Errorf("ClearLuminance(zenith) at %v° = %v, want %v", elevation, got, lz)
		}
		if got := PartlyCloudyLuminance(zenith, sun, lz); math32.Abs(got-lz) > 1e-3*lz {
			t.Errorf("PartlyCloudyLuminance(zenith) at %v° = %v, want %v", elevation, got, lz)
		}
	}
}

func TestClearSkyBrightestTowardSun(t *testing.T) {
	sun := sunAt(30)
	away := math.Vec3{Y: -sun.Y, Z: sun.Z}
	if near, far := ClearLuminance(sun, sun, 1000), ClearLuminance(away, sun, 1000); near <= far {
		t.Errorf("circumsolar %v not brighter than antisolar %v", near, far)
	}
}

func TestStandardSkiesAtZenith(t *testing.T) {
	for kind := 1; kind <= NumStandardSkies; kind++ {
		for _, elevation := range []float32{10, 45, 80} {
			r := Standard(kind).Ratio(zenith, sunAt(elevation))
			if math32.Abs(r-1) > 1e-4 {
				t.Errorf("type %d at %v°: zenith ratio = %v, want 1", kind, elevation, r)
			}
		}
	}
}

func TestStandardUniformSky(t *testing.T) {
	sun := sunAt(40)
	for _, v := range []math.Vec3{zenith, {X: 1}, sun, {X: 0.6, Z: 0.8}} {
		if got := StandardLuminance(5, v, sun, 100); math32.Abs(got-100) > 1e-3 {
			t.Errorf("uniform sky luminance at %v = %v, want 100", v, got)
		}
	}
}

func TestStandardClampsKind(t *testing.T) {
	if Standard(0) != StandardSkies[0] {
		t.Error("Standard(0) should clamp to type 1")
	}
	if Standard(99) != StandardSkies[NumStandardSkies-1] {
		t.Error("Standard(99) should clamp to type 15")
	}
}

func TestZenithLuminance(t *testing.T) {
	high := ZenithLuminance(0.2, 2.5)
	low := ZenithLuminance(1.4, 2.5)
	if !(high > low && low > 0) {
		t.Errorf("ZenithLuminance not decreasing toward the horizon: high %v, low %v", high, low)
	}
	for _, thetaS := range []float32{0, math32.Pi / 2, math32.Pi, -math32.Pi} {
		for _, turbidity := range []float32{1, 2.5, 10, 32} {
			l := ZenithLuminance(thetaS, turbidity)
			if math32.IsNaN(l) || math32.IsInf(l, 0) || l < 0 {
				t.Errorf("ZenithLuminance(%v, %v) = %v, want finite and >= 0", thetaS, turbidity, l)
			}
		}
	}
}

func TestTotality(t *testing.T) {
	views := []math.Vec3{zenith, nadir, {X: 1}, {Y: -1}, {X: 0.6, Y: 0, Z: -0.8}}
	suns := []math.Vec3{zenith, nadir, sunAt(0), sunAt(-10), sunAt(45)}
	for _, v := range views {
		for _, sun := range suns {
			values := []float32{
				OvercastLuminance(v, 1000),
				ClearLuminance(v, sun, 1000),
				PartlyCloudyLuminance(v, sun, 1000),
			}
			for kind := 1; kind <= NumStandardSkies; kind++ {
				values = append(values, StandardLuminance(kind, v, sun, 1000))
			}
			for i, l := range values {
				if math32.IsNaN(l) || math32.IsInf(l, 0) {
					t.Errorf("view %v sun %v: value %d = %v", v, sun, i, l)
				}
			}
		}
	}
}
