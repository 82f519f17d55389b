package colorspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/sunsky/pkg/math"
)

var approx = cmpopts.EquateApprox(0, 1e-3)

func TestXyYToXYZ(t *testing.T) {
	got := XyYToXYZ(math.Vec3{X: 0.25, Y: 0.5, Z: 10})
	want := math.Vec3{X: 5, Y: 10, Z: 5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("XyYToXYZ() mismatch (-want +got):\n%s", diff)
	}
}

func TestXyYToXYZDegenerate(t *testing.T) {
	for _, y := range []float32{0, -0.5, 1e-9} {
		if got := XyYToXYZ(math.Vec3{X: 0.3, Y: y, Z: 100}); got != (math.Vec3{}) {
			t.Errorf("XyYToXYZ(y=%v) = %v, want zero", y, got)
		}
	}
}

func TestChromaRoundTrip(t *testing.T) {
	xyY := math.Vec3{X: 0.31, Y: 0.33, Z: 1234}
	xyz := XyYToXYZ(xyY)
	c := Chroma(xyz)
	got := math.Vec3{X: c.X, Y: c.Y, Z: xyz.Y}
	if diff := cmp.Diff(xyY, got, cmpopts.EquateApprox(1e-4, 1e-4)); diff != "" {
		t.Errorf("xyY round trip mismatch (-want +got):\n%s", diff)
	}
	if c := Chroma(math.Vec3{}); c != (math.Vec2{}) {
		t.Errorf("Chroma(black) = %v, want zero", c)
	}
}

func TestSRGBWhitePoint(t *testing.T) {
	// D65 white in XYZ maps to equal-energy RGB.
	white := RGBToXYZ(math.Vec3{X: 1, Y: 1, Z: 1})
	got := SRGB.XYZToRGB(white)
	if diff := cmp.Diff(math.Vec3{X: 1, Y: 1, Z: 1}, got, approx); diff != "" {
		t.Errorf("sRGB white round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrimaries(t *testing.T) {
	tests := []struct {
		name    string
		want    Primaries
		wantErr bool
	}{
		{"", SRGB, false},
		{"sRGB", SRGB, false},
		{"monitor", Monitor, false},
		{"legacy", Monitor, false},
		{"adobe", SRGB, true},
	}
	for _, tt := range tests {
		got, err := ParsePrimaries(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrimaries(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrimaries(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPrimariesString(t *testing.T) {
	if SRGB.String() != "srgb" || Monitor.String() != "monitor" {
		t.Errorf("unexpected names %q %q", SRGB, Monitor)
	}
}
