package zh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/sunsky/pkg/math"
)

const tableSize = 64

func constantTable(c math.Vec3) []math.Vec3 {
	t := make([]math.Vec3, tableSize)
	for i := range t {
		t[i] = c
	}
	return t
}

func TestBasisOrthonormalDC(t *testing.T) {
	// A unit DC coefficient scaled by 1/Y_0 reconstructs 1 everywhere.
	var zc Coeffs
	zc[0] = math.Splat(1 / norm[0])
	for _, z := range []float32{-1, -0.3, 0, 0.5, 1} {
		got := zc.Eval(z)
		if diff := cmp.Diff(math.Splat(1), got, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
			t.Errorf("Eval(%v) mismatch (-want +got):\n%s", z, diff)
		}
	}
}

func TestProjectThetaConstant(t *testing.T) {
	zc := ProjectTheta(constantTable(math.Splat(1)))

	// ∫ Y_0 dω = 4π·Y_0
	want := 4 * math32.Pi * norm[0]
	if math32.Abs(zc[0].X-want) > 1e-4 {
		t.Errorf("DC = %v, want %v", zc[0].X, want)
	}
	// The sample grid is symmetric in z, so odd degrees vanish.
	for _, l := range []int{1, 3, 5} {
		if math32.Abs(zc[l].X) > 1e-4 {
			t.Errorf("degree %d coefficient = %v, want 0", l, zc[l].X)
		}
	}
}

func TestProjectGammaConstant(t *testing.T) {
	zc := ProjectGamma(constantTable(math.Splat(2)))
	want := 2 * 4 * math32.Pi * norm[0]
	if math32.Abs(zc[0].Y-want) > 1e-3 {
		t.Errorf("DC = %v, want %v", zc[0].Y, want)
	}
}

func TestProjectResampleTheta(t *testing.T) {
	// z itself is band limited, so it survives projection and resampling away from the poles,
	// where the end samples of the quadrature carry extra weight.
	table := make([]math.Vec3, tableSize)
	for i := range table {
		table[i] = math.Splat(thetaZ(i, tableSize))
	}
	zc := ProjectTheta(table)

	out := make([]math.Vec3, tableSize)
	zc.ResampleTheta(out)
	for i := range out {
		if mirror := out[tableSize-1-i].X; math32.Abs(out[i].X+mirror) > 1e-4 {
			t.Errorf("entry %d = %v, not odd: mirror %v", i, out[i].X, mirror)
		}
		z := table[i].X
		if math32.Abs(z) <= 0.5 && math32.Abs(out[i].X-z) > 0.05 {
			t.Errorf("entry %d = %v, want %v", i, out[i].X, z)
		}
	}
}

func TestCosPowerFactorsClampedCosine(t *testing.T) {
	got := CosPowerFactors(1)
	want := [NumCoeffs]float32{1, 2.0 / 3, 1.0 / 4, 0, -1.0 / 24, 0, 1.0 / 64}
	for l := range want {
		if math32.Abs(got[l]-want[l]) > 1e-5 {
			t.Errorf("degree %d factor = %v, want %v", l, got[l], want[l])
		}
	}
}

func TestCosPowerFactorsSharpen(t *testing.T) {
	wide := CosPowerFactors(16)
	narrow := CosPowerFactors(128)
	for l := 1; l < NumCoeffs; l++ {
		if !(narrow[l] > wide[l] && narrow[l] <= 1) {
			t.Errorf("degree %d: n=128 factor %v should lie between n=16 factor %v and 1", l, narrow[l], wide[l])
		}
	}
}

func TestConvolvePreservesDC(t *testing.T) {
	var zc Coeffs
	for l := range zc {
		zc[l] = math.Vec3{X: float32(l + 1), Y: 1, Z: -2}
	}
	for _, n := range []float32{1, 16, 128} {
		out := zc.ConvolveCosPower(n)
		if out[0] != zc[0] {
			t.Errorf("n=%v: DC = %v, want %v", n, out[0], zc[0])
		}
	}
}

func TestWindow(t *testing.T) {
	if WindowScale(0, 0.5) != 1 {
		t.Errorf("WindowScale(0) = %v, want 1", WindowScale(0, 0.5))
	}
	prev := float32(1)
	for l := 1; l < NumCoeffs; l++ {
		s := WindowScale(l, 0.01)
		if !(s < prev && s > 0) {
			t.Errorf("WindowScale(%d) = %v, want in (0, %v)", l, s, prev)
		}
		prev = s
	}

	var zc Coeffs
	for l := range zc {
		zc[l] = math.Splat(1)
	}
	if w := zc.Window(0); w != zc {
		t.Errorf("Window(0) changed coefficients: %v", w)
	}
}

func TestBiasRoundTrip(t *testing.T) {
	for _, c := range []math.Vec3{
		{X: 0.1, Y: -0.2, Z: 0.3},
		{X: -1.5, Y: 0.7, Z: -2},
		{X: 0, Y: 0, Z: 0.9},
	} {
		got := Unbias(Bias(c))
		if diff := cmp.Diff(c, got, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
			t.Errorf("Unbias(Bias(%v)) mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestUnbiasFloorsWeight(t *testing.T) {
	got := Unbias(math.Vec3{X: 1, Y: 1, Z: -5})
	if !got.IsFinite() || math32.Abs(got.X-1/minBiasWeight) > 1e-3 {
		t.Errorf("Unbias with negative weight = %v, want floor applied", got)
	}
}
