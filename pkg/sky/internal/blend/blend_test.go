package blend

import "testing"

func TestSunFade(t *testing.T) {
	tests := []struct {
		z    float32
		want float32
	}{
		{1, 1},
		{0, 1},
		{-0.01, 0.5},
		{-0.02, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := SunFade(tt.z); got < tt.want-1e-5 || got > tt.want+1e-5 {
			t.Errorf("SunFade(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestTowardEndpoints(t *testing.T) {
	c := []float32{-1.2, 0.3, 5.1}

	got := append([]float32(nil), c...)
	TowardCloudy(got, 0, 1, 0)
	TowardZero(got, 0, 2)
	for i := range c {
		if got[i] != c[i] {
			t.Errorf("t=0: c[%d] = %v, want %v", i, got[i], c[i])
		}
	}

	TowardCloudy(got, 0, 1, 1)
	TowardZero(got, 1, 2)
	want := []float32{CloudyA, CloudyB, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("t=1: c[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScale(t *testing.T) {
	c := []float32{1, 2, 3, 4}
	Scale(c, 0.5, 1, 3)
	want := []float32{1, 1, 3, 2}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("c[%d] = %v, want %v", i, c[i], want[i])
		}
	}
}
