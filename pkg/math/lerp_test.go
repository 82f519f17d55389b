package math

import "testing"

func TestLerp(t *testing.T) {
	a := Vec3{0, 10, 20}
	b := Vec3{10, 20, 40}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got, want := Lerp(a, b, 0.5), (Vec3{5, 15, 30}); got != want {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestBilerpCorners(t *testing.T) {
	a00, a01 := Vec3{1, 0, 0}, Vec3{2, 0, 0}
	a10, a11 := Vec3{3, 0, 0}, Vec3{4, 0, 0}

	tests := []struct {
		s, t float32
		want float32
	}{
		{0, 0, 1},
		{1, 0, 2},
		{0, 1, 3},
		{1, 1, 4},
		{0.5, 0.5, 2.5},
	}
	for _, tt := range tests {
		got := Bilerp(a00, a01, a10, a11, tt.s, tt.t)
		if got.X != tt.want {
			t.Errorf("Bilerp(%v, %v) = %v, want %v", tt.s, tt.t, got.X, tt.want)
		}
	}
}

func TestTableIndexClamps(t *testing.T) {
	tests := []struct {
		s     float32
		i     int
		frac  float32
		label string
	}{
		{-1, 0, 0, "below range"},
		{0, 0, 0, "start"},
		{0.5, 1, 0, "middle"},
		{1, 1, 1, "end"},
		{2, 1, 1, "above range"},
	}
	for _, tt := range tests {
		i, f := TableIndex(tt.s, 3)
		if i != tt.i || f != tt.frac {
			t.Errorf("%s: TableIndex(%v, 3) = (%d, %v), want (%d, %v)", tt.label, tt.s, i, f, tt.i, tt.frac)
		}
	}
}

func TestTableLerp(t *testing.T) {
	table := []Vec3{{0, 0, 0}, {1, 2, 3}, {2, 4, 6}}
	if got, want := TableLerp(0.25, table), (Vec3{0.5, 1, 1.5}); got != want {
		t.Errorf("TableLerp(0.25) = %v, want %v", got, want)
	}
	if got := TableLerp(5, table); got != table[2] {
		t.Errorf("TableLerp(5) = %v, want last entry %v", got, table[2])
	}
	if got := TableLerp(-5, table); got != table[0] {
		t.Errorf("TableLerp(-5) = %v, want first entry %v", got, table[0])
	}
}

func TestSaturate(t *testing.T) {
	if Saturate(-0.5) != 0 || Saturate(1.5) != 1 || Saturate(0.25) != 0.25 {
		t.Error("Saturate does not clamp to [0, 1]")
	}
}
