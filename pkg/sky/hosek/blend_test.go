package hosek

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuinticPartitionOfUnity(t *testing.T) {
	for i := 0; i <= 20; i++ {
		x := float32(i) / 20
		var sum float32
		for _, w := range quintic(x) {
			if w < 0 {
				t.Errorf("quintic(%v) has negative weight %v", x, w)
			}
			sum += w
		}
		if math32.Abs(sum-1) > 1e-5 {
			t.Errorf("quintic(%v) weights sum to %v, want 1", x, sum)
		}
	}

	if w := quintic(0); w[0] != 1 {
		t.Errorf("quintic(0)[0] = %v, want 1", w[0])
	}
	if w := quintic(1); w[NumControl-1] != 1 {
		t.Errorf("quintic(1)[5] = %v, want 1", w[NumControl-1])
	}
}

func TestBinWeights(t *testing.T) {
	tests := []struct {
		turbidity, albedo float32
		wantN             int
		wantLow           int
	}{
		{1, 0, 4, 0},
		{3.25, 0.5, 4, 2},
		{9.9, 1, 4, 8},
		{10, 0.3, 2, 9},
	}
	for _, tt := range tests {
		bins, weights, n := binWeights(tt.turbidity, tt.albedo)
		if n != tt.wantN {
			t.Errorf("binWeights(%v, %v) n = %d, want %d", tt.turbidity, tt.albedo, n, tt.wantN)
			continue
		}
		if bins[0][1] != tt.wantLow {
			t.Errorf("binWeights(%v, %v) low bin = %d, want %d", tt.turbidity, tt.albedo, bins[0][1], tt.wantLow)
		}
		var sum float32
		for k := 0; k < n; k++ {
			sum += weights[k]
		}
		if math32.Abs(sum-1) > 1e-5 {
			t.Errorf("binWeights(%v, %v) weights sum to %v, want 1", tt.turbidity, tt.albedo, sum)
		}
	}
}
