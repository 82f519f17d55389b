package math

import "github.com/chewxy/math32"

// Vector is any value type with elementwise addition and scalar scaling.
type Vector[T any] interface {
	Add(T) T
	Scale(float32) T
}

// Lerp performs linear interpolation between a and b.
func Lerp[T Vector[T]](a, b T, s float32) T {
	return a.Scale(1 - s).Add(b.Scale(s))
}

// Bilerp interpolates between four corner values. s runs from a00 to a01, t from a00 to a10.
func Bilerp[T Vector[T]](a00, a01, a10, a11 T, s, t float32) T {
	return Lerp(Lerp(a00, a01, s), Lerp(a10, a11, s), t)
}

// TableIndex maps s in [0, 1] onto a table of n entries, returning the lower index and the
// fractional weight of the next entry. s outside [0, 1] is clamped to the table edges.
func TableIndex(s float32, n int) (int, float32) {
	if n < 2 || !(s > 0) {
		return 0, 0
	}
	x := s * float32(n-1)
	if x >= float32(n-1) {
		return n - 2, 1
	}
	i := int(math32.Floor(x))
	return i, x - float32(i)
}

// TableLerp linearly interpolates a table sampled uniformly over [0, 1].
func TableLerp[T Vector[T]](s float32, table []T) T {
	if len(table) == 1 {
		return table[0]
	}
	i, f := TableIndex(s, len(table))
	return Lerp(table[i], table[i+1], f)
}

// Clamp limits s to [lo, hi].
func Clamp(s, lo, hi float32) float32 {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}

// Saturate clamps s to [0, 1].
func Saturate(s float32) float32 {
	return Clamp(s, 0, 1)
}
