package render

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

// Stats summarises the covered pixels of an image per channel.
type Stats struct {
	Avg, Max, Dev math.Vec3
	Samples       int
}

// ComputeStats returns the mean, maximum and standard deviation of the covered pixels.
func ComputeStats(img *Image) Stats {
	var s Stats
	var sum, sq math.Vec3

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if !img.Covered(x, y) {
				continue
			}
			c := img.At(x, y)
			s.Max = s.Max.Max(c)
			sum = sum.Add(c)
			sq = sq.Add(c.Mul(c))
			s.Samples++
		}
	}
	if s.Samples == 0 {
		return s
	}

	n := float32(s.Samples)
	s.Avg = sum.Scale(1 / n)
	v := sq.Scale(1 / n).Sub(s.Avg.Mul(s.Avg)).ClampNonNegative()
	s.Dev = math.Vec3{X: math32.Sqrt(v.X), Y: math32.Sqrt(v.Y), Z: math32.Sqrt(v.Z)}
	return s
}
