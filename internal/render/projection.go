// Package render samples sky models into images: projections of the sky sphere, tone mapping
// and the image file writers used by the sunsky tool.
package render

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
)

// Source is anything that returns linear RGB sky radiance for a unit direction in the sky frame.
type Source interface {
	SkyRGB(v math.Vec3) math.Vec3
}

// Image is a linear HDR RGB image with row 0 at the top.
type Image struct {
	Width, Height int
	Pix           []math.Vec3
	// Mask marks the pixels that were sampled. Nil means every pixel was.
	Mask []bool
}

// NewImage allocates a black image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]math.Vec3, width*height),
	}
}

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) math.Vec3 {
	return img.Pix[y*img.Width+x]
}

// Set stores the pixel at column x, row y.
func (img *Image) Set(x, y int, c math.Vec3) {
	img.Pix[y*img.Width+x] = c
}

// Covered reports whether the pixel at x, y was sampled.
func (img *Image) Covered(x, y int) bool {
	return img.Mask == nil || img.Mask[y*img.Width+x]
}

// Projection selects how the sky sphere is laid out in an image.
type Projection int

const (
	Hemisphere Projection = iota // orthographic projection of one hemisphere
	Fisheye                      // equidistant projection of the upper hemisphere
	Cube                         // six cube map faces
	Panorama                     // equirectangular, twice as wide as high
)

var projectionNames = [...]string{"hemisphere", "fisheye", "cube", "panorama"}

func (p Projection) String() string {
	if p < 0 || int(p) >= len(projectionNames) {
		return fmt.Sprintf("Projection(%d)", int(p))
	}
	return projectionNames[p]
}

// ParseProjection converts a projection name, ignoring case.
func ParseProjection(s string) (Projection, error) {
	for i, name := range projectionNames {
		if strings.EqualFold(s, name) {
			return Projection(i), nil
		}
	}
	return Hemisphere, fmt.Errorf("unknown projection %q", s)
}

// Render samples src with projection p. Cube maps produce six faces, everything else one image.
// size is the image height; panoramas are twice as wide.
func Render(src Source, p Projection, size int, invert bool) []*Image {
	switch p {
	case Fisheye:
		return []*Image{FisheyeImage(src, size)}
	case Cube:
		faces := CubeImages(src, size)
		return faces[:]
	case Panorama:
		return []*Image{PanoramaImage(src, size)}
	default:
		return []*Image{HemisphereImage(src, size, invert)}
	}
}

// HemisphereImage projects the upper hemisphere, or the lower one when invert is set, straight
// down onto a disc. North is at the top and east on the right. Pixels outside the disc are black
// and not covered.
func HemisphereImage(src Source, size int, invert bool) *Image {
	sign := float32(1)
	if invert {
		sign = -1
	}
	return discImage(size, func(x, y, h2 float32) math.Vec3 {
		return src.SkyRGB(math.Vec3{X: x, Y: y, Z: sign * math32.Sqrt(1-h2)})
	})
}

// FisheyeImage maps elevation linearly to radius, with the zenith at the centre and the horizon
// at the rim.
func FisheyeImage(src Source, size int) *Image {
	return discImage(size, func(x, y, h2 float32) math.Vec3 {
		theta := math32.Pi/2 - math32.Pi/2*math32.Sqrt(h2)
		phi := math32.Atan2(y, x)
		ct := math32.Cos(theta)
		return src.SkyRGB(math.Vec3{X: math32.Cos(phi) * ct, Y: math32.Sin(phi) * ct, Z: math32.Sin(theta)})
	})
}

func discImage(size int, sample func(x, y, h2 float32) math.Vec3) *Image {
	img := NewImage(size, size)
	img.Mask = make([]bool, size*size)

	for i := 0; i < size; i++ {
		y := 2*(float32(i)+0.5)/float32(size) - 1
		row := size - 1 - i

		for j := 0; j < size; j++ {
			x := 2*(float32(j)+0.5)/float32(size) - 1
			h2 := x*x + y*y
			if h2 > 1 {
				continue
			}
			img.Set(j, row, sample(x, y, h2))
			img.Mask[row*size+j] = true
		}
	}
	return img
}

// NumFaces is the number of cube map faces.
const NumFaces = 6

// Face axis permutations and signs. The faces look north, east, south, west, up and down.
var (
	faceIndices = [NumFaces][3]int{
		{0, 2, 1},
		{2, 0, 1},
		{0, 2, 1},
		{2, 0, 1},
		{0, 1, 2},
		{0, 1, 2},
	}
	faceSigns = [NumFaces][3]float32{
		{+1, +1, +1},
		{+1, -1, +1},
		{-1, -1, +1},
		{-1, +1, +1},
		{+1, -1, +1},
		{+1, +1, -1},
	}
)

// FaceDir returns the unit direction through pixel (j, i) of a size×size cube face, with i
// counting up from the bottom row.
func FaceDir(face, i, j, size int) math.Vec3 {
	pos := [3]float32{
		2*(float32(j)+0.5)/float32(size) - 1,
		2*(float32(i)+0.5)/float32(size) - 1,
		1,
	}
	idx := faceIndices[face]
	sgn := faceSigns[face]
	return math.Vec3{
		X: sgn[0] * pos[idx[0]],
		Y: sgn[1] * pos[idx[1]],
		Z: sgn[2] * pos[idx[2]],
	}.Normalize()
}

// CubeFaceImage samples one cube map face.
func CubeFaceImage(src Source, face, size int) *Image {
	img := NewImage(size, size)
	for i := 0; i < size; i++ {
		row := size - 1 - i
		for j := 0; j < size; j++ {
			img.Set(j, row, src.SkyRGB(FaceDir(face, i, j, size)))
		}
	}
	return img
}

// CubeImages samples all six faces.
func CubeImages(src Source, size int) [NumFaces]*Image {
	var faces [NumFaces]*Image
	for f := range faces {
		faces[f] = CubeFaceImage(src, f, size)
	}
	return faces
}

// PanoramaImage samples an equirectangular panorama of the given height. North is in the middle,
// east to the right and south at both edges; the zenith is the top row.
func PanoramaImage(src Source, height int) *Image {
	width := 2 * height
	img := NewImage(width, height)

	da := math32.Pi / float32(height)
	for i := 0; i < height; i++ {
		phi := math32.Pi - (float32(i)+0.5)*da
		sp, cp := math32.Sin(phi), math32.Cos(phi)
		row := height - 1 - i

		for j := 0; j < width; j++ {
			theta := (float32(j) + 0.5) * da
			st, ct := math32.Sin(theta), math32.Cos(theta)
			img.Set(j, row, src.SkyRGB(math.Vec3{X: -st * sp, Y: -ct * sp, Z: cp}))
		}
	}
	return img
}
