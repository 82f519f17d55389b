package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"
	stdmath "math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/tiff"

	"github.com/Faultbox/sunsky/internal/logger"
)

// Format is an image file format.
type Format int

const (
	PNG  Format = iota // 8-bit, tone mapped
	TGA                // 8-bit RLE, tone mapped
	TIFF               // 16-bit deflate, tone mapped
	PFM                // float32 HDR, weighted only
)

var formatNames = [...]string{"png", "tga", "tiff", "pfm"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat converts a format name, ignoring case. "tif" is accepted for TIFF.
func ParseFormat(s string) (Format, error) {
	if strings.EqualFold(s, "tif") {
		return TIFF, nil
	}
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return PNG, fmt.Errorf("unknown image format %q", s)
}

// Encode writes img in format f, using s for display conversion.
func Encode(w io.Writer, f Format, img *Image, s Settings) error {
	switch f {
	case PNG:
		return png.Encode(w, s.LDR(img))
	case TGA:
		return EncodeTGA(w, s.LDR(img))
	case TIFF:
		return tiff.Encode(w, s.LDR16(img), &tiff.Options{Compression: tiff.Deflate})
	case PFM:
		return WritePFM(w, s.Weighted(img))
	default:
		return fmt.Errorf("unsupported image format %v", f)
	}
}

// WritePFM writes img as a little-endian colour Portable Float Map. PFM stores the bottom row
// first.
func WritePFM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", img.Width, img.Height); err != nil {
		return err
	}

	row := make([]byte, img.Width*12)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			o := x * 12
			binary.LittleEndian.PutUint32(row[o:], stdmath.Float32bits(c.X))
			binary.LittleEndian.PutUint32(row[o+4:], stdmath.Float32bits(c.Y))
			binary.LittleEndian.PutUint32(row[o+8:], stdmath.Float32bits(c.Z))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Output writes rendered images into a directory.
type Output struct {
	Dir      string
	Format   Format
	Settings Settings
	// HDR also writes a PFM next to every image in another format.
	HDR bool
}

// Write stores img as Dir/name plus the format extension, creating Dir if needed, and returns
// the paths written.
func (o *Output) Write(name string, img *Image) ([]string, error) {
	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}

	formats := []Format{o.Format}
	if o.HDR && o.Format != PFM {
		formats = append(formats, PFM)
	}

	var paths []string
	for _, f := range formats {
		path := filepath.Join(o.Dir, name+f.Ext())
		if err := writeFile(path, f, img, o.Settings); err != nil {
			return paths, err
		}
		logger.Debug("wrote image", zap.String("path", path), zap.Int("width", img.Width), zap.Int("height", img.Height))
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, f Format, img *Image, s Settings) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := Encode(file, f, img, s); err != nil {
		return fmt.Errorf("encoding %s: %w", strings.ToUpper(f.String()), err)
	}
	return nil
}
