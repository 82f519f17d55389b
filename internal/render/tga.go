package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	tgaTypeUncompressed = 2  // Uncompressed true-color
	tgaTypeRLE          = 10 // RLE compressed true-color
)

// EncodeTGA writes img as a 24-bit RLE compressed true-color TGA, top row first.
func EncodeTGA(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("image %dx%d too large for TGA", width, height)
	}

	var header [18]byte
	header[2] = tgaTypeRLE
	binary.LittleEndian.PutUint16(header[12:], uint16(width))
	binary.LittleEndian.PutUint16(header[14:], uint16(height))
	header[16] = 24
	header[17] = 0x20 // top-to-bottom

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	bgr := func(x, y int) [3]byte {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		return [3]byte{img.Pix[i+2], img.Pix[i+1], img.Pix[i]}
	}

	// Packets never span rows.
	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			px := bgr(x, y)

			run := 1
			for x+run < width && run < 128 && bgr(x+run, y) == px {
				run++
			}
			if run > 1 {
				bw.WriteByte(0x80 | byte(run-1))
				bw.Write(px[:])
				x += run
				continue
			}

			// Raw packet up to the next run of two equal pixels.
			n := 1
			for x+n < width && n < 128 {
				if x+n+1 < width && bgr(x+n, y) == bgr(x+n+1, y) {
					break
				}
				n++
			}
			bw.WriteByte(byte(n - 1))
			for k := 0; k < n; k++ {
				p := bgr(x+k, y)
				bw.Write(p[:])
			}
			x += n
		}
	}
	return bw.Flush()
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:]))
	height := int(binary.LittleEndian.Uint16(data[14:]))
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]
	bytesPerPixel := bpp / 8

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	// Bit 5 of the descriptor means top-to-bottom.
	topToBottom := (descriptor & 0x20) != 0
	set := func(idx int, p []byte) {
		x, y := idx%width, idx/width
		if !topToBottom {
			y = height - 1 - y
		}
		a := uint8(255)
		if bytesPerPixel == 4 {
			a = p[3]
		}
		img.SetNRGBA(x, y, color.NRGBA{R: p[2], G: p[1], B: p[0], A: a})
	}

	pixelCount := width * height
	if imageType == tgaTypeUncompressed {
		if len(pixelData) < pixelCount*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < pixelCount; i++ {
			set(i, pixelData[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixelIdx, dataIdx := 0, 0
	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return nil, fmt.Errorf("TGA RLE data truncated")
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet - repeat single pixel
			if dataIdx+bytesPerPixel > len(pixelData) {
				return nil, fmt.Errorf("TGA RLE data truncated")
			}
			p := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				set(pixelIdx, p)
				pixelIdx++
			}
			continue
		}

		// Raw packet - read count pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return nil, fmt.Errorf("TGA RLE data truncated")
			}
			set(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}
	return img, nil
}
