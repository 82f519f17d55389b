package tablefile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Compression is the stream compression applied to a table file.
type Compression int

const (
	None Compression = iota
	Zstd
	Snappy
)

var compressionNames = [...]struct{ name, ext string }{
	{"none", ""},
	{"zstd", ".zst"},
	{"snappy", ".sz"},
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}
	return compressionNames[c].name
}

// Ext returns the file suffix of compressed files, empty for None.
func (c Compression) Ext() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return ""
	}
	return compressionNames[c].ext
}

// ParseCompression converts a compression name. The empty string is None.
func ParseCompression(s string) (Compression, error) {
	if s == "" {
		return None, nil
	}
	for i, n := range compressionNames {
		if strings.EqualFold(s, n.name) {
			return Compression(i), nil
		}
	}
	return None, fmt.Errorf("unknown compression %q", s)
}

// CompressionFor picks the compression from a file name's suffix.
func CompressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, Zstd.Ext()):
		return Zstd
	case strings.HasSuffix(path, Snappy.Ext()):
		return Snappy
	default:
		return None
	}
}

// TrimCompression strips a compression suffix from path.
func TrimCompression(path string) string {
	return strings.TrimSuffix(path, CompressionFor(path).Ext())
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w in a compressor. Closing the result flushes the compressor but leaves w open.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression %v", c)
	}
}

type zstdReadCloser struct{ *zstd.Decoder }

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader wraps r in a decompressor.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{dec}, nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression %v", c)
	}
}

type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r fileReader) Close() error {
	r.ReadCloser.Close()
	return r.f.Close()
}

// Open opens path for reading, decompressing it when the name ends in .zst or .sz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(f, CompressionFor(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return fileReader{ReadCloser: rc, f: f}, nil
}
