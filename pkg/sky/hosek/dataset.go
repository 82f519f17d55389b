package hosek

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset dimensions.
const (
	NumAlbedos     = 2
	NumTurbidities = 10
	NumControl     = 6 // quintic Bézier control points over elevation

	numChannelCoeffs   = NumAlbedos * NumTurbidities * NumControl * NumCoeffs
	numChannelRadiance = NumAlbedos * NumTurbidities * NumControl
)

// ErrDatasetSize is returned when a dataset source does not hold the expected number of values.
var ErrDatasetSize = errors.New("hosek: dataset size mismatch")

// ChannelCoeffs holds the fitted coefficients of one channel, indexed by albedo bin,
// turbidity bin (turbidity 1-10), elevation control point and coefficient.
type ChannelCoeffs [NumAlbedos][NumTurbidities][NumControl]Coeffs

// ChannelRadiance holds the fitted mean radiance of one channel, indexed like ChannelCoeffs.
type ChannelRadiance [NumAlbedos][NumTurbidities][NumControl]float32

// Dataset is the Hosek-Wilkie fit for the three CIE XYZ channels.
type Dataset struct {
	Coeffs   [NumChannels]ChannelCoeffs
	Radiance [NumChannels]ChannelRadiance
}

// channelDocument is the YAML/JSON form of one channel: flat arrays in the reference ordering.
type channelDocument struct {
	Coeffs   []float32 `yaml:"coeffs"`
	Radiance []float32 `yaml:"radiance"`
}

type document struct {
	X channelDocument `yaml:"x"`
	Y channelDocument `yaml:"y"`
	Z channelDocument `yaml:"z"`
}

// LoadDataset reads a dataset from a YAML or JSON document, or from the reference C header when
// the file name ends in ".h".
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	defer f.Close()

	d, err := ReadDataset(f, path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %w", path, err)
	}
	return d, nil
}

// ReadDataset decodes a dataset from r. name selects the syntax: the reference C header when it
// ends in ".h", a YAML or JSON document otherwise.
func ReadDataset(r io.Reader, name string) (*Dataset, error) {
	if strings.HasSuffix(name, ".h") {
		return ParseHeader(r)
	}
	return ParseDataset(r)
}

// ParseDataset decodes a YAML or JSON dataset document with top-level x, y and z channels.
func ParseDataset(r io.Reader) (*Dataset, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	d := &Dataset{}
	for ch, c := range []channelDocument{doc.X, doc.Y, doc.Z} {
		if err := d.setChannel(ch, c.Coeffs, c.Radiance); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Encode writes d as a YAML document readable by ParseDataset.
func (d *Dataset) Encode(w io.Writer) error {
	var docs [NumChannels]channelDocument
	for ch := range docs {
		docs[ch] = channelDocument{
			Coeffs:   d.flatCoeffs(ch),
			Radiance: d.flatRadiance(ch),
		}
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(document{X: docs[0], Y: docs[1], Z: docs[2]}); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return enc.Close()
}

var (
	commentRE = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
	arrayRE   = regexp.MustCompile(`(?s)\b(datasetXYZ(?:Rad)?)([123])\s*\[\s*\]\s*=\s*\{(.*?)\}`)
)

// ParseHeader reads the datasetXYZ1-3 and datasetXYZRad1-3 arrays of the reference
// ArHosekSkyModelData_CIEXYZ.h header.
func ParseHeader(r io.Reader) (*Dataset, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	src = commentRE.ReplaceAll(src, nil)

	var coeffs, radiance [NumChannels][]float32
	var found int
	for _, m := range arrayRE.FindAllSubmatch(src, -1) {
		ch := int(m[2][0] - '1')
		values, err := parseValues(string(m[3]))
		if err != nil {
			return nil, fmt.Errorf("parsing %s%s: %w", m[1], m[2], err)
		}
		if string(m[1]) == "datasetXYZRad" {
			radiance[ch] = values
		} else {
			coeffs[ch] = values
		}
		found++
	}
	if found != 2*NumChannels {
		return nil, fmt.Errorf("%w: found %d of %d dataset arrays", ErrDatasetSize, found, 2*NumChannels)
	}

	d := &Dataset{}
	for ch := 0; ch < NumChannels; ch++ {
		if err := d.setChannel(ch, coeffs[ch], radiance[ch]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseValues(body string) ([]float32, error) {
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	values := make([]float32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSuffix(f, "f")
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		values = append(values, float32(v))
	}
	return values, nil
}

func (d *Dataset) setChannel(ch int, coeffs, radiance []float32) error {
	if len(coeffs) != numChannelCoeffs {
		return fmt.Errorf("%w: channel %d has %d coefficients, want %d",
			ErrDatasetSize, ch, len(coeffs), numChannelCoeffs)
	}
	if len(radiance) != numChannelRadiance {
		return fmt.Errorf("%w: channel %d has %d radiance values, want %d",
			ErrDatasetSize, ch, len(radiance), numChannelRadiance)
	}

	i := 0
	for a := range d.Coeffs[ch] {
		for t := range d.Coeffs[ch][a] {
			for q := range d.Coeffs[ch][a][t] {
				i += copy(d.Coeffs[ch][a][t][q][:], coeffs[i:])
			}
		}
	}
	i = 0
	for a := range d.Radiance[ch] {
		for t := range d.Radiance[ch][a] {
			i += copy(d.Radiance[ch][a][t][:], radiance[i:])
		}
	}
	return nil
}

func (d *Dataset) flatCoeffs(ch int) []float32 {
	out := make([]float32, 0, numChannelCoeffs)
	for a := range d.Coeffs[ch] {
		for t := range d.Coeffs[ch][a] {
			for q := range d.Coeffs[ch][a][t] {
				out = append(out, d.Coeffs[ch][a][t][q][:]...)
			}
		}
	}
	return out
}

func (d *Dataset) flatRadiance(ch int) []float32 {
	out := make([]float32, 0, numChannelRadiance)
	for a := range d.Radiance[ch] {
		for t := range d.Radiance[ch][a] {
			out = append(out, d.Radiance[ch][a][t][:]...)
		}
	}
	return out
}
