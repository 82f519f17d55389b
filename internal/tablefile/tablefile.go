// Package tablefile exports the lookup tables of a sky model as YAML or JSON documents, optionally
// compressed, and reads them back.
package tablefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/table"
)

// Version is the document version written by this package.
const Version = 1

// ErrNoTables is returned when a model has no tables to export.
var ErrNoTables = errors.New("tablefile: sky type has no tables")

// Triple is a colour or direction stored as a flow sequence.
type Triple [3]float32

func fromVec(v math.Vec3) Triple { return Triple{v.X, v.Y, v.Z} }

func (t Triple) vec() math.Vec3 { return math.Vec3{X: t[0], Y: t[1], Z: t[2]} }

// Document is the serialised form of a model's tables.
type Document struct {
	Version   int     `yaml:"version" json:"version"`
	SkyType   string  `yaml:"sky_type" json:"sky_type"`
	Format    string  `yaml:"format" json:"format"`
	Primaries string  `yaml:"primaries" json:"primaries"`
	Turbidity float32 `yaml:"turbidity" json:"turbidity"`
	SunDir    Triple  `yaml:"sun_dir,flow" json:"sun_dir"`
	Norm      Triple  `yaml:"norm,flow" json:"norm"`

	Table *TableDoc `yaml:"table,omitempty" json:"table,omitempty"`
	BRDF  []RowDoc  `yaml:"brdf,omitempty" json:"brdf,omitempty"`
}

// TableDoc holds a separable table.
type TableDoc struct {
	MaxGamma float32  `yaml:"max_gamma,omitempty" json:"max_gamma,omitempty"`
	Theta    []Triple `yaml:"theta,flow" json:"theta"`
	Gamma    []Triple `yaml:"gamma,flow" json:"gamma"`
	H        []Triple `yaml:"h,flow,omitempty" json:"h,omitempty"`
}

// RowDoc holds one roughness row of a BRDF table.
type RowDoc struct {
	Power float32  `yaml:"power" json:"power"` // cosine lobe power, 0 for the unconvolved row
	Theta []Triple `yaml:"theta,flow" json:"theta"`
	Gamma []Triple `yaml:"gamma,flow" json:"gamma"`
	H     []Triple `yaml:"h,flow,omitempty" json:"h,omitempty"`
	FH    []Triple `yaml:"fh,flow,omitempty" json:"fh,omitempty"`
}

func fromSlice(s []math.Vec3) []Triple {
	out := make([]Triple, len(s))
	for i, v := range s {
		out[i] = fromVec(v)
	}
	return out
}

func isZero(s []math.Vec3) bool {
	for _, v := range s {
		if v != (math.Vec3{}) {
			return false
		}
	}
	return true
}

// FromModel captures the tables the model's active sky type uses. The model must have been
// updated.
func FromModel(m *sky.Model) (*Document, error) {
	st := m.ActiveSkyType()
	if !st.NeedsTable() {
		return nil, fmt.Errorf("%w: %v", ErrNoTables, st)
	}

	doc := &Document{
		Version:   Version,
		SkyType:   st.String(),
		Turbidity: m.Turbidity(),
	}

	if st.NeedsBRDF() {
		b := m.BRDFTable()
		doc.Format = b.Format.String()
		doc.Primaries = b.Primaries.String()
		doc.SunDir = fromVec(b.SunDir)
		doc.Norm = fromVec(b.Norm)
		doc.BRDF = make([]RowDoc, table.NumRows)
		for r := range doc.BRDF {
			row := RowDoc{
				Power: table.RowPower(r),
				Theta: fromSlice(b.Theta[r][:]),
				Gamma: fromSlice(b.Gamma[r][:]),
			}
			if b.Format == table.FormatXYZ {
				row.H = fromSlice(b.H[r][:])
				row.FH = fromSlice(b.FH[r][:])
			}
			doc.BRDF[r] = row
		}
		return doc, nil
	}

	t := m.SkyTable()
	doc.Format = t.Format.String()
	doc.Primaries = t.Primaries.String()
	doc.SunDir = fromVec(t.SunDir)
	doc.Norm = fromVec(t.Norm)
	doc.Table = &TableDoc{
		MaxGamma: t.MaxGamma,
		Theta:    fromSlice(t.Theta[:]),
		Gamma:    fromSlice(t.Gamma[:]),
	}
	if !isZero(t.H[:]) {
		doc.Table.H = fromSlice(t.H[:])
	}
	return doc, nil
}

func parseFormat(s string) (table.Format, error) {
	switch s {
	case table.FormatxyY.String():
		return table.FormatxyY, nil
	case table.FormatXYZ.String():
		return table.FormatXYZ, nil
	}
	return table.FormatxyY, fmt.Errorf("unknown table format %q", s)
}

func fill(dst []math.Vec3, src []Triple, name string, optional bool) error {
	if len(src) == 0 && optional {
		clear(dst)
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%s has %d entries, want %d", name, len(src), len(dst))
	}
	for i, t := range src {
		dst[i] = t.vec()
	}
	return nil
}

func (d *Document) header() (table.Format, colorspace.Primaries, error) {
	f, err := parseFormat(d.Format)
	if err != nil {
		return f, colorspace.SRGB, err
	}
	p, err := colorspace.ParsePrimaries(d.Primaries)
	return f, p, err
}

// SkyTable rebuilds the separable table.
func (d *Document) SkyTable() (*table.Table, error) {
	if d.Table == nil {
		return nil, errors.New("document has no separable table")
	}
	f, p, err := d.header()
	if err != nil {
		return nil, err
	}

	t := &table.Table{
		Primaries: p,
		Format:    f,
		SunDir:    d.SunDir.vec(),
		Norm:      d.Norm.vec(),
		MaxGamma:  d.Table.MaxGamma,
	}
	if err := errors.Join(
		fill(t.Theta[:], d.Table.Theta, "theta", false),
		fill(t.Gamma[:], d.Table.Gamma, "gamma", false),
		fill(t.H[:], d.Table.H, "h", true),
	); err != nil {
		return nil, err
	}
	return t, nil
}

// BRDFTable rebuilds the convolved tables.
func (d *Document) BRDFTable() (*table.BRDF, error) {
	if len(d.BRDF) != table.NumRows {
		return nil, fmt.Errorf("document has %d BRDF rows, want %d", len(d.BRDF), table.NumRows)
	}
	f, p, err := d.header()
	if err != nil {
		return nil, err
	}

	b := &table.BRDF{
		Primaries: p,
		Format:    f,
		SunDir:    d.SunDir.vec(),
		Norm:      d.Norm.vec(),
	}
	for r, row := range d.BRDF {
		if err := errors.Join(
			fill(b.Theta[r][:], row.Theta, fmt.Sprintf("row %d theta", r), false),
			fill(b.Gamma[r][:], row.Gamma, fmt.Sprintf("row %d gamma", r), false),
			fill(b.H[r][:], row.H, fmt.Sprintf("row %d h", r), true),
			fill(b.FH[r][:], row.FH, fmt.Sprintf("row %d fh", r), true),
		); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Encoding is the document syntax.
type Encoding int

const (
	YAML Encoding = iota
	JSON
)

// EncodingFor picks the encoding from a file name, ignoring any compression suffix.
func EncodingFor(path string) Encoding {
	if strings.EqualFold(filepath.Ext(TrimCompression(path)), ".json") {
		return JSON
	}
	return YAML
}

// Write encodes d to w.
func Write(w io.Writer, d *Document, e Encoding, c Compression) error {
	cw, err := NewWriter(w, c)
	if err != nil {
		return err
	}

	switch e {
	case JSON:
		enc := json.NewEncoder(cw)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	default:
		enc := yaml.NewEncoder(cw)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		cw.Close()
		return fmt.Errorf("encoding tables: %w", err)
	}
	return cw.Close()
}

// Read decodes a document written by Write. YAML decoding also accepts JSON.
func Read(r io.Reader, c Compression) (*Document, error) {
	rc, err := NewReader(r, c)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var d Document
	if err := yaml.NewDecoder(rc).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("unsupported table document version %d", d.Version)
	}
	return &d, nil
}

// Save writes d to path. The encoding and compression follow the file name: a ".json" extension
// selects JSON, and a ".zst" or ".sz" suffix compresses.
func Save(path string, d *Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, d, EncodingFor(path), CompressionFor(path)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Load reads a document saved by Save.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f, CompressionFor(path))
	if err != nil {
		return nil, fmt.Errorf("loading tables from %s: %w", path, err)
	}
	return d, nil
}
