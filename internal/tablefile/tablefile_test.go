package tablefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky"
	"github.com/Faultbox/sunsky/pkg/sky/hosek/hosektest"
	"github.com/Faultbox/sunsky/pkg/sky/table"
)

func updatedModel(t sky.SkyType) *sky.Model {
	m := sky.New(
		sky.WithSkyType(t),
		sky.WithSunDir(math.Vec3{Y: 0.8, Z: 0.6}),
		sky.WithDataset(hosektest.Dataset()),
		sky.WithAlbedo(math.Splat(0.1)),
	)
	m.Update()
	return m
}

func TestFromModelRequiresTables(t *testing.T) {
	_, err := FromModel(updatedModel(sky.Preetham))
	if !errors.Is(err, ErrNoTables) {
		t.Errorf("expected ErrNoTables, got %v", err)
	}
}

func TestSkyTableRoundTrip(t *testing.T) {
	for _, st := range []sky.SkyType{sky.PreethamTable, sky.HosekTable} {
		m := updatedModel(st)
		doc, err := FromModel(m)
		if err != nil {
			t.Fatalf("%v: FromModel: %v", st, err)
		}
		if doc.Table == nil || doc.BRDF != nil {
			t.Fatalf("%v: expected only a separable table", st)
		}
		if st == sky.PreethamTable && doc.Table.H != nil {
			t.Errorf("Preetham tables should omit the zero H term")
		}

		for _, name := range []string{"sky.yaml", "sky.json", "sky.yaml.zst", "sky.json.sz"} {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, doc); err != nil {
				t.Fatalf("%v %s: Save: %v", st, name, err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("%v %s: Load: %v", st, name, err)
			}
			got, err := loaded.SkyTable()
			if err != nil {
				t.Fatalf("%v %s: SkyTable: %v", st, name, err)
			}
			if diff := cmp.Diff(m.SkyTable(), got); diff != "" {
				t.Errorf("%v %s: table mismatch (-want +got):\n%s", st, name, diff)
			}
		}
	}
}

func TestBRDFRoundTrip(t *testing.T) {
	m := updatedModel(sky.HosekBRDF)
	doc, err := FromModel(m)
	if err != nil {
		t.Fatalf("FromModel: %v", err)
	}
	if len(doc.BRDF) != table.NumRows {
		t.Fatalf("got %d rows, want %d", len(doc.BRDF), table.NumRows)
	}
	if doc.BRDF[0].Power != 0 || doc.BRDF[table.NumRows-1].Power != 1 {
		t.Errorf("row powers = %v, %v", doc.BRDF[0].Power, doc.BRDF[table.NumRows-1].Power)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, YAML, Zstd); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := Read(&buf, Zstd)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got, err := loaded.BRDFTable()
	if err != nil {
		t.Fatalf("BRDFTable: %v", err)
	}
	if diff := cmp.Diff(m.BRDFTable(), got); diff != "" {
		t.Errorf("BRDF mismatch (-want +got):\n%s", diff)
	}

	if _, err := loaded.SkyTable(); err == nil {
		t.Error("BRDF documents have no separable table")
	}
}

func TestCompressionShrinks(t *testing.T) {
	doc, err := FromModel(updatedModel(sky.PreethamBRDF))
	if err != nil {
		t.Fatalf("FromModel: %v", err)
	}

	sizes := map[Compression]int{}
	for _, c := range []Compression{None, Zstd, Snappy} {
		var buf bytes.Buffer
		if err := Write(&buf, doc, JSON, c); err != nil {
			t.Fatalf("%v: Write: %v", c, err)
		}
		sizes[c] = buf.Len()
	}
	if sizes[Zstd] >= sizes[None] || sizes[Snappy] >= sizes[None] {
		t.Errorf("compressed sizes %v not smaller than plain", sizes)
	}
}

func TestReadRejectsBadDocuments(t *testing.T) {
	if _, err := Read(strings.NewReader("version: 2\n"), None); err == nil {
		t.Error("expected error for unknown version")
	}

	doc := &Document{
		Version:   Version,
		Format:    "xyY",
		Primaries: "srgb",
		Table:     &TableDoc{Theta: make([]Triple, 3), Gamma: make([]Triple, table.Size)},
	}
	if _, err := doc.SkyTable(); err == nil || !strings.Contains(err.Error(), "theta") {
		t.Errorf("expected theta length error, got %v", err)
	}

	doc.Table.Theta = make([]Triple, table.Size)
	doc.Format = "Lab"
	if _, err := doc.SkyTable(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNamesAndSuffixes(t *testing.T) {
	tests := []struct {
		path string
		enc  Encoding
		comp Compression
	}{
		{"a.yaml", YAML, None},
		{"a.json", JSON, None},
		{"dir/a.JSON.zst", JSON, Zstd},
		{"a.yml.sz", YAML, Snappy},
	}
	for _, tt := range tests {
		if got := EncodingFor(tt.path); got != tt.enc {
			t.Errorf("EncodingFor(%s) = %v, want %v", tt.path, got, tt.enc)
		}
		if got := CompressionFor(tt.path); got != tt.comp {
			t.Errorf("CompressionFor(%s) = %v, want %v", tt.path, got, tt.comp)
		}
	}

	for s, want := range map[string]Compression{"": None, "none": None, "ZSTD": Zstd, "snappy": Snappy} {
		if got, err := ParseCompression(s); err != nil || got != want {
			t.Errorf("ParseCompression(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("expected error for gzip")
	}
}

func TestOpenDecompresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt.zst")

	var buf bytes.Buffer
	w, err := NewWriter(&buf, Zstd)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Write([]byte("hello sky"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(rc); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.String() != "hello sky" {
		t.Errorf("got %q", out.String())
	}
}
