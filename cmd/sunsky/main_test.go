package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/sunsky/internal/tablefile"
)

// sandbox isolates a test from any sunsky.yaml on the machine.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func runArgs(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(args, &out); err != nil {
		t.Fatalf("sunsky %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestRenderWritesImages(t *testing.T) {
	dir := sandbox(t)

	out := runArgs(t, "render", "--size", "16", "--out", "img", "--hdr", "--stats")
	for _, name := range []string{"sky-hemi.png", "sky-hemi.pfm"} {
		if _, err := os.Stat(filepath.Join(dir, "img", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if !strings.Contains(out, "avg:") {
		t.Errorf("expected stats in output, got %q", out)
	}

	runArgs(t, "render", "-s", "cc", "-p", "cube", "-f", "tga", "--size", "8", "-o", "cube")
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "cube", "sky-cube-"+string(rune('0'+i))+".tga")); err != nil {
			t.Errorf("cube face %d not written: %v", i, err)
		}
	}
}

func TestDayWritesFrames(t *testing.T) {
	dir := sandbox(t)

	runArgs(t, "day", "--start", "10", "--end", "12", "--step", "1", "--size", "8", "-j", "2", "--autoscale", "-o", "frames")
	entries, err := os.ReadDir(filepath.Join(dir, "frames"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d frames, want 3", len(entries))
	}
}

func TestTablesExport(t *testing.T) {
	dir := sandbox(t)

	out := runArgs(t, "tables", "-s", "ptb", "-z", "zstd", "brdf.yaml")
	path := filepath.Join(dir, "brdf.yaml.zst")
	if !strings.Contains(out, "brdf.yaml.zst") {
		t.Errorf("output %q should name %s", out, path)
	}

	doc, err := tablefile.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.SkyType != "PreethamBRDF" {
		t.Errorf("sky type = %s", doc.SkyType)
	}
	if _, err := doc.BRDFTable(); err != nil {
		t.Errorf("BRDFTable: %v", err)
	}

	var buf bytes.Buffer
	if err := run([]string{"tables", "-s", "Preetham"}, &buf); err == nil {
		t.Error("analytic skies have no tables to export")
	}
}

func TestSunAndConfig(t *testing.T) {
	sandbox(t)

	out := runArgs(t, "sun", "--lat", "0", "--day", "80", "--time", "12")
	if !strings.Contains(out, "Sun elevation") || !strings.Contains(out, "Sun theta, phi") || !strings.Contains(out, "Sun colour") {
		t.Errorf("unexpected sun output %q", out)
	}

	out = runArgs(t, "config", "-s", "hkt", "--tz", "2")
	if !strings.Contains(out, "type: hkt") || !strings.Contains(out, "time_zone: 2") {
		t.Errorf("effective config missing overrides: %q", out)
	}

	out = runArgs(t, "config", "save", "saved.yaml", "-t", "7")
	if !strings.Contains(out, "saved.yaml") {
		t.Errorf("unexpected save output %q", out)
	}
	out = runArgs(t, "config", "-c", "saved.yaml")
	if !strings.Contains(out, "turbidity: 7") {
		t.Errorf("saved turbidity not loaded: %q", out)
	}
}

func TestInvalidSettingsFail(t *testing.T) {
	sandbox(t)

	for _, args := range [][]string{
		{"render", "-s", "Nimbus"},
		{"render", "--roughness", "3"},
		{"render", "--profile", "gpu"},
		{"render", "--dataset", "missing.yaml"},
	} {
		var buf bytes.Buffer
		if err := run(args, &buf); err == nil {
			t.Errorf("sunsky %s should fail", strings.Join(args, " "))
		}
	}
}

func TestVersion(t *testing.T) {
	if out := runArgs(t, "version"); strings.TrimSpace(out) != version {
		t.Errorf("version output %q", out)
	}
}
