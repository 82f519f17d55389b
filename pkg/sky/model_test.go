package sky_test

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky"
	"github.com/Faultbox/sunsky/pkg/sky/hosek/hosektest"
	"github.com/Faultbox/sunsky/pkg/sky/table"
)

var zenith = math.Vec3{Z: 1}

func sunAt(z float32) math.Vec3 {
	return math.Vec3{Y: math32.Sqrt(1 - z*z), Z: z}
}

func TestNewDefaults(t *testing.T) {
	m := sky.New()
	if m.SkyType() != sky.Preetham {
		t.Errorf("SkyType() = %v, want Preetham", m.SkyType())
	}
	if m.Turbidity() != 2.5 {
		t.Errorf("Turbidity() = %v, want 2.5", m.Turbidity())
	}
	if m.SunDir() != zenith {
		t.Errorf("SunDir() = %v, want %v", m.SunDir(), zenith)
	}
	if m.Albedo() != (math.Vec3{}) || m.Overcast() != 0 || m.Roughness() != 0 {
		t.Errorf("albedo %v, overcast %v, roughness %v, want zero", m.Albedo(), m.Overcast(), m.Roughness())
	}
}

func TestOptions(t *testing.T) {
	d := hosektest.Dataset()
	m := sky.New(
		sky.WithSkyType(sky.HosekBRDF),
		sky.WithSunDir(sunAt(0.3)),
		sky.WithTurbidity(4),
		sky.WithAlbedo(math.Splat(0.1)),
		sky.WithOvercast(0.2),
		sky.WithRoughness(0.5),
		sky.WithHorizonCrush(0.8),
		sky.WithStandardKind(3),
		sky.WithDataset(d),
	)
	if m.SkyType() != sky.HosekBRDF || m.Turbidity() != 4 || m.Overcast() != 0.2 ||
		m.Roughness() != 0.5 || m.HorizonCrush() != 0.8 || m.StandardKind() != 3 || m.Dataset() != d {
		t.Errorf("options not applied: %+v", m)
	}
}

func TestParseSkyType(t *testing.T) {
	tests := []struct {
		in   string
		want sky.SkyType
	}{
		{"Preetham", sky.Preetham},
		{"pt", sky.Preetham},
		{"ptt", sky.PreethamTable},
		{"PreethamBRDF", sky.PreethamBRDF},
		{"hk", sky.Hosek},
		{"hosektable", sky.HosekTable},
		{"hkb", sky.HosekBRDF},
		{"cc", sky.CIEClear},
		{"cieOvercast", sky.CIEOvercast},
		{"CP", sky.CIEPartlyCloudy},
		{"cs", sky.CIEStandard},
	}
	for _, tt := range tests {
		got, err := sky.ParseSkyType(tt.in)
		if err != nil {
			t.Errorf("ParseSkyType(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSkyType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := sky.ParseSkyType("rayleigh"); err == nil {
		t.Error("ParseSkyType(rayleigh) should fail")
	}

	for _, st := range sky.SkyTypes() {
		for _, name := range []string{st.String(), st.Short()} {
			if got, err := sky.ParseSkyType(name); err != nil || got != st {
				t.Errorf("ParseSkyType(%q) = %v, %v, want %v", name, got, err, st)
			}
		}
	}
}

func TestSetSkyTypeIsLazy(t *testing.T) {
	m := sky.New(sky.WithSunDir(sunAt(0.5)))
	m.Update()
	before := m.SkyRGB(zenith)

	m.SetSkyType(sky.CIEOvercast)
	if m.ActiveSkyType() != sky.Preetham {
		t.Errorf("ActiveSkyType() = %v before Update, want Preetham", m.ActiveSkyType())
	}
	if got := m.SkyRGB(zenith); got != before {
		t.Errorf("SkyRGB changed before Update: %v, want %v", got, before)
	}

	m.Update()
	if m.ActiveSkyType() != sky.CIEOvercast {
		t.Errorf("ActiveSkyType() = %v after Update, want CIEOvercast", m.ActiveSkyType())
	}
}

func TestPreethamZenithLuminance(t *testing.T) {
	m := sky.New()
	m.Update()

	want := m.PreethamModel().Zenith().Z
	if got := m.SkyLuminance(zenith); math32.Abs(got-want) > 1e-3*want {
		t.Errorf("SkyLuminance(zenith) = %v, want %v", got, want)
	}
	if got := m.AverageLuminance(); got != want {
		t.Errorf("AverageLuminance() = %v, want %v", got, want)
	}
}

func TestCIEOvercastZenith(t *testing.T) {
	m := sky.New(sky.WithSkyType(sky.CIEOvercast), sky.WithSunDir(sunAt(0.4)))
	m.Update()

	lz := m.ZenithLuminance()
	if got := m.SkyLuminance(zenith); got != lz {
		t.Errorf("SkyLuminance(zenith) = %v, want %v", got, lz)
	}
	if got := m.SkyChroma(zenith); got != (math.Vec2{X: 1.0 / 3, Y: 1.0 / 3}) {
		t.Errorf("SkyChroma(zenith) = %v, want achromatic", got)
	}
	if got := m.AverageLuminance(); got != lz {
		t.Errorf("AverageLuminance() = %v, want %v", got, lz)
	}
}

func TestCIEClearUsesPreethamZenithChroma(t *testing.T) {
	m := sky.New(sky.WithSkyType(sky.CIEClear), sky.WithSunDir(sunAt(0.6)))
	m.Update()

	z := m.PreethamModel().Zenith()
	if got := m.SkyChroma(math.Vec3{X: 0.6, Z: 0.8}); got != (math.Vec2{X: z.X, Y: z.Y}) {
		t.Errorf("SkyChroma = %v, want %v", got, math.Vec2{X: z.X, Y: z.Y})
	}
}

func TestCIEStandardKind(t *testing.T) {
	m := sky.New(sky.WithSkyType(sky.CIEStandard), sky.WithSunDir(sunAt(0.5)))
	v := math.Vec3{X: 1, Z: 0.1}.Normalize()

	m.SetStandardKind(5)
	m.Update()
	// Type 5 is uniform.
	if got, lz := m.SkyLuminance(v), m.ZenithLuminance(); math32.Abs(got-lz) > 1e-3*lz {
		t.Errorf("uniform sky luminance = %v, want %v", got, lz)
	}

	m.SetStandardKind(1)
	m.Update()
	if got, lz := m.SkyLuminance(v), m.ZenithLuminance(); !(got < lz) {
		t.Errorf("overcast standard sky near the horizon = %v, want below zenith %v", got, lz)
	}
}

func TestTablesBuiltOnDemand(t *testing.T) {
	m := sky.New(sky.WithSunDir(sunAt(0.5)), sky.WithDataset(hosektest.Dataset()))
	m.Update()
	if m.SkyTable().Theta != ([table.Size]math.Vec3{}) {
		t.Error("Preetham update fitted a separable table")
	}

	m.SetSkyType(sky.HosekTable)
	m.Update()
	if m.SkyTable().Format != table.FormatXYZ || m.SkyTable().Theta == ([table.Size]math.Vec3{}) {
		t.Error("HosekTable update did not fit a Hosek table")
	}
	if m.BRDFTable().Theta[1] != ([table.Size]math.Vec3{}) {
		t.Error("HosekTable update built BRDF tables")
	}

	m.SetSkyType(sky.PreethamBRDF)
	m.Update()
	if m.SkyTable().Format != table.FormatxyY || m.BRDFTable().Theta[1] == ([table.Size]math.Vec3{}) {
		t.Error("PreethamBRDF update did not build Preetham BRDF tables")
	}
}

func TestTableVariantsTrackAnalytic(t *testing.T) {
	views := []math.Vec3{zenith, {X: 0.6, Z: 0.8}, {Y: 0.8, Z: 0.6}, math.Vec3{X: -1, Z: 0.2}.Normalize()}
	pairs := [][2]sky.SkyType{{sky.Preetham, sky.PreethamTable}, {sky.Hosek, sky.HosekTable}}

	for _, p := range pairs {
		analytic := sky.New(sky.WithSkyType(p[0]), sky.WithSunDir(sunAt(0.5)), sky.WithDataset(hosektest.Dataset()))
		tabulated := sky.New(sky.WithSkyType(p[1]), sky.WithSunDir(sunAt(0.5)), sky.WithDataset(hosektest.Dataset()))
		analytic.Update()
		tabulated.Update()

		for _, v := range views {
			want, got := analytic.SkyLuminance(v), tabulated.SkyLuminance(v)
			if math32.Abs(got-want) > 0.02*want {
				t.Errorf("%v view %v: luminance %v, analytic %v", p[1], v, got, want)
			}
		}
	}
}

func TestBelowHorizonLuminanceAndChroma(t *testing.T) {
	below := []math.Vec3{{Z: -1}, math.Vec3{X: 1, Z: -0.01}.Normalize()}
	for _, st := range sky.SkyTypes() {
		m := sky.New(sky.WithSkyType(st), sky.WithSunDir(sunAt(0.5)), sky.WithDataset(hosektest.Dataset()))
		m.Update()
		for _, v := range below {
			if got := m.SkyLuminance(v); got != 0 {
				t.Errorf("%v: SkyLuminance(%v) = %v, want 0", st, v, got)
			}
			if got := m.SkyChroma(v); got != (math.Vec2{}) {
				t.Errorf("%v: SkyChroma(%v) = %v, want 0", st, v, got)
			}
		}
	}
}

func TestSunRGB(t *testing.T) {
	m := sky.New(sky.WithSunDir(sunAt(-0.1)))
	if got := m.SunRGB(); got != (math.Vec3{}) {
		t.Errorf("SunRGB below horizon = %v, want 0", got)
	}
	m.SetSunDir(sunAt(0.7))
	if got := m.SunRGB(); !(got.X > 0 && got.Y > 0 && got.Z > 0) {
		t.Errorf("SunRGB above horizon = %v, want positive", got)
	}
}

func TestHosekAverageLuminance(t *testing.T) {
	m := sky.New(sky.WithSkyType(sky.Hosek), sky.WithSunDir(sunAt(0.5)), sky.WithDataset(hosektest.Dataset()))
	m.Update()
	if got, want := m.AverageLuminance(), m.HosekModel().Radiance().Y; got != want || !(got > 0) {
		t.Errorf("AverageLuminance() = %v, want %v", got, want)
	}

	m.SetDataset(nil)
	m.Update()
	if got := m.SkyRGB(zenith); got != (math.Vec3{}) {
		t.Errorf("Hosek without dataset = %v, want black", got)
	}
}

func TestTotality(t *testing.T) {
	suns := []math.Vec3{zenith, {Z: -1}, sunAt(0), sunAt(0.001), sunAt(-0.001), sunAt(0.3), sunAt(-0.3)}
	views := []math.Vec3{zenith, {Z: -1}, {X: 1}, {Y: -1}, {X: 0.6, Z: -0.8}, {X: 0.6, Z: 0.8}}

	for _, st := range sky.SkyTypes() {
		m := sky.New(sky.WithSkyType(st), sky.WithDataset(hosektest.Dataset()))
		for _, s := range suns {
			for _, turbidity := range []float32{0, 2.5, 12, 40} {
				for _, overcast := range []float32{0, 0.5, 1} {
					m.SetSunDir(s)
					m.SetTurbidity(turbidity)
					m.SetOvercast(overcast)
					m.SetRoughness(0.4)
					m.Update()
					for _, v := range append(views, s) {
						rgb := m.SkyRGB(v)
						lum := m.SkyLuminance(v)
						chroma := m.SkyChroma(v)
						if !rgb.IsFinite() || math32.IsNaN(lum) || math32.IsInf(lum, 0) || !chroma.IsFinite() {
							t.Fatalf("%v sun %v T %v o %v view %v: rgb %v lum %v chroma %v",
								st, s, turbidity, overcast, v, rgb, lum, chroma)
						}
					}
					if avg := m.AverageLuminance(); math32.IsNaN(avg) || math32.IsInf(avg, 0) {
						t.Fatalf("%v sun %v: AverageLuminance = %v", st, s, avg)
					}
				}
			}
		}
	}
}
