// Package sky combines the analytic, tabulated and empirical sky models behind one type.
//
// A Model is configured through setters, materialised by Update and then queried per
// direction. Directions are unit vectors in the sky frame: X east, Y north, Z up.
package sky

import (
	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/cie"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/hosek"
	"github.com/Faultbox/sunsky/pkg/sky/preetham"
	"github.com/Faultbox/sunsky/pkg/sky/sun"
	"github.com/Faultbox/sunsky/pkg/sky/table"
)

// DefaultTurbidity is the turbidity of a new Model.
const DefaultTurbidity = 2.5

// DefaultStandardKind is the CIE standard sky evaluated by CIEStandard unless set otherwise:
// clear, low luminance turbidity.
const DefaultStandardKind = 12

// Model is a sky with one active representation.
//
// Update is not safe for concurrent use. Queries only read state, so any number of goroutines
// may query a Model as long as no Update is running.
type Model struct {
	// Parameters, applied by Update.
	skyType      SkyType
	sunDir       math.Vec3
	turbidity    float32
	albedo       math.Vec3
	overcast     float32
	roughness    float32
	horizCrush   float32
	standardKind int
	primaries    colorspace.Primaries

	// Derived state.
	active   SkyType
	kind     int
	preetham preetham.Model
	hosek    hosek.Model
	table    table.Table
	brdf     table.BRDF
	zenithLz float32
}

// Option configures a new Model.
type Option func(*Model)

// WithSkyType sets the initial sky type.
func WithSkyType(t SkyType) Option { return func(m *Model) { m.skyType = t } }

// WithSunDir sets the initial sun direction.
func WithSunDir(dir math.Vec3) Option { return func(m *Model) { m.sunDir = dir } }

// WithTurbidity sets the initial turbidity.
func WithTurbidity(t float32) Option { return func(m *Model) { m.turbidity = t } }

// WithAlbedo sets the initial ground albedo.
func WithAlbedo(rgb math.Vec3) Option { return func(m *Model) { m.albedo = rgb } }

// WithOvercast sets the initial overcast factor.
func WithOvercast(o float32) Option { return func(m *Model) { m.overcast = o } }

// WithRoughness sets the initial BRDF roughness.
func WithRoughness(r float32) Option { return func(m *Model) { m.roughness = r } }

// WithHorizonCrush sets the initial horizon crush factor.
func WithHorizonCrush(c float32) Option { return func(m *Model) { m.horizCrush = c } }

// WithDataset supplies the Hosek-Wilkie coefficients.
func WithDataset(d *hosek.Dataset) Option { return func(m *Model) { m.hosek.Dataset = d } }

// WithPrimaries selects the RGB space of SkyRGB.
func WithPrimaries(p colorspace.Primaries) Option { return func(m *Model) { m.primaries = p } }

// WithStandardKind selects the CIE standard sky (1-15) evaluated by CIEStandard.
func WithStandardKind(kind int) Option { return func(m *Model) { m.standardKind = kind } }

// New returns a Preetham sky with turbidity 2.5 and the sun at the zenith. Call Update before
// querying it.
func New(opts ...Option) *Model {
	m := &Model{
		skyType:      Preetham,
		sunDir:       math.Vec3{Z: 1},
		turbidity:    DefaultTurbidity,
		standardKind: DefaultStandardKind,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetSkyType selects the representation used by queries after the next Update.
func (m *Model) SetSkyType(t SkyType) { m.skyType = t }

// SkyType returns the sky type that the next Update will activate.
func (m *Model) SkyType() SkyType { return m.skyType }

// ActiveSkyType returns the sky type queries currently evaluate.
func (m *Model) ActiveSkyType() SkyType { return m.active }

// SetSunDir sets the unit direction toward the sun.
func (m *Model) SetSunDir(dir math.Vec3) { m.sunDir = dir }

// SunDir returns the sun direction parameter.
func (m *Model) SunDir() math.Vec3 { return m.sunDir }

// SetTurbidity sets the atmospheric turbidity.
func (m *Model) SetTurbidity(t float32) { m.turbidity = t }

// Turbidity returns the turbidity parameter.
func (m *Model) Turbidity() float32 { return m.turbidity }

// SetAlbedo sets the linear RGB ground albedo. Only the Hosek-Wilkie model uses it.
func (m *Model) SetAlbedo(rgb math.Vec3) { m.albedo = rgb }

// Albedo returns the ground albedo parameter.
func (m *Model) Albedo() math.Vec3 { return m.albedo }

// SetOvercast sets how overcast the sky is, from 0 (clear) to 1.
func (m *Model) SetOvercast(o float32) { m.overcast = o }

// Overcast returns the overcast parameter.
func (m *Model) Overcast() float32 { return m.overcast }

// SetRoughness sets the BRDF roughness, from 0 (mirror) to 1 (diffuse). It is a query input and
// takes effect immediately.
func (m *Model) SetRoughness(r float32) { m.roughness = r }

// Roughness returns the roughness parameter.
func (m *Model) Roughness() float32 { return m.roughness }

// SetHorizonCrush scales the Preetham horizon gradient. 0 disables it.
func (m *Model) SetHorizonCrush(c float32) { m.horizCrush = c }

// HorizonCrush returns the horizon crush parameter.
func (m *Model) HorizonCrush() float32 { return m.horizCrush }

// SetStandardKind selects the CIE standard sky (1-15) used by CIEStandard.
func (m *Model) SetStandardKind(kind int) { m.standardKind = kind }

// StandardKind returns the CIE standard sky kind.
func (m *Model) StandardKind() int { return m.standardKind }

// SetDataset supplies the Hosek-Wilkie coefficients. Without them Hosek skies are black.
func (m *Model) SetDataset(d *hosek.Dataset) { m.hosek.Dataset = d }

// Dataset returns the Hosek-Wilkie dataset, if any.
func (m *Model) Dataset() *hosek.Dataset { return m.hosek.Dataset }

// SetPrimaries selects the RGB space of SkyRGB.
func (m *Model) SetPrimaries(p colorspace.Primaries) { m.primaries = p }

// Update recomputes all derived state from the current parameters. Both analytic models are
// always refreshed; the separable table and the BRDF tables only when the sky type needs them.
func (m *Model) Update() {
	m.preetham.Primaries = m.primaries
	m.hosek.Primaries = m.primaries
	m.table.Primaries = m.primaries
	m.brdf.Primaries = m.primaries

	m.preetham.Update(m.sunDir, m.turbidity, m.overcast, m.horizCrush)
	m.hosek.Update(m.sunDir, m.turbidity, m.albedo, m.overcast)
	m.zenithLz = m.preetham.Zenith().Z

	if m.skyType.NeedsTable() {
		if m.skyType.IsHosek() {
			m.table.FindHosek(&m.hosek)
		} else {
			m.table.FindPreetham(&m.preetham)
		}
	}
	if m.skyType.NeedsBRDF() {
		m.brdf.Find(&m.table)
	}
	m.active = m.skyType
	m.kind = min(max(m.standardKind, 1), cie.NumStandardSkies)
}

// SkyRGB returns the linear RGB sky radiance in direction v.
func (m *Model) SkyRGB(v math.Vec3) math.Vec3 {
	switch m.active {
	case Preetham:
		return m.preetham.SkyRGB(v)
	case Hosek:
		return m.hosek.SkyRGB(v)
	case PreethamTable, HosekTable:
		return m.table.SkyRGB(v)
	case PreethamBRDF, HosekBRDF:
		return m.brdf.SkyRGB(v, m.roughness)
	default:
		chroma := m.cieChroma()
		return m.preetham.Primaries.XyYToRGB(math.Vec3{X: chroma.X, Y: chroma.Y, Z: m.cieLuminance(v)})
	}
}

// SkyLuminance returns the sky luminance in direction v, in cd/m². It is zero below the horizon.
func (m *Model) SkyLuminance(v math.Vec3) float32 {
	if v.Z < 0 {
		return 0
	}
	switch m.active {
	case Preetham:
		return m.preetham.SkyLuminance(v)
	case Hosek:
		return m.hosek.SkyLuminance(v)
	case PreethamTable, HosekTable:
		return m.table.SkyXYZ(v).Y
	case PreethamBRDF, HosekBRDF:
		return m.brdf.SkyXYZ(v, m.roughness).Y
	default:
		return m.cieLuminance(v)
	}
}

// SkyChroma returns the xy chromaticity of the sky in direction v. It is zero below the horizon.
func (m *Model) SkyChroma(v math.Vec3) math.Vec2 {
	if v.Z < 0 {
		return math.Vec2{}
	}
	switch m.active {
	case Preetham:
		return m.preetham.SkyChroma(v)
	case Hosek:
		return m.hosek.SkyChroma(v)
	case PreethamTable, HosekTable:
		return colorspace.Chroma(m.table.SkyXYZ(v))
	case PreethamBRDF, HosekBRDF:
		return colorspace.Chroma(m.brdf.SkyXYZ(v, m.roughness))
	default:
		return m.cieChroma()
	}
}

// SunRGB returns the RGB luminance of the sun disc, zero once it has set.
func (m *Model) SunRGB() math.Vec3 {
	return sun.Radiance(m.sunDir.Z, m.turbidity)
}

// AverageLuminance returns a representative sky luminance for exposure: the zenith luminance for
// Preetham and CIE skies, the radiance scale for Hosek-Wilkie skies.
func (m *Model) AverageLuminance() float32 {
	if m.active.IsHosek() {
		return m.hosek.Radiance().Y
	}
	return m.zenithLz
}

// ZenithLuminance returns the zenith luminance the Preetham and CIE skies are anchored to.
func (m *Model) ZenithLuminance() float32 { return m.zenithLz }

// SkyTable returns the separable table of the last Update that needed one.
func (m *Model) SkyTable() *table.Table { return &m.table }

// BRDFTable returns the convolved tables of the last Update that needed them.
func (m *Model) BRDFTable() *table.BRDF { return &m.brdf }

// PreethamModel returns the Preetham sub-model.
func (m *Model) PreethamModel() *preetham.Model { return &m.preetham }

// HosekModel returns the Hosek-Wilkie sub-model.
func (m *Model) HosekModel() *hosek.Model { return &m.hosek }

func (m *Model) cieLuminance(v math.Vec3) float32 {
	sunDir := m.preetham.SunDir()
	switch m.active {
	case CIEClear:
		return cie.ClearLuminance(v, sunDir, m.zenithLz)
	case CIEOvercast:
		return cie.OvercastLuminance(v, m.zenithLz)
	case CIEPartlyCloudy:
		return cie.PartlyCloudyLuminance(v, sunDir, m.zenithLz)
	case CIEStandard:
		return cie.StandardLuminance(m.kind, v, sunDir, m.zenithLz)
	default:
		return 0
	}
}

// cieChroma returns the fixed chromaticity of the active CIE sky. Clear skies take the Preetham
// zenith colour; standard skies follow their group.
func (m *Model) cieChroma() math.Vec2 {
	zenith := m.preetham.Zenith()
	clear := math.Vec2{X: zenith.X, Y: zenith.Y}

	switch m.active {
	case CIEClear:
		return clear
	case CIEOvercast:
		return cie.OvercastChroma
	case CIEPartlyCloudy:
		return cie.PartlyCloudyChroma
	case CIEStandard:
		switch {
		case m.kind <= 5:
			return cie.OvercastChroma
		case m.kind <= 10:
			return cie.PartlyCloudyChroma
		default:
			return clear
		}
	default:
		return math.Vec2{}
	}
}
