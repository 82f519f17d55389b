// Package config handles sunsky tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	stdmath "math"
	"slices"

	"github.com/Faultbox/sunsky/pkg/sky"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
)

// Config holds all tool settings.
type Config struct {
	Sky     SkyConfig     `yaml:"sky"`
	Site    SiteConfig    `yaml:"site"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SkyConfig holds the sky model parameters.
type SkyConfig struct {
	Type         string     `yaml:"type"`
	Turbidity    float32    `yaml:"turbidity"`
	Albedo       [3]float32 `yaml:"albedo,flow"`
	Overcast     float32    `yaml:"overcast"`
	Roughness    float32    `yaml:"roughness"`
	HorizonCrush float32    `yaml:"horizon_crush"`
	StandardKind int        `yaml:"standard_kind"`
	Primaries    string     `yaml:"primaries"`
	Dataset      string     `yaml:"dataset"` // Hosek-Wilkie coefficients, YAML/JSON or C header
}

// SiteConfig holds the observer's location and local time.
type SiteConfig struct {
	Latitude  float32 `yaml:"latitude"`
	Longitude float32 `yaml:"longitude"`
	// TimeZone is in hours east of UTC. Nil estimates it from the longitude.
	TimeZone  *float32 `yaml:"time_zone,omitempty"`
	DayOfYear int      `yaml:"day_of_year"`
	LocalTime float32  `yaml:"local_time"` // hours
}

// OutputConfig holds image and table output settings.
type OutputConfig struct {
	Dir         string  `yaml:"dir"`
	Projection  string  `yaml:"projection"`
	Format      string  `yaml:"format"`
	Size        int     `yaml:"size"`
	ToneMap     string  `yaml:"tone_map"`
	Weight      float32 `yaml:"weight"` // 0 picks the default for the sky type
	Gamma       float32 `yaml:"gamma"`
	AutoScale   bool    `yaml:"auto_scale"`
	Invert      bool    `yaml:"invert"`
	HDR         bool    `yaml:"hdr"` // also write a PFM next to each image
	Workers     int     `yaml:"workers"`
	Compression string  `yaml:"compression"` // exported tables: none, zstd or snappy
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Accepted values of the output settings.
var (
	Projections  = []string{"hemisphere", "fisheye", "cube", "panorama"}
	Formats      = []string{"png", "tga", "tiff", "pfm"}
	ToneMaps     = []string{"linear", "exponential", "reinhard"}
	Compressions = []string{"none", "zstd", "snappy"}
)

// Default returns a Config with sensible default values: a clear midsummer noon in London.
func Default() *Config {
	return &Config{
		Sky: SkyConfig{
			Type:         sky.Preetham.String(),
			Turbidity:    sky.DefaultTurbidity,
			StandardKind: sky.DefaultStandardKind,
			Primaries:    colorspace.SRGB.String(),
		},
		Site: SiteConfig{
			Latitude:  51.5,
			Longitude: 0,
			DayOfYear: 172,
			LocalTime: 12,
		},
		Output: OutputConfig{
			Dir:         ".",
			Projection:  "hemisphere",
			Format:      "png",
			Size:        256,
			ToneMap:     "linear",
			Gamma:       2.2,
			Compression: "none",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Zone returns the configured time zone, or the longitude rounded to the nearest 15° meridian.
func (s SiteConfig) Zone() float32 {
	if s.TimeZone != nil {
		return *s.TimeZone
	}
	return float32(stdmath.Round(float64(s.Longitude) / 15))
}

// Validate reports every setting that is out of range or unknown.
func (c *Config) Validate() error {
	var errs []error

	if _, err := sky.ParseSkyType(c.Sky.Type); err != nil {
		errs = append(errs, err)
	}
	if _, err := colorspace.ParsePrimaries(c.Sky.Primaries); err != nil {
		errs = append(errs, err)
	}
	if c.Sky.Overcast < 0 || c.Sky.Overcast > 1 {
		errs = append(errs, fmt.Errorf("overcast %v outside [0, 1]", c.Sky.Overcast))
	}
	if c.Sky.Roughness < 0 || c.Sky.Roughness > 1 {
		errs = append(errs, fmt.Errorf("roughness %v outside [0, 1]", c.Sky.Roughness))
	}
	if c.Sky.StandardKind < 1 || c.Sky.StandardKind > 15 {
		errs = append(errs, fmt.Errorf("standard sky kind %d outside 1-15", c.Sky.StandardKind))
	}

	if c.Site.Latitude < -90 || c.Site.Latitude > 90 {
		errs = append(errs, fmt.Errorf("latitude %v outside [-90, 90]", c.Site.Latitude))
	}
	if c.Site.Longitude < -180 || c.Site.Longitude > 180 {
		errs = append(errs, fmt.Errorf("longitude %v outside [-180, 180]", c.Site.Longitude))
	}
	if c.Site.DayOfYear < 0 || c.Site.DayOfYear > 366 {
		errs = append(errs, fmt.Errorf("day of year %d outside 0-366", c.Site.DayOfYear))
	}

	if !slices.Contains(Projections, c.Output.Projection) {
		errs = append(errs, fmt.Errorf("unknown projection %q", c.Output.Projection))
	}
	if !slices.Contains(Formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("unknown image format %q", c.Output.Format))
	}
	if !slices.Contains(ToneMaps, c.Output.ToneMap) {
		errs = append(errs, fmt.Errorf("unknown tone map %q", c.Output.ToneMap))
	}
	if !slices.Contains(Compressions, c.Output.Compression) {
		errs = append(errs, fmt.Errorf("unknown compression %q", c.Output.Compression))
	}
	if c.Output.Size <= 0 {
		errs = append(errs, fmt.Errorf("image size %d must be positive", c.Output.Size))
	}

	return errors.Join(errs...)
}
