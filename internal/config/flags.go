package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Faultbox/sunsky/pkg/sky"
)

// Flags holds command-line overrides. Only flags set explicitly on the command line are
// applied, so file values survive unset flags.
type Flags struct {
	fs *pflag.FlagSet

	config   string
	debug    bool
	logFile  string
	skyType  string
	turb     float32
	albedo   []float32
	overcast float32
	rough    float32
	crush    float32
	kind     int
	prims    string
	dataset  string

	lat, lon, tz float32
	day          int
	hour         float32

	outDir     string
	projection string
	format     string
	size       int
	toneMap    string
	weight     float32
	gamma      float32
	autoScale  bool
	invert     bool
	hdr        bool
	workers    int
	compress   string
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.config, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "Also log to this rotated file")

	fs.StringVarP(&f.skyType, "sky", "s", "", skyUsage())
	fs.Float32VarP(&f.turb, "turbidity", "t", 0, "Atmospheric turbidity")
	fs.Float32SliceVarP(&f.albedo, "albedo", "a", nil, "Ground albedo, one value or r,g,b")
	fs.Float32Var(&f.overcast, "overcast", 0, "Overcast blend in [0, 1]")
	fs.Float32VarP(&f.rough, "roughness", "r", 0, "BRDF roughness in [0, 1]")
	fs.Float32Var(&f.crush, "crush", 0, "Horizon crush for the Preetham sky")
	fs.IntVar(&f.kind, "kind", 0, "CIE standard sky kind, 1-15")
	fs.StringVar(&f.prims, "primaries", "", "RGB primaries (srgb, monitor)")
	fs.StringVar(&f.dataset, "dataset", "", "Hosek-Wilkie dataset file")

	fs.Float32Var(&f.lat, "lat", 0, "Site latitude in degrees")
	fs.Float32Var(&f.lon, "lon", 0, "Site longitude in degrees, east positive")
	fs.Float32Var(&f.tz, "tz", 0, "Time zone in hours east of UTC")
	fs.IntVarP(&f.day, "day", "d", 0, "Day of year")
	fs.Float32Var(&f.hour, "time", 0, "Local time in hours")

	fs.StringVarP(&f.outDir, "out", "o", "", "Output directory")
	fs.StringVarP(&f.projection, "projection", "p", "", "Image projection (hemisphere, fisheye, cube, panorama)")
	fs.StringVarP(&f.format, "format", "f", "", "Image format (png, tga, tiff, pfm)")
	fs.IntVar(&f.size, "size", 0, "Image size in pixels")
	fs.StringVar(&f.toneMap, "tonemap", "", "Tone map (linear, exponential, reinhard or l, ex, rh)")
	fs.Float32VarP(&f.weight, "weight", "w", 0, "Luminance weight before tone mapping")
	fs.Float32VarP(&f.gamma, "gamma", "g", 0, "Output gamma, negative for the sRGB curve, 0 for linear")
	fs.BoolVar(&f.autoScale, "autoscale", false, "Derive the weight from the average sky luminance")
	fs.BoolVarP(&f.invert, "invert", "i", false, "Render the lower hemisphere")
	fs.BoolVar(&f.hdr, "hdr", false, "Also write a PFM image")
	fs.IntVarP(&f.workers, "workers", "j", 0, "Concurrent frames, 0 for one per CPU")
	fs.StringVarP(&f.compress, "compress", "z", "", "Compression of exported tables (none, zstd, snappy)")

	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	return f.config
}

// Apply copies every explicitly set flag into cfg.
func (f *Flags) Apply(cfg *Config) error {
	set := f.fs.Changed

	if set("debug") && f.debug {
		cfg.Logging.Level = "debug"
	}
	if set("log-file") {
		cfg.Logging.LogFile = f.logFile
	}

	if set("sky") {
		cfg.Sky.Type = f.skyType
	}
	if set("turbidity") {
		cfg.Sky.Turbidity = f.turb
	}
	if set("albedo") {
		switch len(f.albedo) {
		case 1:
			cfg.Sky.Albedo = [3]float32{f.albedo[0], f.albedo[0], f.albedo[0]}
		case 3:
			cfg.Sky.Albedo = [3]float32{f.albedo[0], f.albedo[1], f.albedo[2]}
		default:
			return fmt.Errorf("--albedo takes 1 or 3 values, got %d", len(f.albedo))
		}
	}
	if set("overcast") {
		cfg.Sky.Overcast = f.overcast
	}
	if set("roughness") {
		cfg.Sky.Roughness = f.rough
	}
	if set("crush") {
		cfg.Sky.HorizonCrush = f.crush
	}
	if set("kind") {
		cfg.Sky.StandardKind = f.kind
	}
	if set("primaries") {
		cfg.Sky.Primaries = f.prims
	}
	if set("dataset") {
		cfg.Sky.Dataset = f.dataset
	}

	if set("lat") {
		cfg.Site.Latitude = f.lat
	}
	if set("lon") {
		cfg.Site.Longitude = f.lon
	}
	if set("tz") {
		tz := f.tz
		cfg.Site.TimeZone = &tz
	}
	if set("day") {
		cfg.Site.DayOfYear = f.day
	}
	if set("time") {
		cfg.Site.LocalTime = f.hour
	}

	if set("out") {
		cfg.Output.Dir = f.outDir
	}
	if set("projection") {
		cfg.Output.Projection = f.projection
	}
	if set("format") {
		cfg.Output.Format = f.format
	}
	if set("size") {
		cfg.Output.Size = f.size
	}
	if set("tonemap") {
		cfg.Output.ToneMap = expandToneMap(f.toneMap)
	}
	if set("weight") {
		cfg.Output.Weight = f.weight
	}
	if set("gamma") {
		cfg.Output.Gamma = f.gamma
	}
	if set("autoscale") {
		cfg.Output.AutoScale = f.autoScale
	}
	if set("invert") {
		cfg.Output.Invert = f.invert
	}
	if set("hdr") {
		cfg.Output.HDR = f.hdr
	}
	if set("workers") {
		cfg.Output.Workers = f.workers
	}
	if set("compress") {
		cfg.Output.Compression = f.compress
	}
	return nil
}

func expandToneMap(s string) string {
	switch s {
	case "l":
		return "linear"
	case "ex":
		return "exponential"
	case "rh":
		return "reinhard"
	}
	return s
}

// skyUsage lists the accepted sky types by short name.
func skyUsage() string {
	var names []string
	for _, t := range sky.SkyTypes() {
		names = append(names, t.Short())
	}
	return "Sky type, full or short name (" + strings.Join(names, ", ") + ")"
}
