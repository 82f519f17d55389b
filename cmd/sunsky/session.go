package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sunsky/internal/config"
	"github.com/Faultbox/sunsky/internal/logger"
	"github.com/Faultbox/sunsky/internal/render"
	"github.com/Faultbox/sunsky/internal/tablefile"
	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky"
	"github.com/Faultbox/sunsky/pkg/sky/colorspace"
	"github.com/Faultbox/sunsky/pkg/sky/hosek"
	"github.com/Faultbox/sunsky/pkg/sky/sun"
)

// session is a configured sky ready to sample. The dataset is shared read-only between the
// models of concurrent frames.
type session struct {
	cfg       *config.Config
	skyType   sky.SkyType
	primaries colorspace.Primaries
	dataset   *hosek.Dataset
}

func newSession(cfg *config.Config) (*session, error) {
	st, err := sky.ParseSkyType(cfg.Sky.Type)
	if err != nil {
		return nil, err
	}
	prims, err := colorspace.ParsePrimaries(cfg.Sky.Primaries)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, skyType: st, primaries: prims}

	if cfg.Sky.Dataset != "" {
		if s.dataset, err = loadDataset(cfg.Sky.Dataset); err != nil {
			return nil, err
		}
	} else if st.IsHosek() {
		logger.Warn("no Hosek-Wilkie dataset configured, the sky will be black",
			zap.String("sky", st.String()))
	}
	return s, nil
}

// loadDataset reads a Hosek-Wilkie dataset, optionally zstd or snappy compressed.
func loadDataset(path string) (*hosek.Dataset, error) {
	rc, err := tablefile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	defer rc.Close()

	d, err := hosek.ReadDataset(rc, tablefile.TrimCompression(path))
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %w", path, err)
	}
	logger.Debug("loaded dataset", zap.String("path", path))
	return d, nil
}

// sunDir returns the sun direction at the configured site on its day at the given local time.
func (s *session) sunDir(localTime float32) math.Vec3 {
	site := s.cfg.Site
	return sun.Direction(localTime, site.Zone(), site.DayOfYear, site.Latitude, site.Longitude)
}

// model returns an updated sky for the sun direction.
func (s *session) model(sunDir math.Vec3) *sky.Model {
	c := s.cfg.Sky
	m := sky.New(
		sky.WithSkyType(s.skyType),
		sky.WithSunDir(sunDir),
		sky.WithTurbidity(c.Turbidity),
		sky.WithAlbedo(math.Vec3{X: c.Albedo[0], Y: c.Albedo[1], Z: c.Albedo[2]}),
		sky.WithOvercast(c.Overcast),
		sky.WithRoughness(c.Roughness),
		sky.WithHorizonCrush(c.HorizonCrush),
		sky.WithStandardKind(c.StandardKind),
		sky.WithPrimaries(s.primaries),
		sky.WithDataset(s.dataset),
	)
	m.Update()
	return m
}

// settings returns the display settings for m, auto scaling the weight when configured.
func (s *session) settings(m *sky.Model) (render.Settings, error) {
	o := s.cfg.Output
	tm, err := render.ParseToneMap(o.ToneMap)
	if err != nil {
		return render.Settings{}, err
	}

	w := o.Weight
	switch {
	case o.AutoScale:
		w = render.AutoWeight(m.AverageLuminance())
	case w <= 0:
		w = render.DefaultWeight(s.skyType)
	}
	return render.Settings{ToneMap: tm, Weight: w, Gamma: o.Gamma}, nil
}

// output returns the image writer for the configured directory and format.
func (s *session) output(settings render.Settings) (*render.Output, error) {
	f, err := render.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &render.Output{
		Dir:      s.cfg.Output.Dir,
		Format:   f,
		Settings: settings,
		HDR:      s.cfg.Output.HDR,
	}, nil
}
