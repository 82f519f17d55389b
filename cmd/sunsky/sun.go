package main

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/Faultbox/sunsky/internal/render"
	"github.com/Faultbox/sunsky/pkg/math"
	"github.com/Faultbox/sunsky/pkg/sky/sun"
)

func newSunCmd(a *app) *cobra.Command {
	var now bool

	cmd := &cobra.Command{
		Use:   "sun",
		Short: "Print the sun position and colour at the configured site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(a.cfg)
			if err != nil {
				return err
			}
			site := a.cfg.Site
			w := cmd.OutOrStdout()

			var dir math.Vec3
			if now {
				t := time.Now()
				dir = sun.DirectionAt(t, float64(site.Latitude), float64(site.Longitude))
				fmt.Fprintf(w, "Time: %s, latitude: %g, longitude: %g\n", t.Format(time.RFC3339), site.Latitude, site.Longitude)
			} else {
				dir = s.sunDir(site.LocalTime)
				fmt.Fprintf(w, "Time: %g, time zone: %g, day: %d, latitude: %g, longitude: %g\n",
					site.LocalTime, site.Zone(), site.DayOfYear, site.Latitude, site.Longitude)
			}

			elev, heading := sun.ElevationHeading(dir)
			fmt.Fprintf(w, "Sun direction      : %.4f %.4f %.4f\n", dir.X, dir.Y, dir.Z)
			fmt.Fprintf(w, "Sun elevation      : %g\n", elev)
			fmt.Fprintf(w, "Sun compass heading: %g\n", heading)
			theta, phi := sun.ThetaPhi(dir)
			fmt.Fprintf(w, "Sun theta, phi     : %.4f %.4f\n", theta, phi)

			m := s.model(dir)
			rgb := m.SunRGB()
			fmt.Fprintf(w, "Sun luminance      : %.4g %.4g %.4g\n", rgb.X, rgb.Y, rgb.Z)
			fmt.Fprintf(w, "Sky average        : %g\n", m.AverageLuminance())

			// Colour swatches, normalised to the brightest channel.
			fmt.Fprintf(w, "Sun colour         : %s\n", swatch(rgb))
			fmt.Fprintf(w, "Zenith colour      : %s\n", swatch(m.SkyRGB(math.Vec3{Z: 1})))
			return nil
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "Use the current time instead of the configured day and time")
	return cmd
}

// swatch returns the display hex colour of rgb scaled so its largest channel is one.
func swatch(rgb math.Vec3) string {
	peak := max(rgb.X, rgb.Y, rgb.Z)
	if peak <= 0 {
		return colorful.Color{}.Hex()
	}
	s := render.Settings{ToneMap: render.Linear, Weight: 1 / peak, Gamma: render.SRGBGamma}
	return s.Color(rgb).Hex()
}
