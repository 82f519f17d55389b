package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsky/internal/logger"
	"github.com/Faultbox/sunsky/internal/render"
	"github.com/Faultbox/sunsky/pkg/sky/sun"
)

func newRenderCmd(a *app) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sky at the configured site and time",
		Long: `Render writes one image per view: sky-hemi, sky-fisheye, sky-panoramic, or
sky-cube-0 to sky-cube-5 for the north, east, south, west, up and down faces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(a.cfg)
			if err != nil {
				return err
			}

			dir := s.sunDir(a.cfg.Site.LocalTime)
			elev, heading := sun.ElevationHeading(dir)
			logger.Info("sun position",
				zap.Float32("elevation", elev),
				zap.Float32("heading", heading),
				zap.Float32("zone", a.cfg.Site.Zone()))

			m := s.model(dir)
			settings, err := s.settings(m)
			if err != nil {
				return err
			}
			logger.Info("output",
				zap.Stringer("sky", m.ActiveSkyType()),
				zap.Float32("avg_luminance", m.AverageLuminance()),
				zap.Float32("weight", settings.Weight),
				zap.Float32("gamma", settings.Gamma))

			out, err := s.output(settings)
			if err != nil {
				return err
			}
			proj, err := render.ParseProjection(a.cfg.Output.Projection)
			if err != nil {
				return err
			}

			images := render.Render(m, proj, a.cfg.Output.Size, a.cfg.Output.Invert)
			for i, img := range images {
				paths, err := out.Write(imageName(proj, i), img)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
				}
			}

			if stats {
				st := render.ComputeStats(images[0])
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "avg: %8.2f, %8.2f, %8.2f\n", st.Avg.X, st.Avg.Y, st.Avg.Z)
				fmt.Fprintf(w, "max: %8.2f, %8.2f, %8.2f\n", st.Max.X, st.Max.Y, st.Max.Z)
				fmt.Fprintf(w, "dev: %8.2f, %8.2f, %8.2f\n", st.Dev.X, st.Dev.Y, st.Dev.Z)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "Print radiance statistics of the first image")
	return cmd
}

func imageName(p render.Projection, i int) string {
	switch p {
	case render.Fisheye:
		return "sky-fisheye"
	case render.Cube:
		return fmt.Sprintf("sky-cube-%d", i)
	case render.Panorama:
		return "sky-panoramic"
	default:
		return "sky-hemi"
	}
}
