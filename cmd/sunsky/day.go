package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/sunsky/internal/logger"
	"github.com/Faultbox/sunsky/internal/render"
)

func newDayCmd(a *app) *cobra.Command {
	var start, end, step float32

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Render the sky through a day as numbered frames",
		Long: `Day renders the configured projection from start to end local time, one frame per
step, as sky-day-000, sky-day-001 and so on. Frames render in parallel; with --autoscale each
frame is exposed for its own sky.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(a.cfg)
			if err != nil {
				return err
			}
			proj, err := render.ParseProjection(a.cfg.Output.Projection)
			if err != nil {
				return err
			}

			times := render.DayTimes(start, end, step)
			if len(times) == 0 {
				return fmt.Errorf("no frames between %v and %v", start, end)
			}
			logger.Info("rendering day", zap.Int("frames", len(times)), zap.Stringer("projection", proj))

			var mu sync.Mutex
			out := cmd.OutOrStdout()

			return render.RenderFrames(cmd.Context(), times, a.cfg.Output.Workers, func(ctx context.Context, i int, t float32) error {
				m := s.model(s.sunDir(t))
				settings, err := s.settings(m)
				if err != nil {
					return err
				}
				o, err := s.output(settings)
				if err != nil {
					return err
				}

				for f, img := range render.Render(m, proj, a.cfg.Output.Size, a.cfg.Output.Invert) {
					name := fmt.Sprintf("sky-day-%03d", i)
					if proj == render.Cube {
						name = fmt.Sprintf("sky-day-%03d-%d", i, f)
					}
					paths, err := o.Write(name, img)
					if err != nil {
						return err
					}

					mu.Lock()
					for _, p := range paths {
						fmt.Fprintf(out, "wrote %s\n", p)
					}
					mu.Unlock()
				}
				logger.Debug("frame done", zap.Int("frame", i), zap.Float32("time", t), zap.Float32("weight", settings.Weight))
				return nil
			})
		},
	}

	cmd.Flags().Float32Var(&start, "start", render.DayStart, "First frame local time in hours")
	cmd.Flags().Float32Var(&end, "end", render.DayEnd, "Last frame local time in hours")
	cmd.Flags().Float32Var(&step, "step", render.DayStep, "Hours between frames")
	return cmd
}
