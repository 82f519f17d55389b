package render

import (
	"context"
	"runtime"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"
)

// Day sequence defaults: early morning to late evening in six minute steps.
const (
	DayStart = 6
	DayEnd   = 21
	DayStep  = 0.1
)

// DayTimes returns the local times from start to end inclusive, step hours apart. Times are
// computed from the step count so they do not drift.
func DayTimes(start, end, step float32) []float32 {
	if step <= 0 || end < start {
		return nil
	}
	n := int(math32.Floor((end-start)/step+1e-4)) + 1
	times := make([]float32, n)
	for i := range times {
		times[i] = start + float32(i)*step
	}
	return times
}

// FrameFunc renders and stores frame i at local time t.
type FrameFunc func(ctx context.Context, i int, t float32) error

// RenderFrames calls fn for every time on up to workers goroutines, or one per CPU when workers
// is not positive. The first error cancels the remaining frames.
func RenderFrames(ctx context.Context, times []float32, workers int, fn FrameFunc) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, t := range times {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i, t)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
