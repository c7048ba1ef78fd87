package sim

import (
	"context"
	"math"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// Options tune how the driver advances between grid points.
type Options struct {
	Tolerance float64 // local error tolerance for adaptive integrators
	InitDt    float64 // first substep guess
	MinDt     float64 // floor before the driver gives up refining
}

func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-6,
		InitDt:    0.1,
		MinDt:     1e-8,
	}
}

// Trace integrates sys from x0 at grid[0] through every grid point,
// returning one value per point. The grid carries the reporting times;
// the integrator substeps freely between them (adaptively when it
// supports it), with substeps clamped to land exactly on grid points.
func Trace(ctx context.Context, sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, grid dynamo.Grid, opts Options) (*dynamo.Series, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	// Fill unset fields individually; a caller tuning only InitDt
	// keeps its value.
	def := DefaultOptions()
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.InitDt <= 0 {
		opts.InitDt = def.InitDt
	}
	if opts.MinDt <= 0 {
		opts.MinDt = def.MinDt
	}

	series := &dynamo.Series{
		Times:  make([]float64, 0, len(grid)),
		Values: make([]float64, 0, len(grid)),
	}

	x := x0.Clone()
	t := grid[0]
	series.Times = append(series.Times, t)
	series.Values = append(series.Values, x[0])

	adaptive, isAdaptive := integ.(dynamo.AdaptiveIntegrator)
	dt := opts.InitDt

	for step := 1; step < len(grid); step++ {
		select {
		case <-ctx.Done():
			return series, ctx.Err()
		default:
		}

		target := grid[step]
		for t < target {
			h := math.Min(dt, target-t)

			var next dynamo.State
			if isAdaptive {
				var hNext float64
				var err error
				next, hNext, err = adaptive.StepAdaptive(sys, x, t, h, opts.Tolerance)
				if err != nil {
					return series, dynamo.SimError{Time: t, Step: step, Message: err.Error()}
				}
				dt = math.Max(hNext, opts.MinDt)
			} else {
				next = integ.Step(sys, x, t, h)
			}

			if !next.IsValid() {
				return series, dynamo.SimError{Time: t, Step: step, Message: "invalid state (NaN/Inf)"}
			}

			x = next
			t += h
		}
		t = target

		series.Times = append(series.Times, t)
		series.Values = append(series.Values, x[0])
	}

	return series, nil
}
