package experiment

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/san-kum/forestlab/internal/dynamo"
	"github.com/san-kum/forestlab/internal/forest"
	"github.com/san-kum/forestlab/internal/metrics"
	"github.com/san-kum/forestlab/internal/sample"
	"github.com/san-kum/forestlab/internal/sim"
	"github.com/san-kum/forestlab/internal/sobol"
)

// Scenario is the boundary input of one analysis run.
type Scenario struct {
	Model      string
	Integrator string
	Metric     string
	// MetricTarget is the target time for the value_at metric; ignored
	// by max.
	MetricTarget float64

	N     int
	Seed  uint64
	NBoot int

	C0        float64
	GridStart float64
	GridStop  float64
	GridCount int

	Marginals []sample.Marginal

	// Workers bounds the fan-out over design rows; 0 means NumCPU.
	Workers int
}

func (s Scenario) Validate() error {
	if s.N <= 0 {
		return fmt.Errorf("%w: sample size N=%d", dynamo.ErrInvalidParameter, s.N)
	}
	if len(s.Marginals) != forest.NumParams {
		return fmt.Errorf("%w: expected %d marginals, got %d", dynamo.ErrInvalidParameter, forest.NumParams, len(s.Marginals))
	}
	return nil
}

// Progress reports batch advancement to an optional observer.
type Progress struct {
	Done  int
	Total int
}

// Analysis runs a full sensitivity study: sample, build the design,
// simulate every row, reduce, estimate.
type Analysis struct {
	scenario Scenario
	registry *Registry
	onStep   func(Progress)
}

func NewAnalysis(scenario Scenario, registry *Registry) *Analysis {
	return &Analysis{scenario: scenario, registry: registry}
}

// OnProgress registers a progress observer. The callback is invoked
// from worker goroutines and must be safe for concurrent use.
func (a *Analysis) OnProgress(fn func(Progress)) { a.onStep = fn }

// Outcome carries the estimated indices plus the raw output vector for
// downstream reporting.
type Outcome struct {
	Result  *sobol.Result
	Outputs []float64
	Design  *sobol.Design
	Series  *dynamo.Series // nominal-parameter trajectory
}

// Run executes the batch. A single failed row (invalid draw or
// integration failure) fails the whole analysis: partial output
// vectors would silently misalign the variance attribution.
func (a *Analysis) Run(ctx context.Context) (*Outcome, error) {
	sc := a.scenario
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	grid, err := dynamo.NewGrid(sc.GridStart, sc.GridStop, sc.GridCount)
	if err != nil {
		return nil, err
	}

	sampler, err := sample.New(sc.Marginals, sc.Seed)
	if err != nil {
		return nil, err
	}
	ensA, err := sampler.Draw(sc.N)
	if err != nil {
		return nil, err
	}
	ensB, err := sampler.Draw(sc.N)
	if err != nil {
		return nil, err
	}

	design, err := sobol.Build(ensA, ensB)
	if err != nil {
		return nil, err
	}

	outputs := make([]float64, design.Len())
	if err := a.runRows(ctx, design, grid, outputs); err != nil {
		return nil, err
	}

	names := make([]string, len(sc.Marginals))
	for i, m := range sc.Marginals {
		names[i] = m.Name
		if names[i] == "" {
			names[i] = forest.Names[i]
		}
	}

	result, err := sobol.EstimateWithBootstrap(design, outputs, names, sc.NBoot, sc.Seed+1)
	if err != nil {
		return nil, err
	}

	series, err := a.nominalTrace(ctx, grid)
	if err != nil {
		return nil, err
	}

	return &Outcome{Result: result, Outputs: outputs, Design: design, Series: series}, nil
}

// runRows fans the design rows out over a bounded worker pool. Each
// worker owns its integrator and metric (both carry scratch state) and
// writes into its own row slot, so concatenation order is positional.
func (a *Analysis) runRows(ctx context.Context, design *sobol.Design, grid dynamo.Grid, outputs []float64) error {
	workers := a.scenario.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > design.Len() {
		workers = design.Len()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make(chan int)
	var wg sync.WaitGroup
	var done atomic.Int64
	var firstErr error
	var errOnce sync.Once

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			integ, err := a.registry.GetIntegrator(a.scenario.Integrator)
			if err != nil {
				fail(err)
				return
			}
			metric, err := a.registry.GetMetric(a.scenario.Metric, a.scenario.MetricTarget)
			if err != nil {
				fail(err)
				return
			}

			for row := range rows {
				out, err := a.runRow(ctx, design.Row(row), integ, metric, grid)
				if err != nil {
					fail(fmt.Errorf("design row %d: %w", row, err))
					return
				}
				outputs[row] = out

				if a.onStep != nil {
					a.onStep(Progress{Done: int(done.Add(1)), Total: design.Len()})
				}
			}
		}()
	}

feed:
	for row := 0; row < design.Len(); row++ {
		select {
		case rows <- row:
		case <-ctx.Done():
			break feed
		}
	}
	close(rows)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (a *Analysis) runRow(ctx context.Context, row []float64, integ dynamo.Integrator, metric metrics.Metric, grid dynamo.Grid) (float64, error) {
	params, err := forest.FromVector(row)
	if err != nil {
		return 0, err
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}

	model, err := a.registry.GetModel(a.scenario.Model, params)
	if err != nil {
		return 0, err
	}

	series, err := sim.Trace(ctx, model, integ, dynamo.State{a.scenario.C0}, grid, sim.DefaultOptions())
	if err != nil {
		return 0, err
	}

	return metrics.Reduce(metric, series), nil
}

// RunNominal integrates a single trajectory at the marginal means and
// reduces it with the scenario's metric. No design is built.
func (a *Analysis) RunNominal(ctx context.Context) (*dynamo.Series, float64, error) {
	sc := a.scenario
	if len(sc.Marginals) != forest.NumParams {
		return nil, 0, fmt.Errorf("%w: expected %d marginals, got %d", dynamo.ErrInvalidParameter, forest.NumParams, len(sc.Marginals))
	}
	grid, err := dynamo.NewGrid(sc.GridStart, sc.GridStop, sc.GridCount)
	if err != nil {
		return nil, 0, err
	}
	series, err := a.nominalTrace(ctx, grid)
	if err != nil {
		return nil, 0, err
	}
	metric, err := a.registry.GetMetric(sc.Metric, sc.MetricTarget)
	if err != nil {
		return nil, 0, err
	}
	return series, metrics.Reduce(metric, series), nil
}

// nominalTrace integrates one trajectory at the marginal means, used
// for plots alongside the indices.
func (a *Analysis) nominalTrace(ctx context.Context, grid dynamo.Grid) (*dynamo.Series, error) {
	means := make([]float64, len(a.scenario.Marginals))
	for i, m := range a.scenario.Marginals {
		means[i] = m.Mean
	}
	params, err := forest.FromVector(means)
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	model, err := a.registry.GetModel(a.scenario.Model, params)
	if err != nil {
		return nil, err
	}
	integ, err := a.registry.GetIntegrator(a.scenario.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.Trace(ctx, model, integ, dynamo.State{a.scenario.C0}, grid, sim.DefaultOptions())
}
