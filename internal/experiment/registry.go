package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/forestlab/internal/dynamo"
	"github.com/san-kum/forestlab/internal/forest"
	"github.com/san-kum/forestlab/internal/integrators"
	"github.com/san-kum/forestlab/internal/metrics"
)

type Registry struct {
	models      map[string]func(forest.Params) dynamo.System
	integrators map[string]func() dynamo.Integrator
	metrics     map[string]func(target float64) metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(forest.Params) dynamo.System),
		integrators: make(map[string]func() dynamo.Integrator),
		metrics:     make(map[string]func(float64) metrics.Metric),
	}

	r.models["growth"] = func(p forest.Params) dynamo.System { return forest.NewGrowth(p) }
	r.models["logistic"] = func(p forest.Params) dynamo.System { return forest.NewLogistic(p) }

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	r.metrics["max"] = func(target float64) metrics.Metric { return metrics.NewMax() }
	r.metrics["value_at"] = func(target float64) metrics.Metric { return metrics.NewValueAt(target) }

	return r
}

func (r *Registry) GetModel(name string, p forest.Params) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(p), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string, target float64) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(target), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
