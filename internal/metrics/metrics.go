package metrics

import (
	"math"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// Metric reduces a trajectory to one scalar. Observe is called once
// per grid point in time order; Value must not depend on anything but
// the observed series, so re-running a metric over the same series
// yields the same scalar.
type Metric interface {
	Name() string
	Observe(t, v float64)
	Value() float64
	Reset()
}

// Reduce runs a metric over a full series.
func Reduce(m Metric, s *dynamo.Series) float64 {
	m.Reset()
	for i := range s.Times {
		m.Observe(s.Times[i], s.Values[i])
	}
	return m.Value()
}

// Max tracks the maximum observed value, a proxy for the asymptotic
// forest size when the trajectory is still rising at the horizon.
type Max struct {
	max     float64
	samples int
}

func NewMax() *Max {
	return &Max{max: math.Inf(-1)}
}

func (m *Max) Name() string { return "max" }

func (m *Max) Observe(t, v float64) {
	m.samples++
	if v > m.max {
		m.max = v
	}
}

func (m *Max) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.max
}

func (m *Max) Reset() {
	m.max = math.Inf(-1)
	m.samples = 0
}

// ValueAt reports the value at the grid point nearest the target time
// by absolute difference. Ties go to the earlier point.
type ValueAt struct {
	target  float64
	best    float64
	bestGap float64
	samples int
}

func NewValueAt(target float64) *ValueAt {
	return &ValueAt{target: target, bestGap: math.Inf(1)}
}

func (m *ValueAt) Name() string { return "value_at" }

func (m *ValueAt) Observe(t, v float64) {
	m.samples++
	gap := math.Abs(t - m.target)
	if gap < m.bestGap {
		m.bestGap = gap
		m.best = v
	}
}

func (m *ValueAt) Value() float64 {
	if m.samples == 0 {
		return math.NaN()
	}
	return m.best
}

func (m *ValueAt) Reset() {
	m.best = 0
	m.bestGap = math.Inf(1)
	m.samples = 0
}
