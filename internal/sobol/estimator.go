package sobol

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// varianceFloor below which outputs are treated as constant and
// indices as undefined.
const varianceFloor = 1e-12

// Indices holds the estimated sensitivity of one parameter. Small
// negative values are finite-sample noise from the Monte-Carlo
// estimators and are reported as-is.
type Indices struct {
	FirstOrder  float64
	TotalEffect float64

	// Bootstrap percentile bounds; populated only when a bootstrap
	// was requested.
	FirstOrderLo, FirstOrderHi   float64
	TotalEffectLo, TotalEffectHi float64
}

// Result is one Indices per parameter, in design column order.
type Result struct {
	Parameters []string
	Indices    []Indices
	Variance   float64
}

// Estimate computes first-order and total-effect indices from an
// output vector positionally aligned to the design. First-order uses
// the Saltelli (2010) estimator mean(B*(AB_i - A))/V on outputs
// centered on the pooled A and B mean; without centering the B factor
// injects mean-scaled noise into S_i whenever the outputs sit far
// from zero. Total-effect uses the Jansen estimator
// mean((A - AB_i)^2)/(2V), which is difference-based and needs no
// centering. V is the output variance over the A and B blocks
// together.
func Estimate(d *Design, outputs []float64, names []string) (*Result, error) {
	if len(outputs) != d.Len() {
		return nil, fmt.Errorf("%w: %d outputs for %d design rows", dynamo.ErrDesignMismatch, len(outputs), d.Len())
	}
	if len(names) != d.p {
		return nil, fmt.Errorf("%w: %d names for %d parameters", dynamo.ErrDesignMismatch, len(names), d.p)
	}

	identity := make([]int, d.n)
	for j := range identity {
		identity[j] = j
	}

	mean, variance := pooledStats(d, outputs, identity)
	if variance < varianceFloor {
		return nil, fmt.Errorf("%w: variance %g over %d outputs", dynamo.ErrDegenerateVariance, variance, len(outputs))
	}

	result := &Result{
		Parameters: names,
		Indices:    make([]Indices, d.p),
		Variance:   variance,
	}
	for i := 0; i < d.p; i++ {
		s, t := estimateOne(d, outputs, identity, i, mean, variance)
		result.Indices[i] = Indices{FirstOrder: s, TotalEffect: t}
	}
	return result, nil
}

// estimateOne computes (S_i, T_i) over the base samples selected by
// idx, which is the identity for a plain estimate and a resample for
// bootstrap replicates. mean and variance are the pooled A/B moments
// over the same idx.
func estimateOne(d *Design, outputs []float64, idx []int, i int, mean, variance float64) (float64, float64) {
	sumS := 0.0
	sumT := 0.0
	for _, j := range idx {
		ya := outputs[d.aIndex(j)] - mean
		yb := outputs[d.bIndex(j)] - mean
		yab := outputs[d.abIndex(i, j)] - mean

		sumS += yb * (yab - ya)
		diff := ya - yab
		sumT += diff * diff
	}
	n := float64(len(idx))
	return (sumS / n) / variance, (sumT / (2 * n)) / variance
}

func pooledStats(d *Design, outputs []float64, idx []int) (mean, variance float64) {
	pool := make([]float64, 0, 2*len(idx))
	for _, j := range idx {
		pool = append(pool, outputs[d.aIndex(j)], outputs[d.bIndex(j)])
	}
	return stat.MeanVariance(pool, nil)
}
