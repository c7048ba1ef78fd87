package sobol

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/forestlab/internal/dynamo"
)

const (
	ciLo = 0.025
	ciHi = 0.975
)

// EstimateWithBootstrap computes the point estimates and percentile
// confidence bounds from nboot resamples of the base-sample index set.
// Each resample reindexes the A, B, and AB_i blocks consistently, so
// a replicate is itself a valid (smaller-variance) Saltelli estimate.
func EstimateWithBootstrap(d *Design, outputs []float64, names []string, nboot int, seed uint64) (*Result, error) {
	result, err := Estimate(d, outputs, names)
	if err != nil {
		return nil, err
	}
	if nboot <= 0 {
		return result, nil
	}
	if nboot < 10 {
		return nil, fmt.Errorf("%w: nboot=%d too small for percentile bounds", dynamo.ErrInvalidParameter, nboot)
	}

	rng := rand.New(rand.NewSource(seed))
	repS := make([][]float64, d.p)
	repT := make([][]float64, d.p)
	for i := range repS {
		repS[i] = make([]float64, 0, nboot)
		repT[i] = make([]float64, 0, nboot)
	}

	idx := make([]int, d.n)
	for b := 0; b < nboot; b++ {
		for j := range idx {
			idx[j] = rng.Intn(d.n)
		}

		mean, variance := pooledStats(d, outputs, idx)
		if variance < varianceFloor {
			// A degenerate resample carries no information; skip it.
			continue
		}
		for i := 0; i < d.p; i++ {
			s, t := estimateOne(d, outputs, idx, i, mean, variance)
			repS[i] = append(repS[i], s)
			repT[i] = append(repT[i], t)
		}
	}

	for i := 0; i < d.p; i++ {
		if len(repS[i]) == 0 {
			continue
		}
		sort.Float64s(repS[i])
		sort.Float64s(repT[i])
		result.Indices[i].FirstOrderLo = stat.Quantile(ciLo, stat.Empirical, repS[i], nil)
		result.Indices[i].FirstOrderHi = stat.Quantile(ciHi, stat.Empirical, repS[i], nil)
		result.Indices[i].TotalEffectLo = stat.Quantile(ciLo, stat.Empirical, repT[i], nil)
		result.Indices[i].TotalEffectHi = stat.Quantile(ciHi, stat.Empirical, repT[i], nil)
	}
	return result, nil
}
