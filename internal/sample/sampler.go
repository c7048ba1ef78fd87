package sample

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// Marginal is an independent normal prior for one parameter.
type Marginal struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Ensemble is n draws of p parameters, row-major.
type Ensemble struct {
	Rows [][]float64
}

func (e *Ensemble) N() int { return len(e.Rows) }

func (e *Ensemble) P() int {
	if len(e.Rows) == 0 {
		return 0
	}
	return len(e.Rows[0])
}

// Column returns parameter column i across all rows.
func (e *Ensemble) Column(i int) []float64 {
	col := make([]float64, len(e.Rows))
	for j, row := range e.Rows {
		col[j] = row[i]
	}
	return col
}

// Sampler draws parameter ensembles from independent normal marginals.
// Draws are not truncated: a negative draw passes through and is
// caught, if at all, by model validation downstream.
type Sampler struct {
	marginals []Marginal
	dists     []distuv.Normal
}

// New seeds one random source shared by all marginals, so a fixed seed
// reproduces the full draw sequence.
func New(marginals []Marginal, seed uint64) (*Sampler, error) {
	if len(marginals) == 0 {
		return nil, fmt.Errorf("%w: no marginals given", dynamo.ErrInvalidParameter)
	}
	src := rand.NewSource(seed)
	dists := make([]distuv.Normal, len(marginals))
	for i, m := range marginals {
		if m.StdDev < 0 {
			return nil, fmt.Errorf("%w: marginal %q has negative std dev %g", dynamo.ErrInvalidParameter, m.Name, m.StdDev)
		}
		dists[i] = distuv.Normal{Mu: m.Mean, Sigma: m.StdDev, Src: src}
	}
	return &Sampler{marginals: marginals, dists: dists}, nil
}

// Draw produces n fresh rows. Successive calls continue the same
// random stream, so two Draw calls give independent ensembles rather
// than copies.
func (s *Sampler) Draw(n int) (*Ensemble, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample size %d must be positive", dynamo.ErrInvalidParameter, n)
	}
	rows := make([][]float64, n)
	for j := 0; j < n; j++ {
		row := make([]float64, len(s.dists))
		for i := range s.dists {
			row[i] = s.dists[i].Rand()
		}
		rows[j] = row
	}
	return &Ensemble{Rows: rows}, nil
}

func (s *Sampler) Marginals() []Marginal { return s.marginals }
