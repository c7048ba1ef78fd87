package sobol

import (
	"fmt"

	"github.com/san-kum/forestlab/internal/dynamo"
	"github.com/san-kum/forestlab/internal/sample"
)

// Design is the Saltelli cross-sampling matrix built from two
// independent base ensembles A and B of n rows each. Block layout:
//
//	rows [0, n)            A
//	rows [(1+i)n, (2+i)n)  A with column i taken from B, for i in 0..p-1
//	rows [(p+1)n, (p+2)n)  B
//
// giving n*(p+2) rows total. Read-only after Build.
type Design struct {
	n    int
	p    int
	rows [][]float64
}

// Build constructs the design. A and B must have identical shape and
// must come from independent draws for the index estimators to be
// unbiased; Build cannot check independence, only shape.
func Build(a, b *sample.Ensemble) (*Design, error) {
	n, p := a.N(), a.P()
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("%w: empty base ensemble", dynamo.ErrInvalidParameter)
	}
	if b.N() != n || b.P() != p {
		return nil, fmt.Errorf("%w: base ensembles differ in shape (%dx%d vs %dx%d)",
			dynamo.ErrInvalidParameter, n, p, b.N(), b.P())
	}

	rows := make([][]float64, 0, n*(p+2))
	for j := 0; j < n; j++ {
		rows = append(rows, clone(a.Rows[j]))
	}
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			row := clone(a.Rows[j])
			row[i] = b.Rows[j][i]
			rows = append(rows, row)
		}
	}
	for j := 0; j < n; j++ {
		rows = append(rows, clone(b.Rows[j]))
	}

	return &Design{n: n, p: p, rows: rows}, nil
}

func clone(row []float64) []float64 {
	c := make([]float64, len(row))
	copy(c, row)
	return c
}

func (d *Design) Len() int      { return len(d.rows) }
func (d *Design) BaseSize() int { return d.n }
func (d *Design) Params() int   { return d.p }

func (d *Design) Row(i int) []float64 { return d.rows[i] }

// block offsets into an aligned output vector

func (d *Design) aIndex(j int) int     { return j }
func (d *Design) abIndex(i, j int) int { return (1+i)*d.n + j }
func (d *Design) bIndex(j int) int     { return (d.p+1)*d.n + j }
