package dynamo

import "fmt"

// Grid is an ordered set of time points at which a trajectory is
// reported. Construction enforces strictly increasing times.
type Grid []float64

func NewGrid(start, stop float64, count int) (Grid, error) {
	if count < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", count)
	}
	if stop <= start {
		return nil, fmt.Errorf("grid stop %g must exceed start %g", stop, start)
	}
	g := make(Grid, count)
	step := (stop - start) / float64(count-1)
	for i := range g {
		g[i] = start + float64(i)*step
	}
	g[count-1] = stop
	return g, nil
}

func (g Grid) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("grid needs at least 2 points, got %d", len(g))
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("grid times must be strictly increasing at index %d (%g <= %g)", i, g[i], g[i-1])
		}
	}
	return nil
}
