package forest

import "github.com/san-kum/forestlab/internal/dynamo"

// Growth is the two-regime carbon accumulation model. Below the canopy
// closure threshold the stand grows exponentially; at and above it the
// accumulation saturates toward the carrying capacity:
//
//	dC/dt = r*C            if C < threshold
//	dC/dt = g*(1 - C/K)    if C >= threshold
//
// The derivative is continuous in t but jumps at C == threshold.
type Growth struct {
	P Params
}

func NewGrowth(p Params) *Growth {
	return &Growth{P: p}
}

func (m *Growth) Dim() int { return 1 }

func (m *Growth) Derive(x dynamo.State, t float64) dynamo.State {
	c := x[0]
	if c < m.P.Threshold {
		return dynamo.State{m.P.R * c}
	}
	return dynamo.State{m.P.G * (1 - c/m.P.K)}
}
