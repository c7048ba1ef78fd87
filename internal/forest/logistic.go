package forest

import "github.com/san-kum/forestlab/internal/dynamo"

// Logistic is a single-regime comparison model, dC/dt = g*C*(1 - C/K).
// Threshold and r are ignored; kept in Params so the two models share
// one sampling configuration.
type Logistic struct {
	P Params
}

func NewLogistic(p Params) *Logistic {
	return &Logistic{P: p}
}

func (m *Logistic) Dim() int { return 1 }

func (m *Logistic) Derive(x dynamo.State, t float64) dynamo.State {
	c := x[0]
	return dynamo.State{m.P.G * c * (1 - c/m.P.K)}
}
