package forest

import (
	"fmt"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// Params is one sampled point in parameter space. Immutable once drawn.
type Params struct {
	R         float64 // exponential growth rate (1/yr)
	G         float64 // saturating accumulation rate (kg/yr)
	K         float64 // carrying capacity (kg)
	Threshold float64 // canopy closure carbon stock (kg)
}

// Validate rejects parameter sets the model cannot evaluate. A
// non-positive carrying capacity makes the saturating term undefined
// and is refused; a non-positive threshold is fine, the stand simply
// starts in the saturating phase.
func (p Params) Validate() error {
	if p.K <= 0 {
		return fmt.Errorf("%w: carrying capacity K=%g must be positive", dynamo.ErrInvalidParameter, p.K)
	}
	return nil
}

func (p Params) Vector() []float64 {
	return []float64{p.R, p.G, p.K, p.Threshold}
}

// FromVector maps a design-matrix row back to named parameters,
// in the fixed column order {r, g, K, threshold}.
func FromVector(v []float64) (Params, error) {
	if len(v) != NumParams {
		return Params{}, fmt.Errorf("%w: expected %d parameters, got %d", dynamo.ErrInvalidParameter, NumParams, len(v))
	}
	return Params{R: v[0], G: v[1], K: v[2], Threshold: v[3]}, nil
}

const NumParams = 4

// Names lists the parameters in design-matrix column order.
var Names = [NumParams]string{"r", "g", "K", "threshold"}
