package sobol

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/forestlab/internal/dynamo"
)

var paramNames = []string{"a", "b", "c", "d"}

func evaluate(d *Design, f func(row []float64) float64) []float64 {
	outputs := make([]float64, d.Len())
	for i := 0; i < d.Len(); i++ {
		outputs[i] = f(d.Row(i))
	}
	return outputs
}

func TestEstimateSingleParameterModel(t *testing.T) {
	// output depends on exactly one parameter: its S and T approach 1,
	// all others approach 0
	a, b := testEnsembles(t, 4096)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	outputs := evaluate(d, func(row []float64) float64 { return 3 * row[2] })

	result, err := Estimate(d, outputs, paramNames)
	if err != nil {
		t.Fatal(err)
	}

	for i, idx := range result.Indices {
		if i == 2 {
			if math.Abs(idx.FirstOrder-1) > 0.1 {
				t.Errorf("S_%s = %.3f, expected ~1", paramNames[i], idx.FirstOrder)
			}
			if math.Abs(idx.TotalEffect-1) > 0.1 {
				t.Errorf("T_%s = %.3f, expected ~1", paramNames[i], idx.TotalEffect)
			}
		} else {
			if math.Abs(idx.FirstOrder) > 0.05 {
				t.Errorf("S_%s = %.3f, expected ~0", paramNames[i], idx.FirstOrder)
			}
			if math.Abs(idx.TotalEffect) > 0.05 {
				t.Errorf("T_%s = %.3f, expected ~0", paramNames[i], idx.TotalEffect)
			}
		}
	}
}

func TestEstimateAdditiveModel(t *testing.T) {
	// Y = sum c_i * x_i with unit-variance inputs: S_i = c_i^2 / sum c^2
	a, b := testEnsembles(t, 4096)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	coeff := []float64{1, 2, 3, 0.5}
	outputs := evaluate(d, func(row []float64) float64 {
		y := 0.0
		for i, c := range coeff {
			y += c * row[i]
		}
		return y
	})

	result, err := Estimate(d, outputs, paramNames)
	if err != nil {
		t.Fatal(err)
	}

	total := 0.0
	for _, c := range coeff {
		total += c * c
	}
	for i, idx := range result.Indices {
		expected := coeff[i] * coeff[i] / total
		if math.Abs(idx.FirstOrder-expected) > 0.08 {
			t.Errorf("S_%s = %.3f, expected %.3f", paramNames[i], idx.FirstOrder, expected)
		}
		// additive model: total effect matches first order
		if math.Abs(idx.TotalEffect-expected) > 0.08 {
			t.Errorf("T_%s = %.3f, expected %.3f", paramNames[i], idx.TotalEffect, expected)
		}
	}
}

func TestEstimateAdditiveModelWithOffset(t *testing.T) {
	// Y = 190 + sum c_i * x_i: a large output mean must not perturb
	// the first-order estimates, which share the additive model's
	// variance decomposition
	a, b := testEnsembles(t, 4096)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	coeff := []float64{1, 2, 3, 0.5}
	outputs := evaluate(d, func(row []float64) float64 {
		y := 190.0
		for i, c := range coeff {
			y += c * row[i]
		}
		return y
	})

	result, err := Estimate(d, outputs, paramNames)
	if err != nil {
		t.Fatal(err)
	}

	total := 0.0
	for _, c := range coeff {
		total += c * c
	}
	for i, idx := range result.Indices {
		expected := coeff[i] * coeff[i] / total
		if math.Abs(idx.FirstOrder-expected) > 0.08 {
			t.Errorf("S_%s = %.3f, expected %.3f", paramNames[i], idx.FirstOrder, expected)
		}
		if math.Abs(idx.TotalEffect-expected) > 0.08 {
			t.Errorf("T_%s = %.3f, expected %.3f", paramNames[i], idx.TotalEffect, expected)
		}
	}
}

func TestEstimateInteractionShowsInTotalEffect(t *testing.T) {
	// Y = x_0 * x_1 on zero-mean inputs: first-order indices vanish,
	// total-effect indices do not
	a, b := testEnsembles(t, 4096)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	outputs := evaluate(d, func(row []float64) float64 { return row[0] * row[1] })

	result, err := Estimate(d, outputs, paramNames)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(result.Indices[0].FirstOrder) > 0.1 {
		t.Errorf("S_a = %.3f, expected ~0 for pure interaction", result.Indices[0].FirstOrder)
	}
	if result.Indices[0].TotalEffect < 0.5 {
		t.Errorf("T_a = %.3f, expected large for pure interaction", result.Indices[0].TotalEffect)
	}
}

func TestEstimateDegenerateVariance(t *testing.T) {
	a, b := testEnsembles(t, 64)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	outputs := evaluate(d, func(row []float64) float64 { return 7.0 })

	_, err = Estimate(d, outputs, paramNames)
	if !errors.Is(err, dynamo.ErrDegenerateVariance) {
		t.Errorf("expected degenerate variance error, got %v", err)
	}
}

func TestEstimateDesignMismatch(t *testing.T) {
	a, b := testEnsembles(t, 64)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	outputs := make([]float64, d.Len()-1)
	_, err = Estimate(d, outputs, paramNames)
	if !errors.Is(err, dynamo.ErrDesignMismatch) {
		t.Errorf("expected design mismatch error, got %v", err)
	}

	outputs = make([]float64, d.Len())
	_, err = Estimate(d, outputs, []string{"a", "b"})
	if !errors.Is(err, dynamo.ErrDesignMismatch) {
		t.Errorf("expected design mismatch error for short names, got %v", err)
	}
}

func TestBootstrapBoundsBracketEstimate(t *testing.T) {
	a, b := testEnsembles(t, 1024)
	d, err := Build(a, b)
	if err != nil {
		t.Fatal(err)
	}

	outputs := evaluate(d, func(row []float64) float64 {
		return row[0] + 2*row[1] + row[2]*row[3]
	})

	result, err := EstimateWithBootstrap(d, outputs, paramNames, 200, 5)
	if err != nil {
		t.Fatal(err)
	}

	for i, idx := range result.Indices {
		if idx.FirstOrderLo > idx.FirstOrderHi {
			t.Errorf("S_%s bounds inverted: [%g, %g]", paramNames[i], idx.FirstOrderLo, idx.FirstOrderHi)
		}
		if idx.FirstOrder < idx.FirstOrderLo-0.05 || idx.FirstOrder > idx.FirstOrderHi+0.05 {
			t.Errorf("S_%s = %.3f outside bootstrap bounds [%g, %g]",
				paramNames[i], idx.FirstOrder, idx.FirstOrderLo, idx.FirstOrderHi)
		}
		if idx.TotalEffectLo > idx.TotalEffectHi {
			t.Errorf("T_%s bounds inverted", paramNames[i])
		}
	}
}

func TestBootstrapRejectsTinyNboot(t *testing.T) {
	a, b := testEnsembles(t, 64)
	d, _ := Build(a, b)
	outputs := evaluate(d, func(row []float64) float64 { return row[0] })

	_, err := EstimateWithBootstrap(d, outputs, paramNames, 3, 1)
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter for nboot=3, got %v", err)
	}
}
