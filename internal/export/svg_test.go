package export

import (
	"strings"
	"testing"

	"github.com/san-kum/forestlab/internal/dynamo"
	"github.com/san-kum/forestlab/internal/sobol"
)

func TestSeriesToSVG(t *testing.T) {
	s := &dynamo.Series{
		Times:  []float64{0, 1, 2, 3},
		Values: []float64{10, 20, 30, 25},
	}

	svg := SeriesToSVG(s, 400, 200, "#00ff88")
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<path") {
		t.Error("missing svg elements")
	}
	if !strings.Contains(svg, "#00ff88") {
		t.Error("stroke color not applied")
	}

	if SeriesToSVG(&dynamo.Series{}, 400, 200, "#fff") != "" {
		t.Error("expected empty output for empty series")
	}
}

func TestIndicesToSVG(t *testing.T) {
	result := &sobol.Result{
		Parameters: []string{"r", "g"},
		Indices: []sobol.Indices{
			{FirstOrder: 0.4, TotalEffect: 0.5},
			{FirstOrder: -0.01, TotalEffect: 1.3}, // noise gets clamped for drawing
		},
	}

	svg := IndicesToSVG(result, 400, 240)
	if strings.Count(svg, "<rect") != 5 { // background + 2 bars per param
		t.Errorf("expected 5 rects, got %d", strings.Count(svg, "<rect"))
	}
	if !strings.Contains(svg, ">r</text>") || !strings.Contains(svg, ">g</text>") {
		t.Error("parameter labels missing")
	}
}
