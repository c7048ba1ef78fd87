package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/forestlab/internal/dynamo"
)

// PlotSeries renders a trajectory as an ASCII line chart.
func PlotSeries(s *dynamo.Series, caption string) string {
	if s == nil || s.Len() == 0 {
		return ""
	}
	if caption == "" {
		caption = fmt.Sprintf("carbon stock, t=%.0f..%.0f", s.Times[0], s.Times[s.Len()-1])
	}
	return asciigraph.Plot(s.Values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotOutputs renders the sorted output ensemble, a quick visual check
// of the output distribution's spread.
func PlotOutputs(outputs []float64, caption string) string {
	if len(outputs) == 0 {
		return ""
	}
	return asciigraph.Plot(outputs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
