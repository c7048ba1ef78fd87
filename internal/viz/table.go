package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/forestlab/internal/sobol"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	paramStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88"))

	ciStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffcc00"))
)

const barWidth = 24

// IndexTable renders the sensitivity result as a styled table with a
// unicode bar per index.
func IndexTable(result *sobol.Result, withCI bool) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %-8s %-*s %-8s %s", "param", "S", barWidth, "", "T", "")))
	sb.WriteString("\n")

	for i, name := range result.Parameters {
		idx := result.Indices[i]
		line := fmt.Sprintf("%s %s %s %s %s",
			paramStyle.Render(fmt.Sprintf("%-10s", name)),
			valueStyle.Render(fmt.Sprintf("%7.3f", idx.FirstOrder)),
			barStyle.Render(bar(idx.FirstOrder)),
			valueStyle.Render(fmt.Sprintf("%7.3f", idx.TotalEffect)),
			barStyle.Render(bar(idx.TotalEffect)),
		)
		sb.WriteString(line)
		sb.WriteString("\n")

		if withCI {
			sb.WriteString(ciStyle.Render(fmt.Sprintf("           S 95%%: [%6.3f, %6.3f]   T 95%%: [%6.3f, %6.3f]",
				idx.FirstOrderLo, idx.FirstOrderHi, idx.TotalEffectLo, idx.TotalEffectHi)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(ciStyle.Render(fmt.Sprintf("output variance: %.4g", result.Variance)))
	return sb.String()
}

// bar maps an index in [0,1] to a fixed-width unicode bar. Negative
// noise renders empty.
func bar(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
