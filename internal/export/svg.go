package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/forestlab/internal/dynamo"
	"github.com/san-kum/forestlab/internal/sobol"
)

// SeriesToSVG renders a trajectory as an SVG polyline.
func SeriesToSVG(s *dynamo.Series, width, height int, strokeColor string) string {
	if s == nil || s.Len() < 2 {
		return ""
	}

	minX, maxX := s.Times[0], s.Times[s.Len()-1]
	minY, maxY := s.Values[0], s.Values[0]
	for _, v := range s.Values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range s.Times {
		x := (s.Times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (s.Values[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// IndicesToSVG renders first-order and total-effect indices as paired
// bars, one pair per parameter.
func IndicesToSVG(result *sobol.Result, width, height int) string {
	if result == nil || len(result.Indices) == 0 {
		return ""
	}

	p := len(result.Indices)
	groupW := float64(width) / float64(p)
	barW := groupW * 0.32
	chartH := float64(height) - 30 // leave room for labels

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, idx := range result.Indices {
		x0 := float64(i) * groupW
		sb.WriteString(svgBar(x0+groupW*0.15, idx.FirstOrder, barW, chartH, "#00ccff"))
		sb.WriteString(svgBar(x0+groupW*0.53, idx.TotalEffect, barW, chartH, "#ffcc00"))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#cccccc" font-family="monospace" font-size="12" text-anchor="middle">%s</text>
`, x0+groupW/2, chartH+20, result.Parameters[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func svgBar(x, v, w, chartH float64, color string) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	h := v * chartH
	return fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, chartH-h, w, h, color)
}
