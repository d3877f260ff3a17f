package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

const yAxisWidth = 8

// DataSeries is one filled band of the chart
type DataSeries struct {
	Name   string
	Points []float64
	Fill   rune
	Color  lipgloss.Color
}

// AreaChart plots series as filled columns, later series drawn in front.
// Series are expected to be nested (each one below the previous), like a
// balance and the part of it that was invested.
type AreaChart struct {
	Title  string
	Series []*DataSeries
	Labels []string // x-axis labels, one per point
	Width  int
	Height int
	Locale domain.Locale
}

// NewAreaChart creates a chart with a default size
func NewAreaChart(title string, locale domain.Locale) *AreaChart {
	return &AreaChart{
		Title:  title,
		Width:  60,
		Height: 12,
		Locale: locale,
	}
}

// AddSeries adds a band to the chart
func (c *AreaChart) AddSeries(name string, points []float64, fill rune, color lipgloss.Color) *AreaChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Fill: fill, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *AreaChart) WithLabels(labels []string) *AreaChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *AreaChart) WithSize(width, height int) *AreaChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *AreaChart) Render() string {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.SectionStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	content.WriteString(c.renderGrid())
	content.WriteString(c.renderLegend())
	return content.String()
}

func (c *AreaChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 4 {
		w = 4
	}
	return w
}

func (c *AreaChart) maxValue() float64 {
	maxVal := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p > maxVal && !math.IsInf(p, 0) {
				maxVal = p
			}
		}
	}
	if maxVal == 0 {
		return 1
	}
	return maxVal
}

// columnHeights maps a series onto plot columns, in rows filled from the bottom
func (c *AreaChart) columnHeights(points []float64, width int, maxVal float64) []int {
	heights := make([]int, width)
	if len(points) == 0 {
		return heights
	}
	for x := 0; x < width; x++ {
		idx := 0
		if width > 1 {
			idx = int(math.Round(float64(x) / float64(width-1) * float64(len(points)-1)))
		}
		h := int(math.Round(points[idx] / maxVal * float64(c.Height)))
		if h < 0 {
			h = 0
		}
		if h > c.Height {
			h = c.Height
		}
		heights[x] = h
	}
	return heights
}

func (c *AreaChart) renderGrid() string {
	width := c.plotWidth()
	maxVal := c.maxValue()

	heights := make([][]int, len(c.Series))
	for i, s := range c.Series {
		heights[i] = c.columnHeights(s.Points, width, maxVal)
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for row := c.Height; row >= 1; row-- {
		label := ""
		if row == c.Height || row == c.Height/2 {
			label = output.FormatCompact(maxVal*float64(row)/float64(c.Height), c.Locale)
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")

		for x := 0; x < width; x++ {
			cell := " "
			for i := len(c.Series) - 1; i >= 0; i-- {
				if heights[i][x] >= row {
					s := c.Series[i]
					cell = lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Fill))
					break
				}
			}
			out.WriteString(cell)
		}
		out.WriteString("\n")
	}

	out.WriteString(axisStyle.Render("0"))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(width))
		out.WriteString("\n")
	}
	return out.String()
}

// renderXAxisLabels places the first, middle and last label under the plot
func (c *AreaChart) renderXAxisLabels(width int) string {
	line := []rune(strings.Repeat(" ", width))
	place := func(label string, at int) {
		r := []rune(label)
		if at+len(r) > width {
			at = width - len(r)
		}
		if at < 0 {
			at = 0
		}
		for i, ch := range r {
			if at+i < width {
				line[at+i] = ch
			}
		}
	}
	n := len(c.Labels)
	place(c.Labels[0], 0)
	if n > 2 {
		mid := c.Labels[n/2]
		place(mid, width/2-len([]rune(mid))/2)
	}
	if n > 1 {
		place(c.Labels[n-1], width)
	}
	return strings.Repeat(" ", yAxisWidth+3) + lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(string(line))
}

func (c *AreaChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Fill))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return tuistyles.InfoStyle.Render(strings.Join(items, "  •  "))
}
