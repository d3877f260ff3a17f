package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

// MetricCard displays one figure with a label and an optional caption or share bar
type MetricCard struct {
	Label     string
	Value     string
	Caption   string
	Bar       string
	Highlight bool
	Width     int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithCaption adds a line under the value
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

// WithBar adds a share bar under the value
func (m *MetricCard) WithBar(bar string) *MetricCard {
	m.Bar = bar
	return m
}

// Highlighted draws the card with the primary border
func (m *MetricCard) Highlighted() *MetricCard {
	m.Highlight = true
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)
	if m.Bar != "" {
		content += "\n" + m.Bar
	}
	if m.Caption != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Caption)
	}

	style := tuistyles.CardStyle
	if m.Highlight {
		style = tuistyles.HighlightCardStyle
	}
	return style.Width(m.Width).Render(content)
}

// MetricGrid renders cards side by side, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
