package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

// BreakdownBar renders invested vs interest as one coloured bar with a legend
func BreakdownBar(b output.Breakdown, width int, locale domain.Locale) string {
	labels := output.LabelsFor(locale)
	bar := b.Bar(width)

	filled := strings.Count(bar, "█")
	invested := lipgloss.NewStyle().Foreground(tuistyles.ColorInvested).Render(strings.Repeat("█", filled))
	interest := lipgloss.NewStyle().Foreground(tuistyles.ColorInterest).Render(strings.Repeat("█", width-filled))

	legend := fmt.Sprintf("%s %s %s   %s %s %s   %s %s",
		lipgloss.NewStyle().Foreground(tuistyles.ColorInvested).Render("■"),
		labels.InvestedShare,
		output.FormatPercentage(b.InvestedShare, 1, locale),
		lipgloss.NewStyle().Foreground(tuistyles.ColorInterest).Render("■"),
		labels.InterestShare,
		output.FormatPercentage(b.InterestShare, 1, locale),
		labels.Return,
		output.FormatPercentage(b.InterestShare, 0, locale),
	)
	return invested + interest + "\n" + tuistyles.InfoStyle.Render(legend)
}

// ShareBar renders a thin progress style bar for a share in percent
func ShareBar(share float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := int(share/100*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("━", width-filled))
}
