package tuistyles

import "github.com/charmbracelet/lipgloss"

// Palette follows the calculator's navy and burgundy scheme
var (
	ColorPrimary   = lipgloss.Color("#1E3A8A") // navy
	ColorSecondary = lipgloss.Color("#991B1B") // burgundy
	ColorAccent    = lipgloss.Color("#EAB308")
	ColorSuccess   = lipgloss.Color("#16A34A")
	ColorDanger    = lipgloss.Color("#DC2626")
	ColorInfo      = lipgloss.Color("#2563EB")

	ColorForeground = lipgloss.Color("#E2E8F0")
	ColorMuted      = lipgloss.Color("#94A3B8")
	ColorBorder     = lipgloss.Color("#475569")

	// ColorInvested and ColorInterest colour the two parts of a balance
	ColorInvested = lipgloss.Color("#64748B")
	ColorInterest = lipgloss.Color("#3B82F6")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorSecondary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	HeroStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	HighlightCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(24)

	FocusedFieldLabelStyle = FieldLabelStyle.
				Foreground(ColorAccent).
				Bold(true)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorPrimary).
				Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// OutcomeStyle colours an outcome caption green when the goal is met
func OutcomeStyle(goalReached bool) lipgloss.Style {
	if goalReached {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// OutcomeIndicator returns a check or a cross
func OutcomeIndicator(goalReached bool) string {
	if goalReached {
		return "✓"
	}
	return "✗"
}
