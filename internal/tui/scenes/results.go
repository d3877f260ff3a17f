package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/rgehrsitz/fmgo/internal/tui/components"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

const defaultTableHeight = 8

// ResultsModel represents the results display scene
type ResultsModel struct {
	result *domain.CalculationResult
	locale domain.Locale
	table  table.Model
	width  int
	height int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)

	return &ResultsModel{table: t, width: 80, height: 24}
}

// SetResult shows a projection
func (m *ResultsModel) SetResult(result *domain.CalculationResult, locale domain.Locale) {
	m.result = result
	m.locale = locale.OrDefault()
	m.rebuildTable()
}

// Clear drops the shown projection
func (m *ResultsModel) Clear() {
	m.result = nil
	m.table.SetRows(nil)
}

// Result returns the shown projection, if any
func (m *ResultsModel) Result() *domain.CalculationResult { return m.result }

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.rebuildTable()
}

// Update scrolls the yearly table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SelectedYear returns the year index under the table cursor, or -1
func (m *ResultsModel) SelectedYear() int {
	if m.result == nil || len(m.result.YearlyLedger) == 0 {
		return -1
	}
	return m.result.YearlyLedger[m.table.Cursor()].YearIndex
}

func (m *ResultsModel) rebuildTable() {
	labels := output.LabelsFor(m.locale)
	colWidth := (m.width - 14) / 3
	if colWidth < 16 {
		colWidth = 16
	}
	// rows must be cleared before the columns shrink
	m.table.SetRows(nil)
	m.table.SetColumns([]table.Column{
		{Title: labels.Year, Width: 6},
		{Title: labels.InvestedYear, Width: colWidth},
		{Title: labels.InterestYear, Width: colWidth},
		{Title: labels.CumulativeTotal, Width: colWidth},
	})

	if m.result == nil {
		return
	}
	rows := make([]table.Row, 0, len(m.result.YearlyLedger))
	for _, y := range m.result.YearlyLedger {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", y.YearIndex),
			output.FormatMoney(y.InvestedThisYear, m.locale),
			output.FormatMoney(y.InterestThisYear, m.locale),
			output.FormatMoney(y.CumulativeTotal, m.locale),
		})
	}
	m.table.SetRows(rows)

	height := defaultTableHeight
	if len(rows) < height {
		height = len(rows) + 1
	}
	m.table.SetHeight(height)
	m.table.GotoTop()
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No projection yet. Fill in the form and press enter.")
	}
	labels := output.LabelsFor(m.locale)
	r := m.result
	breakdown := output.NewBreakdown(r)

	hero := lipgloss.JoinVertical(lipgloss.Center,
		tuistyles.HeroStyle.Render(output.Headline(r, m.locale)),
		tuistyles.SubtitleStyle.Render(r.SummaryMessage),
	)

	cardWidth := (m.width - 8) / 3
	if cardWidth < 22 {
		cardWidth = 22
	}
	barWidth := cardWidth - 4
	outcome := tuistyles.OutcomeStyle(r.GoalReached).Render(
		tuistyles.OutcomeIndicator(r.GoalReached) + " " + labels.OutcomeLabel(r.Outcome))
	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard(labels.FinalAmount, output.FormatMoney(r.FinalAmount, m.locale)).
			WithCaption(outcome).Highlighted().WithWidth(cardWidth),
		components.NewMetricCard(labels.TotalInvested, output.FormatMoney(r.TotalInvested, m.locale)).
			WithBar(components.ShareBar(breakdown.InvestedShare, barWidth, tuistyles.ColorInvested)).WithWidth(cardWidth),
		components.NewMetricCard(labels.TotalInterest, output.FormatMoney(r.TotalInterest, m.locale)).
			WithBar(components.ShareBar(breakdown.InterestShare, barWidth, tuistyles.ColorInterest)).WithWidth(cardWidth),
	}, 3)

	composition := tuistyles.SectionStyle.Render(labels.Composition) + "\n" +
		components.BreakdownBar(breakdown, barWidth*3, m.locale)

	totals := make([]float64, len(r.YearlyLedger))
	invested := make([]float64, len(r.YearlyLedger))
	ticks := make([]string, len(r.YearlyLedger))
	for i, y := range r.YearlyLedger {
		totals[i] = y.CumulativeTotal
		invested[i] = y.CumulativeInvested
		ticks[i] = fmt.Sprintf(labels.YearTick, y.YearIndex)
	}
	chart := components.NewAreaChart(labels.Evolution, m.locale).
		AddSeries(labels.CumulativeTotal, totals, '▒', tuistyles.ColorInterest).
		AddSeries(labels.TotalInvested, invested, '█', tuistyles.ColorInvested).
		WithLabels(ticks).
		WithSize(m.width-4, 10).
		Render()

	detail := tuistyles.SectionStyle.Render(labels.YearlyDetail) + "\n" + m.table.View()

	return lipgloss.JoinVertical(lipgloss.Left,
		hero,
		"",
		cards,
		"",
		composition,
		"",
		chart,
		"",
		detail,
		"",
		tuistyles.InfoStyle.Width(m.width-4).Render(labels.Disclaimer),
	)
}
