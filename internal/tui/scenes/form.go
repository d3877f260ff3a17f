package scenes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/rgehrsitz/fmgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

// Field identifies one row of the form
type Field int

const (
	FieldMode Field = iota
	FieldInitialValue
	FieldContribution
	FieldYears
	FieldRate
	FieldPeriod
)

// text inputs, indexed by field
const (
	inputInitial = iota
	inputContribution
	inputYears
	inputRate
	inputCount
)

var formKeys = struct {
	Next, Prev, Left, Right, Toggle, Calculate, Clear key.Binding
}{
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Toggle:    key.NewBinding(key.WithKeys(" ")),
	Calculate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Clear:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear")),
}

// FormModel is the input scene: two selectors and the numeric fields
type FormModel struct {
	mode   domain.CalculationMode
	period domain.RatePeriod
	inputs [inputCount]textinput.Model
	focus  int // index into VisibleFields
	locale domain.Locale
	width  int
	height int
}

// NewFormModel creates a form holding the calculator defaults
func NewFormModel(locale domain.Locale) *FormModel {
	m := &FormModel{locale: locale.OrDefault()}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 18
		ti.Width = 18
		m.inputs[i] = ti
	}
	m.inputs[inputYears].CharLimit = 3
	m.SetRequest(domain.DefaultRequest())
	return m
}

// SetRequest fills the form from a request
func (m *FormModel) SetRequest(req domain.CalculationRequest) {
	m.mode = req.Mode
	if !m.mode.IsValid() {
		m.mode = domain.ModeTimeToTarget
	}
	m.period = req.RatePeriod
	if !m.period.IsValid() {
		m.period = domain.PeriodAnnual
	}
	years := req.TargetYears
	if years <= 0 {
		years = domain.DefaultRequest().TargetYears
	}
	m.inputs[inputInitial].SetValue(formatAmount(req.InitialValue, m.locale))
	m.inputs[inputContribution].SetValue(formatAmount(req.MonthlyContribution, m.locale))
	m.inputs[inputYears].SetValue(strconv.Itoa(years))
	m.inputs[inputRate].SetValue(formatAmount(req.InterestRate, m.locale))
	m.focus = 0
	m.syncFocus()
}

// SetLocale switches the form labels and rewrites the amount fields in the
// new locale's decimal notation
func (m *FormModel) SetLocale(locale domain.Locale) {
	locale = locale.OrDefault()
	if locale == m.locale {
		return
	}
	for _, i := range []int{inputInitial, inputContribution, inputRate} {
		v := config.ParseAmount(m.inputs[i].Value(), m.locale)
		m.inputs[i].SetValue(formatAmount(v, locale))
	}
	m.locale = locale
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the selected calculation mode
func (m *FormModel) Mode() domain.CalculationMode { return m.mode }

// Period returns the selected rate period
func (m *FormModel) Period() domain.RatePeriod { return m.period }

// Focused returns the field holding the cursor
func (m *FormModel) Focused() Field {
	return m.VisibleFields()[m.focus]
}

// VisibleFields lists the rows shown for the current mode
func (m *FormModel) VisibleFields() []Field {
	if m.mode == domain.ModeContributionForTerm {
		return []Field{FieldMode, FieldInitialValue, FieldYears, FieldRate, FieldPeriod}
	}
	return []Field{FieldMode, FieldInitialValue, FieldContribution, FieldRate, FieldPeriod}
}

// Value returns the raw text of a numeric field
func (m *FormModel) Value(f Field) string {
	if idx, ok := inputFor(f); ok {
		return m.inputs[idx].Value()
	}
	return ""
}

// Request reads the form into a request. Amounts are parsed leniently, so a
// blank or garbled field counts as zero.
func (m *FormModel) Request() domain.CalculationRequest {
	req := domain.CalculationRequest{
		Mode:         m.mode,
		RatePeriod:   m.period,
		InitialValue: config.ParseAmount(m.inputs[inputInitial].Value(), m.locale),
		InterestRate: config.ParseAmount(m.inputs[inputRate].Value(), m.locale),
	}
	switch m.mode {
	case domain.ModeContributionForTerm:
		req.TargetYears = int(config.ParseAmount(m.inputs[inputYears].Value(), m.locale))
	default:
		req.MonthlyContribution = config.ParseAmount(m.inputs[inputContribution].Value(), m.locale)
	}
	return req
}

// Clear zeroes every numeric field, keeping both selectors
func (m *FormModel) Clear() {
	for i := range m.inputs {
		m.inputs[i].SetValue("0")
	}
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, formKeys.Calculate):
		req := m.Request()
		return m, func() tea.Msg { return tuimsg.CalculateRequestedMsg{Request: req} }

	case key.Matches(keyMsg, formKeys.Clear):
		m.Clear()
		return m, func() tea.Msg { return tuimsg.FormClearedMsg{} }

	case key.Matches(keyMsg, formKeys.Next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(keyMsg, formKeys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	switch m.Focused() {
	case FieldMode:
		if key.Matches(keyMsg, formKeys.Left, formKeys.Right, formKeys.Toggle) {
			m.toggleMode()
		}
		return m, nil
	case FieldPeriod:
		if key.Matches(keyMsg, formKeys.Left, formKeys.Right, formKeys.Toggle) {
			m.togglePeriod()
		}
		return m, nil
	}

	if keyMsg.Type == tea.KeySpace || (keyMsg.Type == tea.KeyRunes && !numericRunes(keyMsg.Runes)) {
		return m, nil
	}
	return m, m.updateInput(msg)
}

func (m *FormModel) updateInput(msg tea.Msg) tea.Cmd {
	idx, ok := inputFor(m.Focused())
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return cmd
}

func (m *FormModel) moveFocus(delta int) {
	n := len(m.VisibleFields())
	m.focus = (m.focus + delta + n) % n
	m.syncFocus()
}

func (m *FormModel) toggleMode() {
	if m.mode == domain.ModeTimeToTarget {
		m.mode = domain.ModeContributionForTerm
	} else {
		m.mode = domain.ModeTimeToTarget
	}
}

func (m *FormModel) togglePeriod() {
	if m.period == domain.PeriodAnnual {
		m.period = domain.PeriodMonthly
	} else {
		m.period = domain.PeriodAnnual
	}
}

// syncFocus gives the text cursor to the focused field only
func (m *FormModel) syncFocus() {
	focused, hasInput := inputFor(m.Focused())
	for i := range m.inputs {
		if hasInput && i == focused {
			m.inputs[i].Focus()
			m.inputs[i].CursorEnd()
			continue
		}
		m.inputs[i].Blur()
	}
}

// View renders the form scene
func (m *FormModel) View() string {
	labels := output.LabelsFor(m.locale)

	rows := make([]string, 0, len(m.VisibleFields()))
	for i, f := range m.VisibleFields() {
		labelStyle := tuistyles.FieldLabelStyle
		if i == m.focus {
			labelStyle = tuistyles.FocusedFieldLabelStyle
		}
		rows = append(rows, labelStyle.Render(m.fieldLabel(f, labels))+m.fieldView(f, labels))
	}

	hint := tuistyles.InfoStyle.Render(strings.Join([]string{
		"enter " + strings.ToLower(labels.Calculate),
		"ctrl+r " + strings.ToLower(labels.Clear),
		"tab ↑↓",
		"←→ " + strings.ToLower(labels.Mode),
	}, " • "))

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.ActiveBorderStyle.Render(strings.Join(rows, "\n\n")),
		"",
		hint,
	)
}

func (m *FormModel) fieldLabel(f Field, labels output.Labels) string {
	switch f {
	case FieldMode:
		return labels.Mode
	case FieldInitialValue:
		return labels.InitialValue
	case FieldContribution:
		return labels.MonthlyContribution
	case FieldYears:
		return labels.TargetYears
	case FieldRate:
		return labels.InterestRate
	default:
		return ""
	}
}

func (m *FormModel) fieldView(f Field, labels output.Labels) string {
	switch f {
	case FieldMode:
		return options(
			[]string{labels.ModeTimeToTarget, labels.ModeContribution},
			boolIndex(m.mode == domain.ModeContributionForTerm),
		)
	case FieldPeriod:
		return options(
			[]string{labels.PerYear, labels.PerMonth},
			boolIndex(m.period == domain.PeriodMonthly),
		)
	}
	idx, _ := inputFor(f)
	prefix := ""
	switch f {
	case FieldInitialValue, FieldContribution:
		prefix = currencySymbol(m.locale) + " "
	case FieldRate:
		return m.inputs[idx].View() + " %"
	}
	return prefix + m.inputs[idx].View()
}

func options(names []string, selected int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		if i == selected {
			parts[i] = tuistyles.SelectedOptionStyle.Render(name)
		} else {
			parts[i] = tuistyles.OptionStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func inputFor(f Field) (int, bool) {
	switch f {
	case FieldInitialValue:
		return inputInitial, true
	case FieldContribution:
		return inputContribution, true
	case FieldYears:
		return inputYears, true
	case FieldRate:
		return inputRate, true
	}
	return 0, false
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != ',' && r != '.' {
			return false
		}
	}
	return true
}

// formatAmount renders v ungrouped, with the locale's decimal separator, so
// ParseAmount reads it back unchanged
func formatAmount(v float64, locale domain.Locale) string {
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if sep := config.DecimalSeparator(locale); sep != '.' {
		text = strings.Replace(text, ".", string(sep), 1)
	}
	return text
}

func currencySymbol(locale domain.Locale) string {
	if locale == domain.LocalePortuguese {
		return "R$"
	}
	return "$"
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
