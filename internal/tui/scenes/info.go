package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/tui/tuistyles"
)

type infoSection struct {
	title string
	lines []string
}

var infoText = map[domain.Locale][]infoSection{
	domain.LocalePortuguese: {
		{"Como usar a Calculadora do Primeiro Milhão", []string{
			"1. Escolha o tipo de cálculo",
			"   Calcular prazo: descubra quanto tempo levará para atingir R$ 1 milhão mantendo um aporte constante.",
			"   Calcular aporte: descubra quanto precisa investir mensalmente para chegar ao milhão em uma data específica.",
			"2. Configure os valores",
			"   Valor Inicial: quanto você já tem investido hoje. Se está começando, use 0.",
			"   Taxa de Juros: a rentabilidade esperada. Ex: 8% a.a. é uma referência conservadora para renda variável/FIIs.",
		}},
		{"Qual modalidade escolher?", []string{
			"Calcular Prazo: ideal se você já sabe quanto pode poupar por mês e quer saber quando alcançará sua liberdade financeira.",
			"   • Visualiza o poder dos juros no longo prazo.",
			"   • Mostra a evolução anual do patrimônio.",
			"Calcular Aporte Necessário: ideal se você tem uma meta de data (ex: aposentar em 15 anos) e precisa ajustar seu orçamento.",
			"   • Define metas de economia mensal.",
			"   • Ajuda no planejamento familiar e aposentadoria.",
		}},
		{"Como é feito o cálculo?", []string{
			"Fórmula base: juros compostos com aportes mensais, com reinvestimento automático de todos os dividendos e rendimentos.",
			"Conversão de taxas: taxas anuais viram mensais pela equivalência (1 + taxa_anual)^(1/12) - 1.",
			"Considerações: os cálculos são brutos e nominais. Não descontam inflação ou Imposto de Renda.",
		}},
	},
	domain.LocaleEnglish: {
		{"How to use the First Million Calculator", []string{
			"1. Pick the kind of calculation",
			"   Time to target: find out how long it takes to reach 1 million with a constant monthly contribution.",
			"   Contribution: find out how much to invest each month to reach the million by a given date.",
			"2. Fill in the values",
			"   Initial value: what you already have invested today. Use 0 if you are starting out.",
			"   Interest rate: the expected return. 8% per year is a conservative reference for equities and REITs.",
		}},
		{"Which mode should I use?", []string{
			"Time to target: for when you know how much you can save each month and want to know when you will get there.",
			"   • Shows the power of compounding over the long run.",
			"   • Shows how wealth grows year by year.",
			"Contribution for a fixed term: for when you have a date in mind (retire in 15 years) and need to plan your budget.",
			"   • Sets a monthly savings goal.",
			"   • Helps with family and retirement planning.",
		}},
		{"How is it calculated?", []string{
			"Base formula: compound interest with monthly contributions, every dividend and yield reinvested.",
			"Rate conversion: annual rates become monthly through (1 + annual_rate)^(1/12) - 1.",
			"Caveats: figures are gross and nominal. Inflation and income tax are not deducted.",
		}},
	},
}

// InfoModel is the static help scene
type InfoModel struct {
	viewport viewport.Model
	locale   domain.Locale
}

// NewInfoModel creates the help scene
func NewInfoModel(locale domain.Locale) *InfoModel {
	m := &InfoModel{viewport: viewport.New(80, 20)}
	m.SetLocale(locale)
	return m
}

// SetLocale switches the help text language
func (m *InfoModel) SetLocale(locale domain.Locale) {
	m.locale = locale.OrDefault()
	m.viewport.SetContent(InfoContent(m.locale, m.viewport.Width))
	m.viewport.GotoTop()
}

// SetSize updates the viewport dimensions
func (m *InfoModel) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(InfoContent(m.locale, width))
}

// Update scrolls the help text
func (m *InfoModel) Update(msg tea.Msg) (*InfoModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help scene
func (m *InfoModel) View() string {
	return m.viewport.View()
}

// InfoContent renders the help text of a locale wrapped to width
func InfoContent(locale domain.Locale, width int) string {
	body := tuistyles.InfoStyle
	if width > 4 {
		body = body.Width(width - 2)
	}
	var b strings.Builder
	for i, section := range infoText[locale.OrDefault()] {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tuistyles.SectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, line := range section.lines {
			b.WriteString(body.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
