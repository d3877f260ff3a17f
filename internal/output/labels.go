package output

import "github.com/rgehrsitz/fmgo/internal/domain"

// Labels holds the user facing strings of one locale
type Labels struct {
	Title                string
	FinalAmount          string
	TotalInvested        string
	TotalInterest        string
	RequiredContribution string
	TimeToTarget         string
	PerMonthSuffix       string
	YearsAndMonths       string // years, months
	TargetReached        string
	TargetNotReached     string
	AlreadyFunded        string
	Composition          string
	InvestedShare        string
	InterestShare        string
	Return               string
	Evolution            string
	YearlyDetail         string
	Year                 string
	YearTick             string // year index
	InvestedYear         string
	InterestYear         string
	CumulativeTotal      string
	Month                string
	InitialValue         string
	MonthlyContribution  string
	TargetYears          string
	InterestRate         string
	Mode                 string
	PerYear              string
	PerMonth             string
	ModeTimeToTarget     string
	ModeContribution     string
	Disclaimer           string
	Sensitivity          string
	Base                 string
	Months               string
	Delta                string
	Calculate            string
	Clear                string
	Info                 string
	Back                 string
	Language             string
}

var labelSets = map[domain.Locale]Labels{
	domain.LocaleEnglish: {
		Title:                "FIRST MILLION PROJECTION",
		FinalAmount:          "Final amount",
		TotalInvested:        "Total invested",
		TotalInterest:        "Total interest",
		RequiredContribution: "Required monthly contribution",
		TimeToTarget:         "Time to target",
		PerMonthSuffix:       "per month",
		YearsAndMonths:       "%d years and %d months",
		TargetReached:        "Target reached",
		TargetNotReached:     "Target not reached",
		AlreadyFunded:        "Initial value already reaches the target",
		Composition:          "Composition",
		InvestedShare:        "Invested",
		InterestShare:        "Compound interest",
		Return:               "Return",
		Evolution:            "Wealth over time",
		YearlyDetail:         "Yearly detail",
		Year:                 "Year",
		YearTick:             "Year %d",
		InvestedYear:         "Invested (year)",
		InterestYear:         "Interest (year)",
		CumulativeTotal:      "Total accumulated",
		Month:                "Month",
		InitialValue:         "Initial value",
		MonthlyContribution:  "Monthly contribution",
		TargetYears:          "Target years",
		InterestRate:         "Interest rate",
		Mode:                 "Mode",
		PerYear:              "per year",
		PerMonth:             "per month",
		ModeTimeToTarget:     "Time to reach the target",
		ModeContribution:     "Contribution for a fixed term",
		Disclaimer:           "Projections are simulations based on the rates provided and do not guarantee future returns. Inflation and income tax are not considered.",
		Sensitivity:          "RATE SENSITIVITY",
		Base:                 "BASE",
		Months:               "Months",
		Delta:                "Delta",
		Calculate:            "Calculate",
		Clear:                "Clear fields",
		Info:                 "How it works",
		Back:                 "Back",
		Language:             "Português",
	},
	domain.LocalePortuguese: {
		Title:                "CALCULADORA DO PRIMEIRO MILHÃO",
		FinalAmount:          "Valor total final",
		TotalInvested:        "Total investido",
		TotalInterest:        "Total em juros",
		RequiredContribution: "Aporte mensal necessário",
		TimeToTarget:         "Prazo",
		PerMonthSuffix:       "mensais",
		YearsAndMonths:       "%d anos e %d meses",
		TargetReached:        "Meta atingida",
		TargetNotReached:     "Meta não atingida",
		AlreadyFunded:        "O valor inicial já atinge a meta",
		Composition:          "Composição",
		InvestedShare:        "Valor investido",
		InterestShare:        "Juros compostos",
		Return:               "Rentabilidade",
		Evolution:            "Evolução do patrimônio",
		YearlyDetail:         "Detalhamento anual",
		Year:                 "Ano",
		YearTick:             "Ano %d",
		InvestedYear:         "Investido (ano)",
		InterestYear:         "Juros (ano)",
		CumulativeTotal:      "Total acumulado",
		Month:                "Mês",
		InitialValue:         "Valor inicial",
		MonthlyContribution:  "Aporte mensal",
		TargetYears:          "Prazo em anos",
		InterestRate:         "Taxa de juros",
		Mode:                 "Tipo de cálculo",
		PerYear:              "a.a.",
		PerMonth:             "a.m.",
		ModeTimeToTarget:     "Calcular prazo",
		ModeContribution:     "Calcular aporte necessário",
		Disclaimer:           "Os cálculos apresentados são simulações baseadas nas taxas informadas e não garantem rentabilidade futura. O resultado não considera inflação ou impostos (IR).",
		Sensitivity:          "SENSIBILIDADE À TAXA",
		Base:                 "BASE",
		Months:               "Meses",
		Delta:                "Variação",
		Calculate:            "Calcular",
		Clear:                "Limpar campos",
		Info:                 "Como funciona",
		Back:                 "Voltar",
		Language:             "English",
	},
}

// LabelsFor returns the label set for a locale, falling back to the default locale
func LabelsFor(locale domain.Locale) Labels {
	return labelSets[locale.OrDefault()]
}

// ModeLabel names a calculation mode in the locale's words
func (l Labels) ModeLabel(mode domain.CalculationMode) string {
	if mode == domain.ModeContributionForTerm {
		return l.ModeContribution
	}
	return l.ModeTimeToTarget
}

// OutcomeLabel names an outcome in the locale's words
func (l Labels) OutcomeLabel(outcome domain.Outcome) string {
	switch outcome {
	case domain.OutcomeTargetNotReached:
		return l.TargetNotReached
	case domain.OutcomeAlreadyFunded:
		return l.AlreadyFunded
	default:
		return l.TargetReached
	}
}
