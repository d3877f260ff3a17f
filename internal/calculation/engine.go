package calculation

import (
	"context"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

const (
	// DefaultTarget is the balance the projections aim for
	DefaultTarget = 1_000_000.0
	// DefaultMaxMonths caps open-ended projections at 100 years
	DefaultMaxMonths = 1200
)

// EngineConfig holds the tunables of a CalculationEngine
type EngineConfig struct {
	Target    float64
	MaxMonths int
	Locale    domain.Locale
}

// DefaultEngineConfig returns the stock target, month cap and locale
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Target:    DefaultTarget,
		MaxMonths: DefaultMaxMonths,
		Locale:    domain.DefaultLocale,
	}
}

// withDefaults fills in unset or unusable values
func (c EngineConfig) withDefaults() EngineConfig {
	if !(c.Target > 0) {
		c.Target = DefaultTarget
	}
	if c.MaxMonths <= 0 {
		c.MaxMonths = DefaultMaxMonths
	}
	c.Locale = c.Locale.OrDefault()
	return c
}

// CalculationEngine orchestrates the rate normalizer, the projection loops and
// the aggregator. It holds no per-request state and is safe for concurrent use.
type CalculationEngine struct {
	Config EngineConfig
	Logger Logger
	Debug  bool // log every monthly step
}

// NewCalculationEngine creates an engine with the default configuration
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(DefaultEngineConfig())
}

// NewCalculationEngineWithConfig creates an engine with a custom target, cap or locale
func NewCalculationEngineWithConfig(cfg EngineConfig) *CalculationEngine {
	return &CalculationEngine{
		Config: cfg.withDefaults(),
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compute runs one projection. The request is normalized first, so every
// request yields a result; the only error is a cancelled context.
func (ce *CalculationEngine) Compute(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := ce.Config.withDefaults()
	logger := ce.logger()

	normalized := req.Normalize()
	if normalized != req {
		logger.Debugf("request normalized: %+v -> %+v", req, normalized)
	}
	monthlyRate := NormalizeRate(normalized.InterestRate, normalized.RatePeriod)

	var (
		p        *projection
		outcome  domain.Outcome
		required *float64
	)
	switch normalized.Mode {
	case domain.ModeContributionForTerm:
		months := normalized.HorizonMonths()
		contribution, funded := SolveMonthlyContribution(normalized.InitialValue, monthlyRate, cfg.Target, months)
		outcome = domain.OutcomeSolved
		if funded {
			outcome = domain.OutcomeAlreadyFunded
		}
		required = &contribution
		p = projectFixedTerm(normalized.InitialValue, contribution, monthlyRate, months)
		logger.Debugf("solved contribution %.6f over %d months at monthly rate %.8f", contribution, months, monthlyRate)
	default:
		p = projectUntilTarget(normalized.InitialValue, normalized.MonthlyContribution, monthlyRate, cfg.Target, cfg.MaxMonths)
		outcome = domain.OutcomeReached
		if p.total < cfg.Target {
			outcome = domain.OutcomeTargetNotReached
			logger.Warnf("target %.2f not reached within %d months (balance %.2f)", cfg.Target, cfg.MaxMonths, p.total)
		}
	}

	if ce.Debug {
		for _, rec := range p.ledger {
			logger.Debugf("month %4d year %3d invested %.2f interest %.2f total %.2f",
				rec.MonthIndex, rec.YearIndex, rec.CumulativeInvested, rec.CumulativeInterest, rec.CumulativeTotal)
		}
	}

	result := Aggregate(p.ledger, p.month, p.total, p.invested, required, AggregateOptions{
		Outcome:   outcome,
		Locale:    cfg.Locale,
		Target:    cfg.Target,
		MaxMonths: cfg.MaxMonths,
	})
	result.Request = normalized
	result.MonthlyRate = monthlyRate

	logger.Infof("projection %s: outcome=%s months=%d final=%.2f", normalized.Mode, outcome, result.TotalMonths, result.FinalAmount)
	return result, nil
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}
