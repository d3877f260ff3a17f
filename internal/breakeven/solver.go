package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/transform"
)

// Solver finds the break-even value of one request field: the smallest rate,
// initial value or monthly contribution that still reaches the target within
// a horizon. Months to target fall monotonically in each of them, so a
// bisection over the field converges.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// searchSpace describes one searchable field
type searchSpace struct {
	operation string
	lo, hi    float64
	tolerance float64
	baseValue float64
	places    int32 // precision of the reported value
	apply     func(v float64) transform.ScenarioTransform
	store     func(r *OptimizationResult, v float64)
}

// Optimize performs one break-even search. A base request in
// CONTRIBUTION_FOR_TERM mode is searched as TIME_TO_TARGET over its own term.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	req.Base = req.Base.Normalize()
	if req.Constraints.HorizonYears == 0 && req.Base.Mode == domain.ModeContributionForTerm {
		req.Constraints.HorizonYears = req.Base.TargetYears
	}
	req.Base.Mode = domain.ModeTimeToTarget

	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	space, err := s.searchSpaceFor(req)
	if err != nil {
		return nil, err
	}
	if req.Tolerance > 0 {
		space.tolerance = req.Tolerance
	} else {
		req.Tolerance = space.tolerance
	}
	return s.bisect(ctx, req, space)
}

func (s *Solver) searchSpaceFor(req OptimizationRequest) (searchSpace, error) {
	c := req.Constraints
	target := s.engineConfig().Target

	switch req.Target {
	case OptimizeRate:
		lo, hi := 0.0, 100.0
		if c.MinRate != nil {
			lo = *c.MinRate
		}
		if c.MaxRate != nil {
			hi = *c.MaxRate
		}
		return searchSpace{
			operation: "optimize_rate",
			lo:        lo,
			hi:        hi,
			tolerance: s.Options.RateTolerance,
			baseValue: req.Base.InterestRate,
			places:    ratePlaces,
			apply: func(v float64) transform.ScenarioTransform {
				return &transform.SetRate{Rate: v}
			},
			store: func(r *OptimizationResult, v float64) { r.OptimalRate = &v },
		}, nil

	case OptimizeInitialValue:
		hi := target
		if c.MaxInitialValue != nil {
			hi = *c.MaxInitialValue
		}
		return searchSpace{
			operation: "optimize_initial_value",
			hi:        hi,
			tolerance: s.Options.MoneyTolerance,
			baseValue: req.Base.InitialValue,
			places:    moneyPlaces,
			apply: func(v float64) transform.ScenarioTransform {
				return &transform.AddLumpSum{Amount: v - req.Base.InitialValue}
			},
			store: func(r *OptimizationResult, v float64) { r.OptimalInitialValue = cents(v) },
		}, nil

	case OptimizeContribution:
		hi := target
		if c.MaxContribution != nil {
			hi = *c.MaxContribution
		}
		return searchSpace{
			operation: "optimize_contribution",
			hi:        hi,
			tolerance: s.Options.MoneyTolerance,
			baseValue: req.Base.MonthlyContribution,
			places:    moneyPlaces,
			apply: func(v float64) transform.ScenarioTransform {
				return &transform.SetContribution{Amount: v}
			},
			store: func(r *OptimizationResult, v float64) { r.OptimalContribution = cents(v) },
		}, nil
	}

	return searchSpace{}, &BreakEvenError{
		Operation: "optimize",
		Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
	}
}

// bisect narrows [lo, hi] around the smallest value that reaches the target
func (s *Solver) bisect(ctx context.Context, req OptimizationRequest, space searchSpace) (*OptimizationResult, error) {
	probe := s.probeEngine(req.Constraints.HorizonYears)
	base := &domain.Scenario{Name: "base", Request: req.Base}

	evaluate := func(v float64) (*domain.CalculationResult, error) {
		modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{space.apply(v)})
		if err != nil {
			return nil, &BreakEvenError{Operation: space.operation, Message: "failed to apply transform", Cause: err}
		}
		result, err := probe.Compute(ctx, modified.Request)
		if err != nil {
			return nil, &BreakEvenError{Operation: space.operation, Message: "failed to calculate projection", Cause: err}
		}
		return result, nil
	}

	baseResult, err := probe.Compute(ctx, req.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: space.operation, Message: "failed to calculate base projection", Cause: err}
	}

	lo, hi := space.lo, space.hi
	loResult, err := evaluate(lo)
	if err != nil {
		return nil, err
	}
	result := &OptimizationResult{Request: req, BaseResult: baseResult}

	// settle reports v, which reaches the goal while floor is the lowest
	// value searched. Amounts are moved to the smallest whole cent that
	// still reaches the goal and projected again there; with a bracket
	// narrower than a cent that is v rounded up or the cent below it.
	settle := func(v, floor float64, vResult *domain.CalculationResult) error {
		if space.places == moneyPlaces {
			up := cents(v)
			for _, c := range []decimal.Decimal{up.Sub(decimal.New(1, -moneyPlaces)), *up} {
				cv := c.InexactFloat64()
				if cv < floor {
					continue
				}
				cResult := vResult
				if cv != v {
					var err error
					if cResult, err = evaluate(cv); err != nil {
						return err
					}
				}
				if cResult.GoalReached {
					v, vResult = cv, cResult
					break
				}
			}
		}
		result.Result = vResult
		space.store(result, v)
		result.DiffFromBase = decimal.NewFromFloat(v).Sub(decimal.NewFromFloat(space.baseValue)).Round(space.places)
		return nil
	}

	if loResult.GoalReached {
		result.Success = true
		result.ConvergenceInfo = "Target reached at the lower bound"
		if err := settle(lo, lo, loResult); err != nil {
			return nil, err
		}
		return result, nil
	}

	hiResult, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if !hiResult.GoalReached {
		return nil, &BreakEvenError{
			Operation: space.operation,
			Message:   fmt.Sprintf("target not reachable within %d years even at the upper bound %.2f", req.Constraints.HorizonYears, hi),
		}
	}

	for result.Iterations < req.MaxIterations && hi-lo > space.tolerance {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		mid := lo + (hi-lo)/2
		midResult, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if midResult.GoalReached {
			hi, hiResult = mid, midResult
		} else {
			lo = mid
		}
	}

	result.Success = hi-lo <= space.tolerance
	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("Bisection converged to within %g", space.tolerance)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	if err := settle(hi, lo, hiResult); err != nil {
		return nil, err
	}

	s.logger().Debugf("%s: %s after %d iterations (%s)", space.operation, result.Value(), result.Iterations, result.ConvergenceInfo)
	return result, nil
}

// cents rounds an amount up to whole cents
func cents(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v).RoundCeil(moneyPlaces)
	return &d
}

// probeEngine is an engine that stops at the horizon, so a probe that
// reaches the goal has reached it in time
func (s *Solver) probeEngine(horizonYears int) *calculation.CalculationEngine {
	cfg := s.engineConfig()
	cfg.MaxMonths = horizonYears * 12
	return calculation.NewCalculationEngineWithConfig(cfg)
}

func (s *Solver) engineConfig() calculation.EngineConfig {
	if s.CalcEngine == nil {
		return calculation.DefaultEngineConfig()
	}
	return calculation.NewCalculationEngineWithConfig(s.CalcEngine.Config).Config
}

func (s *Solver) logger() calculation.Logger {
	if s.CalcEngine == nil || s.CalcEngine.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.CalcEngine.Logger
}
