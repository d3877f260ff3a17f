package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rgehrsitz/fmgo/internal/breakeven"
	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/compare"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/logging"
	"github.com/rgehrsitz/fmgo/internal/observability"
	"github.com/rgehrsitz/fmgo/internal/output"
	"github.com/rgehrsitz/fmgo/internal/transform"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// fail records err on the span, both metric backends and the log, then
// writes the JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, opName, msg string, err error, status int) {
	requestErrorsTotal.WithLabelValues(opName).Inc()
	observability.RecordError(r.Context(), span, logger, s.inst.errors, opName, msg, err, status, w)
}

// withDefaults fills the mode and period when a client leaves them out
func withDefaults(req domain.CalculationRequest) domain.CalculationRequest {
	if req.Mode == "" {
		req.Mode = domain.ModeTimeToTarget
	}
	if req.RatePeriod == "" {
		req.RatePeriod = domain.PeriodAnnual
	}
	return req
}

func requestAttributes(req domain.CalculationRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("projection.mode", string(req.Mode)),
		attribute.String("projection.rate_period", string(req.RatePeriod)),
		attribute.Float64("projection.initial_value", req.InitialValue),
		attribute.Float64("projection.interest_rate", req.InterestRate),
	}
}

// Projection handles POST /api/v1/projections
func (s *Server) Projection(w http.ResponseWriter, r *http.Request) {
	const opName = "projection"
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "fmgo.projection",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()
	r = r.WithContext(ctx)
	logger := logging.WithTrace(ctx, s.logger)

	var body ProjectionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, r, span, logger, opName, "invalid request body", err, http.StatusBadRequest)
		return
	}
	locale, err := domain.ParseLocale(body.Locale)
	if err != nil {
		s.fail(w, r, span, logger, opName, "invalid locale", err, http.StatusBadRequest)
		return
	}
	req := withDefaults(body.CalculationRequest)
	if err := s.parser.ValidateRequest(req); err != nil {
		s.fail(w, r, span, logger, opName, "invalid projection request", err, http.StatusBadRequest)
		return
	}
	span.SetAttributes(requestAttributes(req)...)

	start := time.Now()
	result, err := s.engine(string(locale)).Compute(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(w, r, span, logger, opName, "projection failed", err, http.StatusInternalServerError)
		return
	}

	s.recordProjection(r, result)
	s.recordDuration(r, opName, elapsed)

	span.AddEvent("projection.complete", trace.WithAttributes(
		attribute.String("outcome", string(result.Outcome)),
		attribute.Int("total_months", result.TotalMonths),
		attribute.Float64("final_amount", result.FinalAmount),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("projection completed",
		zap.String("mode", string(req.Mode)),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("total_months", result.TotalMonths),
		zap.Float64("final_amount", result.FinalAmount),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	resp := ProjectionResponse{
		CalculationResult: result,
		Headline:          output.Headline(result, locale),
		Breakdown:         output.NewBreakdown(result),
		RequestID:         requestID,
	}
	if !body.IncludeMonthly {
		trimmed := *result
		trimmed.MonthlyLedger = nil
		resp.CalculationResult = &trimmed
	}
	observability.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) recordProjection(r *http.Request, result *domain.CalculationResult) {
	ctx := r.Context()
	mode := string(result.Request.Mode)
	outcome := string(result.Outcome)

	projectionsTotal.WithLabelValues(mode, outcome).Inc()

	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	)
	s.inst.projections.Add(ctx, 1, attrs)
	s.inst.lastFinal.Record(ctx, result.FinalAmount, attrs)
}

func (s *Server) recordDuration(r *http.Request, opName string, elapsed time.Duration) {
	computeDuration.WithLabelValues(opName).Observe(elapsed.Seconds())
	s.inst.duration.Record(r.Context(), float64(elapsed.Microseconds())/1000.0, metric.WithAttributes(attribute.String("operation", opName)))
}

// Sensitivity handles POST /api/v1/projections/sensitivity
func (s *Server) Sensitivity(w http.ResponseWriter, r *http.Request) {
	const opName = "sensitivity"
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "fmgo.sensitivity",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()
	r = r.WithContext(ctx)
	logger := logging.WithTrace(ctx, s.logger)

	var body SensitivityRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, r, span, logger, opName, "invalid request body", err, http.StatusBadRequest)
		return
	}
	req := withDefaults(body.Request)
	if err := s.parser.ValidateRequest(req); err != nil {
		s.fail(w, r, span, logger, opName, "invalid projection request", err, http.StatusBadRequest)
		return
	}
	span.SetAttributes(requestAttributes(req)...)
	span.SetAttributes(
		attribute.Float64("sensitivity.min_rate", body.MinRate),
		attribute.Float64("sensitivity.max_rate", body.MaxRate),
		attribute.Int("sensitivity.steps", body.Steps),
	)

	start := time.Now()
	sweep, err := calculation.NewSensitivityAnalyzer(s.engine("")).SweepRate(ctx, req, body.MinRate, body.MaxRate, body.Steps)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(w, r, span, logger, opName, "invalid sensitivity range", err, http.StatusBadRequest)
		return
	}

	s.recordDuration(r, opName, elapsed)

	span.AddEvent("sensitivity.complete", trace.WithAttributes(
		attribute.Int("points", len(sweep.Points)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("sensitivity sweep completed",
		zap.String("mode", string(req.Mode)),
		zap.Int("points", len(sweep.Points)),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	observability.WriteJSON(w, http.StatusOK, SensitivityResponse{RateSensitivity: sweep, RequestID: requestID})
}

// BreakEven handles POST /api/v1/break-even
func (s *Server) BreakEven(w http.ResponseWriter, r *http.Request) {
	const opName = "break_even"
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "fmgo.break_even",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()
	r = r.WithContext(ctx)
	logger := logging.WithTrace(ctx, s.logger)

	var body BreakEvenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, r, span, logger, opName, "invalid request body", err, http.StatusBadRequest)
		return
	}
	req := withDefaults(body.Request)
	if err := s.parser.ValidateRequest(req); err != nil {
		s.fail(w, r, span, logger, opName, "invalid projection request", err, http.StatusBadRequest)
		return
	}
	if body.Target == "" {
		body.Target = string(breakeven.OptimizeAll)
	}
	target, err := breakeven.ParseTarget(body.Target)
	if err != nil {
		s.fail(w, r, span, logger, opName, "invalid break-even target", err, http.StatusBadRequest)
		return
	}
	horizon := body.HorizonYears
	if horizon == 0 {
		horizon = req.TargetYears
	}
	span.SetAttributes(requestAttributes(req)...)
	span.SetAttributes(
		attribute.String("break_even.target", string(target)),
		attribute.Int("break_even.horizon_years", horizon),
	)

	solver := breakeven.NewDefaultSolver(s.engine(""))
	constraints := breakeven.DefaultConstraints(horizon)
	resp := BreakEvenResponse{RequestID: requestID}

	start := time.Now()
	if target == breakeven.OptimizeAll {
		resp.All, err = solver.OptimizeAllTargets(ctx, req, constraints)
	} else {
		resp.Result, err = solver.Optimize(ctx, breakeven.OptimizationRequest{Base: req, Target: target, Constraints: constraints})
	}
	elapsed := time.Since(start)
	if err != nil {
		s.fail(w, r, span, logger, opName, "break-even search failed", err, http.StatusUnprocessableEntity)
		return
	}

	s.recordDuration(r, opName, elapsed)
	span.SetStatus(codes.Ok, "")

	logger.Info("break-even search completed",
		zap.String("target", string(target)),
		zap.Int("horizon_years", horizon),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	observability.WriteJSON(w, http.StatusOK, resp)
}

// Comparison handles POST /api/v1/comparisons. The body is a plan document in
// YAML or JSON; the base, alternatives and templates query parameters mirror
// the compare command's flags.
func (s *Server) Comparison(w http.ResponseWriter, r *http.Request) {
	const opName = "comparison"
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "fmgo.comparison",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()
	r = r.WithContext(ctx)
	logger := logging.WithTrace(ctx, s.logger)

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, span, logger, opName, "invalid request body", err, http.StatusBadRequest)
		return
	}
	plan, err := s.parser.Parse(data)
	if err != nil {
		s.fail(w, r, span, logger, opName, "invalid plan", err, http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	opts := compare.CompareOptions{
		BaseScenarioName: query.Get("base"),
		Alternatives:     transform.ParseTemplateList(query.Get("alternatives")),
		Templates:        transform.ParseTemplateList(query.Get("templates")),
	}
	span.SetAttributes(
		attribute.String("plan.name", plan.Name),
		attribute.Int("plan.scenarios", len(plan.Scenarios)),
		attribute.Int("comparison.templates", len(opts.Templates)),
	)

	start := time.Now()
	compSet, err := s.compare.Compare(ctx, plan, opts)
	elapsed := time.Since(start)
	if err != nil {
		s.fail(w, r, span, logger, opName, "comparison failed", err, http.StatusUnprocessableEntity)
		return
	}

	for _, res := range compSet.All() {
		s.recordProjection(r, res.Result)
	}
	s.recordDuration(r, opName, elapsed)

	span.AddEvent("comparison.complete", trace.WithAttributes(
		attribute.Int("alternatives", len(compSet.AlternativeResults)),
		attribute.Int("recommendations", len(compSet.Recommendations)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("comparison completed",
		zap.String("plan", plan.Name),
		zap.String("base", compSet.BaseScenarioName),
		zap.Int("alternatives", len(compSet.AlternativeResults)),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	observability.WriteJSON(w, http.StatusOK, ComparisonResponse{ComparisonSet: compSet, RequestID: requestID})
}

// Templates handles GET /api/v1/templates
func (s *Server) Templates(w http.ResponseWriter, r *http.Request) {
	registry := s.compare.TemplateRegistry
	names := registry.List()
	sort.Strings(names)

	infos := make([]TemplateInfo, 0, len(names))
	for _, name := range names {
		t, ok := registry.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, TemplateInfo{Name: t.Name, Description: t.Description})
	}
	observability.WriteJSON(w, http.StatusOK, infos)
}

// NotFound writes the JSON 404 body
func NotFound(w http.ResponseWriter, r *http.Request) {
	observability.WriteJSON(w, http.StatusNotFound, observability.ErrorResponse{
		Error:     fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		RequestID: observability.RequestIDFromContext(r.Context()),
	})
}
