package server

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/rgehrsitz/fmgo/internal/testutil"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	srv, err := New(Options{Engine: calculation.DefaultEngineConfig()})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	return srv.Router()
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/healthz", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestProjection_TimeToTarget(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections", map[string]any{
		"mode":                "TIME_TO_TARGET",
		"initialValue":        0,
		"monthlyContribution": 500,
		"interestRate":        10,
		"ratePeriod":          "ANNUAL",
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if payload["request_id"] != requestID {
		t.Fatalf("expected request_id %q in body, got %#v", requestID, payload["request_id"])
	}
	if payload["outcome"] != "reached" {
		t.Fatalf("expected outcome reached, got %#v", payload["outcome"])
	}
	if got := payload["totalMonths"].(float64); got != 357 {
		t.Fatalf("expected 357 months, got %v", got)
	}
	if got := payload["totalInvested"].(float64); got != 178500 {
		t.Fatalf("expected 178500 invested, got %v", got)
	}
	if payload["headline"] != "29 years and 9 months" {
		t.Fatalf("unexpected headline %#v", payload["headline"])
	}
	if payload["monthlyLedger"] != nil {
		t.Fatal("monthly ledger should be omitted unless requested")
	}
	if yearly := payload["yearlyLedger"].([]any); len(yearly) != 29 {
		t.Fatalf("expected 29 yearly records, got %d", len(yearly))
	}
}

func TestProjection_ContributionForTermInPortuguese(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections", map[string]any{
		"mode":           "CONTRIBUTION_FOR_TERM",
		"targetYears":    10,
		"interestRate":   10,
		"locale":         "pt-BR",
		"includeMonthly": true,
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)

	contribution, ok := payload["requiredMonthlyContribution"].(float64)
	if !ok || math.Abs(contribution-5003.40590060165) > 1e-6 {
		t.Fatalf("unexpected contribution %#v", payload["requiredMonthlyContribution"])
	}
	if payload["headline"] != "R$ 5.003,41 mensais" {
		t.Fatalf("unexpected headline %#v", payload["headline"])
	}
	if monthly := payload["monthlyLedger"].([]any); len(monthly) != 121 {
		t.Fatalf("expected 121 monthly records, got %d", len(monthly))
	}
	if !strings.Contains(payload["summaryMessage"].(string), "Para atingir") {
		t.Fatalf("expected a Portuguese summary, got %q", payload["summaryMessage"])
	}
}

func TestProjection_DefaultsModeAndPeriod(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections", `{"monthlyContribution":1000,"interestRate":10}`)

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)
	if got := payload["totalMonths"].(float64); got != 277 {
		t.Fatalf("expected 277 months, got %v", got)
	}
}

func TestProjection_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"malformed json", `{"mode":`, "invalid request body"},
		{"unknown mode", `{"mode":"SOMEDAY","interestRate":10}`, "invalid request body"},
		{"negative rate", `{"monthlyContribution":500,"interestRate":-1}`, "invalid projection request"},
		{"zero years", `{"mode":"CONTRIBUTION_FOR_TERM","targetYears":0,"interestRate":10}`, "invalid projection request"},
		{"unknown locale", `{"monthlyContribution":500,"interestRate":10,"locale":"fr-FR"}`, "invalid locale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections", tt.body)
			w := testutil.ExecuteRequest(req, router)

			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var payload map[string]string
			testutil.DecodeJSONBody(t, w.Body, &payload)
			if payload["error"] != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, payload["error"])
			}
			if payload["request_id"] == "" {
				t.Fatal("expected request_id in error body")
			}
		})
	}
}

func TestSensitivityEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections/sensitivity", map[string]any{
		"request": map[string]any{"monthlyContribution": 500, "interestRate": 10},
		"minRate": 8,
		"maxRate": 12,
		"steps":   5,
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload struct {
		Points []struct {
			InterestRate float64 `json:"interestRate"`
			IsBase       bool    `json:"isBase"`
			TotalMonths  int     `json:"totalMonths"`
		} `json:"points"`
		RequestID string `json:"request_id"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if len(payload.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(payload.Points))
	}
	base := payload.Points[2]
	if !base.IsBase || base.InterestRate != 10 || base.TotalMonths != 357 {
		t.Fatalf("unexpected base point %+v", base)
	}
	if payload.Points[0].TotalMonths <= payload.Points[4].TotalMonths {
		t.Fatal("a higher rate should reach the target sooner")
	}
}

func TestSensitivityEndpoint_InvalidRange(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections/sensitivity", map[string]any{
		"request": map[string]any{"monthlyContribution": 500, "interestRate": 10},
		"minRate": 12,
		"maxRate": 8,
		"steps":   5,
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

const testPlan = `
name: family
base: steady
scenarios:
  - name: steady
    mode: TIME_TO_TARGET
    monthly_contribution: 500
    interest_rate: 10
  - name: double
    mode: TIME_TO_TARGET
    monthly_contribution: 1000
    interest_rate: 10
`

func TestComparisonEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons?templates=rate_minus_1pt", strings.NewReader(testPlan))

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenarioName"`
		} `json:"alternativeResults"`
		RequestID string `json:"request_id"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if payload.BaseScenarioName != "steady" {
		t.Fatalf("expected base steady, got %q", payload.BaseScenarioName)
	}
	if len(payload.AlternativeResults) != 1 || payload.AlternativeResults[0].ScenarioName != "steady_rate_minus_1pt" {
		t.Fatalf("unexpected alternatives %+v", payload.AlternativeResults)
	}
	if payload.RequestID == "" {
		t.Fatal("expected request_id in body")
	}
}

func TestComparisonEndpoint_PlanScenarios(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader(testPlan))

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload struct {
		AlternativeResults []struct {
			ScenarioName       string `json:"scenarioName"`
			MonthsDiffFromBase int    `json:"monthsDiffFromBase"`
		} `json:"alternativeResults"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if len(payload.AlternativeResults) != 1 || payload.AlternativeResults[0].MonthsDiffFromBase != -80 {
		t.Fatalf("unexpected alternatives %+v", payload.AlternativeResults)
	}
}

func TestComparisonEndpoint_Errors(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/api/v1/comparisons", strings.NewReader("scenarios: [")), router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/api/v1/comparisons?base=missing", strings.NewReader(testPlan)), router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTemplatesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var templates []TemplateInfo
	testutil.DecodeJSONBody(t, w.Body, &templates)

	found := false
	for _, tmpl := range templates {
		if tmpl.Name == "contribution_double" {
			found = tmpl.Description != ""
		}
	}
	if !found {
		t.Fatalf("expected contribution_double in %+v", templates)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/projections", `{"monthlyContribution":500,"interestRate":10}`)
	testutil.CheckResponseCode(t, http.StatusOK, testutil.ExecuteRequest(req, router).Code)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, name := range []string{"fmgo_projections_total", "fmgo_compute_duration_seconds"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/nope", nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	var payload map[string]string
	testutil.DecodeJSONBody(t, w.Body, &payload)
	if !strings.Contains(payload["error"], "/nope") {
		t.Fatalf("unexpected error body %+v", payload)
	}
}

func TestBreakEvenEndpoint(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/break-even", map[string]any{
		"request":      map[string]any{"mode": "CONTRIBUTION_FOR_TERM", "targetYears": 10, "interestRate": 10},
		"target":       "contribution",
		"horizonYears": 10,
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload struct {
		Result struct {
			Success             bool            `json:"success"`
			OptimalContribution decimal.Decimal `json:"optimal_contribution"`
		} `json:"result"`
		RequestID string `json:"request_id"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if !payload.Result.Success {
		t.Fatal("expected the search to converge")
	}
	if !payload.Result.OptimalContribution.Equal(decimal.RequireFromString("5003.41")) {
		t.Fatalf("expected a contribution of 5003.41, got %s", payload.Result.OptimalContribution)
	}
	if payload.RequestID == "" {
		t.Fatal("expected a request id")
	}
}

func TestBreakEvenEndpoint_AllTargets(t *testing.T) {
	router := newTestRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/break-even", map[string]any{
		"request":      map[string]any{"monthlyContribution": 500, "interestRate": 10},
		"horizonYears": 25,
	})

	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload struct {
		All struct {
			Results []map[string]any `json:"results"`
		} `json:"all"`
	}
	testutil.DecodeJSONBody(t, w.Body, &payload)
	if len(payload.All.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(payload.All.Results))
	}
}

func TestBreakEvenEndpoint_Errors(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/break-even", map[string]any{
		"request": map[string]any{"monthlyContribution": 500, "interestRate": 10},
		"target":  "pension",
	}), router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/api/v1/break-even", map[string]any{
		"request": map[string]any{"monthlyContribution": 500, "interestRate": 10},
		"target":  "rate",
	}), router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
}
