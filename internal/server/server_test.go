package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mmfinance/installment-calc/internal/config"
	"github.com/mmfinance/installment-calc/pkg/pricing"
	"github.com/mmfinance/installment-calc/pkg/rates"
)

func newTestHandler(t *testing.T, conf *config.Configuration) http.Handler {
	t.Helper()
	handler, err := NewHandler(zap.NewNop(), conf, 0, "test")
	if err != nil {
		t.Fatalf("NewHandler() unexpected error: %v", err)
	}
	return handler
}

func postQuote(t *testing.T, handler http.Handler, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleQuote(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := postQuote(t, handler, map[string]interface{}{
		"term":          3,
		"method":        rates.MethodSalaryDeduction,
		"currency":      "MMK",
		"productPrice":  "100000",
		"depositAmount": "0",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Strategy string             `json:"strategy"`
		Result   pricing.LoanResult `json:"result"`
		Display  map[string]string  `json:"display"`
		CSV      string             `json:"csv"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Strategy != pricing.DefaultStrategy {
		t.Errorf("strategy = %q, expected %q", response.Strategy, pricing.DefaultStrategy)
	}
	if response.Result.MonthlyRepayment < 35800 || response.Result.MonthlyRepayment > 35950 {
		t.Errorf("MonthlyRepayment = %v, expected range [35800, 35950]", response.Result.MonthlyRepayment)
	}
	if response.Result.AdminFee != 5000 {
		t.Errorf("AdminFee = %v, expected 5000", response.Result.AdminFee)
	}
	if math.Mod(response.Result.MinSalary, 1000) != 0 {
		t.Errorf("MinSalary = %v, expected a multiple of 1000", response.Result.MinSalary)
	}
	if response.Display["adminFee"] != "5,000.00" {
		t.Errorf("display adminFee = %q, expected 5,000.00", response.Display["adminFee"])
	}
	if !strings.Contains(response.CSV, `"strategy","amortized"`) {
		t.Errorf("csv missing strategy row:\n%s", response.CSV)
	}
}

func TestHandleQuoteStrategyOverride(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := postQuote(t, handler, map[string]interface{}{
		"term":         3,
		"method":       rates.MethodSalaryDeduction,
		"currency":     "USD",
		"productPrice": "1",
		"strategy":     "arbitrage",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Strategy string             `json:"strategy"`
		Result   pricing.LoanResult `json:"result"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Strategy != "arbitrage" {
		t.Errorf("strategy = %q, expected arbitrage", response.Strategy)
	}
	if response.Result.MonthlyRepayment != 12400 {
		t.Errorf("MonthlyRepayment = %v, expected 12400", response.Result.MonthlyRepayment)
	}
	if response.Result.MinSalary != 3000 {
		t.Errorf("MinSalary = %v, expected 3000", response.Result.MinSalary)
	}
}

func TestHandleQuoteRejectsBadInput(t *testing.T) {
	handler := newTestHandler(t, nil)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name: "Unknown currency",
			payload: map[string]interface{}{
				"term": 3, "method": rates.MethodSalaryDeduction, "currency": "XYZ",
			},
		},
		{
			name: "Term outside set",
			payload: map[string]interface{}{
				"term": 5, "method": rates.MethodSalaryDeduction, "currency": "MMK",
			},
		},
		{
			name: "Unknown strategy",
			payload: map[string]interface{}{
				"term": 3, "method": rates.MethodSalaryDeduction, "currency": "MMK",
				"strategy": "compound",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postQuote(t, handler, tt.payload)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400; body: %s", recorder.Code, recorder.Body.String())
			}
			var payload map[string]string
			if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode error payload: %v", err)
			}
			if payload["error"] == "" {
				t.Error("expected error message in payload")
			}
		})
	}
}

func TestHandleQuoteMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", recorder.Code)
	}
}

func TestHandleQuoteConfiguredDefaults(t *testing.T) {
	conf := &config.Configuration{
		Pricing: config.PricingConfig{Strategy: "flat", DepositMode: "percent"},
	}
	handler := newTestHandler(t, conf)

	recorder := postQuote(t, handler, map[string]interface{}{
		"term":          3,
		"method":        rates.MethodSalaryDeduction,
		"currency":      "MMK",
		"productPrice":  "50000",
		"depositAmount": "80",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Strategy string             `json:"strategy"`
		Result   pricing.LoanResult `json:"result"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Strategy != "flat" {
		t.Errorf("strategy = %q, expected configured flat", response.Strategy)
	}
	// Deposit mode percent: financed = 50000 - 40000 = 10000.
	expectedMonthly := 10000.0/3 + 10000*0.0376
	if math.Abs(response.Result.MonthlyRepayment-expectedMonthly) > 0.01 {
		t.Errorf("MonthlyRepayment = %v, expected %v", response.Result.MonthlyRepayment, expectedMonthly)
	}
}

func TestHandleRates(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", recorder.Code)
	}

	var payload config.RatesConfig
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode rates payload: %v", err)
	}
	if payload.Exchange["MMK"] != 1 {
		t.Errorf("exchange MMK = %v, expected 1", payload.Exchange["MMK"])
	}
	if len(payload.TermMethod) == 0 {
		t.Error("expected term/method entries in rates payload")
	}
	if len(payload.AdminFees) == 0 {
		t.Error("expected admin fee brackets in rates payload")
	}
}

func TestHandleRatesExport(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rates/export", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "application/x-yaml" {
		t.Errorf("Content-Type = %q, expected application/x-yaml", contentType)
	}

	var payload config.RatesConfig
	if err := yaml.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode YAML export: %v", err)
	}
	if payload.Exchange["USD"] != 6200 {
		t.Errorf("exchange USD = %v, expected 6200", payload.Exchange["USD"])
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", recorder.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode version payload: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %q, expected test", payload["version"])
	}
}

func TestHandleQuoteBodyTooLarge(t *testing.T) {
	handler, err := NewHandler(zap.NewNop(), nil, 16, "test")
	if err != nil {
		t.Fatalf("NewHandler() unexpected error: %v", err)
	}

	recorder := postQuote(t, handler, map[string]interface{}{
		"term": 3, "method": rates.MethodSalaryDeduction, "currency": "MMK",
		"productPrice": "100000",
	})
	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413", recorder.Code)
	}
}
