// Package server exposes the pricing engine over HTTP for the presentation
// layer. The server holds no state beyond the immutable rate tables; every
// quote is recomputed in full from the submitted input snapshot.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mmfinance/installment-calc/internal/config"
	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/currency"
	"github.com/mmfinance/installment-calc/pkg/format"
	"github.com/mmfinance/installment-calc/pkg/output"
	"github.com/mmfinance/installment-calc/pkg/pricing"
	"github.com/mmfinance/installment-calc/pkg/rates"
	"github.com/mmfinance/installment-calc/pkg/validation"
)

type handler struct {
	logger          *zap.Logger
	engines         map[string]*pricing.Engine
	exchange        rates.ExchangeRateTable
	termRates       *rates.TermMethodTable
	resolvedRates   config.RatesConfig
	defaultStrategy string
	depositMode     string
	maxBodySize     int64
	version         string
}

// NewHandler constructs the HTTP handler that serves the quote API. One
// engine per strategy is built up front; the tables are shared between them
// and never mutated.
func NewHandler(logger *zap.Logger, conf *config.Configuration, maxBodySize int64, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = &config.Configuration{}
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	exchange, termRates, fees, err := conf.Tables()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate tables: %w", err)
	}

	defaultStrategy := conf.Pricing.Strategy
	if defaultStrategy == "" {
		defaultStrategy = pricing.DefaultStrategy
	}
	if err := validation.ValidateStrategy(defaultStrategy); err != nil {
		return nil, err
	}

	engines := make(map[string]*pricing.Engine, len(pricing.StrategyNames()))
	for _, name := range pricing.StrategyNames() {
		strategy, err := pricing.NewStrategy(name)
		if err != nil {
			return nil, err
		}
		engines[name] = pricing.NewEngine(strategy, exchange, termRates, fees, logger)
	}

	h := &handler{
		logger:          logger,
		engines:         engines,
		exchange:        exchange,
		termRates:       termRates,
		resolvedRates:   conf.ResolvedRates(),
		defaultStrategy: defaultStrategy,
		depositMode:     conf.Pricing.DepositMode,
		maxBodySize:     maxBodySize,
		version:         trimmedVersion,
	}

	mux := http.NewServeMux()

	// Quote API endpoint
	mux.HandleFunc("/api/quote", h.handleQuote)

	// Active rate tables as JSON
	mux.HandleFunc("/api/rates", h.handleRates)

	// Active rate tables as YAML for download
	mux.HandleFunc("/api/rates/export", h.handleRatesExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux, nil
}

type quoteRequest struct {
	pricing.LoanInput
	Strategy string `json:"strategy,omitempty"`
}

type quoteResponse struct {
	Strategy string             `json:"strategy"`
	Result   pricing.LoanResult `json:"result"`
	Display  map[string]string  `json:"display"`
	CSV      string             `json:"csv"`
	Duration string             `json:"duration"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode quote request: %v", err))
		return
	}

	if req.DepositMode == "" {
		req.DepositMode = h.depositMode
	}

	if err := validation.ValidateStrategy(req.Strategy); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateLoanInput(req.LoanInput, h.exchange, h.termRates); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = h.defaultStrategy
	}
	engine := h.engines[strategyName]

	result, err := engine.Compute(req.LoanInput)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, currency.ErrInvalidCurrency) || errors.Is(err, pricing.ErrInvalidTerm) {
			status = http.StatusBadRequest
		}
		h.respondError(w, status, err.Error())
		return
	}

	elapsed := time.Since(start)

	response := quoteResponse{
		Strategy: strategyName,
		Result:   result,
		Display:  buildDisplay(result),
		CSV:      output.CsvString(strategyName, req.LoanInput, result),
		Duration: elapsed.String(),
	}

	h.logger.Info("quote computed",
		zap.String("op", "server.handleQuote"),
		zap.String("strategy", strategyName),
		zap.String("method", req.Method),
		zap.Int("term", req.Term),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, h.resolvedRates)
}

func (h *handler) handleRatesExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	data, err := yaml.Marshal(h.resolvedRates)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to encode rate tables: %v", err), "server.handleRatesExport")
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="rates.yaml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write YAML response",
			zap.String("op", "server.handleRatesExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func buildDisplay(result pricing.LoanResult) map[string]string {
	return map[string]string{
		"monthlyRepayment": format.Amount(result.MonthlyRepayment),
		"totalRepayment":   format.Amount(result.TotalRepayment),
		"deductionAmount":  format.Amount(result.DeductionAmount),
		"adminFee":         format.Amount(result.AdminFee),
		"interestRate":     format.Percent(result.InterestRate),
		"minSalary":        format.WholeAmount(result.MinSalary),
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleQuote")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("quote request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
