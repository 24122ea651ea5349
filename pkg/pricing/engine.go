package pricing

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/currency"
	"github.com/mmfinance/installment-calc/pkg/mathutil"
	"github.com/mmfinance/installment-calc/pkg/rates"
)

// ErrInvalidTerm indicates a term outside the enumerated set reached the
// engine. Defensive only: a correct presentation layer cannot submit one.
var ErrInvalidTerm = errors.New("invalid term")

// Engine computes repayment terms from a LoanInput snapshot. It is pure and
// side-effect free; the injected tables are read-only and safe for concurrent
// use, so one engine may serve any number of sessions.
type Engine struct {
	converter *currency.Converter
	termRates *rates.TermMethodTable
	fees      rates.AdminFeeSchedule
	strategy  Strategy
	logger    *zap.Logger
}

// NewEngine creates an engine over the given tables and strategy. Nil tables
// fall back to the production defaults; a nil strategy falls back to the
// default strategy; a nil logger is replaced with a no-op logger.
func NewEngine(strategy Strategy, exchange rates.ExchangeRateTable, termRates *rates.TermMethodTable,
	fees rates.AdminFeeSchedule, logger *zap.Logger) *Engine {
	if strategy == nil {
		strategy, _ = NewStrategy(DefaultStrategy)
	}
	if termRates == nil {
		termRates = rates.DefaultTermMethodTable()
	}
	if fees == nil {
		fees = rates.DefaultAdminFees()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		converter: currency.NewConverter(exchange),
		termRates: termRates,
		fees:      fees,
		strategy:  strategy,
		logger:    logger,
	}
}

// Strategy returns the engine's pricing strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Compute derives the repayment terms for one input snapshot. Structural
// misuse (unknown currency, zero term) fails hard; empty or not-yet-entered
// numeric input is normalized to zero and prices as a zero-valued result.
func (e *Engine) Compute(input LoanInput) (LoanResult, error) {
	if input.Term <= 0 {
		return LoanResult{}, fmt.Errorf("%w: %d", ErrInvalidTerm, input.Term)
	}

	price := ParseAmount(input.ProductPrice)
	principal, err := e.converter.ToBase(price, input.Currency)
	if err != nil {
		return LoanResult{}, fmt.Errorf("failed to convert product price: %w", err)
	}

	deposit := ParseAmount(input.DepositAmount)
	var depositInBase float64
	switch NormalizeDepositMode(input.DepositMode) {
	case constants.DepositModePercent:
		depositInBase = currency.PercentOf(principal, deposit)
	default:
		depositInBase, err = e.converter.ToBase(deposit, input.Currency)
		if err != nil {
			return LoanResult{}, fmt.Errorf("failed to convert deposit: %w", err)
		}
	}

	rate := e.termRates.Rate(input.Term, input.Method, input.Bank)
	currencyRate, err := e.converter.Rate(input.Currency)
	if err != nil {
		return LoanResult{}, err
	}

	// An empty or zero-priced form finances nothing; short-circuit to a
	// zero-valued result rather than pricing it.
	if principal <= 0 {
		return LoanResult{InterestRate: rate, Eligible: true}, nil
	}

	basis := Basis{
		PrincipalInBase: principal,
		Financed:        mathutil.Max(0, principal-depositInBase),
		Rate:            rate,
		AdminFee:        e.fees.Fee(principal, input.Method),
		CurrencyRate:    currencyRate,
		Term:            input.Term,
	}

	// A deposit covering the full price finances nothing: every strategy must
	// quote a zero repayment, while the admin fee still keys off the
	// converted price.
	if basis.Financed <= 0 {
		return LoanResult{
			AdminFee:     basis.AdminFee,
			InterestRate: rate,
			Eligible:     true,
		}, nil
	}

	result := e.strategy.Price(basis)

	e.logger.Debug("quote computed",
		zap.String("op", "pricing.Compute"),
		zap.String("strategy", e.strategy.Name()),
		zap.String("method", input.Method),
		zap.Int("term", input.Term),
		zap.Float64("principal", basis.PrincipalInBase),
		zap.Float64("financed", basis.Financed),
		zap.Float64("monthly", result.MonthlyRepayment),
	)

	return result, nil
}
