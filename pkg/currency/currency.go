// Package currency converts entered amounts into the base currency using an
// injected exchange-rate table.
package currency

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmfinance/installment-calc/pkg/mathutil"
	"github.com/mmfinance/installment-calc/pkg/rates"
)

// ErrInvalidCurrency indicates a currency code absent from the exchange-rate
// table. The presentation layer must only submit codes the table defines, so
// hitting this is a caller bug.
var ErrInvalidCurrency = errors.New("invalid currency")

// Converter converts amounts into the base currency.
type Converter struct {
	table rates.ExchangeRateTable
}

// NewConverter creates a converter over the given table. A nil table falls
// back to the production defaults.
func NewConverter(table rates.ExchangeRateTable) *Converter {
	if table == nil {
		table = rates.DefaultExchangeRates()
	}
	return &Converter{table: table}
}

// ToBase converts an amount in the given currency into the base currency.
// Negative or non-finite amounts normalize to 0 before conversion; an unknown
// currency code fails with ErrInvalidCurrency.
func (c *Converter) ToBase(amount float64, code string) (float64, error) {
	rate, ok := c.table.Lookup(code)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return amount * rate, nil
}

// Rate returns the raw exchange rate for a currency code.
func (c *Converter) Rate(code string) (float64, error) {
	rate, ok := c.table.Lookup(code)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return rate, nil
}

// PercentOf computes percent% of a base amount, used by deposit-as-percentage
// inputs.
func PercentOf(base, percent float64) float64 {
	return mathutil.ApplyPercentage(base, percent)
}
