// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/pricing"
	"github.com/mmfinance/installment-calc/pkg/rates"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateStrategy checks if the strategy name is one of the known strategies.
// An empty name is valid and resolves to the default.
func ValidateStrategy(name string) error {
	if name == "" {
		return nil
	}
	for _, known := range pricing.StrategyNames() {
		if name == known {
			return nil
		}
	}
	return fmt.Errorf("expected strategy of %v, got %s", pricing.StrategyNames(), name)
}

// ValidateDepositMode checks if the deposit mode is one of the supported
// modes. An empty mode is valid and resolves to the absolute amount mode.
func ValidateDepositMode(mode string) error {
	if mode != "" && mode != constants.DepositModeAmount && mode != constants.DepositModePercent {
		return fmt.Errorf("expected deposit mode of %s or %s, got %s",
			constants.DepositModeAmount, constants.DepositModePercent, mode)
	}
	return nil
}

// ValidateLoanInput checks that the enumerated fields of a quote input are
// drawn from the sets the rate tables define. This is the collaborator-side
// check; the engine itself treats undefined (term, method) combinations as
// zero-rate rather than failing.
func ValidateLoanInput(input pricing.LoanInput, exchange rates.ExchangeRateTable,
	termRates *rates.TermMethodTable) error {
	if _, ok := exchange.Lookup(input.Currency); !ok {
		return fmt.Errorf("expected currency of %v, got %q", exchange.Codes(), input.Currency)
	}

	validTerm := false
	for _, term := range termRates.Terms() {
		if input.Term == term {
			validTerm = true
			break
		}
	}
	if !validTerm {
		return fmt.Errorf("expected term of %v, got %d", termRates.Terms(), input.Term)
	}

	validMethod := false
	for _, method := range termRates.Methods() {
		if input.Method == method {
			validMethod = true
			break
		}
	}
	if !validMethod {
		return fmt.Errorf("expected method of %v, got %q", termRates.Methods(), input.Method)
	}

	if input.Bank != "" {
		banks := termRates.Banks(input.Method)
		validBank := false
		for _, bank := range banks {
			if input.Bank == bank {
				validBank = true
				break
			}
		}
		if !validBank {
			if len(banks) == 0 {
				return fmt.Errorf("method %q takes no bank option, got %q", input.Method, input.Bank)
			}
			return fmt.Errorf("expected bank of %v for method %q, got %q", banks, input.Method, input.Bank)
		}
	}

	return ValidateDepositMode(input.DepositMode)
}
