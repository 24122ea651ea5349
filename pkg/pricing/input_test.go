package pricing

import (
	"math"
	"testing"

	"github.com/mmfinance/installment-calc/pkg/constants"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Plain integer", input: "100000", expected: 100000},
		{name: "Decimal value", input: "1234.56", expected: 1234.56},
		{name: "Thousands separators", input: "1,234,567.89", expected: 1234567.89},
		{name: "Leading whitespace", input: "  500", expected: 500},
		{name: "Empty string", input: "", expected: 0},
		{name: "Whitespace only", input: "   ", expected: 0},
		{name: "Unparsable text", input: "abc", expected: 0},
		{name: "Partial number", input: "12x", expected: 0},
		{name: "Negative clamps to zero", input: "-500", expected: 0},
		{name: "Zero", input: "0", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAmount(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ParseAmount(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeDepositMode(t *testing.T) {
	if NormalizeDepositMode("") != constants.DepositModeAmount {
		t.Errorf("empty deposit mode should normalize to %s", constants.DepositModeAmount)
	}
	if NormalizeDepositMode(constants.DepositModePercent) != constants.DepositModePercent {
		t.Errorf("percent deposit mode should pass through")
	}
}
