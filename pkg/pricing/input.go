// Package pricing implements the installment-loan pricing engine: a pure
// pipeline that turns raw quote inputs into repayment terms via one of a
// small closed set of interchangeable strategies.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmfinance/installment-calc/pkg/constants"
)

// LoanInput is one snapshot of the quote form. Numeric fields arrive as
// decimal strings because the collaborator forwards raw text entry; empty,
// unparsable, or negative values normalize to 0, representing an in-progress
// form rather than an error.
type LoanInput struct {
	Term          int    `json:"term"`
	Method        string `json:"method"`
	Bank          string `json:"bank,omitempty"`
	Currency      string `json:"currency"`
	ProductPrice  string `json:"productPrice"`
	DepositAmount string `json:"depositAmount"`
	DepositMode   string `json:"depositMode,omitempty"`
}

// LoanResult holds the computed repayment terms. All fields are derived and
// recomputed in full on every call; nothing is persisted.
type LoanResult struct {
	MonthlyRepayment float64 `json:"monthlyRepayment"`
	TotalRepayment   float64 `json:"totalRepayment"`
	DeductionAmount  float64 `json:"deductionAmount"`
	AdminFee         float64 `json:"adminFee"`
	InterestRate     float64 `json:"interestRate"`
	MinSalary        float64 `json:"minSalary"`
	Eligible         bool    `json:"eligible"`
}

// ParseAmount converts a decimal string into a non-negative float64. Empty,
// unparsable, and negative input all normalize to 0. Thousands separators are
// tolerated since entry fields echo formatted values back.
func ParseAmount(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// NormalizeDepositMode maps an empty deposit mode to the default absolute
// amount mode.
func NormalizeDepositMode(mode string) string {
	if mode == "" {
		return constants.DepositModeAmount
	}
	return mode
}
