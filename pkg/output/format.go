// Package output provides utilities for formatting and displaying quote results.
package output

import (
	"fmt"
	"strings"

	"github.com/mmfinance/installment-calc/pkg/format"
	"github.com/mmfinance/installment-calc/pkg/pricing"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(strategy string, input pricing.LoanInput, result pricing.LoanResult) {
	fmt.Printf("--- Installment quote (%s) ---\n", strategy)
	fmt.Printf("Field              | Value\n")
	fmt.Printf("_____              | _____\n")
	for _, row := range rows(input, result) {
		fmt.Printf("%-18s | %s\n", row[0], row[1])
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(strategy string, input pricing.LoanInput, result pricing.LoanResult) {
	fmt.Print(CsvString(strategy, input, result))
}

// CsvString returns the CSV rendering used by both the CLI and the quote API.
func CsvString(strategy string, input pricing.LoanInput, result pricing.LoanResult) string {
	var builder strings.Builder
	builder.WriteString(`"field","value"` + "\n")
	builder.WriteString(fmt.Sprintf(`"strategy","%s"`+"\n", strategy))
	for _, row := range rows(input, result) {
		builder.WriteString(fmt.Sprintf(`"%s","%s"`+"\n", row[0], row[1]))
	}
	return builder.String()
}

func rows(input pricing.LoanInput, result pricing.LoanResult) [][2]string {
	eligible := "yes"
	if !result.Eligible {
		eligible = "no"
	}
	return [][2]string{
		{"Term (months)", fmt.Sprintf("%d", input.Term)},
		{"Method", input.Method},
		{"Currency", input.Currency},
		{"Monthly repayment", format.Amount(result.MonthlyRepayment)},
		{"Total repayment", format.Amount(result.TotalRepayment)},
		{"Deduction amount", format.Amount(result.DeductionAmount)},
		{"Admin fee", format.Amount(result.AdminFee)},
		{"Interest rate", format.Percent(result.InterestRate)},
		{"Minimum salary", format.WholeAmount(result.MinSalary)},
		{"Eligible", eligible},
	}
}
