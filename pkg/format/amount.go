// Package format renders monetary amounts for display with locale thousands
// separators at fixed decimal precision.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns the value with thousands separators at two decimal places
// (e.g. "1,234.56").
func Amount(value float64) string {
	return printer.Sprintf("%.2f", value)
}

// WholeAmount returns the value with thousands separators and no decimal
// places (e.g. "1,235"). Used for fields quoted in whole currency units such
// as the minimum salary.
func WholeAmount(value float64) string {
	return printer.Sprintf("%.0f", value)
}

// Percent renders a decimal rate as a percentage with two decimal places
// (e.g. 0.0376 -> "3.76%").
func Percent(rate float64) string {
	return printer.Sprintf("%.2f%%", rate*100)
}
