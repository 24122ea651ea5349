// Package constants provides shared constants for the installment-calc application.
package constants

// BaseCurrency is the currency all pricing normalizes to before any
// computation takes place.
const BaseCurrency = "MMK"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// SalaryGranularity is the unit the minimum qualifying salary is floored
	// to; quoted salaries must never overstate affordability.
	SalaryGranularity = 1000.0

	// AmortizedSalaryCoverage is the share of salary assumed available for
	// repayment under the whole-of-term amortized strategy.
	AmortizedSalaryCoverage = 0.20

	// FlatSalaryCoverage is the share of salary assumed available for
	// repayment under the flat and per-period strategies.
	FlatSalaryCoverage = 0.25
)

// Deposit input modes
const (
	// DepositModeAmount treats the deposit input as an absolute amount in the
	// selected currency.
	DepositModeAmount = "amount"

	// DepositModePercent treats the deposit input as a percentage of the
	// converted product price.
	DepositModePercent = "percent"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// quote requests (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
