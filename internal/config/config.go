// Package config defines the data structures related to configuration and
// includes functions for loading and resolving the config into rate tables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/pricing"
	"github.com/mmfinance/installment-calc/pkg/rates"
)

// Configuration holds all configuration for installment-calc.
type Configuration struct {
	Pricing PricingConfig `yaml:"pricing,omitempty"`
	Rates   RatesConfig   `yaml:"rates,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// PricingConfig selects the active formula and the deposit input semantics.
type PricingConfig struct {
	Strategy    string `yaml:"strategy,omitempty"`    // flat, flat-fee, amortized, amortized-annual, arbitrage
	DepositMode string `yaml:"depositMode,omitempty"` // amount, percent
}

// RatesConfig overrides the built-in rate tables. Empty sections fall back to
// the production defaults, so tests and deployments can substitute alternate
// tables without touching engine logic.
type RatesConfig struct {
	Exchange   map[string]float64     `yaml:"exchange,omitempty" json:"exchange"`
	TermMethod []rates.TermMethodRate `yaml:"termMethod,omitempty" json:"termMethod"`
	AdminFees  rates.AdminFeeSchedule `yaml:"adminFees,omitempty" json:"adminFees"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the built-in defaults without
// error; a present but malformed file is an error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return &Configuration{}, nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return &Configuration{}, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Strategy resolves the configured pricing strategy, falling back to the
// default when unset.
func (c *Configuration) Strategy() (pricing.Strategy, error) {
	return pricing.NewStrategy(c.Pricing.Strategy)
}

// Tables resolves the configured rate tables, substituting the production
// defaults for any section left empty, and validates the result.
func (c *Configuration) Tables() (rates.ExchangeRateTable, *rates.TermMethodTable, rates.AdminFeeSchedule, error) {
	exchange := normalizeExchange(c.Rates.Exchange)
	if len(exchange) == 0 {
		exchange = rates.DefaultExchangeRates()
	}
	if err := exchange.Validate(); err != nil {
		return nil, nil, nil, err
	}

	entries := c.Rates.TermMethod
	if len(entries) == 0 {
		entries = rates.DefaultTermMethodRates()
	}
	termTable, err := rates.NewTermMethodTable(entries)
	if err != nil {
		return nil, nil, nil, err
	}

	fees := c.Rates.AdminFees
	if len(fees) == 0 {
		fees = rates.DefaultAdminFees()
	}
	if err := fees.Validate(); err != nil {
		return nil, nil, nil, err
	}

	return exchange, termTable, fees, nil
}

// ResolvedRates returns the rates configuration with defaults substituted,
// suitable for serving and exporting from the quote API.
func (c *Configuration) ResolvedRates() RatesConfig {
	resolved := RatesConfig{
		Exchange:   normalizeExchange(c.Rates.Exchange),
		TermMethod: c.Rates.TermMethod,
		AdminFees:  c.Rates.AdminFees,
	}
	if len(resolved.Exchange) == 0 {
		resolved.Exchange = rates.DefaultExchangeRates()
	}
	if len(resolved.TermMethod) == 0 {
		resolved.TermMethod = rates.DefaultTermMethodRates()
	}
	if len(resolved.AdminFees) == 0 {
		resolved.AdminFees = rates.DefaultAdminFees()
	}
	return resolved
}

// normalizeExchange uppercases configured currency codes. Viper lowercases
// map keys on load, so codes must be restored before table lookups.
func normalizeExchange(exchange map[string]float64) rates.ExchangeRateTable {
	if len(exchange) == 0 {
		return nil
	}
	normalized := make(rates.ExchangeRateTable, len(exchange))
	for code, rate := range exchange {
		normalized[strings.ToUpper(code)] = rate
	}
	return normalized
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Pricing.Strategy == "" {
		warnings = append(warnings, fmt.Sprintf("no pricing strategy configured; using %s", pricing.DefaultStrategy))
	}
	if c.Pricing.DepositMode != "" &&
		c.Pricing.DepositMode != constants.DepositModeAmount &&
		c.Pricing.DepositMode != constants.DepositModePercent {
		warnings = append(warnings, fmt.Sprintf("unknown deposit mode %q; using %s",
			c.Pricing.DepositMode, constants.DepositModeAmount))
	}
	if exchange := normalizeExchange(c.Rates.Exchange); len(exchange) > 0 {
		if rate, ok := exchange[constants.BaseCurrency]; !ok {
			warnings = append(warnings, fmt.Sprintf("configured exchange table omits base currency %s",
				constants.BaseCurrency))
		} else if rate != 1 {
			warnings = append(warnings, fmt.Sprintf("configured exchange table maps %s to %v; base currency must be 1",
				constants.BaseCurrency, rate))
		}
	}

	return warnings
}
