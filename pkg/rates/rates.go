// Package rates defines the static lookup tables that drive installment
// pricing: currency exchange rates, term/method deduction rates, and the
// admin-fee bracket schedule. Tables are plain data injected into the engine
// at construction; they carry no behavior beyond validated lookups.
package rates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmfinance/installment-calc/pkg/constants"
)

// ExchangeRateTable maps a currency code to its rate expressed as units of
// base currency per one unit of the source currency. The base currency always
// maps to exactly 1.
type ExchangeRateTable map[string]float64

// Lookup returns the rate for a currency code and whether it is defined.
func (t ExchangeRateTable) Lookup(code string) (float64, bool) {
	rate, ok := t[code]
	return rate, ok
}

// Codes returns the defined currency codes in sorted order.
func (t ExchangeRateTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks that every rate is positive and that the base currency maps
// to the identity rate.
func (t ExchangeRateTable) Validate() error {
	for code, rate := range t {
		if rate <= 0 {
			return fmt.Errorf("exchange rate for %s must be positive, got %v", code, rate)
		}
	}
	base, ok := t[constants.BaseCurrency]
	if !ok {
		return fmt.Errorf("exchange rate table must define base currency %s", constants.BaseCurrency)
	}
	if base != 1 {
		return fmt.Errorf("base currency %s must map to rate 1, got %v", constants.BaseCurrency, base)
	}
	return nil
}

// TermMethodRate is one deduction-rate entry keyed by repayment term, method,
// and an optional bank option.
type TermMethodRate struct {
	Term   int     `yaml:"term" json:"term"`
	Method string  `yaml:"method" json:"method"`
	Bank   string  `yaml:"bank,omitempty" json:"bank,omitempty"`
	Rate   float64 `yaml:"rate" json:"rate"`
}

type rateKey struct {
	term   int
	method string
	bank   string
}

// TermMethodTable resolves a deduction rate for a (term, method, bank)
// combination. Undefined combinations resolve to rate 0 rather than failing;
// the presentation layer is expected to only offer combinations the table
// defines.
type TermMethodTable struct {
	entries []TermMethodRate
	lookup  map[rateKey]float64
}

// NewTermMethodTable builds a table from rate entries, validating that every
// rate lies in [0, 1) and every term is positive.
func NewTermMethodTable(entries []TermMethodRate) (*TermMethodTable, error) {
	lookup := make(map[rateKey]float64, len(entries))
	for _, entry := range entries {
		if entry.Term <= 0 {
			return nil, fmt.Errorf("term must be positive, got %d for method %s", entry.Term, entry.Method)
		}
		if entry.Rate < 0 || entry.Rate >= 1 {
			return nil, fmt.Errorf("rate for term %d method %s must be in [0, 1), got %v",
				entry.Term, entry.Method, entry.Rate)
		}
		lookup[rateKey{entry.Term, entry.Method, entry.Bank}] = entry.Rate
	}
	return &TermMethodTable{entries: append([]TermMethodRate(nil), entries...), lookup: lookup}, nil
}

// Rate resolves the deduction rate for the given combination. A bank-specific
// entry wins over a method-wide entry; a combination with no entry at all
// resolves to 0.
func (t *TermMethodTable) Rate(term int, method, bank string) float64 {
	if t == nil {
		return 0
	}
	if rate, ok := t.lookup[rateKey{term, method, bank}]; ok {
		return rate
	}
	if bank != "" {
		if rate, ok := t.lookup[rateKey{term, method, ""}]; ok {
			return rate
		}
	}
	return 0
}

// Terms returns the distinct terms the table defines, sorted ascending.
func (t *TermMethodTable) Terms() []int {
	if t == nil {
		return nil
	}
	seen := make(map[int]struct{})
	for _, entry := range t.entries {
		seen[entry.Term] = struct{}{}
	}
	terms := make([]int, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Ints(terms)
	return terms
}

// Methods returns the distinct methods the table defines, sorted.
func (t *TermMethodTable) Methods() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, entry := range t.entries {
		seen[entry.Method] = struct{}{}
	}
	methods := make([]string, 0, len(seen))
	for method := range seen {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Banks returns the distinct bank options defined for a method, sorted.
// Methods with only method-wide entries return nil.
func (t *TermMethodTable) Banks(method string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, entry := range t.entries {
		if entry.Method == method && entry.Bank != "" {
			seen[entry.Bank] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	banks := make([]string, 0, len(seen))
	for bank := range seen {
		banks = append(banks, bank)
	}
	sort.Strings(banks)
	return banks
}

// AdminFeeBracket is one price bracket of the admin-fee schedule. UpperBound
// is the inclusive upper price bound; a bracket with UpperBound 0 is
// unbounded and must be the last bracket. Fees are keyed by repayment method.
type AdminFeeBracket struct {
	UpperBound float64            `yaml:"upperBound,omitempty" json:"upperBound,omitempty"`
	Fees       map[string]float64 `yaml:"fees" json:"fees"`
}

// Unbounded reports whether the bracket has no upper price bound.
func (b AdminFeeBracket) Unbounded() bool {
	return b.UpperBound <= 0
}

// AdminFeeSchedule is an ordered sequence of fee brackets, contiguous and
// exhaustive from 0 upward.
type AdminFeeSchedule []AdminFeeBracket

// Validate checks that bounds ascend strictly and the final bracket is
// unbounded, so every price resolves to exactly one bracket.
func (s AdminFeeSchedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("admin fee schedule must have at least one bracket")
	}
	previous := 0.0
	for i, bracket := range s {
		last := i == len(s)-1
		if bracket.Unbounded() {
			if !last {
				return fmt.Errorf("unbounded admin fee bracket must be last, found at index %d", i)
			}
			continue
		}
		if bracket.UpperBound <= previous {
			return fmt.Errorf("admin fee bracket bounds must ascend, got %v after %v",
				bracket.UpperBound, previous)
		}
		previous = bracket.UpperBound
	}
	if !s[len(s)-1].Unbounded() {
		return fmt.Errorf("final admin fee bracket must be unbounded")
	}
	for i, bracket := range s {
		for method, fee := range bracket.Fees {
			if fee < 0 {
				return fmt.Errorf("admin fee for method %s in bracket %d must be non-negative, got %v",
					method, i, fee)
			}
		}
	}
	return nil
}

// Fee returns the admin fee for a price and method: the first bracket whose
// upper bound is at least the price. Methods absent from the bracket resolve
// to 0.
func (s AdminFeeSchedule) Fee(price float64, method string) float64 {
	for _, bracket := range s {
		if bracket.Unbounded() || price <= bracket.UpperBound {
			return bracket.fee(method)
		}
	}
	return 0
}

// fee resolves the method's fee within a bracket. Config loaders lowercase
// map keys, so an exact miss falls back to a case-insensitive match.
func (b AdminFeeBracket) fee(method string) float64 {
	if fee, ok := b.Fees[method]; ok {
		return fee
	}
	for name, fee := range b.Fees {
		if strings.EqualFold(name, method) {
			return fee
		}
	}
	return 0
}
