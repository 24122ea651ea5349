package pricing

import (
	"fmt"
	"math"

	"github.com/mmfinance/installment-calc/pkg/constants"
	"github.com/mmfinance/installment-calc/pkg/mathutil"
)

// Strategy names, one per observed product iteration. The amortized
// whole-of-term formula is the current authoritative default.
const (
	StrategyFlat            = "flat"
	StrategyFlatFee         = "flat-fee"
	StrategyAmortized       = "amortized"
	StrategyAmortizedAnnual = "amortized-annual"
	StrategyArbitrage       = "arbitrage"

	DefaultStrategy = StrategyAmortized
)

// Basis carries the pre-computed figures every strategy prices from. All
// monetary fields are in base currency.
type Basis struct {
	// PrincipalInBase is the converted product price before deposit.
	PrincipalInBase float64
	// Financed is the principal actually financed: max(0, principal - deposit).
	Financed float64
	// Rate is the deduction rate resolved for (term, method, bank).
	Rate float64
	// AdminFee is the bracket fee resolved from PrincipalInBase and method.
	AdminFee float64
	// CurrencyRate is the raw exchange rate of the entered currency; only the
	// arbitrage strategy uses it.
	CurrencyRate float64
	Term         int
}

// Strategy prices a quote basis into a LoanResult. Implementations are pure;
// the engine handles input normalization, table lookups, and short-circuits
// before pricing.
type Strategy interface {
	Name() string
	Price(basis Basis) LoanResult
}

// NewStrategy resolves a strategy by name. An empty name resolves to the
// default.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "", DefaultStrategy:
		return amortizedStrategy{}, nil
	case StrategyFlat:
		return flatStrategy{}, nil
	case StrategyFlatFee:
		return flatFeeStrategy{}, nil
	case StrategyAmortizedAnnual:
		return amortizedAnnualStrategy{}, nil
	case StrategyArbitrage:
		return arbitrageStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown pricing strategy %q", name)
}

// StrategyNames returns the closed set of selectable strategy names.
func StrategyNames() []string {
	return []string{
		StrategyFlat,
		StrategyFlatFee,
		StrategyAmortized,
		StrategyAmortizedAnnual,
		StrategyArbitrage,
	}
}

// flatStrategy charges a flat per-period rate on the original financed
// principal, not on a declining balance.
type flatStrategy struct{}

func (flatStrategy) Name() string { return StrategyFlat }

func (flatStrategy) Price(basis Basis) LoanResult {
	monthly := basis.Financed/float64(basis.Term) + basis.Financed*basis.Rate
	total := monthly * float64(basis.Term)
	return LoanResult{
		MonthlyRepayment: monthly,
		TotalRepayment:   total,
		DeductionAmount:  basis.Financed * basis.Rate * float64(basis.Term),
		AdminFee:         basis.AdminFee,
		InterestRate:     basis.Rate,
		MinSalary:        constants.FlatSalaryCoverage * monthly,
		Eligible:         true,
	}
}

// flatFeeStrategy is the flat formula with the admin fee folded into the
// monthly repayment.
type flatFeeStrategy struct{}

func (flatFeeStrategy) Name() string { return StrategyFlatFee }

func (flatFeeStrategy) Price(basis Basis) LoanResult {
	monthly := (basis.Financed + basis.Financed*basis.Rate + basis.AdminFee) / float64(basis.Term)
	total := monthly * float64(basis.Term)
	return LoanResult{
		MonthlyRepayment: monthly,
		TotalRepayment:   total,
		DeductionAmount:  basis.Financed * basis.Rate,
		AdminFee:         basis.AdminFee,
		InterestRate:     basis.Rate,
		MinSalary:        constants.FlatSalaryCoverage * monthly,
		Eligible:         true,
	}
}

// amortizedStrategy applies the annuity formula with the deduction rate
// treated as a whole-of-term rate.
type amortizedStrategy struct{}

func (amortizedStrategy) Name() string { return StrategyAmortized }

func (amortizedStrategy) Price(basis Basis) LoanResult {
	monthly := annuityPayment(basis.Financed, basis.Rate, basis.Term)
	total := monthly * float64(basis.Term)
	return LoanResult{
		MonthlyRepayment: monthly,
		TotalRepayment:   total,
		DeductionAmount:  mathutil.Max(0, total-basis.Financed-basis.AdminFee),
		AdminFee:         basis.AdminFee,
		InterestRate:     basis.Rate,
		MinSalary:        mathutil.FloorToThousand(monthly / constants.AmortizedSalaryCoverage),
		Eligible:         true,
	}
}

// amortizedAnnualStrategy applies the annuity formula with the deduction rate
// interpreted as an annual rate divided into monthly periods.
type amortizedAnnualStrategy struct{}

func (amortizedAnnualStrategy) Name() string { return StrategyAmortizedAnnual }

func (amortizedAnnualStrategy) Price(basis Basis) LoanResult {
	monthlyRate := basis.Rate / constants.MonthsPerYear
	monthly := annuityPayment(basis.Financed, monthlyRate, basis.Term)
	total := monthly * float64(basis.Term)
	return LoanResult{
		MonthlyRepayment: monthly,
		TotalRepayment:   total,
		DeductionAmount:  mathutil.Max(0, total-basis.Financed-basis.AdminFee),
		AdminFee:         basis.AdminFee,
		InterestRate:     basis.Rate,
		MinSalary:        mathutil.FloorToThousand(monthly / constants.FlatSalaryCoverage),
		Eligible:         true,
	}
}

// arbitrageStrategy prices from the raw currency rate instead of a financed
// principal; there is no deposit concept. A non-positive repayment marks the
// quote not eligible.
type arbitrageStrategy struct{}

func (arbitrageStrategy) Name() string { return StrategyArbitrage }

func (arbitrageStrategy) Price(basis Basis) LoanResult {
	monthly := basis.CurrencyRate*float64(basis.Term) - basis.PrincipalInBase
	if monthly <= 0 {
		return LoanResult{
			AdminFee:     basis.AdminFee,
			InterestRate: basis.Rate,
			Eligible:     false,
		}
	}
	total := monthly * float64(basis.Term)
	return LoanResult{
		MonthlyRepayment: monthly,
		TotalRepayment:   total,
		DeductionAmount:  mathutil.Max(0, total-basis.PrincipalInBase),
		AdminFee:         basis.AdminFee,
		InterestRate:     basis.Rate,
		MinSalary:        mathutil.FloorToThousand(monthly * constants.FlatSalaryCoverage),
		Eligible:         true,
	}
}

// annuityPayment computes the periodic payment for a principal at the given
// per-period rate over the term. A zero rate degenerates to straight division.
func annuityPayment(principal, rate float64, term int) float64 {
	if rate == 0 {
		return principal / float64(term)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(term)))
}
