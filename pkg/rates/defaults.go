package rates

// Method names the product offers. The bank option only applies to the
// MethodOtherBank repayment method.
const (
	MethodSalaryDeduction = "Salary Deduction"
	MethodCashPayment     = "Cash Payment"
	MethodYomaDeduction   = "Yoma Bank Deduction"
	MethodOtherBank       = "Other Bank"
)

// DefaultExchangeRates returns the production exchange-rate table. Rates are
// static product data, not live market quotes.
func DefaultExchangeRates() ExchangeRateTable {
	return ExchangeRateTable{
		"MMK": 1,
		"USD": 6200,
		"EUR": 6700,
		"SGD": 4600,
		"THB": 175,
		"FX":  6200,
	}
}

// DefaultTermMethodRates returns the production deduction-rate entries.
func DefaultTermMethodRates() []TermMethodRate {
	return []TermMethodRate{
		{Term: 3, Method: MethodSalaryDeduction, Rate: 0.0376},
		{Term: 6, Method: MethodSalaryDeduction, Rate: 0.0714},
		{Term: 9, Method: MethodSalaryDeduction, Rate: 0.1052},
		{Term: 12, Method: MethodSalaryDeduction, Rate: 0.1390},

		{Term: 3, Method: MethodCashPayment, Rate: 0.0482},
		{Term: 6, Method: MethodCashPayment, Rate: 0.0868},
		{Term: 9, Method: MethodCashPayment, Rate: 0.1254},
		{Term: 12, Method: MethodCashPayment, Rate: 0.1640},

		{Term: 3, Method: MethodYomaDeduction, Rate: 0.0420},
		{Term: 6, Method: MethodYomaDeduction, Rate: 0.0800},
		{Term: 9, Method: MethodYomaDeduction, Rate: 0.1180},
		{Term: 12, Method: MethodYomaDeduction, Rate: 0.1560},

		// Other Bank carries a method-wide rate plus bank-specific overrides.
		{Term: 3, Method: MethodOtherBank, Rate: 0.0520},
		{Term: 6, Method: MethodOtherBank, Rate: 0.0940},
		{Term: 9, Method: MethodOtherBank, Rate: 0.1360},
		{Term: 12, Method: MethodOtherBank, Rate: 0.1780},
		{Term: 3, Method: MethodOtherBank, Bank: "KBZ", Rate: 0.0480},
		{Term: 6, Method: MethodOtherBank, Bank: "KBZ", Rate: 0.0900},
		{Term: 3, Method: MethodOtherBank, Bank: "CB", Rate: 0.0500},
		{Term: 6, Method: MethodOtherBank, Bank: "CB", Rate: 0.0920},
	}
}

// DefaultAdminFees returns the production admin-fee bracket schedule.
func DefaultAdminFees() AdminFeeSchedule {
	return AdminFeeSchedule{
		{UpperBound: 100000, Fees: map[string]float64{
			MethodSalaryDeduction: 5000,
			MethodCashPayment:     7500,
			MethodYomaDeduction:   5000,
			MethodOtherBank:       7500,
		}},
		{UpperBound: 300000, Fees: map[string]float64{
			MethodSalaryDeduction: 10000,
			MethodCashPayment:     12500,
			MethodYomaDeduction:   10000,
			MethodOtherBank:       12500,
		}},
		{UpperBound: 500000, Fees: map[string]float64{
			MethodSalaryDeduction: 15000,
			MethodCashPayment:     17500,
			MethodYomaDeduction:   15000,
			MethodOtherBank:       17500,
		}},
		{UpperBound: 1000000, Fees: map[string]float64{
			MethodSalaryDeduction: 25000,
			MethodCashPayment:     27500,
			MethodYomaDeduction:   25000,
			MethodOtherBank:       27500,
		}},
		{Fees: map[string]float64{
			MethodSalaryDeduction: 40000,
			MethodCashPayment:     42500,
			MethodYomaDeduction:   40000,
			MethodOtherBank:       42500,
		}},
	}
}

// DefaultTermMethodTable returns the production deduction-rate table. The
// default entries are known valid so the error is impossible here.
func DefaultTermMethodTable() *TermMethodTable {
	table, err := NewTermMethodTable(DefaultTermMethodRates())
	if err != nil {
		panic(err)
	}
	return table
}
