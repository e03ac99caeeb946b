/*
Package returns computes compounded, inflation-adjusted savings projections
with tax-benefit deltas for the two supported investment vehicles.

PURPOSE:
  Takes the per-window remanent sums produced by the savings pipeline and
  projects each to the investor's retirement horizon. The two vehicles (NPS
  and index fund) share one calculator; they differ only in a small
  configuration value (growth rate + tax-benefit applicability), which keeps
  the formulas from drifting apart.

KEY CONCEPTS IN THIS FILE (tax.go):
  - Tax: Progressive slab tax (simplified new regime, INR, inclusive bounds)
  - Deduction: NPS deduction cap, min(invested, 10% of annual income, 200000)

SEE ALSO:
  - calculator.go: Projection formula and vehicle configurations
*/
package returns

import "github.com/shopspring/decimal"

// =============================================================================
// TAX SLABS - Simplified new regime, inclusive upper bounds
// =============================================================================

var (
	slab1 = decimal.NewFromInt(700_000)
	slab2 = decimal.NewFromInt(1_000_000)
	slab3 = decimal.NewFromInt(1_200_000)
	slab4 = decimal.NewFromInt(1_500_000)

	base2 = decimal.NewFromInt(30_000)
	base3 = decimal.NewFromInt(60_000)
	base4 = decimal.NewFromInt(120_000)

	rate10 = decimal.NewFromFloat(0.10)
	rate15 = decimal.NewFromFloat(0.15)
	rate20 = decimal.NewFromFloat(0.20)
	rate30 = decimal.NewFromFloat(0.30)

	deductionCap = decimal.NewFromInt(200_000)
	tenPercent   = decimal.NewFromFloat(0.10)
)

// Tax returns the progressive slab tax on an annual income:
//
//	<= 700,000    0
//	<= 1,000,000  (income - 700,000) * 0.10
//	<= 1,200,000  30,000 + (income - 1,000,000) * 0.15
//	<= 1,500,000  60,000 + (income - 1,200,000) * 0.20
//	>  1,500,000  120,000 + (income - 1,500,000) * 0.30
func Tax(income decimal.Decimal) decimal.Decimal {
	switch {
	case income.LessThanOrEqual(slab1):
		return decimal.Zero
	case income.LessThanOrEqual(slab2):
		return income.Sub(slab1).Mul(rate10)
	case income.LessThanOrEqual(slab3):
		return base2.Add(income.Sub(slab2).Mul(rate15))
	case income.LessThanOrEqual(slab4):
		return base3.Add(income.Sub(slab3).Mul(rate20))
	default:
		return base4.Add(income.Sub(slab4).Mul(rate30))
	}
}

// Deduction returns the eligible NPS deduction:
// min(invested, 10% of annual income, 200,000).
func Deduction(invested, annualIncome decimal.Decimal) decimal.Decimal {
	d := invested
	if cap := annualIncome.Mul(tenPercent); cap.LessThan(d) {
		d = cap
	}
	if deductionCap.LessThan(d) {
		d = deductionCap
	}
	return d
}
