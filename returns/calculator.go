/*
calculator.go - Compounded, inflation-adjusted projection per grouped sum

PURPOSE:
  For each grouping-window sum, with principal = the window's remanent total:

    t           = max(60 - age, 5)      years to horizon, floored at 5
    futureValue = principal * (1 + rate)^t
    realValue   = futureValue / (1 + inflation/100)^t
    profit      = round(realValue - principal, 2)

  The tax benefit is only computed for vehicles that apply it (NPS):

    annualIncome = wage * 12            wage is monthly
    deduction    = min(principal, 10% of annualIncome, 200,000)
    taxBenefit   = round(Tax(annualIncome) - Tax(annualIncome - deduction), 2)

  Output preserves input order; empty input yields empty output.

SEE ALSO:
  - tax.go: Slab tax and deduction cap
  - savings/pipeline.go: Producer of the GroupedSum input
*/
package returns

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/savings-engine/savings"
)

// =============================================================================
// VEHICLE CONFIGURATION - Strategy values, one shared calculator
// =============================================================================

// VehicleConfig distinguishes the two investment products sharing the
// calculator: annual growth rate and tax-benefit applicability.
type VehicleConfig struct {
	Rate              decimal.Decimal
	AppliesTaxBenefit bool
}

var (
	// NPS grows at 7.11% and qualifies for the section 80CCD deduction.
	NPS = VehicleConfig{Rate: decimal.NewFromFloat(0.0711), AppliesTaxBenefit: true}

	// IndexFund tracks NIFTY 50 at 14.49% with no tax benefit.
	IndexFund = VehicleConfig{Rate: decimal.NewFromFloat(0.1449), AppliesTaxBenefit: false}
)

// Result is the projection for one grouping window.
type Result struct {
	Start      time.Time
	End        time.Time
	Amount     decimal.Decimal
	Profit     decimal.Decimal
	TaxBenefit decimal.Decimal
}

var (
	one          = decimal.NewFromInt(1)
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// YearsToHorizon returns the projection horizon for an investor age:
// years until 60, never less than 5 (even past age 60).
func YearsToHorizon(age int) int {
	if t := 60 - age; t > 5 {
		return t
	}
	return 5
}

// Calculate projects each grouped sum for the given vehicle. Wage is the
// monthly wage; inflation is the annual rate in percent.
func Calculate(sums []savings.GroupedSum, age int, wage, inflation decimal.Decimal, cfg VehicleConfig) []Result {
	results := make([]Result, 0, len(sums))
	if len(sums) == 0 {
		return results
	}

	t := decimal.NewFromInt(int64(YearsToHorizon(age)))
	growth := one.Add(cfg.Rate).Pow(t)
	deflator := one.Add(inflation.Div(hundred)).Pow(t)
	annualIncome := wage.Mul(monthsInYear)

	for _, s := range sums {
		principal := s.Total
		realValue := principal.Mul(growth).Div(deflator)

		r := Result{
			Start:      s.Start,
			End:        s.End,
			Amount:     principal,
			Profit:     realValue.Sub(principal).Round(2),
			TaxBenefit: decimal.Zero,
		}

		if cfg.AppliesTaxBenefit {
			deduction := Deduction(principal, annualIncome)
			r.TaxBenefit = Tax(annualIncome).Sub(Tax(annualIncome.Sub(deduction))).Round(2)
		}

		results = append(results, r)
	}

	return results
}
