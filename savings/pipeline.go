/*
pipeline.go - Pipeline orchestration

PURPOSE:
  Composes the stages into the two supported call graphs:

    Filter graph   Enrich -> Validate -> ApplyOverrides -> ApplyAdditives
                   -> TagWindows (drop non-matchers)
    Returns graph  Enrich -> Validate -> ApplyOverrides -> ApplyAdditives
                   -> grand totals over ALL valid -> SumByWindow (no drop)

  The override and additive indexes are built exactly once per request here,
  regardless of transaction count. TagWindows and SumByWindow each build
  their own small grouping index internally (bounded cost, not shared).

  When all three period lists are empty, Process degenerates to
  Validate(Enrich(...)) and skips index construction entirely.

SEE ALSO:
  - periods.go: The individual stages
  - returns package: Consumer of GroupedSum output
*/
package savings

import "github.com/shopspring/decimal"

// Process runs the filter graph. The wage check is opt-in via checkWage
// (the filter endpoint passes a wage but disables the check). Returns the
// surviving valid transactions and the validator rejects.
func Process(
	expenses []Expense,
	overrides []OverridePeriod,
	additives []AdditivePeriod,
	windows []GroupingWindow,
	wage *decimal.Decimal,
	checkWage bool,
) ([]*Transaction, []InvalidTransaction) {
	txns := Enrich(expenses)
	valid, invalid := Validate(txns, wage, checkWage)

	if len(overrides) == 0 && len(additives) == 0 && len(windows) == 0 {
		return valid, invalid
	}

	// Indexes are built once per request, never per transaction.
	if len(overrides) > 0 {
		valid = ApplyOverrides(valid, overrides, BuildIndex(overrides))
	}
	if len(additives) > 0 {
		valid = ApplyAdditives(valid, additives, BuildIndex(additives))
	}
	if len(windows) > 0 {
		valid = TagWindows(valid, windows)
	}

	return valid, invalid
}

// ReturnsSummary is the returns-graph output: grand totals over every valid
// transaction (grouping windows never drop anything from these) plus the
// per-window remanent sums fed to the returns calculator.
type ReturnsSummary struct {
	TotalAmount  decimal.Decimal
	TotalCeiling decimal.Decimal
	Sums         []GroupedSum
}

// ProcessReturns runs the returns graph. Grouping windows are applied with
// grouping semantics only; validator rejects are dropped silently.
func ProcessReturns(
	expenses []Expense,
	overrides []OverridePeriod,
	additives []AdditivePeriod,
	windows []GroupingWindow,
	wage *decimal.Decimal,
) ReturnsSummary {
	valid, _ := Process(expenses, overrides, additives, nil, wage, false)

	totalAmount := decimal.Zero
	totalCeiling := decimal.Zero
	for _, txn := range valid {
		totalAmount = totalAmount.Add(txn.Amount)
		totalCeiling = totalCeiling.Add(txn.Ceiling)
	}

	return ReturnsSummary{
		TotalAmount:  totalAmount,
		TotalCeiling: totalCeiling,
		Sums:         SumByWindow(valid, windows),
	}
}
