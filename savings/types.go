/*
Package savings provides the core round-up transaction engine.

PURPOSE:
  This package contains the deterministic, in-memory pipeline behind the
  micro-savings calculator: rounding enrichment, ordered validation triage,
  and interval-based period adjustment (override, additive, grouping).

KEY CONCEPTS IN THIS FILE (types.go):
  - Expense: A dated raw amount (input only)
  - Transaction: The mutable container threaded through the pipeline
  - OverridePeriod / AdditivePeriod / GroupingWindow: Time-window rules
  - ReasonCode: Why a transaction was routed to the invalid list
  - GroupedSum: Per-window remanent total (input to the returns calculator)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. In-place mutation: One Transaction instance flows through all stages,
     so later stages see earlier adjustments (remanent is never recomputed)
  3. Request scope: Every slice and index is built fresh per request and
     discarded afterwards; nothing is shared or cached across requests

USAGE:
  txns := savings.Enrich(expenses)
  valid, invalid := savings.Validate(txns, nil, false)

SEE ALSO:
  - round.go: Ceiling and remanent computation
  - validate.go: Validation rule order and reason codes
  - interval.go: The per-request interval index
  - periods.go: Override/additive/grouping resolvers
  - pipeline.go: End-to-end composition
*/
package savings

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the textual instant format used at the service boundary.
// Parsing to time.Time happens exactly once per value, never inside loops.
const DateLayout = "2006-01-02 15:04:05"

// MustDecimal parses a decimal string, returning zero on failure.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// EXPENSE - Raw input
// =============================================================================

// Expense is a dated monetary amount before enrichment.
type Expense struct {
	Date   time.Time
	Amount decimal.Decimal
}

// =============================================================================
// TRANSACTION - Mutable pipeline container
// =============================================================================

// Transaction is an enriched expense. Ceiling and Remanent are set once by
// Enrich; Remanent is thereafter adjusted in place by the override and
// additive resolvers, in that order. InWindow is set by the window tagger.
// After leaving the pipeline the object is read-only.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Ceiling  decimal.Decimal
	Remanent decimal.Decimal
	InWindow bool
}

// =============================================================================
// PERIODS - Time-window adjustment rules
// =============================================================================

// OverridePeriod replaces the remanent of matching transactions with a fixed
// value. Zero is a legitimate fixed value, not a "no match".
type OverridePeriod struct {
	Start time.Time
	End   time.Time
	Fixed decimal.Decimal
}

func (p OverridePeriod) Span() (time.Time, time.Time) { return p.Start, p.End }

// AdditivePeriod adds an extra value to the remanent of matching
// transactions. All overlapping additive periods sum.
type AdditivePeriod struct {
	Start time.Time
	End   time.Time
	Extra decimal.Decimal
}

func (p AdditivePeriod) Span() (time.Time, time.Time) { return p.Start, p.End }

// GroupingWindow is used both to filter (drop non-matching transactions, see
// TagWindows) and to group (sum remanents per window without dropping, see
// SumByWindow), depending on call site.
type GroupingWindow struct {
	Start time.Time
	End   time.Time
}

func (w GroupingWindow) Span() (time.Time, time.Time) { return w.Start, w.End }

// =============================================================================
// VALIDATION OUTCOME
// =============================================================================

// ReasonCode identifies why a transaction was routed to the invalid list.
type ReasonCode string

const (
	ReasonNegativeAmount ReasonCode = "NEGATIVE_AMOUNT"
	ReasonDuplicate      ReasonCode = "DUPLICATE_TRANSACTION"
	ReasonWageExceeded   ReasonCode = "WAGE_EXCEEDED"
)

// Message returns the human-readable boundary message for a reason code.
func (r ReasonCode) Message() string {
	switch r {
	case ReasonNegativeAmount:
		return "Negative amounts are not allowed"
	case ReasonDuplicate:
		return "Duplicate transaction"
	case ReasonWageExceeded:
		return "Amount exceeds monthly wage"
	default:
		return string(r)
	}
}

// InvalidTransaction pairs a rejected transaction with its reason code.
type InvalidTransaction struct {
	Transaction *Transaction
	Reason      ReasonCode
}

// =============================================================================
// GROUPED SUM - Per-window remanent total
// =============================================================================

// GroupedSum is the remanent total of one grouping window. SumByWindow emits
// one per input window, preserving input window order.
type GroupedSum struct {
	Start time.Time
	End   time.Time
	Total decimal.Decimal
}
