/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication and the boundary
  conversions around them:
  - Dates travel as "YYYY-MM-DD HH:mm:ss" strings and are parsed to
    time.Time exactly once per value, here, never inside pipeline loops.
  - Monetary output is rounded to 2 decimal places at serialization only;
    internal values keep full precision.
  - Required-field and range checks fail fast: conversion stops at the
    first structural error and the request never reaches the pipeline.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Response wrappers

WIRE FORMAT:
  The period lists keep their short wire keys for compatibility with the
  service this engine replaces:
    q  override periods  {fixed, start, end}
    p  additive periods  {extra, start, end}
    k  grouping windows  {start, end}

SEE ALSO:
  - handlers.go: Uses these types
  - savings/types.go: Domain counterparts
*/
package api

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/savings-engine/returns"
	"github.com/warp/savings-engine/savings"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ExpenseDTO is a raw dated amount. Pointer fields distinguish "absent"
// from zero so required-field errors are precise.
type ExpenseDTO struct {
	Date   *string          `json:"date"`
	Amount *decimal.Decimal `json:"amount"`
}

// TransactionInDTO is a pre-enriched transaction (validate endpoint input).
type TransactionInDTO struct {
	Date     *string          `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Ceiling  *decimal.Decimal `json:"ceiling"`
	Remanent *decimal.Decimal `json:"remanent"`
}

// OverridePeriodDTO carries one q period.
type OverridePeriodDTO struct {
	Fixed *decimal.Decimal `json:"fixed"`
	Start *string          `json:"start"`
	End   *string          `json:"end"`
}

// AdditivePeriodDTO carries one p period.
type AdditivePeriodDTO struct {
	Extra *decimal.Decimal `json:"extra"`
	Start *string          `json:"start"`
	End   *string          `json:"end"`
}

// GroupingWindowDTO carries one k window.
type GroupingWindowDTO struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ValidateRequest is the validate endpoint body.
type ValidateRequest struct {
	Wage         *decimal.Decimal   `json:"wage"`
	Transactions []TransactionInDTO `json:"transactions"`
}

// FilterRequest is the filter endpoint body.
type FilterRequest struct {
	Wage         *decimal.Decimal    `json:"wage"`
	Transactions []ExpenseDTO        `json:"transactions"`
	Q            []OverridePeriodDTO `json:"q"`
	P            []AdditivePeriodDTO `json:"p"`
	K            []GroupingWindowDTO `json:"k"`
}

// ReturnsRequest is the body shared by both returns endpoints.
type ReturnsRequest struct {
	Age          *int                `json:"age"`
	Wage         *decimal.Decimal    `json:"wage"`
	Inflation    *decimal.Decimal    `json:"inflation"`
	Transactions []ExpenseDTO        `json:"transactions"`
	Q            []OverridePeriodDTO `json:"q"`
	P            []AdditivePeriodDTO `json:"p"`
	K            []GroupingWindowDTO `json:"k"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TransactionDTO is an enriched transaction in API responses.
type TransactionDTO struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Ceiling  float64 `json:"ceiling"`
	Remanent float64 `json:"remanent"`
}

// FilteredTransactionDTO is a filter-endpoint survivor.
type FilteredTransactionDTO struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Ceiling  float64 `json:"ceiling"`
	Remanent float64 `json:"remanent"`
	InWindow bool    `json:"inWindow"`
}

// InvalidTransactionDTO pairs a rejected transaction with its message.
// Ceiling and remanent are included by the validate endpoint but omitted
// by the filter endpoint.
type InvalidTransactionDTO struct {
	Date     string   `json:"date"`
	Amount   float64  `json:"amount"`
	Message  string   `json:"message"`
	Ceiling  *float64 `json:"ceiling,omitempty"`
	Remanent *float64 `json:"remanent,omitempty"`
}

// ValidateResponse is the validate endpoint response.
type ValidateResponse struct {
	Valid   []TransactionDTO        `json:"valid"`
	Invalid []InvalidTransactionDTO `json:"invalid"`
}

// FilterResponse is the filter endpoint response.
type FilterResponse struct {
	Valid   []FilteredTransactionDTO `json:"valid"`
	Invalid []InvalidTransactionDTO  `json:"invalid"`
}

// SavingResultDTO is the projection for one grouping window.
type SavingResultDTO struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Amount     float64 `json:"amount"`
	Profit     float64 `json:"profit"`
	TaxBenefit float64 `json:"taxBenefit"`
}

// ReturnsResponse is the response of both returns endpoints. Totals cover
// every valid transaction; grouping windows never reduce them.
type ReturnsResponse struct {
	TotalTransactionAmount float64           `json:"totalTransactionAmount"`
	TotalCeiling           float64           `json:"totalCeiling"`
	SavingsByDates         []SavingResultDTO `json:"savingsByDates"`
}

// PerformanceResponse reports process uptime, memory, and goroutine count.
type PerformanceResponse struct {
	Time    string `json:"time"`
	Memory  string `json:"memory"`
	Threads int    `json:"threads"`
}

// ErrorResponse is the error body for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// BOUNDARY CONVERSION - Requests
// =============================================================================

var (
	errDateFormat       = errors.New("Invalid date format. Expected: YYYY-MM-DD HH:mm:ss")
	errAmountRequired   = errors.New("Amount is required")
	errWageRequired     = errors.New("Wage is required")
	errWagePositive     = errors.New("Wage must be a positive number")
	errAgeRequired      = errors.New("Age is required and must be a whole number")
	errAgePositive      = errors.New("Age must be a positive number")
	errInflationNeeded  = errors.New("Inflation rate is required")
	errInflationNeg     = errors.New("Inflation rate must be non-negative")
	errTxnsRequired     = errors.New("Transactions list is required")
	errKRequired        = errors.New("At least one k period is required")
	errFixedNegative    = errors.New("q period fixed value must be non-negative")
	errExtraNegative    = errors.New("p period extra value must be non-negative")
	errOverrideReversed = errors.New("Invalid q period: start must be before end")
	errAdditiveReversed = errors.New("Invalid p period: start must be before end")
	errWindowReversed   = errors.New("Invalid k period: start must be before end")
)

func parseDate(s *string) (time.Time, error) {
	if s == nil {
		return time.Time{}, errDateFormat
	}
	t, err := time.Parse(savings.DateLayout, *s)
	if err != nil {
		return time.Time{}, errDateFormat
	}
	return t, nil
}

func toExpenses(dtos []ExpenseDTO) ([]savings.Expense, error) {
	expenses := make([]savings.Expense, len(dtos))
	for i, d := range dtos {
		when, err := parseDate(d.Date)
		if err != nil {
			return nil, err
		}
		if d.Amount == nil {
			return nil, errAmountRequired
		}
		expenses[i] = savings.Expense{Date: when, Amount: *d.Amount}
	}
	return expenses, nil
}

func toTransactions(dtos []TransactionInDTO) ([]*savings.Transaction, error) {
	txns := make([]*savings.Transaction, len(dtos))
	for i, d := range dtos {
		when, err := parseDate(d.Date)
		if err != nil {
			return nil, err
		}
		if d.Amount == nil || d.Ceiling == nil || d.Remanent == nil {
			return nil, errAmountRequired
		}
		txns[i] = &savings.Transaction{
			Date:     when,
			Amount:   *d.Amount,
			Ceiling:  *d.Ceiling,
			Remanent: *d.Remanent,
		}
	}
	return txns, nil
}

func toOverrides(dtos []OverridePeriodDTO) ([]savings.OverridePeriod, error) {
	periods := make([]savings.OverridePeriod, len(dtos))
	for i, d := range dtos {
		start, err := parseDate(d.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(d.End)
		if err != nil {
			return nil, err
		}
		if d.Fixed == nil || d.Fixed.IsNegative() {
			return nil, errFixedNegative
		}
		if start.After(end) {
			return nil, errOverrideReversed
		}
		periods[i] = savings.OverridePeriod{Start: start, End: end, Fixed: *d.Fixed}
	}
	return periods, nil
}

func toAdditives(dtos []AdditivePeriodDTO) ([]savings.AdditivePeriod, error) {
	periods := make([]savings.AdditivePeriod, len(dtos))
	for i, d := range dtos {
		start, err := parseDate(d.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(d.End)
		if err != nil {
			return nil, err
		}
		if d.Extra == nil || d.Extra.IsNegative() {
			return nil, errExtraNegative
		}
		if start.After(end) {
			return nil, errAdditiveReversed
		}
		periods[i] = savings.AdditivePeriod{Start: start, End: end, Extra: *d.Extra}
	}
	return periods, nil
}

func toWindows(dtos []GroupingWindowDTO) ([]savings.GroupingWindow, error) {
	windows := make([]savings.GroupingWindow, len(dtos))
	for i, d := range dtos {
		start, err := parseDate(d.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(d.End)
		if err != nil {
			return nil, err
		}
		if start.After(end) {
			return nil, errWindowReversed
		}
		windows[i] = savings.GroupingWindow{Start: start, End: end}
	}
	return windows, nil
}

func checkWageField(wage *decimal.Decimal) error {
	if wage == nil {
		return errWageRequired
	}
	if !wage.IsPositive() {
		return errWagePositive
	}
	return nil
}

// =============================================================================
// BOUNDARY CONVERSION - Responses (2dp rounding happens here only)
// =============================================================================

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func round2Ptr(d decimal.Decimal) *float64 {
	f := round2(d)
	return &f
}

func fmtDate(t time.Time) string {
	return t.Format(savings.DateLayout)
}

func toTransactionDTO(t *savings.Transaction) TransactionDTO {
	return TransactionDTO{
		Date:     fmtDate(t.Date),
		Amount:   round2(t.Amount),
		Ceiling:  round2(t.Ceiling),
		Remanent: round2(t.Remanent),
	}
}

func toFilteredDTO(t *savings.Transaction) FilteredTransactionDTO {
	return FilteredTransactionDTO{
		Date:     fmtDate(t.Date),
		Amount:   round2(t.Amount),
		Ceiling:  round2(t.Ceiling),
		Remanent: round2(t.Remanent),
		InWindow: t.InWindow,
	}
}

// toInvalidDTO serializes a reject. The validate endpoint includes ceiling
// and remanent; the filter endpoint reports date, amount, and message only.
func toInvalidDTO(iv savings.InvalidTransaction, withEnrichment bool) InvalidTransactionDTO {
	dto := InvalidTransactionDTO{
		Date:    fmtDate(iv.Transaction.Date),
		Amount:  round2(iv.Transaction.Amount),
		Message: iv.Reason.Message(),
	}
	if withEnrichment {
		dto.Ceiling = round2Ptr(iv.Transaction.Ceiling)
		dto.Remanent = round2Ptr(iv.Transaction.Remanent)
	}
	return dto
}

func toSavingResultDTO(r returns.Result) SavingResultDTO {
	return SavingResultDTO{
		Start:      fmtDate(r.Start),
		End:        fmtDate(r.End),
		Amount:     round2(r.Amount),
		Profit:     round2(r.Profit),
		TaxBenefit: round2(r.TaxBenefit),
	}
}
