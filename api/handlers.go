/*
handlers.go - HTTP API handlers for the savings engine

PURPOSE:
  Exposes the round-up pipeline and returns calculator via REST. Handles
  HTTP request/response, JSON serialization, and delegates to the savings
  and returns packages.

ENDPOINTS:
  POST /api/v1/transactions/parse     Enrich raw expenses (no validation)
  POST /api/v1/transactions/validate  Triage pre-enriched transactions
  POST /api/v1/transactions/filter    Full filter pipeline (q/p/k applied)
  POST /api/v1/returns/nps            NPS projection (tax benefit applied)
  POST /api/v1/returns/index          Index-fund projection (no tax benefit)
  GET  /api/v1/performance            Uptime / memory / goroutine report

REQUEST FLOW:
  1. Decode JSON body
  2. Fail-fast field validation (first error only, HTTP 400)
  3. Run the pipeline (pure, in-memory, request-scoped)
  4. Serialize response (dates formatted, money rounded to 2dp)

  Nothing is retained between requests: every index and slice the pipeline
  builds is discarded when the handler returns.

ERROR HANDLING:
  - 400: Malformed body, missing/invalid fields, reversed periods
  - 500: Never reached by the pipeline itself (no I/O after decoding)
  Per-transaction domain failures (negative, duplicate, wage) are data,
  not errors: they come back in the invalid list with a message.

SEE ALSO:
  - dto.go: Request/response shapes and boundary conversion
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/warp/savings-engine/returns"
	"github.com/warp/savings-engine/savings"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the handlers' process-lifetime state. StartTime is captured
// once at boot and injected here; the pipeline itself is stateless.
type Handler struct {
	StartTime time.Time
}

// NewHandler creates a handler with the given boot instant.
func NewHandler(start time.Time) *Handler {
	return &Handler{StartTime: start}
}

// =============================================================================
// TRANSACTION ENDPOINTS
// =============================================================================

// ParseTransactions enriches raw expenses with ceiling and remanent.
// The body is a bare JSON array. No validation runs here; negative amounts
// pass through with whatever the formula yields.
func (h *Handler) ParseTransactions(w http.ResponseWriter, r *http.Request) {
	var body []ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	expenses, err := toExpenses(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	txns := savings.Enrich(expenses)
	dtos := make([]TransactionDTO, len(txns))
	for i, t := range txns {
		dtos[i] = toTransactionDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ValidateTransactions triages pre-enriched transactions with the wage
// check enabled. Invalid entries keep their ceiling and remanent.
func (h *Handler) ValidateTransactions(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := checkWageField(body.Wage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if body.Transactions == nil {
		writeError(w, http.StatusBadRequest, errTxnsRequired.Error(), nil)
		return
	}

	txns, err := toTransactions(body.Transactions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	valid, invalid := savings.Validate(txns, body.Wage, true)

	resp := ValidateResponse{
		Valid:   make([]TransactionDTO, len(valid)),
		Invalid: make([]InvalidTransactionDTO, len(invalid)),
	}
	for i, t := range valid {
		resp.Valid[i] = toTransactionDTO(t)
	}
	for i, iv := range invalid {
		resp.Invalid[i] = toInvalidDTO(iv, true)
	}
	writeJSON(w, http.StatusOK, resp)
}

// FilterTransactions runs the full filter pipeline: enrich, validate
// (wage check off), override, additive, then tag-and-drop by k windows.
// Invalid entries carry date, amount, and message only.
func (h *Handler) FilterTransactions(w http.ResponseWriter, r *http.Request) {
	var body FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := checkWageField(body.Wage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if body.Transactions == nil {
		writeError(w, http.StatusBadRequest, errTxnsRequired.Error(), nil)
		return
	}

	expenses, err := toExpenses(body.Transactions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	overrides, err := toOverrides(body.Q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	additives, err := toAdditives(body.P)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	windows, err := toWindows(body.K)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	valid, invalid := savings.Process(expenses, overrides, additives, windows, body.Wage, false)

	resp := FilterResponse{
		Valid:   make([]FilteredTransactionDTO, len(valid)),
		Invalid: make([]InvalidTransactionDTO, len(invalid)),
	}
	for i, t := range valid {
		resp.Valid[i] = toFilteredDTO(t)
	}
	for i, iv := range invalid {
		resp.Invalid[i] = toInvalidDTO(iv, false)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RETURNS ENDPOINTS
// =============================================================================

// ReturnsNPS projects k-window sums for the NPS vehicle (7.11%, tax benefit).
func (h *Handler) ReturnsNPS(w http.ResponseWriter, r *http.Request) {
	h.runReturns(w, r, returns.NPS)
}

// ReturnsIndex projects k-window sums for the index fund (14.49%, no benefit).
func (h *Handler) ReturnsIndex(w http.ResponseWriter, r *http.Request) {
	h.runReturns(w, r, returns.IndexFund)
}

// runReturns is the shared returns-graph handler. Grouping windows are
// applied with grouping semantics only; validator rejects are silently
// dropped and the grand totals cover every valid transaction.
func (h *Handler) runReturns(w http.ResponseWriter, r *http.Request, cfg returns.VehicleConfig) {
	var body ReturnsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	switch {
	case body.Age == nil:
		writeError(w, http.StatusBadRequest, errAgeRequired.Error(), nil)
		return
	case *body.Age <= 0:
		writeError(w, http.StatusBadRequest, errAgePositive.Error(), nil)
		return
	}
	if err := checkWageField(body.Wage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	switch {
	case body.Inflation == nil:
		writeError(w, http.StatusBadRequest, errInflationNeeded.Error(), nil)
		return
	case body.Inflation.IsNegative():
		writeError(w, http.StatusBadRequest, errInflationNeg.Error(), nil)
		return
	}
	if body.Transactions == nil {
		writeError(w, http.StatusBadRequest, errTxnsRequired.Error(), nil)
		return
	}
	if len(body.K) == 0 {
		writeError(w, http.StatusBadRequest, errKRequired.Error(), nil)
		return
	}

	expenses, err := toExpenses(body.Transactions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	overrides, err := toOverrides(body.Q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	additives, err := toAdditives(body.P)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	windows, err := toWindows(body.K)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	summary := savings.ProcessReturns(expenses, overrides, additives, windows, body.Wage)
	results := returns.Calculate(summary.Sums, *body.Age, *body.Wage, *body.Inflation, cfg)

	resp := ReturnsResponse{
		TotalTransactionAmount: round2(summary.TotalAmount),
		TotalCeiling:           round2(summary.TotalCeiling),
		SavingsByDates:         make([]SavingResultDTO, len(results)),
	}
	for i, res := range results {
		resp.SavingsByDates[i] = toSavingResultDTO(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %s: %v", message, err)
	} else {
		log.Debugf("request rejected: %s", message)
	}
	writeJSON(w, status, resp)
}
