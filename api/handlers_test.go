/*
handlers_test.go - Endpoint tests over the real router

Requests go through chi exactly as in production; the pipeline underneath
is pure and request-scoped, so no fixtures or fakes are needed.
*/
package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/savings-engine/api"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestRouter() http.Handler {
	return api.NewRouter(api.NewHandler(time.Now()))
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// The filter/returns scenario: override zeroes July, additive adds 25 in
// Q4, one negative reject. Valid remanents: 25, 0, 75, 45.
const scenarioTxns = `[
	{"date": "2023-02-28 15:49:20", "amount": 375},
	{"date": "2023-07-01 21:59:00", "amount": 620},
	{"date": "2023-10-12 20:15:30", "amount": 250},
	{"date": "2023-12-17 08:09:45", "amount": 480},
	{"date": "2023-12-17 08:09:45", "amount": -10}
]`

const scenarioQ = `[{"fixed": 0, "start": "2023-07-01 00:00:00", "end": "2023-07-31 23:59:59"}]`
const scenarioP = `[{"extra": 25, "start": "2023-10-01 08:00:00", "end": "2023-12-31 19:59:59"}]`

// =============================================================================
// PARSE ENDPOINT
// =============================================================================

func TestParseEndpoint_EnrichesExpenses(t *testing.T) {
	router := newTestRouter()

	rec := post(t, router, "/api/v1/transactions/parse",
		`[{"date": "2023-02-28 15:49:20", "amount": 375}, {"date": "2023-03-01 09:00:00", "amount": -10}]`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []api.TransactionDTO
	decodeBody(t, rec, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "2023-02-28 15:49:20", body[0].Date)
	assert.Equal(t, 400.0, body[0].Ceiling)
	assert.Equal(t, 25.0, body[0].Remanent)

	// No validation on this endpoint: negatives pass through the formula
	assert.Equal(t, 0.0, body[1].Ceiling)
	assert.Equal(t, 10.0, body[1].Remanent)
}

func TestParseEndpoint_BadDate(t *testing.T) {
	rec := post(t, newTestRouter(), "/api/v1/transactions/parse",
		`[{"date": "2023/02/28", "amount": 375}]`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid date format. Expected: YYYY-MM-DD HH:mm:ss", body.Error)
}

// =============================================================================
// VALIDATE ENDPOINT
// =============================================================================

func TestValidateEndpoint_WageRequired(t *testing.T) {
	rec := post(t, newTestRouter(), "/api/v1/transactions/validate", `{"transactions": []}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Wage is required", body.Error)
}

func TestValidateEndpoint_WageCheckEnabled(t *testing.T) {
	// GIVEN: One transaction above the wage, one duplicate pair
	rec := post(t, newTestRouter(), "/api/v1/transactions/validate", `{
		"wage": 500,
		"transactions": [
			{"date": "2023-01-01 10:00:00", "amount": 900, "ceiling": 900, "remanent": 0},
			{"date": "2023-01-02 10:00:00", "amount": 100, "ceiling": 100, "remanent": 0},
			{"date": "2023-01-02 10:00:00", "amount": 200, "ceiling": 200, "remanent": 0}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.ValidateResponse
	decodeBody(t, rec, &body)

	require.Len(t, body.Valid, 1)
	assert.Equal(t, 100.0, body.Valid[0].Amount)

	// Invalid entries on this endpoint keep ceiling and remanent
	require.Len(t, body.Invalid, 2)
	assert.Equal(t, "Amount exceeds monthly wage", body.Invalid[0].Message)
	require.NotNil(t, body.Invalid[0].Ceiling)
	assert.Equal(t, "Duplicate transaction", body.Invalid[1].Message)
}

// =============================================================================
// FILTER ENDPOINT
// =============================================================================

func TestFilterEndpoint_Scenario(t *testing.T) {
	// Wage 500 sits below several amounts: proves the wage check is off here.
	rec := post(t, newTestRouter(), "/api/v1/transactions/filter", `{
		"wage": 500,
		"transactions": `+scenarioTxns+`,
		"q": `+scenarioQ+`,
		"p": `+scenarioP+`,
		"k": [{"start": "2023-01-01 00:00:00", "end": "2023-12-31 23:59:59"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.FilterResponse
	decodeBody(t, rec, &body)

	require.Len(t, body.Valid, 4)
	wantRemanents := []float64{25, 0, 75, 45}
	for i, txn := range body.Valid {
		assert.True(t, txn.InWindow, "survivor %d tagged", i)
		assert.Equal(t, wantRemanents[i], txn.Remanent)
	}

	// 620 > 500 passed: the wage check is disabled on this endpoint.
	// The one reject is the negative amount.
	require.Len(t, body.Invalid, 1)
	assert.Equal(t, "Negative amounts are not allowed", body.Invalid[0].Message)
	assert.Nil(t, body.Invalid[0].Ceiling, "filter rejects carry no enrichment")
	assert.Nil(t, body.Invalid[0].Remanent)
}

func TestFilterEndpoint_EmptyWindowsDropEverything(t *testing.T) {
	// k present but matching nothing: survivors are silently dropped.
	rec := post(t, newTestRouter(), "/api/v1/transactions/filter", `{
		"wage": 50000,
		"transactions": `+scenarioTxns+`,
		"k": [{"start": "2025-01-01 00:00:00", "end": "2025-12-31 23:59:59"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.FilterResponse
	decodeBody(t, rec, &body)
	assert.Empty(t, body.Valid)
	assert.Len(t, body.Invalid, 1)
}

func TestFilterEndpoint_ReversedPeriodRejected(t *testing.T) {
	rec := post(t, newTestRouter(), "/api/v1/transactions/filter", `{
		"wage": 50000,
		"transactions": [],
		"q": [{"fixed": 5, "start": "2023-07-31 00:00:00", "end": "2023-07-01 00:00:00"}]
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Invalid q period: start must be before end", body.Error)
}

// =============================================================================
// RETURNS ENDPOINTS
// =============================================================================

func TestReturnsNPS_Scenario(t *testing.T) {
	rec := post(t, newTestRouter(), "/api/v1/returns/nps", `{
		"age": 29,
		"wage": 50000,
		"inflation": 5.5,
		"transactions": `+scenarioTxns+`,
		"q": `+scenarioQ+`,
		"p": `+scenarioP+`,
		"k": [{"start": "2023-01-01 00:00:00", "end": "2023-12-31 23:59:59"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.ReturnsResponse
	decodeBody(t, rec, &body)

	// Totals cover all valid transactions; the negative reject is dropped
	// silently and the grouping window reduces nothing.
	assert.Equal(t, 1725.0, body.TotalTransactionAmount)
	assert.Equal(t, 1900.0, body.TotalCeiling)

	require.Len(t, body.SavingsByDates, 1)
	saving := body.SavingsByDates[0]
	assert.Equal(t, "2023-01-01 00:00:00", saving.Start)
	assert.Equal(t, "2023-12-31 23:59:59", saving.End)
	assert.Equal(t, 145.0, saving.Amount)
	assert.InDelta(t, 86.88, saving.Profit, 0.01)
	assert.Equal(t, 0.0, saving.TaxBenefit, "income below taxable threshold")
}

func TestReturnsIndex_NoTaxBenefit(t *testing.T) {
	rec := post(t, newTestRouter(), "/api/v1/returns/index", `{
		"age": 40,
		"wage": 90000,
		"inflation": 6,
		"transactions": [{"date": "2023-05-01 10:00:00", "amount": 50}],
		"k": [{"start": "2023-01-01 00:00:00", "end": "2023-12-31 23:59:59"}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.ReturnsResponse
	decodeBody(t, rec, &body)
	require.Len(t, body.SavingsByDates, 1)
	assert.Equal(t, 0.0, body.SavingsByDates[0].TaxBenefit,
		"index fund never yields a tax benefit, whatever the income")
}

func TestReturnsEndpoint_FieldValidationOrder(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing age", `{"wage": 50000, "inflation": 5, "transactions": [], "k": []}`,
			"Age is required and must be a whole number"},
		{"age not positive", `{"age": 0, "wage": 50000, "inflation": 5, "transactions": [], "k": []}`,
			"Age must be a positive number"},
		{"missing wage", `{"age": 29, "inflation": 5, "transactions": [], "k": []}`,
			"Wage is required"},
		{"negative inflation", `{"age": 29, "wage": 50000, "inflation": -1, "transactions": [], "k": []}`,
			"Inflation rate must be non-negative"},
		{"missing k", `{"age": 29, "wage": 50000, "inflation": 5, "transactions": []}`,
			"At least one k period is required"},
	}

	router := newTestRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, router, "/api/v1/returns/nps", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body api.ErrorResponse
			decodeBody(t, rec, &body)
			assert.Equal(t, tc.want, body.Error)
		})
	}
}

// =============================================================================
// PERFORMANCE ENDPOINT
// =============================================================================

func TestPerformanceEndpoint(t *testing.T) {
	// GIVEN: A handler booted one minute ago
	router := api.NewRouter(api.NewHandler(time.Now().Add(-time.Minute)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/performance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.PerformanceResponse
	decodeBody(t, rec, &body)

	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}\.\d{3}$`, body.Time)
	assert.Regexp(t, `^\d+\.\d{2}$`, body.Memory, "MB value with no unit suffix")
	assert.Greater(t, body.Threads, 0)
}
