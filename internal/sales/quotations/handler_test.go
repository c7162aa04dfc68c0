package quotations

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-quotes/internal/platform/httpx"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, newTestService(nil))
	r := chi.NewRouter()
	r.Route("/sales", h.MountRoutes)
	return r
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

const scenarioBody = `{
	"items": [
		{"id": "a", "size_rows": [{"quantity": 10, "unit_price": "100"}]},
		{"id": "b", "size_rows": [{"quantity": "5", "unit_price": 200}]}
	],
	"special_discount_type": "amount",
	"special_discount_value": 200,
	"has_withholding_tax": true,
	"withholding_tax_percentage": 3
}`

func TestHandlerCalculate(t *testing.T) {
	rr := post(t, newTestRouter(), "/sales/quotations/calculate", scenarioBody)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		DocumentType string `json:"document_type"`
		Outputs      struct {
			FinalTotal float64 `json:"finalTotal"`
			VAT        float64 `json:"vat"`
		} `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "quotation", body.DocumentType)
	assert.Equal(t, 126.0, body.Outputs.VAT)
	assert.Equal(t, 1872.0, body.Outputs.FinalTotal)
}

func TestHandlerInvoiceSubmission(t *testing.T) {
	rr := post(t, newTestRouter(), "/sales/invoices/submission", scenarioBody)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "invoice", body["document_type"])
	assert.Equal(t, 1872.0, body["final_total"])
	assert.Equal(t, 54.0, body["withholding_tax_amount"])
	assert.Nil(t, body["net_subtotal"])
}

func TestHandlerValidationProblem(t *testing.T) {
	rr := post(t, newTestRouter(), "/sales/quotations/calculate", `{"vat_percentage": "seven"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Equal(t, "must be a number", problem.Errors["vat_percentage"])
}

func TestHandlerMalformedJSON(t *testing.T) {
	rr := post(t, newTestRouter(), "/sales/invoices/calculate", `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerNegativeSubmission(t *testing.T) {
	rr := post(t, newTestRouter(), "/sales/quotations/submission", `{
		"items": [{"size_rows": [{"quantity": 1, "unit_price": 100}]}],
		"has_vat": false,
		"has_withholding_tax": true,
		"withholding_tax_percentage": 120
	}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "final total must not be negative")
}

func TestHandlerAggregateAndForm(t *testing.T) {
	router := newTestRouter()

	rr := post(t, router, "/sales/quotations/aggregate", `{
		"items": [
			{"id": "r1", "source_id": "pr-1", "item_name": "Polo - Navy", "size": "S", "quantity": "3", "unit_price": "99.5"}
		],
		"referenced_source_ids": ["pr-1"]
	}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"subtotal":298.5`)

	rr = post(t, router, "/sales/invoices/form", `{"actions": [{"type": "set_vat", "payload": {"enabled": false}}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"hasVat":false`)

	rr = post(t, router, "/sales/quotations/summary", scenarioBody)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"key":"withholding_tax"`)
}

func TestHandlerRejectsOversizedAmounts(t *testing.T) {
	router := newTestRouter()

	rr := post(t, router, "/sales/quotations/calculate", `{
		"items": [{"size_rows": [{"quantity": "1e200", "unit_price": 1e200}]}]
	}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Equal(t, "must be a number", problem.Errors["items[0].size_rows[0].quantity"])
	assert.Equal(t, "must be a number", problem.Errors["items[0].size_rows[0].unit_price"])

	rr = post(t, router, "/sales/invoices/calculate", `{
		"items": [{"size_rows": [{"quantity": "10000000000000", "unit_price": 1}]}]
	}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	problem = httpx.ProblemDetail{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Equal(t, "must be at most 1000000000000", problem.Errors["items[0].size_rows[0].quantity"])

	rr = post(t, router, "/sales/quotations/calculate", `{
		"items": [{"size_rows": [{"quantity": "1000000000000", "unit_price": "1000000000000"}]}]
	}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}
