package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutCreatesOrder(t *testing.T) {
	e := newEnv(t)

	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", validCheckout))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	orderID, _ := body["order_id"].(string)
	require.NotEmpty(t, orderID)

	resp = do(t, e.app, httptest.NewRequest("GET", "/api/v1/orders/"+orderID, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, resp)

	order := body["order"].(map[string]any)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "Ada Lovelace", order["customer_name"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Go 101", items[0].(map[string]any)["product_name"])
}

func TestCheckoutRejectsMalformedBody(t *testing.T) {
	e := newEnv(t)
	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", `{"customer_name": `))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request_body", decode(t, resp)["error"])
}

func TestCheckoutRejectsMissingFields(t *testing.T) {
	e := newEnv(t)
	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", `{
	  "customer_name": "Ada Lovelace",
	  "items": [{"product_id": "ebook-go-101", "quantity": 1}],
	  "total": "24.99",
	  "payment_method": "card"
	}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "validation_failed", body["error"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "checkoutRequest.CustomerEmail")
}

func TestCheckoutRejectsDuplicateLines(t *testing.T) {
	e := newEnv(t)
	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", `{
	  "customer_name": "Ada Lovelace",
	  "customer_email": "ada@example.com",
	  "items": [
	    {"product_id": "ebook-go-101", "quantity": 1},
	    {"product_id": "ebook-go-101", "quantity": 2}
	  ],
	  "total": "74.97",
	  "payment_method": "card"
	}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_failed", decode(t, resp)["error"])
}

func TestCheckoutInsufficientStock(t *testing.T) {
	e := newEnv(t)
	e.db.MustExec(`UPDATE products SET stock = 1 WHERE id = 'key-pixelforge'`)

	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", `{
	  "customer_name": "Ada Lovelace",
	  "customer_email": "ada@example.com",
	  "items": [{"product_id": "key-pixelforge", "quantity": 2}],
	  "total": "78.00",
	  "payment_method": "card"
	}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "insufficient_stock", body["error"])
	assert.Equal(t, "key-pixelforge", body["product_id"])
	assert.Equal(t, float64(2), body["requested"])
	assert.Equal(t, float64(1), body["available"])
}

func TestOrderLookupUnknownID(t *testing.T) {
	e := newEnv(t)
	resp := do(t, e.app, httptest.NewRequest("GET", "/api/v1/orders/no-such-order", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
