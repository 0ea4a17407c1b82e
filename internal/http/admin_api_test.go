package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSID(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	resp := do(t, e.app, jsonReq("POST", "/api/v1/login", `{"email":"admin@bytebazaar.test","password":"wrong"}`))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", decode(t, resp)["error"])

	resp = do(t, e.app, jsonReq("POST", "/api/v1/login", `{"email":"admin@bytebazaar.test","password":"Passw0rd!"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ADMIN", body["role"])
	assert.NotEmpty(t, sidCookie(resp))
}

func TestAdminRequiresAdminSession(t *testing.T) {
	e := newEnv(t)

	resp := do(t, e.app, httptest.NewRequest("GET", "/api/v1/admin/inventory", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "anonymous")

	userSID := login(t, e.app, "demo@bytebazaar.test")
	resp = do(t, e.app, withSID(httptest.NewRequest("GET", "/api/v1/admin/inventory", nil), userSID))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "non-admin session")

	adminSID := login(t, e.app, "admin@bytebazaar.test")
	resp = do(t, e.app, withSID(httptest.NewRequest("GET", "/api/v1/admin/inventory", nil), adminSID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["inventory"].([]any), 4)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	e := newEnv(t)
	sid := login(t, e.app, "admin@bytebazaar.test")

	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", validCheckout))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := decode(t, resp)["order_id"].(string)

	resp = do(t, e.app, withSID(jsonReq("POST", "/api/v1/admin/orders/"+orderID+"/status", `{"status":"paid"}`), sid))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stock int
	require.NoError(t, e.db.Get(&stock, `SELECT stock FROM products WHERE id = 'ebook-go-101'`))
	assert.Equal(t, 119, stock, "marking paid consumes stock")

	resp = do(t, e.app, withSID(jsonReq("POST", "/api/v1/admin/orders/"+orderID+"/status", `{"status":"shipped"}`), sid))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_status", decode(t, resp)["error"])

	resp = do(t, e.app, withSID(jsonReq("POST", "/api/v1/admin/orders/no-such-order/status", `{"status":"cancelled"}`), sid))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminInventoryUpdate(t *testing.T) {
	e := newEnv(t)
	sid := login(t, e.app, "admin@bytebazaar.test")

	resp := do(t, e.app, withSID(jsonReq("POST", "/api/v1/admin/inventory", `{"product_id":"tool-fontpack","stock":7}`), sid))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stock int
	require.NoError(t, e.db.Get(&stock, `SELECT stock FROM products WHERE id = 'tool-fontpack'`))
	assert.Equal(t, 7, stock)

	resp = do(t, e.app, withSID(jsonReq("POST", "/api/v1/admin/inventory", `{"product_id":"tool-fontpack","stock":-3}`), sid))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminOrdersList(t *testing.T) {
	e := newEnv(t)
	sid := login(t, e.app, "admin@bytebazaar.test")

	resp := do(t, e.app, jsonReq("POST", "/api/v1/orders", validCheckout))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, e.app, withSID(httptest.NewRequest("GET", "/api/v1/admin/orders", nil), sid))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders := decode(t, resp)["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, "pending", orders[0].(map[string]any)["status"])
}
