package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemValidateEndpoint(t *testing.T) {
	e := newEnv(t)

	resp := do(t, e.app, jsonReq("POST", "/api/v1/redeem/validate", `{
	  "code": "save10",
	  "items": [{"product_id": "ebook-go-101", "quantity": 1}]
	}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "SAVE10", body["code"])
	assert.Equal(t, "10", body["discount_percent"])

	var used int
	require.NoError(t, e.db.Get(&used, `SELECT used_count FROM redeem_codes WHERE code = 'SAVE10'`))
	assert.Equal(t, 0, used, "validation endpoint is read-only")
}

func TestRedeemValidateFailures(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		name   string
		body   string
		status int
		errKey string
	}{
		{"unknown code", `{"code":"NOPE"}`, http.StatusNotFound, "not_found"},
		{"scoped code without its product", `{"code":"FONTFAN","items":[{"product_id":"ebook-go-101","quantity":1}]}`, http.StatusBadRequest, "code_not_applicable"},
		{"missing code field", `{"items":[]}`, http.StatusBadRequest, "validation_failed"},
		{"bad characters", `{"code":"no spaces!"}`, http.StatusBadRequest, "invalid_code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, e.app, jsonReq("POST", "/api/v1/redeem/validate", tc.body))
			require.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.errKey, decode(t, resp)["error"])
		})
	}
}
