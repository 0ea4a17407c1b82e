package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"bytebazaar/internal/config"
	"bytebazaar/internal/http/handlers"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/services"
)

type env struct {
	app   *fiber.App
	db    *sqlx.DB
	files string
}

// newEnv wires the API the way main does, minus rate limiters, on a
// seeded in-memory store.
func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{FilesDir: t.TempDir(), RateBase: "USD", RateQuote: "EUR"}
	deps := handlers.NewDeps(db, cfg)
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/category/:category", deps.ProductHandler.ListByCategory)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/availability", deps.ProductHandler.Availability)
	api.Post("/orders", deps.OrderHandler.Create)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Get("/orders/:id/download/:productID", deps.OrderHandler.Download)
	api.Post("/redeem/validate", deps.RedeemHandler.Validate)
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.OrdersList)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/orders/:id/payment", deps.AdminHandler.OrderPayment)
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.UpdateInventory)

	return &env{app: app, db: db, files: cfg.FilesDir}
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoErrorf(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func sidCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	return ""
}

// login returns the session cookie value for a seeded account.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := do(t, app, jsonReq("POST", "/api/v1/login", `{"email":"`+email+`","password":"Passw0rd!"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sid := sidCookie(resp)
	require.NotEmpty(t, sid)
	return sid
}

const validCheckout = `{
  "customer_name": "Ada Lovelace",
  "customer_email": "ada@example.com",
  "items": [{"product_id": "ebook-go-101", "quantity": 1}],
  "total": "24.99",
  "payment_method": "card"
}`
