package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type apiClient struct {
	t   *testing.T
	app *App
}

func newTestApp(t *testing.T) *apiClient {
	t.Helper()
	cfg := defaultConfig()
	cfg.DB.Driver = DBDriverSQLite
	cfg.DB.SQLitePath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.JWTSecretKey = "app-test-secret"
	cfg.MetricsEnabled = false

	a, err := NewWithConfig(logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &apiClient{t: t, app: a}
}

func (c *apiClient) do(method, path, token string, body any, headers ...string) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	c.app.Server.Engine.ServeHTTP(w, req)
	out := map[string]any{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (c *apiClient) signup(email, role string) (string, string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/register", "", map[string]any{
		"email": email, "password": "hunter22", "first_name": "A", "last_name": "B", "role": role,
	})
	require.Equal(c.t, http.StatusCreated, code, body)
	userID := body["user"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/login", "", map[string]any{"email": email, "password": "hunter22"})
	require.Equal(c.t, http.StatusOK, code, body)
	return userID, body["access_token"].(string)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	c := newTestApp(t)

	adminID, adminToken := c.signup("admin@example.com", "buyer")
	require.NoError(t, c.app.DB.Model(&types.User{}).Where("id = ?", adminID).Update("role", "admin").Error)
	_, sellerToken := c.signup("seller@example.com", "seller")
	_, buyerToken := c.signup("buyer@example.com", "buyer")

	code, body := c.do(http.MethodPost, "/api/categories", adminToken, map[string]any{"name": "Books"})
	require.Equal(t, http.StatusCreated, code, body)
	categoryID := body["category"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/stores", sellerToken, map[string]any{
		"name": "Shelf", "city": "Bandung", "regency": "Bandung", "full_address": "Jl. Braga 1",
	})
	require.Equal(t, http.StatusCreated, code, body)
	storeID := body["store"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/products", sellerToken, map[string]any{
		"store_id": storeID, "category_id": categoryID, "name": "Go Book", "price": "12.50", "stock_quantity": 3,
	})
	require.Equal(t, http.StatusCreated, code, body)
	productID := body["product"].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/cart/items", sellerToken, map[string]any{"product_id": productID, "quantity": 1})
	require.Equal(t, http.StatusForbidden, code, body)

	code, body = c.do(http.MethodPost, "/api/cart/items", buyerToken, map[string]any{"product_id": productID, "quantity": 2})
	require.Equal(t, http.StatusOK, code, body)

	checkout := map[string]any{"shipping_address": "Jl. Dago 2", "phone_number": "0812"}
	code, body = c.do(http.MethodPost, "/api/checkout", buyerToken, checkout, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, code, body)
	placed := body["orders"].([]any)
	require.Len(t, placed, 1)
	orderID := placed[0].(map[string]any)["id"].(string)

	code, body = c.do(http.MethodPost, "/api/checkout", buyerToken, checkout, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, true, body["replayed"])

	code, body = c.do(http.MethodPost, "/api/checkout", buyerToken, checkout)
	require.Equal(t, http.StatusUnprocessableEntity, code, body)

	code, body = c.do(http.MethodPatch, "/api/orders/"+orderID+"/status", buyerToken, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusForbidden, code, body)

	code, body = c.do(http.MethodPatch, "/api/orders/"+orderID+"/status", sellerToken, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, code, body)
	require.Equal(t, "confirmed", body["order"].(map[string]any)["status"])

	code, body = c.do(http.MethodPatch, "/api/orders/"+orderID+"/status", sellerToken, map[string]any{"status": "pending"})
	require.Equal(t, http.StatusConflict, code, body)

	code, body = c.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code, body)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newTestApp(t)
	code, _ := c.do(http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/healthcheck", "", nil)
	require.Equal(t, http.StatusOK, code)
}

func TestRequestBindingRejectsMalformedFields(t *testing.T) {
	c := newTestApp(t)
	code, body := c.do(http.MethodPost, "/api/register", "", map[string]any{
		"email": "not-an-address", "password": "hunter22", "first_name": "A", "last_name": "B",
	})
	require.Equal(t, http.StatusBadRequest, code, body)
	require.Equal(t, "invalid_request", body["error"].(map[string]any)["code"])

	_, sellerToken := c.signup("seller@example.com", "seller")
	code, body = c.do(http.MethodPost, "/api/products", sellerToken, map[string]any{
		"store_id": uuid.NewString(), "category_id": uuid.NewString(), "name": "Go Book", "price": "12.50",
		"image_urls": []string{"ftp://cdn.example.com/a.png"},
	})
	require.Equal(t, http.StatusBadRequest, code, body)
	require.Equal(t, "invalid_request", body["error"].(map[string]any)["code"])
}
