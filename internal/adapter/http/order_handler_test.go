package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

func TestGetOrderStatusServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	env.statuses.statuses["ORD-1"] = "PAID"

	w := env.do(http.MethodGet, "/v1/orders/ORD-1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// cache hit: no order row exists, the cached status is still served
	assert.JSONEq(t, `{"orderId":"ORD-1","status":"PAID"}`, w.Body.String())
}

func TestGetOrderStatusFallsBackToStore(t *testing.T) {
	env := newTestEnv(t, &domain.Order{
		ID:     "ORD-1",
		Items:  []domain.LineItem{{ProductID: "p1", Name: "Cable", UnitPrice: 50000, Quantity: 1}},
		Total:  50000,
		Status: domain.StatusWaitingApproval,
	})

	w := env.do(http.MethodGet, "/v1/orders/ORD-1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orderId":"ORD-1","status":"WAITING_APPROVAL"}`, w.Body.String())
}

func TestGetOrderStatusUnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/v1/orders/ORD-x/status", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListOrders(t *testing.T) {
	env := newTestEnv(t,
		&domain.Order{ID: "ORD-1", Status: domain.StatusPending, Total: 100,
			Items: []domain.LineItem{{ProductID: "p1", Name: "A", UnitPrice: 100, Quantity: 1}}},
		&domain.Order{ID: "ORD-2", Status: domain.StatusPaid, Total: 200,
			Items: []domain.LineItem{{ProductID: "p2", Name: "B", UnitPrice: 200, Quantity: 1}}},
	)
	token := adminToken(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []struct {
			OrderID string `json:"orderId"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)
}

func TestAdminListOrdersRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders", &bytes.Buffer{})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
