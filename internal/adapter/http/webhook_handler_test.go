package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/configs"
	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/http/middleware"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/security"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

const testServerKey = "serverKey"

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo(seed ...*domain.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	for _, o := range seed {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	cp := *o
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	o, ok := f.orders[id]
	if !ok {
		return usecase.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) ListRecent(_ context.Context, limit int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	inserted []*domain.PaymentNotification
}

func (f *fakePaymentRepo) Insert(_ context.Context, n *domain.PaymentNotification) error {
	cp := *n
	f.inserted = append(f.inserted, &cp)
	return nil
}

type fakeGateway struct {
	resp usecase.GatewayTransactionResponse
	err  error
}

func (f *fakeGateway) CreateTransaction(_ context.Context, _ usecase.GatewayTransactionRequest) (usecase.GatewayTransactionResponse, error) {
	return f.resp, f.err
}

type fakeStatusCache struct {
	statuses map[string]string
}

func (f *fakeStatusCache) SetStatus(_ context.Context, orderID, status string) error {
	f.statuses[orderID] = status
	return nil
}

func (f *fakeStatusCache) GetStatus(_ context.Context, orderID string) (string, bool, error) {
	s, ok := f.statuses[orderID]
	return s, ok, nil
}

type fakeOTPStore struct{ code string }

func (f *fakeOTPStore) Put(_ context.Context, _, code string) error { f.code = code; return nil }
func (f *fakeOTPStore) Consume(_ context.Context, _, code string) (bool, error) {
	if f.code != "" && f.code == code {
		f.code = ""
		return true, nil
	}
	return false, nil
}

type fakeMailer struct{ sent []string }

func (f *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

func testConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "antaraya-store"
	cfg.Security.Audience = "antaraya-admin"
	cfg.Security.TTL = time.Hour
	cfg.Notify.OperatorEmail = "ops@antaraya.id"
	return cfg
}

type testEnv struct {
	router   *gin.Engine
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	statuses *fakeStatusCache
}

func newTestEnv(t *testing.T, seed ...*domain.Order) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	orders := newFakeOrderRepo(seed...)
	payments := &fakePaymentRepo{}
	gw := &fakeGateway{}
	statuses := &fakeStatusCache{statuses: map[string]string{}}
	verifier := security.NewSignatureVerifier(testServerKey)

	oh := NewOrderHandler(
		usecase.NewCreateCheckout(orders),
		usecase.NewInitiateTransaction(orders, gw),
		orders, statuses)
	ph := NewPaymentHandler(usecase.NewManualPayment(orders, nil, cfg.Notify.OperatorEmail))
	wh := NewWebhookHandler(usecase.NewReconcileWebhook(verifier, orders, payments))
	ah := NewAdminHandler(usecase.NewUpdateStatus(orders), orders)
	th := NewTokenHandler(cfg, &fakeOTPStore{}, &fakeMailer{})

	return &testEnv{
		router:   NewRouter(oh, ph, wh, ah, th, middleware.NewAuthz(cfg)),
		orders:   orders,
		payments: payments,
		gateway:  gw,
		statuses: statuses,
	}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func signedWebhookBody(orderID, statusCode, gross, txStatus string) map[string]string {
	v := security.NewSignatureVerifier(testServerKey)
	return map[string]string{
		"order_id":           orderID,
		"status_code":        statusCode,
		"gross_amount":       gross,
		"transaction_status": txStatus,
		"transaction_id":     "tx-1",
		"payment_type":       "qris",
		"signature_key":      v.Expected(orderID, statusCode, gross),
	}
}

func TestWebhookSettlement(t *testing.T) {
	env := newTestEnv(t, &domain.Order{
		ID:     "order-123",
		Items:  []domain.LineItem{{ProductID: "p1", Name: "Earbuds", UnitPrice: 150000, Quantity: 1}},
		Total:  150000,
		Status: domain.StatusPending,
	})

	w := env.do(http.MethodPost, "/v1/payments/notify",
		signedWebhookBody("order-123", "200", "150000", "settlement"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	o, _ := env.orders.GetByID(context.Background(), "order-123")
	assert.Equal(t, domain.StatusPaid, o.Status)
	require.Len(t, env.payments.inserted, 1)
	assert.Equal(t, int64(150000), env.payments.inserted[0].GrossAmount)
}

func TestWebhookForgedSignature(t *testing.T) {
	env := newTestEnv(t, &domain.Order{ID: "order-123", Total: 150000, Status: domain.StatusPending,
		Items: []domain.LineItem{{ProductID: "p1", Name: "Earbuds", UnitPrice: 150000, Quantity: 1}}})

	body := signedWebhookBody("order-123", "200", "150000", "settlement")
	body["signature_key"] = "deadbeef"
	w := env.do(http.MethodPost, "/v1/payments/notify", body)

	assert.Equal(t, http.StatusForbidden, w.Code)
	o, _ := env.orders.GetByID(context.Background(), "order-123")
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Empty(t, env.payments.inserted)
}

func TestWebhookUnknownOrderAcknowledged(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/v1/payments/notify",
		signedWebhookBody("order-ghost", "200", "9000", "settlement"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.payments.inserted, 1)
	assert.Empty(t, env.orders.orders)
}

func TestWebhookWrongMethod(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/v1/payments/notify", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestWebhookMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/notify",
		bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func adminToken(t *testing.T, cfg configs.Config) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      cfg.Security.Issuer,
		"aud":      cfg.Security.Audience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
		"clientID": "ops@antaraya.id",
		"perms":    []string{"orders.admin"},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Security.JWTSecret))
	require.NoError(t, err)
	return signed
}

func TestAdminStatusUpdate(t *testing.T) {
	env := newTestEnv(t, &domain.Order{ID: "ORD-1", Status: domain.StatusWaitingApproval,
		Items: []domain.LineItem{{ProductID: "p1", Name: "Speaker", UnitPrice: 750000, Quantity: 1}},
		Total: 750000})
	token := adminToken(t, testConfig())

	body, _ := json.Marshal(map[string]string{"orderId": "ORD-1", "status": "PAID"})
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	o, _ := env.orders.GetByID(context.Background(), "ORD-1")
	assert.Equal(t, domain.StatusPaid, o.Status)
}

func TestAdminStatusUpdateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/v1/admin/orders/status",
		map[string]string{"orderId": "ORD-1", "status": "PAID"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminStatusUpdateMissingFields(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, testConfig())

	body, _ := json.Marshal(map[string]string{"orderId": "ORD-1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStatusUpdateUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	token := adminToken(t, testConfig())

	body, _ := json.Marshal(map[string]string{"orderId": "ORD-x", "status": "PAID"})
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/orders/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
