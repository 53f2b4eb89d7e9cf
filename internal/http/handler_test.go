package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GiftBoxPayments/internal/gateway"
	"GiftBoxPayments/internal/models"
	"GiftBoxPayments/internal/services"
	"GiftBoxPayments/internal/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID        map[string]*models.Order
	byGateway   map[string]*models.Order
	admins      map[string]bool
	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:      map[string]*models.Order{},
		byGateway: map[string]*models.Order{},
		admins:    map[string]bool{},
	}
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.createCalls++
	cp := *order
	f.byID[order.ID] = &cp
	f.byGateway[order.RazorpayOrderID] = &cp
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeStore) MarkPaid(ctx context.Context, gatewayOrderID, paymentID, sig string) (*models.Order, error) {
	order, ok := f.byGateway[gatewayOrderID]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	order.RazorpayPaymentID = &paymentID
	order.RazorpaySignature = &sig
	order.Status = models.OrderPaid
	cp := *order
	return &cp, nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.byID {
		cp := *order
		orders = append(orders, &cp)
	}
	return orders, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	order.Status = status
	cp := *order
	return &cp, nil
}

func (f *fakeStore) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return role == "admin" && f.admins[userID], nil
}

type fakeGateway struct {
	err   error
	calls int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (*gateway.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Order{ID: "order_abc", Amount: amountSubunits, Currency: currency, Receipt: receipt}, nil
}

type fakeIdentity struct {
	userID string
	err    error
}

func (f *fakeIdentity) Resolve(ctx context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

const testKeySecret = "test_key_secret"

func newTestServer(st *fakeStore, gw *fakeGateway, id *fakeIdentity) *Server {
	svc := &services.CheckoutService{
		Store:           st,
		Gateway:         gw,
		KeySecret:       testKeySecret,
		DefaultCurrency: "INR",
	}
	if id != nil {
		svc.Identity = id
	}
	return NewServer(NewHandler(svc))
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if s, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(s))
	} else if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

func validCheckoutBody() map[string]any {
	return map[string]any{
		"amount":          699,
		"currency":        "INR",
		"customerName":    "Asha Rao",
		"customerEmail":   "asha@example.com",
		"customerPhone":   "9876543210",
		"shippingAddress": "12 MG Road, Flat 3",
		"shippingCity":    "Mumbai",
		"shippingState":   "Maharashtra",
		"shippingPincode": "400001",
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{}, nil)

	rec := doJSON(t, srv, http.MethodPost, "/payments/orders", validCheckoutBody(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp struct {
		OrderID   string `json:"orderId"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		DBOrderID string `json:"dbOrderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, int64(69900), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.NotEmpty(t, resp.DBOrderID)

	require.Len(t, st.byID, 1)
	assert.Equal(t, models.OrderCreated, st.byID[resp.DBOrderID].Status)
}

func TestCreateOrderEndpointRejectsInvalidAmount(t *testing.T) {
	st := newFakeStore()
	gw := &fakeGateway{}
	srv := newTestServer(st, gw, nil)

	body := validCheckoutBody()
	body["amount"] = 0
	rec := doJSON(t, srv, http.MethodPost, "/payments/orders", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid amount")
	assert.Zero(t, gw.calls, "no gateway call on validation failure")
	assert.Zero(t, st.createCalls, "no row persisted on validation failure")
}

func TestCreateOrderEndpointRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeGateway{}, nil)
	rec := doJSON(t, srv, http.MethodPost, "/payments/orders", `{"amount": "lots"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid json body")
}

func TestCreateOrderEndpointGatewayFailure(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{err: errors.New("gateway down")}, nil)

	rec := doJSON(t, srv, http.MethodPost, "/payments/orders", validCheckoutBody(), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to create payment order")
	assert.Zero(t, st.createCalls)
}

func createTestOrder(t *testing.T, srv *Server) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/payments/orders", validCheckoutBody(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		DBOrderID string `json:"dbOrderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.DBOrderID
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{}, nil)
	dbOrderID := createTestOrder(t, srv)

	sig := signature.Compute(testKeySecret, "order_abc", "pay_123")
	rec := doJSON(t, srv, http.MethodPost, "/payments/verify", map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  sig,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Order   struct {
			ID                string `json:"id"`
			Status            string `json:"status"`
			RazorpayPaymentID string `json:"razorpayPaymentId"`
			RazorpaySignature string `json:"razorpaySignature"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, dbOrderID, resp.Order.ID)
	assert.Equal(t, "paid", resp.Order.Status)
	assert.Equal(t, "pay_123", resp.Order.RazorpayPaymentID)
	assert.Equal(t, sig, resp.Order.RazorpaySignature)
}

func TestVerifyPaymentEndpointForgedSignature(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{}, nil)
	dbOrderID := createTestOrder(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/payments/verify", map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  strings.Repeat("0", 64),
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid payment signature")
	assert.Equal(t, models.OrderCreated, st.byID[dbOrderID].Status, "order untouched")
}

func TestVerifyPaymentEndpointUnknownOrder(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeGateway{}, nil)

	sig := signature.Compute(testKeySecret, "order_ghost", "pay_123")
	rec := doJSON(t, srv, http.MethodPost, "/payments/verify", map[string]string{
		"razorpay_order_id":   "order_ghost",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  sig,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no order matches")
}

func TestVerifyPaymentEndpointIdempotent(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{}, nil)
	createTestOrder(t, srv)

	body := map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  signature.Compute(testKeySecret, "order_abc", "pay_123"),
	}
	first := doJSON(t, srv, http.MethodPost, "/payments/verify", body, nil)
	second := doJSON(t, srv, http.MethodPost, "/payments/verify", body, nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), `"status":"paid"`)
}

func TestGetOrderEndpoint(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(st, &fakeGateway{}, nil)
	dbOrderID := createTestOrder(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/payments/orders/"+dbOrderID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerName":"Asha Rao"`)

	rec = doJSON(t, srv, http.MethodGet, "/payments/orders/missing-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreflightCORS(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeGateway{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/payments/orders", nil)
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestAdminEndpoints(t *testing.T) {
	st := newFakeStore()
	id := &fakeIdentity{userID: "user-1"}
	srv := newTestServer(st, &fakeGateway{}, id)
	dbOrderID := createTestOrder(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/admin/orders", nil, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	st.admins["user-1"] = true
	rec = doJSON(t, srv, http.MethodGet, "/admin/orders", nil, map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), dbOrderID)

	rec = doJSON(t, srv, http.MethodPatch, "/admin/orders/"+dbOrderID+"/status",
		map[string]string{"status": "shipped"}, map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"shipped"`)

	rec = doJSON(t, srv, http.MethodPatch, "/admin/orders/"+dbOrderID+"/status",
		map[string]string{"status": "teleported"}, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPatch, "/admin/orders/missing-id/status",
		map[string]string{"status": "shipped"}, map[string]string{"Authorization": "Bearer tok"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
