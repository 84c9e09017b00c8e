package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/api/handler"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/service"
)

type memClientOrderStore struct {
	orders []models.ClientOrder
}

func (m *memClientOrderStore) Create(_ context.Context, order models.ClientOrder) (*models.ClientOrder, error) {
	order.ID = uuid.New()
	m.orders = append(m.orders, order)
	o := order
	return &o, nil
}

func (m *memClientOrderStore) GetByOrderNumber(_ context.Context, orderNumber string) (*models.ClientOrder, error) {
	for i := range m.orders {
		if m.orders[i].OrderNumber == orderNumber {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, api.NotFound("order not found")
}

func (m *memClientOrderStore) UpdateStatus(_ context.Context, orderNumber string, status models.ClientOrderStatus) (*models.ClientOrder, error) {
	for i := range m.orders {
		if m.orders[i].OrderNumber == orderNumber {
			m.orders[i].Status = status
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, api.NotFound("order not found")
}

type memCounter struct {
	n int
}

func (m *memCounter) Next(_ context.Context, _, _ string) (int, error) {
	m.n++
	return m.n, nil
}

func newHandler() (*handler.ClientOrderHandler, *memClientOrderStore) {
	store := &memClientOrderStore{}
	svc := service.NewClientOrderService(store, &memCounter{}, nil, nil)
	return handler.NewClientOrderHandler(svc), store
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleSubmit(t *testing.T) {
	h, store := newHandler()

	payload := `{
		"customer_info": {"name": "Jean Dupont", "phone": "0612345678"},
		"items": [
			{"product_name": "T-Rex Burger", "base_price": 1000, "quantity": 1},
			{"product_name": "Frites maison", "base_price": 500, "quantity": 2}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/client-orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2000.0, body["total_amount"])
	assert.NotEmpty(t, body["order_number"])
	assert.Equal(t, "15-25 minutes", body["estimated_time"])
	assert.Len(t, store.orders, 1)
}

func TestHandleSubmitRejectsMissingPhone(t *testing.T) {
	h, store := newHandler()

	payload := `{
		"customer_info": {"name": "Jean Dupont", "phone": ""},
		"items": [{"product_name": "T-Rex Burger", "base_price": 1000, "quantity": 1}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/client-orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "customer name and phone are required", body["message"])
	assert.Empty(t, store.orders)
}

func TestHandleSubmitRejectsBadJSON(t *testing.T) {
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/client-orders", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMenu(t *testing.T) {
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/client-orders/menu", nil)
	rec := httptest.NewRecorder()
	h.HandleMenu(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "menu")
	assert.Contains(t, body, "restaurant")
}

func TestHandleStatus(t *testing.T) {
	h, store := newHandler()
	store.orders = append(store.orders, models.ClientOrder{
		OrderNumber: "TEX20250901001",
		Status:      models.ClientOrderPreparing,
		TotalAmount: 2000,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/client-orders/status/TEX20250901001", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "preparing", body["status"])
	assert.Equal(t, "10-15 minutes", body["estimated_time"])
}

func TestHandleStatusUnknownOrder(t *testing.T) {
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/client-orders/status/TEX20250901999", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStaffUpdatesStatus(t *testing.T) {
	h, store := newHandler()
	store.orders = append(store.orders, models.ClientOrder{
		OrderNumber: "TEX20250901001",
		Status:      models.ClientOrderPending,
	})

	req := httptest.NewRequest(http.MethodPut, "/client-orders/TEX20250901001/status", strings.NewReader(`{"status": "ready"}`))
	rec := httptest.NewRecorder()
	h.HandleStaff(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ClientOrderReady, store.orders[0].Status)
}

func TestHandleStaffRejectsUnknownStatus(t *testing.T) {
	h, _ := newHandler()

	req := httptest.NewRequest(http.MethodPut, "/client-orders/TEX20250901001/status", strings.NewReader(`{"status": "burnt"}`))
	rec := httptest.NewRecorder()
	h.HandleStaff(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
