package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/service"
)

// ClientOrderHandler handles public customer order requests
type ClientOrderHandler struct {
	clientOrderService *service.ClientOrderService
}

// NewClientOrderHandler creates a new client order handler
func NewClientOrderHandler(clientOrderService *service.ClientOrderService) *ClientOrderHandler {
	return &ClientOrderHandler{clientOrderService: clientOrderService}
}

// HandleMenu serves the public menu and restaurant info
func (h *ClientOrderHandler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	menu, info := h.clientOrderService.Menu()

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"menu":       menu,
		"restaurant": info,
	})
}

// HandleSubmit accepts a new customer order
func (h *ClientOrderHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	var req models.ClientOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	result, err := h.clientOrderService.Submit(r.Context(), req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, api.Payload{
		"message":        "order received",
		"order_number":   result.OrderNumber,
		"total_amount":   result.TotalAmount,
		"estimated_time": result.EstimatedTime,
	})
}

// HandleStatus serves order status lookups for /client-orders/status/{orderNumber}
func (h *ClientOrderHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	orderNumber := strings.TrimPrefix(r.URL.Path, "/api/client-orders/status/")
	if orderNumber == "" || strings.Contains(orderNumber, "/") {
		api.WriteError(w, api.Validation("invalid order number"))
		return
	}

	result, err := h.clientOrderService.GetStatus(r.Context(), orderNumber)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"order_number":   result.OrderNumber,
		"status":         result.Status,
		"total_amount":   result.TotalAmount,
		"created_at":     result.CreatedAt,
		"estimated_time": result.EstimatedTime,
	})
}

// HandleStaff handles staff updates for /client-orders/{orderNumber}/status
func (h *ClientOrderHandler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/client-orders/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "status" {
		api.WriteError(w, api.Validation("invalid path"))
		return
	}
	if r.Method != http.MethodPut {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	var req struct {
		Status models.ClientOrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	order, err := h.clientOrderService.UpdateStatus(r.Context(), parts[0], req.Status)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"message": "status updated",
		"order":   order,
	})
}
