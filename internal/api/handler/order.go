package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/middleware"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/service"
)

// OrderHandler handles multi-item order requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// HandleOrders handles requests for /orders and its sub-paths
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/orders")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "my-orders":
		if r.Method != http.MethodGet {
			api.WriteError(w, api.Validation("method not allowed"))
			return
		}
		h.listMine(w, r)
		return
	case "weekly-reset":
		if r.Method != http.MethodDelete {
			api.WriteError(w, api.Validation("method not allowed"))
			return
		}
		h.weeklyReset(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if path != "" {
			api.WriteError(w, api.Validation("invalid path"))
			return
		}
		h.listAll(w, r)

	case http.MethodPost:
		if path != "" {
			api.WriteError(w, api.Validation("invalid path"))
			return
		}
		h.createOrder(w, r)

	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.WriteError(w, api.Validation("invalid order ID"))
			return
		}
		h.deleteOrder(w, r, id)

	default:
		api.WriteError(w, api.Validation("method not allowed"))
	}
}

func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	order, err := h.orderService.Create(r.Context(), userID, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, api.Payload{
		"message": "order recorded",
		"order":   order,
	})
}

func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	if err := h.orderService.Delete(r.Context(), id, actor); err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{"message": "order deleted"})
}

func (h *OrderHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	orders, totalBonus, err := h.orderService.ListMine(r.Context(), userID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"orders":      orders,
		"total_bonus": totalBonus,
	})
}

func (h *OrderHandler) listAll(w http.ResponseWriter, r *http.Request) {
	if !middleware.GetIsAdmin(r.Context()) {
		api.WriteError(w, api.Forbidden("admin access required"))
		return
	}

	orders, stats, err := h.orderService.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"orders":         orders,
		"employee_stats": stats,
	})
}

func (h *OrderHandler) weeklyReset(w http.ResponseWriter, r *http.Request) {
	if !middleware.GetIsAdmin(r.Context()) {
		api.WriteError(w, api.Forbidden("admin access required"))
		return
	}

	deleted, err := h.orderService.WeeklyReset(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"message":       "weekly reset complete",
		"deleted_count": deleted,
	})
}
