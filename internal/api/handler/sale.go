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

// SaleHandler handles sale-related requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// HandleSales handles requests for /sales and its sub-paths
func (h *SaleHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sales")
	path = strings.TrimPrefix(path, "/")

	// Special endpoints
	switch path {
	case "my-sales":
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
		h.createSale(w, r)

	case http.MethodPut:
		id, err := uuid.Parse(path)
		if err != nil {
			api.WriteError(w, api.Validation("invalid sale ID"))
			return
		}
		h.updateSale(w, r, id)

	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.WriteError(w, api.Validation("invalid sale ID"))
			return
		}
		h.deleteSale(w, r, id)

	default:
		api.WriteError(w, api.Validation("method not allowed"))
	}
}

func (h *SaleHandler) createSale(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	var req models.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	sale, err := h.saleService.Create(r.Context(), userID, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, api.Payload{
		"message": "sale recorded",
		"sale":    sale,
	})
}

func (h *SaleHandler) updateSale(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	var req models.SaleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	sale, err := h.saleService.Update(r.Context(), id, actor, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"message": "sale updated",
		"sale":    sale,
	})
}

func (h *SaleHandler) deleteSale(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	if err := h.saleService.SoftDelete(r.Context(), id, actor); err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{"message": "sale deleted"})
}

func (h *SaleHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	sales, totalBonus, err := h.saleService.ListMine(r.Context(), userID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"sales":       sales,
		"total_bonus": totalBonus,
	})
}

func (h *SaleHandler) listAll(w http.ResponseWriter, r *http.Request) {
	if !middleware.GetIsAdmin(r.Context()) {
		api.WriteError(w, api.Forbidden("admin access required"))
		return
	}

	sales, stats, err := h.saleService.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"sales":          sales,
		"employee_stats": stats,
	})
}

func (h *SaleHandler) weeklyReset(w http.ResponseWriter, r *http.Request) {
	if !middleware.GetIsAdmin(r.Context()) {
		api.WriteError(w, api.Forbidden("admin access required"))
		return
	}

	deleted, err := h.saleService.WeeklyReset(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"message":       "weekly reset complete",
		"deleted_count": deleted,
	})
}
