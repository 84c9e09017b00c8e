package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/service"
)

// UserHandler handles admin employee-account management
type UserHandler struct {
	employeeService *service.EmployeeService
}

// NewUserHandler creates a new user handler
func NewUserHandler(employeeService *service.EmployeeService) *UserHandler {
	return &UserHandler{employeeService: employeeService}
}

// HandleUsers handles requests for /users and /users/{id}
func (h *UserHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users")
	path = strings.TrimPrefix(path, "/")

	switch r.Method {
	case http.MethodGet:
		if path != "" {
			api.WriteError(w, api.Validation("invalid path"))
			return
		}
		h.listUsers(w, r)

	case http.MethodPost:
		if path != "" {
			api.WriteError(w, api.Validation("invalid path"))
			return
		}
		h.createUser(w, r)

	case http.MethodPut:
		id, err := uuid.Parse(path)
		if err != nil {
			api.WriteError(w, api.Validation("invalid user ID"))
			return
		}
		h.updateUser(w, r, id)

	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.WriteError(w, api.Validation("invalid user ID"))
			return
		}
		h.deleteUser(w, r, id)

	default:
		api.WriteError(w, api.Validation("method not allowed"))
	}
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.employeeService.List(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{"users": users})
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	user, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, api.Payload{
		"message": "user created",
		"user":    user,
	})
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	user, err := h.employeeService.Update(r.Context(), id, req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"message": "user updated",
		"user":    user,
	})
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{"message": "user deleted"})
}
