package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

// UserHandler serves the admin-only account management routes. The admin
// check happens in middleware.RequireAdmin before any of these run.
type UserHandler struct {
	Admin    *usecase.UserAdminUseCase
	Sessions entity.SessionRepository
}

func NewUserHandler(admin *usecase.UserAdminUseCase, sessions entity.SessionRepository) *UserHandler {
	return &UserHandler{Admin: admin, Sessions: sessions}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := h.Admin.Create(r.Context(), input)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Admin.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.Admin.SetPassword(r.Context(), id, req.Password); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "temp_password": req.Password})
}

func (h *UserHandler) TempPassword(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	password, err := h.Admin.TempPassword(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "temp_password": password})
}

func (h *UserHandler) ActiveUsers(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Sessions.ListActive(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
