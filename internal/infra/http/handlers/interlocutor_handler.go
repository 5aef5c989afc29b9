package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
)

type InterlocutorHandler struct {
	Interlocutors entity.InterlocutorRepository
}

func NewInterlocutorHandler(interlocutors entity.InterlocutorRepository) *InterlocutorHandler {
	return &InterlocutorHandler{Interlocutors: interlocutors}
}

type interlocutorRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IsPrincipal     bool   `json:"is_principal"`
	IsDecisionMaker bool   `json:"is_decision_maker"`
}

func (h *InterlocutorHandler) List(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.Interlocutors.ListByProspect(r.Context(), prospectID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *InterlocutorHandler) Create(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req interlocutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	i := &entity.Interlocutor{
		ProspectID:      prospectID,
		Name:            req.Name,
		Role:            req.Role,
		Email:           req.Email,
		Phone:           req.Phone,
		IsPrincipal:     req.IsPrincipal,
		IsDecisionMaker: req.IsDecisionMaker,
	}
	if err := i.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Interlocutors.Create(r.Context(), i, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": i.ID})
}

func (h *InterlocutorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req interlocutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	i := &entity.Interlocutor{
		ID:              id,
		Name:            req.Name,
		Role:            req.Role,
		Email:           req.Email,
		Phone:           req.Phone,
		IsPrincipal:     req.IsPrincipal,
		IsDecisionMaker: req.IsDecisionMaker,
	}
	if err := i.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Interlocutors.Update(r.Context(), i, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *InterlocutorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Interlocutors.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
