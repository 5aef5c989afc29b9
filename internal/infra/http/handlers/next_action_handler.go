package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
)

type NextActionHandler struct {
	Actions entity.NextActionRepository
}

func NewNextActionHandler(actions entity.NextActionRepository) *NextActionHandler {
	return &NextActionHandler{Actions: actions}
}

type nextActionRequest struct {
	ActionType    string `json:"action_type"`
	PlannedDate   string `json:"planned_date"`
	Actor         string `json:"actor"`
	Completed     bool   `json:"completed"`
	CompletedNote string `json:"completed_note"`
}

func (h *NextActionHandler) List(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	actions, err := h.Actions.ListByProspect(r.Context(), prospectID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actions)
}

func (h *NextActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req nextActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	a := &entity.NextAction{
		ProspectID:  prospectID,
		ActionType:  req.ActionType,
		PlannedDate: parsePlannedDate(req.PlannedDate),
		Actor:       req.Actor,
		UserID:      middleware.UserID(r.Context()),
	}

	if err := h.Actions.Create(r.Context(), a); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": a.ID})
}

func (h *NextActionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req nextActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	a := &entity.NextAction{
		ID:            id,
		ActionType:    req.ActionType,
		PlannedDate:   parsePlannedDate(req.PlannedDate),
		Actor:         req.Actor,
		Completed:     req.Completed,
		CompletedNote: req.CompletedNote,
		UserID:        middleware.UserID(r.Context()),
	}

	if err := h.Actions.Update(r.Context(), a); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *NextActionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Actions.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func parsePlannedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
