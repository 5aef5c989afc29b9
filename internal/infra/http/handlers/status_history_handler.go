package handlers

import (
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
)

// StatusHistoryHandler is read-only on purpose: history rows are created by
// the transition recorder, never through the API.
type StatusHistoryHandler struct {
	History entity.StatusHistoryRepository
}

func NewStatusHistoryHandler(history entity.StatusHistoryRepository) *StatusHistoryHandler {
	return &StatusHistoryHandler{History: history}
}

func (h *StatusHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	entries, err := h.History.ListByProspect(r.Context(), prospectID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
