package handlers

import (
	"io"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

// 15 MB, comfortably above any quote PDF seen so far.
const maxUploadSize = 15 << 20

type AttachmentHandler struct {
	Attachments *usecase.AttachmentUseCase
}

func NewAttachmentHandler(attachments *usecase.AttachmentUseCase) *AttachmentHandler {
	return &AttachmentHandler{Attachments: attachments}
}

// Upload expects a multipart form with the file under the "pdf" field.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "pdf field is required")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	key, err := h.Attachments.Attach(r.Context(), prospectID, middleware.UserID(r.Context()),
		blob, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, err)
		return
	}

	middleware.RecordAttachmentUpload()
	writeJSON(w, http.StatusOK, map[string]any{"pdf_url": key, "success": true})
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Attachments.Detach(r.Context(), prospectID, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	blob, err := h.Attachments.Fetch(r.Context(), prospectID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	io.Copy(w, blob)
}
