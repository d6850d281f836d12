package http

import (
	"net/http"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

// maxAttachmentMemory caps the multipart form buffer; larger uploads
// spill to temp files.
const maxAttachmentMemory = 10 << 20

// uploadAttachment accepts a multipart form with a single "file" part
// and stores it against the form.
func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	formID, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentMemory); err != nil {
		log.Err(err).Str("func", "*Handler.uploadAttachment").Msg("invalid multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	attachment, err := h.services.AttachmentService.Attach(r.Context(), formID, header.Filename, file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, attachment, http.StatusCreated)
}

func (h *Handler) listAttachments(w http.ResponseWriter, r *http.Request) {
	formID, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	attachments, err := h.services.AttachmentService.ListForForm(r.Context(), formID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if attachments == nil {
		attachments = []models.Attachment{}
	}
	utils.WriteJSON(w, attachments, http.StatusOK)
}

func (h *Handler) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid attachment id", http.StatusBadRequest)
		return
	}

	if err := h.services.AttachmentService.Remove(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
