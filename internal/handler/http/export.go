package http

import (
	"net/http"

	"github.com/davistroy/radioforms-sub003/internal/export"
)

func (h *Handler) exportFormJSON(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	view, err := h.services.FormService.ExportView(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	doc, err := export.JSON(view)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

// exportFormICSDES serves the pipe-delimited radio transmission
// encoding as plain text.
func (h *Handler) exportFormICSDES(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	view, err := h.services.FormService.ExportView(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(export.ICSDES(view)))
}
