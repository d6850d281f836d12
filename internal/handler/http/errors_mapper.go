package http

import (
	"errors"
	"net/http"

	"github.com/davistroy/radioforms-sub003/internal/lifecycle"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/service"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

var errorStatusMap = map[error]int{
	store.ErrNotFound:           http.StatusNotFound,
	service.ErrTemplateNotFound: http.StatusNotFound,
	service.ErrIncidentNotFound: http.StatusNotFound,

	service.ErrFormImmutable: http.StatusConflict,

	store.ErrIncidentNameTaken: http.StatusConflict,
	store.ErrCallSignTaken:     http.StatusConflict,

	service.ErrNameRequired:        http.StatusBadRequest,
	service.ErrAttachmentsDisabled: http.StatusBadRequest,
}

// validationPayload is the 422 body: one entry per field-level issue so
// the client can render inline errors.
type validationPayload struct {
	Error  string           `json:"error"`
	Issues []template.Issue `json:"issues"`
}

// transitionPayload is the 409 body for an illegal lifecycle move.
type transitionPayload struct {
	Error string            `json:"error"`
	From  models.FormStatus `json:"from"`
	To    models.FormStatus `json:"to"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// respondError translates a service-layer error into an HTTP response.
// Validation and transition errors are expected and carry structured
// detail; storage failures are logged in full and surfaced as a generic
// message so internals never leak to the operator.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var verr *template.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSON(w, validationPayload{
			Error:  "validation failed",
			Issues: verr.Issues,
		}, http.StatusUnprocessableEntity)
		return
	}

	var trErr *lifecycle.TransitionError
	if errors.As(err, &trErr) {
		utils.WriteJSON(w, transitionPayload{
			Error: trErr.Error(),
			From:  trErr.From,
			To:    trErr.To,
		}, http.StatusConflict)
		return
	}

	var serr *template.SchemaError
	if errors.As(err, &serr) {
		utils.WriteJSON(w, errorPayload{Error: serr.Error()}, http.StatusBadRequest)
		return
	}

	var colErr *store.SchemaError
	if errors.As(err, &colErr) {
		utils.WriteJSON(w, errorPayload{Error: colErr.Error()}, http.StatusBadRequest)
		return
	}

	var storageErr *store.StorageError
	if errors.As(err, &storageErr) {
		log.Err(err).Msg("storage failure")
		utils.WriteJSON(w, errorPayload{Error: "save failed, try again"}, http.StatusInternalServerError)
		return
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			utils.WriteJSON(w, errorPayload{Error: target.Error()}, status)
			return
		}
	}

	log.Err(err).Msg("unexpected error")
	utils.WriteJSON(w, errorPayload{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
}
