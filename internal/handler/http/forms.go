package http

import (
	"encoding/json"
	"net/http"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/service"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

type createFormRequest struct {
	FormType       string        `json:"form_type"`
	IncidentName   string        `json:"incident_name"`
	IncidentNumber *string       `json:"incident_number,omitempty"`
	PreparerName   *string       `json:"preparer_name,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	Data           models.Values `json:"data,omitempty"`
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req createFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createForm").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	form, err := h.services.FormService.CreateForm(r.Context(), req.FormType, req.IncidentName, service.CreateFormOptions{
		IncidentNumber: req.IncidentNumber,
		PreparerName:   req.PreparerName,
		Notes:          req.Notes,
		Data:           req.Data,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusCreated)
}

func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	form, err := h.services.FormService.GetForm(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

// getFormValues serves the untyped key-value projection of a form row.
func (h *Handler) getFormValues(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	values, err := h.services.FormService.GetFormValues(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, values, http.StatusOK)
}

// listForms serves the form collection, narrowed by the incident,
// status, or q query parameters when present.
func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	limit, offset := pageParams(r)

	var (
		forms []models.Form
		err   error
	)
	switch {
	case query.Get("incident") != "":
		forms, err = h.services.FormService.ListByIncident(ctx, query.Get("incident"))
	case query.Get("status") != "":
		forms, err = h.services.FormService.ListByStatus(ctx, models.FormStatus(query.Get("status")))
	case query.Get("q") != "":
		forms, err = h.services.FormService.Search(ctx, query.Get("q"), limit, offset)
	default:
		forms, err = h.services.FormService.ListForms(ctx, limit, offset)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if forms == nil {
		forms = []models.Form{}
	}
	utils.WriteJSON(w, forms, http.StatusOK)
}

func (h *Handler) updateFormData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	var data models.Values
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Err(err).Str("func", "*Handler.updateFormData").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	form, err := h.services.FormService.UpdateFormData(r.Context(), id, data, forceParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

type formMetaRequest struct {
	Notes        *string `json:"notes,omitempty"`
	PreparerName *string `json:"preparer_name,omitempty"`
}

// patchFormMeta updates notes and preparer name. These live outside the
// template payload and are editable regardless of lifecycle status.
func (h *Handler) patchFormMeta(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	var req formMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.patchFormMeta").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if req.Notes != nil {
		if err := h.services.FormService.SetNotes(ctx, id, *req.Notes); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	if req.PreparerName != nil {
		if err := h.services.FormService.SetPreparer(ctx, id, *req.PreparerName); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	form, err := h.services.FormService.GetForm(ctx, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

type transitionRequest struct {
	Target models.FormStatus `json:"target"`
}

func (h *Handler) transitionForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.transitionForm").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	form, err := h.services.FormService.Transition(r.Context(), id, req.Target)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

func (h *Handler) availableTransitions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	available, err := h.services.FormService.AvailableTransitions(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if available == nil {
		available = []models.FormStatus{}
	}
	utils.WriteJSON(w, available, http.StatusOK)
}

func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid form id", http.StatusBadRequest)
		return
	}

	if err := h.services.FormService.DeleteForm(r.Context(), id, forceParam(r)); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
