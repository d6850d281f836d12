package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

type createIncidentRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date,omitempty"`
}

func (h *Handler) createIncident(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req createIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createIncident").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	incident, err := h.services.IncidentService.Create(r.Context(), req.Name, req.Description, req.StartDate)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, incident, http.StatusCreated)
}

func (h *Handler) getIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid incident id", http.StatusBadRequest)
		return
	}

	incident, err := h.services.IncidentService.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, incident, http.StatusOK)
}

func (h *Handler) listIncidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		incidents []models.Incident
		err       error
	)
	if r.URL.Query().Get("active") == "true" {
		incidents, err = h.services.IncidentService.ListActive(ctx)
	} else {
		limit, offset := pageParams(r)
		incidents, err = h.services.IncidentService.List(ctx, limit, offset)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if incidents == nil {
		incidents = []models.Incident{}
	}
	utils.WriteJSON(w, incidents, http.StatusOK)
}

type closeIncidentRequest struct {
	EndDate time.Time `json:"end_date,omitempty"`
}

func (h *Handler) closeIncident(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid incident id", http.StatusBadRequest)
		return
	}

	var req closeIncidentRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Str("func", "*Handler.closeIncident").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	if err := h.services.IncidentService.Close(r.Context(), id, req.EndDate); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reopenIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid incident id", http.StatusBadRequest)
		return
	}

	if err := h.services.IncidentService.Reopen(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
