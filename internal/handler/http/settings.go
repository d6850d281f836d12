package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

type settingPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.services.SettingService.Get(r.Context(), key, r.URL.Query().Get("default"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, settingPayload{Key: key, Value: value}, http.StatusOK)
}

func (h *Handler) putSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key := chi.URLParam(r, "key")

	var req settingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.putSetting").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.SettingService.Set(r.Context(), key, req.Value); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// putSettings replaces several settings in one transaction.
func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.putSettings").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.SettingService.BulkSet(r.Context(), req); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.SettingService.All(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if settings == nil {
		settings = []models.Setting{}
	}
	utils.WriteJSON(w, settings, http.StatusOK)
}
