package http

import (
	"encoding/json"
	"net/http"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/utils"
	"github.com/davistroy/radioforms-sub003/models"
)

type registerUserRequest struct {
	Name     string `json:"name"`
	CallSign string `json:"call_sign"`
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.registerUser").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Register(r.Context(), req.Name, req.CallSign)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// listUsers serves the operator roster; a call_sign query parameter
// narrows it to a single exact match.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if callSign := r.URL.Query().Get("call_sign"); callSign != "" {
		user, err := h.services.UserService.FindByCallSign(ctx, callSign)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		utils.WriteJSON(w, []models.User{*user}, http.StatusOK)
		return
	}

	limit, offset := pageParams(r)
	users, err := h.services.UserService.List(ctx, limit, offset)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	utils.WriteJSON(w, users, http.StatusOK)
}

// touchUserLogin stamps the operator's last activity time.
func (h *Handler) touchUserLogin(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.TouchLastLogin(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
