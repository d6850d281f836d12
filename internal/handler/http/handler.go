package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/service"
)

type Handler struct {
	services *service.Services
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		version:  version,
		logger:   logger,
	}
}

// idParam extracts the {id} route parameter as an int64.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// pageParams reads limit/offset query parameters, zero when absent or
// malformed. Zero limit falls back to the storage default page size.
func pageParams(r *http.Request) (limit, offset uint64) {
	limit, _ = strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64)
	offset, _ = strconv.ParseUint(r.URL.Query().Get("offset"), 10, 64)
	return limit, offset
}

func forceParam(r *http.Request) bool {
	return r.URL.Query().Get("force") == "true"
}
