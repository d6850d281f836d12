package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/forms", func(r chi.Router) {
			r.Post("/", h.createForm)
			r.Get("/", h.listForms)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getForm)
				r.Patch("/", h.patchFormMeta)
				r.Delete("/", h.deleteForm)
				r.Get("/values", h.getFormValues)
				r.Put("/data", h.updateFormData)
				r.Post("/transition", h.transitionForm)
				r.Get("/transitions", h.availableTransitions)
				r.Get("/export/json", h.exportFormJSON)
				r.Get("/export/ics-des", h.exportFormICSDES)
				r.Post("/attachments", h.uploadAttachment)
				r.Get("/attachments", h.listAttachments)
			})
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", h.createIncident)
			r.Get("/", h.listIncidents)
			r.Get("/{id}", h.getIncident)
			r.Post("/{id}/close", h.closeIncident)
			r.Post("/{id}/reopen", h.reopenIncident)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.registerUser)
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Post("/{id}/login", h.touchUserLogin)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.listSettings)
			r.Put("/", h.putSettings)
			r.Get("/{key}", h.getSetting)
			r.Put("/{key}", h.putSetting)
		})

		r.Delete("/attachments/{id}", h.deleteAttachment)
	})

	return router
}
