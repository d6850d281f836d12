package service

import (
	"github.com/davistroy/radioforms-sub003/internal/config"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/template"
)

// Services bundles every application service for injection into the
// transport layer.
type Services struct {
	FormService       FormService
	IncidentService   IncidentService
	UserService       UserService
	AttachmentService AttachmentService
	SettingService    SettingService
}

// NewServices wires all services over the repositories and the template
// catalog.
func NewServices(storages *store.Storages, catalog *template.Catalog, cfg config.StructuredConfig, log *logger.Logger) *Services {
	return &Services{
		FormService:       NewFormService(storages.Forms, storages.Incidents, catalog, log),
		IncidentService:   NewIncidentService(storages.Incidents, log),
		UserService:       NewUserService(storages.Users, log),
		AttachmentService: NewAttachmentService(storages.Attachments, storages.Forms, cfg.Storage.Files, log),
		SettingService:    NewSettingService(storages.Settings, log),
	}
}
