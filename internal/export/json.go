// SPDX-License-Identifier: Apache-2.0

// Package export serializes form records for transfer outside the
// application. Adapters consume the read-only service export view and
// never reach into storage themselves.
package export

import (
	"encoding/json"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/service"
	"github.com/davistroy/radioforms-sub003/models"
)

// Document is the portable JSON shape of a single exported form. The
// template version is recorded so a future import can detect schema
// drift.
type Document struct {
	Form            models.Form `json:"form"`
	TemplateVersion string      `json:"template_version"`
	ExportedAt      time.Time   `json:"exported_at"`
}

// JSON renders the export view as an indented portable document.
func JSON(view *service.ExportView) ([]byte, error) {
	doc := Document{
		Form:            view.Form,
		TemplateVersion: view.Template.Version,
		ExportedAt:      time.Now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}
