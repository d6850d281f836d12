// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"io"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/models"
)

// CreateFormOptions carries the optional attributes of a new form.
type CreateFormOptions struct {
	IncidentNumber *string
	PreparerName   *string
	Notes          *string

	// Data is the initial payload. It is checked for well-formedness
	// but not for completeness; a draft may start empty.
	Data models.Values
}

// ExportView is the read-only pair export adapters consume: the form
// row together with the template that describes it.
type ExportView struct {
	Form     models.Form
	Template *template.Template
}

// FormService owns the form lifecycle: creation, payload mutation,
// status transitions, and deletion.
type FormService interface {
	CreateForm(ctx context.Context, formType, incidentName string, opts CreateFormOptions) (*models.Form, error)

	GetForm(ctx context.Context, id int64) (*models.Form, error)
	GetFormValues(ctx context.Context, id int64) (models.Values, error)
	ListForms(ctx context.Context, limit, offset uint64) ([]models.Form, error)
	ListByIncident(ctx context.Context, incidentName string) ([]models.Form, error)
	ListByStatus(ctx context.Context, status models.FormStatus) ([]models.Form, error)
	Search(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error)

	// UpdateFormData replaces the data payload. Final and archived
	// forms reject the change unless force is set.
	UpdateFormData(ctx context.Context, id int64, data models.Values, force bool) (*models.Form, error)
	SetNotes(ctx context.Context, id int64, notes string) error
	SetPreparer(ctx context.Context, id int64, preparer string) error

	// Transition moves the form to target when the state machine
	// allows it; entering completed or final also gates on the
	// template's required fields.
	Transition(ctx context.Context, id int64, target models.FormStatus) (*models.Form, error)
	AvailableTransitions(ctx context.Context, id int64) ([]models.FormStatus, error)

	// DeleteForm removes the form and its attachments. A final form
	// requires force.
	DeleteForm(ctx context.Context, id int64, force bool) error

	ExportView(ctx context.Context, id int64) (*ExportView, error)
}

// IncidentService manages the incidents that group forms.
type IncidentService interface {
	Create(ctx context.Context, name, description string, startDate time.Time) (*models.Incident, error)
	Get(ctx context.Context, id int64) (*models.Incident, error)
	GetByName(ctx context.Context, name string) (*models.Incident, error)
	List(ctx context.Context, limit, offset uint64) ([]models.Incident, error)
	ListActive(ctx context.Context) ([]models.Incident, error)

	Close(ctx context.Context, id int64, endDate time.Time) error
	Reopen(ctx context.Context, id int64) error
}

// UserService manages operator records.
type UserService interface {
	Register(ctx context.Context, name, callSign string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	FindByCallSign(ctx context.Context, callSign string) (*models.User, error)
	List(ctx context.Context, limit, offset uint64) ([]models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// AttachmentService manages files attached to forms. Content is copied
// into the configured attachments directory under a generated name; the
// original filename is kept on the record for display.
type AttachmentService interface {
	Attach(ctx context.Context, formID int64, filename string, content io.Reader) (*models.Attachment, error)
	ListForForm(ctx context.Context, formID int64) ([]models.Attachment, error)
	Remove(ctx context.Context, id int64) error
}

// SettingService is the persisted key-value configuration store.
type SettingService interface {
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
	BulkSet(ctx context.Context, settings map[string]string) error
	All(ctx context.Context) ([]models.Setting, error)
}
