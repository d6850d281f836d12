package http

import (
	"context"
	"io"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/service"
	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/models"
)

// Function-field fakes: each test plugs in only the methods its route
// touches; an unexpected call panics on the nil function.

type fakeFormService struct {
	createForm           func(ctx context.Context, formType, incidentName string, opts service.CreateFormOptions) (*models.Form, error)
	getForm              func(ctx context.Context, id int64) (*models.Form, error)
	getFormValues        func(ctx context.Context, id int64) (models.Values, error)
	listForms            func(ctx context.Context, limit, offset uint64) ([]models.Form, error)
	listByIncident       func(ctx context.Context, incidentName string) ([]models.Form, error)
	listByStatus         func(ctx context.Context, status models.FormStatus) ([]models.Form, error)
	search               func(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error)
	updateFormData       func(ctx context.Context, id int64, data models.Values, force bool) (*models.Form, error)
	setNotes             func(ctx context.Context, id int64, notes string) error
	setPreparer          func(ctx context.Context, id int64, preparer string) error
	transition           func(ctx context.Context, id int64, target models.FormStatus) (*models.Form, error)
	availableTransitions func(ctx context.Context, id int64) ([]models.FormStatus, error)
	deleteForm           func(ctx context.Context, id int64, force bool) error
	exportView           func(ctx context.Context, id int64) (*service.ExportView, error)
}

func (f *fakeFormService) CreateForm(ctx context.Context, formType, incidentName string, opts service.CreateFormOptions) (*models.Form, error) {
	return f.createForm(ctx, formType, incidentName, opts)
}

func (f *fakeFormService) GetForm(ctx context.Context, id int64) (*models.Form, error) {
	return f.getForm(ctx, id)
}

func (f *fakeFormService) GetFormValues(ctx context.Context, id int64) (models.Values, error) {
	return f.getFormValues(ctx, id)
}

func (f *fakeFormService) ListForms(ctx context.Context, limit, offset uint64) ([]models.Form, error) {
	return f.listForms(ctx, limit, offset)
}

func (f *fakeFormService) ListByIncident(ctx context.Context, incidentName string) ([]models.Form, error) {
	return f.listByIncident(ctx, incidentName)
}

func (f *fakeFormService) ListByStatus(ctx context.Context, status models.FormStatus) ([]models.Form, error) {
	return f.listByStatus(ctx, status)
}

func (f *fakeFormService) Search(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error) {
	return f.search(ctx, query, limit, offset)
}

func (f *fakeFormService) UpdateFormData(ctx context.Context, id int64, data models.Values, force bool) (*models.Form, error) {
	return f.updateFormData(ctx, id, data, force)
}

func (f *fakeFormService) SetNotes(ctx context.Context, id int64, notes string) error {
	return f.setNotes(ctx, id, notes)
}

func (f *fakeFormService) SetPreparer(ctx context.Context, id int64, preparer string) error {
	return f.setPreparer(ctx, id, preparer)
}

func (f *fakeFormService) Transition(ctx context.Context, id int64, target models.FormStatus) (*models.Form, error) {
	return f.transition(ctx, id, target)
}

func (f *fakeFormService) AvailableTransitions(ctx context.Context, id int64) ([]models.FormStatus, error) {
	return f.availableTransitions(ctx, id)
}

func (f *fakeFormService) DeleteForm(ctx context.Context, id int64, force bool) error {
	return f.deleteForm(ctx, id, force)
}

func (f *fakeFormService) ExportView(ctx context.Context, id int64) (*service.ExportView, error) {
	return f.exportView(ctx, id)
}

var _ service.FormService = (*fakeFormService)(nil)

type fakeIncidentService struct {
	create func(ctx context.Context, name, description string, startDate time.Time) (*models.Incident, error)

	service.IncidentService
}

func (f *fakeIncidentService) Create(ctx context.Context, name, description string, startDate time.Time) (*models.Incident, error) {
	return f.create(ctx, name, description, startDate)
}

type fakeUserService struct {
	register func(ctx context.Context, name, callSign string) (*models.User, error)
	service.UserService
}

func (f *fakeUserService) Register(ctx context.Context, name, callSign string) (*models.User, error) {
	return f.register(ctx, name, callSign)
}

type fakeAttachmentService struct {
	attach func(ctx context.Context, formID int64, filename string, content io.Reader) (*models.Attachment, error)
	service.AttachmentService
}

func (f *fakeAttachmentService) Attach(ctx context.Context, formID int64, filename string, content io.Reader) (*models.Attachment, error) {
	return f.attach(ctx, formID, filename, content)
}

// sampleTemplate is the minimal template used by export endpoint tests.
func sampleTemplate() *template.Template {
	return &template.Template{
		FormType: models.FormTypeICS213,
		Version:  "1.0.0",
		Sections: []template.Section{
			{
				ID: "routing",
				Fields: []template.Field{
					{ID: "to", Type: template.TypeText},
					{ID: "from", Type: template.TypeText},
				},
			},
		},
	}
}
