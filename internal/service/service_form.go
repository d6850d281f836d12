// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/davistroy/radioforms-sub003/internal/lifecycle"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/models"
)

type formService struct {
	forms     store.FormRepository
	incidents store.IncidentRepository
	catalog   *template.Catalog

	logger *logger.Logger
}

// NewFormService wires the form lifecycle service over its repositories
// and the template catalog.
func NewFormService(forms store.FormRepository, incidents store.IncidentRepository, catalog *template.Catalog, log *logger.Logger) FormService {
	return &formService{
		forms:     forms,
		incidents: incidents,
		catalog:   catalog,
		logger:    log,
	}
}

// CreateForm creates a new draft. The form type must have a template
// and the incident must exist; the initial payload is checked for
// well-formedness only, so a draft may start incomplete or empty.
func (s *formService) CreateForm(ctx context.Context, formType, incidentName string, opts CreateFormOptions) (*models.Form, error) {
	tpl, ok := s.catalog.Get(formType)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	incident, err := s.incidents.FindByName(ctx, incidentName)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, ErrIncidentNotFound
	}

	data := opts.Data.Clone()
	if data == nil {
		data = models.Values{}
	}
	if verr := template.ValidatePartial(data, tpl); verr != nil {
		return nil, verr
	}

	form := models.Form{
		FormType:       formType,
		IncidentName:   incidentName,
		IncidentNumber: opts.IncidentNumber,
		Status:         models.StatusDraft,
		Data:           data,
		Notes:          opts.Notes,
		PreparerName:   opts.PreparerName,
	}

	id, err := s.forms.Create(ctx, form)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "formService.CreateForm").
		Int64("form_id", id).
		Str("form_type", formType).
		Str("incident_name", incidentName).
		Msg("form created")

	return s.GetForm(ctx, id)
}

// GetForm loads a form or fails with [store.ErrNotFound]. Service
// operations require the row to exist, unlike the repository finders.
func (s *formService) GetForm(ctx context.Context, id int64) (*models.Form, error) {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, store.ErrNotFound
	}
	return form, nil
}

func (s *formService) GetFormValues(ctx context.Context, id int64) (models.Values, error) {
	values, err := s.forms.FindByIDValues(ctx, id)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, store.ErrNotFound
	}
	return values, nil
}

func (s *formService) ListForms(ctx context.Context, limit, offset uint64) ([]models.Form, error) {
	return s.forms.FindAll(ctx, limit, offset)
}

func (s *formService) ListByIncident(ctx context.Context, incidentName string) ([]models.Form, error) {
	return s.forms.FindByIncident(ctx, incidentName)
}

func (s *formService) ListByStatus(ctx context.Context, status models.FormStatus) ([]models.Form, error) {
	return s.forms.FindByStatus(ctx, status)
}

func (s *formService) Search(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error) {
	return s.forms.Search(ctx, query, limit, offset)
}

// UpdateFormData replaces the payload after re-validating it against
// the template. Completeness is not enforced here; only transitions
// gate on required fields.
func (s *formService) UpdateFormData(ctx context.Context, id int64, data models.Values, force bool) (*models.Form, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.Editable(form.Status) && !force {
		return nil, ErrFormImmutable
	}

	tpl, ok := s.catalog.Get(form.FormType)
	if !ok {
		return nil, ErrTemplateNotFound
	}
	if verr := template.ValidatePartial(data, tpl); verr != nil {
		return nil, verr
	}

	raw, err := data.MarshalData()
	if err != nil {
		return nil, err
	}
	if _, err := s.forms.UpdatePatch(ctx, id, models.Values{"data": raw}); err != nil {
		return nil, err
	}

	return s.GetForm(ctx, id)
}

func (s *formService) SetNotes(ctx context.Context, id int64, notes string) error {
	if _, err := s.GetForm(ctx, id); err != nil {
		return err
	}
	_, err := s.forms.UpdatePatch(ctx, id, models.Values{"notes": notes})
	return err
}

func (s *formService) SetPreparer(ctx context.Context, id int64, preparer string) error {
	if _, err := s.GetForm(ctx, id); err != nil {
		return err
	}
	_, err := s.forms.UpdatePatch(ctx, id, models.Values{"preparer_name": preparer})
	return err
}

// Transition moves the form along the lifecycle. Entering completed or
// final validates the payload fully; the only mutation is status (and
// the updated_at stamp).
func (s *formService) Transition(ctx context.Context, id int64, target models.FormStatus) (*models.Form, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Validate(form.Status, target); err != nil {
		return nil, err
	}

	if lifecycle.RequiresValidation(target) {
		tpl, ok := s.catalog.Get(form.FormType)
		if !ok {
			return nil, ErrTemplateNotFound
		}
		if verr := template.Validate(form.Data, tpl); verr != nil {
			return nil, verr
		}
	}

	if _, err := s.forms.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "formService.Transition").
		Int64("form_id", id).
		Str("from", string(form.Status)).
		Str("to", string(target)).
		Msg("form status changed")

	return s.GetForm(ctx, id)
}

func (s *formService) AvailableTransitions(ctx context.Context, id int64) ([]models.FormStatus, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}
	return lifecycle.Available(form.Status), nil
}

// DeleteForm removes the form together with its attachments. A final
// form is protected: deleting it requires force.
func (s *formService) DeleteForm(ctx context.Context, id int64, force bool) error {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return err
	}
	if form.Status == models.StatusFinal && !force {
		return ErrFormImmutable
	}

	deleted, err := s.forms.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}

	s.logger.Info().
		Str("func", "formService.DeleteForm").
		Int64("form_id", id).
		Bool("force", force).
		Msg("form deleted")

	return nil
}

func (s *formService) ExportView(ctx context.Context, id int64) (*ExportView, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl, ok := s.catalog.Get(form.FormType)
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return &ExportView{Form: *form, Template: tpl}, nil
}
