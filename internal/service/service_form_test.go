// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davistroy/radioforms-sub003/internal/config"
	"github.com/davistroy/radioforms-sub003/internal/lifecycle"
	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/internal/template"
	"github.com/davistroy/radioforms-sub003/models"
)

func newTestFormService(t *testing.T) (FormService, *fakeFormRepo, *fakeIncidentRepo) {
	t.Helper()
	catalog, err := template.NewCatalog(config.Templates{}, logger.Nop())
	require.NoError(t, err)

	forms := newFakeFormRepo()
	incidents := newFakeIncidentRepo()
	return NewFormService(forms, incidents, catalog, logger.Nop()), forms, incidents
}

func createTestIncident(t *testing.T, incidents *fakeIncidentRepo, name string) {
	t.Helper()
	_, err := incidents.Create(context.Background(), models.Incident{
		Name:      name,
		StartDate: time.Now().UTC(),
	})
	require.NoError(t, err)
}

// completeMessage fills every required ICS-213 field.
func completeMessage() models.Values {
	return models.Values{
		"to":      "Operations",
		"from":    "Planning",
		"subject": "Radio request",
		"date":    "2026-08-20",
		"time":    "14:30",
		"message": "requesting two additional handhelds",
	}
}

func TestCreateForm(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")

	form, err := svc.CreateForm(context.Background(), models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, form.Status)
	assert.Equal(t, "Test Fire", form.IncidentName)
	assert.NotZero(t, form.ID)
	assert.NotNil(t, form.Data)
}

func TestCreateForm_UnknownTemplate(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")

	// ICS-209 is a known form type but has no bundled template
	_, err := svc.CreateForm(context.Background(), models.FormTypeICS209, "Test Fire", CreateFormOptions{})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateForm_MissingIncident(t *testing.T) {
	svc, _, _ := newTestFormService(t)

	_, err := svc.CreateForm(context.Background(), models.FormTypeICS213, "Ghost Fire", CreateFormOptions{})
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestCreateForm_MalformedInitialDataRejected(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")

	// an incomplete draft is fine, but a type violation is not
	_, err := svc.CreateForm(context.Background(), models.FormTypeICS213, "Test Fire", CreateFormOptions{
		Data: models.Values{"date": "not a date"},
	})

	var verr *template.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Issues[0].FieldID)
}

func TestTransition_BlocksOnMissingRequiredFields(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{
		Data: models.Values{
			"to":      "Operations",
			"from":    "Planning",
			"subject": "Radio request",
			"date":    "2026-08-20",
			"time":    "14:30",
			// message deliberately absent
		},
	})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, form.ID, models.StatusFinal)
	var verr *template.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.MissingFields(), "message")

	// populate the missing field and retry
	_, err = svc.UpdateFormData(ctx, form.ID, completeMessage(), false)
	require.NoError(t, err)

	final, err := svc.Transition(ctx, form.ID, models.StatusFinal)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinal, final.Status)
}

func TestTransition_IllegalMove(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{Data: completeMessage()})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, form.ID, models.StatusFinal)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, form.ID, models.StatusDraft)
	var trErr *lifecycle.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, models.StatusFinal, trErr.From)
	assert.Equal(t, models.StatusDraft, trErr.To)
}

func TestTransition_ArchivalSkipsValidation(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	// an empty draft cannot complete, but it can be archived
	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)

	archived, err := svc.Transition(ctx, form.ID, models.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, archived.Status)
}

func TestUpdateFormData_FinalIsImmutable(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{Data: completeMessage()})
	require.NoError(t, err)
	_, err = svc.Transition(ctx, form.ID, models.StatusFinal)
	require.NoError(t, err)

	data := completeMessage()
	data["message"] = "revised after the fact"

	_, err = svc.UpdateFormData(ctx, form.ID, data, false)
	assert.ErrorIs(t, err, ErrFormImmutable)

	// the explicit override path still works
	updated, err := svc.UpdateFormData(ctx, form.ID, data, true)
	require.NoError(t, err)
	assert.Equal(t, "revised after the fact", updated.Data["message"])

	// and the status-only move final→archived remains open
	archived, err := svc.Transition(ctx, form.ID, models.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, archived.Status)
}

func TestUpdateFormData_RevalidatesPayload(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)

	_, err = svc.UpdateFormData(ctx, form.ID, models.Values{"time": "half past two"}, false)
	var verr *template.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestDeleteForm_FinalRequiresForce(t *testing.T) {
	svc, forms, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{Data: completeMessage()})
	require.NoError(t, err)
	_, err = svc.Transition(ctx, form.ID, models.StatusFinal)
	require.NoError(t, err)

	err = svc.DeleteForm(ctx, form.ID, false)
	assert.ErrorIs(t, err, ErrFormImmutable)

	err = svc.DeleteForm(ctx, form.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{form.ID}, forms.deleted, "delete must cascade through the repository")
}

func TestDeleteForm_DraftNeedsNoForce(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteForm(ctx, form.ID, false))

	_, err = svc.GetForm(ctx, form.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAvailableTransitions(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)

	available, err := svc.AvailableTransitions(ctx, form.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.FormStatus{
		models.StatusCompleted, models.StatusFinal, models.StatusArchived,
	}, available)
}

func TestGetForm_NotFound(t *testing.T) {
	svc, _, _ := newTestFormService(t)

	_, err := svc.GetForm(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.GetFormValues(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetFormValues_MatchesTypedRead(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{Data: completeMessage()})
	require.NoError(t, err)

	values, err := svc.GetFormValues(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, form.FormType, values["form_type"])
	assert.Equal(t, form.IncidentName, values["incident_name"])
	assert.Equal(t, string(form.Status), values["status"])
}

func TestSetNotesAndPreparer(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{})
	require.NoError(t, err)

	require.NoError(t, svc.SetNotes(ctx, form.ID, "relayed via simplex"))
	require.NoError(t, svc.SetPreparer(ctx, form.ID, "J. Alvarez"))

	reloaded, err := svc.GetForm(ctx, form.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Notes)
	assert.Equal(t, "relayed via simplex", *reloaded.Notes)
	require.NotNil(t, reloaded.PreparerName)
	assert.Equal(t, "J. Alvarez", *reloaded.PreparerName)

	assert.ErrorIs(t, svc.SetNotes(ctx, 404, "x"), store.ErrNotFound)
}

func TestExportView(t *testing.T) {
	svc, _, incidents := newTestFormService(t)
	createTestIncident(t, incidents, "Test Fire")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, models.FormTypeICS213, "Test Fire", CreateFormOptions{Data: completeMessage()})
	require.NoError(t, err)

	view, err := svc.ExportView(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, view.Form.ID)
	require.NotNil(t, view.Template)
	assert.Equal(t, models.FormTypeICS213, view.Template.FormType)

	_, err = svc.ExportView(ctx, 404)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
