// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

// formSchema mirrors the forms table exactly. The data payload is stored as
// serialized JSON text in the data column.
var formSchema = TableSchema{
	Table: "forms",
	Key:   "id",
	Columns: []Column{
		{Name: "id", Generated: true},
		{Name: "form_type"},
		{Name: "incident_name"},
		{Name: "incident_number", Nullable: true},
		{Name: "status"},
		{Name: "data"},
		{Name: "notes", Nullable: true},
		{Name: "preparer_name", Nullable: true},
		{Name: "created_at", Generated: true},
		{Name: "updated_at", Generated: true},
	},
}

// FormMapper converts between [models.Form] and the canonical row mapping.
type FormMapper struct{}

func (FormMapper) Schema() TableSchema { return formSchema }

func (FormMapper) ToValues(f models.Form) (models.Values, error) {
	data, err := f.Data.MarshalData()
	if err != nil {
		return nil, err
	}

	values := models.Values{
		"id":              f.ID,
		"form_type":       f.FormType,
		"incident_name":   f.IncidentName,
		"incident_number": nil,
		"status":          string(f.Status),
		"data":            data,
		"notes":           nil,
		"preparer_name":   nil,
	}
	if f.IncidentNumber != nil {
		values["incident_number"] = *f.IncidentNumber
	}
	if f.Notes != nil {
		values["notes"] = *f.Notes
	}
	if f.PreparerName != nil {
		values["preparer_name"] = *f.PreparerName
	}
	if !f.CreatedAt.IsZero() {
		values["created_at"] = f.CreatedAt
	}
	if !f.UpdatedAt.IsZero() {
		values["updated_at"] = f.UpdatedAt
	}

	return values, nil
}

func (FormMapper) FromValues(values models.Values) (models.Form, error) {
	var f models.Form
	var err error

	if f.ID, err = Int64Value(values["id"]); err != nil {
		return f, err
	}
	if f.FormType, err = StringValue(values["form_type"]); err != nil {
		return f, err
	}
	if f.IncidentName, err = StringValue(values["incident_name"]); err != nil {
		return f, err
	}
	if f.IncidentNumber, err = StringPtrValue(values["incident_number"]); err != nil {
		return f, err
	}

	status, err := StringValue(values["status"])
	if err != nil {
		return f, err
	}
	f.Status = models.FormStatus(status)

	raw, err := StringValue(values["data"])
	if err != nil {
		return f, err
	}
	if f.Data, err = models.UnmarshalData(raw); err != nil {
		return f, err
	}

	if f.Notes, err = StringPtrValue(values["notes"]); err != nil {
		return f, err
	}
	if f.PreparerName, err = StringPtrValue(values["preparer_name"]); err != nil {
		return f, err
	}
	if f.CreatedAt, err = TimeValue(values["created_at"]); err != nil {
		return f, err
	}
	if f.UpdatedAt, err = TimeValue(values["updated_at"]); err != nil {
		return f, err
	}

	return f, nil
}

type formRepository struct {
	*BaseDAO[models.Form]

	db *DB
	// attachmentsCache is invalidated on cascade deletes, which remove
	// attachment rows outside the attachment repository.
	attachmentsCache Cache
	logger           *logger.Logger
}

// NewFormRepository constructs the form access object over db. The
// attachmentsCache belongs to the attachment repository sharing the same
// database; DeleteCascade invalidates it after removing attachment rows.
func NewFormRepository(db *DB, cache, attachmentsCache Cache, log *logger.Logger) FormRepository {
	return &formRepository{
		BaseDAO:          NewBaseDAO[models.Form](db, FormMapper{}, cache, log),
		db:               db,
		attachmentsCache: attachmentsCache,
		logger:           log,
	}
}

func (r *formRepository) FindByIncident(ctx context.Context, incidentName string) ([]models.Form, error) {
	return r.FindByFields(ctx, models.Values{"incident_name": incidentName})
}

func (r *formRepository) FindByStatus(ctx context.Context, status models.FormStatus) ([]models.Form, error) {
	return r.FindByFields(ctx, models.Values{"status": string(status)})
}

func (r *formRepository) FindByType(ctx context.Context, formType string) ([]models.Form, error) {
	return r.FindByFields(ctx, models.Values{"form_type": formType})
}

func (r *formRepository) Search(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error) {
	pattern := "%" + query + "%"
	return r.findWhere(ctx, sq.Or{
		sq.Like{"incident_name": pattern},
		sq.Like{"notes": pattern},
		sq.Like{"preparer_name": pattern},
	}, limit, offset)
}

func (r *formRepository) UpdateStatus(ctx context.Context, id int64, status models.FormStatus) (bool, error) {
	return r.UpdatePatch(ctx, id, models.Values{"status": string(status)})
}

func (r *formRepository) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	var deleted bool
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE form_id = ?`, id); err != nil {
			return &StorageError{Op: "DeleteCascade", Table: "attachments", Err: err}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM forms WHERE id = ?`, id)
		if err != nil {
			return &StorageError{Op: "DeleteCascade", Table: "forms", Err: err}
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return &StorageError{Op: "DeleteCascade", Table: "forms", Err: err}
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "formRepository.DeleteCascade").
			Int64("form_id", id).
			Msg("failed to delete form with attachments")
		return false, err
	}

	r.InvalidateCache()
	r.attachmentsCache.InvalidateAll()
	return deleted, nil
}

var _ FormRepository = (*formRepository)(nil)
