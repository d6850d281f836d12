package store

import (
	"context"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

// attachmentSchema has no updated_at column: attachment rows are immutable
// after creation and the DAO derives its expected columns strictly from the
// actual table.
var attachmentSchema = TableSchema{
	Table: "attachments",
	Key:   "id",
	Columns: []Column{
		{Name: "id", Generated: true},
		{Name: "form_id"},
		{Name: "filename"},
		{Name: "file_path"},
		{Name: "created_at", Generated: true},
	},
}

// AttachmentMapper converts between [models.Attachment] and the canonical
// row mapping.
type AttachmentMapper struct{}

func (AttachmentMapper) Schema() TableSchema { return attachmentSchema }

func (AttachmentMapper) ToValues(a models.Attachment) (models.Values, error) {
	values := models.Values{
		"id":        a.ID,
		"form_id":   a.FormID,
		"filename":  a.Filename,
		"file_path": a.FilePath,
	}
	if !a.CreatedAt.IsZero() {
		values["created_at"] = a.CreatedAt
	}
	return values, nil
}

func (AttachmentMapper) FromValues(values models.Values) (models.Attachment, error) {
	var a models.Attachment
	var err error

	if a.ID, err = Int64Value(values["id"]); err != nil {
		return a, err
	}
	if a.FormID, err = Int64Value(values["form_id"]); err != nil {
		return a, err
	}
	if a.Filename, err = StringValue(values["filename"]); err != nil {
		return a, err
	}
	if a.FilePath, err = StringValue(values["file_path"]); err != nil {
		return a, err
	}
	if a.CreatedAt, err = TimeValue(values["created_at"]); err != nil {
		return a, err
	}

	return a, nil
}

type attachmentRepository struct {
	*BaseDAO[models.Attachment]

	logger *logger.Logger
}

// NewAttachmentRepository constructs the attachment access object over db.
func NewAttachmentRepository(db *DB, cache Cache, log *logger.Logger) AttachmentRepository {
	return &attachmentRepository{
		BaseDAO: NewBaseDAO[models.Attachment](db, AttachmentMapper{}, cache, log),
		logger:  log,
	}
}

func (r *attachmentRepository) FindByForm(ctx context.Context, formID int64) ([]models.Attachment, error) {
	return r.FindByFields(ctx, models.Values{"form_id": formID})
}

func (r *attachmentRepository) DeleteByForm(ctx context.Context, formID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE form_id = ?`, formID)
	if err != nil {
		return 0, &StorageError{Op: "DeleteByForm", Table: "attachments", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "DeleteByForm", Table: "attachments", Err: err}
	}

	r.InvalidateCache()
	return affected, nil
}

var _ AttachmentRepository = (*attachmentRepository)(nil)
