package store

import (
	"context"
	"time"

	"github.com/davistroy/radioforms-sub003/models"
)

// CRUD is the generic repository contract implemented by [BaseDAO] and
// embedded by every entity-specific repository interface. Typed and
// map-shaped variants of each read represent the same underlying row; the
// entity's [Mapper] converts between them losslessly.
type CRUD[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	FindByIDValues(ctx context.Context, id int64) (models.Values, error)

	FindAll(ctx context.Context, limit, offset uint64) ([]T, error)
	FindAllValues(ctx context.Context, limit, offset uint64) ([]models.Values, error)

	FindByField(ctx context.Context, field string, value any) ([]T, error)
	FindByFieldValues(ctx context.Context, field string, value any) ([]models.Values, error)
	FindByFields(ctx context.Context, filters models.Values) ([]T, error)
	FindByFieldsValues(ctx context.Context, filters models.Values) ([]models.Values, error)

	Create(ctx context.Context, entity T) (int64, error)
	CreateValues(ctx context.Context, values models.Values) (int64, error)

	Update(ctx context.Context, entity T) (bool, error)
	UpdateValues(ctx context.Context, values models.Values) (bool, error)
	UpdatePatch(ctx context.Context, id int64, patch models.Values) (bool, error)

	Delete(ctx context.Context, id int64) (bool, error)

	Count(ctx context.Context, filters models.Values) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)

	InvalidateCache()
}

// FormRepository is the entity-specific access object for form records.
type FormRepository interface {
	CRUD[models.Form]

	FindByIncident(ctx context.Context, incidentName string) ([]models.Form, error)
	FindByStatus(ctx context.Context, status models.FormStatus) ([]models.Form, error)
	FindByType(ctx context.Context, formType string) ([]models.Form, error)

	// Search matches the query substring against incident names and notes.
	Search(ctx context.Context, query string, limit, offset uint64) ([]models.Form, error)

	// UpdateStatus sets only status and updated_at, leaving the data
	// payload untouched. Lifecycle rules are enforced above this layer.
	UpdateStatus(ctx context.Context, id int64, status models.FormStatus) (bool, error)

	// DeleteCascade removes the form and its attachments in one
	// transaction.
	DeleteCascade(ctx context.Context, id int64) (bool, error)
}

// IncidentRepository is the entity-specific access object for incidents.
type IncidentRepository interface {
	CRUD[models.Incident]

	// FindActive returns incidents without an end date.
	FindActive(ctx context.Context) ([]models.Incident, error)
	FindByName(ctx context.Context, name string) (*models.Incident, error)

	// SetClosed stamps the end date; SetReopened clears it.
	SetClosed(ctx context.Context, id int64, endDate time.Time) (bool, error)
	SetReopened(ctx context.Context, id int64) (bool, error)
}

// UserRepository is the entity-specific access object for operator records.
type UserRepository interface {
	CRUD[models.User]

	FindByCallSign(ctx context.Context, callSign string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int64) (bool, error)
}

// AttachmentRepository is the entity-specific access object for form
// attachments.
type AttachmentRepository interface {
	CRUD[models.Attachment]

	FindByForm(ctx context.Context, formID int64) ([]models.Attachment, error)
	DeleteByForm(ctx context.Context, formID int64) (int64, error)
}

// SettingRepository is the entity-specific access object for the persisted
// key-value configuration.
type SettingRepository interface {
	CRUD[models.Setting]

	FindByKey(ctx context.Context, key string) (*models.Setting, error)

	// GetValue returns the stored value or fallback when the key is absent.
	GetValue(ctx context.Context, key, fallback string) (string, error)

	// SetValue upserts one key. BulkSet upserts several in one transaction.
	SetValue(ctx context.Context, key, value string) error
	BulkSet(ctx context.Context, settings map[string]string) error
}
