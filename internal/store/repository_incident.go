package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

var incidentSchema = TableSchema{
	Table: "incidents",
	Key:   "id",
	Columns: []Column{
		{Name: "id", Generated: true},
		{Name: "name"},
		{Name: "description"},
		{Name: "start_date"},
		{Name: "end_date", Nullable: true},
		{Name: "created_at", Generated: true},
		{Name: "updated_at", Generated: true},
	},
}

// IncidentMapper converts between [models.Incident] and the canonical row
// mapping.
type IncidentMapper struct{}

func (IncidentMapper) Schema() TableSchema { return incidentSchema }

func (IncidentMapper) ToValues(i models.Incident) (models.Values, error) {
	values := models.Values{
		"id":          i.ID,
		"name":        i.Name,
		"description": i.Description,
		"start_date":  i.StartDate,
		"end_date":    nil,
	}
	if i.EndDate != nil {
		values["end_date"] = *i.EndDate
	}
	if !i.CreatedAt.IsZero() {
		values["created_at"] = i.CreatedAt
	}
	if !i.UpdatedAt.IsZero() {
		values["updated_at"] = i.UpdatedAt
	}
	return values, nil
}

func (IncidentMapper) FromValues(values models.Values) (models.Incident, error) {
	var i models.Incident
	var err error

	if i.ID, err = Int64Value(values["id"]); err != nil {
		return i, err
	}
	if i.Name, err = StringValue(values["name"]); err != nil {
		return i, err
	}
	if i.Description, err = StringValue(values["description"]); err != nil {
		return i, err
	}
	if i.StartDate, err = TimeValue(values["start_date"]); err != nil {
		return i, err
	}
	if i.EndDate, err = TimePtrValue(values["end_date"]); err != nil {
		return i, err
	}
	if i.CreatedAt, err = TimeValue(values["created_at"]); err != nil {
		return i, err
	}
	if i.UpdatedAt, err = TimeValue(values["updated_at"]); err != nil {
		return i, err
	}

	return i, nil
}

type incidentRepository struct {
	*BaseDAO[models.Incident]

	logger *logger.Logger
}

// NewIncidentRepository constructs the incident access object over db.
func NewIncidentRepository(db *DB, cache Cache, log *logger.Logger) IncidentRepository {
	return &incidentRepository{
		BaseDAO: NewBaseDAO[models.Incident](db, IncidentMapper{}, cache, log),
		logger:  log,
	}
}

// Create inserts the incident, mapping a duplicate name onto
// [ErrIncidentNameTaken].
func (r *incidentRepository) Create(ctx context.Context, incident models.Incident) (int64, error) {
	id, err := r.BaseDAO.Create(ctx, incident)
	if err != nil && IsUniqueViolation(err) {
		return 0, ErrIncidentNameTaken
	}
	return id, err
}

func (r *incidentRepository) FindActive(ctx context.Context) ([]models.Incident, error) {
	return r.findWhere(ctx, sq.Eq{"end_date": nil}, 0, 0)
}

func (r *incidentRepository) FindByName(ctx context.Context, name string) (*models.Incident, error) {
	incidents, err := r.FindByFields(ctx, models.Values{"name": name})
	if err != nil {
		return nil, err
	}
	if len(incidents) == 0 {
		return nil, nil
	}
	return &incidents[0], nil
}

func (r *incidentRepository) SetClosed(ctx context.Context, id int64, endDate time.Time) (bool, error) {
	return r.UpdatePatch(ctx, id, models.Values{"end_date": endDate})
}

func (r *incidentRepository) SetReopened(ctx context.Context, id int64) (bool, error) {
	return r.UpdatePatch(ctx, id, models.Values{"end_date": nil})
}

var _ IncidentRepository = (*incidentRepository)(nil)
