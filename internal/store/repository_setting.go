// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

var settingSchema = TableSchema{
	Table: "settings",
	Key:   "id",
	Columns: []Column{
		{Name: "id", Generated: true},
		{Name: "key"},
		{Name: "value"},
		{Name: "updated_at", Generated: true},
	},
}

// SettingMapper converts between [models.Setting] and the canonical row
// mapping.
type SettingMapper struct{}

func (SettingMapper) Schema() TableSchema { return settingSchema }

func (SettingMapper) ToValues(s models.Setting) (models.Values, error) {
	values := models.Values{
		"id":    s.ID,
		"key":   s.Key,
		"value": s.Value,
	}
	if !s.UpdatedAt.IsZero() {
		values["updated_at"] = s.UpdatedAt
	}
	return values, nil
}

func (SettingMapper) FromValues(values models.Values) (models.Setting, error) {
	var s models.Setting
	var err error

	if s.ID, err = Int64Value(values["id"]); err != nil {
		return s, err
	}
	if s.Key, err = StringValue(values["key"]); err != nil {
		return s, err
	}
	if s.Value, err = StringValue(values["value"]); err != nil {
		return s, err
	}
	if s.UpdatedAt, err = TimeValue(values["updated_at"]); err != nil {
		return s, err
	}

	return s, nil
}

type settingRepository struct {
	*BaseDAO[models.Setting]

	db     *DB
	logger *logger.Logger
}

// NewSettingRepository constructs the settings access object over db.
func NewSettingRepository(db *DB, cache Cache, log *logger.Logger) SettingRepository {
	return &settingRepository{
		BaseDAO: NewBaseDAO[models.Setting](db, SettingMapper{}, cache, log),
		db:      db,
		logger:  log,
	}
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	settings, err := r.FindByFields(ctx, models.Values{"key": key})
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, nil
	}
	return &settings[0], nil
}

func (r *settingRepository) GetValue(ctx context.Context, key, fallback string) (string, error) {
	setting, err := r.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return fallback, nil
	}
	return setting.Value, nil
}

const upsertSettingQuery = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?) ` +
	`ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (r *settingRepository) SetValue(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertSettingQuery, key, value, time.Now().UTC()); err != nil {
		return &StorageError{Op: "SetValue", Table: "settings", Err: err}
	}

	r.InvalidateCache()
	return nil
}

// BulkSet upserts all pairs in a single transaction so a partial write never
// becomes visible. Keys are applied in sorted order to keep the statement
// sequence deterministic.
func (r *settingRepository) BulkSet(ctx context.Context, settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now().UTC()
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, upsertSettingQuery, key, settings[key], now); err != nil {
				return &StorageError{Op: "BulkSet", Table: "settings", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.InvalidateCache()
	return nil
}

var _ SettingRepository = (*settingRepository)(nil)
