// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

// DefaultLimit bounds FindAll scans when the caller passes a non-positive
// limit, so a UI bug can never pull an unbounded result set into memory.
const DefaultLimit = 1000

// BaseDAO is the generic CRUD layer shared by every entity repository.
//
// All reads come in two shapes — a typed entity and the canonical
// [models.Values] mapping — backed by one implementation: the typed variants
// are thin adapters over the Values variants via the entity's [Mapper].
// Mutations accept either shape as input and converge on a column patch
// before touching storage, so business rules never fork across two paths.
//
// Reads go through the injected [Cache]; every successful mutation
// invalidates all cached reads for the entity type after the write lands
// (write-then-invalidate ordering).
type BaseDAO[T any] struct {
	db     *DB
	mapper Mapper[T]
	cache  Cache
	logger *logger.Logger
	sb     sq.StatementBuilderType
}

// NewBaseDAO wires a generic DAO for one entity type. The cache is owned by
// this instance; passing [NopCache] disables caching for it.
func NewBaseDAO[T any](db *DB, mapper Mapper[T], cache Cache, log *logger.Logger) *BaseDAO[T] {
	return &BaseDAO[T]{
		db:     db,
		mapper: mapper,
		cache:  cache,
		logger: log,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// InvalidateCache drops every cached read for this entity type. Exposed for
// multi-table writes (cascades) that touch this entity outside its own DAO.
func (d *BaseDAO[T]) InvalidateCache() {
	d.cache.InvalidateAll()
}

// FindByIDValues fetches one row by primary key as the canonical mapping.
// Returns (nil, nil) when no row matches — absence is not an error on read
// paths.
func (d *BaseDAO[T]) FindByIDValues(ctx context.Context, id int64) (models.Values, error) {
	s := d.mapper.Schema()
	key := cacheKey(s.Table, "FindByID", id)
	if cached, ok := d.cache.Get(key); ok {
		if values, ok := cached.(models.Values); ok {
			return values.Clone(), nil
		}
	}

	query, args, err := d.sb.Select(s.ColumnNames()...).
		From(s.Table).
		Where(sq.Eq{s.Key: id}).
		ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	dests := scanDestinations(len(s.Columns))
	row := d.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(dests...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, d.wrap("FindByID", err)
	}

	values := collectValues(s.ColumnNames(), dests)
	d.cache.Set(key, values.Clone())
	return values, nil
}

// FindByID fetches one row by primary key as a typed entity. Returns
// (nil, nil) when no row matches.
func (d *BaseDAO[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	values, err := d.FindByIDValues(ctx, id)
	if err != nil || values == nil {
		return nil, err
	}

	entity, err := d.mapper.FromValues(values)
	if err != nil {
		return nil, d.wrap("FindByID", err)
	}
	return &entity, nil
}

// FindAllValues returns a page of rows in primary-key (insertion) order.
// A non-positive limit falls back to [DefaultLimit].
func (d *BaseDAO[T]) FindAllValues(ctx context.Context, limit, offset uint64) ([]models.Values, error) {
	if limit == 0 {
		limit = DefaultLimit
	}

	s := d.mapper.Schema()
	key := cacheKey(s.Table, "FindAll", limit, offset)
	if cached, ok := d.cache.Get(key); ok {
		if list, ok := cached.([]models.Values); ok {
			return cloneValuesList(list), nil
		}
	}

	list, err := d.queryValues(ctx, "FindAll", sq.Sqlizer(nil), limit, offset)
	if err != nil {
		return nil, err
	}

	d.cache.Set(key, cloneValuesList(list))
	return list, nil
}

// FindAll returns a page of typed entities in primary-key (insertion) order.
func (d *BaseDAO[T]) FindAll(ctx context.Context, limit, offset uint64) ([]T, error) {
	values, err := d.FindAllValues(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return d.toEntities("FindAll", values)
}

// FindByFieldValues returns all rows whose column field equals value.
// Unknown column names fail with a [SchemaError].
func (d *BaseDAO[T]) FindByFieldValues(ctx context.Context, field string, value any) ([]models.Values, error) {
	return d.FindByFieldsValues(ctx, models.Values{field: value})
}

// FindByField is the typed variant of [BaseDAO.FindByFieldValues].
func (d *BaseDAO[T]) FindByField(ctx context.Context, field string, value any) ([]T, error) {
	return d.FindByFields(ctx, models.Values{field: value})
}

// FindByFieldsValues returns all rows matching every equality filter.
// Unknown column names fail with a [SchemaError].
func (d *BaseDAO[T]) FindByFieldsValues(ctx context.Context, filters models.Values) ([]models.Values, error) {
	s := d.mapper.Schema()
	if err := d.checkColumns(filters); err != nil {
		return nil, err
	}

	key := cacheKey(s.Table, "FindByFields", filters)
	if cached, ok := d.cache.Get(key); ok {
		if list, ok := cached.([]models.Values); ok {
			return cloneValuesList(list), nil
		}
	}

	list, err := d.queryValues(ctx, "FindByFields", sq.Eq(filters), 0, 0)
	if err != nil {
		return nil, err
	}

	d.cache.Set(key, cloneValuesList(list))
	return list, nil
}

// FindByFields is the typed variant of [BaseDAO.FindByFieldsValues].
func (d *BaseDAO[T]) FindByFields(ctx context.Context, filters models.Values) ([]T, error) {
	values, err := d.FindByFieldsValues(ctx, filters)
	if err != nil {
		return nil, err
	}
	return d.toEntities("FindByFields", values)
}

// Create inserts a typed entity and returns the generated primary key.
func (d *BaseDAO[T]) Create(ctx context.Context, entity T) (int64, error) {
	values, err := d.mapper.ToValues(entity)
	if err != nil {
		return 0, d.wrap("Create", err)
	}
	return d.CreateValues(ctx, values)
}

// CreateValues inserts a raw column mapping and returns the generated
// primary key. All non-nullable, non-generated columns must be present and
// non-nil; the check runs before the insert so callers get a precise
// [MissingColumnError] instead of a driver constraint message.
func (d *BaseDAO[T]) CreateValues(ctx context.Context, values models.Values) (int64, error) {
	s := d.mapper.Schema()
	if err := d.checkColumns(values); err != nil {
		return 0, err
	}

	insert := values.Clone()
	if insert == nil {
		insert = models.Values{}
	}

	// drop an absent/zero primary key so the database assigns one
	if id, ok := insert[s.Key]; ok {
		if n, err := Int64Value(id); err == nil && n == 0 {
			delete(insert, s.Key)
		}
	}

	now := time.Now().UTC()
	for _, stamp := range []string{"created_at", "updated_at"} {
		if s.HasColumn(stamp) && insert[stamp] == nil {
			insert[stamp] = now
		}
	}

	for _, col := range s.Columns {
		if col.Nullable || col.Generated {
			continue
		}
		if v, ok := insert[col.Name]; !ok || v == nil {
			return 0, &MissingColumnError{Table: s.Table, Column: col.Name}
		}
	}

	cols := make([]string, 0, len(insert))
	for _, col := range s.Columns {
		if _, ok := insert[col.Name]; ok {
			cols = append(cols, col.Name)
		}
	}
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = insert[col]
	}

	query, sqlArgs, err := d.sb.Insert(s.Table).Columns(cols...).Values(args...).ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	res, err := d.db.ExecContext(ctx, query, sqlArgs...)
	if err != nil {
		return 0, d.wrap("Create", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, d.wrap("Create", err)
	}

	d.cache.InvalidateAll()
	return id, nil
}

// Update persists a full typed entity. The entity must carry its primary
// key. Returns false when no row with that key exists.
func (d *BaseDAO[T]) Update(ctx context.Context, entity T) (bool, error) {
	values, err := d.mapper.ToValues(entity)
	if err != nil {
		return false, d.wrap("Update", err)
	}
	return d.UpdateValues(ctx, values)
}

// UpdateValues persists a full column mapping that carries the primary key.
func (d *BaseDAO[T]) UpdateValues(ctx context.Context, values models.Values) (bool, error) {
	s := d.mapper.Schema()
	raw, ok := values[s.Key]
	if !ok || raw == nil {
		return false, &MissingColumnError{Table: s.Table, Column: s.Key}
	}
	id, err := Int64Value(raw)
	if err != nil {
		return false, d.wrap("Update", err)
	}

	patch := values.Clone()
	delete(patch, s.Key)
	return d.UpdatePatch(ctx, id, patch)
}

// UpdatePatch sets the given columns on the row with primary key id. All
// three update calling conventions normalize to this operation. The
// updated_at column, when the table has one, is refreshed automatically
// unless the patch already sets it. Returns false when no row matched.
func (d *BaseDAO[T]) UpdatePatch(ctx context.Context, id int64, patch models.Values) (bool, error) {
	s := d.mapper.Schema()
	if err := d.checkColumns(patch); err != nil {
		return false, err
	}
	if len(patch) == 0 {
		return false, &MissingColumnError{Table: s.Table, Column: "(empty patch)"}
	}

	set := patch.Clone()
	delete(set, s.Key)
	delete(set, "created_at")
	if s.HasColumn("updated_at") && set["updated_at"] == nil {
		set["updated_at"] = time.Now().UTC()
	}

	query, args, err := d.sb.Update(s.Table).
		SetMap(set).
		Where(sq.Eq{s.Key: id}).
		ToSql()
	if err != nil {
		return false, errors.Join(ErrBuildingSQLQuery, err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, d.wrap("Update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, d.wrap("Update", err)
	}

	d.cache.InvalidateAll()
	return affected > 0, nil
}

// Delete removes the row with primary key id. Deleting a missing row is not
// an error: the second delete of the same id simply returns false.
func (d *BaseDAO[T]) Delete(ctx context.Context, id int64) (bool, error) {
	s := d.mapper.Schema()

	query, args, err := d.sb.Delete(s.Table).Where(sq.Eq{s.Key: id}).ToSql()
	if err != nil {
		return false, errors.Join(ErrBuildingSQLQuery, err)
	}

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, d.wrap("Delete", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, d.wrap("Delete", err)
	}

	d.cache.InvalidateAll()
	return affected > 0, nil
}

// Count returns the number of rows matching every equality filter. A nil or
// empty filter counts the whole table.
func (d *BaseDAO[T]) Count(ctx context.Context, filters models.Values) (int64, error) {
	s := d.mapper.Schema()
	if err := d.checkColumns(filters); err != nil {
		return 0, err
	}

	builder := d.sb.Select("COUNT(*)").From(s.Table)
	if len(filters) > 0 {
		builder = builder.Where(sq.Eq(filters))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, d.wrap("Count", err)
	}
	return count, nil
}

// Exists reports whether a row with primary key id exists.
func (d *BaseDAO[T]) Exists(ctx context.Context, id int64) (bool, error) {
	s := d.mapper.Schema()
	count, err := d.Count(ctx, models.Values{s.Key: id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// findWhere runs a custom predicate query in primary-key order. Used by
// entity repositories for specialized finders the equality-filter API cannot
// express (NULL checks, LIKE searches). Results are not cached.
func (d *BaseDAO[T]) findWhere(ctx context.Context, pred sq.Sqlizer, limit, offset uint64) ([]T, error) {
	values, err := d.queryValues(ctx, "findWhere", pred, limit, offset)
	if err != nil {
		return nil, err
	}
	return d.toEntities("findWhere", values)
}

func (d *BaseDAO[T]) queryValues(ctx context.Context, op string, pred sq.Sqlizer, limit, offset uint64) ([]models.Values, error) {
	s := d.mapper.Schema()

	builder := d.sb.Select(s.ColumnNames()...).
		From(s.Table).
		OrderBy(s.Key + " ASC")
	if pred != nil {
		builder = builder.Where(pred)
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.wrap(op, err)
	}
	defer rows.Close()

	var list []models.Values
	for rows.Next() {
		dests := scanDestinations(len(s.Columns))
		if err := rows.Scan(dests...); err != nil {
			return nil, d.wrap(op, err)
		}
		list = append(list, collectValues(s.ColumnNames(), dests))
	}
	if err := rows.Err(); err != nil {
		return nil, d.wrap(op, err)
	}

	return list, nil
}

func (d *BaseDAO[T]) toEntities(op string, values []models.Values) ([]T, error) {
	entities := make([]T, 0, len(values))
	for _, v := range values {
		entity, err := d.mapper.FromValues(v)
		if err != nil {
			return nil, d.wrap(op, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// checkColumns rejects mappings that reference a column the table does not
// have.
func (d *BaseDAO[T]) checkColumns(values models.Values) error {
	s := d.mapper.Schema()
	for col := range values {
		if !s.HasColumn(col) {
			return &SchemaError{Table: s.Table, Column: col}
		}
	}
	return nil
}

// wrap logs a failed operation with full detail and returns it as a
// [StorageError] so upper layers can surface a generic message.
func (d *BaseDAO[T]) wrap(op string, err error) error {
	s := d.mapper.Schema()
	d.logger.Err(err).
		Str("func", fmt.Sprintf("BaseDAO.%s", op)).
		Str("table", s.Table).
		Int("classification", int(d.db.Classify(err))).
		Msg("database operation failed")
	return &StorageError{Op: op, Table: s.Table, Err: err}
}

func cloneValuesList(list []models.Values) []models.Values {
	out := make([]models.Values, len(list))
	for i, v := range list {
		out[i] = v.Clone()
	}
	return out
}
