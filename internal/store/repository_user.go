package store

import (
	"context"
	"time"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/models"
)

var userSchema = TableSchema{
	Table: "users",
	Key:   "id",
	Columns: []Column{
		{Name: "id", Generated: true},
		{Name: "name"},
		{Name: "call_sign"},
		{Name: "last_login", Nullable: true},
		{Name: "created_at", Generated: true},
		{Name: "updated_at", Generated: true},
	},
}

// UserMapper converts between [models.User] and the canonical row mapping.
type UserMapper struct{}

func (UserMapper) Schema() TableSchema { return userSchema }

func (UserMapper) ToValues(u models.User) (models.Values, error) {
	values := models.Values{
		"id":         u.ID,
		"name":       u.Name,
		"call_sign":  u.CallSign,
		"last_login": nil,
	}
	if u.LastLogin != nil {
		values["last_login"] = *u.LastLogin
	}
	if !u.CreatedAt.IsZero() {
		values["created_at"] = u.CreatedAt
	}
	if !u.UpdatedAt.IsZero() {
		values["updated_at"] = u.UpdatedAt
	}
	return values, nil
}

func (UserMapper) FromValues(values models.Values) (models.User, error) {
	var u models.User
	var err error

	if u.ID, err = Int64Value(values["id"]); err != nil {
		return u, err
	}
	if u.Name, err = StringValue(values["name"]); err != nil {
		return u, err
	}
	if u.CallSign, err = StringValue(values["call_sign"]); err != nil {
		return u, err
	}
	if u.LastLogin, err = TimePtrValue(values["last_login"]); err != nil {
		return u, err
	}
	if u.CreatedAt, err = TimeValue(values["created_at"]); err != nil {
		return u, err
	}
	if u.UpdatedAt, err = TimeValue(values["updated_at"]); err != nil {
		return u, err
	}

	return u, nil
}

type userRepository struct {
	*BaseDAO[models.User]

	logger *logger.Logger
}

// NewUserRepository constructs the operator access object over db.
func NewUserRepository(db *DB, cache Cache, log *logger.Logger) UserRepository {
	return &userRepository{
		BaseDAO: NewBaseDAO[models.User](db, UserMapper{}, cache, log),
		logger:  log,
	}
}

// Create inserts the user, mapping a duplicate call sign onto
// [ErrCallSignTaken].
func (r *userRepository) Create(ctx context.Context, user models.User) (int64, error) {
	id, err := r.BaseDAO.Create(ctx, user)
	if err != nil && IsUniqueViolation(err) {
		return 0, ErrCallSignTaken
	}
	return id, err
}

func (r *userRepository) FindByCallSign(ctx context.Context, callSign string) (*models.User, error) {
	users, err := r.FindByFields(ctx, models.Values{"call_sign": callSign})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) (bool, error) {
	return r.UpdatePatch(ctx, id, models.Values{"last_login": time.Now().UTC()})
}

var _ UserRepository = (*userRepository)(nil)
