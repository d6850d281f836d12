package service

import (
	"context"
	"strings"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
	"github.com/davistroy/radioforms-sub003/models"
)

type userService struct {
	users store.UserRepository

	logger *logger.Logger
}

// NewUserService wires the operator registry service.
func NewUserService(users store.UserRepository, log *logger.Logger) UserService {
	return &userService{
		users:  users,
		logger: log,
	}
}

// Register creates an operator record. Call signs are stored uppercase
// so lookups are case-insensitive by construction.
func (s *userService) Register(ctx context.Context, name, callSign string) (*models.User, error) {
	name = strings.TrimSpace(name)
	callSign = strings.ToUpper(strings.TrimSpace(callSign))
	if name == "" || callSign == "" {
		return nil, ErrNameRequired
	}

	id, err := s.users.Create(ctx, models.User{Name: name, CallSign: callSign})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "userService.Register").
		Int64("user_id", id).
		Str("call_sign", callSign).
		Msg("operator registered")

	return s.Get(ctx, id)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (s *userService) FindByCallSign(ctx context.Context, callSign string) (*models.User, error) {
	user, err := s.users.FindByCallSign(ctx, strings.ToUpper(strings.TrimSpace(callSign)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, limit, offset uint64) ([]models.User, error) {
	return s.users.FindAll(ctx, limit, offset)
}

func (s *userService) TouchLastLogin(ctx context.Context, id int64) error {
	touched, err := s.users.TouchLastLogin(ctx, id)
	if err != nil {
		return err
	}
	if !touched {
		return store.ErrNotFound
	}
	return nil
}
