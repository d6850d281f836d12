package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davistroy/radioforms-sub003/internal/logger"
	"github.com/davistroy/radioforms-sub003/internal/store"
)

func newTestUserService() UserService {
	return NewUserService(newFakeUserRepo(), logger.Nop())
}

func TestRegister(t *testing.T) {
	svc := newTestUserService()

	user, err := svc.Register(context.Background(), " Jamie Alvarez ", " ki4abc ")
	require.NoError(t, err)
	assert.Equal(t, "Jamie Alvarez", user.Name)
	assert.Equal(t, "KI4ABC", user.CallSign, "call signs are stored uppercase")
	assert.Nil(t, user.LastLogin)
}

func TestRegister_EmptyFields(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "KI4ABC")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(ctx, "Jamie Alvarez", "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRegister_DuplicateCallSign(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jamie Alvarez", "KI4ABC")
	require.NoError(t, err)

	// differing case must still collide
	_, err = svc.Register(ctx, "Someone Else", "ki4abc")
	assert.ErrorIs(t, err, store.ErrCallSignTaken)
}

func TestFindByCallSign(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	created, err := svc.Register(ctx, "Jamie Alvarez", "KI4ABC")
	require.NoError(t, err)

	found, err := svc.FindByCallSign(ctx, "ki4abc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindByCallSign(ctx, "W0XYZ")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Jamie Alvarez", "KI4ABC")
	require.NoError(t, err)

	require.NoError(t, svc.TouchLastLogin(ctx, user.ID))

	reloaded, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLogin)

	assert.ErrorIs(t, svc.TouchLastLogin(ctx, 404), store.ErrNotFound)
}
