package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/testhelpers"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	user, err := svc.Register(context.Background(), "ada@example.com", "hunter22", "ada")
	require.NoError(t, err)
	require.NotNil(t, user)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "ada", profile.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22", "ada")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "ada@example.com", "hunter22", "ada2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22", "ada")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "other@example.com", "hunter22", "ada")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginAndValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ada@example.com", "hunter22", "ada")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22", "ada")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenInvalid(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAuthService(db, "test-secret", nil, nil)

	claims, err := svc.ValidateToken("invalid.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
