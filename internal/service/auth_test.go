package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/types"
)

const testJWTSecret = "test-jwt-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, testJWTSecret)
	ctx := context.Background()

	req := &types.RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "s3cret-pass",
	}

	t.Run("register issues a valid token", func(t *testing.T) {
		token, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &types.RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice2",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &types.RegisterRequest{
			Email:    "other@example.com",
			Username: "alice",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, testJWTSecret)
	ctx := context.Background()

	token, err := svc.Register(ctx, &types.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(db, nil, "different-secret")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("logout without redis is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, token))
		_, err := svc.ValidateToken(token)
		assert.NoError(t, err)
	})
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, nil, testJWTSecret)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		createTestUser(t, db, name)
	}

	users, err := svc.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.ListUsers(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
