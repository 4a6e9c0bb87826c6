package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{
		Username: "akinalp",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Empty(t, tokens.User.PasswordHash, "hash must not leak out of the service")

	t.Run("duplicate username", func(t *testing.T) {
		_, err := auth.Register(ctx, &models.CreateUserRequest{
			Username: "akinalp",
			Password: "password123",
		})
		assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
	})

	t.Run("login ok", func(t *testing.T) {
		got, err := auth.Login(ctx, &models.LoginRequest{Username: "akinalp", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, tokens.User.ID, got.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, &models.LoginRequest{Username: "akinalp", Password: "wrongwrong"})
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := auth.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "password123"})
		assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	})
}

func TestAuthAccessTokenValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{Username: "akinalp", Password: "password123"})
	require.NoError(t, err)

	claims, err := auth.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, claims.UserID)

	_, err = auth.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// token signed with a different secret is rejected
	other := NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		repository.NewSQLiteResetTokenRepo(db.Conn),
		nil, "another-secret", 15*time.Minute, 24*time.Hour,
	)
	_, err = other.ValidateAccessToken(tokens.AccessToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{Username: "akinalp", Password: "password123"})
	require.NoError(t, err)

	rotated, err := auth.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// old refresh token is dead after rotation
	_, err = auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// the rotated one still works
	_, err = auth.RefreshToken(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestAuthLogout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{Username: "akinalp", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, tokens.RefreshToken))

	_, err = auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// logging out twice is fine
	require.NoError(t, auth.Logout(ctx, tokens.RefreshToken))
}

func TestAuthChangePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{Username: "akinalp", Password: "password123"})
	require.NoError(t, err)
	userID := tokens.User.ID

	err = auth.ChangePassword(ctx, userID, "wrongwrong", "newpassword1")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	err = auth.ChangePassword(ctx, userID, "password123", "password123")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	require.NoError(t, auth.ChangePassword(ctx, userID, "password123", "newpassword1"))

	_, err = auth.Login(ctx, &models.LoginRequest{Username: "akinalp", Password: "password123"})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	_, err = auth.Login(ctx, &models.LoginRequest{Username: "akinalp", Password: "newpassword1"})
	require.NoError(t, err)
}

func TestAuthForgotPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)

	_, err := auth.Register(ctx, &models.CreateUserRequest{
		Username: "akinalp",
		Password: "password123",
		Email:    "akinalp@example.com",
	})
	require.NoError(t, err)

	t.Run("unknown email is silent", func(t *testing.T) {
		cooldown, err := auth.ForgotPassword(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Zero(t, cooldown)
	})

	t.Run("cooldown after first request", func(t *testing.T) {
		cooldown, err := auth.ForgotPassword(ctx, "akinalp@example.com")
		require.NoError(t, err)
		assert.Zero(t, cooldown)

		cooldown, err = auth.ForgotPassword(ctx, "akinalp@example.com")
		require.NoError(t, err)
		assert.Greater(t, cooldown, 0)
	})
}

func TestAuthResetPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	resetRepo := repository.NewSQLiteResetTokenRepo(db.Conn)

	tokens, err := auth.Register(ctx, &models.CreateUserRequest{Username: "akinalp", Password: "password123"})
	require.NoError(t, err)

	// token seeded directly; ForgotPassword never returns the plaintext
	plainToken := "aaaabbbbccccddddaaaabbbbccccdddd"
	tokenHash := sha256.Sum256([]byte(plainToken))
	require.NoError(t, resetRepo.Create(ctx, &models.PasswordResetToken{
		UserID:    tokens.User.ID,
		TokenHash: hex.EncodeToString(tokenHash[:]),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	err = auth.ResetPassword(ctx, "bogus-token", "newpassword1")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	require.NoError(t, auth.ResetPassword(ctx, plainToken, "newpassword1"))

	// token is single use
	err = auth.ResetPassword(ctx, plainToken, "anotherpass1")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// all sessions are revoked
	_, err = auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	_, err = auth.Login(ctx, &models.LoginRequest{Username: "akinalp", Password: "newpassword1"})
	require.NoError(t, err)
}
