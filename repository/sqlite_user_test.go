package repository

import (
	"context"
	"testing"

	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserRepo(db.Conn)

	createTestUser(t, db, "taken")

	dup := &models.User{Username: "taken", PasswordHash: "x"}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserRepo(db.Conn)

	addr := "someone@example.com"
	user := &models.User{Username: "someone", Email: &addr, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteUserRepo(db.Conn)

	addr := "shared@example.com"
	first := &models.User{Username: "first", Email: &addr, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Username: "second", Email: &addr, PasswordHash: "x"}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)

	// NULL emails are exempt from the partial unique index
	third := &models.User{Username: "third", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, third))
	fourth := &models.User{Username: "fourth", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, fourth))
}
