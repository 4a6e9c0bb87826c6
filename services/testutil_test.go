package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/repository"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh SQLite database with the embedded migrations
// applied. Services under test run against the real storage layer.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func newTestAuthService(db *database.DB) AuthService {
	return NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		repository.NewSQLiteResetTokenRepo(db.Conn),
		nil, // no email sender in tests
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func newTestReactionService(db *database.DB) ReactionService {
	registry := map[models.TargetKind]ReactableFactory{
		models.TargetKindPost: func(q database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLitePostRepo(q)
		},
		models.TargetKindComment: func(q database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLiteCommentRepo(q)
		},
	}
	return NewReactionService(db.Conn, repository.NewSQLiteReactionRepo(db.Conn), registry)
}

// registerTestUser runs the real registration flow and returns the
// stored user (with its generated ID).
func registerTestUser(t *testing.T, auth AuthService, username string) *models.User {
	t.Helper()

	tokens, err := auth.Register(context.Background(), &models.CreateUserRequest{
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	return &tokens.User
}

func boolPtr(b bool) *bool { return &b }
