package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway SQLite database in a temp directory and
// runs the embedded migrations against it. Each test gets a fresh file,
// so tests can run in parallel without sharing state.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func createTestUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	repo := NewSQLiteUserRepo(db.Conn)
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, db *database.DB, authorID, title string) *models.Post {
	t.Helper()

	repo := NewSQLitePostRepo(db.Conn)
	post := &models.Post{Title: title, Content: "content"}
	require.NoError(t, repo.Create(context.Background(), post, authorID))
	return post
}

func createTestComment(t *testing.T, db *database.DB, postID, authorID string) *models.Comment {
	t.Helper()

	repo := NewSQLiteCommentRepo(db.Conn)
	comment := &models.Comment{PostID: postID, Content: "a comment"}
	require.NoError(t, repo.Create(context.Background(), comment, authorID))
	return comment
}
