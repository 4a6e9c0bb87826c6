package services

import (
	"context"
	"testing"

	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentServiceCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	svc := NewCommentService(db.Conn, repository.NewSQLiteCommentRepo(db.Conn), repository.NewSQLitePostRepo(db.Conn))

	author := registerTestUser(t, auth, "author")
	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	comment, err := svc.Create(ctx, author.ID, &models.CreateCommentRequest{Post: post.ID, Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "author", comment.Author.Username)

	t.Run("missing post is a client error", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, &models.CreateCommentRequest{Post: "deadbeef", Content: "hi"})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author.ID, &models.CreateCommentRequest{Post: post.ID, Content: ""})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})
}

func TestCommentServiceOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	svc := NewCommentService(db.Conn, repository.NewSQLiteCommentRepo(db.Conn), repository.NewSQLitePostRepo(db.Conn))

	author := registerTestUser(t, auth, "author")
	intruder := registerTestUser(t, auth, "intruder")

	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := svc.Create(ctx, author.ID, &models.CreateCommentRequest{Post: post.ID, Content: "mine"})
	require.NoError(t, err)

	edited := "edited"
	_, err = svc.Update(ctx, intruder.ID, comment.ID, &models.UpdateCommentRequest{Content: &edited})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	err = svc.Delete(ctx, intruder.ID, comment.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	updated, err := svc.Update(ctx, author.ID, comment.ID, &models.UpdateCommentRequest{Content: &edited})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.Delete(ctx, author.ID, comment.ID))
	_, err = svc.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCommentServiceListByPost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	svc := NewCommentService(db.Conn, repository.NewSQLiteCommentRepo(db.Conn), repository.NewSQLitePostRepo(db.Conn))

	author := registerTestUser(t, auth, "author")
	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, author.ID, &models.CreateCommentRequest{Post: post.ID, Content: content})
		require.NoError(t, err)
	}

	comments, err := svc.GetByPostID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	// oldest first, reading order
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
}
