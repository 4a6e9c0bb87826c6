package services

import (
	"context"
	"sync"
	"testing"

	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionServiceToggleLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	svc := newTestReactionService(db)

	author := registerTestUser(t, auth, "author")
	voter := registerTestUser(t, auth, "voter")

	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	req := &models.ToggleReactionRequest{
		ContentType: "post",
		ObjectID:    post.ID,
		IsLike:      boolPtr(true),
	}

	// like → created
	result, err := svc.Toggle(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleCreated, result.Outcome)
	require.NotNil(t, result.Reaction)
	assert.Equal(t, voter.ID, result.Reaction.User.ID)
	createdID := result.Reaction.ID
	createdAt := result.Reaction.CreatedAt

	// dislike → flipped in place
	req.IsLike = boolPtr(false)
	result, err = svc.Toggle(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleUpdated, result.Outcome)
	assert.Equal(t, createdID, result.Reaction.ID)
	assert.Equal(t, createdAt, result.Reaction.CreatedAt)

	// dislike again → removed
	result, err = svc.Toggle(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleRemoved, result.Outcome)
	assert.Nil(t, result.Reaction)

	// like again after removal → a brand new reaction
	req.IsLike = boolPtr(true)
	result, err = svc.Toggle(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleCreated, result.Outcome)
	assert.NotEqual(t, createdID, result.Reaction.ID)
}

func TestReactionServiceToggleRejectsInvalidTargets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	svc := newTestReactionService(db)

	voter := registerTestUser(t, auth, "voter")

	t.Run("unknown content_type", func(t *testing.T) {
		_, err := svc.Toggle(ctx, voter, &models.ToggleReactionRequest{
			ContentType: "page",
			ObjectID:    "whatever",
			IsLike:      boolPtr(true),
		})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})

	t.Run("nonexistent object", func(t *testing.T) {
		_, err := svc.Toggle(ctx, voter, &models.ToggleReactionRequest{
			ContentType: "post",
			ObjectID:    "deadbeef",
			IsLike:      boolPtr(true),
		})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})

	t.Run("missing is_like", func(t *testing.T) {
		_, err := svc.Toggle(ctx, voter, &models.ToggleReactionRequest{
			ContentType: "post",
			ObjectID:    "deadbeef",
		})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)
	})
}

func TestReactionServiceList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	svc := newTestReactionService(db)

	author := registerTestUser(t, auth, "author")
	voter := registerTestUser(t, auth, "voter")

	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, voter, &models.ToggleReactionRequest{
		ContentType: "post", ObjectID: post.ID, IsLike: boolPtr(true),
	})
	require.NoError(t, err)

	reactions, err := svc.List(ctx, "post", post.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "voter", reactions[0].User.Username)

	// unknown kind is a client error, not an empty list
	_, err = svc.List(ctx, "page", post.ID)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// missing params
	_, err = svc.List(ctx, "", "")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// known kind, unknown object: empty filter result
	reactions, err = svc.List(ctx, "post", "deadbeef")
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestReactionServiceToggleConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auth := newTestAuthService(db)
	svc := newTestReactionService(db)

	author := registerTestUser(t, auth, "author")
	voter := registerTestUser(t, auth, "voter")

	postSvc := NewPostService(db.Conn, repository.NewSQLitePostRepo(db.Conn))
	post, err := postSvc.Create(ctx, author.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	// Aynı kullanıcı aynı hedefe aynı anda 8 toggle atar. Yazıcılar DB
	// seviyesinde sıraya girer: hiçbir istek hata görmez, unique
	// constraint hiçbir interleaving'de 1'den fazla satıra izin vermez.
	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Toggle(ctx, voter, &models.ToggleReactionRequest{
				ContentType: "post",
				ObjectID:    post.ID,
				IsLike:      boolPtr(true),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "toggle %d", i)
	}

	var count int
	require.NoError(t, db.Conn.QueryRow(
		"SELECT COUNT(*) FROM reactions WHERE target_id = ? AND user_id = ?",
		post.ID, voter.ID,
	).Scan(&count))
	assert.LessOrEqual(t, count, 1, "unique triple allows at most one row")
}
