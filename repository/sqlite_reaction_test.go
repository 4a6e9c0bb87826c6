package repository

import (
	"context"
	"testing"

	"github.com/akinalp/kalem/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionToggle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReactionRepo(db.Conn)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	post := createTestPost(t, db, author.ID, "first post")

	t.Run("first toggle creates a reaction", func(t *testing.T) {
		reaction, outcome, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, true)
		require.NoError(t, err)

		assert.Equal(t, models.ToggleCreated, outcome)
		require.NotNil(t, reaction)
		assert.NotEmpty(t, reaction.ID)
		assert.True(t, reaction.IsLike)
		assert.False(t, reaction.CreatedAt.IsZero())
	})

	t.Run("opposite direction flips in place", func(t *testing.T) {
		existing, err := repo.GetForTarget(ctx, models.TargetKindPost, post.ID)
		require.NoError(t, err)
		require.Len(t, existing, 1)

		reaction, outcome, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, false)
		require.NoError(t, err)

		assert.Equal(t, models.ToggleUpdated, outcome)
		require.NotNil(t, reaction)
		// The row is updated, not replaced: identity and timestamp survive
		assert.Equal(t, existing[0].ID, reaction.ID)
		assert.Equal(t, existing[0].CreatedAt, reaction.CreatedAt)
		assert.False(t, reaction.IsLike)
	})

	t.Run("same direction removes the reaction", func(t *testing.T) {
		reaction, outcome, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, false)
		require.NoError(t, err)

		assert.Equal(t, models.ToggleRemoved, outcome)
		assert.Nil(t, reaction)

		remaining, err := repo.GetForTarget(ctx, models.TargetKindPost, post.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

func TestReactionTogglePerKindIsolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReactionRepo(db.Conn)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	post := createTestPost(t, db, author.ID, "a post")
	comment := createTestComment(t, db, post.ID, author.ID)

	// Same user, same raw id string under a different kind must be an
	// independent slot — the unique key is the full triple.
	_, outcome, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleCreated, outcome)

	_, outcome, err = repo.Toggle(ctx, models.TargetKindComment, comment.ID, voter.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.ToggleCreated, outcome)

	postReactions, err := repo.GetForTarget(ctx, models.TargetKindPost, post.ID)
	require.NoError(t, err)
	commentReactions, err := repo.GetForTarget(ctx, models.TargetKindComment, comment.ID)
	require.NoError(t, err)

	assert.Len(t, postReactions, 1)
	assert.Len(t, commentReactions, 1)
}

func TestReactionCountsForTarget(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReactionRepo(db.Conn)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "counted post")

	for i, like := range []bool{true, true, false} {
		voter := createTestUser(t, db, "voter"+string(rune('a'+i)))
		_, _, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, like)
		require.NoError(t, err)
	}

	counts, err := repo.CountsForTarget(ctx, models.TargetKindPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Likes)
	assert.Equal(t, 1, counts.Dislikes)

	// A target with no reactions reports zeros, not an error
	empty, err := repo.CountsForTarget(ctx, models.TargetKindPost, "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Likes)
	assert.Equal(t, 0, empty.Dislikes)
}

func TestReactionGetForTargetIncludesUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReactionRepo(db.Conn)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	post := createTestPost(t, db, author.ID, "a post")

	_, _, err := repo.Toggle(ctx, models.TargetKindPost, post.ID, voter.ID, true)
	require.NoError(t, err)

	reactions, err := repo.GetForTarget(ctx, models.TargetKindPost, post.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)

	require.NotNil(t, reactions[0].User)
	assert.Equal(t, voter.ID, reactions[0].User.ID)
	assert.Equal(t, "voter", reactions[0].User.Username)
	assert.Equal(t, models.TargetKindPost, reactions[0].TargetKind)
	assert.Equal(t, post.ID, reactions[0].TargetID)
}

func TestReactionDeleteForPostComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteReactionRepo(db.Conn)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	post := createTestPost(t, db, author.ID, "a post")
	otherPost := createTestPost(t, db, author.ID, "another post")
	comment := createTestComment(t, db, post.ID, author.ID)
	otherComment := createTestComment(t, db, otherPost.ID, author.ID)

	_, _, err := repo.Toggle(ctx, models.TargetKindComment, comment.ID, voter.ID, true)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, models.TargetKindComment, otherComment.ID, voter.ID, true)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteForPostComments(ctx, post.ID))

	gone, err := repo.GetForTarget(ctx, models.TargetKindComment, comment.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)

	// Reactions on the other post's comments are untouched
	kept, err := repo.GetForTarget(ctx, models.TargetKindComment, otherComment.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
