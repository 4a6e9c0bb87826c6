package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
)

// sqliteCommentRepo, CommentRepository interface'inin SQLite implementasyonu.
type sqliteCommentRepo struct {
	db database.TxQuerier
}

// NewSQLiteCommentRepo, constructor — interface döner.
func NewSQLiteCommentRepo(db database.TxQuerier) CommentRepository {
	return &sqliteCommentRepo{db: db}
}

// commentSelect, okuma sorgularının ortak gövdesi — sayaçlar post'taki
// gibi correlated subquery ile hesaplanır.
const commentSelect = `
	SELECT c.id, c.post_id, c.content, c.created_at,
	       u.id, u.username,
	       (SELECT COUNT(*) FROM reactions r
	         WHERE r.target_kind = 'comment' AND r.target_id = c.id AND r.is_like = 1),
	       (SELECT COUNT(*) FROM reactions r
	         WHERE r.target_kind = 'comment' AND r.target_id = c.id AND r.is_like = 0)
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *sqliteCommentRepo) Create(ctx context.Context, comment *models.Comment, authorID string) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.PostID,
		authorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *sqliteCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := commentSelect + ` WHERE c.id = ?`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

func (r *sqliteCommentRepo) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := commentSelect + ` WHERE c.post_id = ? ORDER BY c.created_at ASC, c.rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

func (r *sqliteCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = ? WHERE id = ?`,
		comment.Content, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteCommentRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM comments WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return true, nil
}

func scanComment(row rowScanner) (*models.Comment, error) {
	comment := &models.Comment{Author: &models.UserRef{}}
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Content, &comment.CreatedAt,
		&comment.Author.ID, &comment.Author.Username,
		&comment.LikesCount, &comment.DislikesCount,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}
