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

// sqlitePostRepo, PostRepository interface'inin SQLite implementasyonu.
type sqlitePostRepo struct {
	db database.TxQuerier
}

// NewSQLitePostRepo, constructor — interface döner.
func NewSQLitePostRepo(db database.TxQuerier) PostRepository {
	return &sqlitePostRepo{db: db}
}

// postSelect, tüm okuma sorgularının ortak gövdesi.
//
// Sayaçlar correlated subquery ile hesaplanır: her post satırı için
// reactions tablosunda target'a göre COUNT. idx_reactions_target
// index'i bu sorguyu ucuz tutar. Subquery yaklaşımı sayesinde toggle
// ile sayaç arasında senkronizasyon derdi yoktur — okunan değer her
// zaman o anki gerçek sayıdır.
const postSelect = `
	SELECT p.id, p.title, p.content, p.created_at, p.updated_at,
	       u.id, u.username,
	       (SELECT COUNT(*) FROM reactions r
	         WHERE r.target_kind = 'post' AND r.target_id = p.id AND r.is_like = 1),
	       (SELECT COUNT(*) FROM reactions r
	         WHERE r.target_kind = 'post' AND r.target_id = p.id AND r.is_like = 0)
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (r *sqlitePostRepo) Create(ctx context.Context, post *models.Post, authorID string) error {
	query := `
		INSERT INTO posts (id, author_id, title, content)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		authorID,
		post.Title,
		post.Content,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = ?`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *sqlitePostRepo) GetAll(ctx context.Context) ([]models.Post, error) {
	query := postSelect + ` ORDER BY p.created_at DESC, p.rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func (r *sqlitePostRepo) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.ID).
		Scan(&post.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

func (r *sqlitePostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
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

func (r *sqlitePostRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return true, nil
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan imzası.
// scanPost'u hem tekil hem liste sorgularında kullanabilmek için.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{Author: &models.UserRef{}}
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Username,
		&post.LikesCount, &post.DislikesCount,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}
