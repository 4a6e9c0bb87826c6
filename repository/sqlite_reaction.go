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

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
type sqliteReactionRepo struct {
	db database.TxQuerier
}

// NewSQLiteReactionRepo, constructor — interface döner.
//
// Toggle'ın atomikliği için service katmanı bu repo'yu WithTx içinde
// transaction'a bağlı olarak kurar (db parametresi *sql.Tx olur).
func NewSQLiteReactionRepo(db database.TxQuerier) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

// Toggle, bir kullanıcının bir hedefteki reaction'ını çevirir.
//
// Akış:
//  1. INSERT ... ON CONFLICT DO NOTHING RETURNING ile eklemeyi dene.
//     Satır döndüyse → yeni reaction eklendi (created).
//  2. sql.ErrNoRows → UNIQUE(target_kind, target_id, user_id) nedeniyle
//     eklenemedi → mevcut satırı AYNI transaction içinde oku.
//  3. Mevcut yön istekle aynıysa → DELETE (removed).
//     Zıtsa → UPDATE is_like (updated) — id ve created_at korunur.
//
// Yarış koşulu: iki eşzamanlı istek aynı üçlü için çakışırsa UNIQUE
// constraint kazananı belirler, kaybeden conflict dalına düşer ve
// kazananın yazdığı satır üzerinde çalışır. Constraint ihlali hiçbir
// durumda client'a sızmaz.
func (r *sqliteReactionRepo) Toggle(ctx context.Context, kind models.TargetKind, targetID, userID string, isLike bool) (*models.Reaction, models.ToggleOutcome, error) {
	insertQuery := `
		INSERT INTO reactions (id, target_kind, target_id, user_id, is_like)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		ON CONFLICT (target_kind, target_id, user_id) DO NOTHING
		RETURNING id, created_at`

	reaction := &models.Reaction{
		TargetKind: kind,
		TargetID:   targetID,
		IsLike:     isLike,
	}

	err := r.db.QueryRowContext(ctx, insertQuery, kind, targetID, userID, isLike).
		Scan(&reaction.ID, &reaction.CreatedAt)

	if err == nil {
		return reaction, models.ToggleCreated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("toggle reaction insert: %w", err)
	}

	// Conflict — mevcut reaction'ı oku
	selectQuery := `
		SELECT id, is_like, created_at FROM reactions
		WHERE target_kind = ? AND target_id = ? AND user_id = ?`

	var existingIsLike bool
	err = r.db.QueryRowContext(ctx, selectQuery, kind, targetID, userID).
		Scan(&reaction.ID, &existingIsLike, &reaction.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict dedikten sonra satır yok — transaction dışında
		// çağrılmış ve araya bir silme girmiş demektir
		return nil, "", fmt.Errorf("%w: reaction vanished during toggle", pkg.ErrInternal)
	}
	if err != nil {
		return nil, "", fmt.Errorf("toggle reaction select: %w", err)
	}

	if existingIsLike == isLike {
		// Aynı yönde tekrar → kaldır
		deleteQuery := `
			DELETE FROM reactions
			WHERE target_kind = ? AND target_id = ? AND user_id = ?`
		if _, err := r.db.ExecContext(ctx, deleteQuery, kind, targetID, userID); err != nil {
			return nil, "", fmt.Errorf("toggle reaction delete: %w", err)
		}
		return nil, models.ToggleRemoved, nil
	}

	// Zıt yön → satırı güncelle (id ve created_at değişmez)
	updateQuery := `
		UPDATE reactions SET is_like = ?
		WHERE target_kind = ? AND target_id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, updateQuery, isLike, kind, targetID, userID); err != nil {
		return nil, "", fmt.Errorf("toggle reaction update: %w", err)
	}

	return reaction, models.ToggleUpdated, nil
}

func (r *sqliteReactionRepo) GetForTarget(ctx context.Context, kind models.TargetKind, targetID string) ([]models.Reaction, error) {
	query := `
		SELECT r.id, r.target_kind, r.target_id, r.is_like, r.created_at,
		       u.id, u.username
		FROM reactions r
		JOIN users u ON u.id = r.user_id
		WHERE r.target_kind = ? AND r.target_id = ?
		ORDER BY r.created_at ASC, r.rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("get reactions for target: %w", err)
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		reaction := models.Reaction{User: &models.UserRef{}}
		if err := rows.Scan(
			&reaction.ID, &reaction.TargetKind, &reaction.TargetID,
			&reaction.IsLike, &reaction.CreatedAt,
			&reaction.User.ID, &reaction.User.Username,
		); err != nil {
			return nil, fmt.Errorf("scan reaction row: %w", err)
		}
		reactions = append(reactions, reaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reaction rows: %w", err)
	}

	return reactions, nil
}

func (r *sqliteReactionRepo) CountsForTarget(ctx context.Context, kind models.TargetKind, targetID string) (*models.ReactionCounts, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN is_like = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN is_like = 0 THEN 1 ELSE 0 END), 0)
		FROM reactions
		WHERE target_kind = ? AND target_id = ?`

	counts := &models.ReactionCounts{}
	err := r.db.QueryRowContext(ctx, query, kind, targetID).
		Scan(&counts.Likes, &counts.Dislikes)
	if err != nil {
		return nil, fmt.Errorf("count reactions for target: %w", err)
	}

	return counts, nil
}

func (r *sqliteReactionRepo) DeleteForTarget(ctx context.Context, kind models.TargetKind, targetID string) error {
	query := `DELETE FROM reactions WHERE target_kind = ? AND target_id = ?`
	if _, err := r.db.ExecContext(ctx, query, kind, targetID); err != nil {
		return fmt.Errorf("delete reactions for target: %w", err)
	}
	return nil
}

func (r *sqliteReactionRepo) DeleteForPostComments(ctx context.Context, postID string) error {
	query := `
		DELETE FROM reactions
		WHERE target_kind = 'comment'
		  AND target_id IN (SELECT id FROM comments WHERE post_id = ?)`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("delete reactions for post comments: %w", err)
	}
	return nil
}
