// Package database — Transaction yönetimi.
//
// WithTx, birden fazla DB operasyonunun atomik (all-or-nothing) çalışmasını
// sağlar. Reaction toggle'ı ve post/comment silme cascade'leri gibi çok adımlı
// işlemler ya tamamen yazılır (COMMIT) ya hiç yazılmaz (ROLLBACK).
//
// Repository'ler ile kullanım:
// Repository'ler TxQuerier interface'i alır — hem *sql.DB hem *sql.Tx bu
// interface'i karşılar. Normal operasyonlarda *sql.DB geçilir, transaction
// içinde aynı constructor'a *sql.Tx geçilerek tx-bound repository oluşturulur:
//
//	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
//	    txRepo := repository.NewSQLiteReactionRepo(tx)
//	    ...
//	    return nil // → COMMIT, error → ROLLBACK
//	})
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxQuerier, hem *sql.DB hem *sql.Tx tarafından karşılanan interface.
//
// database/sql paketinde bu interface tanımlı değildir — biz kendimiz
// tanımlıyoruz (Go duck typing sayesinde hem DB hem Tx karşılar).
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx, verilen fonksiyonu bir SQL transaction içinde çalıştırır.
//
// Davranış:
// 1. BEGIN TRANSACTION
// 2. fn(tx) çağır
// 3. fn nil dönerse → COMMIT
// 4. fn error dönerse → ROLLBACK
// 5. fn panic atarsa → ROLLBACK + panic'i tekrar fırlat (recover + re-panic)
//
// Panic recovery olmadan fn içindeki beklenmeyen bir panic transaction'ı
// açık bırakır — SQLite'ta bu DB lock'a neden olabilir.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return
}
