// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan katman.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden çalışır.
//
// Neden interface?
// 1. Test: mock repository yazarak DB olmadan test edebilirsin
// 2. Esneklik: SQLite'tan başka bir DB'ye geçiş sadece yeni implementasyon
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Go'da interface implicit'tır — struct tüm method'ları implement ediyorsa
// otomatik olarak interface'i sağlar.
package repository

import (
	"context"

	"github.com/akinalp/kalem/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByEmail, şifre sıfırlama akışında kullanılır.
	// Email kolonunda partial unique index vardır — en fazla bir eşleşme olur.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePassword, kullanıcının şifre hash'ini günceller (yeni bcrypt hash).
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
}
