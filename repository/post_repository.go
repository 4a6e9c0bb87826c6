package repository

import (
	"context"

	"github.com/akinalp/kalem/models"
)

// PostRepository, blog yazıları için veritabanı interface'i.
//
// Okuma method'ları author'ı JOIN ile, like/dislike sayaçlarını
// correlated subquery ile doldurur — sayaç kolonu tutulmaz, her okuma
// reactions tablosundan hesaplanır.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, authorID string) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// GetAll, tüm yazıları en yeniden eskiye döner.
	// created_at eşitliğinde rowid DESC tiebreak — saniye çözünürlüğünde
	// aynı anda oluşturulan yazılar için deterministik sıra.
	GetAll(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	// Exists, reaction registry'nin hedef doğrulaması için.
	// ReactableRepository interface'ini sağlar.
	Exists(ctx context.Context, id string) (bool, error)
}
