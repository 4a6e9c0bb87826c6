package repository

import (
	"context"

	"github.com/akinalp/kalem/models"
)

// CommentRepository, yorumlar için veritabanı interface'i.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment, authorID string) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// GetByPostID, bir post'un yorumlarını en eskiden yeniye döner
	// (konuşma kronolojik okunur).
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	// Exists, reaction registry'nin hedef doğrulaması için.
	Exists(ctx context.Context, id string) (bool, error)
}
