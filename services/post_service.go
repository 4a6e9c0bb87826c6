package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/repository"
)

// PostService, blog yazısı iş kuralları.
//
// Sahiplik modeli: okuma herkese açık, yazma sadece author'a.
// Update/Delete'te sahiplik kontrolü burada yapılır — handler sadece
// "kim istiyor" bilgisini geçirir.
type PostService interface {
	Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, requesterID, postID string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, requesterID, postID string) error
}

type postService struct {
	db       *sql.DB // Delete'te WithTx için — cascade atomik çalışır
	postRepo repository.PostRepository
}

// NewPostService, constructor.
//
// db: Delete'te post + yorum reaction'larının tek transaction'da
// temizlenmesi için doğrudan *sql.DB gerekir.
func NewPostService(db *sql.DB, postRepo repository.PostRepository) PostService {
	return &postService{db: db, postRepo: postRepo}
}

func (s *postService) Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post := &models.Post{
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.postRepo.Create(ctx, post, authorID); err != nil {
		return nil, err
	}

	// INSERT author'ı doldurmaz — tam görünüm (author + sayaçlar) için
	// tekrar oku. Yeni post'un sayaçları zaten sıfırdır ama response
	// şekli her zaman aynı kalsın.
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) GetAll(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.GetAll(ctx)
}

func (s *postService) Update(ctx context.Context, requesterID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Sahiplik kontrolü — 403, 404 değil: obje var ama senin değil
	if post.Author.ID != requesterID {
		return nil, fmt.Errorf("%w: only the author can edit this post", pkg.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete, post'u ve ona bağlı her şeyi siler.
//
// Cascade sırası (tek transaction):
//  1. Post'un yorumlarının reaction'ları (polimorfik — FK cascade çalışmaz)
//  2. Post'un kendi reaction'ları
//  3. Post satırı — comments FK ON DELETE CASCADE ile DB tarafından silinir
//
// Transaction olmadan 1 ile 3 arasında gelen bir toggle "sahipsiz"
// reaction bırakabilirdi.
func (s *postService) Delete(ctx context.Context, requesterID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Author.ID != requesterID {
		return fmt.Errorf("%w: only the author can delete this post", pkg.ErrForbidden)
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Transaction-bound repository'ler — aynı tx üzerinden çalışır
		txPostRepo := repository.NewSQLitePostRepo(tx)
		txReactionRepo := repository.NewSQLiteReactionRepo(tx)

		if err := txReactionRepo.DeleteForPostComments(ctx, postID); err != nil {
			return err
		}
		if err := txReactionRepo.DeleteForTarget(ctx, models.TargetKindPost, postID); err != nil {
			return err
		}
		return txPostRepo.Delete(ctx, postID)
	})
}
