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

// CommentService, yorum iş kuralları. Sahiplik modeli PostService ile aynı.
type CommentService interface {
	Create(ctx context.Context, authorID string, req *models.CreateCommentRequest) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, requesterID, commentID string, req *models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, requesterID, commentID string) error
}

type commentService struct {
	db          *sql.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService, constructor.
func NewCommentService(db *sql.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{db: db, commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Create(ctx context.Context, authorID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Hedef post var mı? Yoksa 400 — istek içeriği hatalı, URL değil
	exists, err := s.postRepo.Exists(ctx, req.Post)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: post %q does not exist", pkg.ErrBadRequest, req.Post)
	}

	comment := &models.Comment{
		PostID:  req.Post,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment, authorID); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *commentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *commentService) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.commentRepo.GetByPostID(ctx, postID)
}

func (s *commentService) Update(ctx context.Context, requesterID, commentID string, req *models.UpdateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.Author.ID != requesterID {
		return nil, fmt.Errorf("%w: only the author can edit this comment", pkg.ErrForbidden)
	}

	comment.Content = *req.Content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete, yorumu ve reaction'larını tek transaction'da siler.
func (s *commentService) Delete(ctx context.Context, requesterID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.Author.ID != requesterID {
		return fmt.Errorf("%w: only the author can delete this comment", pkg.ErrForbidden)
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txCommentRepo := repository.NewSQLiteCommentRepo(tx)
		txReactionRepo := repository.NewSQLiteReactionRepo(tx)

		if err := txReactionRepo.DeleteForTarget(ctx, models.TargetKindComment, commentID); err != nil {
			return err
		}
		return txCommentRepo.Delete(ctx, commentID)
	})
}
