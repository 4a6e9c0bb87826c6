package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/repository"
)

// ReactableFactory, bir target türünün repository'sini verilen querier
// üzerinde kurar. Toggle transaction içinde çalıştığı için registry'de
// hazır repository değil constructor tutulur — existence kontrolü de
// aynı tx'ten okur.
type ReactableFactory func(db database.TxQuerier) repository.ReactableRepository

// ReactionService, like/dislike iş kuralları.
//
// Registry: target_kind → ReactableFactory. Geçerli türler DB şemasında
// değil burada tanımlıdır; yeni bir tür eklemek registry'ye bir satır
// eklemekten ibarettir. Kayıtsız tür → ErrBadRequest.
type ReactionService interface {
	// Toggle, kullanıcının hedefteki reaction'ını çevirir.
	// Sonuç üç durumdan biri: created / updated / removed.
	Toggle(ctx context.Context, user *models.User, req *models.ToggleReactionRequest) (*ToggleResult, error)
	// List, bir hedefin tüm reaction'larını döner.
	List(ctx context.Context, contentType, objectID string) ([]models.Reaction, error)
}

// ToggleResult, toggle işleminin sonucu.
// Outcome removed ise Reaction nil'dir.
type ToggleResult struct {
	Outcome  models.ToggleOutcome
	Reaction *models.Reaction
}

type reactionService struct {
	db           *sql.DB
	reactionRepo repository.ReactionRepository
	registry     map[models.TargetKind]ReactableFactory
}

// NewReactionService, constructor.
//
// registry: hangi target_kind'ın hangi repository ile doğrulanacağı.
// Wire-up init_services.go'da yapılır:
//
//	registry := map[models.TargetKind]services.ReactableFactory{
//		models.TargetKindPost:    func(db database.TxQuerier) repository.ReactableRepository { return repository.NewSQLitePostRepo(db) },
//		...
//	}
func NewReactionService(
	db *sql.DB,
	reactionRepo repository.ReactionRepository,
	registry map[models.TargetKind]ReactableFactory,
) ReactionService {
	return &reactionService{
		db:           db,
		reactionRepo: reactionRepo,
		registry:     registry,
	}
}

// Toggle, reaction toggle akışının tamamı — tek transaction:
//
//  1. Request validation (eksik alan → 400).
//  2. content_type registry'de kayıtlı mı? Değilse 400.
//  3. Hedef obje var mı? (tx içinde) Yoksa 400 — 404 değil:
//     hatalı olan URL değil isteğin içeriğidir.
//  4. Repo toggle: insert / flip / delete (tx içinde).
//
// Existence kontrolü ile toggle aynı transaction'da olduğu için bu
// aralıkta hedef silinemez — "var olmayan objeye reaction" yazılamaz.
func (s *reactionService) Toggle(ctx context.Context, user *models.User, req *models.ToggleReactionRequest) (*ToggleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	kind := models.TargetKind(req.ContentType)
	factory, ok := s.registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown content_type %q", pkg.ErrBadRequest, req.ContentType)
	}

	result := &ToggleResult{}
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		reactable := factory(tx)
		exists, err := reactable.Exists(ctx, req.ObjectID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s %q does not exist", pkg.ErrBadRequest, req.ContentType, req.ObjectID)
		}

		txReactionRepo := repository.NewSQLiteReactionRepo(tx)
		reaction, outcome, err := txReactionRepo.Toggle(ctx, kind, req.ObjectID, user.ID, *req.IsLike)
		if err != nil {
			return err
		}

		result.Outcome = outcome
		result.Reaction = reaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Reaction != nil {
		result.Reaction.User = user.Ref()
	}

	log.Printf("[reaction] user=%s %s %s/%s", user.ID, result.Outcome, req.ContentType, req.ObjectID)

	return result, nil
}

// List, hedefin reaction'larını eskiden yeniye döner.
// Kayıtsız content_type → 400. Var olan tür + var olmayan obje →
// boş liste (filtre boş küme döndürür, hata değildir).
func (s *reactionService) List(ctx context.Context, contentType, objectID string) ([]models.Reaction, error) {
	if contentType == "" || objectID == "" {
		return nil, fmt.Errorf("%w: content_type and object_id query parameters are required", pkg.ErrBadRequest)
	}

	kind := models.TargetKind(contentType)
	if _, ok := s.registry[kind]; !ok {
		return nil, fmt.Errorf("%w: unknown content_type %q", pkg.ErrBadRequest, contentType)
	}

	return s.reactionRepo.GetForTarget(ctx, kind, objectID)
}
