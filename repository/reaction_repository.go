package repository

import (
	"context"

	"github.com/akinalp/kalem/models"
)

// ReactableRepository, reaction alabilen bir obje türünün minimal sözleşmesi.
//
// Reaction registry her target_kind için bu interface'e kayıt tutar.
// PostRepository ve CommentRepository bunu implicit olarak sağlar —
// ikisinin de Exists method'u var. Yeni bir reaction hedefi eklemek,
// Exists'i olan bir repository'yi registry'ye kaydetmekten ibarettir.
type ReactableRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ReactionRepository, like/dislike veritabanı işlemleri için interface.
//
// Toggle üç sonuçtan birini üretir:
//   - ToggleCreated: hedefte reaction yoktu, eklendi (reaction dolu döner)
//   - ToggleUpdated: zıt yönde reaction vardı, yönü çevrildi
//     (id ve created_at DEĞİŞMEZ — satır güncellenir, silinip eklenmez)
//   - ToggleRemoved: aynı yönde reaction vardı, kaldırıldı (reaction nil)
//
// Mutasyonlar HER ZAMAN (target_kind, target_id, user_id) üçlüsüyle
// anahtarlanır, asla reaction id ile değil — id sadece response'ta görünür.
type ReactionRepository interface {
	Toggle(ctx context.Context, kind models.TargetKind, targetID, userID string, isLike bool) (*models.Reaction, models.ToggleOutcome, error)
	// GetForTarget, hedefin tüm reaction'larını user bilgisiyle döner
	// (eskiden yeniye).
	GetForTarget(ctx context.Context, kind models.TargetKind, targetID string) ([]models.Reaction, error)
	// CountsForTarget, hedefin like/dislike toplamlarını döner.
	CountsForTarget(ctx context.Context, kind models.TargetKind, targetID string) (*models.ReactionCounts, error)
	// DeleteForTarget, bir hedefin tüm reaction'larını siler.
	// Hedef silinirken aynı transaction içinde çağrılır (cascade).
	DeleteForTarget(ctx context.Context, kind models.TargetKind, targetID string) error
	// DeleteForPostComments, bir post'un TÜM yorumlarının reaction'larını
	// tek sorguda siler. Post silme cascade'inin parçası — post'un
	// yorumları FK ile silinir ama yorumların reaction'ları polimorfik
	// olduğu için FK cascade çalışmaz, elle temizlenir.
	DeleteForPostComments(ctx context.Context, postID string) error
}
