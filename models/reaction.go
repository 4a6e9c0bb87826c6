package models

import (
	"fmt"
	"time"
)

// TargetKind, bir reaction'ın hedefleyebileceği obje türü.
//
// Açık uçlu string tag — DB'de CHECK constraint YOKTUR, geçerli türler
// uygulama katmanındaki registry'de tanımlıdır. Yeni bir tür eklemek
// (ör. "page") şema değişikliği gerektirmez, sadece registry'ye yeni
// bir repository kaydedilir.
type TargetKind string

const (
	TargetKindPost    TargetKind = "post"
	TargetKindComment TargetKind = "comment"
)

// Reaction, bir kullanıcının bir objeye verdiği like/dislike oyunu.
// DB'deki "reactions" tablosunun Go karşılığı.
//
// UNIQUE(target_kind, target_id, user_id) constraint'i sayesinde bir
// kullanıcının bir objede en fazla BİR reaction'ı olabilir — like'tan
// dislike'a geçiş yeni satır değil, mevcut satırın güncellenmesidir.
//
// JSON isimleri DB kolonlarından farklıdır: target_kind → content_type,
// target_id → object_id. API sözleşmesi polymorphic ilişkiyi bu
// isimlerle dışarı açar.
type Reaction struct {
	ID         string     `json:"id"`
	TargetKind TargetKind `json:"content_type"`
	TargetID   string     `json:"object_id"`
	User       *UserRef   `json:"user"`
	IsLike     bool       `json:"is_like"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToggleOutcome, bir toggle işleminin üç olası sonucundan biri.
// Handler katmanı bu değeri HTTP status code'a çevirir:
// created → 201, updated → 200, removed → 204.
type ToggleOutcome string

const (
	ToggleCreated ToggleOutcome = "created" // Yeni reaction eklendi
	ToggleUpdated ToggleOutcome = "updated" // Mevcut reaction'ın yönü değişti (like ↔ dislike)
	ToggleRemoved ToggleOutcome = "removed" // Aynı yönde tekrar → reaction kaldırıldı
)

// ReactionCounts, bir hedefin like/dislike toplamları.
// Post ve comment response'larına annotate edilir.
type ReactionCounts struct {
	Likes    int `json:"likes_count"`
	Dislikes int `json:"dislikes_count"`
}

// ToggleReactionRequest, POST /api/reactions body'si.
//
// IsLike *bool olmalıdır: JSON'da alanın hiç gönderilmemesi ile
// false gönderilmesi farklı şeylerdir. nil → eksik alan → 400.
type ToggleReactionRequest struct {
	ContentType string `json:"content_type"`
	ObjectID    string `json:"object_id"`
	IsLike      *bool  `json:"is_like"`
}

// Validate, ToggleReactionRequest geçerlilik kontrolü.
// ContentType'ın kayıtlı bir tür olup olmadığı burada DEĞİL, service
// katmanındaki registry'de kontrol edilir — model katmanı registry'yi bilmez.
func (r *ToggleReactionRequest) Validate() error {
	if r.ContentType == "" {
		return fmt.Errorf("content_type is required")
	}
	if r.ObjectID == "" {
		return fmt.Errorf("object_id is required")
	}
	if r.IsLike == nil {
		return fmt.Errorf("is_like is required")
	}
	return nil
}
