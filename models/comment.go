package models

import (
	"fmt"
	"strings"
	"time"
)

// Comment, bir post altındaki yorumu temsil eder.
//
// JSON'da post_id alanı "post" olarak çıkar — frontend yorumu hangi
// post'a bağlayacağını bu alandan okur. Sayaçlar Post'taki gibi
// okumada hesaplanır.
type Comment struct {
	ID            string    `json:"id"`
	PostID        string    `json:"post"`
	Author        *UserRef  `json:"author"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count"`
	DislikesCount int       `json:"dislikes_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommentRequest, yeni yorum oluştururken gelen veri.
// Post: hedef post'un ID'si. Var olmayan post → 400 (404 değil:
// yorumun kendisi değil, isteğin içeriği hatalıdır).
type CreateCommentRequest struct {
	Post    string `json:"post"`
	Content string `json:"content"`
}

// Validate, CreateCommentRequest geçerlilik kontrolü.
func (r *CreateCommentRequest) Validate() error {
	r.Post = strings.TrimSpace(r.Post)
	if r.Post == "" {
		return fmt.Errorf("post is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// UpdateCommentRequest, yorum içeriği güncellemesi (PATCH).
type UpdateCommentRequest struct {
	Content *string `json:"content"`
}

// Validate, UpdateCommentRequest geçerlilik kontrolü.
func (r *UpdateCommentRequest) Validate() error {
	if r.Content == nil {
		return fmt.Errorf("nothing to update")
	}
	if strings.TrimSpace(*r.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	return nil
}
