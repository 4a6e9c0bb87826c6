package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post, bir blog yazısını temsil eder. DB'deki "posts" tablosunun Go karşılığı.
//
// Author, users tablosundan JOIN ile doldurulur — response'ta tam User
// yerine küçültülmüş UserRef döner.
//
// LikesCount/DislikesCount tabloda tutulmaz; her okumada reactions
// tablosu üzerinden subquery ile hesaplanır. Sayaç kolonu tutmak
// toggle ile sayaç arasında tutarsızlık riski yaratır — hesaplamak
// her zaman doğru sonucu verir.
type Post struct {
	ID            string    `json:"id"`
	Author        *UserRef  `json:"author"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count"`
	DislikesCount int       `json:"dislikes_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreatePostRequest, yeni post oluştururken gelen veri.
// Author request'ten alınmaz — her zaman oturumdaki kullanıcıdır.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate, CreatePostRequest geçerlilik kontrolü.
// Title: zorunlu, max 200 karakter. Content: zorunlu.
func (r *CreatePostRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > 200 {
		return fmt.Errorf("title must be at most 200 characters")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// UpdatePostRequest, kısmi post güncellemesi (PATCH).
// nil field "değiştirme" demektir — pointer ile "gönderilmedi" ve
// "boş gönderildi" ayrımı yapılır.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Validate, UpdatePostRequest geçerlilik kontrolü.
func (r *UpdatePostRequest) Validate() error {
	if r.Title == nil && r.Content == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > 200 {
			return fmt.Errorf("title must be at most 200 characters")
		}
		r.Title = &t
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return fmt.Errorf("content cannot be empty")
	}
	return nil
}
