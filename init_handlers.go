// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
package main

import (
	"github.com/akinalp/kalem/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Post     *handlers.PostHandler
	Comment  *handlers.CommentHandler
	Reaction *handlers.ReactionHandler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:     handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Post:     handlers.NewPostHandler(svcs.Post),
		Comment:  handlers.NewCommentHandler(svcs.Comment),
		Reaction: handlers.NewReactionHandler(svcs.Reaction),
	}
}
