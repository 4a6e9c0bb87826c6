// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// auth helper'ı JWT doğrulamasını zorunlu kılar; GET post/comment
// endpoint'leri herkese açıktır (okuma public, yazma auth'lu).
package main

import (
	"net/http"

	"github.com/akinalp/kalem/middleware"
	"github.com/akinalp/kalem/repository"
	"github.com/akinalp/kalem/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı — Go 1.22+ ServeMux en spesifik pattern'i seçer ama
// okunabilirlik için sıra yine de korunur.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("POST /api/users/me/password", auth(h.Auth.ChangePassword))

	// Posts — okuma public, yazma auth'lu
	mux.HandleFunc("GET /api/posts", h.Post.List)
	mux.HandleFunc("GET /api/posts/{id}", h.Post.Get)
	mux.Handle("POST /api/posts", auth(h.Post.Create))
	mux.Handle("PATCH /api/posts/{id}", auth(h.Post.Update))
	mux.Handle("DELETE /api/posts/{id}", auth(h.Post.Delete))

	// Comments — okuma public, yazma auth'lu
	mux.HandleFunc("GET /api/comments", h.Comment.List)
	mux.HandleFunc("GET /api/comments/{id}", h.Comment.Get)
	mux.Handle("POST /api/comments", auth(h.Comment.Create))
	mux.Handle("PATCH /api/comments/{id}", auth(h.Comment.Update))
	mux.Handle("DELETE /api/comments/{id}", auth(h.Comment.Delete))

	// Reactions — tamamı auth'lu; tek yazma kapısı POST (toggle).
	// id üzerinden mutasyon YOK: PUT/PATCH/DELETE koşulsuz 405 döner,
	// auth middleware'den bile geçmeden (auth'suz istek de 401 değil
	// 405 alır — method hatası kimlikten önce gelir).
	mux.Handle("POST /api/reactions", auth(h.Reaction.Toggle))
	mux.Handle("GET /api/reactions", auth(h.Reaction.List))
	mux.HandleFunc("PUT /api/reactions/{id}", h.Reaction.MethodNotAllowed)
	mux.HandleFunc("PATCH /api/reactions/{id}", h.Reaction.MethodNotAllowed)
	mux.HandleFunc("DELETE /api/reactions/{id}", h.Reaction.MethodNotAllowed)
}
