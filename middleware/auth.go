// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern: her HTTP request, handler'a ulaşmadan önce bir veya
// daha fazla middleware'dan geçer. Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Hata varsa next çağırılmaz → request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/akinalp/kalem/handlers"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg"
	"github.com/akinalp/kalem/pkg/cache"
	"github.com/akinalp/kalem/repository"
	"github.com/akinalp/kalem/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
//
// userCache: token geçerli olduğu sürece aynı kullanıcı her istekte
// DB'den okunmasın diye claims'teki userID kısa süreliğine (30s)
// cache'lenir. TTL kısa tutulur ki silinen kullanıcının token'ı en
// fazla 30 saniye daha çalışsın.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
	userCache   *cache.TTLCache[string, *models.User]
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
		userCache:   cache.New[string, *models.User](30*time.Second, 5*time.Minute),
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// Akış:
//  1. "Authorization: Bearer <token>" header'ını parse et
//  2. AuthService.ValidateAccessToken() ile imzayı doğrula
//  3. Kullanıcıyı cache'ten, yoksa DB'den getir — token geçerli ama
//     kullanıcı silinmiş olabilir
//  4. Context'e ekle → next handler'ı çağır
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		user, ok := m.userCache.Get(claims.UserID)
		if !ok {
			user, err = m.userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
				return
			}
			// Password hash context'te taşınmamalı
			user.PasswordHash = ""
			m.userCache.Set(claims.UserID, user)
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
