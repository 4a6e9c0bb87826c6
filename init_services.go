// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/akinalp/kalem/config"
	"github.com/akinalp/kalem/database"
	"github.com/akinalp/kalem/models"
	"github.com/akinalp/kalem/pkg/email"
	"github.com/akinalp/kalem/pkg/ratelimit"
	"github.com/akinalp/kalem/repository"
	"github.com/akinalp/kalem/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth     services.AuthService
	Post     services.PostService
	Comment  services.CommentService
	Reaction services.ReactionService
}

// RateLimiters, rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(db *sql.DB, repos *Repositories, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Printf("[main] email service disabled — password reset emails will not be sent")
	}

	// ─── Reaction registry ───
	// Hangi content_type hangi repository ile doğrulanır.
	// Yeni bir reaction hedefi eklemek = buraya bir satır eklemek.
	registry := map[models.TargetKind]services.ReactableFactory{
		models.TargetKindPost: func(db database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLitePostRepo(db)
		},
		models.TargetKindComment: func(db database.TxQuerier) repository.ReactableRepository {
			return repository.NewSQLiteCommentRepo(db)
		},
	}

	svcs := &Services{
		Auth: services.NewAuthService(
			repos.User, repos.Session, repos.ResetToken, emailSender,
			cfg.JWT.Secret,
			time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
			time.Duration(cfg.JWT.RefreshTokenExpiry)*24*time.Hour,
		),
		Post:     services.NewPostService(db, repos.Post),
		Comment:  services.NewCommentService(db, repos.Comment, repos.Post),
		Reaction: services.NewReactionService(db, repos.Reaction, registry),
	}

	// Login brute-force koruması: IP başına 2 dakikada 5 deneme.
	limiters := &RateLimiters{
		Login: ratelimit.NewLoginRateLimiter(5, 2*time.Minute),
	}

	return svcs, limiters
}
