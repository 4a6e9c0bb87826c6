package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Server her request'te token imzasını doğrular — payload'dan kullanıcı
// ID'sini okur. Struct models paketinde tanımlanır çünkü birden fazla
// katman (services, middleware) tarafından kullanılır; her katman
// models'e bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
