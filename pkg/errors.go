// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// errors.New() ile sabit error değişkenleri tanımlanır; karşılaştırma
// string yerine errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları (gerekirse %w ile mesaj ekleyerek) döner,
// handler katmanı pkg.Error() üzerinden HTTP status code'larına map'ler.
//
// Geçersiz reaction hedefi (bilinmeyen content_type veya var olmayan obje)
// ErrBadRequest ile döner — istemci hatasıdır, 404 değil 400 üretir.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
