// Package cache — Generic in-memory TTL cache.
//
// TTLCache, süresi dolan kayıtları otomatik düşüren thread-safe,
// generic bir cache'tir.
//
// Kullanım alanları:
// - Auth middleware'de token'dan çözülen kullanıcıyı kısa süreliğine tutmak
//   (her istekte DB'ye gitmek yerine)
// - Sık okunan ama nadiren değişen verileri bellekte tutmak
//
// Her entry bir son kullanma zamanı taşır; süresi geçen entry okunamaz,
// cache miss olur. Fiziksel silme periyodik cleanup goroutine'i ile yapılır.
//
// Thread safety: sync.RWMutex — okuma paralel, yazma exclusive.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıt.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, generic in-memory TTL cache.
//
//	c := cache.New[string, *models.User](30*time.Second, 5*time.Minute)
//	c.Set(userID, user)
//	u, ok := c.Get(userID)
//
// K ve V tip parametreleri sayesinde casting gerekmez.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration

	// stopCleanup: Close() çağrıldığında cleanup goroutine'i durdurulur.
	stopCleanup chan struct{}
}

// New, yeni bir TTLCache oluşturur ve cleanup goroutine'ini başlatır.
//
// ttl: entry yaşam süresi. cleanupInterval: süresi dolanların map'ten
// ne sıklıkla silineceği. Get zaten süresi dolanı döndürmez; cleanup
// sadece belleğin büyümesini engeller.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, cache'ten bir değer okur.
// (value, true): key var ve süresi dolmamış. Aksi halde (zero, false).
//
// Süresi dolan entry burada silinmez — Get'i RLock ile hızlı tutmak için
// fiziksel silme cleanup'a bırakılır.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e bir değer yazar (TTL ile).
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, belirli bir key'i cache'ten siler.
//
// Kullanım: kullanıcı bilgisi değiştiğinde (örn. şifre reset'i tüm
// session'ları düşürdüğünde) entry'yi invalidate etmek.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear, tüm cache'i boşaltır.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
}

// Len, cache'teki toplam entry sayısını döner (süresi dolmuşlar dahil).
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, cleanup goroutine'ini durdurur (goroutine leak önleme).
func (c *TTLCache[K, V]) Close() {
	close(c.stopCleanup)
}

// evictExpired, süresi dolan entry'leri map'ten siler.
func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
