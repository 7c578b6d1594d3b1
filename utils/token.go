package utils

import (
	"errors"
	"sync"
	"time"
)

// ErrTokenBlacklisted dikembalikan untuk token yang sudah di-logout
var ErrTokenBlacklisted = errors.New("token has been revoked")

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// BlacklistToken menyimpan token yang sudah logout selama 24 jam
func BlacklistToken(token string) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = time.Now().Add(24 * time.Hour)
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	defer blacklistMutex.RUnlock()

	if expiry, exists := blacklistedTokens[token]; exists {
		if time.Now().Before(expiry) {
			return true
		}
	}
	return false
}

// ValidateToken -> ParseToken + cek blacklist
func ValidateToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, ErrTokenBlacklisted
	}
	return ParseToken(tokenString)
}
