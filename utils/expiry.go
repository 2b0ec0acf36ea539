package utils

import (
	"math"
	"time"
)

// PaymentExpiresAt returns createdAt + expirySeconds, saturating at the int64 bounds.
func PaymentExpiresAt(createdAt, expirySeconds int64) int64 {
	switch {
	case expirySeconds > 0 && createdAt > math.MaxInt64-expirySeconds:
		return math.MaxInt64
	case expirySeconds < 0 && createdAt < math.MinInt64-expirySeconds:
		return math.MinInt64
	}
	return createdAt + expirySeconds
}

// IsPaymentExpired reports whether the current time is strictly past
// createdAt + expirySeconds. Both arguments are whole seconds.
func IsPaymentExpired(createdAt, expirySeconds int64) bool {
	return IsPaymentExpiredAt(createdAt, expirySeconds, time.Now())
}

// IsPaymentExpiredAt is IsPaymentExpired evaluated at now.
// The exact expiry second is still valid.
func IsPaymentExpiredAt(createdAt, expirySeconds int64, now time.Time) bool {
	return now.Unix() > PaymentExpiresAt(createdAt, expirySeconds)
}
