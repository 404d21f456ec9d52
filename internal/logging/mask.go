package logging

import (
	"strings"

	"go.uber.org/zap"
)

// MaskEmail hides the local part of an address, keeping its first and last
// character:
//
//	"user@example.com" -> "u**r@example.com"
//	"ab@example.com"   -> "a*@example.com"
//	"u@example.com"    -> "u@example.com"
func MaskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return maskToken(email)
	}
	local, domain := email[:at], email[at:]
	return maskToken(local) + domain
}

// Email returns a zap field carrying a masked address.
func Email(email string) zap.Field {
	return zap.String("email", MaskEmail(email))
}

func maskToken(s string) string {
	r := []rune(s)
	switch n := len(r); {
	case n < 2:
		return s
	case n == 2:
		return string(r[0]) + "*"
	default:
		return string(r[0]) + strings.Repeat("*", n-2) + string(r[n-1])
	}
}
