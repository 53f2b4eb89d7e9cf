// Package validate holds the checkout input rules. Every function is a pure
// string/number predicate executed before any gateway or storage call, since
// the checkout endpoint is public and unauthenticated.
package validate

import (
	"regexp"
	"strings"
)

// MaxAmount caps a single order's value in whole currency units, checked
// before the subunit conversion for the gateway.
const MaxAmount = 10_000_000

// Field-specific maximum lengths applied during sanitization.
const (
	MaxNameLen     = 100
	MaxEmailLen    = 255
	MaxPhoneLen    = 20
	MaxAddressLen  = 500
	MaxCityLen     = 100
	MaxStateLen    = 100
	MaxPincodeLen  = 10
	MaxGiftNoteLen = 500
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[\d\s+\-()]+$`)
	pincodeRe = regexp.MustCompile(`^[A-Za-z0-9\s\-]+$`)
)

// SanitizeText strips control characters, trims surrounding whitespace and
// truncates to max runes. It never fails; unusable input comes back empty.
func SanitizeText(s string, max int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > max {
		out = string(runes[:max])
	}
	return out
}

func ValidEmail(s string) bool {
	return emailRe.MatchString(s) && len(s) <= MaxEmailLen
}

func ValidPhone(s string) bool {
	return phoneRe.MatchString(s) && len(s) <= MaxPhoneLen
}

func ValidPincode(s string) bool {
	return pincodeRe.MatchString(s) && len(s) <= MaxPincodeLen
}

func ValidAmount(v int64) bool {
	return v > 0 && v <= MaxAmount
}

func ValidCurrency(s string) bool {
	switch s {
	case "INR", "USD", "EUR":
		return true
	}
	return false
}
