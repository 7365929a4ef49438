package security

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	tmdbKey     = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
)

// APIKeyValidator provides validation and handling of catalog credentials
type APIKeyValidator struct {
	placeholders []string
}

// NewAPIKeyValidator creates a validator that treats the given values as "not configured"
func NewAPIKeyValidator(placeholders ...string) *APIKeyValidator {
	return &APIKeyValidator{placeholders: placeholders}
}

// SanitizeAPIKey removes whitespace and characters unsafe in a query string
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	return unsafeChars.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// IsPlaceholder reports whether apiKey is empty or one of the known placeholders
func (v *APIKeyValidator) IsPlaceholder(apiKey string) bool {
	if apiKey == "" {
		return true
	}
	for _, p := range v.placeholders {
		if v.SecureCompare(apiKey, p) {
			return true
		}
	}
	return false
}

// IsValidTMDBKey validates the TMDB v3 key format (32 hex characters)
func (v *APIKeyValidator) IsValidTMDBKey(apiKey string) bool {
	return tmdbKey.MatchString(apiKey)
}

// MaskAPIKey creates a masked version for logging (shows only first/last few chars)
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}

	if len(apiKey) <= 8 {
		return "[***]"
	}

	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// SecureCompare performs constant-time comparison of API keys
func (v *APIKeyValidator) SecureCompare(key1, key2 string) bool {
	return subtle.ConstantTimeCompare([]byte(key1), []byte(key2)) == 1
}
