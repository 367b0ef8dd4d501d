package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// IsTranslatable reports whether a field value is human-readable text worth
// extracting. Empty or whitespace-only values, numeric literals, and the
// boolean/null tokens are not.
func IsTranslatable(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch s {
	case "true", "false", "null":
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}

// Hash computes a SHA-256 hex hash of a string, used to compare codelist
// content across extensions.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
