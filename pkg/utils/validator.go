package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,63}$`)

// ValidateUsername checks a normalized (lowercased, trimmed) username.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("invalid username format: %s", username)
	}
	return nil
}

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeFilename strips any directory components and control characters
// from an uploaded filename so it is safe to use inside the upload directory.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = controlChars.ReplaceAllString(base, "")
	if base == "." || base == ".." {
		return ""
	}
	return base
}
