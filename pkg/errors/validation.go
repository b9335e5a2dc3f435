package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateScreenID validates a screen identifier for safety and correctness.
// It rejects ids that could be used for path traversal or injection attacks,
// since screen ids end up in file names, URLs and cache keys.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateScreenID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScreen, "screen id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidScreen, "screen id too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScreen, "screen id contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidScreen, "screen id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// transitionIDRegex matches the ids transitions are allowed to carry:
// generated ids ("t_" prefix) as well as imported legacy ids.
var transitionIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateTransitionID validates a transition identifier.
func ValidateTransitionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTransition, "transition id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTransition, "transition id too long (max 256 characters)")
	}

	if !transitionIDRegex.MatchString(id) {
		return New(ErrCodeInvalidTransition, "invalid transition id: %q", id)
	}

	return nil
}

// ValidateImagePath validates a screen's image path for safety.
// Image paths are URL paths served from the asset root; a single leading
// slash is allowed, traversal sequences are not.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No double slashes (protocol-relative URLs)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "image path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	// "//host/..." would be interpreted as a protocol-relative URL
	if strings.Contains(path, "//") {
		return New(ErrCodeInvalidPath, "image path cannot contain double slashes")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "image path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "image path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateWeight validates a transition weight. Weights below one are
// normalized away at decode time, so anything else reaching validation
// is a caller bug.
func ValidateWeight(weight int) error {
	if weight < 1 {
		return New(ErrCodeInvalidTransition, "transition weight must be >= 1, got %d", weight)
	}
	return nil
}
