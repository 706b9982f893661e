package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a flow node identifier from untrusted input.
// Node IDs end up in cache keys, file names and DOT output, so the rules
// are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // parent directory
		"/",    // path separator
		"\\",   // backslash (Windows path)
		"\x00", // null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidNode, "node id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateLabel validates a display label from untrusted input. Labels are
// rendered verbatim, so only control characters and absurd lengths are
// rejected; any printable text is allowed.
func ValidateLabel(label string) error {
	const maxLabelLength = 1000
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) && r != '\n' {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}

	return nil
}
