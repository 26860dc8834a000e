package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// treeNameRegex matches valid stored-tree names. Names double as file
// basenames in the file store, so the character set is deliberately narrow.
var treeNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateTreeName validates the name a tree is stored under.
// It rejects names that could be used for path traversal when the name
// becomes a filename.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Must start with a letter or digit
//   - Only letters, digits, dots, underscores and hyphens
//   - No path traversal sequences (..)
func ValidateTreeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "tree name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "tree name too long (max 128 characters)")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "tree name cannot contain path traversal sequences (..)")
	}

	if !treeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid tree name: %q", name)
	}

	return nil
}

// ValidateKey validates a treap key arriving from the CLI or API.
//
// Keys end up inside single-line node labels, so anything that would break
// a line is rejected:
//   - No empty keys
//   - No control characters (covers newlines and null bytes)
//   - Maximum length of 256 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	return nil
}

// ValidateValue validates a treap value arriving from the CLI or API.
// Values share the label line with their key, so the same single-line rules
// apply. Empty values are allowed.
func ValidateValue(value string) error {
	if len(value) > 256 {
		return New(ErrCodeInvalidValue, "value too long (max 256 characters)")
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidValue, "value contains invalid control characters")
		}
	}

	return nil
}
