package errors

import (
	"strings"
	"testing"
)

func TestValidateTreeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "mytree", false},
		{"valid with dash", "my-tree", false},
		{"valid with underscore", "my_tree", false},
		{"valid with dot", "tree.v2", false},
		{"valid digits", "run42", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"leading dot", ".hidden", true},
		{"leading dash", "-tree", true},
		{"space", "my tree", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTreeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTreeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "alpha", false},
		{"valid with space", "hello world", false},
		{"valid unicode", "αβγ", false},
		{"valid punctuation", "a,3:w", false},

		{"empty", "", true},
		{"too long", strings.Repeat("k", 300), true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "one", false},
		{"valid empty", "", false},
		{"valid with space", "first value", false},

		{"too long", strings.Repeat("v", 300), true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x02bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateKeyErrorCode(t *testing.T) {
	err := ValidateKey("")
	if !Is(err, ErrCodeInvalidKey) {
		t.Errorf("ValidateKey(\"\") code = %v, want %v", GetCode(err), ErrCodeInvalidKey)
	}
}

func TestValidateTreeNameErrorCode(t *testing.T) {
	err := ValidateTreeName("foo/bar")
	if !Is(err, ErrCodeInvalidName) {
		t.Errorf("ValidateTreeName code = %v, want %v", GetCode(err), ErrCodeInvalidName)
	}
}
