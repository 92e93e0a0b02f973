package errors

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/starrupture/srfactory/pkg/jsonpath"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformed, "test message: %s", "value")

	if err.Code != ErrCodeMalformed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformed)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "MALFORMED_SHAPE: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestAt(t *testing.T) {
	path := jsonpath.Root("sites").Descend("s1").Descend("factories")
	err := At(ErrCodeDanglingReference, path, "missing %q", "m9")

	if err.Path != path {
		t.Error("At should keep the path")
	}
	if got := PathString(err); got != "sites▹s1▹factories" {
		t.Errorf("PathString() = %q", got)
	}
	if got := PathSegments(err); !slices.Equal(got, []string{"sites", "s1", "factories"}) {
		t.Errorf("PathSegments() = %v", got)
	}
}

func TestPathThroughWrapping(t *testing.T) {
	inner := At(ErrCodeTypeMismatch, jsonpath.Root("a").Descend("b"), "inner")
	outer := fmt.Errorf("load: %w", Wrap(ErrCodeInternal, inner, "outer"))

	if got := PathString(outer); got != "a▹b" {
		t.Errorf("PathString() = %q, want %q", got, "a▹b")
	}
	if got := PathString(errors.New("plain")); got != "" {
		t.Errorf("PathString(plain) = %q, want empty", got)
	}
	if got := PathSegments(nil); got == nil || len(got) != 0 {
		t.Errorf("PathSegments(nil) = %#v, want empty slice", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "failed to open")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDuplicateKey, "test"),
			code:     ErrCodeDuplicateKey,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDuplicateKey, "test"),
			code:     ErrCodeTypeMismatch,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("context: %w", New(ErrCodeSelfReference, "inner")),
			code:     ErrCodeSelfReference,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeMalformed,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeMalformed,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnknownItem, "test"),
			expected: ErrCodeUnknownItem,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMalformed, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open x.json"),
			expected: "open x.json: no such file",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
