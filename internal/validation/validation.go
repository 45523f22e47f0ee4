// Package validation checks inbound goal requests field by field and
// reports every failure at once.
package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Collector accumulates validation errors in the order they were found.
type Collector struct {
	errors []ValidationError
}

// Add records err. Nil is ignored so checks can be passed straight in.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// Text applies the checks shared by every free-text field: a rune limit,
// no NUL bytes and valid UTF-8.
func (c *Collector) Text(field, value string, maxRunes int) {
	c.Add(ValidateMaxLength(field, value, maxRunes))
	c.Add(ValidateNoNullBytes(field, value))
	c.Add(ValidateUTF8(field, value))
}

func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the collected errors, or nil when there are none.
func (c *Collector) Errors() []ValidationError {
	if !c.HasErrors() {
		return nil
	}
	return c.errors
}

func ValidateUTF8(field, value string) *ValidationError {
	if utf8.ValidString(value) {
		return nil
	}
	return fieldError(field, "must be valid UTF-8")
}

func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.IndexByte(value, 0) < 0 {
		return nil
	}
	return fieldError(field, "must not contain null bytes")
}

// ValidateMaxLength counts runes, not bytes.
func ValidateMaxLength(field, value string, maxRunes int) *ValidationError {
	if utf8.RuneCountInString(value) <= maxRunes {
		return nil
	}
	return fieldError(field, "exceeds maximum length of %d characters", maxRunes)
}

func ValidateNonNegative(field string, value float64) *ValidationError {
	if value >= 0 {
		return nil
	}
	return fieldError(field, "must not be negative")
}

// ValidateULID accepts goal ids in either case.
func ValidateULID(field, value string) *ValidationError {
	if len(value) != ulid.EncodedSize {
		return fieldError(field, "must be a valid ULID (%d characters)", ulid.EncodedSize)
	}
	if _, err := ulid.ParseStrict(strings.ToUpper(value)); err != nil {
		return fieldError(field, "must be a valid ULID (%v)", err)
	}
	return nil
}

// ValidateRequired treats whitespace-only values as missing.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return fieldError(field, "is required")
}

// ValidateEnum is case sensitive.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fieldError(field, "must be one of: %s", strings.Join(allowed, ", "))
}

// ValidateRange checks that value lies in [lo, hi].
func ValidateRange(field string, value, lo, hi float64) *ValidationError {
	if value >= lo && value <= hi {
		return nil
	}
	return fieldError(field, "must be between %.1f and %.1f", lo, hi)
}
