package auth

import (
	"errors"
	"testing"
)

func TestIsValidationError(t *testing.T) {

	for _, err := range []error{
		ErrAuth, ErrEmailTaken, ErrUsernameTaken, ErrEmptyUsername, ErrUsernameTooLong,
		ErrInvalidEmail, ErrEmptyPassword, ErrPasswordMismatch, ErrPasswordTooShort,
	} {
		if !IsValidationError(err) {
			t.Errorf("%v must count as a validation error", err)
		}
	}

	if IsValidationError(errors.New("no such table: usr")) {
		t.Error("a storage fault is not a validation error")
	}
	if IsValidationError(nil) {
		t.Error("nil is not a validation error")
	}
}

func TestCleanEmail(t *testing.T) {
	if got := CleanEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("got %q", got)
	}
}
