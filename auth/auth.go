package auth

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/icza/gox/stringsx"
)

var (
	ErrAuth             = errors.New("wrong email or password")
	ErrEmailTaken       = errors.New("this email is already registered")
	ErrUsernameTaken    = errors.New("this username is already taken")
	ErrEmptyUsername    = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username must be at most 150 characters")
	ErrInvalidEmail     = errors.New("enter a valid email address")
	ErrEmptyPassword    = errors.New("refusing to set empty password")
	ErrPasswordMismatch = errors.New("the two password fields didn't match")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const maxUsernameRunes = 150
const minPasswordRunes = 8

// IsValidationError reports whether err is an input error which belongs on
// the form, as opposed to a storage fault which must not reach the visitor.
func IsValidationError(err error) bool {
	switch err {
	case ErrAuth, ErrEmailTaken, ErrUsernameTaken, ErrEmptyUsername, ErrUsernameTooLong,
		ErrInvalidEmail, ErrEmptyPassword, ErrPasswordMismatch, ErrPasswordTooShort:
		return true
	}
	return false
}

type AuthDB struct {
	UserDB
}

// CleanName strips whitespace and non-graphic runes from a username.
func CleanName(name string) string {
	return stringsx.Clean(strings.TrimSpace(name))
}

// CleanEmail lowercases an email address. Emails are stored lowercased,
// which makes every lookup case-insensitive.
func CleanEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates a registration and creates the user.
// The password must be entered twice. The duplicate email check here is a
// courtesy pre-check, UserDB.InsertUser must still enforce uniqueness.
func (a *AuthDB) Register(username, email, password1, password2 string) (DBUser, error) {

	username = CleanName(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if utf8.RuneCountInString(username) > maxUsernameRunes {
		return nil, ErrUsernameTooLong
	}

	email = CleanEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if password1 == "" {
		return nil, ErrEmptyPassword
	}
	if password1 != password2 {
		return nil, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password1) < minPasswordRunes {
		return nil, ErrPasswordTooShort
	}

	if exists, err := a.EmailExists(email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailTaken
	}

	return a.InsertUser(username, email, password1)
}

// SetPassword shadows AuthDB.UserDB.SetPassword.
func (a *AuthDB) SetPassword(u User, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return ErrPasswordTooShort
	}
	return a.UserDB.SetPassword(u, password)
}
