package domain

import "errors"

var (
	// ErrAuthRejected is returned by the backend gateway after it handled a 401
	// globally (credential cleared, login navigation issued).
	ErrAuthRejected = errors.New("authentication rejected")
	// ErrSessionSuperseded means a logout or another login happened while an
	// identity refresh was in flight; the stale result was discarded.
	ErrSessionSuperseded = errors.New("session changed during identity refresh")
	ErrEmptyCredential   = errors.New("empty credential")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserSuspended      = errors.New("user is suspended")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfModification   = errors.New("cannot modify your own account")

	ErrBankNotFound    = errors.New("bank not found")
	ErrBankExists      = errors.New("bank already exists")
	ErrInvalidLogo     = errors.New("invalid logo file")
	ErrAlertNotFound   = errors.New("alert not found")
	ErrRecipientAbsent = errors.New("recipient is not an active user")
)
