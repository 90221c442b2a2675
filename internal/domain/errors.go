package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound  = errors.New("employee: not found")
	ErrInvalidRange      = errors.New("analytics: invalid date range")
	ErrSessionNotFound   = errors.New("session: not found")
	ErrSearchUnavailable = errors.New("search: index not configured")
	ErrInvalidPage       = errors.New("navigation: invalid page")
	ErrRosterNotLoaded   = errors.New("roster: not loaded")
)

// FetchError reports a network or decoding failure while loading the roster.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch roster %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageReadError reports an unreadable or corrupt durable slot.
type StorageReadError struct {
	Slot string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read slot %q: %v", e.Slot, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// AuthError reports a credential mismatch.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ErrInvalidCredentials is returned for any credential mismatch.
var ErrInvalidCredentials = &AuthError{Message: "Invalid credentials. Please check email and password."}
