package domain

import (
	"errors"
	"fmt"
)

// ErrKind classifies service and repository failures so callers can react
// without matching on message text.
type ErrKind string

const (
	KindValidation   ErrKind = "validation"
	KindDuplicate    ErrKind = "duplicate"
	KindBusinessRule ErrKind = "business_rule"
	KindNotFound     ErrKind = "not_found"
	KindPersistence  ErrKind = "persistence"
)

// Error is the single error type crossing the service boundary. Repositories
// produce only KindPersistence; services produce the other four kinds and they
// validate before touching storage wherever possible.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func Duplicatef(format string, args ...interface{}) *Error {
	return newError(KindDuplicate, format, args...)
}

func Rulef(format string, args ...interface{}) *Error {
	return newError(KindBusinessRule, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Persistence wraps a storage-level failure so the original cause stays
// reachable through errors.Unwrap without leaking driver errors to callers.
func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Cause: cause}
}

func IsKind(err error, kind ErrKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsDuplicate(err error) bool    { return IsKind(err, KindDuplicate) }
func IsBusinessRule(err error) bool { return IsKind(err, KindBusinessRule) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsPersistence(err error) bool  { return IsKind(err, KindPersistence) }
