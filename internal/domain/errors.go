package domain

import "errors"

// Sentinel kinds for business errors. Services wrap these with a
// user-facing message; handlers dispatch on errors.Is to pick a status.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation")
)

type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.kind }

func NotFound(msg string) error  { return &Error{kind: ErrNotFound, Message: msg} }
func Forbidden(msg string) error { return &Error{kind: ErrForbidden, Message: msg} }
func Conflict(msg string) error  { return &Error{kind: ErrConflict, Message: msg} }
func Invalid(msg string) error   { return &Error{kind: ErrValidation, Message: msg} }
