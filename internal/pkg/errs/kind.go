package errs

import "errors"

// Kind is the coarse classification reported to clients in error events.
type Kind string

const (
	KindAuthRequired      Kind = "AuthRequired"
	KindValidation        Kind = "ValidationError"
	KindInvalidTransition Kind = "InvalidTransition"
	KindNotFound          Kind = "NotFound"
	KindStoreUnavailable  Kind = "StoreUnavailable"
	KindInternal          Kind = "Internal"
)

// KindOf maps an error chain onto a Kind. Store failures win over the other
// kinds because a wrapped cause may carry an unrelated sentinel.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrAuthRequired):
		return KindAuthRequired
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrAlreadyBound):
		return KindValidation
	default:
		return KindInternal
	}
}
