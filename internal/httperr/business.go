package httperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindSlotUnavailable   Kind = "slot_unavailable"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindRateLimited       Kind = "rate_limited"
	KindInternal          Kind = "internal"
)

// BusinessError is an expected failure with a stable code and a message safe to show users.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrSlotUnavailable(code string) error {
	return BusinessError{
		Kind:    KindSlotUnavailable,
		Code:    code,
		Message: "This time slot is no longer available. Please pick another slot.",
	}
}

func ErrInvalidTransition(code string) error {
	return BusinessError{
		Kind:    KindInvalidTransition,
		Code:    code,
		Message: "This booking can no longer be changed.",
	}
}

func ErrUnauthorized(code string) error {
	return BusinessError{
		Kind:    KindUnauthorized,
		Code:    code,
		Message: "You are not allowed to access this booking.",
	}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// AsBusiness reports whether err carries a BusinessError.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
