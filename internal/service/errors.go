package service

import "errors"

// Kind classifies a domain failure so handlers can map it to an HTTP status
// and a stable error code without string matching.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindInsufficientStock    Kind = "insufficient_stock"
	KindOverpaymentRejected  Kind = "overpayment_rejected"
	KindNotFound             Kind = "not_found"
	KindPermissionDenied     Kind = "permission_denied"
	KindStateConflict        Kind = "state_conflict"
)

// DomainError is a business-rule failure surfaced to the caller with a
// human-readable message. It is never silently swallowed.
type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func ErrInvalidInput(msg string) error {
	return &DomainError{Kind: KindInvalidInput, Message: msg}
}

func ErrInsufficientStock(msg string) error {
	return &DomainError{Kind: KindInsufficientStock, Message: msg}
}

func ErrOverpayment(msg string) error {
	return &DomainError{Kind: KindOverpaymentRejected, Message: msg}
}

func ErrNotFound(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func ErrPermissionDenied(msg string) error {
	return &DomainError{Kind: KindPermissionDenied, Message: msg}
}

func ErrStateConflict(msg string) error {
	return &DomainError{Kind: KindStateConflict, Message: msg}
}

// KindOf returns the failure kind of err, or "" for non-domain errors.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
