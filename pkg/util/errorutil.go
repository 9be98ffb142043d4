package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to callers.
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeGatewayFailed          = "GATEWAY_FAILED"
	CodeNotificationFailed     = "NOTIFICATION_FAILED"
	CodeInvitationPersistError = "INVITATION_PERSIST_FAILED"
	CodeInvitationEmailError   = "INVITATION_EMAIL_FAILED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewGatewayError wraps an entity gateway failure with the operation and
// entity it occurred in. The operation is aborted; no partial state is assumed
// changed beyond what the gateway confirmed.
func NewGatewayError(op, entity string, err error) error {
	return &DomainError{
		Code:       CodeGatewayFailed,
		Message:    fmt.Sprintf("%s: %s write failed", op, entity),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": op, "entity": entity},
		Err:        err,
	}
}

// NewNotificationError wraps a notification delivery failure. For assignment
// and status updates it is a secondary, non-fatal warning: the primary write
// already succeeded.
func NewNotificationError(op, recipient string, err error) error {
	return &DomainError{
		Code:       CodeNotificationFailed,
		Message:    fmt.Sprintf("%s: notification to %s failed", op, recipient),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": op, "recipient": recipient},
		Err:        err,
	}
}

// NewInvitationPersistError reports a phase-1 invite failure: nothing was
// stored and no email was sent.
func NewInvitationPersistError(email string, err error) error {
	return &DomainError{
		Code:       CodeInvitationPersistError,
		Message:    "could not save the invitation; no email was sent",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"email": email},
		Err:        err,
	}
}

// NewInvitationEmailError reports a phase-2 invite failure: the invitation
// record exists but the email did not go out. The record is deliberately left
// in place so the operator can see and act on the mismatch.
func NewInvitationEmailError(email string, err error) error {
	return &DomainError{
		Code:       CodeInvitationEmailError,
		Message:    "invitation was created, but the email failed to send",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"email": email, "record_created": true},
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError as an error value.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
