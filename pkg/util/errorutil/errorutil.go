package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Rejection codes for the verification pipeline.
const (
	CodeMissingCaptcha        = "MISSING_CAPTCHA"
	CodeMissingCredentials    = "MISSING_CREDENTIALS"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"
	CodeSubjectMismatch       = "SUBJECT_MISMATCH"
	CodeCaptchaFailed         = "CAPTCHA_FAILED"
	CodeSubjectNotFound       = "SUBJECT_NOT_FOUND"
	CodeRoleGrantFailed       = "ROLE_GRANT_FAILED"
	CodeInternal              = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
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
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// Rejections surfaced verbatim to the submitter with status 400. The
// texts are part of the public contract of POST /verify.

func NewMissingCaptcha() error {
	return NewDomainError(CodeMissingCaptcha, "Captcha missing.", http.StatusBadRequest)
}

func NewMissingCredentials() error {
	return NewDomainError(CodeMissingCredentials, "Missing user_id or token.", http.StatusBadRequest)
}

func NewInvalidOrExpiredToken() error {
	return NewDomainError(CodeInvalidOrExpiredToken, "Invalid or expired token.", http.StatusBadRequest)
}

func NewSubjectMismatch() error {
	return NewDomainError(CodeSubjectMismatch, "Token does not match user.", http.StatusBadRequest)
}

func NewCaptchaFailed(err error) error {
	return &DomainError{
		Code:       CodeCaptchaFailed,
		Message:    "Captcha verification failed.",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewSubjectNotFound() error {
	return NewDomainError(CodeSubjectNotFound, "User not found on the server.", http.StatusBadRequest)
}

// NewRoleGrantFailed wraps a platform failure during the role grant.
// The wrapped detail is logged server side, never exposed.
func NewRoleGrantFailed(err error) error {
	return &DomainError{
		Code:       CodeRoleGrantFailed,
		Message:    "Server error while assigning role.",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
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
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err carries the given rejection code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
