package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine readable error identifier.
type Code string

const (
	CodeUnbalancedEntry         Code = "UNBALANCED_ENTRY"
	CodeAlreadyPosted           Code = "ALREADY_POSTED"
	CodeAlreadyVoided           Code = "ALREADY_VOIDED"
	CodeImmutablePostedEntry    Code = "IMMUTABLE_POSTED_ENTRY"
	CodeEntityNotFound          Code = "ENTITY_NOT_FOUND"
	CodeGLAccountNotFound       Code = "GL_ACCOUNT_NOT_FOUND"
	CodeGLAccountInactive       Code = "GL_ACCOUNT_INACTIVE"
	CodeDuplicateAccountCode    Code = "DUPLICATE_ACCOUNT_CODE"
	CodeMissingFXRate           Code = "MISSING_FX_RATE"
	CodeSplitAmountMismatch     Code = "SPLIT_AMOUNT_MISMATCH"
	CodeCrossEntityReference    Code = "CROSS_ENTITY_REFERENCE"
	CodeFiscalPeriodClosed      Code = "FISCAL_PERIOD_CLOSED"
	CodeSeparationOfDuties      Code = "SEPARATION_OF_DUTIES"
	CodeBankAccountNotMapped    Code = "BANK_ACCOUNT_NOT_MAPPED"
	CodeNotFound                Code = "NOT_FOUND"
	CodeValidation              Code = "VALIDATION_ERROR"
	CodeInvalidStatusTransition Code = "INVALID_STATUS_TRANSITION"
	CodeSerializationFailure    Code = "SERIALIZATION_FAILURE"
	CodeInternal                Code = "INTERNAL_ERROR"
)

// AppError is the single error type that crosses the service boundary.
type AppError struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError carrying the same code, so callers can use the
// package sentinels with errors.Is regardless of message or details.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Retryable reports whether the whole transaction may be retried by the caller.
func (e *AppError) Retryable() bool {
	return e.Code == CodeSerializationFailure
}

// WithDetail returns a copy of the error with an extra detail attached.
func (e *AppError) WithDetail(key string, value any) *AppError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

var statusByCode = map[Code]int{
	CodeUnbalancedEntry:         http.StatusUnprocessableEntity,
	CodeAlreadyPosted:           http.StatusConflict,
	CodeAlreadyVoided:           http.StatusConflict,
	CodeImmutablePostedEntry:    http.StatusConflict,
	CodeEntityNotFound:          http.StatusNotFound,
	CodeGLAccountNotFound:       http.StatusNotFound,
	CodeGLAccountInactive:       http.StatusConflict,
	CodeDuplicateAccountCode:    http.StatusConflict,
	CodeMissingFXRate:           http.StatusUnprocessableEntity,
	CodeSplitAmountMismatch:     http.StatusBadRequest,
	CodeCrossEntityReference:    http.StatusForbidden,
	CodeFiscalPeriodClosed:      http.StatusConflict,
	CodeSeparationOfDuties:      http.StatusForbidden,
	CodeBankAccountNotMapped:    http.StatusUnprocessableEntity,
	CodeNotFound:                http.StatusNotFound,
	CodeValidation:              http.StatusBadRequest,
	CodeInvalidStatusTransition: http.StatusConflict,
	CodeSerializationFailure:    http.StatusConflict,
	CodeInternal:                http.StatusInternalServerError,
}

// StatusFor returns the HTTP-equivalent severity of a code.
func StatusFor(code Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New builds an AppError with the status derived from its code.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: StatusFor(code)}
}

// Newf is New with fmt formatting.
func Newf(code Code, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds an AppError that keeps err as its cause.
func Wrap(code Code, message string, err error) *AppError {
	e := New(code, message)
	e.Err = err
	return e
}

// NewAppError keeps the status-first constructor used by the repositories.
func NewAppError(status int, message string, err error) *AppError {
	code := CodeInternal
	switch status {
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusBadRequest:
		code = CodeValidation
	}
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return New(CodeValidation, message)
}

// NewNotFoundError reports a tenant-scoped lookup miss.
func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message)
}

// Sentinels for errors.Is matching.
var (
	ErrUnbalancedEntry         = New(CodeUnbalancedEntry, "journal entry is not balanced")
	ErrAlreadyPosted           = New(CodeAlreadyPosted, "source document already has an active journal entry")
	ErrAlreadyVoided           = New(CodeAlreadyVoided, "journal entry already has a reversal")
	ErrImmutablePostedEntry    = New(CodeImmutablePostedEntry, "posted journal entries are immutable")
	ErrEntityNotFound          = New(CodeEntityNotFound, "entity not found")
	ErrGLAccountNotFound       = New(CodeGLAccountNotFound, "GL account not found")
	ErrGLAccountInactive       = New(CodeGLAccountInactive, "GL account cannot be deactivated")
	ErrDuplicateAccountCode    = New(CodeDuplicateAccountCode, "account code already exists")
	ErrMissingFXRate           = New(CodeMissingFXRate, "no exchange rate available")
	ErrSplitAmountMismatch     = New(CodeSplitAmountMismatch, "split amounts do not match transaction amount")
	ErrCrossEntityReference    = New(CodeCrossEntityReference, "account belongs to another entity")
	ErrFiscalPeriodClosed      = New(CodeFiscalPeriodClosed, "fiscal period is closed")
	ErrSeparationOfDuties      = New(CodeSeparationOfDuties, "approver must differ from creator")
	ErrBankAccountNotMapped    = New(CodeBankAccountNotMapped, "bank account has no GL account mapping")
	ErrNotFound                = New(CodeNotFound, "resource not found")
	ErrValidation              = New(CodeValidation, "validation error")
	ErrInvalidStatusTransition = New(CodeInvalidStatusTransition, "invalid status transition")
	ErrSerializationFailure    = New(CodeSerializationFailure, "concurrent update conflict, retry the transaction")
	ErrInternal                = New(CodeInternal, "internal error")
)

// As extracts the *AppError from err. Non-AppErrors are reported as internal
// so raw driver errors never leak past the service boundary.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeInternal, "internal error", err)
}
