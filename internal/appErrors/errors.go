package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class to API clients.
type ErrorCode string

// AppError is the application error carried from services to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match AppErrors by code, so a WithDetails copy
// still compares equal to its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap keeps the underlying error for logs while exposing code+message.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

// MarshalJSON hides Err and HTTPCode from API responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrEmailNotVerified   = New(CodeEmailNotVerified, "Email is not verified", http.StatusUnauthorized)
	ErrAccountDisabled    = New(CodeAccountDisabled, "Account is disabled", http.StatusForbidden)

	// Users and auth workflow
	ErrUserNotFound         = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists   = New(CodeEmailAlreadyExists, "Email already registered", http.StatusBadRequest)
	ErrAlreadyVerified      = New(CodeAlreadyVerified, "Email is already verified", http.StatusBadRequest)
	ErrTooManyAttempts      = New(CodeTooManyAttempts, "Too many failed attempts, request a new code", http.StatusTooManyRequests)
	ErrOTPRateLimited       = New(CodeOTPRateLimited, "Please wait before requesting another code", http.StatusTooManyRequests)
	ErrInvalidOrExpiredOTP  = New(CodeInvalidOrExpiredOTP, "Invalid or expired verification code", http.StatusBadRequest)
	ErrEmailDeliveryFailed  = New(CodeEmailDeliveryFailed, "Failed to send verification email", http.StatusInternalServerError)
	ErrExternalAuthAccount  = New(CodeExternalAuthMismatch, "Not applicable for Google-authenticated accounts", http.StatusBadRequest)
	ErrInvalidExternalToken = New(CodeInvalidExternalToken, "Google token verification failed", http.StatusUnauthorized)
	ErrWeakPassword         = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)

	// Marketplace
	ErrItemNotFound            = New(CodeItemNotFound, "Item not found", http.StatusNotFound)
	ErrTransactionNotFound     = New(CodeTransactionNotFound, "Transaction not found", http.StatusNotFound)
	ErrSelfTransaction         = New(CodeSelfTransaction, "You cannot buy your own item", http.StatusBadRequest)
	ErrItemUnavailable         = New(CodeItemUnavailable, "Item is not available for purchase", http.StatusBadRequest)
	ErrInvalidTransactionState = New(CodeInvalidState, "Action is not legal for the current transaction state", http.StatusBadRequest)
	ErrInsufficientCoins       = New(CodeInsufficientCoins, "Not enough coins", http.StatusBadRequest)
	ErrCouponAlreadyUsed       = New(CodeCouponAlreadyUsed, "Coupon has already been used", http.StatusConflict)
	ErrCouponExpired           = New(CodeCouponExpired, "Coupon has expired", http.StatusBadRequest)
	ErrNotificationNotFound    = New(CodeNotFound, "Notification not found", http.StatusNotFound)
	ErrCouponNotFound          = New(CodeNotFound, "Coupon not found", http.StatusNotFound)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// System
	ErrRateLimited = New(CodeRateLimited, "Too many requests", http.StatusTooManyRequests)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
