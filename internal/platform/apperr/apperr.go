// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

/*
Package apperr defines the centralized error handling framework for Lodex.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: NOT_FOUND, PARSE_ERROR, OUT_OF_RANGE, and DATA_INTEGRITY cover the
    query engine's failure modes; the rest are generic transport-level codes.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Lodex API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level details.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "PARSE_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field errors for VALIDATION_ERROR and PARSE_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level failure.
type FieldError struct {
	// Field is the JSON field name or query segment that failed.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Entity") // Returns "Entity not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// ParseError creates a 400 [AppError] for a malformed query segment.
//
// The offending segment is always identified in the details so that clients
// can point at the exact part of the query that failed; a malformed segment
// is never silently dropped.
func ParseError(segment, reason string) *AppError {
	return &AppError{
		Code:       "PARSE_ERROR",
		Message:    fmt.Sprintf("Cannot parse query segment %q", segment),
		HTTPStatus: http.StatusBadRequest,
		Details: []FieldError{
			{Field: segment, Message: reason},
		},
	}
}

// OutOfRange creates a 422 [AppError] for a value outside its supported range.
//
// Used by the metric calculator when a level has no coefficient. The engine
// never extrapolates; the caller decides how to recover.
func OutOfRange(msg string) *AppError {
	return &AppError{
		Code:       "OUT_OF_RANGE",
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// DataIntegrity creates a 500 [AppError] for reference-data authoring errors
// detected at snapshot build time (duplicate operator surfaces, coefficient
// gaps, missing default language).
//
// A DataIntegrity failure aborts the build attempt; it is never produced on
// the per-query path.
func DataIntegrity(msg string, cause error) *AppError {
	return &AppError{
		Code:       "DATA_INTEGRITY",
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError], e.g. before the first
// snapshot has been published.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an [*AppError] with the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
