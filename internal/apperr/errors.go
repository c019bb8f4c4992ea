// Package apperr defines the error taxonomy shared by the query parser, the
// data access layer and the entity services, along with the mapping from each
// error kind to an HTTP status code.
package apperr

import (
	"errors"
	"net/http"
)

// NotFoundError indicates a missing row, field, bucket or folder.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a duplicate name.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthorizationError indicates an ownership or role failure.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// AuthenticationError indicates bad credentials or an invalid/expired token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// ConfigError indicates an invalid dynamic column name or storage bucket/folder.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// ParseError indicates malformed request parameters.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Status maps an error to an HTTP status code. Unrecognized errors map to 500.
func Status(err error) int {
	var (
		notFound *NotFoundError
		conflict *ConflictError
		authz    *AuthorizationError
		authn    *AuthenticationError
		config   *ConfigError
		parse    *ParseError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &authz):
		return http.StatusForbidden
	case errors.As(err, &authn):
		return http.StatusBadRequest
	case errors.As(err, &config):
		return http.StatusBadRequest
	case errors.As(err, &parse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
