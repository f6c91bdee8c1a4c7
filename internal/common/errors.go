// Package common defines shared constants and sentinel errors used across
// the ticketapp layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrMalformedData = errors.New("malformed stored data")
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// Service-level errors.
	ErrorAlreadyExists = errors.New("already exists")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorValidation    = errors.New("validation error")
)
