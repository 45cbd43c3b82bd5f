// Package common defines shared sentinel errors used across the
// campusevents stores and CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Account store errors.
	ErrorDuplicateAccount  = errors.New("account already exists")
	ErrorInvalidCredential = errors.New("invalid credential")

	// Input errors (missing required field, unknown category).
	ErrorValidation = errors.New("validation error")
)
