// Package common defines shared constants and sentinel errors used across
// uploader components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input validation errors.
	ErrorValidation = errors.New("validation error")
)
