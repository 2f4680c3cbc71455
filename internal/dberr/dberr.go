// Package dberr specifically handles document store driver errors.
//
// It classifies errors returned by the MongoDB driver and the
// repository layer and converts them into user-friendly
// errs.HTTPError values (e.g., converting a duplicate key error
// into a "Bad Request" error).
package dberr

import (
	"errors"
	"fmt"
)

// Code is the category an error from the store falls into.
type Code string

const (
	Other              Code = "other"
	InvalidID          Code = "invalid_id"
	NotFound           Code = "not_found"
	DuplicateKey       Code = "duplicate_key"
	DocumentValidation Code = "document_validation"
	Timeout            Code = "timeout"
	Network            Code = "network"
)

// Server error codes returned by MongoDB that get a dedicated Code.
const (
	duplicateKeyCode       = 11000
	duplicateKeyLegacyCode = 11001
	documentValidationCode = 121
)

// MapCode maps a MongoDB server error code to a Code.
func MapCode(code int) Code {
	switch code {
	case duplicateKeyCode, duplicateKeyLegacyCode:
		return DuplicateKey
	case documentValidationCode:
		return DocumentValidation
	}
	return Other
}

// Error is a classified store error.
//
// Collection and Field are filled in when the driver message carries
// them, e.g. for duplicate key errors.
type Error struct {
	Code         Code
	DatabaseCode int
	Message      string
	Collection   string
	Field        string
	driverErr    error
}

func (e *Error) Error() string {
	if e.DatabaseCode != 0 {
		return fmt.Sprintf("%s (code %d): %s", e.Code, e.DatabaseCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return Other
}
