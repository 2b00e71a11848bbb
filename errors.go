// errors.go: Error taxonomy for Yacla configuration loading
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

// Error codes for Yacla operations
const (
	ErrCodeStructure         = "YACLA_STRUCTURE_ERROR"
	ErrCodeResourceNotFound  = "YACLA_RESOURCE_NOT_FOUND"
	ErrCodeRequiredField     = "YACLA_REQUIRED_FIELD"
	ErrCodeRangeViolation    = "YACLA_RANGE_VIOLATION"
	ErrCodeValidationFailed  = "YACLA_VALIDATION_FAILED"
	ErrCodeInvalidConfig     = "YACLA_INVALID_CONFIG"
	ErrCodeUnsupportedFormat = "YACLA_UNSUPPORTED_FORMAT"
	ErrCodeIOError           = "YACLA_IO_ERROR"
	ErrCodeStoreError        = "YACLA_STORE_ERROR"
)

// GetErrorCode extracts the error code from a Yacla error.
// Returns the raw error text when no code is present.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()

	// go-errors format: [CODE]: Message
	if len(errStr) > 3 && errStr[0] == '[' {
		for idx := 1; idx < len(errStr); idx++ {
			if errStr[idx] == ']' {
				return errStr[1:idx]
			}
		}
	}

	return errStr
}

// IsYaclaError checks if an error originated from this package.
func IsYaclaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return len(errStr) > 8 && errStr[0] == '[' && errStr[1:7] == "YACLA_"
}

// IsStructureError reports whether err is a fatal document-structure error
// (missing resource, unparseable document, root not a mapping).
func IsStructureError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrCodeStructure || code == ErrCodeResourceNotFound
}
