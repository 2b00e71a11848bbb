// errors_test.go - Tests for the error taxonomy helpers
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	stderrors "errors"
	"testing"

	"github.com/agilira/go-errors"
)

func TestGetErrorCode(t *testing.T) {
	err := errors.New(ErrCodeRequiredField, "field missing")
	if code := GetErrorCode(err); code != ErrCodeRequiredField {
		t.Errorf("GetErrorCode = %q, expected %q", code, ErrCodeRequiredField)
	}

	if code := GetErrorCode(nil); code != "" {
		t.Errorf("GetErrorCode(nil) = %q, expected empty", code)
	}

	plain := stderrors.New("plain failure")
	if code := GetErrorCode(plain); code != "plain failure" {
		t.Errorf("GetErrorCode for uncoded error = %q", code)
	}
}

func TestIsYaclaError(t *testing.T) {
	if !IsYaclaError(errors.New(ErrCodeStructure, "boom")) {
		t.Error("coded error not recognized")
	}
	if IsYaclaError(stderrors.New("random")) {
		t.Error("plain error misclassified")
	}
	if IsYaclaError(nil) {
		t.Error("nil misclassified")
	}
}

func TestIsStructureError(t *testing.T) {
	if !IsStructureError(errors.New(ErrCodeStructure, "bad root")) {
		t.Error("structure code not recognized")
	}
	if !IsStructureError(errors.New(ErrCodeResourceNotFound, "no default")) {
		t.Error("missing-resource code should count as structural")
	}
	if IsStructureError(errors.New(ErrCodeRangeViolation, "oops")) {
		t.Error("range violation misclassified as structural")
	}
}
