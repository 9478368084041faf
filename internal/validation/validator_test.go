// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package validation

import (
	"strings"
	"testing"
)

type recordEventFixture struct {
	MediaID   int    `validate:"required,gt=0"`
	MediaType string `validate:"required,oneof=tv movie"`
	Rating    int    `validate:"omitempty,min=1,max=10"`
}

func TestValidateStructPasses(t *testing.T) {
	req := recordEventFixture{MediaID: 42, MediaType: "tv"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("Expected valid struct, got: %v", verr)
	}
}

func TestValidateStructSingleError(t *testing.T) {
	req := recordEventFixture{MediaID: 42, MediaType: "podcast"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("Expected validation error for bad media type")
	}
	if len(verr.Errors()) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR code, got %s", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "must be one of") {
		t.Errorf("Unexpected message: %s", apiErr.Message)
	}
	if apiErr.Details["field"] != "MediaType" {
		t.Errorf("Expected field MediaType in details, got %v", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	req := recordEventFixture{MediaID: 0, MediaType: "", Rating: 99}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("Expected validation errors")
	}
	if len(verr.Errors()) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(verr.Errors()), verr)
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Expected fields slice in details, got %T", apiErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("Expected 3 field entries, got %d", len(fields))
	}
}

func TestTranslatedMessages(t *testing.T) {
	req := recordEventFixture{MediaID: 1, MediaType: "movie", Rating: 11}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("Expected validation error for rating above max")
	}
	if got := verr.Errors()[0].Error(); got != "Rating must be at most 10" {
		t.Errorf("Unexpected translated message: %q", got)
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("Expected the same validator instance on repeated calls")
	}
}
