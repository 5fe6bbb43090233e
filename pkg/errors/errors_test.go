package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorIs(t *testing.T) {
	err := NewValidationError("quantity", -3, "must not be negative")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	want := "validation failed for field quantity: must not be negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestPipelineErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapPipeline("products", "load", cause)
	if !errors.Is(err, cause) {
		t.Error("PipelineError should unwrap to its cause")
	}

	var perr *PipelineError
	if !errors.As(err, &perr) {
		t.Fatal("errors.As failed for PipelineError")
	}
	if perr.Entity != "products" || perr.Stage != "load" {
		t.Errorf("unexpected fields: %+v", perr)
	}
}

func TestWrapHelpersPassNil(t *testing.T) {
	if WrapIO("read", "x.csv", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if WrapParse("csv", "x.csv", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}
	if WrapPipeline("sales", "extract", nil) != nil {
		t.Error("WrapPipeline(nil) should be nil")
	}
}

func TestParseErrorFormat(t *testing.T) {
	err := &ParseError{Format: "csv", File: "cust_info.csv", Line: 12, Message: "wrong field count"}
	want := "parse error in csv file cust_info.csv line 12: wrong field count"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSchemaMismatchWrapped(t *testing.T) {
	err := fmt.Errorf("reading header: %w", ErrSchemaMismatch)
	if !IsSchemaMismatch(err) {
		t.Error("wrapped ErrSchemaMismatch should be detected")
	}
}
