package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(StaleFile, "file removed between scan and validation", nil)
	want := "[STALE_FILE] file removed between scan and validation"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := New(StorageFailure, "cannot persist snapshot", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	var ge *GrouperError
	if !errors.As(err, &ge) {
		t.Fatal("expected errors.As to match *GrouperError")
	}
	if ge.Code != StorageFailure {
		t.Errorf("Code = %s, want %s", ge.Code, StorageFailure)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code  ErrorCode
		fatal bool
	}{
		{ParseFailure, false},
		{AmbiguousReference, false},
		{EmptyGroup, false},
		{StaleFile, false},
		{MappingInvariant, true},
		{ConfigInvalid, true},
		{StorageFailure, true},
		{InternalError, true},
	}

	for _, tt := range tests {
		if got := IsFatal(tt.code); got != tt.fatal {
			t.Errorf("IsFatal(%s) = %v, want %v", tt.code, got, tt.fatal)
		}
	}
}

func TestWithDetails(t *testing.T) {
	err := New(AmbiguousReference, "reference matched multiple files", nil).
		WithDetails([]string{"a/util.py", "b/util.py"})
	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
}
