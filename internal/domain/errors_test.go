package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_ErrorString_WithAndWithoutCause(t *testing.T) {
	t.Parallel()

	e := New(KindValidation, "missing_field", "missing required field")
	if e.Error() == "" {
		t.Fatalf("expected non-empty message")
	}

	wrapped := Wrap(KindInternal, "internal_error", "internal error", errors.New("boom"))
	if got := wrapped.Error(); got == "" || wrapped.Unwrap() == nil {
		t.Fatalf("expected cause to be carried, got %q", got)
	}
}

func TestIs_MatchesCode_ThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", ErrEmailTaken())
	if !Is(err, "email_taken") {
		t.Fatalf("expected email_taken to match through wrapping")
	}
	if Is(err, "user_not_found") {
		t.Fatalf("unexpected match for user_not_found")
	}
	if Is(errors.New("plain"), "email_taken") {
		t.Fatalf("plain errors must not match")
	}
}

func TestErrMissingField_CarriesFieldMeta(t *testing.T) {
	t.Parallel()

	e := ErrMissingField("email")
	if e.Meta["field"] != "email" {
		t.Fatalf("expected field meta, got %+v", e.Meta)
	}
}
