package errs

import (
	"testing"

	"github.com/pkg/errors"
)

func TestCodeErrorIs(t *testing.T) {
	err := ErrNotFound.WrapMsg("event 42")
	if !ErrNotFound.Is(err) {
		t.Fatal("wrapped error lost its code")
	}
	if ErrNoPermission.Is(err) {
		t.Fatal("matched the wrong code")
	}

	deep := errors.Wrap(err, "outer layer")
	if !ErrNotFound.Is(deep) {
		t.Fatal("code not found through extra wrapping")
	}
}

func TestWithDetailAccumulates(t *testing.T) {
	e := ErrArgs.WithDetail("first").WithDetail("second")
	if e.Detail != "first, second" {
		t.Errorf("Detail = %q", e.Detail)
	}
	// the shared sentinel must stay untouched
	if ErrArgs.Detail != "" {
		t.Errorf("sentinel mutated: %q", ErrArgs.Detail)
	}
}

func TestCodeExtraction(t *testing.T) {
	if got := Code(ErrOTPInvalid.WrapMsg("phone x")); got != ErrOTPInvalid.Code {
		t.Errorf("Code = %d, want %d", got, ErrOTPInvalid.Code)
	}
	if got := Code(errors.New("plain")); got != ErrInternal.Code {
		t.Errorf("Code for plain error = %d, want internal", got)
	}
}
