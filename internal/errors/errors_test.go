package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrap_PreservesCode(t *testing.T) {
	inner := ValidationError("sample is empty")
	wrapped := Wrap(inner, "shapiro failed")

	if GetCode(wrapped) != CodeValidationError {
		t.Errorf("code = %s, want %s", GetCode(wrapped), CodeValidationError)
	}
	if !stderrors.Is(wrapped, inner) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestWrap_PlainError(t *testing.T) {
	wrapped := Wrap(stderrors.New("disk full"), "failed to save")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("code = %s, want %s", GetCode(wrapped), CodeInternalError)
	}
	if wrapped.Error() != "failed to save: disk full" {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestGetCode_Unknown(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "UNKNOWN" {
		t.Errorf("code = %s, want UNKNOWN", got)
	}
}

func TestUnknownTest(t *testing.T) {
	err := UnknownTest("kolmogorov")
	if GetCode(err) != CodeUnknownTest {
		t.Errorf("code = %s, want %s", GetCode(err), CodeUnknownTest)
	}
	if err.Error() != "unknown test: kolmogorov" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
