package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/vasudevanv/porespy/pkg/packing"
	"github.com/vasudevanv/porespy/pkg/pipeline"
)

func TestErrorFormatting(t *testing.T) {
	e := New(ErrCodeInvalidRadius, "radius %d is not positive", -3)
	if got, want := e.Error(), "INVALID_RADIUS: radius -3 is not positive"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := stderrors.New("boom")
	w := Wrap(ErrCodeInternal, cause, "packing failed")
	if !stderrors.Is(w, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if got, want := w.Error(), "INTERNAL_ERROR: packing failed: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsAndGetCode(t *testing.T) {
	e := New(ErrCodeShapeMismatch, "image 20x20, sites 20x19")
	wrapped := fmt.Errorf("running pipeline: %w", e)

	if !Is(wrapped, ErrCodeShapeMismatch) {
		t.Error("Is should find the code through wrapping")
	}
	if Is(wrapped, ErrCodeInternal) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeShapeMismatch {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	e := New(ErrCodeInvalidFormat, "unknown format %q", "vtk")
	if got := UserMessage(e); got != `unknown format "vtk"` {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestClassifyPackingSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{fmt.Errorf("%w: got 0", packing.ErrRadius), ErrCodeInvalidRadius},
		{packing.ErrClearance, ErrCodeInvalidClearance},
		{packing.ErrShapeMismatch, ErrCodeShapeMismatch},
		{packing.ErrDims, ErrCodeInvalidShape},
		{fmt.Errorf("%w: %q", pipeline.ErrFormat, "vtk"), ErrCodeInvalidFormat},
		{pipeline.ErrInput, ErrCodeInvalidInput},
		{context.Canceled, ErrCodeCancelled},
		{stderrors.New("mystery"), ErrCodeInternal},
	}
	for _, c := range cases {
		got := Classify(c.err)
		if got.Code != c.want {
			t.Errorf("Classify(%v) = %q, want %q", c.err, got.Code, c.want)
		}
		if !stderrors.Is(got, c.err) {
			t.Errorf("Classify(%v) lost the cause chain", c.err)
		}
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassifyKeepsExistingCode(t *testing.T) {
	e := New(ErrCodeInvalidFormat, "nope")
	if got := Classify(fmt.Errorf("outer: %w", e)); got.Code != ErrCodeInvalidFormat {
		t.Errorf("Classify rewrapped structured error as %q", got.Code)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidRadius, http.StatusBadRequest},
		{ErrCodeShapeMismatch, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeCancelled, 499},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.code); got != c.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", c.code, got, c.want)
		}
	}
}
