package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeValidation, "output path is required")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Message != "output path is required" {
		t.Errorf("expected message 'output path is required', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeIO, "failed to open log", cause)

	if err.Code != ErrCodeIO {
		t.Errorf("expected code %s, got %s", ErrCodeIO, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("no such file or directory")
	ctx := map[string]any{
		"port": "/dev/ttyUSB0",
		"baud": 9600,
	}

	err := WrapWithContext(ErrCodeConnect, "failed to open serial port", cause, ctx)

	if err.Code != ErrCodeConnect {
		t.Errorf("expected code %s, got %s", ErrCodeConnect, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["port"] != "/dev/ttyUSB0" {
		t.Errorf("expected port to be /dev/ttyUSB0")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeInvalidState, "not connected"),
			expected: "[INVALID_STATE] not connected",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeRender, "render failed", errors.New("gnuplot not found")),
			expected: "[RENDER] render failed: gnuplot not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestIsCode(t *testing.T) {
	inner := Wrap(ErrCodeIO, "append failed", errors.New("disk full"))
	outer := Wrap(ErrCodeInternal, "session aborted", inner)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{name: "nil error", err: nil, code: ErrCodeIO, want: false},
		{name: "plain error", err: errors.New("x"), code: ErrCodeIO, want: false},
		{name: "direct match", err: inner, code: ErrCodeIO, want: true},
		{name: "nested match", err: outer, code: ErrCodeIO, want: true},
		{name: "outer match", err: outer, code: ErrCodeInternal, want: true},
		{name: "fmt wrapped", err: fmt.Errorf("start: %w", inner), code: ErrCodeIO, want: true},
		{name: "no match", err: outer, code: ErrCodeConnect, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
	err := fmt.Errorf("connect: %w", New(ErrCodeConnect, "port busy"))
	if got := CodeOf(err); got != ErrCodeConnect {
		t.Errorf("expected %s, got %s", ErrCodeConnect, got)
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeConnect,
		ErrCodeValidation,
		ErrCodeIO,
		ErrCodeTransientRead,
		ErrCodeRender,
		ErrCodeInvalidState,
		ErrCodeInternal,
		ErrCodeTimeout,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}
