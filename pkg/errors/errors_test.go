package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidEdgeShape, "(%d,%d) is not adjacent", 0, 2), "INVALID_EDGE_SHAPE: (0,2) is not adjacent"},
		{"wrapped", Wrap(ErrCodeMalformedEncoding, errors.New("unexpected EOF"), "decode %s", "a.sgb"), "MALFORMED_ENCODING: decode a.sgb: unexpected EOF"},
		{"nil cause", Wrap(ErrCodeNotFound, nil, "session"), "NOT_FOUND: session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeNotFound, fs.ErrNotExist, "open art.json")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), fs.ErrNotExist)
	}
	if New(ErrCodeInternal, "x").Unwrap() != nil {
		t.Error("New() has a cause, want none")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidInput, "bad node")
	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
		wantMsg  string
	}{
		{"direct", inner, ErrCodeInvalidInput, true, ErrCodeInvalidInput, "bad node"},
		{"other code", inner, ErrCodeNotFound, false, ErrCodeInvalidInput, "bad node"},
		{"outermost wins", Wrap(ErrCodeInternal, inner, "toggle"), ErrCodeInvalidInput, false, ErrCodeInternal, "toggle"},
		{"behind fmt wrap", fmt.Errorf("cli: %w", inner), ErrCodeInvalidInput, true, ErrCodeInvalidInput, "bad node"},
		{"plain", errors.New("boom"), ErrCodeInternal, false, "", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
}

func TestIsClientError(t *testing.T) {
	client := []Code{
		ErrCodeInvalidConfiguration, ErrCodeInvalidEdgeShape, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidMode, ErrCodeMalformedEncoding,
	}
	for _, c := range client {
		if !IsClientError(New(c, "x")) {
			t.Errorf("IsClientError(%s) = false, want true", c)
		}
	}
	for _, c := range []Code{ErrCodeNotFound, ErrCodeInternal, ErrCodeUnsupported} {
		if IsClientError(New(c, "x")) {
			t.Errorf("IsClientError(%s) = true, want false", c)
		}
	}
	if IsClientError(errors.New("plain")) {
		t.Error("IsClientError(plain) = true, want false")
	}
}
