package tabmark_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/tabmark"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := tabmark.Errorf(tabmark.EINVALID, "unknown engine %q", "x")

	assert.Equal(t, tabmark.EINVALID, tabmark.ErrorCode(err))
	assert.Equal(t, "unknown engine \"x\"", tabmark.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tabmark.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tabmark.ErrorMessage(nil))
}

func TestErrorCode_TypedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no active target", &tabmark.NoActiveTargetError{}, tabmark.ENOTARGET},
		{"parse", &tabmark.ParseError{URL: "https://e.com", Err: errors.New("bad")}, tabmark.EPARSE},
		{"conversion", &tabmark.ConversionError{Node: "div"}, tabmark.ECONVERSION},
		{"wrapped parse", fmt.Errorf("convert: %w", &tabmark.ParseError{URL: "u"}), tabmark.EPARSE},
		{"plain", errors.New("boom"), tabmark.EINTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.code, tabmark.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage_TypedErrors(t *testing.T) {
	t.Parallel()

	t.Run("parse error names the URL", func(t *testing.T) {
		t.Parallel()
		err := &tabmark.ParseError{URL: "https://e.com", Err: errors.New("invalid UTF-8")}
		assert.Equal(t, "parse https://e.com: invalid UTF-8", tabmark.ErrorMessage(err))
	})

	t.Run("no active target with reason", func(t *testing.T) {
		t.Parallel()
		err := &tabmark.NoActiveTargetError{Reason: "no http(s) tabs"}
		assert.Equal(t, "no active target: no http(s) tabs", tabmark.ErrorMessage(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", tabmark.ErrorMessage(errors.New("boom")))
	})
}

func TestParseError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &tabmark.ParseError{URL: "u", Err: cause}

	assert.ErrorIs(t, err, cause)
}
