package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"btcpulse/pkg/errors/ecode"
)

func TestNewUsesDefaultMessage(t *testing.T) {
	err := New(ecode.IndicatorUnknownErr, "")
	assert.Equal(t, ecode.Message(ecode.IndicatorUnknownErr), err.Message)

	err = New(ecode.BadRequestErr, "days must be a number")
	assert.Equal(t, "days must be a number", err.Message)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ecode.HistoryUnavailableErr, "", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDecodeErr(t *testing.T) {
	code, msg := DecodeErr(nil)
	assert.Equal(t, ecode.Success, code)
	assert.Equal(t, "OK", msg)

	code, _ = DecodeErr(New(ecode.SnapshotFailedErr, ""))
	assert.Equal(t, ecode.SnapshotFailedErr, code)

	// 包了一层也能解出来
	wrapped := fmt.Errorf("outer: %w", New(ecode.NotFoundErr, ""))
	code, _ = DecodeErr(wrapped)
	assert.Equal(t, ecode.NotFoundErr, code)

	// 普通error落到内部错误
	code, msg = DecodeErr(stderrors.New("boom"))
	assert.Equal(t, ecode.InternalErr, code)
	assert.Equal(t, "boom", msg)
}
