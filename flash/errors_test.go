package flash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeError(t *testing.T) {
	err := &RangeError{Op: "write", Offset: 0x1C0, Length: 128, Size: 0x200}

	msg := err.Error()
	assert.Contains(t, msg, "write")
	assert.Contains(t, msg, "out of range")
	assert.Contains(t, msg, "448")
	assert.Contains(t, msg, "512")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrIO)
}

func TestAlignmentError(t *testing.T) {
	err := &AlignmentError{Op: "erase", Offset: 32, Length: 70, BlockSize: 64}

	msg := err.Error()
	assert.Contains(t, msg, "erase")
	assert.Contains(t, msg, "not aligned")
	assert.Contains(t, msg, "64-byte rows")

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeviceError(t *testing.T) {
	cause := errors.New("row latch fault")
	err := &DeviceError{Op: "write", Addr: 0x10001000, Err: cause}

	msg := err.Error()
	assert.Contains(t, msg, "write")
	assert.Contains(t, msg, "0x10001000")
	assert.Contains(t, msg, "row latch fault")

	// Unwraps to both the IO kind and the underlying device error.
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
}

func TestVerifyError(t *testing.T) {
	err := &VerifyError{Addr: 0x1040, Expected: 0xBEEF, Actual: 0xDEAD}

	msg := err.Error()
	assert.Contains(t, msg, "0x00001040")
	assert.Contains(t, msg, "0xBEEF")
	assert.Contains(t, msg, "0xDEAD")

	assert.ErrorIs(t, err, ErrIO)
}

func TestErrorTypes(t *testing.T) {
	var _ error = &RangeError{}
	var _ error = &AlignmentError{}
	var _ error = &DeviceError{}
	var _ error = &VerifyError{}
}
