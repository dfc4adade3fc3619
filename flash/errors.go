package flash

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error returned by a Region unwraps to one
// of these two, so callers can classify with errors.Is.
var (
	// ErrInvalidArgument reports an offset, bounds, or alignment
	// violation detected before any hardware call. Nothing has changed;
	// the caller can retry with corrected parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO reports a hardware failure detected mid-operation. For
	// multi-row operations the failure is non-atomic: rows already
	// programmed stay programmed and remaining rows are not attempted.
	ErrIO = errors.New("i/o error")
)

// RangeError indicates a request whose offset or window falls outside
// the region.
type RangeError struct {
	// Op is the operation that was rejected ("read", "write", "erase")
	Op string

	// Offset is the region-relative byte offset of the request
	Offset int64

	// Length is the requested length in bytes
	Length int

	// Size is the usable size of the region
	Size uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s of %d bytes at offset %d is out of range: region size is %d bytes",
		e.Op, e.Length, e.Offset, e.Size)
}

func (e *RangeError) Unwrap() error { return ErrInvalidArgument }

// AlignmentError indicates a write or erase request whose offset or
// length is not a whole number of rows.
type AlignmentError struct {
	// Op is the operation that was rejected ("write", "erase")
	Op string

	// Offset is the region-relative byte offset of the request
	Offset int64

	// Length is the requested length in bytes
	Length int

	// BlockSize is the row size the request must be a multiple of
	BlockSize uint32
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s of %d bytes at offset %d is not aligned to %d-byte rows",
		e.Op, e.Length, e.Offset, e.BlockSize)
}

func (e *AlignmentError) Unwrap() error { return ErrInvalidArgument }

// DeviceError indicates a device failure at an absolute address.
// Rows completed before the failing address stay completed; no
// completion count is reported.
type DeviceError struct {
	// Op is the operation in progress ("read", "write", "erase")
	Op string

	// Addr is the absolute address the device call failed at
	Addr uint32

	// Err is the underlying device error
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s at 0x%08X: %v", e.Op, e.Addr, e.Err)
}

func (e *DeviceError) Unwrap() []error { return []error{ErrIO, e.Err} }

// VerifyError indicates a read-back checksum mismatch after programming
// a row.
type VerifyError struct {
	// Addr is the absolute address of the row that failed verification
	Addr uint32

	// Expected is the CRC16 of the source row
	Expected uint16

	// Actual is the CRC16 of the row read back from flash
	Actual uint16
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("row at 0x%08X failed verification: expected checksum 0x%04X, got 0x%04X",
		e.Addr, e.Expected, e.Actual)
}

func (e *VerifyError) Unwrap() error { return ErrIO }
