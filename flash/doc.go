// Package flash provides row-oriented access to a physically addressed
// flash region.
//
// # Overview
//
// A Region translates logical offset+length requests into validated,
// hardware-aligned row transactions:
//   - Read copies bytes straight out of the memory-mapped window
//   - Write programs whole rows through the row-program primitive
//   - Erase programs erase-value rows through the same primitive
//
// Every request is bounds-checked and alignment-checked before the
// first hardware call; requests that would run out of range or touch a
// partial row are rejected, never truncated or padded.
//
// # Basic Usage
//
//	bank := device.NewMem(0x10000000, 0x40000)
//
//	region, err := flash.New(bank, flash.Config{
//	    BaseAddr:       0x10000000,
//	    Size:           0x40000,
//	    WriteBlockSize: 256,
//	    EraseBlockSize: 256,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data := make([]byte, 512) // two rows
//	if err := region.Write(0, data); err != nil {
//	    log.Fatal(err)
//	}
//
// # Hardware Independence
//
// This package does NOT implement hardware access. Users provide a
// Device for their bank: a memory-mapped controller window on real
// hardware, or the device package's RAM- and file-backed banks for
// hosts and tests. The row-program primitive is assumed to erase each
// row as part of programming it, so Write needs no erase step first
// (Parameters reports NoExplicitErase).
//
// # Error Handling
//
// Errors come in exactly two kinds, exposed as sentinels:
//   - ErrInvalidArgument: offset, bounds, or alignment violation,
//     caught before any hardware call
//   - ErrIO: a row-program failure mid-operation; completed rows stay
//     completed, remaining rows are abandoned
//
// Structured types (RangeError, AlignmentError, DeviceError,
// VerifyError) carry the details and unwrap to the sentinels.
//
// # Concurrency
//
// A Region is stateless between calls but performs no locking: there is
// one physical bank underneath, and the caller serializes access to it.
package flash
