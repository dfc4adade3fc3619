package flash

import (
	"github.com/sigurn/crc16"
)

// crcTable is the CRC-16-CCITT table used for row verification.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// verifyRow reads a just-programmed row back and compares checksums
// against the source bytes it was programmed from.
func (r *Region) verifyRow(addr uint32, src []byte) error {
	readback := make([]byte, len(src))
	if err := r.dev.ReadAt(readback, addr); err != nil {
		return &DeviceError{Op: "verify", Addr: addr, Err: err}
	}

	expected := crc16.Checksum(src, crcTable)
	actual := crc16.Checksum(readback, crcTable)
	if actual != expected {
		return &VerifyError{Addr: addr, Expected: expected, Actual: actual}
	}

	return nil
}
