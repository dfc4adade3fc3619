package device

import (
	"encoding/binary"
	"fmt"
)

// eraseValue is the byte pattern of erased flash.
const eraseValue byte = 0xFF

// Mem is a RAM-backed flash bank at a fixed base address. A fresh bank
// reads as erased flash. It implements flash.Device and is intended for
// examples, tests, and host-side tooling.
type Mem struct {
	base uint32
	buf  []byte
}

// NewMem creates a bank of size bytes at the absolute address base,
// filled with the erase value.
func NewMem(base, size uint32) *Mem {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = eraseValue
	}
	return &Mem{base: base, buf: buf}
}

// ReadAt copies len(p) bytes starting at the absolute address addr.
func (m *Mem) ReadAt(p []byte, addr uint32) error {
	off, err := window(m.base, uint32(len(m.buf)), addr, len(p))
	if err != nil {
		return err
	}
	copy(p, m.buf[off:off+len(p)])
	return nil
}

// ProgramRow programs one row at the absolute address addr. The whole
// row is overwritten, which is what makes auto-erase-before-program
// hold for this bank.
func (m *Mem) ProgramRow(addr uint32, row []uint32) error {
	off, err := window(m.base, uint32(len(m.buf)), addr, len(row)*4)
	if err != nil {
		return err
	}
	dst := m.buf[off:]
	for i, w := range row {
		binary.NativeEndian.PutUint32(dst[i*4:], w)
	}
	return nil
}

// Bytes returns the backing store. Intended for tests and tooling;
// mutating it bypasses the bank.
func (m *Mem) Bytes() []byte {
	return m.buf
}

// window translates an absolute address into a bank-local offset,
// rejecting anything outside [base, base+size).
func window(base, size, addr uint32, n int) (int, error) {
	if addr < base || uint64(addr-base)+uint64(n) > uint64(size) {
		return 0, fmt.Errorf("address 0x%08X+%d outside bank [0x%08X, 0x%08X)",
			addr, n, base, base+size)
	}
	return int(addr - base), nil
}
