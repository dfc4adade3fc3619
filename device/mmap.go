package device

import (
	"encoding/binary"
	"errors"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Mmap is a file-backed flash bank memory-mapped into the process. It
// implements flash.Device and persists across runs, which makes it the
// bank of choice for flash image tooling.
type Mmap struct {
	base uint32
	size uint32
	mmap mmap.MMap
	file *os.File
}

// NewMmap maps the flash image at path as a bank of size bytes at the
// absolute address base. A missing or short image is extended and the
// new bytes are filled with the erase value, so a fresh image reads as
// erased flash.
func NewMmap(path string, base, size uint32) (*Mmap, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	prevSize := info.Size()
	if prevSize < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	// Truncate extends with zeros; erased flash reads 0xFF.
	for i := prevSize; i < int64(size); i++ {
		mm[i] = eraseValue
	}

	return &Mmap{
		base: base,
		size: size,
		mmap: mm,
		file: f,
	}, nil
}

// ReadAt copies len(p) bytes starting at the absolute address addr.
func (m *Mmap) ReadAt(p []byte, addr uint32) error {
	off, err := window(m.base, m.size, addr, len(p))
	if err != nil {
		return err
	}
	copy(p, m.mmap[off:off+len(p)])
	return nil
}

// ProgramRow programs one row at the absolute address addr.
func (m *Mmap) ProgramRow(addr uint32, row []uint32) error {
	off, err := window(m.base, m.size, addr, len(row)*4)
	if err != nil {
		return err
	}
	dst := m.mmap[off:]
	for i, w := range row {
		binary.NativeEndian.PutUint32(dst[i*4:], w)
	}
	return nil
}

// Sync flushes the mapped image to disk.
func (m *Mmap) Sync() error {
	return m.mmap.Flush()
}

// Close flushes, unmaps, and closes the image.
func (m *Mmap) Close() error {
	flushErr := m.mmap.Flush()
	unmapErr := m.mmap.Unmap()
	closeErr := m.file.Close()

	return errors.Join(flushErr, unmapErr, closeErr)
}
