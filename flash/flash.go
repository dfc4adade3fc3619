package flash

import (
	"fmt"
	"math"
	"unsafe"
)

// EraseValue is the byte pattern representing logically erased flash.
const EraseValue byte = 0xFF

// eraseWord is one flash word in the erased state.
const eraseWord uint32 = 0xFFFFFFFF

// Device is the hardware boundary for a single flash bank.
//
// Reads are plain copies out of the memory-mapped flash window with no
// hardware sequencing. Writes go through the row-program primitive,
// which operates on whole rows only and erases each row as part of
// programming it.
//
// The row is supplied as native-endian words. Typing the buffer as
// []uint32 guarantees the 4-byte alignment the primitive requires.
type Device interface {
	// ReadAt copies len(p) bytes starting at the absolute address addr.
	ReadAt(p []byte, addr uint32) error

	// ProgramRow programs one whole row at the absolute address addr.
	ProgramRow(addr uint32, row []uint32) error
}

// Config describes a physically addressed flash region. It is fixed at
// construction; no operation mutates it.
type Config struct {
	// BaseAddr is the absolute start address of the flash window.
	BaseAddr uint32

	// Size is the usable size of the region in bytes.
	Size uint32

	// WriteBlockSize is the row size for program operations.
	WriteBlockSize uint32

	// EraseBlockSize is the row size for erase operations.
	EraseBlockSize uint32
}

func (c Config) validate() error {
	if c.Size == 0 {
		return fmt.Errorf("flash: region size must be greater than 0: %w", ErrInvalidArgument)
	}
	// The exclusive end address must not wrap; checked by subtraction.
	if math.MaxUint32-c.BaseAddr < c.Size {
		return fmt.Errorf("flash: region end 0x%08X+0x%X overflows the address space: %w",
			c.BaseAddr, c.Size, ErrInvalidArgument)
	}
	if c.WriteBlockSize == 0 || c.WriteBlockSize%4 != 0 || c.WriteBlockSize > c.Size {
		return fmt.Errorf("flash: write block size %d invalid for region of %d bytes: %w",
			c.WriteBlockSize, c.Size, ErrInvalidArgument)
	}
	if c.EraseBlockSize == 0 || c.EraseBlockSize%4 != 0 || c.EraseBlockSize > c.Size {
		return fmt.Errorf("flash: erase block size %d invalid for region of %d bytes: %w",
			c.EraseBlockSize, c.Size, ErrInvalidArgument)
	}
	return nil
}

// Parameters describes the physical constraints of a region.
// Returned by value; callers may retain it freely.
type Parameters struct {
	// WriteBlockSize is the row size for program operations.
	WriteBlockSize uint32

	// EraseValue is the byte pattern of logically erased flash.
	EraseValue byte

	// NoExplicitErase reports that the hardware erases each row as part
	// of programming it, so callers need not erase before writing.
	NoExplicitErase bool
}

// PageLayout describes one uniform run of pages.
type PageLayout struct {
	// PagesCount is the number of pages in the run.
	PagesCount uint32

	// PageSize is the size of each page in bytes.
	PageSize uint32
}

// Region provides row-oriented access to one flash region. It holds the
// immutable region descriptor and the device it delegates to; every
// operation is a self-contained validate-then-execute sequence.
//
// A Region performs no locking. The caller serializes access to the
// underlying bank; concurrent calls without external synchronization
// are undefined.
type Region struct {
	dev  Device
	cfg  Config
	opts Options
}

// New creates a Region over dev described by cfg.
// The descriptor is validated once here; operations assume it holds.
//
// Example:
//
//	bank := device.NewMem(0x10000000, 0x40000)
//	region, err := flash.New(bank, flash.Config{
//	    BaseAddr:       0x10000000,
//	    Size:           0x40000,
//	    WriteBlockSize: 256,
//	    EraseBlockSize: 256,
//	})
func New(dev Device, cfg Config, opts ...Option) (*Region, error) {
	if dev == nil {
		panic("device cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Region{
		dev:  dev,
		cfg:  cfg,
		opts: o,
	}, nil
}

// Size returns the usable size of the region in bytes.
func (r *Region) Size() int64 {
	return int64(r.cfg.Size)
}

// Parameters returns the physical constraints of the region.
func (r *Region) Parameters() Parameters {
	return Parameters{
		WriteBlockSize:  r.cfg.WriteBlockSize,
		EraseValue:      EraseValue,
		NoExplicitErase: true,
	}
}

// PageLayout describes the region as a single uniform run of
// write-row-sized pages, for callers that enumerate pages rather than
// doing row arithmetic themselves.
func (r *Region) PageLayout() []PageLayout {
	return []PageLayout{{
		PagesCount: r.cfg.Size / r.cfg.WriteBlockSize,
		PageSize:   r.cfg.WriteBlockSize,
	}}
}

// Read copies len(p) bytes starting at the region-relative byte offset
// off into p. A zero-length read succeeds without touching the device.
// Flash reads are synchronous copies with no hardware sequencing.
func (r *Region) Read(off int64, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if off < 0 || int64(r.cfg.Size) < off {
		return &RangeError{Op: "read", Offset: off, Length: len(p), Size: r.cfg.Size}
	}

	// Subtraction form: off+len could wrap, Size-off cannot (off <= Size).
	if uint64(r.cfg.Size)-uint64(off) < uint64(len(p)) {
		return &RangeError{Op: "read", Offset: off, Length: len(p), Size: r.cfg.Size}
	}

	addr := r.cfg.BaseAddr + uint32(off)
	if err := r.dev.ReadAt(p, addr); err != nil {
		return &DeviceError{Op: "read", Addr: addr, Err: err}
	}

	return nil
}

// Write programs len(data) bytes at the region-relative byte offset
// off. Both off and len(data) must be whole multiples of the write
// block size; partial rows are rejected, never padded. A zero-length
// write succeeds without touching the device.
//
// The region is programmed row by row. On the first row-program failure
// an IO-kind error is returned immediately: rows already programmed
// stay programmed, remaining rows are not attempted, and no completion
// count is reported. Callers needing atomicity must journal above this
// layer.
//
// No erase is needed first; the hardware erases each row as part of
// programming it.
//
// Example:
//
//	data := make([]byte, 512) // two 256-byte rows
//	if err := region.Write(0x1000, data); err != nil {
//	    if errors.Is(err, flash.ErrInvalidArgument) {
//	        // bad offset, bounds, or alignment; nothing was written
//	    }
//	}
func (r *Region) Write(off int64, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if off < 0 {
		return &RangeError{Op: "write", Offset: off, Length: len(data), Size: r.cfg.Size}
	}

	row := int(r.cfg.WriteBlockSize)

	// The hardware programs whole rows only.
	if off%int64(row) != 0 || len(data)%row != 0 {
		return &AlignmentError{Op: "write", Offset: off, Length: len(data), BlockSize: r.cfg.WriteBlockSize}
	}

	if int64(r.cfg.Size) < off {
		return &RangeError{Op: "write", Offset: off, Length: len(data), Size: r.cfg.Size}
	}
	if uint64(r.cfg.Size)-uint64(off) < uint64(len(data)) {
		return &RangeError{Op: "write", Offset: off, Length: len(data), Size: r.cfg.Size}
	}

	addr := r.cfg.BaseAddr + uint32(off)
	totalRows := len(data) / row

	r.logDebug("programming rows",
		"offset", off,
		"rows", totalRows,
		"row_size", row,
	)

	// Row size is a multiple of 4, so source alignment is invariant
	// across all rows of one call; test it once before the loop.
	if uintptr(unsafe.Pointer(&data[0]))&3 == 0 {
		for i := 0; i < totalRows; i++ {
			src := data[i*row : (i+1)*row]
			if err := r.programRow("write", addr, wordView(src), src, i, totalRows, row); err != nil {
				return err
			}
			addr += uint32(row)
		}
	} else {
		// Source not 4-byte aligned; stage each row through one aligned
		// word buffer scoped to this call.
		stage := make([]uint32, row/4)
		stageBytes := wordBytes(stage)

		for i := 0; i < totalRows; i++ {
			src := data[i*row : (i+1)*row]
			copy(stageBytes, src)
			if err := r.programRow("write", addr, stage, stageBytes, i, totalRows, row); err != nil {
				return err
			}
			addr += uint32(row)
		}
	}

	return nil
}

// Erase resets size bytes at the region-relative byte offset off to the
// erase value. Both off and size must be whole multiples of the erase
// block size. A zero-size erase succeeds without touching the device.
//
// The bank has no native erase primitive: erase is realized by
// programming erase-value rows through the same row-program primitive
// as Write, with the same non-atomic failure contract.
func (r *Region) Erase(off, size int64) error {
	if size == 0 {
		return nil
	}

	row := int64(r.cfg.EraseBlockSize)

	// Offset and size must both land on erase row boundaries.
	if off%row != 0 || size%row != 0 {
		return &AlignmentError{Op: "erase", Offset: off, Length: int(size), BlockSize: r.cfg.EraseBlockSize}
	}

	if off < 0 || size < 0 || int64(r.cfg.Size) < off {
		return &RangeError{Op: "erase", Offset: off, Length: int(size), Size: r.cfg.Size}
	}
	if uint64(r.cfg.Size)-uint64(off) < uint64(size) {
		return &RangeError{Op: "erase", Offset: off, Length: int(size), Size: r.cfg.Size}
	}

	addr := r.cfg.BaseAddr + uint32(off)
	totalRows := int(size / row)

	r.logDebug("erasing rows",
		"offset", off,
		"rows", totalRows,
		"row_size", row,
	)

	stage := make([]uint32, row/4)
	for i := range stage {
		stage[i] = eraseWord
	}
	stageBytes := wordBytes(stage)

	for i := 0; i < totalRows; i++ {
		if err := r.programRow("erase", addr, stage, stageBytes, i, totalRows, int(row)); err != nil {
			return err
		}
		addr += uint32(row)
	}

	return nil
}

// programRow issues one row-program call, then the optional read-back
// verification and progress report. src holds the bytes the row was
// programmed from.
func (r *Region) programRow(op string, addr uint32, words []uint32, src []byte, rowIdx, totalRows, rowLen int) error {
	if err := r.dev.ProgramRow(addr, words); err != nil {
		r.logError("row program failed", "op", op, "addr", fmt.Sprintf("0x%08X", addr))
		return &DeviceError{Op: op, Addr: addr, Err: err}
	}

	if r.opts.VerifyAfterWrite {
		if err := r.verifyRow(addr, src); err != nil {
			return err
		}
	}

	r.reportProgress(Progress{
		Op:         op,
		CurrentRow: rowIdx + 1,
		TotalRows:  totalRows,
		BytesDone:  (rowIdx + 1) * rowLen,
	})

	return nil
}

// wordView reinterprets a 4-byte-aligned byte slice as native-endian
// words, without copying. len(b) must be a multiple of 4.
func wordView(b []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}

// wordBytes views a word slice as its underlying bytes.
func wordBytes(w []uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&w[0])), len(w)*4)
}

func (r *Region) reportProgress(progress Progress) {
	if r.opts.ProgressCallback != nil {
		r.opts.ProgressCallback(progress)
	}
}

func (r *Region) logDebug(msg string, keysAndValues ...interface{}) {
	if r.opts.Logger != nil {
		r.opts.Logger.Debug(msg, keysAndValues...)
	}
}

func (r *Region) logError(msg string, keysAndValues ...interface{}) {
	if r.opts.Logger != nil {
		r.opts.Logger.Error(msg, keysAndValues...)
	}
}
