package device

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowFromBytes(t *testing.T, b []byte) []uint32 {
	t.Helper()
	require.Zero(t, len(b)%4)

	row := make([]uint32, len(b)/4)
	for i := range row {
		row[i] = binary.NativeEndian.Uint32(b[i*4:])
	}
	return row
}

func TestMemStartsErased(t *testing.T) {
	bank := NewMem(0x1000, 256)

	p := make([]byte, 256)
	require.NoError(t, bank.ReadAt(p, 0x1000))
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 256), p)
}

func TestMemProgramRowRoundTrip(t *testing.T) {
	bank := NewMem(0x1000, 256)

	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i)
	}
	require.NoError(t, bank.ProgramRow(0x1040, rowFromBytes(t, src)))

	got := make([]byte, 64)
	require.NoError(t, bank.ReadAt(got, 0x1040))
	assert.Equal(t, src, got)

	// Neighbours untouched.
	before := make([]byte, 64)
	require.NoError(t, bank.ReadAt(before, 0x1000))
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 64), before)
}

func TestMemRejectsOutOfWindow(t *testing.T) {
	bank := NewMem(0x1000, 256)

	assert.Error(t, bank.ReadAt(make([]byte, 4), 0x0FFC))
	assert.Error(t, bank.ReadAt(make([]byte, 8), 0x10FC))
	assert.Error(t, bank.ProgramRow(0x1100, make([]uint32, 1)))
}
