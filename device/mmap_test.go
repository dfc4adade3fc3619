package device

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapFreshImageReadsErased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	bank, err := NewMmap(path, 0x1000, 512)
	require.NoError(t, err)
	defer func() { _ = bank.Close() }()

	p := make([]byte, 512)
	require.NoError(t, bank.ReadAt(p, 0x1000))
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 512), p)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(512), info.Size())
}

func TestMmapPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	bank, err := NewMmap(path, 0x1000, 512)
	require.NoError(t, err)

	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i) ^ 0x5A
	}
	require.NoError(t, bank.ProgramRow(0x1000, rowFromBytes(t, src)))
	require.NoError(t, bank.Sync())
	require.NoError(t, bank.Close())

	bank, err = NewMmap(path, 0x1000, 512)
	require.NoError(t, err)
	defer func() { _ = bank.Close() }()

	got := make([]byte, 64)
	require.NoError(t, bank.ReadAt(got, 0x1000))
	assert.Equal(t, src, got)

	// The rest of the image still reads erased.
	rest := make([]byte, 448)
	require.NoError(t, bank.ReadAt(rest, 0x1040))
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 448), rest)
}

func TestMmapRejectsOutOfWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	bank, err := NewMmap(path, 0x1000, 512)
	require.NoError(t, err)
	defer func() { _ = bank.Close() }()

	assert.Error(t, bank.ReadAt(make([]byte, 4), 0x0FFC))
	assert.Error(t, bank.ProgramRow(0x11FC, make([]uint32, 2)))
}
