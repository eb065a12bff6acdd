package queries

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/MRandl/catapult-db/store"
)

// encodeNpy writes a version 1.0 .npy file holding a C-ordered 2D float32
// array.
func encodeNpy(rows [][]float32) []byte {
	n := len(rows)
	dim := 0
	if n > 0 {
		dim = len(rows[0])
	}

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.WriteByte(1)
	buf.WriteByte(0)

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", n, dim)
	// Total header size (magic + version + length + dict) padded to 64.
	pad := 64 - (10+len(header)+1)%64
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"

	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	buf.Write(hlen[:])
	buf.WriteString(header)

	for _, row := range rows {
		for _, v := range row {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
			buf.Write(b[:])
		}
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad(t *testing.T) {
	rows := [][]float32{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{8, 7, 6, 5, 4, 3, 2, 1},
	}
	path := writeTemp(t, "queries.npy", encodeNpy(rows))

	s, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, s.Count())
	require.Equal(t, 8, s.Dim())
	require.Equal(t, rows[0], s.Vector(0))
	require.Equal(t, rows[1], s.Vector(1))
}

func TestLoad_Zstd(t *testing.T) {
	rows := [][]float32{{1, 0, 0, 0, 0, 0, 0, 0}}
	raw := encodeNpy(rows)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())

	path := writeTemp(t, "queries.npy.zst", compressed)

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, s.Count())
	require.Equal(t, rows[0], s.Vector(0))
}

func TestLoad_Malformed(t *testing.T) {
	t.Run("not npy", func(t *testing.T) {
		path := writeTemp(t, "garbage.npy", []byte("not a numpy file"))
		_, err := Load(path)
		require.ErrorIs(t, err, store.ErrMalformed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.npy"))
		require.Error(t, err)
		require.NotErrorIs(t, err, store.ErrMalformed)
	})
}

func TestLoad_Rejects1D(t *testing.T) {
	// Hand-build a 1D header.
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.WriteByte(1)
	buf.WriteByte(0)
	header := "{'descr': '<f4', 'fortran_order': False, 'shape': (4,), }"
	pad := 64 - (10+len(header)+1)%64
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	buf.Write(hlen[:])
	buf.WriteString(header)
	buf.Write(make([]byte, 16))

	path := writeTemp(t, "vec.npy", buf.Bytes())
	_, err := Load(path)
	require.ErrorIs(t, err, store.ErrMalformed)
}

func TestLoad_RejectsWrongDtype(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.WriteByte(1)
	buf.WriteByte(0)
	header := "{'descr': '<f8', 'fortran_order': False, 'shape': (1, 8), }"
	pad := 64 - (10+len(header)+1)%64
	header += string(bytes.Repeat([]byte{' '}, pad)) + "\n"
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	buf.Write(hlen[:])
	buf.WriteString(header)
	buf.Write(make([]byte, 64))

	path := writeTemp(t, "f64.npy", buf.Bytes())
	_, err := Load(path)
	require.ErrorIs(t, err, store.ErrMalformed)
}
