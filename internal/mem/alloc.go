package mem

import (
	"unsafe"
)

// Alignment is the byte alignment guaranteed by this package (64 bytes).
// It matches the alignment contract of the payload store: every vector
// handed to the distance kernel starts at a 64-byte boundary.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size whose first element
// sits on a 64-byte boundary. The allocation over-provisions by Alignment
// bytes and returns a sub-slice starting at the first aligned address; the
// underlying array stays alive through the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // alignment requires raw addresses
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// AllocAlignedFloat32 allocates a float32 slice of the given length starting
// at a 64-byte boundary.
func AllocAlignedFloat32(size int) []float32 {
	if size <= 0 {
		return nil
	}

	byteSlice := AllocAligned(size * 4)

	ptr := unsafe.Pointer(&byteSlice[0])       //nolint:gosec // alignment requires raw addresses
	return unsafe.Slice((*float32)(ptr), size) //nolint:gosec // alignment requires raw addresses
}
