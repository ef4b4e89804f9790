package puz

import (
	"encoding/binary"
	"fmt"
)

// Low-level byte-slice codec helpers. Like the key/value record codec this
// format was grounded on, everything here reads and writes fixed-width
// little-endian fields and NUL-terminated strings directly against byte
// slices rather than casting through unsafe pointers.

func readUint16(buf []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, fmt.Errorf("%w: uint16 read at %d exceeds buffer of %d bytes", ErrMalformedHeader, off, len(buf))
	}
	return binary.LittleEndian.Uint16(buf[off : off+2]), nil
}

func putUint16(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
}

// readCString returns the bytes up to (not including) the first NUL found
// at or after off, and the offset of the byte immediately after that NUL.
func readCString(buf []byte, off int) (s []byte, next int, err error) {
	if off < 0 || off > len(buf) {
		return nil, 0, fmt.Errorf("%w: string read at %d exceeds buffer of %d bytes", ErrMalformedHeader, off, len(buf))
	}
	i := off
	for i < len(buf) && buf[i] != 0 {
		i++
	}
	if i >= len(buf) {
		return nil, 0, fmt.Errorf("%w: unterminated string starting at %d", ErrMalformedBody, off)
	}
	return buf[off:i], i + 1, nil
}

// appendCString appends v followed by a single NUL byte.
func appendCString(dst []byte, v []byte) []byte {
	dst = append(dst, v...)
	return append(dst, 0)
}
