package puz

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// FileKind selects the on-disk dialect to parse, or asks Load to guess.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindBinary
	KindText
)

// textSubmagic is the leading byte of every text-format magic delimiter.
const textSubmagic = '<'

// File is a memory-mapped (or read-in-full) .puz file and its parsed
// Puzzle. The returned Puzzle's byte slices may alias the mapping; don't
// retain them past Close when mmapped is in play, unless you've copied
// them out (every Puzzle setter copies, so mutation is always safe).
type File struct {
	Puzzle  *Puzzle
	data    []byte
	mmapped bool
}

// Open memory-maps path read-only and parses it. If mmap is unavailable it
// falls back to reading the whole file into memory. The returned File must
// be closed to release the mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: file size %d is not representable", ErrMalformedHeader, size64)
	}
	size := int(size64)

	data, mmapErr := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if mmapErr == nil {
		puzzle, diags, err := Load(KindUnknown, data)
		if err != nil {
			_ = unix.Munmap(data)
			return nil, err
		}
		puzzle.diagnostics = diags
		return &File{Puzzle: puzzle, data: data, mmapped: true}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	puzzle, diags, err := Load(KindUnknown, data)
	if err != nil {
		return nil, err
	}
	puzzle.diagnostics = diags
	return &File{Puzzle: puzzle, data: data, mmapped: false}, nil
}

// OpenReaderAt loads and parses a .puz from a random-access reader without
// mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: file size %d is not representable", ErrMalformedHeader, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	puzzle, diags, err := Load(KindUnknown, data)
	if err != nil {
		return nil, err
	}
	puzzle.diagnostics = diags
	return &File{Puzzle: puzzle, data: data, mmapped: false}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Close releases the file's mapping, if any.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.data)
	}
	f.data = nil
	f.Puzzle = nil
	f.mmapped = false
	return err
}

// Load parses data as either the binary or text .puz dialect. If kind is
// KindUnknown, the dialect is guessed from the first bytes; if kind names
// a specific dialect and the data doesn't match, Load returns
// ErrMalformedHeader. It returns the parsed puzzle along with any
// non-fatal diagnostics collected while parsing (e.g. unknown trailing
// section tags).
func Load(kind FileKind, data []byte) (*Puzzle, []string, error) {
	guess := guessKind(data)
	if kind == KindUnknown {
		kind = guess
	} else if kind != guess {
		return nil, nil, fmt.Errorf("%w: requested dialect does not match file contents", ErrMalformedHeader)
	}

	switch kind {
	case KindBinary:
		return loadBinary(data)
	case KindText:
		return loadText(data)
	default:
		return nil, nil, fmt.Errorf("%w: could not determine file dialect", ErrMalformedHeader)
	}
}

// guessKind mirrors the original's heuristic: binary unless the first byte
// is the text submagic '<' and the byte at offset 0x0D is nonzero. In a
// genuine binary file that byte is the binary magic's terminating NUL, so
// the second half of the condition is always false for one.
func guessKind(data []byte) FileKind {
	if len(data) <= 13 {
		return KindBinary
	}
	if data[0] != textSubmagic || data[13] == 0 {
		return KindBinary
	}
	return KindText
}

func loadBinary(data []byte) (*Puzzle, []string, error) {
	p := New()
	if err := p.parseHeader(data); err != nil {
		return nil, nil, err
	}

	bd := p.boardSize()
	i := HeaderSize
	if len(data)-i < 2*bd {
		return nil, nil, fmt.Errorf("%w: file too short for a %dx%d board", ErrMalformedBody, p.width, p.height)
	}
	p.solution = append([]byte(nil), data[i:i+bd]...)
	i += bd
	p.grid = append([]byte(nil), data[i:i+bd]...)
	i += bd

	var err error
	if p.title, i, err = readCString(data, i); err != nil {
		return nil, nil, err
	}
	if p.author, i, err = readCString(data, i); err != nil {
		return nil, nil, err
	}
	if p.copyright, i, err = readCString(data, i); err != nil {
		return nil, nil, err
	}

	nClues := int(p.clueCount)
	p.clues = make([][]byte, nClues)
	p.clueCapSet = true
	for c := 0; c < nClues; c++ {
		if p.clues[c], i, err = readCString(data, i); err != nil {
			return nil, nil, err
		}
	}

	// Notes is always the next NUL-terminated string (possibly empty) if
	// any data remains; a file truncated exactly after the last clue has
	// no notes field at all.
	if i < len(data) {
		if p.notes, i, err = readCString(data, i); err != nil {
			return nil, nil, err
		}
	}

	diags, err := p.parseTailSections(data[i:])
	if err != nil {
		return nil, nil, err
	}
	return p, diags, nil
}

// parseTailSections walks the loop of optional GRBS/RTBL/LTIM/GEXT/RUSR
// sections. Each is framed as TAG[4] | len[2 LE] | ... A section returning
// zero consumed bytes is malformed and aborts parsing. An unrecognized tag
// is logged as a diagnostic and skipped by 6+length+1 bytes, matching the
// reference loader (this does not account for the section's own checksum
// field, a known quirk preserved for compatibility).
func (p *Puzzle) parseTailSections(buf []byte) ([]string, error) {
	var diags []string
	i := 0
	for len(buf)-i >= 6 {
		var tag [4]byte
		copy(tag[:], buf[i:i+4])
		secLen, err := readUint16(buf, i+4)
		if err != nil {
			return diags, err
		}
		body := buf[i+6:]

		var consumed int
		switch tag {
		case tagGRBS:
			consumed, err = p.parseGRBS(body)
		case tagLTIM:
			consumed, err = p.parseLTIM(body, int(secLen))
		case tagGEXT:
			consumed, err = p.parseGEXT(body)
		case tagRUSR:
			consumed, err = p.parseRUSR(body)
		case tagRTBL:
			// RTBL is only ever consumed as part of a preceding GRBS; a
			// bare RTBL with no rebus grid is malformed.
			return diags, fmt.Errorf("%w: RTBL section with no preceding GRBS", ErrMalformedBody)
		default:
			diags = append(diags, fmt.Sprintf("unknown trailing section tag %q, skipping", tag[:]))
			i += 6 + int(secLen) + 1
			continue
		}
		if err != nil {
			return diags, err
		}
		if consumed == 0 {
			return diags, fmt.Errorf("%w: %q section consumed zero bytes", ErrMalformedBody, tag[:])
		}
		i += 6 + consumed
	}
	return diags, nil
}
