package puz

import "fmt"

// HeaderSize is the fixed size, in bytes, of the binary header (offsets
// 0x00 through 0x34, exclusive).
const HeaderSize = 0x34

// MaxRebusEntryLen is the longest a single user-rebus entry (RUSR) may be,
// matching the original's MAX_REBUS_SIZE.
const MaxRebusEntryLen = 100

// Scrambled tag values. Any nonzero value means "locked"; the original
// library only ever writes 4, so that's what Lock uses too.
const (
	scrambledTagClear  uint16 = 0
	scrambledTagLocked uint16 = 4
)

var (
	fileMagic   = [12]byte{'A', 'C', 'R', 'O', 'S', 'S', '&', 'D', 'O', 'W', 'N', 0}
	magic10Mask = [4]byte{'I', 'C', 'H', 'E'}
	magic14Mask = [4]byte{'A', 'T', 'E', 'D'}
)

// defaultVersion is the format version this package writes.
var defaultVersion = [4]byte{'1', '.', '2', 0}

// Puzzle is the in-memory model of a parsed (or about-to-be-written) .puz
// file. Zero value is not ready to use; construct with New.
type Puzzle struct {
	version [4]byte

	checksumPUZField uint16
	checksumCIBField uint16
	magic10          [4]byte
	magic14          [4]byte

	calcChecksumPUZ uint16
	calcChecksumCIB uint16
	calcMagic10     [4]byte
	calcMagic14     [4]byte

	xUnk30         uint16
	scrambledTag   uint16
	scrambledCksum uint16

	width  uint8
	height uint8

	clueCount   uint16
	clueCapSet  bool
	solution    []byte
	grid        []byte
	title       []byte
	author      []byte
	copyright   []byte
	clues       [][]byte
	notes       []byte

	grbs []byte
	rtbl [][]byte

	ltimElapsed int
	ltimStopped bool
	ltim        []byte // cached serialized "elapsed,stopped" form, or nil if absent

	gext []byte

	rusr     [][]byte
	rusrSize int // cached payload size, excluding the section's trailing NUL

	grbsChecksum, calcGrbsChecksum uint16
	rtblChecksum, calcRtblChecksum uint16
	ltimChecksum, calcLtimChecksum uint16
	gextChecksum, calcGextChecksum uint16
	rusrChecksum, calcRusrChecksum uint16

	// Diagnostics collected while loading (e.g. unknown trailing tags).
	diagnostics []string
}

// New returns an empty puzzle ready to be populated and saved.
func New() *Puzzle {
	return &Puzzle{
		version: defaultVersion,
		xUnk30:  0x0001,
	}
}

func (p *Puzzle) Width() uint8  { return p.width }
func (p *Puzzle) Height() uint8 { return p.height }

// SetSize sets both board dimensions at once; puz files never carry width
// and height independently of one another in any meaningful way (both are
// needed before solution/grid/extras can be validated).
func (p *Puzzle) SetSize(width, height uint8) {
	p.width = width
	p.height = height
}

func (p *Puzzle) boardSize() int { return int(p.width) * int(p.height) }

func (p *Puzzle) Solution() []byte { return p.solution }
func (p *Puzzle) SetSolution(v []byte) {
	p.solution = append([]byte(nil), v...)
}

func (p *Puzzle) Grid() []byte { return p.grid }
func (p *Puzzle) SetGrid(v []byte) {
	p.grid = append([]byte(nil), v...)
}

func (p *Puzzle) Title() []byte        { return p.title }
func (p *Puzzle) SetTitle(v []byte)    { p.title = append([]byte(nil), v...) }
func (p *Puzzle) Author() []byte       { return p.author }
func (p *Puzzle) SetAuthor(v []byte)   { p.author = append([]byte(nil), v...) }
func (p *Puzzle) Copyright() []byte    { return p.copyright }
func (p *Puzzle) SetCopyright(v []byte) { p.copyright = append([]byte(nil), v...) }
func (p *Puzzle) Notes() []byte        { return p.notes }
func (p *Puzzle) SetNotes(v []byte)    { p.notes = append([]byte(nil), v...) }

// ClueCount reports the number of clue slots currently allocated.
func (p *Puzzle) ClueCount() int { return len(p.clues) }

// SetClueCount allocates n empty clue slots. It may only be called once per
// puzzle (matching the original's one-shot clue_count field): calling it
// again returns ErrInvalidArgument.
func (p *Puzzle) SetClueCount(n int) error {
	if p.clueCapSet {
		return fmt.Errorf("%w: clue count already set", ErrInvalidArgument)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative clue count", ErrInvalidArgument)
	}
	p.clues = make([][]byte, n)
	p.clueCount = uint16(n)
	p.clueCapSet = true
	return nil
}

// Clue returns clue n (0-indexed).
func (p *Puzzle) Clue(n int) ([]byte, error) {
	if n < 0 || n >= len(p.clues) {
		return nil, fmt.Errorf("%w: clue index %d out of range [0,%d)", ErrInvalidArgument, n, len(p.clues))
	}
	return p.clues[n], nil
}

// SetClue sets clue n (0-indexed).
func (p *Puzzle) SetClue(n int, v []byte) error {
	if n < 0 || n >= len(p.clues) {
		return fmt.Errorf("%w: clue index %d out of range [0,%d)", ErrInvalidArgument, n, len(p.clues))
	}
	p.clues[n] = append([]byte(nil), v...)
	return nil
}

// ClearClues drops all clue slots, allowing SetClueCount to be called again.
func (p *Puzzle) ClearClues() {
	p.clues = nil
	p.clueCount = 0
	p.clueCapSet = false
}

// HasRebus reports whether a non-empty GRBS rebus grid is present.
func (p *Puzzle) HasRebus() bool { return p.grbs != nil }

// Grbs returns the raw per-cell rebus-table-index grid (0 means no rebus in
// that cell), or nil if the puzzle carries no GRBS section.
func (p *Puzzle) Grbs() []byte { return p.grbs }

// SetGrbs installs a board-sized rebus index grid. A grid that sums to zero
// (no cell uses the rebus table) is treated as absent, matching the loader.
func (p *Puzzle) SetGrbs(v []byte) error {
	if len(v) != p.boardSize() {
		return fmt.Errorf("%w: rebus grid length %d does not match board size %d", ErrInvalidArgument, len(v), p.boardSize())
	}
	sum := 0
	for _, b := range v {
		sum += int(b)
	}
	if sum == 0 {
		p.grbs = nil
		return nil
	}
	p.grbs = append([]byte(nil), v...)
	return nil
}

// RebusCount returns the number of entries in the rebus table (RTBL),
// distinct from ClueCount — see OQ-1.
func (p *Puzzle) RebusCount() int { return len(p.rtbl) }

// SetRebusCount allocates n empty rebus table slots.
func (p *Puzzle) SetRebusCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative rebus count", ErrInvalidArgument)
	}
	p.rtbl = make([][]byte, n)
	return nil
}

// RebusEntry returns rebus table entry n, formatted "KK:word" as on disk.
func (p *Puzzle) RebusEntry(n int) ([]byte, error) {
	if n < 0 || n >= len(p.rtbl) {
		return nil, fmt.Errorf("%w: rebus entry index %d out of range [0,%d)", ErrInvalidArgument, n, len(p.rtbl))
	}
	return p.rtbl[n], nil
}

// SetRebusEntry sets rebus table entry n.
func (p *Puzzle) SetRebusEntry(n int, v []byte) error {
	if n < 0 || n >= len(p.rtbl) {
		return fmt.Errorf("%w: rebus entry index %d out of range [0,%d)", ErrInvalidArgument, n, len(p.rtbl))
	}
	p.rtbl[n] = append([]byte(nil), v...)
	return nil
}

// ClearRebus drops the rebus grid and table entirely.
func (p *Puzzle) ClearRebus() {
	p.grbs = nil
	p.rtbl = nil
}

// rtblBytes serializes the rebus table as the ';'-joined string checksummed
// and written to disk (no trailing ';', no NUL).
func (p *Puzzle) rtblBytes() []byte {
	var out []byte
	for i, e := range p.rtbl {
		if i > 0 {
			out = append(out, ';')
		}
		out = append(out, e...)
	}
	return out
}

// HasTimer reports whether an LTIM section is present.
func (p *Puzzle) HasTimer() bool { return p.ltim != nil }

// Timer returns the elapsed seconds and stopped flag.
func (p *Puzzle) Timer() (elapsed int, stopped bool, ok bool) {
	if p.ltim == nil {
		return 0, false, false
	}
	return p.ltimElapsed, p.ltimStopped, true
}

// SetTimer installs an LTIM section with the given elapsed seconds and
// stopped flag.
func (p *Puzzle) SetTimer(elapsed int, stopped bool) error {
	if elapsed < 0 {
		return fmt.Errorf("%w: negative elapsed time", ErrInvalidArgument)
	}
	p.ltimElapsed = elapsed
	p.ltimStopped = stopped
	p.ltim = formatTimer(elapsed, stopped)
	return nil
}

// ClearTimer drops the LTIM section.
func (p *Puzzle) ClearTimer() {
	p.ltim = nil
	p.ltimElapsed = 0
	p.ltimStopped = false
}

// formatTimer renders "elapsed,stopped" without log10-based buffer sizing
// (see OQ-3): it starts from a small fixed-capacity buffer that append
// grows as needed.
func formatTimer(elapsed int, stopped bool) []byte {
	buf := make([]byte, 0, 5)
	buf = appendInt(buf, elapsed)
	buf = append(buf, ',')
	if stopped {
		buf = append(buf, '1')
	} else {
		buf = append(buf, '0')
	}
	return buf
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	end := len(buf) - 1
	for start < end {
		buf[start], buf[end] = buf[end], buf[start]
		start++
		end--
	}
	return buf
}

// HasExtras reports whether a GEXT section is present.
func (p *Puzzle) HasExtras() bool { return p.gext != nil }

// Gext returns the per-cell extras bitmask grid (GEXT).
func (p *Puzzle) Gext() []byte { return p.gext }

// SetGext installs a board-sized extras bitmask grid.
func (p *Puzzle) SetGext(v []byte) error {
	if len(v) != p.boardSize() {
		return fmt.Errorf("%w: extras grid length %d does not match board size %d", ErrInvalidArgument, len(v), p.boardSize())
	}
	p.gext = append([]byte(nil), v...)
	return nil
}

// ClearExtras drops the GEXT section.
func (p *Puzzle) ClearExtras() { p.gext = nil }

// HasUserRebus reports whether an RUSR section is present.
func (p *Puzzle) HasUserRebus() bool { return p.rusr != nil }

// Rusr returns the per-cell user rebus strings (board-sized, entries may be
// nil for cells with no override).
func (p *Puzzle) Rusr() [][]byte { return p.rusr }

// SetRusr installs a board-sized slice of per-cell user rebus strings. Each
// non-nil entry is truncated to MaxRebusEntryLen bytes, matching the
// loader's own truncation of oversized entries.
func (p *Puzzle) SetRusr(v [][]byte) error {
	if len(v) != p.boardSize() {
		return fmt.Errorf("%w: user rebus grid length %d does not match board size %d", ErrInvalidArgument, len(v), p.boardSize())
	}
	out := make([][]byte, len(v))
	for i, e := range v {
		if e == nil {
			continue
		}
		if len(e) > MaxRebusEntryLen {
			e = e[:MaxRebusEntryLen]
		}
		out[i] = append([]byte(nil), e...)
	}
	p.rusr = out
	p.rusrSize = rusrPayloadSize(out)
	return nil
}

// ClearUserRebus drops the RUSR section.
func (p *Puzzle) ClearUserRebus() {
	p.rusr = nil
	p.rusrSize = 0
}

// rusrBytes serializes the user rebus grid in its on-disk cell form: one
// NUL byte per empty cell, or entry+NUL for a filled cell. Exactly rusrSize
// bytes, excluding the section's own trailing NUL.
func (p *Puzzle) rusrBytes() []byte {
	out := make([]byte, 0, p.rusrSize)
	for _, e := range p.rusr {
		if e == nil {
			out = append(out, 0)
			continue
		}
		out = append(out, e...)
		out = append(out, 0)
	}
	return out
}

func rusrPayloadSize(entries [][]byte) int {
	n := 0
	for _, e := range entries {
		if e == nil {
			n++
		} else {
			n += len(e) + 1
		}
	}
	return n
}

// IsLocked reports whether the puzzle's solution is currently scrambled.
func (p *Puzzle) IsLocked() bool { return p.scrambledTag != scrambledTagClear }

// LockedChecksum returns the checksum of the unscrambled solution recorded
// at lock time (valid only while IsLocked is true).
func (p *Puzzle) LockedChecksum() uint16 { return p.scrambledCksum }

// Lock marks the puzzle as scrambled, recording cksum as the checksum of
// the unscrambled solution. Pass a zero cksum to clear the lock. This is a
// raw accessor: it does not itself scramble the solution bytes — see
// Scramble for that. It lets a caller round-trip an already-locked file's
// tag/checksum pair without touching the plaintext, matching the
// original's puz_lock_set.
func (p *Puzzle) Lock(cksum uint16) {
	if cksum == 0 {
		p.scrambledTag = scrambledTagClear
		p.scrambledCksum = 0
		return
	}
	p.scrambledTag = scrambledTagLocked
	p.scrambledCksum = cksum
}

// Diagnostics returns any warnings collected while loading (e.g. unknown
// trailing section tags).
func (p *Puzzle) Diagnostics() []string { return p.diagnostics }
