package puz

import (
	"bytes"
	"fmt"
)

// Tail section tags. Each section on disk is framed as
// TAG[4] | len[2 LE] | cksum[2 LE] | payload[len] | NUL.
var (
	tagGRBS = [4]byte{'G', 'R', 'B', 'S'}
	tagRTBL = [4]byte{'R', 'T', 'B', 'L'}
	tagLTIM = [4]byte{'L', 'T', 'I', 'M'}
	tagGEXT = [4]byte{'G', 'E', 'X', 'T'}
	tagRUSR = [4]byte{'R', 'U', 'S', 'R'}
)

// parseGRBS parses a GRBS section body (everything after the tag+len
// header) starting at buf[0]: a 2-byte checksum, then a board-sized rebus
// index grid, then a NUL. It returns the number of bytes consumed from buf
// (not counting the 6-byte tag+len header that precedes it), which may
// include an immediately following RTBL section per the format's
// GRBS/RTBL pairing.
func (p *Puzzle) parseGRBS(buf []byte) (consumed int, err error) {
	bd := p.boardSize()
	if len(buf) < 2+bd+1 {
		return 0, fmt.Errorf("%w: GRBS section shorter than board size %d", ErrMalformedBody, bd)
	}
	cksum, err := readUint16(buf, 0)
	if err != nil {
		return 0, err
	}
	grid := buf[2 : 2+bd]
	sum := 0
	for _, b := range grid {
		sum += int(b)
	}
	i := 2 + bd + 1 // skip cksum, grid, trailing NUL

	if sum == 0 {
		p.grbs = nil
		return i, nil
	}
	p.grbs = append([]byte(nil), grid...)
	p.grbsChecksum = cksum

	if len(buf)-i >= 4 && bytes.Equal(buf[i:i+4], tagRTBL[:]) {
		rtblLen, err := readUint16(buf, i+4)
		if err != nil {
			return 0, err
		}
		rtblCksum, err := readUint16(buf, i+6)
		if err != nil {
			return 0, err
		}
		start := i + 8
		end := start + int(rtblLen)
		if end+1 > len(buf) {
			return 0, fmt.Errorf("%w: RTBL section truncated", ErrMalformedBody)
		}
		payload := buf[start:end]
		if len(payload) > 0 {
			p.rtbl = bytes.Split(payload, []byte{';'})
		} else {
			p.rtbl = nil
		}
		p.rtblChecksum = rtblCksum
		i = end + 1 // skip trailing NUL
		return i, nil
	}

	// No RTBL follows: a nonzero rebus grid without a table is malformed.
	return 0, fmt.Errorf("%w: GRBS section present with no following RTBL table", ErrMalformedBody)
}

// parseLTIM parses an LTIM section body: cksum(2) + "elapsed,stopped"
// string of length secLen + NUL.
func (p *Puzzle) parseLTIM(buf []byte, secLen int) (consumed int, err error) {
	if len(buf) < 2+secLen+1 {
		return 0, fmt.Errorf("%w: LTIM section shorter than declared length %d", ErrMalformedBody, secLen)
	}
	cksum, err := readUint16(buf, 0)
	if err != nil {
		return 0, err
	}
	payload := buf[2 : 2+secLen]
	elapsed, stopped, err := parseTimer(payload)
	if err != nil {
		return 0, err
	}
	p.ltimElapsed = elapsed
	p.ltimStopped = stopped
	p.ltim = append([]byte(nil), payload...)
	p.ltimChecksum = cksum
	return 2 + secLen + 1, nil
}

func parseTimer(buf []byte) (elapsed int, stopped bool, err error) {
	comma := bytes.IndexByte(buf, ',')
	if comma < 0 {
		return 0, false, fmt.Errorf("%w: malformed LTIM payload %q", ErrMalformedBody, buf)
	}
	for _, c := range buf[:comma] {
		if c < '0' || c > '9' {
			return 0, false, fmt.Errorf("%w: malformed LTIM elapsed field %q", ErrMalformedBody, buf[:comma])
		}
		elapsed = elapsed*10 + int(c-'0')
	}
	stopped = comma+1 < len(buf) && buf[comma+1] == '1'
	return elapsed, stopped, nil
}

// parseGEXT parses a GEXT section body: cksum(2) + board-sized extras grid
// + NUL.
func (p *Puzzle) parseGEXT(buf []byte) (consumed int, err error) {
	bd := p.boardSize()
	if len(buf) < 2+bd+1 {
		return 0, fmt.Errorf("%w: GEXT section shorter than board size %d", ErrMalformedBody, bd)
	}
	cksum, err := readUint16(buf, 0)
	if err != nil {
		return 0, err
	}
	p.gext = append([]byte(nil), buf[2:2+bd]...)
	p.gextChecksum = cksum
	return 2 + bd + 1, nil
}

// parseRUSR parses an RUSR section body: cksum(2), then one entry per
// board cell (a single NUL for "no override", or entry+NUL), then a
// trailing NUL for the section as a whole.
func (p *Puzzle) parseRUSR(buf []byte) (consumed int, err error) {
	bd := p.boardSize()
	if len(buf) < 2 {
		return 0, fmt.Errorf("%w: RUSR section too short for its checksum", ErrMalformedBody)
	}
	cksum, err := readUint16(buf, 0)
	if err != nil {
		return 0, err
	}
	i := 2
	entries := make([][]byte, bd)
	for cell := 0; cell < bd; cell++ {
		if i >= len(buf) {
			return 0, fmt.Errorf("%w: RUSR section truncated at cell %d", ErrMalformedBody, cell)
		}
		if buf[i] == 0 {
			i++
			continue
		}
		s, next, err := readCString(buf, i)
		if err != nil {
			return 0, err
		}
		if len(s) > MaxRebusEntryLen {
			s = s[:MaxRebusEntryLen]
		}
		entries[cell] = append([]byte(nil), s...)
		i = next
	}
	if i >= len(buf) {
		return 0, fmt.Errorf("%w: RUSR section missing trailing NUL", ErrMalformedBody)
	}
	i++ // section's own trailing NUL

	p.rusr = entries
	p.rusrSize = rusrPayloadSize(entries)
	p.rusrChecksum = cksum
	return i, nil
}
