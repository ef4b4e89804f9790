package puz

// checksumRegion is the rotate-and-sum primitive every other checksum in
// this package is built from: rotate the running 16-bit value right by one
// bit, then add the next byte, wrapping mod 2^16. Grounded on cksum.c's
// puz_cksum_region.
func checksumRegion(data []byte, initial uint16) uint16 {
	cksum := initial
	for _, b := range data {
		if cksum&1 != 0 {
			cksum = (cksum >> 1) | 0x8000
		} else {
			cksum = cksum >> 1
		}
		cksum += uint16(b)
	}
	return cksum
}

// cib returns the 8-byte "common info block" checksummed as a unit: width,
// height, clue count (LE16), x_unk_30 (LE16), scrambled tag (LE16).
func (p *Puzzle) cib() [8]byte {
	var b [8]byte
	b[0] = p.width
	b[1] = p.height
	putUint16(b[2:4], 0, p.clueCount)
	putUint16(b[4:6], 0, p.xUnk30)
	putUint16(b[6:8], 0, p.scrambledTag)
	return b
}

// checksumCIB is cksum_cib: checksumRegion of the 8-byte CIB alone.
func (p *Puzzle) checksumCIB() uint16 {
	b := p.cib()
	return checksumRegion(b[:], 0)
}

// pieces returns, in checksum order, every variable-length piece that
// contributes to cksum_puz/cksum_cib2: solution, grid, title+NUL,
// author+NUL, copyright+NUL, each clue (without its NUL), notes+NUL.
// includeBoard controls whether solution/grid are included, matching
// cksum.c's puz_cksum (includes them) vs puz_cksum2 (skips them).
func (p *Puzzle) pieces(includeBoard bool) [][]byte {
	var out [][]byte
	if includeBoard {
		out = append(out, p.solution, p.grid)
	}
	if len(p.title) > 0 {
		out = append(out, appendCString(nil, p.title))
	}
	if len(p.author) > 0 {
		out = append(out, appendCString(nil, p.author))
	}
	if len(p.copyright) > 0 {
		out = append(out, appendCString(nil, p.copyright))
	}
	for _, c := range p.clues {
		out = append(out, c)
	}
	if len(p.notes) > 0 {
		out = append(out, appendCString(nil, p.notes))
	}
	return out
}

// checksumPUZ is cksum_puz (the "magic" overall checksum, a.k.a. puzcib in
// some of the original's comments): CIB checksum chained with every piece
// including solution and grid.
func (p *Puzzle) checksumPUZ() uint16 {
	ck := p.checksumCIB()
	for _, piece := range p.pieces(true) {
		ck = checksumRegion(piece, ck)
	}
	return ck
}

// checksum2 is cksum2: the same chain as checksumPUZ but starting fresh at
// zero and skipping the solution/grid board data.
func (p *Puzzle) checksum2() uint16 {
	var ck uint16
	for _, piece := range p.pieces(false) {
		ck = checksumRegion(piece, ck)
	}
	return ck
}

// magicBytes derives the masked magic_10/magic_14 fields: low byte of each
// of [cib, solution, grid, cksum2] XORed against "ICHE", high byte XORed
// against "ATED".
func magicBytes(cib, sol, grid, cksum2 uint16) (m10, m14 [4]byte) {
	sums := [4]uint16{cib, sol, grid, cksum2}
	for i, s := range sums {
		m10[i] = byte(s&0xFF) ^ magic10Mask[i]
		m14[i] = byte(s>>8) ^ magic14Mask[i]
	}
	return m10, m14
}

// checksumsCalc computes every checksum field from the puzzle's current
// contents and stores them in the calc* shadow fields, leaving the
// authoritative fields untouched until ChecksumsCommit copies them over.
func (p *Puzzle) checksumsCalc() {
	p.calcChecksumCIB = p.checksumCIB()
	p.calcChecksumPUZ = p.checksumPUZ()
	sol := checksumRegion(p.solution, 0)
	grid := checksumRegion(p.grid, 0)
	c2 := p.checksum2()
	p.calcMagic10, p.calcMagic14 = magicBytes(p.calcChecksumCIB, sol, grid, c2)

	if p.grbs != nil {
		p.calcGrbsChecksum = checksumRegion(p.grbs, 0)
	}
	if p.rtbl != nil {
		p.calcRtblChecksum = checksumRegion(p.rtblBytes(), 0)
	}
	if p.ltim != nil {
		p.calcLtimChecksum = checksumRegion(p.ltim, 0)
	}
	if p.gext != nil {
		p.calcGextChecksum = checksumRegion(p.gext, 0)
	}
	if p.rusr != nil {
		p.calcRusrChecksum = checksumRegion(p.rusrBytes(), 0)
	}
}

// checksumsCheck compares authoritative checksum fields against a fresh
// calc pass and returns the number of mismatches found. It always
// recalculates first, matching the original's "calc is always called
// before check" convention.
func (p *Puzzle) checksumsCheck() int {
	p.checksumsCalc()
	mismatches := 0
	if p.checksumCIBField != p.calcChecksumCIB {
		mismatches++
	}
	if p.checksumPUZField != p.calcChecksumPUZ {
		mismatches++
	}
	if p.magic10 != p.calcMagic10 {
		mismatches++
	}
	if p.magic14 != p.calcMagic14 {
		mismatches++
	}
	if p.grbs != nil && p.grbsChecksum != p.calcGrbsChecksum {
		mismatches++
	}
	if p.rtbl != nil && p.rtblChecksum != p.calcRtblChecksum {
		mismatches++
	}
	if p.ltim != nil && p.ltimChecksum != p.calcLtimChecksum {
		mismatches++
	}
	if p.gext != nil && p.gextChecksum != p.calcGextChecksum {
		mismatches++
	}
	if p.rusr != nil && p.rusrChecksum != p.calcRusrChecksum {
		mismatches++
	}
	return mismatches
}

// checksumsCommit copies every calc* field into its authoritative
// counterpart. Call ChecksumsCalc (or ChecksumsCheck, which calls it too)
// first.
func (p *Puzzle) checksumsCommit() {
	p.checksumCIBField = p.calcChecksumCIB
	p.checksumPUZField = p.calcChecksumPUZ
	p.magic10 = p.calcMagic10
	p.magic14 = p.calcMagic14
	if p.grbs != nil {
		p.grbsChecksum = p.calcGrbsChecksum
	}
	if p.rtbl != nil {
		p.rtblChecksum = p.calcRtblChecksum
	}
	if p.ltim != nil {
		p.ltimChecksum = p.calcLtimChecksum
	}
	if p.gext != nil {
		p.gextChecksum = p.calcGextChecksum
	}
	if p.rusr != nil {
		p.rusrChecksum = p.calcRusrChecksum
	}
}
