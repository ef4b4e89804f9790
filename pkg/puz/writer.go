package puz

// Size returns the exact number of bytes Save will emit for p, without
// building the buffer. Grounded on the writer's own reserve-then-patch
// layout: the fixed header, the board, three metadata strings, the clue
// list, notes, then any present tail sections.
func (p *Puzzle) Size() int {
	sz := HeaderSize
	sz += 2 * p.boardSize()
	sz += len(p.title) + 1
	sz += len(p.author) + 1
	sz += len(p.copyright) + 1
	for _, c := range p.clues {
		sz += len(c) + 1
	}
	sz += len(p.notes) + 1

	if p.grbs != nil {
		sz += 4 + 2 + 2 + p.boardSize() + 1
		rtblLen := len(p.rtblBytes())
		sz += 4 + 2 + 2 + rtblLen + 1
	}
	if p.ltim != nil {
		sz += 4 + 2 + 2 + len(p.ltim) + 1
	}
	if p.gext != nil {
		sz += 4 + 2 + 2 + p.boardSize() + 1
	}
	if p.rusr != nil {
		sz += 4 + 2 + 2 + p.rusrSize + 1
	}
	return sz
}

// Save serializes p into a freshly allocated byte slice using its current
// authoritative checksum fields. Call ChecksumsCommit first if those
// fields should reflect the puzzle's current contents; Save itself never
// recomputes them, so a caller who wants to stage a deliberately-corrupt
// checksum for a test fixture can do so.
//
// The header is written last, mirroring the reserve-space-then-patch
// pattern used for streaming binary formats: everything after it is
// computed first, so the header alone needs no forward knowledge of
// section placement beyond fixed offsets.
func (p *Puzzle) Save() []byte {
	buf := make([]byte, p.Size())
	i := HeaderSize

	bd := p.boardSize()
	copy(buf[i:i+bd], p.solution)
	i += bd
	copy(buf[i:i+bd], p.grid)
	i += bd

	buf2 := buf[:i]
	buf2 = appendCString(buf2, p.title)
	buf2 = appendCString(buf2, p.author)
	buf2 = appendCString(buf2, p.copyright)
	for _, c := range p.clues {
		buf2 = appendCString(buf2, c)
	}
	buf2 = appendCString(buf2, p.notes)

	if p.grbs != nil {
		buf2 = append(buf2, tagGRBS[:]...)
		buf2 = le16Append(buf2, uint16(bd))
		buf2 = le16Append(buf2, p.grbsChecksum)
		buf2 = append(buf2, p.grbs...)
		buf2 = append(buf2, 0)

		rtblPayload := p.rtblBytes()
		buf2 = append(buf2, tagRTBL[:]...)
		buf2 = le16Append(buf2, uint16(len(rtblPayload)))
		buf2 = le16Append(buf2, p.rtblChecksum)
		buf2 = append(buf2, rtblPayload...)
		buf2 = append(buf2, 0)
	}
	if p.ltim != nil {
		buf2 = append(buf2, tagLTIM[:]...)
		buf2 = le16Append(buf2, uint16(len(p.ltim)))
		buf2 = le16Append(buf2, p.ltimChecksum)
		buf2 = append(buf2, p.ltim...)
		buf2 = append(buf2, 0)
	}
	if p.gext != nil {
		buf2 = append(buf2, tagGEXT[:]...)
		buf2 = le16Append(buf2, uint16(bd))
		buf2 = le16Append(buf2, p.gextChecksum)
		buf2 = append(buf2, p.gext...)
		buf2 = append(buf2, 0)
	}
	if p.rusr != nil {
		rusrPayload := p.rusrBytes()
		buf2 = append(buf2, tagRUSR[:]...)
		buf2 = le16Append(buf2, uint16(len(rusrPayload)))
		buf2 = le16Append(buf2, p.rusrChecksum)
		buf2 = append(buf2, rusrPayload...)
		buf2 = append(buf2, 0)
	}

	p.writeHeader(buf)
	return buf2
}

func le16Append(dst []byte, v uint16) []byte {
	return append(dst, byte(v), byte(v>>8))
}
