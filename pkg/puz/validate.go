package puz

// ChecksumsCalc recomputes every checksum field from the puzzle's current
// contents, without touching the authoritative header fields. Call it
// before inspecting the calc* values directly, or rely on ChecksumsCheck/
// ChecksumsCommit, which call it for you.
func (p *Puzzle) ChecksumsCalc() { p.checksumsCalc() }

// ChecksumsCheck recalculates every checksum and compares it against the
// puzzle's authoritative fields (as loaded from disk, or last committed),
// returning the number of mismatches. A mismatch is never itself an error:
// a puzzle with a nonzero mismatch count loaded successfully and is
// usable, just not known-good.
func (p *Puzzle) ChecksumsCheck() int { return p.checksumsCheck() }

// ChecksumsCommit recalculates every checksum and copies the results into
// the puzzle's authoritative fields, so a subsequent Save emits values
// consistent with the puzzle's current contents.
func (p *Puzzle) ChecksumsCommit() {
	p.checksumsCalc()
	p.checksumsCommit()
}
