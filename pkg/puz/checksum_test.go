package puz

import "testing"

func TestChecksumRegionAssociative(t *testing.T) {
	a := []byte("the quick brown fox")
	b := []byte("jumps over the lazy dog")
	whole := checksumRegion(append(append([]byte(nil), a...), b...), 0)
	staged := checksumRegion(b, checksumRegion(a, 0))
	if whole != staged {
		t.Errorf("checksumRegion not associative over concatenation: whole=%#x staged=%#x", whole, staged)
	}
}

func TestChecksumRegionEmpty(t *testing.T) {
	if got := checksumRegion(nil, 0x1234); got != 0x1234 {
		t.Errorf("checksumRegion(nil, iv) = %#x, want iv unchanged (%#x)", got, 0x1234)
	}
}

// TestChecksumCIB is the literal E1 scenario: a 3x3 puzzle with 3 clues and
// default xUnk30/scrambledTag produces the documented CIB bytes.
func TestChecksumCIB(t *testing.T) {
	p := New()
	p.SetSize(3, 3)
	if err := p.SetClueCount(3); err != nil {
		t.Fatalf("SetClueCount: %v", err)
	}

	want := checksumRegion([]byte{0x03, 0x03, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00}, 0)
	if got := p.checksumCIB(); got != want {
		t.Errorf("checksumCIB = %#x, want %#x", got, want)
	}
}

func TestMagicBytesDerivation(t *testing.T) {
	cib, sol, grid, c2 := uint16(0x1234), uint16(0xABCD), uint16(0x0001), uint16(0xFFFF)
	m10, m14 := magicBytes(cib, sol, grid, c2)

	sums := [4]uint16{cib, sol, grid, c2}
	for i, s := range sums {
		if got := m10[i] ^ magic10Mask[i]; got != byte(s&0xFF) {
			t.Errorf("magic10[%d] ^ mask = %#x, want low byte %#x", i, got, byte(s&0xFF))
		}
		if got := m14[i] ^ magic14Mask[i]; got != byte(s>>8) {
			t.Errorf("magic14[%d] ^ mask = %#x, want high byte %#x", i, got, byte(s>>8))
		}
	}
}

func TestChecksumsCheckCommitCycle(t *testing.T) {
	p := New()
	p.SetSize(2, 1)
	p.SetSolution([]byte("AB"))
	p.SetGrid([]byte("--"))
	if err := p.SetClueCount(1); err != nil {
		t.Fatalf("SetClueCount: %v", err)
	}
	if err := p.SetClue(0, []byte("a clue")); err != nil {
		t.Fatalf("SetClue: %v", err)
	}

	// Freshly built puzzles have zeroed authoritative fields, so every
	// comparison should mismatch until committed.
	if mismatches := p.checksumsCheck(); mismatches == 0 {
		t.Fatalf("expected mismatches before commit, got 0")
	}

	p.checksumsCommit()
	if mismatches := p.checksumsCheck(); mismatches != 0 {
		t.Errorf("expected 0 mismatches after commit, got %d", mismatches)
	}
}
