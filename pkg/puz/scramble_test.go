package puz

import (
	"bytes"
	"errors"
	"testing"
)

func TestShiftUnshiftRoundTrip(t *testing.T) {
	src := []byte("ABCDEFGHIJ")
	for k := 0; k <= len(src); k++ {
		shifted := make([]byte, len(src))
		shiftBytes(shifted, src, k)
		back := make([]byte, len(src))
		unshiftBytes(back, shifted, k)
		if !bytes.Equal(back, src) {
			t.Errorf("shift/unshift(%d) round trip: got %q, want %q", k, back, src)
		}
	}
}

func TestInterleaveDeinterleaveAreInverse(t *testing.T) {
	cases := []string{"ABCDEF", "ABCDEFGH", "PIZZALOVERTESTSABCDE"}
	for _, s := range cases {
		src := []byte(s)
		interleaved := make([]byte, len(src))
		interleaveHalves(interleaved, src)
		back := make([]byte, len(src))
		deinterleaveHalves(back, interleaved)
		if !bytes.Equal(back, src) {
			t.Errorf("interleave/deinterleave(%q) round trip: got %q", s, back)
		}
	}
}

func TestCodeDigits(t *testing.T) {
	valid := map[int][4]int{
		1111: {1, 1, 1, 1},
		2718: {2, 7, 1, 8},
		9999: {9, 9, 9, 9},
	}
	for code, want := range valid {
		got, err := codeDigits(code)
		if err != nil {
			t.Fatalf("codeDigits(%d): %v", code, err)
		}
		if got != want {
			t.Errorf("codeDigits(%d) = %v, want %v", code, got, want)
		}
	}

	invalid := []int{0, 1110, 10000, 1011, 1101, 1110, -5}
	for _, code := range invalid {
		if _, err := codeDigits(code); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("codeDigits(%d): expected ErrInvalidArgument, got %v", code, err)
		}
	}
}

// TestCanonicalOrderMatchesColumnMajorLayout is the OQ-2 regression test:
// on a non-square board, traversal must use solution[y*w+x], not the
// source's sol[j*h+i], or the two disagree whenever w != h.
func TestCanonicalOrderMatchesColumnMajorLayout(t *testing.T) {
	p := New()
	p.SetSize(3, 2) // width 3, height 2
	p.SetSolution([]byte("ABCDEF"))

	got := canonicalString(p.solution, p.canonicalPositions())
	want := []byte("ADBECF")
	if !bytes.Equal(got, want) {
		t.Errorf("canonical traversal = %q, want %q (column-major over a 3x2 board)", got, want)
	}
}

func TestCanonicalPositionsSkipsBlackCells(t *testing.T) {
	p := New()
	p.SetSize(2, 2)
	p.SetSolution([]byte("A.BC"))

	got := canonicalString(p.solution, p.canonicalPositions())
	want := []byte("ABC")
	if !bytes.Equal(got, want) {
		t.Errorf("canonical traversal = %q, want %q", got, want)
	}
}

func TestScrambleUnlockRoundTrip(t *testing.T) {
	solutions := []string{
		"AB",
		"ABCDEFGHIJ",
		"THEQUICKBROWNFOXJUMPS",
	}
	codes := []int{1111, 2345, 9999, 1234}

	for _, s := range solutions {
		for _, code := range codes {
			p := New()
			p.SetSize(uint8(len(s)), 1)
			p.SetSolution([]byte(s))

			if err := p.Scramble(code); err != nil {
				t.Fatalf("Scramble(%q, %d): %v", s, code, err)
			}
			if !p.IsLocked() {
				t.Fatalf("Scramble(%q, %d): puzzle not marked locked", s, code)
			}
			if bytes.Equal(p.Solution(), []byte(s)) {
				t.Fatalf("Scramble(%q, %d): solution unchanged", s, code)
			}

			if err := p.Unlock(code); err != nil {
				t.Fatalf("Unlock(%d) after Scramble(%d): %v", code, code, err)
			}
			if p.IsLocked() {
				t.Errorf("puzzle still locked after successful Unlock")
			}
			if !bytes.Equal(p.Solution(), []byte(s)) {
				t.Errorf("Unlock(%q, %d) restored %q, want %q", s, code, p.Solution(), s)
			}
		}
	}
}

// TestScrambleUnlockE3 is the literal E3 scenario.
func TestScrambleUnlockE3(t *testing.T) {
	// Row-major 5x5 board with '.' on the main diagonal; its column-major
	// canonical traversal reads out as "PIZZALOVERTESTSABCDE".
	rows := []string{
		".AESB",
		"P.RTC",
		"IL.SD",
		"ZOT.E",
		"ZVEA.",
	}
	var solution []byte
	for _, r := range rows {
		solution = append(solution, r...)
	}

	p := New()
	p.SetSize(5, 5)
	p.SetSolution(solution)

	if got := canonicalString(p.solution, p.canonicalPositions()); string(got) != "PIZZALOVERTESTSABCDE" {
		t.Fatalf("canonical solution = %q, want PIZZALOVERTESTSABCDE (fixture error)", got)
	}

	if err := p.Scramble(2718); err != nil {
		t.Fatalf("Scramble(2718): %v", err)
	}

	if err := p.Unlock(1111); !errors.Is(err, ErrWrongKey) {
		t.Errorf("Unlock(1111) = %v, want ErrWrongKey", err)
	}
	// A failed Unlock must not have consumed or mutated the lock.
	if !p.IsLocked() {
		t.Fatalf("puzzle unlocked after a failed Unlock attempt")
	}

	if err := p.Unlock(2718); err != nil {
		t.Fatalf("Unlock(2718): %v", err)
	}
	if !bytes.Equal(p.Solution(), solution) {
		t.Errorf("Unlock(2718) restored %q, want %q", p.Solution(), solution)
	}
}

func TestBruteForceUnlock(t *testing.T) {
	p := New()
	p.SetSize(6, 1)
	p.SetSolution([]byte("ABCDEF"))

	const code = 4567
	if err := p.Scramble(code); err != nil {
		t.Fatalf("Scramble: %v", err)
	}

	got, err := p.BruteForceUnlock()
	if err != nil {
		t.Fatalf("BruteForceUnlock: %v", err)
	}
	if got != code {
		t.Errorf("BruteForceUnlock = %d, want %d", got, code)
	}
	if !bytes.Equal(p.Solution(), []byte("ABCDEF")) {
		t.Errorf("BruteForceUnlock left solution %q, want ABCDEF", p.Solution())
	}
}

func TestScrambleRejectsAlreadyLocked(t *testing.T) {
	p := New()
	p.SetSize(4, 1)
	p.SetSolution([]byte("ABCD"))
	if err := p.Scramble(1234); err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if err := p.Scramble(5678); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Scramble on already-locked puzzle = %v, want ErrInvalidArgument", err)
	}
}

func TestUnlockRequiresLockedPuzzle(t *testing.T) {
	p := New()
	p.SetSize(4, 1)
	p.SetSolution([]byte("ABCD"))
	if err := p.Unlock(1234); !errors.Is(err, ErrNotLocked) {
		t.Errorf("Unlock on clear puzzle = %v, want ErrNotLocked", err)
	}
}
