package puz

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetClueCountOneShot(t *testing.T) {
	p := New()
	if err := p.SetClueCount(3); err != nil {
		t.Fatalf("SetClueCount: %v", err)
	}
	if p.ClueCount() != 3 {
		t.Errorf("ClueCount = %d, want 3", p.ClueCount())
	}
	if err := p.SetClueCount(5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("second SetClueCount = %v, want ErrInvalidArgument", err)
	}

	p.ClearClues()
	if err := p.SetClueCount(1); err != nil {
		t.Errorf("SetClueCount after ClearClues: %v", err)
	}
}

func TestClueBounds(t *testing.T) {
	p := New()
	if err := p.SetClueCount(2); err != nil {
		t.Fatalf("SetClueCount: %v", err)
	}
	if err := p.SetClue(0, []byte("first")); err != nil {
		t.Fatalf("SetClue(0): %v", err)
	}
	got, err := p.Clue(0)
	if err != nil {
		t.Fatalf("Clue(0): %v", err)
	}
	if !bytes.Equal(got, []byte("first")) {
		t.Errorf("Clue(0) = %q, want %q", got, "first")
	}

	if _, err := p.Clue(2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Clue(2) on 2-slot puzzle = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetClue(-1, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetClue(-1) = %v, want ErrInvalidArgument", err)
	}
}

func TestGrbsAllZeroDiscarded(t *testing.T) {
	p := New()
	p.SetSize(2, 2)
	if err := p.SetGrbs([]byte{0, 0, 0, 0}); err != nil {
		t.Fatalf("SetGrbs: %v", err)
	}
	if p.HasRebus() {
		t.Errorf("HasRebus true for all-zero rebus grid")
	}

	if err := p.SetGrbs([]byte{0, 1, 0, 0}); err != nil {
		t.Fatalf("SetGrbs: %v", err)
	}
	if !p.HasRebus() {
		t.Errorf("HasRebus false for a nonzero rebus grid")
	}
}

func TestGrbsSizeMismatch(t *testing.T) {
	p := New()
	p.SetSize(2, 2)
	if err := p.SetGrbs([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetGrbs with wrong length = %v, want ErrInvalidArgument", err)
	}
}

func TestTimerFormatting(t *testing.T) {
	p := New()
	if p.HasTimer() {
		t.Fatalf("fresh puzzle reports HasTimer")
	}
	if err := p.SetTimer(125, true); err != nil {
		t.Fatalf("SetTimer: %v", err)
	}
	if !p.HasTimer() {
		t.Fatalf("HasTimer false after SetTimer")
	}
	elapsed, stopped, ok := p.Timer()
	if !ok || elapsed != 125 || !stopped {
		t.Errorf("Timer() = (%d, %v, %v), want (125, true, true)", elapsed, stopped, ok)
	}
	if !bytes.Equal(p.ltim, []byte("125,1")) {
		t.Errorf("serialized ltim = %q, want %q", p.ltim, "125,1")
	}

	p.ClearTimer()
	if p.HasTimer() {
		t.Errorf("HasTimer true after ClearTimer")
	}
}

func TestTimerZeroElapsed(t *testing.T) {
	p := New()
	if err := p.SetTimer(0, false); err != nil {
		t.Fatalf("SetTimer: %v", err)
	}
	if !bytes.Equal(p.ltim, []byte("0,0")) {
		t.Errorf("serialized ltim = %q, want %q", p.ltim, "0,0")
	}
}

func TestSetTimerRejectsNegative(t *testing.T) {
	p := New()
	if err := p.SetTimer(-1, false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetTimer(-1) = %v, want ErrInvalidArgument", err)
	}
}

func TestRusrTruncatesOversizedEntries(t *testing.T) {
	p := New()
	p.SetSize(2, 1)
	long := bytes.Repeat([]byte("x"), MaxRebusEntryLen+50)
	if err := p.SetRusr([][]byte{long, nil}); err != nil {
		t.Fatalf("SetRusr: %v", err)
	}
	if len(p.Rusr()[0]) != MaxRebusEntryLen {
		t.Errorf("rebus entry length = %d, want %d", len(p.Rusr()[0]), MaxRebusEntryLen)
	}
	if p.Rusr()[1] != nil {
		t.Errorf("empty rebus cell should remain nil")
	}
}

func TestLockClearRoundTrip(t *testing.T) {
	p := New()
	if p.IsLocked() {
		t.Fatalf("fresh puzzle reports locked")
	}
	p.Lock(0xBEEF)
	if !p.IsLocked() || p.LockedChecksum() != 0xBEEF {
		t.Errorf("Lock(0xBEEF): locked=%v cksum=%#x", p.IsLocked(), p.LockedChecksum())
	}
	p.Lock(0)
	if p.IsLocked() || p.LockedChecksum() != 0 {
		t.Errorf("Lock(0) did not clear: locked=%v cksum=%#x", p.IsLocked(), p.LockedChecksum())
	}
}

func TestRtblBytesJoin(t *testing.T) {
	p := New()
	if err := p.SetRebusCount(3); err != nil {
		t.Fatalf("SetRebusCount: %v", err)
	}
	_ = p.SetRebusEntry(0, []byte("0:CAT"))
	_ = p.SetRebusEntry(1, []byte("1:DOG"))
	_ = p.SetRebusEntry(2, []byte("2:BAT"))

	want := "0:CAT;1:DOG;2:BAT"
	if got := string(p.rtblBytes()); got != want {
		t.Errorf("rtblBytes = %q, want %q", got, want)
	}
}
