package puz

import (
	"bytes"
	"errors"
	"testing"
)

func TestUint16RoundTrip(t *testing.T) {
	cases := []uint16{0, 1, 0xFF, 0x1234, 0xFFFF}
	for _, v := range cases {
		buf := make([]byte, 4)
		putUint16(buf, 1, v)
		got, err := readUint16(buf, 1)
		if err != nil {
			t.Fatalf("readUint16(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("readUint16 = %d, want %d", got, v)
		}
	}
}

func TestReadUint16OutOfBounds(t *testing.T) {
	buf := make([]byte, 2)
	if _, err := readUint16(buf, 1); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
	if _, err := readUint16(buf, -1); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader for negative offset, got %v", err)
	}
}

func TestCStringRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte("with spaces and punctuation!"),
	}
	for _, v := range cases {
		dst := appendCString([]byte("prefix"), v)
		got, next, err := readCString(dst, len("prefix"))
		if err != nil {
			t.Fatalf("readCString(%q): %v", v, err)
		}
		if !bytes.Equal(got, v) {
			t.Errorf("readCString = %q, want %q", got, v)
		}
		if next != len(dst) {
			t.Errorf("next = %d, want %d", next, len(dst))
		}
	}
}

func TestReadCStringUnterminated(t *testing.T) {
	buf := []byte("no nul here")
	if _, _, err := readCString(buf, 0); !errors.Is(err, ErrMalformedBody) {
		t.Errorf("expected ErrMalformedBody, got %v", err)
	}
}

func TestReadCStringOffsetPastEnd(t *testing.T) {
	buf := []byte("abc")
	if _, _, err := readCString(buf, 10); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}
