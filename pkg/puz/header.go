package puz

import "fmt"

// Binary header field offsets (see puz.h's puz_head_t). Total size is
// HeaderSize (0x34) bytes.
const (
	offChecksumPUZ    = 0x00
	offMagic          = 0x02
	offChecksumCIB    = 0x0E
	offMagic10        = 0x10
	offMagic14        = 0x14
	offVersion        = 0x18
	offNoise1C        = 0x1C
	offScrambledCksum = 0x1E
	offNoise20        = 0x20 // 12 bytes of unused/noise fields, 0x20..0x2B
	offWidth          = 0x2C
	offHeight         = 0x2D
	offClueCount      = 0x2E
	offXUnk30         = 0x30
	offScrambledTag   = 0x32
)

// parseHeader reads the fixed header at the front of buf into p. It does
// not validate checksums — that's the validator's job — only that the
// file magic matches. The version field is copied as-is, unchecked.
func (p *Puzzle) parseHeader(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("%w: file of %d bytes is shorter than the %d-byte header", ErrMalformedHeader, len(buf), HeaderSize)
	}

	var err error
	if p.checksumPUZField, err = readUint16(buf, offChecksumPUZ); err != nil {
		return err
	}
	var magic [12]byte
	copy(magic[:], buf[offMagic:offMagic+12])
	if magic != fileMagic {
		return fmt.Errorf("%w: bad file magic", ErrMalformedHeader)
	}
	if p.checksumCIBField, err = readUint16(buf, offChecksumCIB); err != nil {
		return err
	}
	copy(p.magic10[:], buf[offMagic10:offMagic10+4])
	copy(p.magic14[:], buf[offMagic14:offMagic14+4])
	copy(p.version[:], buf[offVersion:offVersion+4])
	if p.scrambledCksum, err = readUint16(buf, offScrambledCksum); err != nil {
		return err
	}
	p.width = buf[offWidth]
	p.height = buf[offHeight]
	if p.clueCount, err = readUint16(buf, offClueCount); err != nil {
		return err
	}
	if p.xUnk30, err = readUint16(buf, offXUnk30); err != nil {
		return err
	}
	if p.scrambledTag, err = readUint16(buf, offScrambledTag); err != nil {
		return err
	}
	return nil
}

// writeHeader serializes the fixed header into buf[0:HeaderSize]. The
// noise fields (0x1C and 0x20..0x2B) are always zeroed: this design never
// gives a caller a way to set them, matching the original's puz_init.
func (p *Puzzle) writeHeader(buf []byte) {
	putUint16(buf, offChecksumPUZ, p.checksumPUZField)
	copy(buf[offMagic:offMagic+12], fileMagic[:])
	putUint16(buf, offChecksumCIB, p.checksumCIBField)
	copy(buf[offMagic10:offMagic10+4], p.magic10[:])
	copy(buf[offMagic14:offMagic14+4], p.magic14[:])
	copy(buf[offVersion:offVersion+4], p.version[:])
	putUint16(buf, offNoise1C, 0)
	putUint16(buf, offScrambledCksum, p.scrambledCksum)
	for i := 0; i < 12; i++ {
		buf[offNoise20+i] = 0
	}
	buf[offWidth] = p.width
	buf[offHeight] = p.height
	putUint16(buf, offClueCount, p.clueCount)
	putUint16(buf, offXUnk30, p.xUnk30)
	putUint16(buf, offScrambledTag, p.scrambledTag)
}
