// Package puz implements the Across Lite ".puz" crossword file format.
//
// puz is a single-file, memory-mappable container: a fixed 52-byte header,
// a flat solution/grid board, three NUL-terminated metadata strings, a
// clue list, optional notes, and a tail of optional tagged sections (GRBS/
// RTBL rebus data, LTIM timer, GEXT circled-square extras, RUSR user rebus
// entries). Integrity is checked with a family of rotate-and-sum checksums
// and a masked-magic-byte derivation, not a CRC.
//
// The package also reads the plain-text sibling dialect (delimited by
// "<ACROSS PUZZLE>", "<TITLE>", ... markers) into the same in-memory model.
package puz
