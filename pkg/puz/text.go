package puz

import "fmt"

type textState int

const (
	stateInit textState = iota
	stateFile
	stateTitle
	stateAuthor
	stateCopyright
	stateSize
	stateGrid
	stateClue0
	stateClue1
	stateFinal
)

// textMagics[s] is the literal line that transitions INTO state s (out of
// state s-1). Index 0 is unused (stateInit has no predecessor magic).
var textMagics = [][]byte{
	nil,
	[]byte("<ACROSS PUZZLE>"),
	[]byte("<TITLE>"),
	[]byte("<AUTHOR>"),
	[]byte("<COPYRIGHT>"),
	[]byte("<SIZE>"),
	[]byte("<GRID>"),
	[]byte("<ACROSS>"),
	[]byte("<DOWN>"),
}

func loadText(data []byte) (*Puzzle, []string, error) {
	p := New()
	state := stateInit
	var bucket [][]byte
	cursor := data

	for state != stateFinal {
		line, rest, ok := splitLine(cursor)
		cursor = rest

		if ok && len(line) > 0 && line[0] == textSubmagic && int(state)+1 < len(textMagics) {
			want := textMagics[state+1]
			if !bytesEqual(line, want) {
				return nil, nil, fmt.Errorf("%w: expected magic %q in state %d, got %q", ErrMalformedBody, want, state, line)
			}
			if err := p.applyTextState(state, bucket); err != nil {
				return nil, nil, err
			}
			if state != stateClue0 {
				bucket = nil
			}
			state++
			continue
		}

		if ok {
			bucket = append(bucket, line)
		}

		if len(cursor) == 0 {
			if err := p.applyTextState(state, bucket); err != nil {
				return nil, nil, err
			}
			if state != stateClue0 {
				bucket = nil
			}
			state++
		}
	}

	return p, nil, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// applyTextState processes the accumulated bucket of lines as the state is
// exited.
func (p *Puzzle) applyTextState(state textState, bucket [][]byte) error {
	switch state {
	case stateInit, stateFile:
		// no content to process
	case stateTitle:
		p.title = concatLines(bucket)
	case stateAuthor:
		p.author = concatLines(bucket)
	case stateCopyright:
		p.copyright = concatLines(bucket)
	case stateSize:
		if len(bucket) == 0 {
			return fmt.Errorf("%w: missing <SIZE> line", ErrMalformedBody)
		}
		w, h, err := parseSize(bucket[0])
		if err != nil {
			return err
		}
		p.SetSize(w, h)
	case stateGrid:
		bd := p.boardSize()
		grid := concatLines(bucket)
		if len(grid) != bd {
			return fmt.Errorf("%w: grid has %d cells, expected %d", ErrMalformedBody, len(grid), bd)
		}
		p.solution = grid
		p.grid = mkGrid(grid)
	case stateClue0:
		// The bucket is deliberately not processed (or cleared) here: it
		// carries the across clues forward so stateClue1's exit can
		// process the full across+down concatenation as one list.
	case stateClue1:
		if err := p.setClues(bucket); err != nil {
			return err
		}
	}
	return nil
}

// setClues appends bucket to the clue list directly, bypassing
// SetClueCount's one-shot guard. It runs once, at stateClue1's exit, with
// the <ACROSS> and <DOWN> lines together in one bucket.
func (p *Puzzle) setClues(bucket [][]byte) error {
	p.clues = append(p.clues, bucket...)
	p.clueCount = uint16(len(p.clues))
	p.clueCapSet = true
	return nil
}

// concatLines joins bucket with no separator, matching load.c's
// line_concat: used for TITLE/AUTHOR/COPYRIGHT and the grid block alike.
func concatLines(bucket [][]byte) []byte {
	var out []byte
	for _, l := range bucket {
		out = append(out, l...)
	}
	return out
}

func parseSize(line []byte) (w, h uint8, err error) {
	x := -1
	for i, c := range line {
		if c == 'x' || c == 'X' {
			x = i
			break
		}
	}
	if x < 0 {
		return 0, 0, fmt.Errorf("%w: malformed <SIZE> line %q", ErrMalformedBody, line)
	}
	wv, err := parseDecimal(line[:x])
	if err != nil {
		return 0, 0, err
	}
	hv, err := parseDecimal(line[x+1:])
	if err != nil {
		return 0, 0, err
	}
	return uint8(wv), uint8(hv), nil
}

func parseDecimal(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("%w: empty numeric field", ErrMalformedBody)
	}
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: non-decimal byte in %q", ErrMalformedBody, b)
		}
		v = v*10 + int(c-'0')
	}
	return v, nil
}

// mkGrid derives the fill-in grid from a solution: every non-black cell
// becomes '-' (empty), black cells ('.') are preserved.
func mkGrid(solution []byte) []byte {
	out := make([]byte, len(solution))
	for i, c := range solution {
		if c == '.' {
			out[i] = '.'
		} else {
			out[i] = '-'
		}
	}
	return out
}

// splitLine consumes one line from buf, trimming leading whitespace (other
// than the line terminator itself) and trailing whitespace, and
// recognizing \n, \r, \r\n, and \n\r as line terminators. ok is false only
// when buf has nothing left to yield.
func splitLine(buf []byte) (line []byte, rest []byte, ok bool) {
	i := 0
	for i < len(buf) && isSpaceNotNewline(buf[i]) {
		i++
	}
	buf = buf[i:]
	if len(buf) == 0 {
		return nil, nil, false
	}

	j := 0
	for j < len(buf) && buf[j] != '\r' && buf[j] != '\n' {
		j++
	}
	content := buf[:j]

	var skip int
	switch {
	case j >= len(buf):
		skip = 0
	case buf[j] == '\r' && j+1 < len(buf) && buf[j+1] == '\n':
		skip = 2
	case buf[j] == '\n' && j+1 < len(buf) && buf[j+1] == '\r':
		skip = 2
	default:
		skip = 1
	}

	e := len(content)
	for e > 0 && isSpaceByte(content[e-1]) {
		e--
	}
	content = content[:e]

	rest = buf[j+skip:]
	return content, rest, true
}

func isSpaceNotNewline(c byte) bool {
	return c == ' ' || c == '\t'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
