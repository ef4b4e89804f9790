package puz

import "fmt"

// canonicalPositions returns, in column-major order (down each column,
// left to right), the indices into p.solution of every non-black ('.')
// cell. This is the traversal order the scrambling cipher operates over.
//
// OQ-2: indexed as solution[y*W+x] (row y, column x) — the original's
// formatted_solution used sol[j*h+i], which is wrong whenever width and
// height differ. See scramble_test.go's non-square regression test.
func (p *Puzzle) canonicalPositions() []int {
	w, h := int(p.width), int(p.height)
	positions := make([]int, 0, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			idx := y*w + x
			if p.solution[idx] != '.' {
				positions = append(positions, idx)
			}
		}
	}
	return positions
}

// canonicalString gathers the solution letters named by positions into a
// flat byte slice in traversal order.
func canonicalString(solution []byte, positions []int) []byte {
	out := make([]byte, len(positions))
	for i, idx := range positions {
		out[i] = solution[idx]
	}
	return out
}

// scatterCanonical writes s back into solution at the cells named by
// positions, in traversal order.
func scatterCanonical(solution []byte, positions []int, s []byte) {
	for i, idx := range positions {
		solution[idx] = s[i]
	}
}

// deinterleaveHalves is the "unscramble step": out[dest(i)] = in[i], where
// dest splits the string into its odd-indexed elements (in order) followed
// by its even-indexed elements (in order). Used during Unlock; this is the
// operation the original's unscramble_string performs.
func deinterleaveHalves(dst, src []byte) {
	l := len(src)
	half := l / 2
	for i := 0; i < l; i++ {
		var dest int
		if i%2 == 0 {
			dest = half + i/2
		} else {
			dest = i / 2
		}
		dst[dest] = src[i]
	}
}

// interleaveHalves is the "scramble step", the mathematical inverse of
// deinterleaveHalves: out[i] = in[dest(i)]. It interleaves the two halves
// of in with the second half first, used by Scramble.
func interleaveHalves(dst, src []byte) {
	l := len(src)
	half := l / 2
	for i := 0; i < l; i++ {
		var from int
		if i%2 == 0 {
			from = half + i/2
		} else {
			from = i / 2
		}
		dst[i] = src[from]
	}
}

// shiftBytes rotates src so its prefix of length k moves to the end:
// dst = src[k:] + src[:k]. k is taken modulo len(src), so a shift longer
// than the string wraps around.
func shiftBytes(dst, src []byte, k int) {
	l := len(src)
	if l == 0 {
		return
	}
	k %= l
	copy(dst, src[k:])
	copy(dst[l-k:], src[:k])
}

// unshiftBytes is shiftBytes's inverse: dst = src[l-k:] + src[:l-k], with
// k likewise taken modulo len(src).
func unshiftBytes(dst, src []byte, k int) {
	l := len(src)
	if l == 0 {
		return
	}
	k %= l
	copy(dst, src[l-k:])
	copy(dst[k:], src[:l-k])
}

// codeDigits splits a 4-digit unlock code into its decimal digits, in
// thousands..units order, rejecting any digit of zero.
func codeDigits(code int) ([4]int, error) {
	if code < 1111 || code > 9999 {
		return [4]int{}, fmt.Errorf("%w: unlock code %d out of range [1111,9999]", ErrInvalidArgument, code)
	}
	d := [4]int{code / 1000 % 10, code / 100 % 10, code / 10 % 10, code % 10}
	for _, v := range d {
		if v == 0 {
			return [4]int{}, fmt.Errorf("%w: unlock code %d contains a zero digit", ErrInvalidArgument, code)
		}
	}
	return d, nil
}

// Scramble locks the puzzle's current plaintext solution using code,
// recording the checksum of the plaintext so Unlock can verify success.
// code must be a 4-digit value with no zero digit (1111..9999 excluding
// any digit of zero).
func (p *Puzzle) Scramble(code int) error {
	if p.IsLocked() {
		return fmt.Errorf("%w: puzzle is already locked", ErrInvalidArgument)
	}
	digits, err := codeDigits(code)
	if err != nil {
		return err
	}

	positions := p.canonicalPositions()
	if len(positions) < 2 {
		return fmt.Errorf("%w: fewer than two non-black cells to scramble", ErrInvalidArgument)
	}
	plain := canonicalString(p.solution, positions)
	cksum := checksumRegion(plain, 0)

	w := append([]byte(nil), plain...)
	tmp := make([]byte, len(w))
	for i := 0; i < 4; i++ {
		for j := range w {
			w[j] = 'A' + (w[j]-'A'+byte(digits[j%4]))%26
		}
		shiftBytes(tmp, w, digits[i])
		w, tmp = tmp, w
		interleaveHalves(tmp, w)
		w, tmp = tmp, w
	}

	scatterCanonical(p.solution, positions, w)
	p.Lock(cksum)
	return nil
}

// Unlock attempts to unscramble the puzzle's solution using code. On
// success it replaces the scrambled solution with the recovered plaintext
// and clears the lock. Possible errors are ErrNotLocked (puzzle wasn't
// scrambled), ErrInvalidArgument (malformed code), and ErrWrongKey (code
// doesn't match the scrambled checksum).
func (p *Puzzle) Unlock(code int) error {
	if !p.IsLocked() {
		return ErrNotLocked
	}
	digits, err := codeDigits(code)
	if err != nil {
		return err
	}

	positions := p.canonicalPositions()
	w := canonicalString(p.solution, positions)
	tmp := make([]byte, len(w))

	for i := 3; i >= 0; i-- {
		deinterleaveHalves(tmp, w)
		w, tmp = tmp, w
		unshiftBytes(tmp, w, digits[i])
		w, tmp = tmp, w
		for j := range w {
			w[j] = w[j] - byte(digits[j%4])
			if w[j] < 'A' {
				w[j] += 26
			}
		}
	}

	if checksumRegion(w, 0) != p.LockedChecksum() {
		return ErrWrongKey
	}

	scatterCanonical(p.solution, positions, w)
	p.Lock(0)
	return nil
}

// BruteForceUnlock tries every valid 4-digit code (1111..9999, skipping any
// with a zero digit) and unlocks the puzzle with the first one that
// matches. It returns the code that worked.
func (p *Puzzle) BruteForceUnlock() (int, error) {
	if !p.IsLocked() {
		return 0, ErrNotLocked
	}
	for thousands := 1; thousands <= 9; thousands++ {
		for hundreds := 1; hundreds <= 9; hundreds++ {
			for tens := 1; tens <= 9; tens++ {
				for units := 1; units <= 9; units++ {
					code := thousands*1000 + hundreds*100 + tens*10 + units
					if err := p.Unlock(code); err == nil {
						return code, nil
					} else if err != ErrWrongKey {
						return 0, err
					}
				}
			}
		}
	}
	return 0, ErrWrongKey
}
