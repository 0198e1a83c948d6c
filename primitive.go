package osc

import (
	"bytes"
	"fmt"
)

// pad returns the number of zero bytes needed to bring n up to the next
// multiple of 4, the alignment rule used by every variable-length OSC
// field (strings and blobs).
func pad(n int) int {
	return (4 - n%4) % 4
}

// appendPaddedString appends s, a single trailing NUL, and zero padding out
// to the next 4-byte boundary.
func appendPaddedString(b []byte, s string) []byte {
	b = append(b, s...)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// consumePaddedString reads a NUL-terminated, zero-padded string from the
// front of b, returning the string and whatever follows the padding.
//
// The padding bytes themselves are not validated, only their count: a
// well-formed encoder always writes zeros, and a strict check buys nothing
// a corrupt datagram couldn't already break elsewhere.
func consumePaddedString(b []byte) (string, []byte, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", nil, fmt.Errorf("%w: unterminated string in %q", ErrInvalidMessage, b)
	}
	s := string(b[:end])
	total := end + 1
	rest := total + pad(total)
	if rest > len(b) {
		rest = len(b)
	}
	return s, b[rest:], nil
}
