// Package slip implements RFC 1055 SLIP byte-stuffing framing, used to
// delimit OSC datagrams on stream transports (TCP) the way UDP's own
// datagram boundaries do for free.
package slip

import (
	"errors"
	"fmt"
)

// Byte constants from RFC 1055.
const (
	END    = 0xC0
	ESC    = 0xDB
	ESCEND = 0xDC
	ESCESC = 0xDD
)

// ErrDecodingFailure is returned by Decode and the Framer when a byte
// stream contains a malformed escape sequence: an ESC not followed by
// ESCEND or ESCESC, or a dangling ESC at end of input.
var ErrDecodingFailure = errors.New("slip: decoding failure")

// Encode appends the SLIP encoding of datagram to b: every END byte
// becomes ESC,ESCEND, every ESC byte becomes ESC,ESCESC, followed by a
// single trailing END. Encoding never fails; all 256 byte values are
// representable.
func Encode(b []byte, datagram []byte) []byte {
	for _, c := range datagram {
		switch c {
		case END:
			b = append(b, ESC, ESCEND)
		case ESC:
			b = append(b, ESC, ESCESC)
		default:
			b = append(b, c)
		}
	}
	return append(b, END)
}

// Decode SLIP-decodes a single framed datagram from b. A trailing END byte
// is dropped if present; its absence is not an error. The streaming Framer
// passes each frame with its END still attached.
func Decode(b []byte) ([]byte, error) {
	if n := len(b); n > 0 && b[n-1] == END {
		b = b[:n-1]
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != ESC {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(b) {
			return nil, fmt.Errorf("%w: dangling escape at end of input", ErrDecodingFailure)
		}
		switch b[i] {
		case ESCEND:
			out = append(out, END)
		case ESCESC:
			out = append(out, ESC)
		default:
			return nil, fmt.Errorf("%w: invalid escape sequence ESC,%#x", ErrDecodingFailure, b[i])
		}
	}
	return out, nil
}
