package osc

import "fmt"

// Decode parses a single OSC packet — a Message or a Bundle, chosen by the
// datagram's leading byte ('/' or '#') — per §4.3's packet dispatcher.
func Decode(buf []byte) (Element, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty packet", ErrInvalidPacket)
	}
	switch buf[0] {
	case '/':
		return ParseMessage(buf)
	case '#':
		return ParseBundle(buf)
	default:
		return nil, fmt.Errorf("%w: leading byte %q", ErrInvalidPacket, buf[0])
	}
}
