package osc

import (
	"fmt"
)

// Message is an OSC message: an address pattern followed by zero or more
// arguments.
type Message struct {
	// Pattern is the address pattern, a string beginning with "/". When
	// sent by a client it may contain wildcards; a registered method's
	// address never does (see package pattern).
	Pattern string
	// Arguments holds the message's argument values, in wire order.
	Arguments []Argument
}

func (*Message) element() {}

// ParseMessage decodes a Message from buf. Trailing bytes beyond the last
// argument are ignored; stream framing (package slip) is responsible for
// datagram boundaries.
func ParseMessage(buf []byte) (*Message, error) {
	addr, buf, err := consumePaddedString(buf)
	if err != nil {
		return nil, fmt.Errorf("reading address pattern: %w", err)
	}
	if len(addr) == 0 || addr[0] != '/' {
		return nil, fmt.Errorf("%w: address pattern %q must start with '/'", ErrInvalidMessage, addr)
	}

	tt, buf, err := consumePaddedString(buf)
	if err != nil {
		return nil, fmt.Errorf("reading type tag string: %w", err)
	}
	tags, err := parseTypeTagString(tt)
	if err != nil {
		return nil, err
	}

	args := make([]Argument, len(tags))
	for i, tag := range tags {
		a := newByTypeTag(tag)
		buf, err = a.Consume(buf)
		if err != nil {
			return nil, fmt.Errorf("reading argument %d (%c): %w", i, tag, err)
		}
		args[i] = a
	}

	return &Message{Pattern: addr, Arguments: args}, nil
}

// Append encodes m and appends it to b, with no validation: it assumes the
// pattern and arguments are already well-formed. Used internally for bundle
// nesting and by callers that have already validated via MarshalBinary.
func (m *Message) Append(b []byte) []byte {
	b = appendPaddedString(b, m.Pattern)

	typeTag := make([]byte, 0, len(m.Arguments)+1)
	typeTag = append(typeTag, ',')
	for _, a := range m.Arguments {
		typeTag = append(typeTag, a.TypeTag())
	}
	b = appendPaddedString(b, string(typeTag))

	for _, a := range m.Arguments {
		b = a.Append(b)
	}
	return b
}

// MarshalBinary validates m and encodes it. It fails with ErrInvalidMessage
// if the pattern is empty or doesn't start with "/", and with
// ErrStringEncodingFailure if any String argument is not valid UTF-8.
func (m *Message) MarshalBinary() ([]byte, error) {
	if len(m.Pattern) == 0 || m.Pattern[0] != '/' {
		return nil, fmt.Errorf("%w: address pattern %q must start with '/'", ErrInvalidMessage, m.Pattern)
	}
	for _, a := range m.Arguments {
		if s, ok := a.(*String); ok {
			if err := s.validate(); err != nil {
				return nil, err
			}
		}
	}
	return m.Append(nil), nil
}

func (m *Message) String() string {
	return fmt.Sprintf("Message{%q, %v}", m.Pattern, m.Arguments)
}
