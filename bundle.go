package osc

import (
	"encoding/binary"
	"fmt"
)

const bundleTag = "#bundle"

// Element is the bundle-element sum type of §3: a Bundle's children are
// each either a *Message or a *Bundle.
type Element interface {
	Append(b []byte) []byte
	element()
}

func (*Bundle) element() {}

// Bundle is an OSC bundle: a time tag and an ordered list of elements.
// Every nested bundle's timetag must be greater than or equal to its
// parent's (§3, invariant 4).
type Bundle struct {
	TimeTag  TimeTag
	Elements []Element
}

// ParseBundle decodes a Bundle from buf, recursively decoding and
// validating each element.
func ParseBundle(buf []byte) (*Bundle, error) {
	tag, buf, err := consumePaddedString(buf)
	if err != nil {
		return nil, fmt.Errorf("reading bundle tag: %w", err)
	}
	if tag != bundleTag {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrInvalidBundle, bundleTag, tag)
	}

	var tt TimeTag
	buf, err = (&tt).Consume(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: reading timetag: %v", ErrInvalidBundle, err)
	}

	b := &Bundle{TimeTag: tt}
	for len(buf) > 0 {
		if len(buf) < 4 {
			return nil, fmt.Errorf("%w: truncated element size", ErrInvalidBundle)
		}
		size := int32(binary.BigEndian.Uint32(buf))
		buf = buf[4:]
		if size < 0 || int(size) > len(buf) {
			return nil, fmt.Errorf("%w: invalid element size %d", ErrInvalidBundle, size)
		}
		elemBuf := buf[:size]
		buf = buf[size:]

		el, err := Decode(elemBuf)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding element: %v", ErrInvalidBundle, err)
		}
		if sub, ok := el.(*Bundle); ok && sub.TimeTag.Before(tt) {
			return nil, fmt.Errorf("%w: nested bundle timetag %v precedes parent %v", ErrInvalidBundle, sub.TimeTag, tt)
		}
		b.Elements = append(b.Elements, el)
	}
	return b, nil
}

// Append encodes b and appends it to buf, with no validation (see
// Message.Append).
func (b *Bundle) Append(buf []byte) []byte {
	buf = appendPaddedString(buf, bundleTag)
	buf = b.TimeTag.Append(buf)
	for _, el := range b.Elements {
		encoded := el.Append(nil)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(encoded)))
		buf = append(buf, encoded...)
	}
	return buf
}

// MarshalBinary validates b, recursively checking string arguments and
// bundle timetag monotonicity, then encodes it. This enforces on the
// encode side the same invariant ParseBundle enforces on decode (see
// SPEC_FULL.md §5).
func (b *Bundle) MarshalBinary() ([]byte, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b.Append(nil), nil
}

func (b *Bundle) validate() error {
	for _, el := range b.Elements {
		switch e := el.(type) {
		case *Message:
			for _, a := range e.Arguments {
				if s, ok := a.(*String); ok {
					if err := s.validate(); err != nil {
						return err
					}
				}
			}
		case *Bundle:
			if e.TimeTag.Before(b.TimeTag) {
				return fmt.Errorf("%w: nested bundle timetag %v precedes parent %v", ErrInvalidBundle, e.TimeTag, b.TimeTag)
			}
			if err := e.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Bundle) String() string {
	return fmt.Sprintf("Bundle{%v, %d elements}", b.TimeTag, len(b.Elements))
}
