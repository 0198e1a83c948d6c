package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// Argument is an OSC-encodable value: one of the nine OSC 1.1 argument
// kinds. Every concrete type carries exactly one type-tag character on the
// wire.
type Argument interface {
	// TypeTag returns the single character identifying this argument's
	// kind in a type-tag string.
	TypeTag() byte
	// Append appends the argument's wire representation to b.
	Append(b []byte) []byte
	// Consume fills in the argument from the front of b, returning
	// whatever remains after it (including any padding).
	Consume(b []byte) ([]byte, error)
}

// Int32 is the OSC int32: a 32-bit big-endian two's complement integer.
type Int32 int32

func (Int32) TypeTag() byte { return 'i' }

func (i Int32) Append(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(i))
}

func (i *Int32) Consume(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: int32 needs 4 bytes, got %d", ErrInvalidMessage, len(b))
	}
	*i = Int32(binary.BigEndian.Uint32(b))
	return b[4:], nil
}

func (i Int32) String() string { return fmt.Sprintf("Int32(%d)", i) }

// Float32 is a 32-bit big-endian IEEE 754 floating point number.
type Float32 float32

func (Float32) TypeTag() byte { return 'f' }

func (f Float32) Append(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, math.Float32bits(float32(f)))
}

func (f *Float32) Consume(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: float32 needs 4 bytes, got %d", ErrInvalidMessage, len(b))
	}
	*f = Float32(math.Float32frombits(binary.BigEndian.Uint32(b)))
	return b[4:], nil
}

func (f Float32) String() string { return fmt.Sprintf("Float32(%f)", f) }

// String is a NUL-terminated, zero-padded UTF-8 string.
type String string

func (String) TypeTag() byte { return 's' }

func (s String) Append(b []byte) []byte {
	return appendPaddedString(b, string(s))
}

func (s *String) Consume(b []byte) ([]byte, error) {
	v, rest, err := consumePaddedString(b)
	if err != nil {
		return nil, err
	}
	*s = String(v)
	return rest, nil
}

func (s String) String() string { return fmt.Sprintf("String(%q)", string(s)) }

// validate reports whether s's bytes are encodable, per §4.1: the encoder
// must fail rather than emit invalid UTF-8.
func (s String) validate() error {
	if !utf8.ValidString(string(s)) {
		return fmt.Errorf("%w: %q", ErrStringEncodingFailure, string(s))
	}
	return nil
}

// Blob is an opaque, length-prefixed, zero-padded byte string.
type Blob []byte

func (Blob) TypeTag() byte { return 'b' }

func (bl Blob) Append(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(bl)))
	b = append(b, bl...)
	for i := pad(len(bl)); i > 0; i-- {
		b = append(b, 0)
	}
	return b
}

func (bl *Blob) Consume(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: blob length needs 4 bytes, got %d", ErrInvalidMessage, len(b))
	}
	n := int32(binary.BigEndian.Uint32(b))
	if n < 0 {
		return nil, fmt.Errorf("%w: negative blob length %d", ErrInvalidMessage, n)
	}
	b = b[4:]
	if len(b) < int(n) {
		return nil, fmt.Errorf("%w: blob needs %d bytes, got %d", ErrInvalidMessage, n, len(b))
	}
	cp := make(Blob, n)
	copy(cp, b[:n])
	*bl = cp
	end := int(n) + pad(int(n))
	if end > len(b) {
		end = len(b)
	}
	return b[end:], nil
}

func (bl Blob) String() string { return fmt.Sprintf("Blob(%d bytes)", len(bl)) }

// ntpEpoch is the origin of OSC/NTP time tags: midnight, 1 January 1900 UTC.
var ntpEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeTag is an NTP-epoch 64-bit fixed point time tag: a (seconds,
// picoseconds) pair counted from ntpEpoch. The reserved value (0, 1) means
// "execute immediately".
type TimeTag struct {
	Seconds     uint32
	Picoseconds uint32
}

func (TimeTag) TypeTag() byte { return 't' }

func (t TimeTag) Append(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, t.Seconds)
	b = binary.BigEndian.AppendUint32(b, t.Picoseconds)
	return b
}

func (t *TimeTag) Consume(b []byte) ([]byte, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("%w: timetag needs 8 bytes, got %d", ErrInvalidMessage, len(b))
	}
	t.Seconds = binary.BigEndian.Uint32(b)
	t.Picoseconds = binary.BigEndian.Uint32(b[4:])
	return b[8:], nil
}

func (t TimeTag) String() string {
	if t.Immediate() {
		return "TimeTag(immediate)"
	}
	return fmt.Sprintf("TimeTag(%v)", t.Time())
}

// Immediate reports whether t is the reserved "execute immediately" value.
func (t TimeTag) Immediate() bool {
	return t.Seconds == 0 && t.Picoseconds == 1
}

// Before reports whether t is strictly earlier than o, comparing the full
// (seconds, picoseconds) pair rather than any derived floating-point value.
func (t TimeTag) Before(o TimeTag) bool {
	if t.Seconds != o.Seconds {
		return t.Seconds < o.Seconds
	}
	return t.Picoseconds < o.Picoseconds
}

// Time converts t to a wall-clock instant, using seconds +
// picoseconds/2^32 as the real-valued second count since the NTP epoch.
func (t TimeTag) Time() time.Time {
	frac := float64(t.Picoseconds) / (1 << 32)
	return ntpEpoch.Add(time.Duration(float64(t.Seconds)*float64(time.Second)) +
		time.Duration(frac*float64(time.Second)))
}

// Now returns the current time as a TimeTag.
func Now() TimeTag {
	return FromTime(time.Now())
}

// FromTime converts a wall-clock instant to a TimeTag.
func FromTime(t time.Time) TimeTag {
	d := t.Sub(ntpEpoch).Seconds()
	if d <= 0 {
		return TimeTag{}
	}
	whole := math.Floor(d)
	frac := d - whole
	return TimeTag{
		Seconds:     uint32(whole),
		Picoseconds: uint32(frac * (1 << 32)),
	}
}

// True is a boolean true; it carries no data on the wire.
type True struct{}

func (True) TypeTag() byte                    { return 'T' }
func (True) Append(b []byte) []byte           { return b }
func (True) Consume(b []byte) ([]byte, error) { return b, nil }
func (True) String() string                   { return "True" }

// False is a boolean false; it carries no data on the wire.
type False struct{}

func (False) TypeTag() byte                    { return 'F' }
func (False) Append(b []byte) []byte           { return b }
func (False) Consume(b []byte) ([]byte, error) { return b, nil }
func (False) String() string                   { return "False" }

// Null represents the OSC Nil value.
type Null struct{}

func (Null) TypeTag() byte                    { return 'N' }
func (Null) Append(b []byte) []byte           { return b }
func (Null) Consume(b []byte) ([]byte, error) { return b, nil }
func (Null) String() string                   { return "Null" }

// Impulse is the OSC "bang" value (Infinitum in OSC 1.0).
type Impulse struct{}

func (Impulse) TypeTag() byte                    { return 'I' }
func (Impulse) Append(b []byte) []byte           { return b }
func (Impulse) Consume(b []byte) ([]byte, error) { return b, nil }
func (Impulse) String() string                   { return "Impulse" }

// NewBoolean returns True{} or False{} for v. The source format declares a
// separate Boolean(bool) variant; this package canonicalizes it to one of
// the two wire types at construction time so only two boolean values ever
// exist at the model layer (see DESIGN.md).
func NewBoolean(v bool) Argument {
	if v {
		return True{}
	}
	return False{}
}

// newByTypeTag constructs a zero-valued Argument for a wire type-tag
// character, or nil if the tag is unrecognized.
func newByTypeTag(tag byte) Argument {
	switch tag {
	case 'i':
		return new(Int32)
	case 'f':
		return new(Float32)
	case 's':
		return new(String)
	case 'b':
		return new(Blob)
	case 't':
		return new(TimeTag)
	case 'T':
		return True{}
	case 'F':
		return False{}
	case 'N':
		return Null{}
	case 'I':
		return Impulse{}
	}
	return nil
}
