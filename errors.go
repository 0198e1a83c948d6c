package osc

import "errors"

// The error taxonomy is closed: every decode or encode failure in this
// package wraps exactly one of these sentinels, so callers can test with
// errors.Is instead of string matching.
var (
	// ErrStringEncodingFailure is returned when a String argument's bytes
	// are not valid UTF-8.
	ErrStringEncodingFailure = errors.New("osc: string is not valid UTF-8")
	// ErrInvalidArgumentList is returned when a type-tag string is empty,
	// missing its leading comma, or contains an unrecognized tag.
	ErrInvalidArgumentList = errors.New("osc: invalid argument type-tag list")
	// ErrInvalidMessage is returned for a malformed or truncated message.
	ErrInvalidMessage = errors.New("osc: invalid message")
	// ErrInvalidBundle is returned for a bad #bundle marker, an invalid
	// nested element, or a timetag monotonicity violation.
	ErrInvalidBundle = errors.New("osc: invalid bundle")
	// ErrInvalidPacket is returned when a datagram's leading byte is
	// neither '/' nor '#', or the datagram is empty.
	ErrInvalidPacket = errors.New("osc: invalid packet")
)
