// Package osc implements the codec core of an Open Sound Control 1.1
// library: big-endian primitive encoding, the nine-type argument model, and
// message/bundle structural (de)serialization. It is transport-agnostic;
// see packages pattern, dispatch, slip, and transport for the rest of the
// stack built on top of it.
package osc

import (
	"net"
	"sync"

	"golang.org/x/exp/constraints"
)

// Send builds a message from pattern and args and sends it as a single
// UDP datagram to addr.
func Send(conn net.PacketConn, addr, pattern string, args ...Argument) error {
	nAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	msg := &Message{Pattern: pattern, Arguments: args}
	enc, err := msg.MarshalBinary()
	if err != nil {
		return err
	}
	b := getBuf()
	defer putBuf(b)
	b = append(b, enc...)
	_, err = conn.WriteTo(b, nAddr)
	return err
}

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 1024)
		return &b
	},
}

func getBuf() []byte {
	b := bufPool.Get().(*[]byte)
	return (*b)[:0]
}

func putBuf(b []byte) {
	bufPool.Put(&b)
}

// AsString returns a *String argument wrapping s.
func AsString(s string) *String {
	v := String(s)
	return &v
}

// AsInt32 returns a *Int32 argument holding i, converted from any integer
// type.
func AsInt32[T constraints.Integer](i T) *Int32 {
	v := Int32(i)
	return &v
}

// AsFloat32 returns a *Float32 argument holding f, converted from any
// floating-point type.
func AsFloat32[T constraints.Float](f T) *Float32 {
	v := Float32(f)
	return &v
}

// AsBlob returns a *Blob argument wrapping b.
func AsBlob(b []byte) *Blob {
	v := Blob(append([]byte(nil), b...))
	return &v
}

// AsBool returns an Argument (True{} or False{}) for v.
func AsBool(v bool) Argument {
	return NewBoolean(v)
}
