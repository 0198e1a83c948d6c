package transport

import (
	"bufio"
	"context"
	"io"
	"log"
	"net"

	"github.com/sndctrl/osc"
	"github.com/sndctrl/osc/dispatch"
	"github.com/sndctrl/osc/slip"
)

// readChunk is how much the TCP reader tries to pull per syscall; SLIP
// framing handles whatever boundaries the kernel actually hands back.
const readChunk = 4096

// TCP serves SLIP-framed OSC packets over a stream connection, the
// supplement a pure UDP core needs for transports without natural datagram
// boundaries.
type TCP struct {
	conn  net.Conn
	space *dispatch.AddressSpace
}

// NewTCP returns a TCP transport reading from conn and dispatching into
// space.
func NewTCP(conn net.Conn, space *dispatch.AddressSpace) *TCP {
	return &TCP{conn: conn, space: space}
}

// Serve reads and SLIP-deframes packets until ctx is cancelled, the
// connection is closed, or a non-EOF read error occurs.
func (t *TCP) Serve(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			t.conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	var framer slip.Framer
	r := bufio.NewReaderSize(t.conn, readChunk)
	buf := make([]byte, readChunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			datagrams, decodeErrs := framer.Push(buf[:n])
			for _, derr := range decodeErrs {
				log.Printf("transport: dropped malformed SLIP datagram: %v", derr)
			}
			for _, dg := range datagrams {
				el, perr := osc.Decode(dg)
				if perr != nil {
					log.Printf("transport: invalid packet: %v", perr)
					continue
				}
				t.space.Dispatch(el, nil)
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// SendDatagram SLIP-frames el's wire encoding and writes it to w.
func SendDatagram(w io.Writer, el osc.Element) error {
	return slip.NewWriter(w).WriteDatagram(el.Append(nil))
}
