// Package transport wires the core codec, dispatcher, and SLIP framer to
// real sockets. It is intentionally thin: every decision about what counts
// as a match or how a bundle fans out lives in package dispatch, not here.
package transport

import (
	"context"
	"log"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sndctrl/osc"
	"github.com/sndctrl/osc/dispatch"
)

// maxDatagram is large enough for any UDP payload; OSC never needs more.
const maxDatagram = 1 << 16

// UDP serves OSC packets over a connected or bound net.PacketConn, handing
// each decoded packet to an AddressSpace. Each worker goroutine decodes and
// dispatches independently, so handlers for different datagrams may run
// concurrently; ordering within a single datagram's bundle fan-out is still
// preserved by AddressSpace.Dispatch.
type UDP struct {
	conn    net.PacketConn
	space   *dispatch.AddressSpace
	workers int
}

// NewUDP returns a UDP transport reading from conn and dispatching into
// space. workers sets how many decode/dispatch goroutines run concurrently;
// values less than 1 are treated as 1.
func NewUDP(conn net.PacketConn, space *dispatch.AddressSpace, workers int) *UDP {
	if workers < 1 {
		workers = 1
	}
	return &UDP{conn: conn, space: space, workers: workers}
}

// Serve reads datagrams until ctx is cancelled or the connection errors.
func (u *UDP) Serve(ctx context.Context) error {
	type packet struct {
		buf  []byte
		addr net.Addr
	}
	recv := make(chan packet, 64)
	g, gctx := errgroup.WithContext(ctx)

	// Unblock a pending ReadFrom once the group is cancelled.
	g.Go(func() error {
		<-gctx.Done()
		u.conn.SetReadDeadline(time.Now())
		return nil
	})

	g.Go(func() error {
		defer close(recv)
		buf := make([]byte, maxDatagram)
		for {
			n, addr, err := u.conn.ReadFrom(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				select {
				case recv <- packet{cp, addr}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			if err != nil {
				return err
			}
		}
	})

	for i := 0; i < u.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case p, ok := <-recv:
					if !ok {
						return nil
					}
					el, err := osc.Decode(p.buf)
					if err != nil {
						log.Printf("transport: invalid packet from %v: %v", p.addr, err)
						continue
					}
					u.space.Dispatch(el, nil)
				}
			}
		})
	}

	return g.Wait()
}

// Send encodes and sends a message to addr over conn.
func Send(conn net.PacketConn, addr net.Addr, el osc.Element) error {
	buf := el.Append(nil)
	_, err := conn.WriteTo(buf, addr)
	return err
}
