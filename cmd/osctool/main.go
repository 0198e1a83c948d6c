// Command osctool is a small send/receive exerciser for the osc stack,
// generalized across both transports the core supports directly.
package main

import (
	"context"
	"flag"
	"log"
	"net"

	"github.com/sndctrl/osc"
	"github.com/sndctrl/osc/dispatch"
	"github.com/sndctrl/osc/pattern"
	"github.com/sndctrl/osc/transport"
)

var (
	modeFlag      = flag.String("mode", "", "`mode` in which to run, must be one of \"send\" or \"receive\"")
	transportFlag = flag.String("transport", "udp", "`transport` to use, \"udp\" or \"tcp\"")
	listenAddr    = flag.String("listen_addr", "127.0.0.1:0", "`host:port` to listen on")
	sendAddr      = flag.String("send_addr", "", "`host:port` to send to")
	patternFlag   = flag.String("pattern", "/test", "address pattern to send a message to, in send mode")
	workersFlag   = flag.Int("workers", 4, "number of UDP dispatch workers")
)

func main() {
	flag.Parse()

	ctx := context.Background()
	var err error
	switch *modeFlag {
	case "send":
		err = send(ctx)
	case "receive":
		err = receive(ctx)
	default:
		log.Fatalf("unknown mode %q, want \"send\" or \"receive\"", *modeFlag)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func send(ctx context.Context) error {
	switch *transportFlag {
	case "udp":
		conn, err := net.ListenPacket("udp", *listenAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		log.Printf("sending %s i=12 to %v over udp", *patternFlag, *sendAddr)
		return osc.Send(conn, *sendAddr, *patternFlag, osc.AsInt32(12))
	case "tcp":
		conn, err := net.Dial("tcp", *sendAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		msg := &osc.Message{Pattern: *patternFlag, Arguments: []osc.Argument{osc.AsInt32(12)}}
		log.Printf("sending %v to %v over tcp", msg, conn.RemoteAddr())
		return transport.SendDatagram(conn, msg)
	default:
		log.Fatalf("unknown transport %q, want \"udp\" or \"tcp\"", *transportFlag)
		return nil
	}
}

func receive(ctx context.Context) error {
	var space dispatch.AddressSpace
	for _, p := range []string{"/test", "/test/a", "/test/b", "/test/c"} {
		addr := p
		space.Register(&dispatch.Method{
			Address: addr,
			Handler: func(msg *osc.Message, kind pattern.MatchKind, enclosing *osc.TimeTag) {
				log.Printf("%s (%v): recv: %v", addr, kind, msg)
			},
		})
	}

	switch *transportFlag {
	case "udp":
		conn, err := net.ListenPacket("udp", *listenAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		log.Printf("listening on %v over udp", conn.LocalAddr())
		return transport.NewUDP(conn, &space, *workersFlag).Serve(ctx)
	case "tcp":
		ln, err := net.Listen("tcp", *listenAddr)
		if err != nil {
			return err
		}
		defer ln.Close()
		log.Printf("listening on %v over tcp", ln.Addr())
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			go func() {
				if err := transport.NewTCP(conn, &space).Serve(ctx); err != nil {
					log.Printf("tcp connection from %v ended: %v", conn.RemoteAddr(), err)
				}
			}()
		}
	default:
		log.Fatalf("unknown transport %q, want \"udp\" or \"tcp\"", *transportFlag)
		return nil
	}
}
