package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"sinkdns/internal/dns"
)

// UDPServer answers DNS queries over UDP with a single synchronous loop:
// receive one datagram, handle it, send the response, repeat. Each datagram
// is processed to completion before the next is read. DNS exchanges over
// UDP carry no cross-datagram ordering dependency and the responder holds
// no state, so nothing needs concurrency or locking here.
type UDPServer struct {
	Logger    *slog.Logger // Optional logger
	Responder *Responder   // Per-datagram processor

	conn *net.UDPConn
}

// Run binds the given address and serves until ctx is canceled.
// A bind failure is returned immediately; it is fatal to the caller.
func (s *UDPServer) Run(ctx context.Context, addr string) error {
	conn, err := listenReusePort(ctx, addr)
	if err != nil {
		return err
	}
	return s.RunOnConn(ctx, conn)
}

// RunOnConn serves on an existing UDP connection. This is useful for
// testing and when the caller manages the socket (e.g. port 0 binds).
//
// Loop behavior:
//   - a 1s read deadline makes the loop re-check ctx while idle
//   - transient read/write errors are logged and the loop continues;
//     one bad datagram never takes the responder down
//   - datagrams the responder drops produce no reply at all
func (s *UDPServer) RunOnConn(ctx context.Context, conn *net.UDPConn) error {
	s.conn = conn
	defer conn.Close()

	buf := make([]byte, dns.MaxIncomingMessageSize)
	for {
		if ctx.Err() != nil {
			return nil
		}

		_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
		n, remote, err := conn.ReadFromUDP(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue // idle tick, re-check context
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logTransient("udp read failed", err)
			continue
		}
		if remote == nil || n == 0 {
			continue
		}

		res := s.Responder.Handle(ctx, "udp", remote.String(), buf[:n])
		if len(res.ResponseBytes) == 0 {
			continue
		}
		if _, err := conn.WriteToUDP(res.ResponseBytes, remote); err != nil {
			s.logTransient("udp write failed", err)
		}
	}
}

// Stop closes the socket, unblocking the loop. The loop finishes the
// datagram in hand before it observes the close; no draining is needed
// because every exchange completes within a single receive/send pair.
func (s *UDPServer) Stop() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// LocalAddr returns the bound address, or nil before Run.
func (s *UDPServer) LocalAddr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

func (s *UDPServer) logTransient(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, "err", err)
	}
}

// listenReusePort binds a UDP socket with SO_REUSEADDR and SO_REUSEPORT set,
// so a restarted sinkhole can rebind port 53 immediately and multiple
// processes can share the port during rolling restarts.
func listenReusePort(ctx context.Context, addr string) (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var soErr error
			err := c.Control(func(fd uintptr) {
				soErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if soErr != nil {
					return
				}
				soErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return soErr
		},
	}
	pc, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return nil, err
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, errors.New("listen: not a UDP connection")
	}
	return conn, nil
}
