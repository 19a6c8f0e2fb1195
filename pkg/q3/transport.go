package q3

import (
	"context"
	"errors"
	"net"
	"os"
	"time"
)

// DefaultBufferSize is the receive buffer size used when none is configured. Longer responses
// are truncated by the socket.
const DefaultBufferSize = 2048

// Transport performs a single request and response round trip with the server at addr.
type Transport interface {
	RoundTrip(ctx context.Context, addr string, payload []byte) ([]byte, error)
}

// UDPTransport sends each request from a fresh ephemeral UDP socket connected to the server and
// reads exactly one datagram back. The socket is closed before RoundTrip returns.
type UDPTransport struct {
	// BufferSize is the receive buffer size. Zero means DefaultBufferSize.
	BufferSize int
	// Timeout bounds the whole round trip. Zero means the call only ends with ctx.
	Timeout time.Duration
}

func (t UDPTransport) RoundTrip(ctx context.Context, addr string, payload []byte) ([]byte, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "dial", Err: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, &Error{Kind: KindTransport, Op: "set deadline", Err: err}
		}
	}

	// Unblock the pending read once ctx is done.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write(payload); err != nil {
		return nil, &Error{Kind: KindTransport, Op: "write", Err: ctxErrOr(ctx, err)}
	}

	size := t.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}

	buf := make([]byte, size)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "read", Err: ctxErrOr(ctx, err)}
	}

	return buf[:n], nil
}

// ctxErrOr prefers the context's error over the socket error it caused.
func ctxErrOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	// The socket deadline can fire just before the context timer does.
	deadline, ok := ctx.Deadline()
	if ok && errors.Is(err, os.ErrDeadlineExceeded) && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return err
}
