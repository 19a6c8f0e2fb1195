package q3

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ClientConfig contains settings to control [Client] instances.
type ClientConfig struct {
	// Password authenticates rcon commands. Rcon fails without it.
	Password string

	// Transport carries requests to the server. Nil means a [UDPTransport] built from BufferSize
	// and Timeout.
	Transport Transport

	// TextMode controls how invalid UTF-8 in responses is treated.
	TextMode TextMode

	// BufferSize is the receive buffer size of the default transport.
	BufferSize int

	// Timeout bounds each round trip of the default transport. Zero means no timeout.
	Timeout time.Duration

	// Logger receives debug records for every request and response. Nil disables logging.
	Logger *zap.Logger

	// LogRconPassword includes the rcon password in debug logs. It is masked otherwise.
	//
	// WARNING: This writes the server password in plain text to your logs.
	LogRconPassword bool
}

// Client queries a single server. It holds no mutable state and is safe for concurrent use.
type Client struct {
	host            string
	password        string
	transport       Transport
	textMode        TextMode
	logger          *zap.Logger
	logRconPassword bool
}

// NewClient returns a client for the server at host, which must be in host:port form.
func NewClient(host string, cfg ClientConfig) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = UDPTransport{
			BufferSize: cfg.BufferSize,
			Timeout:    cfg.Timeout,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		host:            host,
		password:        cfg.Password,
		transport:       transport,
		textMode:        cfg.TextMode,
		logger:          logger,
		logRconPassword: cfg.LogRconPassword,
	}
}

func (c *Client) Host() string {
	return c.host
}

// HasPassword reports whether rcon commands can be sent.
func (c *Client) HasPassword() bool {
	return c.password != ""
}

// Status sends getstatus and decodes the reply.
func (c *Client) Status(ctx context.Context) (ServerInfo, error) {
	resp, err := c.Do(ctx, StatusRequest())
	if err != nil {
		return ServerInfo{}, err
	}

	return ParseStatusResponse(resp, c.textMode)
}

// Rcon executes command on the server and returns the console output as text. The reply is not
// parsed beyond removing the out-of-band marker, so it usually starts with "print\n".
func (c *Client) Rcon(ctx context.Context, command string) (string, error) {
	req, err := RconRequest(c.password, command)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return "", err
	}

	return DecodeText(TrimOOBMarker(resp), c.textMode)
}

// Do performs one raw round trip for req and returns the undecoded response.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	payload, err := req.MarshalBinary()
	if err != nil {
		return nil, err
	}

	c.logRequest(req)

	resp, err := c.transport.RoundTrip(ctx, c.host, payload)
	if err != nil {
		var qErr *Error
		if !errors.As(err, &qErr) {
			err = &Error{Kind: KindTransport, Op: "round trip", Err: err}
		}
		return nil, err
	}

	if ce := c.logger.Check(zap.DebugLevel, "received response"); ce != nil {
		ce.Write(
			zap.String("server", c.host),
			zap.String("command", req.Command),
			zap.Int("responseSize", len(resp)),
		)
	}

	return resp, nil
}

func (c *Client) logRequest(req Request) {
	ce := c.logger.Check(zap.DebugLevel, "sending request")
	if ce == nil {
		return
	}

	if !c.logRconPassword {
		req = req.scrubbed()
	}

	ce.Write(
		zap.String("server", c.host),
		zap.String("request", req.String()),
	)
}
