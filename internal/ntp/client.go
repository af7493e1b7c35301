package ntp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	ErrResolution = errors.New("ntp: resolve failed")
	ErrTimedOut   = errors.New("ntp: timed out waiting for reply")
	ErrBusy       = errors.New("ntp: exchange already in progress")
)

const (
	DefaultTimeout = 3 * time.Second

	// how long a drain read waits for an already queued datagram
	drainWindow = time.Millisecond
)

// State is where the client is in an exchange.
type State uint8

const (
	Idle State = iota
	RequestSent
)

func (s State) String() string {
	if s == RequestSent {
		return "request-sent"
	}
	return "idle"
}

// Outcome is how the last exchange ended.
type Outcome uint8

const (
	None Outcome = iota
	Success
	TimedOut
	DNSFailed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "ok"
	case TimedOut:
		return "timeout"
	case DNSFailed:
		return "dns"
	case Failed:
		return "failed"
	default:
		return "none"
	}
}

// Resolver looks up host addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DialFunc opens a datagram connection. (*net.Dialer).DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type Config struct {
	Host    string
	Port    int
	Timeout time.Duration

	Resolver Resolver
	Dial     DialFunc
}

// Client runs one NTP exchange at a time. It keeps its socket open between
// exchanges with the same server so that a late reply to an earlier request
// is still queued, and drained, when the next request goes out.
type Client struct {
	host     string
	port     int
	timeout  time.Duration
	resolver Resolver
	dial     DialFunc
	logger   *slog.Logger

	busy    atomic.Bool
	state   State
	outcome Outcome

	conn     net.Conn
	connAddr string
	buf      [2 * PacketSize]byte
}

func New(cfg Config, logger *slog.Logger) *Client {
	c := &Client{
		host:     cfg.Host,
		port:     cfg.Port,
		timeout:  cfg.Timeout,
		resolver: cfg.Resolver,
		dial:     cfg.Dial,
		logger:   logger,
	}
	if c.port == 0 {
		c.port = DefaultPort
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.resolver == nil {
		c.resolver = net.DefaultResolver
	}
	if c.dial == nil {
		c.dial = (&net.Dialer{}).DialContext
	}
	return c
}

func (c *Client) State() State         { return c.state }
func (c *Client) LastOutcome() Outcome { return c.outcome }

// Resolve returns the host:port of the first address of host.
func (c *Client) Resolve(ctx context.Context, host string) (string, error) {
	addrs, err := c.resolver.LookupHost(ctx, host)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrResolution, host, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: %s: no addresses", ErrResolution, host)
	}
	return net.JoinHostPort(addrs[0], strconv.Itoa(c.port)), nil
}

// Sync performs one exchange and returns the server's time as local epoch
// seconds for the given UTC offset. It does not retry.
func (c *Client) Sync(ctx context.Context, utcOffsetHours float64) (int64, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer c.busy.Store(false)

	addr, err := c.Resolve(ctx, c.host)
	if err != nil {
		c.finish(DNSFailed)
		return 0, err
	}
	if err := c.connect(ctx, addr); err != nil {
		c.finish(Failed)
		return 0, err
	}

	c.drain()
	if err := c.Send(BuildRequest()); err != nil {
		c.finish(Failed)
		return 0, err
	}
	c.state = RequestSent

	reply, err := c.AwaitReply(c.timeout)
	if err != nil {
		if errors.Is(err, ErrTimedOut) {
			c.finish(TimedOut)
		} else {
			c.finish(Failed)
		}
		return 0, err
	}
	epoch, err := ExtractTimestamp(reply, utcOffsetHours)
	if err != nil {
		c.finish(Failed)
		return 0, err
	}
	c.finish(Success)
	c.logger.Debug("ntp: synced", "addr", addr, "epoch", epoch)
	return epoch, nil
}

func (c *Client) finish(o Outcome) {
	c.state = Idle
	c.outcome = o
}

func (c *Client) connect(ctx context.Context, addr string) error {
	if c.conn != nil && c.connAddr == addr {
		return nil
	}
	c.Close()
	conn, err := c.dial(ctx, "udp", addr)
	if err != nil {
		return fmt.Errorf("ntp: dial %s: %w", addr, err)
	}
	c.conn = conn
	c.connAddr = addr
	return nil
}

// Send writes one request datagram.
func (c *Client) Send(req [PacketSize]byte) error {
	if c.conn == nil {
		return errors.New("ntp: not connected")
	}
	if _, err := c.conn.Write(req[:]); err != nil {
		return fmt.Errorf("ntp: send: %w", err)
	}
	return nil
}

// drain discards datagrams already queued on the socket.
func (c *Client) drain() {
	n := 0
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(drainWindow)); err != nil {
			return
		}
		if _, err := c.conn.Read(c.buf[:]); err != nil {
			break
		}
		n++
	}
	if n > 0 {
		c.logger.Debug("ntp: drained stale datagrams", "count", n)
	}
}

// AwaitReply waits up to timeout for a datagram of at least PacketSize bytes.
// Shorter datagrams are skipped without extending the wait.
func (c *Client) AwaitReply(timeout time.Duration) ([]byte, error) {
	if c.conn == nil {
		return nil, errors.New("ntp: not connected")
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("ntp: set deadline: %w", err)
	}
	for {
		n, err := c.conn.Read(c.buf[:])
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil, ErrTimedOut
			}
			return nil, fmt.Errorf("ntp: read: %w", err)
		}
		if n < PacketSize {
			c.logger.Debug("ntp: skipping short datagram", "len", n)
			continue
		}
		reply := make([]byte, n)
		copy(reply, c.buf[:n])
		return reply, nil
	}
}

// Close releases the socket. The next Sync dials again.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connAddr = ""
	return err
}
