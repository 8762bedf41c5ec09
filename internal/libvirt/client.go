package libvirt

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket"
	"github.com/digitalocean/go-libvirt/socket/dialers"
)

const (
	// DefaultURI is the connection URI of the local system hypervisor.
	DefaultURI = string(libvirt.QEMUSystem)

	// DefaultSocket is the libvirtd socket serving qemu:///system.
	DefaultSocket = "/var/run/libvirt/libvirt-sock"

	// DefaultTimeout bounds dialing the daemon.
	DefaultTimeout = 5 * time.Second

	// defaultRemotePort is libvirtd's plain TCP listener.
	defaultRemotePort = "16509"
)

// Client wraps a go-libvirt connection to a single hypervisor URI.
type Client struct {
	libvirt *libvirt.Libvirt
}

// Connect opens a connection to the hypervisor named by uri.
// It returns a Client that must be closed via Close() when done.
//
// If uri is empty, defaults to qemu:///system.
// If socketPath is empty, defaults to "/var/run/libvirt/libvirt-sock".
// If timeout is zero, defaults to 5 seconds.
//
// URIs without a host (qemu:///system, test:///default) are dialed over the
// local UNIX socket. URIs with a host (qemu+tcp://kvm1/system) are dialed
// over TCP to the remote daemon.
func Connect(uri, socketPath string, timeout time.Duration) (*Client, error) {
	if uri == "" {
		uri = DefaultURI
	}
	if socketPath == "" {
		socketPath = DefaultSocket
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	dialer, driverURI, err := dialerFor(uri, socketPath, timeout)
	if err != nil {
		return nil, err
	}

	l := libvirt.NewWithDialer(dialer)
	if err := l.ConnectToURI(libvirt.ConnectURI(driverURI)); err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt at %s: %w", uri, err)
	}

	return &Client{libvirt: l}, nil
}

// ConnectWithContext establishes a connection with context support for cancellation.
// A connection that completes after ctx is done is closed.
func ConnectWithContext(ctx context.Context, uri, socketPath string, timeout time.Duration) (*Client, error) {
	return awaitConnect(ctx, func() (*Client, error) {
		return Connect(uri, socketPath, timeout)
	}, func(c *Client) {
		if err := c.Close(); err != nil {
			log.Printf("Warning: failed to close abandoned connection to %s: %v", uri, err)
		}
	})
}

// awaitConnect runs connect in a goroutine and waits for it or ctx.
// If ctx wins, discard receives any client the goroutine later produces.
func awaitConnect(ctx context.Context, connect func() (*Client, error), discard func(*Client)) (*Client, error) {
	type result struct {
		client *Client
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		c, err := connect()
		resultCh <- result{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if res := <-resultCh; res.err == nil && res.client != nil {
				discard(res.client)
			}
		}()
		return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
	case res := <-resultCh:
		return res.client, res.err
	}
}

// dialerFor picks the transport for uri and returns the URI to hand to the
// daemon, with any "+transport" suffix and host stripped.
func dialerFor(uri, socketPath string, timeout time.Duration) (socket.Dialer, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("invalid connection URI %q: %w", uri, err)
	}
	if u.Scheme == "" {
		return nil, "", fmt.Errorf("invalid connection URI %q: missing driver scheme", uri)
	}

	driver, transport, _ := strings.Cut(u.Scheme, "+")
	driverURI := driver + "://" + u.EscapedPath()

	if u.Host == "" {
		if transport != "" && transport != "unix" {
			return nil, "", fmt.Errorf("invalid connection URI %q: transport %s needs a host", uri, transport)
		}
		return dialers.NewLocal(
			dialers.WithSocket(socketPath),
			dialers.WithLocalTimeout(timeout),
		), driverURI, nil
	}

	if transport != "" && transport != "tcp" {
		return nil, "", fmt.Errorf("unsupported transport %q in %s (supported: unix, tcp)", transport, uri)
	}

	host, port := u.Hostname(), u.Port()
	if port == "" {
		port = defaultRemotePort
	}
	if _, err := net.LookupPort("tcp", port); err != nil {
		return nil, "", fmt.Errorf("invalid port in %s: %w", uri, err)
	}

	return dialers.NewRemote(host,
		dialers.UsePort(port),
		dialers.WithRemoteTimeout(timeout),
	), driverURI, nil
}

// Close closes the libvirt connection and releases resources.
// It is safe to call Close multiple times.
func (c *Client) Close() error {
	if c.libvirt == nil {
		return nil
	}

	l := c.libvirt
	c.libvirt = nil
	if err := l.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt: %w", err)
	}

	return nil
}

// Libvirt returns the underlying go-libvirt client for direct API access.
func (c *Client) Libvirt() *libvirt.Libvirt {
	return c.libvirt
}

// Ping verifies the connection is still alive by calling a simple libvirt API.
func (c *Client) Ping() error {
	if c.libvirt == nil {
		return fmt.Errorf("client not connected")
	}

	if _, err := c.libvirt.ConnectGetLibVersion(); err != nil {
		return fmt.Errorf("libvirt connection is dead: %w", err)
	}

	return nil
}

// FormatVersion renders libvirt's packed version number (8006000) as 8.6.0.
func FormatVersion(v uint64) string {
	return fmt.Sprintf("%d.%d.%d", v/1000000, (v%1000000)/1000, v%1000)
}
