package shell

import (
	"context"
	"log"
	"time"

	"github.com/digitalocean/go-libvirt"

	virtshlibvirt "github.com/jbweber/virtsh/internal/libvirt"
	"github.com/jbweber/virtsh/internal/vm"
)

// Session is an open hypervisor connection.
type Session interface {
	vm.LibvirtClient

	// ConnectGetLibVersion returns the daemon's packed libvirt version.
	ConnectGetLibVersion() (uint64, error)

	// Close disconnects from the hypervisor.
	Close() error
}

// Dialer opens a session to the hypervisor named by uri.
type Dialer func(ctx context.Context, uri string) (Session, error)

// LibvirtDialer returns a Dialer that connects through go-libvirt.
func LibvirtDialer(socketPath string, timeout time.Duration) Dialer {
	return func(ctx context.Context, uri string) (Session, error) {
		c, err := virtshlibvirt.ConnectWithContext(ctx, uri, socketPath, timeout)
		if err != nil {
			return nil, err
		}
		return newLibvirtSession(c)
	}
}

// newLibvirtSession wraps c once the daemon answers. c is closed on failure.
func newLibvirtSession(c *virtshlibvirt.Client) (Session, error) {
	if err := c.Ping(); err != nil {
		if closeErr := c.Close(); closeErr != nil {
			log.Printf("Warning: failed to close connection: %v", closeErr)
		}
		return nil, err
	}
	return &libvirtSession{Libvirt: c.Libvirt(), client: c}, nil
}

// libvirtSession exposes the go-libvirt API of a connected client.
type libvirtSession struct {
	*libvirt.Libvirt
	client *virtshlibvirt.Client
}

func (s *libvirtSession) Close() error {
	return s.client.Close()
}
