package shell

import (
	"context"
	"errors"

	"github.com/digitalocean/go-libvirt"

	"github.com/jbweber/virtsh/internal/vm"
)

// ErrNotImplemented is returned by hooks that have no implementation.
var ErrNotImplemented = errors.New("not implemented")

// Archiver saves a domain's configuration to an archive and defines
// domains from one.
type Archiver interface {
	// Export writes dom's configuration to an archive.
	Export(ctx context.Context, lv vm.LibvirtClient, dom libvirt.Domain) error

	// Import defines a domain from the archive at path.
	Import(ctx context.Context, lv vm.LibvirtClient, path string) error
}

// unimplementedArchiver is the default Archiver.
type unimplementedArchiver struct{}

func (unimplementedArchiver) Export(context.Context, vm.LibvirtClient, libvirt.Domain) error {
	return ErrNotImplemented
}

func (unimplementedArchiver) Import(context.Context, vm.LibvirtClient, string) error {
	return ErrNotImplemented
}
