// Package libvirt provides a client wrapper for interacting with libvirt.
//
// This package wraps github.com/digitalocean/go-libvirt to provide:
//   - Connection management by URI (connect, disconnect, ping)
//   - Decoding of domain XML into the fields the shell displays
//
// Connection Management:
//
// Local URIs are dialed over the daemon's UNIX socket, remote ones over TCP:
//
//	client, err := libvirt.Connect("qemu:///system", "", 0)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client, err = libvirt.Connect("qemu+tcp://kvm1/system", "", 0)
//
// Consumer-Side Interfaces:
//
// This package does not define interfaces. Consumers (internal/vm,
// internal/shell) define the operations they need; *libvirt.Libvirt
// satisfies them implicitly.
package libvirt
