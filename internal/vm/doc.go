// Package vm provides domain lookup, listing, and lifecycle operations.
//
// Every function takes a LibvirtClient, the subset of *libvirt.Libvirt this
// package calls, so the shell can hand over its live session and tests can
// hand over a mock.
//
// Resolution:
//
// Two resolvers turn a user-supplied token into a domain:
//   - Resolve tries, in order, the token as a numeric ID, as a name, and as
//     a UUID, using libvirt's direct lookups. A malformed or missing value
//     for one interpretation moves on to the next.
//   - Find scans active domain IDs and then defined domain names, comparing
//     by equality.
//
// Both return ErrDomainNotFound when nothing matches.
package vm
