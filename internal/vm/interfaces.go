package vm

import (
	"github.com/digitalocean/go-libvirt"
)

// LibvirtClient defines the libvirt operations needed for domain management.
// This wraps operations from *libvirt.Libvirt to allow for testing.
//
// In production, this is satisfied by *libvirt.Libvirt directly.
// In tests, this is satisfied by mock implementations.
type LibvirtClient interface {
	// ConnectNumOfDomains returns the number of active domains
	ConnectNumOfDomains() (int32, error)

	// ConnectListDomains lists the IDs of active domains
	ConnectListDomains(maxids int32) ([]int32, error)

	// ConnectNumOfDefinedDomains returns the number of defined, inactive domains
	ConnectNumOfDefinedDomains() (int32, error)

	// ConnectListDefinedDomains lists the names of defined, inactive domains
	ConnectListDefinedDomains(maxnames int32) ([]string, error)

	// DomainLookupByID looks up an active domain by ID
	DomainLookupByID(id int32) (libvirt.Domain, error)

	// DomainLookupByName looks up a domain by name
	DomainLookupByName(name string) (libvirt.Domain, error)

	// DomainLookupByUUID looks up a domain by UUID
	DomainLookupByUUID(uuid libvirt.UUID) (libvirt.Domain, error)

	// DomainIsActive reports whether a domain is running (1) or not (0)
	DomainIsActive(dom libvirt.Domain) (int32, error)

	// DomainGetState gets the state of a domain
	DomainGetState(dom libvirt.Domain, flags uint32) (state int32, reason int32, err error)

	// DomainCreate starts a domain
	DomainCreate(dom libvirt.Domain) error

	// DomainShutdown gracefully shuts down a domain
	DomainShutdown(dom libvirt.Domain) error

	// DomainSuspend pauses a running domain
	DomainSuspend(dom libvirt.Domain) error

	// DomainResume resumes a paused domain
	DomainResume(dom libvirt.Domain) error

	// DomainGetXMLDesc returns the domain's XML definition
	DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)
}
