package vm

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"

	virtshlibvirt "github.com/jbweber/virtsh/internal/libvirt"
)

// Info represents detailed information about a domain.
type Info struct {
	Name       string   `yaml:"name" json:"name"`
	UUID       string   `yaml:"uuid,omitempty" json:"uuid,omitempty"`
	ID         string   `yaml:"id" json:"id"`
	State      string   `yaml:"state" json:"state"`
	Type       string   `yaml:"type,omitempty" json:"type,omitempty"`
	OSType     string   `yaml:"os_type,omitempty" json:"os_type,omitempty"`
	Arch       string   `yaml:"arch,omitempty" json:"arch,omitempty"`
	VCPUs      uint     `yaml:"vcpus" json:"vcpus"`
	MemoryMiB  uint64   `yaml:"memory_mib" json:"memory_mib"`
	Disks      []string `yaml:"disks,omitempty" json:"disks,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
}

// GetInfo gathers state and definition details for a domain.
func GetInfo(lv LibvirtClient, dom libvirt.Domain) (Info, error) {
	state, _, err := lv.DomainGetState(dom, 0)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get state of domain %s: %w", dom.Name, err)
	}

	xml, err := lv.DomainGetXMLDesc(dom, 0)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get XML of domain %s: %w", dom.Name, err)
	}

	desc, err := virtshlibvirt.DescribeDomainXML(xml)
	if err != nil {
		return Info{}, err
	}

	// libvirt reports -1 for domains that are not running.
	id := InactiveID
	if dom.ID > 0 {
		id = fmt.Sprintf("%d", dom.ID)
	}

	return Info{
		Name:       dom.Name,
		UUID:       desc.UUID,
		ID:         id,
		State:      stateToString(state),
		Type:       desc.Type,
		OSType:     desc.OSType,
		Arch:       desc.Arch,
		VCPUs:      desc.VCPUs,
		MemoryMiB:  desc.MemoryMiB,
		Disks:      desc.Disks,
		Interfaces: desc.Interfaces,
	}, nil
}

// stateToString converts libvirt domain state to human-readable string.
func stateToString(state int32) string {
	switch libvirt.DomainState(state) {
	case libvirt.DomainNostate:
		return "no state"
	case libvirt.DomainRunning:
		return "running"
	case libvirt.DomainBlocked:
		return "blocked"
	case libvirt.DomainPaused:
		return "paused"
	case libvirt.DomainShutdown:
		return "in shutdown"
	case libvirt.DomainShutoff:
		return "shut off"
	case libvirt.DomainCrashed:
		return "crashed"
	case libvirt.DomainPmsuspended:
		return "pmsuspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}
