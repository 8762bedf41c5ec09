package libvirt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"libvirt.org/go/libvirtxml"
)

// DomainDescription is the subset of a domain's XML definition the shell shows.
type DomainDescription struct {
	Name       string
	UUID       string
	Type       string
	OSType     string
	Arch       string
	VCPUs      uint
	MemoryMiB  uint64
	Disks      []string
	Interfaces []string
}

// DescribeDomainXML decodes a libvirt domain XML document.
func DescribeDomainXML(xml string) (DomainDescription, error) {
	var dom libvirtxml.Domain
	if err := dom.Unmarshal(xml); err != nil {
		return DomainDescription{}, fmt.Errorf("failed to parse domain XML: %w", err)
	}

	desc := DomainDescription{
		Name: dom.Name,
		Type: dom.Type,
	}

	if dom.UUID != "" {
		id, err := uuid.Parse(dom.UUID)
		if err != nil {
			return DomainDescription{}, fmt.Errorf("domain %s has invalid UUID %q: %w", dom.Name, dom.UUID, err)
		}
		desc.UUID = id.String()
	}

	if dom.VCPU != nil {
		desc.VCPUs = dom.VCPU.Value
	}

	if dom.Memory != nil {
		mib, err := memoryToMiB(dom.Memory.Value, dom.Memory.Unit)
		if err != nil {
			return DomainDescription{}, fmt.Errorf("domain %s: %w", dom.Name, err)
		}
		desc.MemoryMiB = mib
	}

	if dom.OS != nil && dom.OS.Type != nil {
		desc.OSType = dom.OS.Type.Type
		desc.Arch = dom.OS.Type.Arch
	}

	if dom.Devices != nil {
		for _, disk := range dom.Devices.Disks {
			desc.Disks = append(desc.Disks, describeDisk(disk))
		}
		for _, iface := range dom.Devices.Interfaces {
			desc.Interfaces = append(desc.Interfaces, describeInterface(iface))
		}
	}

	return desc, nil
}

// memoryToMiB converts a libvirt scaled integer to MiB.
// An empty unit means KiB, per the domain XML schema.
func memoryToMiB(value uint, unit string) (uint64, error) {
	v := uint64(value)
	switch strings.ToLower(unit) {
	case "", "k", "kib":
		return v / 1024, nil
	case "b", "bytes":
		return v / (1024 * 1024), nil
	case "kb":
		return v * 1000 / (1024 * 1024), nil
	case "m", "mib":
		return v, nil
	case "mb":
		return v * 1000 * 1000 / (1024 * 1024), nil
	case "g", "gib":
		return v * 1024, nil
	case "gb":
		return v * 1000 * 1000 * 1000 / (1024 * 1024), nil
	case "t", "tib":
		return v * 1024 * 1024, nil
	default:
		return 0, fmt.Errorf("unsupported memory unit %q", unit)
	}
}

// describeDisk renders a disk as "target (device): source".
func describeDisk(disk libvirtxml.DomainDisk) string {
	target := "-"
	if disk.Target != nil && disk.Target.Dev != "" {
		target = disk.Target.Dev
	}

	source := "-"
	if disk.Source != nil {
		switch {
		case disk.Source.File != nil:
			source = disk.Source.File.File
		case disk.Source.Block != nil:
			source = disk.Source.Block.Dev
		case disk.Source.Volume != nil:
			source = disk.Source.Volume.Pool + "/" + disk.Source.Volume.Volume
		}
	}

	device := disk.Device
	if device == "" {
		device = "disk"
	}

	return fmt.Sprintf("%s (%s): %s", target, device, source)
}

// describeInterface renders an interface as "mac: source".
func describeInterface(iface libvirtxml.DomainInterface) string {
	mac := "-"
	if iface.MAC != nil && iface.MAC.Address != "" {
		mac = iface.MAC.Address
	}

	source := "-"
	if iface.Source != nil {
		switch {
		case iface.Source.Bridge != nil:
			source = "bridge " + iface.Source.Bridge.Bridge
		case iface.Source.Network != nil:
			source = "network " + iface.Source.Network.Network
		case iface.Source.Direct != nil:
			source = "direct " + iface.Source.Direct.Dev
		}
	}

	return mac + ": " + source
}
