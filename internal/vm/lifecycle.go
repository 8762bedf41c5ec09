package vm

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// Start boots a defined domain.
func Start(lv LibvirtClient, dom libvirt.Domain) error {
	if err := lv.DomainCreate(dom); err != nil {
		return fmt.Errorf("failed to start domain %s: %w", dom.Name, err)
	}
	return nil
}

// Shutdown asks the guest to power off. It does not wait for it to stop.
func Shutdown(lv LibvirtClient, dom libvirt.Domain) error {
	if err := lv.DomainShutdown(dom); err != nil {
		return fmt.Errorf("failed to shut down domain %s: %w", dom.Name, err)
	}
	return nil
}

// Suspend pauses a running domain's vCPUs.
func Suspend(lv LibvirtClient, dom libvirt.Domain) error {
	if err := lv.DomainSuspend(dom); err != nil {
		return fmt.Errorf("failed to suspend domain %s: %w", dom.Name, err)
	}
	return nil
}

// Resume continues a suspended domain.
func Resume(lv LibvirtClient, dom libvirt.Domain) error {
	if err := lv.DomainResume(dom); err != nil {
		return fmt.Errorf("failed to resume domain %s: %w", dom.Name, err)
	}
	return nil
}
