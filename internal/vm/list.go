package vm

import (
	"fmt"
	"log"
	"strconv"

	"github.com/digitalocean/go-libvirt"
)

// InactiveID is shown in place of an ID for domains that are not running.
const InactiveID = "-"

// Entry is one row of a domain listing.
type Entry struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Active bool   `yaml:"active" json:"active"`
}

// ListAll lists active domains (by ID) followed by defined, inactive
// domains (by name).
func ListAll(lv LibvirtClient) ([]Entry, error) {
	ids, err := listActiveIDs(lv)
	if err != nil {
		return nil, err
	}

	names, err := listDefinedNames(lv)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids)+len(names))

	for _, id := range ids {
		dom, err := lv.DomainLookupByID(id)
		if err != nil {
			// The domain stopped between listing and lookup.
			log.Printf("Warning: failed to look up domain %d: %v", id, err)
			continue
		}
		active, err := isActive(lv, dom.Name, dom)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:     strconv.Itoa(int(id)),
			Name:   dom.Name,
			Active: active,
		})
	}

	for _, name := range names {
		dom, err := lv.DomainLookupByName(name)
		if err != nil {
			log.Printf("Warning: failed to look up domain %s: %v", name, err)
			continue
		}
		active, err := isActive(lv, name, dom)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:     InactiveID,
			Name:   name,
			Active: active,
		})
	}

	return entries, nil
}

// Names returns the names of all domains in listing order.
func Names(lv LibvirtClient) ([]string, error) {
	entries, err := ListAll(lv)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

func listActiveIDs(lv LibvirtClient) ([]int32, error) {
	n, err := lv.ConnectNumOfDomains()
	if err != nil {
		return nil, fmt.Errorf("failed to count active domains: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	ids, err := lv.ConnectListDomains(n)
	if err != nil {
		return nil, fmt.Errorf("failed to list active domains: %w", err)
	}
	return ids, nil
}

func listDefinedNames(lv LibvirtClient) ([]string, error) {
	n, err := lv.ConnectNumOfDefinedDomains()
	if err != nil {
		return nil, fmt.Errorf("failed to count defined domains: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	names, err := lv.ConnectListDefinedDomains(n)
	if err != nil {
		return nil, fmt.Errorf("failed to list defined domains: %w", err)
	}
	return names, nil
}

func isActive(lv LibvirtClient, name string, dom libvirt.Domain) (bool, error) {
	active, err := lv.DomainIsActive(dom)
	if err != nil {
		return false, fmt.Errorf("failed to get state of domain %s: %w", name, err)
	}
	return active != 0, nil
}
