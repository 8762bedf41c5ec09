package vm

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/digitalocean/go-libvirt"
	"github.com/google/uuid"
)

// ErrDomainNotFound is returned when a token matches no domain.
var ErrDomainNotFound = errors.New("no such domain")

// resolveStrategy interprets a token one way and looks the domain up.
// ok is false when the token does not parse or the lookup fails.
type resolveStrategy struct {
	name   string
	lookup func(lv LibvirtClient, token string) (dom libvirt.Domain, ok bool)
}

// resolveOrder is ID, then name, then UUID.
var resolveOrder = []resolveStrategy{
	{name: "id", lookup: lookupByID},
	{name: "name", lookup: lookupByName},
	{name: "uuid", lookup: lookupByUUID},
}

// Resolve looks up a domain by numeric ID, name, or UUID, in that order,
// returning the first match.
func Resolve(lv LibvirtClient, token string) (libvirt.Domain, error) {
	for _, s := range resolveOrder {
		if dom, ok := s.lookup(lv, token); ok {
			return dom, nil
		}
	}
	return libvirt.Domain{}, fmt.Errorf("%w: %s", ErrDomainNotFound, token)
}

func lookupByID(lv LibvirtClient, token string) (libvirt.Domain, bool) {
	id, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return libvirt.Domain{}, false
	}
	dom, err := lv.DomainLookupByID(int32(id))
	if err != nil {
		return libvirt.Domain{}, false
	}
	return dom, true
}

func lookupByName(lv LibvirtClient, token string) (libvirt.Domain, bool) {
	dom, err := lv.DomainLookupByName(token)
	if err != nil {
		return libvirt.Domain{}, false
	}
	return dom, true
}

func lookupByUUID(lv LibvirtClient, token string) (libvirt.Domain, bool) {
	id, err := uuid.Parse(token)
	if err != nil {
		return libvirt.Domain{}, false
	}
	dom, err := lv.DomainLookupByUUID(libvirt.UUID(id))
	if err != nil {
		return libvirt.Domain{}, false
	}
	return dom, true
}

// LookupName resolves a domain by exact name only.
func LookupName(lv LibvirtClient, name string) (libvirt.Domain, error) {
	dom, err := lv.DomainLookupByName(name)
	if err != nil {
		return libvirt.Domain{}, fmt.Errorf("%w: %s: %w", ErrDomainNotFound, name, err)
	}
	return dom, nil
}

// Find resolves a token by scanning instead of asking libvirt to look it up.
//
// Active domains are checked first, matching the token against each
// domain's name and, when the token is an integer, its ID. Defined
// (inactive) domains are then matched by name.
func Find(lv LibvirtClient, token string) (libvirt.Domain, error) {
	wantID, parseErr := strconv.ParseInt(token, 10, 32)
	if errors.Is(parseErr, strconv.ErrRange) {
		log.Printf("Warning: %q is out of range for a domain ID, matching by name only", token)
	}

	ids, err := listActiveIDs(lv)
	if err != nil {
		return libvirt.Domain{}, err
	}

	for _, id := range ids {
		dom, err := lv.DomainLookupByID(id)
		if err != nil {
			log.Printf("Warning: failed to look up domain %d: %v", id, err)
			continue
		}
		if dom.Name == token {
			return dom, nil
		}
		if parseErr == nil && int64(id) == wantID {
			return dom, nil
		}
	}

	names, err := listDefinedNames(lv)
	if err != nil {
		return libvirt.Domain{}, err
	}

	for _, name := range names {
		if name != token {
			continue
		}
		dom, err := lv.DomainLookupByName(name)
		if err != nil {
			return libvirt.Domain{}, fmt.Errorf("failed to look up domain %s: %w", name, err)
		}
		return dom, nil
	}

	return libvirt.Domain{}, fmt.Errorf("%w: %s", ErrDomainNotFound, token)
}
