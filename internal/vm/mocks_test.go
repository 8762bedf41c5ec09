package vm

import (
	"fmt"
	"sync"

	"github.com/digitalocean/go-libvirt"
	"github.com/google/uuid"
)

// mockDomain describes a domain known to the mock hypervisor.
type mockDomain struct {
	id     int32 // 0 when inactive
	name   string
	uuid   string
	active bool
}

func (d mockDomain) domain() libvirt.Domain {
	dom := libvirt.Domain{Name: d.name, ID: -1}
	if d.active {
		dom.ID = d.id
	}
	if d.uuid != "" {
		dom.UUID = libvirt.UUID(uuid.MustParse(d.uuid))
	}
	return dom
}

// mockLibvirtClient is a mock implementation of the LibvirtClient interface for testing.
type mockLibvirtClient struct {
	mu sync.Mutex

	// Configurable behavior
	connectNumOfDomainsFunc        func() (int32, error)
	connectListDomainsFunc         func(maxids int32) ([]int32, error)
	connectNumOfDefinedDomainsFunc func() (int32, error)
	connectListDefinedDomainsFunc  func(maxnames int32) ([]string, error)
	domainLookupByIDFunc           func(id int32) (libvirt.Domain, error)
	domainLookupByNameFunc         func(name string) (libvirt.Domain, error)
	domainLookupByUUIDFunc         func(id libvirt.UUID) (libvirt.Domain, error)
	domainIsActiveFunc             func(dom libvirt.Domain) (int32, error)
	domainGetStateFunc             func(dom libvirt.Domain, flags uint32) (int32, int32, error)
	domainCreateFunc               func(dom libvirt.Domain) error
	domainShutdownFunc             func(dom libvirt.Domain) error
	domainSuspendFunc              func(dom libvirt.Domain) error
	domainResumeFunc               func(dom libvirt.Domain) error
	domainGetXMLDescFunc           func(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)

	// Call tracking
	domainLookupByIDCalls   []int32
	domainLookupByNameCalls []string
	domainLookupByUUIDCalls []libvirt.UUID
	domainCreateCalls       []libvirt.Domain
	domainShutdownCalls     []libvirt.Domain
	domainSuspendCalls      []libvirt.Domain
	domainResumeCalls       []libvirt.Domain
}

// newMockLibvirtClient creates a mock hypervisor holding the given domains.
// Active domains are listed by ID, inactive ones by name, in the order given.
func newMockLibvirtClient(domains ...mockDomain) *mockLibvirtClient {
	m := &mockLibvirtClient{}

	var active []mockDomain
	var defined []mockDomain
	for _, d := range domains {
		if d.active {
			active = append(active, d)
		} else {
			defined = append(defined, d)
		}
	}

	m.connectNumOfDomainsFunc = func() (int32, error) {
		return int32(len(active)), nil
	}
	m.connectListDomainsFunc = func(maxids int32) ([]int32, error) {
		ids := make([]int32, 0, len(active))
		for _, d := range active {
			ids = append(ids, d.id)
		}
		return ids, nil
	}
	m.connectNumOfDefinedDomainsFunc = func() (int32, error) {
		return int32(len(defined)), nil
	}
	m.connectListDefinedDomainsFunc = func(maxnames int32) ([]string, error) {
		names := make([]string, 0, len(defined))
		for _, d := range defined {
			names = append(names, d.name)
		}
		return names, nil
	}
	m.domainLookupByIDFunc = func(id int32) (libvirt.Domain, error) {
		for _, d := range active {
			if d.id == id {
				return d.domain(), nil
			}
		}
		return libvirt.Domain{}, fmt.Errorf("Domain not found: no domain with matching id %d", id)
	}
	m.domainLookupByNameFunc = func(name string) (libvirt.Domain, error) {
		for _, d := range domains {
			if d.name == name {
				return d.domain(), nil
			}
		}
		return libvirt.Domain{}, fmt.Errorf("Domain not found: no domain with matching name '%s'", name)
	}
	m.domainLookupByUUIDFunc = func(id libvirt.UUID) (libvirt.Domain, error) {
		for _, d := range domains {
			if d.uuid != "" && libvirt.UUID(uuid.MustParse(d.uuid)) == id {
				return d.domain(), nil
			}
		}
		return libvirt.Domain{}, fmt.Errorf("Domain not found: no domain with matching uuid")
	}
	m.domainIsActiveFunc = func(dom libvirt.Domain) (int32, error) {
		for _, d := range domains {
			if d.name == dom.Name && d.active {
				return 1, nil
			}
		}
		return 0, nil
	}
	m.domainGetStateFunc = func(dom libvirt.Domain, flags uint32) (int32, int32, error) {
		if dom.ID > 0 {
			return int32(libvirt.DomainRunning), 0, nil
		}
		return int32(libvirt.DomainShutoff), 0, nil
	}
	m.domainCreateFunc = func(dom libvirt.Domain) error { return nil }
	m.domainShutdownFunc = func(dom libvirt.Domain) error { return nil }
	m.domainSuspendFunc = func(dom libvirt.Domain) error { return nil }
	m.domainResumeFunc = func(dom libvirt.Domain) error { return nil }
	m.domainGetXMLDescFunc = func(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
		return fmt.Sprintf("<domain type='kvm'><name>%s</name></domain>", dom.Name), nil
	}

	return m
}

func (m *mockLibvirtClient) ConnectNumOfDomains() (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectNumOfDomainsFunc()
}

func (m *mockLibvirtClient) ConnectListDomains(maxids int32) ([]int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectListDomainsFunc(maxids)
}

func (m *mockLibvirtClient) ConnectNumOfDefinedDomains() (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectNumOfDefinedDomainsFunc()
}

func (m *mockLibvirtClient) ConnectListDefinedDomains(maxnames int32) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectListDefinedDomainsFunc(maxnames)
}

func (m *mockLibvirtClient) DomainLookupByID(id int32) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainLookupByIDCalls = append(m.domainLookupByIDCalls, id)
	return m.domainLookupByIDFunc(id)
}

func (m *mockLibvirtClient) DomainLookupByName(name string) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainLookupByNameCalls = append(m.domainLookupByNameCalls, name)
	return m.domainLookupByNameFunc(name)
}

func (m *mockLibvirtClient) DomainLookupByUUID(id libvirt.UUID) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainLookupByUUIDCalls = append(m.domainLookupByUUIDCalls, id)
	return m.domainLookupByUUIDFunc(id)
}

func (m *mockLibvirtClient) DomainIsActive(dom libvirt.Domain) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainIsActiveFunc(dom)
}

func (m *mockLibvirtClient) DomainGetState(dom libvirt.Domain, flags uint32) (int32, int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainGetStateFunc(dom, flags)
}

func (m *mockLibvirtClient) DomainCreate(dom libvirt.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainCreateCalls = append(m.domainCreateCalls, dom)
	return m.domainCreateFunc(dom)
}

func (m *mockLibvirtClient) DomainShutdown(dom libvirt.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainShutdownCalls = append(m.domainShutdownCalls, dom)
	return m.domainShutdownFunc(dom)
}

func (m *mockLibvirtClient) DomainSuspend(dom libvirt.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainSuspendCalls = append(m.domainSuspendCalls, dom)
	return m.domainSuspendFunc(dom)
}

func (m *mockLibvirtClient) DomainResume(dom libvirt.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainResumeCalls = append(m.domainResumeCalls, dom)
	return m.domainResumeFunc(dom)
}

func (m *mockLibvirtClient) DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainGetXMLDescFunc(dom, flags)
}
