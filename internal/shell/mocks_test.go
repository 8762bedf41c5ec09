package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/digitalocean/go-libvirt"
)

// fakeDomain describes a domain held by a fakeSession.
type fakeDomain struct {
	id     int32
	name   string
	active bool
}

func (d fakeDomain) domain() libvirt.Domain {
	dom := libvirt.Domain{Name: d.name, ID: -1}
	if d.active {
		dom.ID = d.id
	}
	return dom
}

// fakeSession is a mock implementation of the Session interface for testing.
type fakeSession struct {
	mu      sync.Mutex
	domains []fakeDomain

	// Configurable behavior
	domainCreateFunc   func(dom libvirt.Domain) error
	domainShutdownFunc func(dom libvirt.Domain) error
	libVersionErr      error
	closeErr           error

	// Call tracking
	createCalls   []string
	shutdownCalls []string
	suspendCalls  []string
	resumeCalls   []string
	closed        bool
}

func newFakeSession(domains ...fakeDomain) *fakeSession {
	return &fakeSession{domains: domains}
}

func (f *fakeSession) active() []fakeDomain {
	var out []fakeDomain
	for _, d := range f.domains {
		if d.active {
			out = append(out, d)
		}
	}
	return out
}

func (f *fakeSession) defined() []fakeDomain {
	var out []fakeDomain
	for _, d := range f.domains {
		if !d.active {
			out = append(out, d)
		}
	}
	return out
}

func (f *fakeSession) ConnectNumOfDomains() (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int32(len(f.active())), nil
}

func (f *fakeSession) ConnectListDomains(maxids int32) ([]int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int32
	for _, d := range f.active() {
		ids = append(ids, d.id)
	}
	return ids, nil
}

func (f *fakeSession) ConnectNumOfDefinedDomains() (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int32(len(f.defined())), nil
}

func (f *fakeSession) ConnectListDefinedDomains(maxnames int32) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, d := range f.defined() {
		names = append(names, d.name)
	}
	return names, nil
}

func (f *fakeSession) DomainLookupByID(id int32) (libvirt.Domain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.active() {
		if d.id == id {
			return d.domain(), nil
		}
	}
	return libvirt.Domain{}, fmt.Errorf("Domain not found: no domain with matching id %d", id)
}

func (f *fakeSession) DomainLookupByName(name string) (libvirt.Domain, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.domains {
		if d.name == name {
			return d.domain(), nil
		}
	}
	return libvirt.Domain{}, fmt.Errorf("Domain not found: no domain with matching name '%s'", name)
}

func (f *fakeSession) DomainLookupByUUID(id libvirt.UUID) (libvirt.Domain, error) {
	return libvirt.Domain{}, errors.New("Domain not found: no domain with matching uuid")
}

func (f *fakeSession) DomainIsActive(dom libvirt.Domain) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.domains {
		if d.name == dom.Name && d.active {
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeSession) DomainGetState(dom libvirt.Domain, flags uint32) (int32, int32, error) {
	if dom.ID > 0 {
		return int32(libvirt.DomainRunning), 0, nil
	}
	return int32(libvirt.DomainShutoff), 0, nil
}

func (f *fakeSession) DomainCreate(dom libvirt.Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, dom.Name)
	if f.domainCreateFunc != nil {
		return f.domainCreateFunc(dom)
	}
	return nil
}

func (f *fakeSession) DomainShutdown(dom libvirt.Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdownCalls = append(f.shutdownCalls, dom.Name)
	if f.domainShutdownFunc != nil {
		return f.domainShutdownFunc(dom)
	}
	return nil
}

func (f *fakeSession) DomainSuspend(dom libvirt.Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suspendCalls = append(f.suspendCalls, dom.Name)
	return nil
}

func (f *fakeSession) DomainResume(dom libvirt.Domain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumeCalls = append(f.resumeCalls, dom.Name)
	return nil
}

func (f *fakeSession) DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
	return fmt.Sprintf(`<domain type="kvm">
  <name>%s</name>
  <uuid>6f1c1a4e-2f0b-4d8a-9a57-3d2c8a1e0b11</uuid>
  <memory unit="KiB">1048576</memory>
  <vcpu>2</vcpu>
  <os><type arch="x86_64">hvm</type></os>
</domain>`, dom.Name), nil
}

func (f *fakeSession) ConnectGetLibVersion() (uint64, error) {
	if f.libVersionErr != nil {
		return 0, f.libVersionErr
	}
	return 10000000, nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

// fakeDialer returns sessions from a map keyed by URI and records each dial.
type fakeDialer struct {
	sessions map[string]*fakeSession
	dialed   []string
}

func (d *fakeDialer) dial(_ context.Context, uri string) (Session, error) {
	d.dialed = append(d.dialed, uri)
	sess, ok := d.sessions[uri]
	if !ok {
		return nil, fmt.Errorf("unable to connect to %s", uri)
	}
	return sess, nil
}

// readStep is one result returned by scriptedReader.
type readStep struct {
	line string
	err  error
}

// scriptedReader feeds steps to the loop and returns io.EOF once they run out.
type scriptedReader struct {
	steps []readStep
	reads int
}

func lines(ls ...string) *scriptedReader {
	r := &scriptedReader{}
	for _, l := range ls {
		r.steps = append(r.steps, readStep{line: l})
	}
	return r
}

func (r *scriptedReader) Readline() (string, error) {
	if r.reads >= len(r.steps) {
		r.reads++
		return "", io.EOF
	}
	step := r.steps[r.reads]
	r.reads++
	return step.line, step.err
}

func (r *scriptedReader) Close() error {
	return nil
}
