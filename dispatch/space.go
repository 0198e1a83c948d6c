// Package dispatch implements the OSC address space: a registry of Methods
// matched against incoming messages and bundles by package pattern.
package dispatch

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/sndctrl/osc"
	"github.com/sndctrl/osc/pattern"
)

// AddressSpace is an ordered collection of registered Methods. Dispatch
// visits methods in registration order; duplicates (even identical
// addresses) are permitted. The zero value is ready to use.
//
// Register and Deregister take the write lock; Dispatch holds the read
// lock for the duration of one message's fan-out, so handler bodies may run
// concurrently with each other but not with a concurrent
// Register/Deregister. A handler must not call back into Register or
// Deregister on the same AddressSpace: that re-enters the read lock holder
// and deadlocks against the write lock.
type AddressSpace struct {
	mu      sync.RWMutex
	methods []*Method
}

// Register adds m to the address space. It fails with pattern.ErrInvalidAddress
// if m.Address is not a valid fully qualified address.
func (s *AddressSpace) Register(m *Method) error {
	if err := pattern.Validate(m.Address); err != nil {
		return errors.Wrapf(err, "registering method %q", m.Address)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, m)
	return nil
}

// Deregister removes m by identity. It is a no-op if m was never registered
// or has already been removed.
func (s *AddressSpace) Deregister(m *Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.methods {
		if existing == m {
			s.methods = append(s.methods[:i:i], s.methods[i+1:]...)
			return
		}
	}
}

// DeregisterAll removes every registered method.
func (s *AddressSpace) DeregisterAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = nil
}

// Dispatch delivers el to every matching method. For a *osc.Message, every
// registered method whose address matches the message's pattern with
// pattern.Full or pattern.Container, and whose RequiredArguments (if any)
// accept the message's arguments, has its handler invoked exactly once, in
// registration order. For a *osc.Bundle, each element is dispatched
// recursively with enclosing set to the bundle's own timetag; bundles are
// delivered flat, so a handler only ever sees *osc.Message values.
//
// The top-level call passes a nil enclosing timetag.
func (s *AddressSpace) Dispatch(el osc.Element, enclosing *osc.TimeTag) {
	switch e := el.(type) {
	case *osc.Message:
		s.dispatchMessage(e, enclosing)
	case *osc.Bundle:
		tt := e.TimeTag
		for _, child := range e.Elements {
			s.Dispatch(child, &tt)
		}
	}
}

func (s *AddressSpace) dispatchMessage(msg *osc.Message, enclosing *osc.TimeTag) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.methods {
		kind := pattern.Match(msg.Pattern, m.Address)
		if kind == pattern.None {
			continue
		}
		if !m.accepts(msg) {
			continue
		}
		m.Handler(msg, kind, enclosing)
	}
}
