package surface

import (
	"fmt"
	"sync"
)

// Memory is an in-process Manager that only records windows. It is used when
// no browser should be launched, and by tests.
type Memory struct {
	mu      sync.Mutex
	windows map[string]WindowSpec
	opened  []WindowSpec
	closed  []string

	// OpenErr, when set, is returned by Open instead of creating a window.
	OpenErr error
}

// NewMemory creates an empty in-memory window registry.
func NewMemory() *Memory {
	return &Memory{windows: make(map[string]WindowSpec)}
}

// Open records spec as an open window.
func (m *Memory) Open(spec WindowSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OpenErr != nil {
		return m.OpenErr
	}
	if _, ok := m.windows[spec.Label]; ok {
		return fmt.Errorf("%w: %s", ErrWindowExists, spec.Label)
	}
	m.windows[spec.Label] = spec
	m.opened = append(m.opened, spec)
	return nil
}

// Close removes the window with label.
func (m *Memory) Close(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = append(m.closed, label)
	if _, ok := m.windows[label]; !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, label)
	}
	delete(m.windows, label)
	return nil
}

// Window returns the open window with label, if any.
func (m *Memory) Window(label string) (WindowSpec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	spec, ok := m.windows[label]
	return spec, ok
}

// Opened returns every spec passed to a successful Open, in order.
func (m *Memory) Opened() []WindowSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]WindowSpec(nil), m.opened...)
}

// Closed returns every label passed to Close, in order, including misses.
func (m *Memory) Closed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.closed...)
}
