package backend

import (
	"slices"
	"strings"
	"sync"

	dErrors "smp/pkg/domain-errors"
)

// table is the registration state of one discovery pass plus any explicit
// Register calls made after it.
type table struct {
	factories map[string]Factory
	order     []string
}

func newTable() *table {
	return &table{factories: make(map[string]Factory)}
}

func (t *table) Register(id string, factory Factory) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return dErrors.New(dErrors.CodeValidation, "backend id is required")
	}
	if factory == nil {
		return dErrors.Newf(dErrors.CodeValidation, "backend %q has no factory", id)
	}
	if _, exists := t.factories[id]; exists {
		return dErrors.Newf(dErrors.CodeDuplicateBackend, "backend %q is already registered", id)
	}
	t.factories[id] = factory
	t.order = append(t.order, id)
	return nil
}

// Registry maps backend identifiers to factories. Resolutions run
// concurrently; registration and reinitialisation are exclusive.
type Registry struct {
	mu         sync.RWMutex
	current    *table
	installers []Installer
}

// NewRegistry runs every installer once, in order, and returns the populated
// registry. A failing installer (for example a duplicate id) aborts construction.
func NewRegistry(installers ...Installer) (*Registry, error) {
	r := &Registry{installers: slices.Clone(installers)}
	t, err := discover(r.installers)
	if err != nil {
		return nil, err
	}
	r.current = t
	return r, nil
}

func discover(installers []Installer) (*table, error) {
	t := newTable()
	for _, install := range installers {
		if err := install(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Register adds a factory. It fails with CodeDuplicateBackend when id is
// taken; the existing factory stays active.
func (r *Registry) Register(id string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Register(id, factory)
}

// Resolve returns the factory for id. Empty and unknown ids yield ok=false.
func (r *Registry) Resolve(id string) (Factory, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.current.factories[id]
	return f, ok
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.current.order)
}

// Reinitialize discards the table and re-runs all installers. The new table
// is built completely under the write lock before it replaces the old one,
// so concurrent Resolve calls see either the previous or the new pass, never
// a partial one. If the pass fails the previous table stays in place.
func (r *Registry) Reinitialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := discover(r.installers)
	if err != nil {
		return err
	}
	r.current = t
	return nil
}
