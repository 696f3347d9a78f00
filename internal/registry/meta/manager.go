// Package meta is the facade through which every component reaches the
// managers of the active storage backend.
package meta

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
	"smp/internal/registry/ports"
	dErrors "smp/pkg/domain-errors"
)

// Resolver looks up backend factories by id. *backend.Registry satisfies it.
type Resolver interface {
	Resolve(id string) (backend.Factory, bool)
	IDs() []string
}

// bundle is one installed provider with its lazily created managers.
type bundle struct {
	id       string
	provider backend.Provider

	serviceGroups      func() ports.ServiceGroupManager
	serviceInformation func() ports.ServiceInformationManager
	redirects          func() ports.RedirectManager
	businessCards      func() ports.BusinessCardManager
	users              func() ports.UserManager
	settings           func() ports.SettingsManager
	transportProfiles  func() ports.TransportProfileManager
	locatorInfo        func() ports.LocatorInfoManager
}

func newBundle(id string, p backend.Provider) *bundle {
	return &bundle{
		id:                 id,
		provider:           p,
		serviceGroups:      sync.OnceValue(p.CreateServiceGroupManager),
		serviceInformation: sync.OnceValue(p.CreateServiceInformationManager),
		redirects:          sync.OnceValue(p.CreateRedirectManager),
		businessCards:      sync.OnceValue(p.CreateBusinessCardManager),
		users:              sync.OnceValue(p.CreateUserManager),
		settings:           sync.OnceValue(p.CreateSettingsManager),
		transportProfiles:  sync.OnceValue(p.CreateTransportProfileManager),
		locatorInfo:        sync.OnceValue(p.CreateLocatorInfoManager),
	}
}

// Manager holds the single active manager bundle. Swaps are atomic: readers
// see the old or the new bundle, never a mix.
type Manager struct {
	resolver Resolver
	cfg      config.Backend
	logger   *slog.Logger

	active atomic.Pointer[bundle]
	init   singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a Manager with no active backend.
func New(resolver Resolver, cfg config.Backend, opts ...Option) (*Manager, error) {
	if resolver == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "backend resolver is required")
	}
	m := &Manager{
		resolver: resolver,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// InitFromConfiguration opens the backend named by the configured id and
// installs it. An unknown id is fatal and the error lists the known ids.
// Concurrent callers share one initialisation; when a backend is already
// active the call is a no-op.
func (m *Manager) InitFromConfiguration(ctx context.Context) error {
	if m.active.Load() != nil {
		return nil
	}
	_, err, _ := m.init.Do("init", func() (any, error) {
		if m.active.Load() != nil {
			return nil, nil
		}
		id := strings.TrimSpace(m.cfg.ID)
		factory, ok := m.resolver.Resolve(id)
		if !ok {
			return nil, dErrors.Newf(dErrors.CodeValidation,
				"unknown storage backend %q; known backends: %s", id, strings.Join(m.resolver.IDs(), ", "))
		}
		provider, err := factory(ctx, m.cfg, m.logger)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBackend, "failed to open storage backend "+id)
		}
		m.active.Store(newBundle(id, provider))
		m.logger.InfoContext(ctx, "storage backend initialised", "backend_id", id)
		return nil, nil
	})
	return err
}

// SetManagerProvider installs p as the active backend. Passing nil clears it,
// so accessors fail with CodeNotInitialized until the next initialisation.
// The previously active provider is returned and is not closed.
func (m *Manager) SetManagerProvider(p backend.Provider) backend.Provider {
	var next *bundle
	if p != nil {
		next = newBundle("custom", p)
	}
	prev := m.active.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.provider
}

// BackendID returns the id of the active backend, or "" when none is active.
func (m *Manager) BackendID() string {
	if b := m.active.Load(); b != nil {
		return b.id
	}
	return ""
}

// Close closes and clears the active backend.
func (m *Manager) Close() error {
	prev := m.active.Swap(nil)
	if prev == nil {
		return nil
	}
	return prev.provider.Close()
}

func (m *Manager) current() (*bundle, error) {
	b := m.active.Load()
	if b == nil {
		return nil, dErrors.New(dErrors.CodeNotInitialized, "no storage backend is active")
	}
	return b, nil
}

func (m *Manager) ServiceGroupManager() (ports.ServiceGroupManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.serviceGroups(), nil
}

func (m *Manager) ServiceInformationManager() (ports.ServiceInformationManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.serviceInformation(), nil
}

func (m *Manager) RedirectManager() (ports.RedirectManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.redirects(), nil
}

func (m *Manager) BusinessCardManager() (ports.BusinessCardManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.businessCards(), nil
}

func (m *Manager) UserManager() (ports.UserManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.users(), nil
}

func (m *Manager) SettingsManager() (ports.SettingsManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.settings(), nil
}

func (m *Manager) TransportProfileManager() (ports.TransportProfileManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.transportProfiles(), nil
}

func (m *Manager) LocatorInfoManager() (ports.LocatorInfoManager, error) {
	b, err := m.current()
	if err != nil {
		return nil, err
	}
	return b.locatorInfo(), nil
}
