package kv

import (
	"log/slog"

	"smp/internal/registry/backend"
	"smp/internal/registry/ports"
)

// Provider exposes the kv managers of one Store as a storage backend.
type Provider struct {
	store  Store
	logger *slog.Logger
}

var _ backend.Provider = (*Provider)(nil)

// NewProvider takes ownership of store; Close closes it.
func NewProvider(store Store, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{store: store, logger: logger}
}

func (p *Provider) CreateServiceGroupManager() ports.ServiceGroupManager {
	return NewServiceGroupStore(p.store)
}

func (p *Provider) CreateServiceInformationManager() ports.ServiceInformationManager {
	return NewServiceInformationStore(p.store)
}

func (p *Provider) CreateRedirectManager() ports.RedirectManager {
	return NewRedirectStore(p.store)
}

func (p *Provider) CreateBusinessCardManager() ports.BusinessCardManager {
	return NewBusinessCardStore(p.store)
}

func (p *Provider) CreateUserManager() ports.UserManager {
	return NewUserStore(p.store)
}

func (p *Provider) CreateSettingsManager() ports.SettingsManager {
	return NewSettingsStore(p.store)
}

func (p *Provider) CreateTransportProfileManager() ports.TransportProfileManager {
	return NewTransportProfileStore(p.store)
}

func (p *Provider) CreateLocatorInfoManager() ports.LocatorInfoManager {
	return NewLocatorInfoStore(p.store)
}

func (p *Provider) Close() error {
	p.logger.Debug("closing kv store")
	return p.store.Close()
}
