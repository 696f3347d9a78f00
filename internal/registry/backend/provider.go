// Package backend defines what a storage engine must provide and the registry
// that maps backend identifiers to engine factories.
package backend

import (
	"context"
	"log/slog"

	"smp/internal/platform/config"
	"smp/internal/registry/ports"
)

// Provider is one opened storage engine. Each Create* method returns a
// manager bound to the engine; callers may invoke them more than once.
type Provider interface {
	CreateServiceGroupManager() ports.ServiceGroupManager
	CreateServiceInformationManager() ports.ServiceInformationManager
	CreateRedirectManager() ports.RedirectManager
	CreateBusinessCardManager() ports.BusinessCardManager
	CreateUserManager() ports.UserManager
	CreateSettingsManager() ports.SettingsManager
	CreateTransportProfileManager() ports.TransportProfileManager
	CreateLocatorInfoManager() ports.LocatorInfoManager

	// Close releases engine resources (connections, file locks).
	Close() error
}

// Factory opens a Provider from configuration.
type Factory func(ctx context.Context, cfg config.Backend, logger *slog.Logger) (Provider, error)

// Registrar is the registration surface handed to installers.
type Registrar interface {
	Register(id string, factory Factory) error
}

// Installer registers one or more backends. Each engine package exposes one;
// the process lists them explicitly so the available set is known at compile time.
type Installer func(r Registrar) error
