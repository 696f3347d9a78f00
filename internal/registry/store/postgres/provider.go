// Package postgres is the relational storage backend (backend id "sql").
// Every service group child table cascades on delete, so removing a group
// removes its service information, redirects and business card in the same
// statement.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"smp/internal/platform/config"
	platformpostgres "smp/internal/platform/postgres"
	"smp/internal/registry/backend"
	"smp/internal/registry/ports"
)

// BackendID selects this engine in configuration.
const BackendID = "sql"

//go:embed migrations/*.sql
var migrations embed.FS

// Tables lists every table of the schema, children after parents.
var Tables = []string{
	"smp_user", "servicegroup", "service_metadata", "process", "endpoint",
	"redirect", "business_card", "settings", "transport_profile", "sml_info",
	"audit_event",
}

// Register installs the engine in a backend registry.
func Register(r backend.Registrar) error {
	return r.Register(BackendID, func(ctx context.Context, cfg config.Backend, logger *slog.Logger) (backend.Provider, error) {
		db, err := platformpostgres.Open(ctx, cfg.SQL)
		if err != nil {
			return nil, err
		}
		if cfg.SQL.Migrate {
			if err := Migrate(cfg.SQL.DSN); err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.InfoContext(ctx, "sql schema is up to date")
		}
		return NewProvider(db, logger), nil
	})
}

// Migrate applies the embedded schema migrations to the database at dsn.
func Migrate(dsn string) error {
	return platformpostgres.Migrate(dsn, migrations, "migrations")
}

// Provider exposes the SQL managers as a storage backend.
type Provider struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ backend.Provider = (*Provider)(nil)

// NewProvider takes ownership of db; Close closes it.
func NewProvider(db *sql.DB, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{db: db, logger: logger}
}

func (p *Provider) CreateServiceGroupManager() ports.ServiceGroupManager {
	return NewServiceGroupStore(p.db)
}

func (p *Provider) CreateServiceInformationManager() ports.ServiceInformationManager {
	return NewServiceInformationStore(p.db)
}

func (p *Provider) CreateRedirectManager() ports.RedirectManager {
	return NewRedirectStore(p.db)
}

func (p *Provider) CreateBusinessCardManager() ports.BusinessCardManager {
	return NewBusinessCardStore(p.db)
}

func (p *Provider) CreateUserManager() ports.UserManager {
	return NewUserStore(p.db)
}

func (p *Provider) CreateSettingsManager() ports.SettingsManager {
	return NewSettingsStore(p.db)
}

func (p *Provider) CreateTransportProfileManager() ports.TransportProfileManager {
	return NewTransportProfileStore(p.db)
}

func (p *Provider) CreateLocatorInfoManager() ports.LocatorInfoManager {
	return NewLocatorInfoStore(p.db)
}

func (p *Provider) Close() error {
	p.logger.Debug("closing sql pool")
	return p.db.Close()
}
