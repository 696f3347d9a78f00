// Package ports declares the manager contract every storage backend satisfies.
//
// Shared rules for all managers:
//   - Create fails with dErrors.CodeAlreadyExists when the natural key exists
//     and never overwrites.
//   - Get returns (nil, nil) for an unknown key; List returns an empty slice.
//   - Delete is idempotent: deleting an absent entity returns models.Unchanged.
//   - Engine-specific failures are wrapped with dErrors.CodeBackend so no
//     engine type leaks through the contract.
package ports

//go:generate mockgen -source=managers.go -destination=mocks/mocks.go -package=mocks ServiceGroupManager,ServiceInformationManager,RedirectManager,BusinessCardManager,UserManager,SettingsManager,TransportProfileManager,LocatorInfoManager

import (
	"context"

	"smp/internal/registry/models"
	id "smp/pkg/domain"
)

// ServiceGroupManager stores service groups. Delete cascades to the group's
// service information, redirects and business card in one operation.
type ServiceGroupManager interface {
	Create(ctx context.Context, group *models.ServiceGroup) error
	// Update replaces owner and extensions. Fails with CodeNotFound if the
	// group does not exist.
	Update(ctx context.Context, pid id.ParticipantID, owner id.UserID, ext models.Extensions) (models.Change, error)
	Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error)
	Get(ctx context.Context, pid id.ParticipantID) (*models.ServiceGroup, error)
	Contains(ctx context.Context, pid id.ParticipantID) (bool, error)
	List(ctx context.Context) ([]*models.ServiceGroup, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.ServiceGroup, error)
	Count(ctx context.Context) (int, error)
}

// ServiceInformationManager stores per-document-type routing metadata.
type ServiceInformationManager interface {
	// Merge inserts or replaces the entry for the (group, document type) pair,
	// replacing its processes. Fails with CodeNotFound without a service group
	// and with CodeConflict when a redirect occupies the pair.
	Merge(ctx context.Context, info *models.ServiceInformation) (models.Change, error)
	Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.ServiceInformation, error)
	ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.ServiceInformation, error)
	List(ctx context.Context) ([]*models.ServiceInformation, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error)
	DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error)
	ContainsEndpointWithTransportProfile(ctx context.Context, profileID string) (bool, error)
}

// RedirectManager stores redirects.
type RedirectManager interface {
	// CreateOrUpdate fails with CodeNotFound without a service group and with
	// CodeConflict when service information occupies the pair.
	CreateOrUpdate(ctx context.Context, redirect *models.Redirect) (models.Change, error)
	Get(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (*models.Redirect, error)
	ListOfServiceGroup(ctx context.Context, pid id.ParticipantID) ([]*models.Redirect, error)
	List(ctx context.Context) ([]*models.Redirect, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error)
	DeleteAllOfServiceGroup(ctx context.Context, pid id.ParticipantID) (models.Change, error)
}

// BusinessCardManager stores at most one business card per service group.
type BusinessCardManager interface {
	// CreateOrUpdate fails with CodeNotFound without a service group.
	CreateOrUpdate(ctx context.Context, card *models.BusinessCard) (models.Change, error)
	Get(ctx context.Context, pid id.ParticipantID) (*models.BusinessCard, error)
	List(ctx context.Context) ([]*models.BusinessCard, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, pid id.ParticipantID) (models.Change, error)
}

// UserManager stores registry users. Names are unique (case-insensitive).
type UserManager interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID id.UserID) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, userID id.UserID) (models.Change, error)
	// Authenticate fails with CodeUnauthorized for an unknown name or a wrong
	// password, without telling the two apart.
	Authenticate(ctx context.Context, name, password string) (*models.User, error)
}

// SettingsManager stores the single settings record.
type SettingsManager interface {
	// Get returns models.DefaultSettings when nothing was stored yet.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) (models.Change, error)
}

// TransportProfileManager stores transport profiles.
type TransportProfileManager interface {
	Create(ctx context.Context, profile *models.TransportProfile) error
	// Update fails with CodeNotFound for an unknown profile.
	Update(ctx context.Context, profile *models.TransportProfile) (models.Change, error)
	Get(ctx context.Context, profileID string) (*models.TransportProfile, error)
	List(ctx context.Context) ([]*models.TransportProfile, error)
	Delete(ctx context.Context, profileID string) (models.Change, error)
}

// LocatorInfoManager stores the known locator deployments.
type LocatorInfoManager interface {
	// Create assigns a fresh ID and returns the stored record.
	Create(ctx context.Context, info *models.LocatorInfo) (*models.LocatorInfo, error)
	// Update fails with CodeNotFound for an unknown ID.
	Update(ctx context.Context, info *models.LocatorInfo) (models.Change, error)
	Get(ctx context.Context, infoID string) (*models.LocatorInfo, error)
	List(ctx context.Context) ([]*models.LocatorInfo, error)
	Delete(ctx context.Context, infoID string) (models.Change, error)
}
