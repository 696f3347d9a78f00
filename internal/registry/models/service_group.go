package models

import (
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// ServiceGroup is the root registry entity for one participant.
//
// Invariants:
//   - ParticipantID is set and immutable; it is the natural key
//   - the storage ID is derived from ParticipantID and cannot be set directly
//   - OwnerID is a non-nil user
//   - Extensions hold only well-formed XML fragments
//
// Service information, redirects and the business card of a participant are
// owned by its service group and are deleted with it.
type ServiceGroup struct {
	ParticipantID id.ParticipantID `json:"participant_id"`
	OwnerID       id.UserID        `json:"owner_id"`
	Extensions    Extensions       `json:"extensions,omitempty"`
}

// NewServiceGroup validates and builds a service group.
func NewServiceGroup(pid id.ParticipantID, owner id.UserID, ext Extensions) (*ServiceGroup, error) {
	if pid.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "participant identifier is required")
	}
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "owner is required")
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	return &ServiceGroup{ParticipantID: pid, OwnerID: owner, Extensions: ext}, nil
}

// ID is the storage ID of the group.
func (g *ServiceGroup) ID() string {
	return g.ParticipantID.StorageID()
}

// IsOwnedBy reports whether user owns the group.
func (g *ServiceGroup) IsOwnedBy(user id.UserID) bool {
	return g.OwnerID == user
}

// Equal compares service groups by storage ID only.
func (g *ServiceGroup) Equal(other *ServiceGroup) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.ID() == other.ID()
}
