// Package locator talks to the network-wide locator service (SML) that maps
// participant identifiers to the registry serving them.
package locator

import (
	"context"

	id "smp/pkg/domain"
)

// Client announces and retracts participants at the locator. Both calls are
// idempotent enough that deregistering an unknown participant succeeds.
type Client interface {
	RegisterParticipant(ctx context.Context, pid id.ParticipantID) error
	DeregisterParticipant(ctx context.Context, pid id.ParticipantID) error
}

// Disabled is used when locator integration is switched off in
// configuration. It never calls out and always succeeds.
type Disabled struct{}

var _ Client = Disabled{}

func (Disabled) RegisterParticipant(context.Context, id.ParticipantID) error   { return nil }
func (Disabled) DeregisterParticipant(context.Context, id.ParticipantID) error { return nil }
