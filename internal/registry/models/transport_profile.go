package models

import (
	"strings"

	dErrors "smp/pkg/domain-errors"
)

const maxTransportProfileIDLength = 256

// TransportProfile names a protocol an endpoint can speak (for example
// "peppol-transport-as4-v2_0"). Endpoints reference profiles by ID.
type TransportProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Deprecated bool   `json:"deprecated"`
}

func NewTransportProfile(profileID, name string, deprecated bool) (*TransportProfile, error) {
	p := &TransportProfile{ID: strings.TrimSpace(profileID), Name: strings.TrimSpace(name), Deprecated: deprecated}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *TransportProfile) Validate() error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "transport profile id is required")
	}
	if len(p.ID) > maxTransportProfileIDLength {
		return dErrors.Newf(dErrors.CodeValidation, "transport profile id exceeds %d characters", maxTransportProfileIDLength)
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "transport profile name is required")
	}
	return nil
}
