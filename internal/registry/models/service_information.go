package models

import (
	"net/url"
	"strings"
	"time"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	strs "smp/pkg/platform/strings"
)

// ServiceInformation is the document-type-specific routing metadata of a
// participant. At most one exists per (service group, document type) pair and
// never alongside a Redirect for the same pair.
type ServiceInformation struct {
	ParticipantID  id.ParticipantID  `json:"participant_id"`
	DocumentTypeID id.DocumentTypeID `json:"document_type_id"`
	Processes      []Process         `json:"processes"`
	Extensions     Extensions        `json:"extensions,omitempty"`
}

// Process lists the endpoints serving one business process. Endpoints must
// have distinct transport profiles.
type Process struct {
	ProcessID  id.ProcessID `json:"process_id"`
	Endpoints  []Endpoint   `json:"endpoints"`
	Extensions Extensions   `json:"extensions,omitempty"`
}

// Endpoint is a network address accepting documents over one transport profile.
type Endpoint struct {
	TransportProfile              string     `json:"transport_profile"`
	EndpointReference             string     `json:"endpoint_reference"`
	RequireBusinessLevelSignature bool       `json:"require_business_level_signature"`
	MinimumAuthenticationLevel    string     `json:"minimum_authentication_level,omitempty"`
	ServiceActivation             *time.Time `json:"service_activation,omitempty"`
	ServiceExpiration             *time.Time `json:"service_expiration,omitempty"`
	Certificate                   string     `json:"certificate,omitempty"`
	ServiceDescription            string     `json:"service_description,omitempty"`
	TechnicalContactURL           string     `json:"technical_contact_url,omitempty"`
	TechnicalInformationURL       string     `json:"technical_information_url,omitempty"`
	Extensions                    Extensions `json:"extensions,omitempty"`
}

// NewServiceInformation validates and builds service information.
func NewServiceInformation(pid id.ParticipantID, docType id.DocumentTypeID, processes []Process, ext Extensions) (*ServiceInformation, error) {
	si := &ServiceInformation{
		ParticipantID:  pid,
		DocumentTypeID: docType,
		Processes:      processes,
		Extensions:     ext,
	}
	if err := si.Validate(); err != nil {
		return nil, err
	}
	return si, nil
}

// Validate checks the entity and all nested processes and endpoints.
func (si *ServiceInformation) Validate() error {
	if si.ParticipantID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "participant identifier is required")
	}
	if si.DocumentTypeID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "document type identifier is required")
	}
	if err := si.Extensions.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(si.Processes))
	for i := range si.Processes {
		p := &si.Processes[i]
		if _, dup := seen[p.ProcessID.URI()]; dup {
			return dErrors.Newf(dErrors.CodeValidation, "process %s is listed twice", p.ProcessID)
		}
		seen[p.ProcessID.URI()] = struct{}{}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Key identifies the (service group, document type) pair.
func (si *ServiceInformation) Key() string {
	return DocumentKey(si.ParticipantID, si.DocumentTypeID)
}

// Equal compares by (service group ID, document type).
func (si *ServiceInformation) Equal(other *ServiceInformation) bool {
	if si == nil || other == nil {
		return si == other
	}
	return si.Key() == other.Key()
}

// TransportProfiles returns the distinct transport profiles referenced by the
// endpoints, in first-use order.
func (si *ServiceInformation) TransportProfiles() []string {
	var out []string
	for _, p := range si.Processes {
		for _, ep := range p.Endpoints {
			out = append(out, ep.TransportProfile)
		}
	}
	return strs.DedupeAndTrim(out)
}

// Validate checks the process and its endpoints.
func (p *Process) Validate() error {
	if p.ProcessID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "process identifier is required")
	}
	if err := p.Extensions.Validate(); err != nil {
		return err
	}
	profiles := make(map[string]struct{}, len(p.Endpoints))
	for i := range p.Endpoints {
		ep := &p.Endpoints[i]
		if err := ep.Validate(); err != nil {
			return err
		}
		if _, dup := profiles[ep.TransportProfile]; dup {
			return dErrors.Newf(dErrors.CodeValidation,
				"process %s has two endpoints with transport profile %q", p.ProcessID, ep.TransportProfile)
		}
		profiles[ep.TransportProfile] = struct{}{}
	}
	return nil
}

// Validate checks a single endpoint.
func (ep *Endpoint) Validate() error {
	if strings.TrimSpace(ep.TransportProfile) == "" {
		return dErrors.New(dErrors.CodeValidation, "endpoint transport profile is required")
	}
	if err := validateAbsoluteURL("endpoint reference", ep.EndpointReference); err != nil {
		return err
	}
	if ep.ServiceActivation != nil && ep.ServiceExpiration != nil &&
		ep.ServiceExpiration.Before(*ep.ServiceActivation) {
		return dErrors.New(dErrors.CodeValidation, "endpoint expires before it is activated")
	}
	return ep.Extensions.Validate()
}

// IsActiveAt reports whether now lies inside the activation window.
func (ep *Endpoint) IsActiveAt(now time.Time) bool {
	if ep.ServiceActivation != nil && now.Before(*ep.ServiceActivation) {
		return false
	}
	if ep.ServiceExpiration != nil && !now.Before(*ep.ServiceExpiration) {
		return false
	}
	return true
}

// DocumentKey is the natural key of service information and redirects.
func DocumentKey(pid id.ParticipantID, docType id.DocumentTypeID) string {
	return pid.StorageID() + "\x00" + docType.URI()
}

func validateAbsoluteURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return dErrors.Newf(dErrors.CodeValidation, "%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return dErrors.Newf(dErrors.CodeValidation, "%s must be an absolute URL", field)
	}
	return nil
}
