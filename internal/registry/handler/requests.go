package handler

import (
	"smp/internal/registry/models"
	dErrors "smp/pkg/domain-errors"
)

// ServiceGroupRequest is the body of PUT /{participant}. The owner is the
// authenticated user.
type ServiceGroupRequest struct {
	Extensions models.Extensions `json:"extensions,omitempty"`
}

func (r *ServiceGroupRequest) Validate() error {
	return r.Extensions.Validate()
}

// ServiceMetadataRequest is the body of PUT /{participant}/services/{doctype}.
// It carries either processes (service information) or a redirect.
type ServiceMetadataRequest struct {
	Processes  []models.Process  `json:"processes,omitempty"`
	Redirect   *RedirectRequest  `json:"redirect,omitempty"`
	Extensions models.Extensions `json:"extensions,omitempty"`
}

type RedirectRequest struct {
	TargetHref              string `json:"target_href"`
	SubjectUniqueIdentifier string `json:"subject_unique_identifier"`
	Certificate             string `json:"certificate,omitempty"`
}

func (r *ServiceMetadataRequest) Validate() error {
	switch {
	case r.Redirect != nil && len(r.Processes) > 0:
		return dErrors.New(dErrors.CodeValidation, "service metadata has either processes or a redirect, not both")
	case r.Redirect == nil && len(r.Processes) == 0:
		return dErrors.New(dErrors.CodeValidation, "service metadata needs processes or a redirect")
	}
	return r.Extensions.Validate()
}

// BusinessCardRequest is the body of PUT /{participant}/businesscard.
type BusinessCardRequest struct {
	Entities []models.BusinessCardEntity `json:"entities"`
}

func (r *BusinessCardRequest) Validate() error {
	if len(r.Entities) == 0 {
		return dErrors.New(dErrors.CodeValidation, "business card needs at least one entity")
	}
	return nil
}

// ServiceGroupResponse reports a service group write. OperationID is set
// when the write went through the registration coordinator.
type ServiceGroupResponse struct {
	ParticipantID string `json:"participant_id"`
	OperationID   string `json:"operation_id,omitempty"`
	Changed       bool   `json:"changed"`
}

// ChangeResponse reports whether a save modified anything.
type ChangeResponse struct {
	Changed bool `json:"changed"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}
