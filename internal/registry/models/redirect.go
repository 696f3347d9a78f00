package models

import (
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// Redirect points lookups for one document type at another registry. It
// replaces service information for the same pair; the two never coexist.
type Redirect struct {
	ParticipantID           id.ParticipantID  `json:"participant_id"`
	DocumentTypeID          id.DocumentTypeID `json:"document_type_id"`
	TargetHref              string            `json:"target_href"`
	SubjectUniqueIdentifier string            `json:"subject_unique_identifier"`
	Certificate             string            `json:"certificate,omitempty"`
	Extensions              Extensions        `json:"extensions,omitempty"`
}

// NewRedirect validates and builds a redirect.
func NewRedirect(pid id.ParticipantID, docType id.DocumentTypeID, targetHref, subjectUID, certificate string, ext Extensions) (*Redirect, error) {
	r := &Redirect{
		ParticipantID:           pid,
		DocumentTypeID:          docType,
		TargetHref:              targetHref,
		SubjectUniqueIdentifier: subjectUID,
		Certificate:             certificate,
		Extensions:              ext,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Redirect) Validate() error {
	if r.ParticipantID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "participant identifier is required")
	}
	if r.DocumentTypeID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "document type identifier is required")
	}
	if err := validateAbsoluteURL("redirect target", r.TargetHref); err != nil {
		return err
	}
	if r.SubjectUniqueIdentifier == "" {
		return dErrors.New(dErrors.CodeValidation, "redirect subject unique identifier is required")
	}
	return r.Extensions.Validate()
}

func (r *Redirect) Key() string {
	return DocumentKey(r.ParticipantID, r.DocumentTypeID)
}

// Equal compares by (service group ID, document type).
func (r *Redirect) Equal(other *Redirect) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Key() == other.Key()
}
