package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	strs "smp/pkg/platform/strings"
)

// BusinessCard is the directory-facing description of a participant. There
// is at most one per service group and it is deleted with the group.
type BusinessCard struct {
	ParticipantID id.ParticipantID     `json:"participant_id"`
	Entities      []BusinessCardEntity `json:"entities"`
}

// BusinessCardEntity describes one legal entity behind the participant.
type BusinessCardEntity struct {
	ID                      string                   `json:"id"`
	Names                   []BusinessCardName       `json:"names"`
	CountryCode             string                   `json:"country_code"`
	GeographicalInformation string                   `json:"geographical_information,omitempty"`
	Identifiers             []BusinessCardIdentifier `json:"identifiers,omitempty"`
	WebsiteURIs             []string                 `json:"website_uris,omitempty"`
	Contacts                []BusinessCardContact    `json:"contacts,omitempty"`
	AdditionalInformation   string                   `json:"additional_information,omitempty"`
	RegistrationDate        *time.Time               `json:"registration_date,omitempty"`
}

type BusinessCardName struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

type BusinessCardIdentifier struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

type BusinessCardContact struct {
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

// NewBusinessCard validates the card, assigns IDs to entities that lack one
// and drops blank or repeated website URIs.
func NewBusinessCard(pid id.ParticipantID, entities []BusinessCardEntity) (*BusinessCard, error) {
	bc := &BusinessCard{ParticipantID: pid, Entities: entities}
	for i := range bc.Entities {
		if bc.Entities[i].ID == "" {
			bc.Entities[i].ID = uuid.NewString()
		}
		bc.Entities[i].WebsiteURIs = strs.DedupeAndTrim(bc.Entities[i].WebsiteURIs)
	}
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	return bc, nil
}

func (bc *BusinessCard) Validate() error {
	if bc.ParticipantID.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "participant identifier is required")
	}
	for i := range bc.Entities {
		if err := bc.Entities[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ID is the storage ID of the owning service group.
func (bc *BusinessCard) ID() string {
	return bc.ParticipantID.StorageID()
}

func (e *BusinessCardEntity) Validate() error {
	if len(e.Names) == 0 {
		return dErrors.New(dErrors.CodeValidation, "business card entity needs at least one name")
	}
	for _, n := range e.Names {
		if strings.TrimSpace(n.Name) == "" {
			return dErrors.New(dErrors.CodeValidation, "business card entity name must not be blank")
		}
	}
	if len(e.CountryCode) != 2 || strings.ToUpper(e.CountryCode) != e.CountryCode {
		return dErrors.Newf(dErrors.CodeValidation, "country code %q must be two upper-case letters", e.CountryCode)
	}
	for _, ident := range e.Identifiers {
		if ident.Scheme == "" || ident.Value == "" {
			return dErrors.New(dErrors.CodeValidation, "business card identifier needs scheme and value")
		}
	}
	for _, site := range e.WebsiteURIs {
		if err := validateAbsoluteURL("website", site); err != nil {
			return err
		}
	}
	return nil
}
