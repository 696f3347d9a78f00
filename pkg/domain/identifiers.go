package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	dErrors "smp/pkg/domain-errors"
)

// URISeparator joins scheme and value in the textual form of an identifier.
const URISeparator = "::"

// Well-known identifier schemes of the PEPPOL network.
const (
	SchemeParticipantISO6523 = "iso6523-actorid-upis"
	SchemeDocTypeBusdox      = "busdox-docid-qns"
	SchemeDocTypeWildcard    = "peppol-doctype-wildcard"
	SchemeProcessCenbii      = "cenbii-procid-ubl"
)

const (
	maxSchemeLength           = 25
	maxParticipantValueLength = 135
	maxDocTypeValueLength     = 500
	maxProcessValueLength     = 200
)

// caseInsensitiveParticipantSchemes have their values compared after folding to
// lower case.
var caseInsensitiveParticipantSchemes = map[string]bool{
	SchemeParticipantISO6523: true,
}

// ParticipantID is the immutable scheme+value identifier of a network
// participant and the natural key of everything it owns.
type ParticipantID struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// DocumentTypeID identifies a document type a participant can receive.
type DocumentTypeID struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// ProcessID identifies the business process a document type is exchanged in.
type ProcessID struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// NewParticipantID validates scheme and value.
func NewParticipantID(scheme, value string) (ParticipantID, error) {
	if err := validatePart("participant", scheme, value, maxParticipantValueLength); err != nil {
		return ParticipantID{}, err
	}
	return ParticipantID{Scheme: scheme, Value: value}, nil
}

// ParseParticipantID parses the "scheme::value" form.
func ParseParticipantID(uri string) (ParticipantID, error) {
	scheme, value, err := splitURI("participant", uri)
	if err != nil {
		return ParticipantID{}, err
	}
	return NewParticipantID(scheme, value)
}

// MustParticipantID is for tests and constant tables.
func MustParticipantID(uri string) ParticipantID {
	p, err := ParseParticipantID(uri)
	if err != nil {
		panic(err)
	}
	return p
}

func (p ParticipantID) URI() string    { return p.Scheme + URISeparator + p.Value }
func (p ParticipantID) String() string { return p.URI() }
func (p ParticipantID) IsZero() bool   { return p.Scheme == "" && p.Value == "" }

// StorageID is the deterministic storage key of the participant's service
// group: the URI form with case-insensitive schemes folded to lower case.
func (p ParticipantID) StorageID() string {
	scheme := strings.ToLower(p.Scheme)
	value := p.Value
	if caseInsensitiveParticipantSchemes[scheme] {
		value = strings.ToLower(value)
	}
	return scheme + URISeparator + value
}

// Equal compares two participants by storage ID.
func (p ParticipantID) Equal(other ParticipantID) bool {
	return p.StorageID() == other.StorageID()
}

// NewDocumentTypeID validates scheme and value.
func NewDocumentTypeID(scheme, value string) (DocumentTypeID, error) {
	if err := validatePart("document type", scheme, value, maxDocTypeValueLength); err != nil {
		return DocumentTypeID{}, err
	}
	return DocumentTypeID{Scheme: scheme, Value: value}, nil
}

// ParseDocumentTypeID parses the "scheme::value" form.
func ParseDocumentTypeID(uri string) (DocumentTypeID, error) {
	scheme, value, err := splitURI("document type", uri)
	if err != nil {
		return DocumentTypeID{}, err
	}
	return NewDocumentTypeID(scheme, value)
}

// MustDocumentTypeID is for tests and constant tables.
func MustDocumentTypeID(uri string) DocumentTypeID {
	d, err := ParseDocumentTypeID(uri)
	if err != nil {
		panic(err)
	}
	return d
}

func (d DocumentTypeID) URI() string    { return d.Scheme + URISeparator + d.Value }
func (d DocumentTypeID) String() string { return d.URI() }
func (d DocumentTypeID) IsZero() bool   { return d.Scheme == "" && d.Value == "" }

// NewProcessID validates scheme and value.
func NewProcessID(scheme, value string) (ProcessID, error) {
	if err := validatePart("process", scheme, value, maxProcessValueLength); err != nil {
		return ProcessID{}, err
	}
	return ProcessID{Scheme: scheme, Value: value}, nil
}

// ParseProcessID parses the "scheme::value" form.
func ParseProcessID(uri string) (ProcessID, error) {
	scheme, value, err := splitURI("process", uri)
	if err != nil {
		return ProcessID{}, err
	}
	return NewProcessID(scheme, value)
}

func (p ProcessID) URI() string    { return p.Scheme + URISeparator + p.Value }
func (p ProcessID) String() string { return p.URI() }
func (p ProcessID) IsZero() bool   { return p.Scheme == "" && p.Value == "" }

func splitURI(kind, uri string) (string, string, error) {
	scheme, value, ok := strings.Cut(uri, URISeparator)
	if !ok {
		return "", "", dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier %q must have the form scheme::value", kind, uri)
	}
	return scheme, value, nil
}

func validatePart(kind, scheme, value string, maxValue int) error {
	switch {
	case scheme == "":
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier scheme is required", kind)
	case value == "":
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier value is required", kind)
	case len(scheme) > maxSchemeLength:
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier scheme exceeds %d characters", kind, maxSchemeLength)
	case utf8.RuneCountInString(value) > maxValue:
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier value exceeds %d characters", kind, maxValue)
	case !utf8.ValidString(scheme) || !utf8.ValidString(value):
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier is not valid UTF-8", kind)
	case strings.Contains(scheme, URISeparator):
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier scheme must not contain %q", kind, URISeparator)
	}
	if strings.ContainsAny(scheme, " \t\r\n\x00") {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s identifier scheme contains whitespace", kind))
	}
	// Stored child keys use NUL to end the participant part.
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s identifier value contains a control character", kind)
	}
	return nil
}
