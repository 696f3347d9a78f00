package models

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	dErrors "smp/pkg/domain-errors"
)

// Extension is one opaque XML fragment attached to a registry entity, with
// the optional descriptive attributes the network's extension element allows.
type Extension struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	AgencyID   string `json:"agencyID,omitempty"`
	AgencyName string `json:"agencyName,omitempty"`
	AgencyURI  string `json:"agencyURI,omitempty"`
	VersionID  string `json:"versionID,omitempty"`
	URI        string `json:"uri,omitempty"`
	ReasonCode string `json:"reasonCode,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Any        string `json:"any"`
}

// Extensions is an ordered list of fragments. A nil or empty list means "no
// extension" and encodes to the empty string.
type Extensions []Extension

// NewExtension wraps a raw XML fragment, rejecting it if it is not a single
// well-formed element.
func NewExtension(fragment string) (Extension, error) {
	if err := ValidateXMLFragment(fragment); err != nil {
		return Extension{}, err
	}
	return Extension{Any: fragment}, nil
}

// MustExtension is for tests and constant tables.
func MustExtension(fragment string) Extension {
	e, err := NewExtension(fragment)
	if err != nil {
		panic(err)
	}
	return e
}

// Validate checks every fragment in the list.
func (l Extensions) Validate() error {
	for i, e := range l {
		if err := ValidateXMLFragment(e.Any); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "extension "+strconv.Itoa(i)+" is malformed")
		}
	}
	return nil
}

// Equal compares two lists element-wise.
func (l Extensions) Equal(other Extensions) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// EncodeExtensions renders the list in the current JSON list encoding.
func EncodeExtensions(l Extensions) (string, error) {
	if len(l) == 0 {
		return "", nil
	}
	if err := l.Validate(); err != nil {
		return "", err
	}
	b, err := json.Marshal([]Extension(l))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode extensions")
	}
	return string(b), nil
}

// EncodeLegacy renders a list holding a single bare fragment in the legacy
// raw-XML encoding. Lists that cannot be expressed that way fall back to the
// JSON list encoding.
func EncodeLegacy(l Extensions) (string, error) {
	if len(l) == 1 && l[0] == (Extension{Any: l[0].Any}) {
		if err := ValidateXMLFragment(l[0].Any); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeValidation, "extension is malformed")
		}
		return l[0].Any, nil
	}
	return EncodeExtensions(l)
}

// DecodeExtensions reads either encoding. Content whose first non-blank
// character is '<' is a legacy single fragment; anything else must be the
// JSON list encoding.
func DecodeExtensions(s string) (Extensions, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "<") {
		if err := ValidateXMLFragment(s); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "legacy extension is malformed")
		}
		return Extensions{{Any: s}}, nil
	}
	var list []Extension
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "extension list is not valid json")
	}
	if len(list) == 0 {
		return nil, nil
	}
	out := Extensions(list)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateXMLFragment checks that s is exactly one well-formed XML element,
// optionally surrounded by whitespace, comments or processing instructions.
func ValidateXMLFragment(s string) error {
	if strings.TrimSpace(s) == "" {
		return dErrors.New(dErrors.CodeValidation, "extension fragment is empty")
	}
	dec := xml.NewDecoder(strings.NewReader(s))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "extension fragment is not well-formed xml")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return dErrors.New(dErrors.CodeValidation, "extension fragment must have a single root element")
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				return dErrors.New(dErrors.CodeValidation, "extension fragment has text outside its root element")
			}
		case xml.Directive:
			return dErrors.New(dErrors.CodeValidation, "extension fragment must not contain directives")
		}
	}
	if roots == 0 {
		return dErrors.New(dErrors.CodeValidation, "extension fragment has no element")
	}
	if depth != 0 {
		return dErrors.New(dErrors.CodeValidation, "extension fragment is not closed")
	}
	return nil
}
