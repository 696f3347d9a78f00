package domain

import (
	"strings"
	"testing"
	"unicode"
)

// FuzzParseParticipantID checks that accepted identifiers round-trip through
// their URI form and keep a stable storage ID.
func FuzzParseParticipantID(f *testing.F) {
	for _, seed := range []string{
		"iso6523-actorid-upis::0088:123",
		"iso6523-actorid-upis::0088:ABC",
		"::",
		"a::b::c",
		"scheme ::value",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		pid, err := ParseParticipantID(input)
		if err != nil {
			return
		}
		if strings.IndexFunc(pid.Value, unicode.IsControl) >= 0 {
			t.Fatalf("accepted control character in %q", pid.Value)
		}
		again, err := ParseParticipantID(pid.URI())
		if err != nil {
			t.Fatalf("accepted identifier failed round-trip: %v", err)
		}
		if !again.Equal(pid) || again.StorageID() != pid.StorageID() {
			t.Errorf("round-trip changed %q into %q", pid.URI(), again.URI())
		}
	})
}

func FuzzParseDocumentTypeID(f *testing.F) {
	f.Add("busdox-docid-qns::urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##UBL-2.1")
	f.Add("busdox-docid-qns::")
	f.Add("no-separator")

	f.Fuzz(func(t *testing.T, input string) {
		dt, err := ParseDocumentTypeID(input)
		if err != nil {
			return
		}
		if dt.URI() != input {
			t.Errorf("URI() = %q, want the accepted input %q", dt.URI(), input)
		}
	})
}

// FuzzUserIDText checks that any text accepted as a user id renders back to
// the canonical form and parses to the same id.
func FuzzUserIDText(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("{550e8400-e29b-41d4-a716-446655440000}")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")

	f.Fuzz(func(t *testing.T, input string) {
		uid, err := ParseUserID(input)
		if err != nil {
			return
		}
		text, err := uid.MarshalText()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded UserID
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("canonical form %q rejected: %v", text, err)
		}
		if decoded != uid || uid.IsNil() {
			t.Errorf("round-trip of %q produced %s", input, decoded)
		}
	})
}
