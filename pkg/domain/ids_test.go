package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "smp/pkg/domain-errors"
)

// TestParseUserID_Invariants validates the parsing invariant:
// "user IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUserID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		_, err := ParseUserID(strings.Repeat("a", 1000))
		require.Error(t, err)
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

func TestParticipantID(t *testing.T) {
	t.Run("parses scheme and value", func(t *testing.T) {
		pid, err := ParseParticipantID("iso6523-actorid-upis::0088:5798000000001")
		require.NoError(t, err)
		assert.Equal(t, SchemeParticipantISO6523, pid.Scheme)
		assert.Equal(t, "0088:5798000000001", pid.Value)
		assert.Equal(t, "iso6523-actorid-upis::0088:5798000000001", pid.URI())
	})

	t.Run("folds case for case-insensitive schemes", func(t *testing.T) {
		a := MustParticipantID("iso6523-actorid-upis::9915:ABC")
		b := MustParticipantID("iso6523-actorid-upis::9915:abc")
		assert.Equal(t, a.StorageID(), b.StorageID())
		assert.True(t, a.Equal(b))
	})

	t.Run("keeps case for other schemes", func(t *testing.T) {
		a := MustParticipantID("custom-scheme::ABC")
		b := MustParticipantID("custom-scheme::abc")
		assert.NotEqual(t, a.StorageID(), b.StorageID())
	})

	tests := []struct {
		name  string
		input string
	}{
		{"missing separator", "iso6523-actorid-upis:0088:1"},
		{"empty scheme", "::0088:1"},
		{"empty value", "iso6523-actorid-upis::"},
		{"scheme too long", strings.Repeat("s", 26) + "::v"},
		{"value too long", "iso6523-actorid-upis::" + strings.Repeat("v", 136)},
		{"whitespace in scheme", "iso 6523::v"},
		{"NUL in value", "iso6523-actorid-upis::0088:a\x00x"},
		{"line break in value", "iso6523-actorid-upis::0088:a\nb"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := ParseParticipantID(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestDocumentTypeAndProcessIDs(t *testing.T) {
	doc, err := ParseDocumentTypeID("busdox-docid-qns::urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##2.1")
	require.NoError(t, err)
	assert.Equal(t, SchemeDocTypeBusdox, doc.Scheme)
	assert.Equal(t, "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##2.1", doc.Value)

	proc, err := ParseProcessID("cenbii-procid-ubl::urn:fdc:peppol.eu:2017:poacc:billing:01:1.0")
	require.NoError(t, err)
	assert.Equal(t, "cenbii-procid-ubl::urn:fdc:peppol.eu:2017:poacc:billing:01:1.0", proc.URI())

	_, err = ParseDocumentTypeID("busdox-docid-qns::Invoice\x00##2.1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "control characters are rejected in every identifier kind")

	_, err = NewProcessID("", "x")
	require.Error(t, err)
}
