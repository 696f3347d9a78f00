package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	dErrors "smp/pkg/domain-errors"
)

func TestValidateXMLFragment(t *testing.T) {
	valid := []string{
		`<ext/>`,
		`<ns:ext xmlns:ns="urn:x">value</ns:ext>`,
		"  <a><b attr=\"1\">text</b></a>\n",
		`<!-- note --><a/>`,
	}
	for _, s := range valid {
		assert.NoError(t, ValidateXMLFragment(s), s)
	}

	invalid := []string{
		``,
		`   `,
		`plain text`,
		`<a>`,
		`<a></b>`,
		`<a/><b/>`,
		`<a/> trailing`,
		`<!DOCTYPE a><a/>`,
	}
	for _, s := range invalid {
		err := ValidateXMLFragment(s)
		require.Error(t, err, s)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), s)
	}
}

func TestDecodeExtensions(t *testing.T) {
	t.Run("empty content has no extensions", func(t *testing.T) {
		got, err := DecodeExtensions("  ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("leading angle bracket is a legacy fragment", func(t *testing.T) {
		got, err := DecodeExtensions(`<legacy>1</legacy>`)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, `<legacy>1</legacy>`, got[0].Any)
	})

	t.Run("json list", func(t *testing.T) {
		got, err := DecodeExtensions(`[{"id":"a","any":"<a/>"},{"any":"<b/>"}]`)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "<b/>", got[1].Any)
	})

	t.Run("json list with malformed fragment", func(t *testing.T) {
		_, err := DecodeExtensions(`[{"any":"<a>"}]`)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("neither encoding", func(t *testing.T) {
		_, err := DecodeExtensions(`{not json`)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestEncodeLegacy_FallsBackForAttributedLists(t *testing.T) {
	l := Extensions{{ID: "x", Any: "<a/>"}}
	s, err := EncodeLegacy(l)
	require.NoError(t, err)
	assert.Equal(t, byte('['), s[0])
}

func fragmentGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		name := rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(t, "name")
		text := rapid.StringMatching(`[A-Za-z0-9 .:-]{0,20}`).Draw(t, "text")
		if rapid.Bool().Draw(t, "selfClosing") {
			return fmt.Sprintf("<%s/>", name)
		}
		return fmt.Sprintf("<%s>%s</%s>", name, text, name)
	})
}

func extensionGen() *rapid.Generator[Extension] {
	return rapid.Custom(func(t *rapid.T) Extension {
		return Extension{
			ID:         rapid.StringMatching(`[a-z0-9]{0,6}`).Draw(t, "id"),
			Name:       rapid.StringMatching(`[A-Za-z ]{0,10}`).Draw(t, "extName"),
			AgencyID:   rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "agencyID"),
			VersionID:  rapid.StringMatching(`[0-9.]{0,4}`).Draw(t, "versionID"),
			ReasonCode: rapid.StringMatching(`[A-Z]{0,3}`).Draw(t, "reasonCode"),
			Any:        fragmentGen().Draw(t, "any"),
		}
	})
}

// TestExtensionRoundTrip checks decode(encode(L)) == L for both encodings.
func TestExtensionRoundTrip(t *testing.T) {
	t.Run("list encoding", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			l := Extensions(rapid.SliceOfN(extensionGen(), 0, 5).Draw(rt, "extensions"))
			encoded, err := EncodeExtensions(l)
			if err != nil {
				rt.Fatalf("encode: %v", err)
			}
			decoded, err := DecodeExtensions(encoded)
			if err != nil {
				rt.Fatalf("decode %q: %v", encoded, err)
			}
			if !decoded.Equal(l) {
				rt.Fatalf("round trip mismatch: %#v != %#v", decoded, l)
			}
		})
	})

	t.Run("legacy single fragment", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			l := Extensions{{Any: fragmentGen().Draw(rt, "fragment")}}
			encoded, err := EncodeLegacy(l)
			if err != nil {
				rt.Fatalf("encode: %v", err)
			}
			if encoded != l[0].Any {
				rt.Fatalf("expected raw fragment, got %q", encoded)
			}
			decoded, err := DecodeExtensions(encoded)
			if err != nil {
				rt.Fatalf("decode: %v", err)
			}
			if !decoded.Equal(l) {
				rt.Fatalf("round trip mismatch: %#v != %#v", decoded, l)
			}
		})
	})
}
