package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

var (
	testPID     = id.MustParticipantID("iso6523-actorid-upis::0088:5798000000001")
	testDocType = id.MustDocumentTypeID("busdox-docid-qns::urn:invoice::Invoice##2.1")
	testProcess = id.ProcessID{Scheme: id.SchemeProcessCenbii, Value: "urn:billing:01"}
)

func TestNewServiceGroup(t *testing.T) {
	owner := id.NewUserID()

	t.Run("rejects missing participant", func(t *testing.T) {
		_, err := NewServiceGroup(id.ParticipantID{}, owner, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := NewServiceGroup(testPID, id.UserID{}, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects malformed extension", func(t *testing.T) {
		_, err := NewServiceGroup(testPID, owner, Extensions{{Any: "<open>"}})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("equality is by storage id", func(t *testing.T) {
		a, err := NewServiceGroup(id.MustParticipantID("iso6523-actorid-upis::9915:ACME"), owner, nil)
		require.NoError(t, err)
		b, err := NewServiceGroup(id.MustParticipantID("iso6523-actorid-upis::9915:acme"), id.NewUserID(), Extensions{MustExtension("<x/>")})
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
		assert.Equal(t, "iso6523-actorid-upis::9915:acme", a.ID())
	})
}

func endpoint(profile string) Endpoint {
	return Endpoint{TransportProfile: profile, EndpointReference: "https://ap.example.com/as4"}
}

func TestServiceInformation_Validate(t *testing.T) {
	t.Run("accepts distinct transport profiles", func(t *testing.T) {
		_, err := NewServiceInformation(testPID, testDocType, []Process{{
			ProcessID: testProcess,
			Endpoints: []Endpoint{endpoint("as2"), endpoint("as4")},
		}}, nil)
		require.NoError(t, err)
	})

	t.Run("rejects duplicate transport profile in one process", func(t *testing.T) {
		_, err := NewServiceInformation(testPID, testDocType, []Process{{
			ProcessID: testProcess,
			Endpoints: []Endpoint{endpoint("as4"), endpoint("as4")},
		}}, nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects relative endpoint address", func(t *testing.T) {
		ep := endpoint("as4")
		ep.EndpointReference = "/as4"
		_, err := NewServiceInformation(testPID, testDocType, []Process{{ProcessID: testProcess, Endpoints: []Endpoint{ep}}}, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects expiration before activation", func(t *testing.T) {
		ep := endpoint("as4")
		from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
		until := from.Add(-time.Hour)
		ep.ServiceActivation, ep.ServiceExpiration = &from, &until
		_, err := NewServiceInformation(testPID, testDocType, []Process{{ProcessID: testProcess, Endpoints: []Endpoint{ep}}}, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("equality by group and document type", func(t *testing.T) {
		a := &ServiceInformation{ParticipantID: testPID, DocumentTypeID: testDocType}
		b := &ServiceInformation{ParticipantID: testPID, DocumentTypeID: testDocType, Processes: []Process{{ProcessID: testProcess}}}
		assert.True(t, a.Equal(b))
	})
}

func TestEndpoint_IsActiveAt(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.Add(24 * time.Hour)
	ep := Endpoint{ServiceActivation: &from, ServiceExpiration: &until}

	assert.False(t, ep.IsActiveAt(from.Add(-time.Second)))
	assert.True(t, ep.IsActiveAt(from))
	assert.False(t, ep.IsActiveAt(until))
}

func TestNewBusinessCard(t *testing.T) {
	bc, err := NewBusinessCard(testPID, []BusinessCardEntity{{
		Names:       []BusinessCardName{{Name: "Acme", Language: "en"}},
		CountryCode: "DK",
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, bc.Entities[0].ID)

	bc, err = NewBusinessCard(testPID, []BusinessCardEntity{{
		Names:       []BusinessCardName{{Name: "Acme"}},
		CountryCode: "DK",
		WebsiteURIs: []string{" https://acme.example ", "https://acme.example", ""},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://acme.example"}, bc.Entities[0].WebsiteURIs)

	_, err = NewBusinessCard(testPID, []BusinessCardEntity{{Names: []BusinessCardName{{Name: "Acme"}}, CountryCode: "dk"}})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUser_Password(t *testing.T) {
	u, err := NewUser(" Admin ", "secret", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, "admin", u.NameKey())
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestServiceInformation_TransportProfiles(t *testing.T) {
	endpoint := func(profile, ref string) Endpoint {
		return Endpoint{TransportProfile: profile, EndpointReference: ref}
	}
	si := &ServiceInformation{Processes: []Process{
		{ProcessID: testProcess, Endpoints: []Endpoint{
			endpoint("peppol-transport-as4-v2_0", "https://a.example/as4"),
			endpoint("busdox-transport-as2-ver1p0", "https://a.example/as2"),
		}},
		{ProcessID: testProcess, Endpoints: []Endpoint{
			endpoint("peppol-transport-as4-v2_0", "https://b.example/as4"),
		}},
	}}
	assert.Equal(t, []string{"peppol-transport-as4-v2_0", "busdox-transport-as2-ver1p0"}, si.TransportProfiles())
}
