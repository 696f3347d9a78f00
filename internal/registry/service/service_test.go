package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
	"smp/internal/registry/locator"
	"smp/internal/registry/meta"
	"smp/internal/registry/models"
	"smp/internal/registry/registration"
	"smp/internal/registry/store/kv/inmem"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	audit "smp/pkg/platform/audit"
	"smp/pkg/platform/audit/publisher"
	"smp/pkg/platform/audit/store/memory"
)

const profileAS4 = "peppol-transport-as4-v2_0"

var (
	participant = id.MustParticipantID("iso6523-actorid-upis::9915:service")
	invoice     = id.MustDocumentTypeID("busdox-docid-qns::urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:cen.eu:en16931:2017::2.1")
	billing     = id.ProcessID{Scheme: id.SchemeProcessCenbii, Value: "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"}
)

// ServiceSuite runs the write use cases against the in-memory backend with
// the locator switched off.
type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	managers   *meta.Manager
	auditStore *memory.InMemoryStore
	service    *Service
	owner      id.UserID
	stranger   id.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := backend.NewRegistry(inmem.Register)
	s.Require().NoError(err)
	s.managers, err = meta.New(registry, config.Backend{ID: inmem.BackendID}, meta.WithLogger(logger))
	s.Require().NoError(err)
	s.Require().NoError(s.managers.InitFromConfiguration(s.ctx))

	s.auditStore = memory.NewInMemoryStore()
	pub := publisher.NewPublisher(s.auditStore)
	coordinator := registration.New(s.managers, locator.Disabled{},
		registration.WithLocatorEnabled(false),
		registration.WithLogger(logger),
		registration.WithAuditEmitter(pub),
	)
	s.service = New(s.managers, coordinator, WithLogger(logger), WithAuditPublisher(pub))

	s.owner = s.createUser("owner")
	s.stranger = s.createUser("stranger")

	profiles, err := s.managers.TransportProfileManager()
	s.Require().NoError(err)
	profile, err := models.NewTransportProfile(profileAS4, "Peppol AS4 v2", false)
	s.Require().NoError(err)
	s.Require().NoError(profiles.Create(s.ctx, profile))
}

func (s *ServiceSuite) TearDownTest() {
	s.Require().NoError(s.managers.Close())
}

func (s *ServiceSuite) createUser(name string) id.UserID {
	users, err := s.managers.UserManager()
	s.Require().NoError(err)
	u, err := models.NewUser(name, "secret", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(users.Create(s.ctx, u))
	return u.ID
}

func (s *ServiceSuite) createGroup() {
	op, err := s.service.CreateServiceGroup(s.ctx, s.owner, participant, nil)
	s.Require().NoError(err)
	s.Require().NoError(op.Resolve(s.ctx, registration.OutcomeSuccess))
}

func (s *ServiceSuite) information(profile string) *models.ServiceInformation {
	info, err := models.NewServiceInformation(participant, invoice, []models.Process{{
		ProcessID: billing,
		Endpoints: []models.Endpoint{{
			TransportProfile:  profile,
			EndpointReference: "https://ap.example.com/as4",
		}},
	}}, nil)
	s.Require().NoError(err)
	return info
}

func (s *ServiceSuite) redirect() *models.Redirect {
	r, err := models.NewRedirect(participant, invoice, "https://other-smp.example.com", "CN=other", "", nil)
	s.Require().NoError(err)
	return r
}

func (s *ServiceSuite) auditActions() []string {
	events, err := s.auditStore.ListByParticipant(s.ctx, participant.URI())
	s.Require().NoError(err)
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

func (s *ServiceSuite) TestCreateServiceGroup() {
	s.Run("creates and commits", func() {
		s.createGroup()
		groups, err := s.managers.ServiceGroupManager()
		s.Require().NoError(err)
		g, err := groups.Get(s.ctx, participant)
		s.Require().NoError(err)
		s.Require().NotNil(g)
		s.True(g.IsOwnedBy(s.owner))
	})

	s.Run("duplicate fails", func() {
		_, err := s.service.CreateServiceGroup(s.ctx, s.owner, participant, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
	})

	s.Run("unknown owner is unauthorized", func() {
		other := id.MustParticipantID("iso6523-actorid-upis::9915:other")
		_, err := s.service.CreateServiceGroup(s.ctx, id.NewUserID(), other, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("malformed extension rejected before persistence", func() {
		other := id.MustParticipantID("iso6523-actorid-upis::9915:other")
		_, err := s.service.CreateServiceGroup(s.ctx, s.owner, other, models.Extensions{{Any: "<open>"}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// TestOwnership verifies every mutating call refuses users who do not own
// the group and records the attempt.
// Justification: ownership is the only access control the registry applies
// to writes.
func (s *ServiceSuite) TestOwnership() {
	s.createGroup()

	_, err := s.service.UpdateServiceGroup(s.ctx, s.stranger, participant, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.SaveServiceInformation(s.ctx, s.stranger, s.information(profileAS4))
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.DeleteServiceGroup(s.ctx, s.stranger, participant)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.UpdateServiceGroup(s.ctx, id.UserID{}, participant, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	s.Contains(s.auditActions(), string(audit.EventUnauthorizedWrite))

	_, err = s.service.UpdateServiceGroup(s.ctx, s.owner, id.MustParticipantID("iso6523-actorid-upis::9915:missing"), nil)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateServiceGroup() {
	s.createGroup()
	ext := models.Extensions{models.MustExtension("<note>hello</note>")}

	change, err := s.service.UpdateServiceGroup(s.ctx, s.owner, participant, ext)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	change, err = s.service.UpdateServiceGroup(s.ctx, s.owner, participant, ext)
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)
}

// TestServiceMetadata_MutualExclusion verifies saving one kind of metadata
// replaces the other for the same document type.
// Justification: lookups must never see both a redirect and endpoints for
// one pair.
func (s *ServiceSuite) TestServiceMetadata_MutualExclusion() {
	s.createGroup()
	infos, err := s.managers.ServiceInformationManager()
	s.Require().NoError(err)
	redirects, err := s.managers.RedirectManager()
	s.Require().NoError(err)

	change, err := s.service.SaveServiceInformation(s.ctx, s.owner, s.information(profileAS4))
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	change, err = s.service.SaveRedirect(s.ctx, s.owner, s.redirect())
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
	info, err := infos.Get(s.ctx, participant, invoice)
	s.Require().NoError(err)
	s.Nil(info)

	_, err = s.service.SaveServiceInformation(s.ctx, s.owner, s.information(profileAS4))
	s.Require().NoError(err)
	r, err := redirects.Get(s.ctx, participant, invoice)
	s.Require().NoError(err)
	s.Nil(r)

	change, err = s.service.SaveServiceInformation(s.ctx, s.owner, s.information(profileAS4))
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)
}

func (s *ServiceSuite) TestSaveServiceInformation_UnknownTransportProfile() {
	s.createGroup()
	_, err := s.service.SaveServiceInformation(s.ctx, s.owner, s.information("made-up-profile"))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestDeleteServiceMetadata() {
	s.createGroup()

	_, err := s.service.DeleteServiceMetadata(s.ctx, s.owner, participant, invoice)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.SaveRedirect(s.ctx, s.owner, s.redirect())
	s.Require().NoError(err)
	change, err := s.service.DeleteServiceMetadata(s.ctx, s.owner, participant, invoice)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
}

func (s *ServiceSuite) TestBusinessCard() {
	s.createGroup()
	card, err := models.NewBusinessCard(participant, []models.BusinessCardEntity{{
		Names:       []models.BusinessCardName{{Name: "Alpha GmbH", Language: "de"}},
		CountryCode: "AT",
	}})
	s.Require().NoError(err)

	change, err := s.service.SaveBusinessCard(s.ctx, s.owner, card)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	_, err = s.service.SaveBusinessCard(s.ctx, s.stranger, card)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	change, err = s.service.DeleteBusinessCard(s.ctx, s.owner, participant)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	_, err = s.service.DeleteBusinessCard(s.ctx, s.owner, participant)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// TestDeleteTransportProfile_InUse verifies a profile referenced by an
// endpoint cannot be removed.
// Justification: removing it would leave published endpoints pointing at an
// unknown transport.
func (s *ServiceSuite) TestDeleteTransportProfile_InUse() {
	s.createGroup()
	_, err := s.service.SaveServiceInformation(s.ctx, s.owner, s.information(profileAS4))
	s.Require().NoError(err)

	_, err = s.service.DeleteTransportProfile(s.ctx, profileAS4)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.service.DeleteServiceMetadata(s.ctx, s.owner, participant, invoice)
	s.Require().NoError(err)
	change, err := s.service.DeleteTransportProfile(s.ctx, profileAS4)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
}

func (s *ServiceSuite) TestDeleteServiceGroup_Cascades() {
	s.createGroup()
	_, err := s.service.SaveServiceInformation(s.ctx, s.owner, s.information(profileAS4))
	s.Require().NoError(err)

	op, err := s.service.DeleteServiceGroup(s.ctx, s.owner, participant)
	s.Require().NoError(err)
	s.Equal(registration.StateCommitted, op.State())

	infos, err := s.managers.ServiceInformationManager()
	s.Require().NoError(err)
	count, err := infos.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	s.Equal([]string{
		string(audit.EventServiceGroupCreated),
		string(audit.EventServiceMetadataSaved),
		string(audit.EventServiceGroupDeleted),
	}, s.auditActions())
}

func (s *ServiceSuite) TestAuthenticate() {
	userID, err := s.service.Authenticate(s.ctx, "owner", "secret")
	s.Require().NoError(err)
	s.Equal(s.owner, userID)

	_, err = s.service.Authenticate(s.ctx, "owner", "wrong")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.Authenticate(s.ctx, "nobody", "secret")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestWritableAPIDisabled() {
	s.createGroup()
	settings, err := s.managers.SettingsManager()
	s.Require().NoError(err)
	current, err := settings.Get(s.ctx)
	s.Require().NoError(err)
	current.RESTWritableAPIDisabled = true
	_, err = settings.Update(s.ctx, current)
	s.Require().NoError(err)

	_, err = s.service.UpdateServiceGroup(s.ctx, s.owner, participant, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	other := id.MustParticipantID("iso6523-actorid-upis::9915:other")
	_, err = s.service.CreateServiceGroup(s.ctx, s.owner, other, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}
