// Package storetest is the behavioural contract every storage backend must
// pass. Engine packages run it from their own tests:
//
//	storetest.Run(t, func(t *testing.T) backend.Provider { return openEngine(t) })
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"smp/internal/registry/backend"
	"smp/internal/registry/models"
	"smp/internal/registry/ports"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

// OpenFunc returns a fresh, empty provider for one test.
type OpenFunc func(t *testing.T) backend.Provider

// Run executes the contract suite against the engine opened by open.
func Run(t *testing.T, open OpenFunc) {
	suite.Run(t, &ContractSuite{open: open})
}

// ContractSuite exercises the manager contract through a backend.Provider.
type ContractSuite struct {
	suite.Suite
	open     OpenFunc
	provider backend.Provider
	ctx      context.Context

	groups    ports.ServiceGroupManager
	infos     ports.ServiceInformationManager
	redirects ports.RedirectManager
	cards     ports.BusinessCardManager
	users     ports.UserManager
	settings  ports.SettingsManager
	profiles  ports.TransportProfileManager
	locators  ports.LocatorInfoManager
}

func (s *ContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.provider = s.open(s.T())
	s.groups = s.provider.CreateServiceGroupManager()
	s.infos = s.provider.CreateServiceInformationManager()
	s.redirects = s.provider.CreateRedirectManager()
	s.cards = s.provider.CreateBusinessCardManager()
	s.users = s.provider.CreateUserManager()
	s.settings = s.provider.CreateSettingsManager()
	s.profiles = s.provider.CreateTransportProfileManager()
	s.locators = s.provider.CreateLocatorInfoManager()
}

func (s *ContractSuite) TearDownTest() {
	s.Require().NoError(s.provider.Close())
}

var (
	participantA = id.MustParticipantID("iso6523-actorid-upis::9915:alpha")
	participantB = id.MustParticipantID("iso6523-actorid-upis::9915:beta")
	invoice      = id.MustDocumentTypeID("busdox-docid-qns::urn:invoice::Invoice##2.1")
	creditNote   = id.MustDocumentTypeID("busdox-docid-qns::urn:creditnote::CreditNote##2.1")
	billing      = id.ProcessID{Scheme: id.SchemeProcessCenbii, Value: "urn:billing:01"}
)

func (s *ContractSuite) createGroup(pid id.ParticipantID, owner id.UserID) *models.ServiceGroup {
	group, err := models.NewServiceGroup(pid, owner, models.Extensions{models.MustExtension("<ext>1</ext>")})
	s.Require().NoError(err)
	s.Require().NoError(s.groups.Create(s.ctx, group))
	return group
}

func serviceInfo(pid id.ParticipantID, docType id.DocumentTypeID, profiles ...string) *models.ServiceInformation {
	endpoints := make([]models.Endpoint, len(profiles))
	for i, p := range profiles {
		endpoints[i] = models.Endpoint{TransportProfile: p, EndpointReference: "https://ap.example.com/" + p}
	}
	return &models.ServiceInformation{
		ParticipantID:  pid,
		DocumentTypeID: docType,
		Processes:      []models.Process{{ProcessID: billing, Endpoints: endpoints}},
	}
}

func redirectFor(pid id.ParticipantID, docType id.DocumentTypeID) *models.Redirect {
	return &models.Redirect{
		ParticipantID:           pid,
		DocumentTypeID:          docType,
		TargetHref:              "https://other-smp.example.com",
		SubjectUniqueIdentifier: "CN=other",
	}
}

func businessCard(pid id.ParticipantID) *models.BusinessCard {
	return &models.BusinessCard{
		ParticipantID: pid,
		Entities: []models.BusinessCardEntity{{
			ID:          "e1",
			Names:       []models.BusinessCardName{{Name: "Alpha Corp", Language: "en"}},
			CountryCode: "DK",
		}},
	}
}

func (s *ContractSuite) TestServiceGroupCreate() {
	owner := id.NewUserID()
	original := s.createGroup(participantA, owner)

	s.Run("duplicate create fails and keeps the original", func() {
		dup, err := models.NewServiceGroup(participantA, id.NewUserID(), nil)
		s.Require().NoError(err)
		err = s.groups.Create(s.ctx, dup)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))

		stored, err := s.groups.Get(s.ctx, participantA)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal(owner, stored.OwnerID)
		s.True(stored.Extensions.Equal(original.Extensions))
	})

	s.Run("storage id folds case", func() {
		upper := id.MustParticipantID("iso6523-actorid-upis::9915:ALPHA")
		dup, err := models.NewServiceGroup(upper, owner, nil)
		s.Require().NoError(err)
		s.True(dErrors.HasCode(s.groups.Create(s.ctx, dup), dErrors.CodeAlreadyExists))

		found, err := s.groups.Contains(s.ctx, upper)
		s.Require().NoError(err)
		s.True(found)
	})

	s.Run("unknown participant is absent", func() {
		stored, err := s.groups.Get(s.ctx, participantB)
		s.Require().NoError(err)
		s.Nil(stored)
	})
}

func (s *ContractSuite) TestServiceGroupUpdate() {
	owner := id.NewUserID()

	s.Run("absent group is not found", func() {
		_, err := s.groups.Update(s.ctx, participantA, owner, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.createGroup(participantA, owner)
	newOwner := id.NewUserID()

	s.Run("owner change is reported", func() {
		change, err := s.groups.Update(s.ctx, participantA, newOwner, nil)
		s.Require().NoError(err)
		s.Equal(models.Changed, change)

		stored, err := s.groups.Get(s.ctx, participantA)
		s.Require().NoError(err)
		s.Equal(newOwner, stored.OwnerID)
		s.Empty(stored.Extensions)
	})

	s.Run("identical update is unchanged", func() {
		change, err := s.groups.Update(s.ctx, participantA, newOwner, nil)
		s.Require().NoError(err)
		s.Equal(models.Unchanged, change)
	})
}

func (s *ContractSuite) TestServiceGroupListing() {
	owner := id.NewUserID()
	other := id.NewUserID()
	s.createGroup(participantA, owner)
	s.createGroup(participantB, other)

	all, err := s.groups.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	owned, err := s.groups.ListByOwner(s.ctx, owner)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.True(owned[0].ParticipantID.Equal(participantA))

	n, err := s.groups.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

// TestCascadeDelete checks that deleting a service group removes everything
// it owns and nothing it does not.
func (s *ContractSuite) TestCascadeDelete() {
	owner := id.NewUserID()
	s.createGroup(participantA, owner)
	s.createGroup(participantB, owner)

	_, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4"))
	s.Require().NoError(err)
	_, err = s.redirects.CreateOrUpdate(s.ctx, redirectFor(participantA, creditNote))
	s.Require().NoError(err)
	_, err = s.cards.CreateOrUpdate(s.ctx, businessCard(participantA))
	s.Require().NoError(err)
	_, err = s.infos.Merge(s.ctx, serviceInfo(participantB, invoice, "as4"))
	s.Require().NoError(err)

	change, err := s.groups.Delete(s.ctx, participantA)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	group, err := s.groups.Get(s.ctx, participantA)
	s.Require().NoError(err)
	s.Nil(group)
	infos, err := s.infos.ListOfServiceGroup(s.ctx, participantA)
	s.Require().NoError(err)
	s.Empty(infos)
	redirects, err := s.redirects.ListOfServiceGroup(s.ctx, participantA)
	s.Require().NoError(err)
	s.Empty(redirects)
	card, err := s.cards.Get(s.ctx, participantA)
	s.Require().NoError(err)
	s.Nil(card)

	s.Run("other groups keep their children", func() {
		info, err := s.infos.Get(s.ctx, participantB, invoice)
		s.Require().NoError(err)
		s.NotNil(info)
	})

	s.Run("second delete is unchanged", func() {
		change, err := s.groups.Delete(s.ctx, participantA)
		s.Require().NoError(err)
		s.Equal(models.Unchanged, change)
	})
}

// TestChildIsolation checks that a participant whose value starts with
// another participant's value never shares children with it.
func (s *ContractSuite) TestChildIsolation() {
	owner := id.NewUserID()
	short := id.MustParticipantID("iso6523-actorid-upis::9915:alpha")
	long := id.MustParticipantID("iso6523-actorid-upis::9915:alphabet")
	s.createGroup(short, owner)
	s.createGroup(long, owner)

	_, err := s.infos.Merge(s.ctx, serviceInfo(long, invoice, "as4"))
	s.Require().NoError(err)
	_, err = s.redirects.CreateOrUpdate(s.ctx, redirectFor(long, creditNote))
	s.Require().NoError(err)

	infos, err := s.infos.ListOfServiceGroup(s.ctx, short)
	s.Require().NoError(err)
	s.Empty(infos)

	_, err = s.groups.Delete(s.ctx, short)
	s.Require().NoError(err)

	info, err := s.infos.Get(s.ctx, long, invoice)
	s.Require().NoError(err)
	s.NotNil(info, "deleting one group removed another group's service information")
	redirect, err := s.redirects.Get(s.ctx, long, creditNote)
	s.Require().NoError(err)
	s.NotNil(redirect)

	s.Run("key separator cannot appear in a participant value", func() {
		_, err := id.ParseParticipantID("iso6523-actorid-upis::9915:alpha\x00x")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ContractSuite) TestServiceInformation() {
	s.Run("merge requires a service group", func() {
		_, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.createGroup(participantA, id.NewUserID())

	s.Run("merge replaces processes", func() {
		change, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as2"))
		s.Require().NoError(err)
		s.Equal(models.Changed, change)

		change, err = s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4", "as2"))
		s.Require().NoError(err)
		s.Equal(models.Changed, change)

		stored, err := s.infos.Get(s.ctx, participantA, invoice)
		s.Require().NoError(err)
		s.Require().Len(stored.Processes, 1)
		s.Len(stored.Processes[0].Endpoints, 2)

		n, err := s.infos.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("identical merge is unchanged", func() {
		change, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4", "as2"))
		s.Require().NoError(err)
		s.Equal(models.Unchanged, change)
	})

	s.Run("transport profile lookup", func() {
		used, err := s.infos.ContainsEndpointWithTransportProfile(s.ctx, "as4")
		s.Require().NoError(err)
		s.True(used)
		used, err = s.infos.ContainsEndpointWithTransportProfile(s.ctx, "smtp")
		s.Require().NoError(err)
		s.False(used)
	})

	s.Run("delete is idempotent", func() {
		change, err := s.infos.Delete(s.ctx, participantA, invoice)
		s.Require().NoError(err)
		s.Equal(models.Changed, change)
		change, err = s.infos.Delete(s.ctx, participantA, invoice)
		s.Require().NoError(err)
		s.Equal(models.Unchanged, change)
	})

	s.Run("delete all of group", func() {
		_, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4"))
		s.Require().NoError(err)
		_, err = s.infos.Merge(s.ctx, serviceInfo(participantA, creditNote, "as4"))
		s.Require().NoError(err)

		change, err := s.infos.DeleteAllOfServiceGroup(s.ctx, participantA)
		s.Require().NoError(err)
		s.Equal(models.Changed, change)
		all, err := s.infos.List(s.ctx)
		s.Require().NoError(err)
		s.Empty(all)
	})
}

// TestRedirectExclusion checks that a document type pair never holds both
// service information and a redirect.
func (s *ContractSuite) TestRedirectExclusion() {
	s.createGroup(participantA, id.NewUserID())

	_, err := s.infos.Merge(s.ctx, serviceInfo(participantA, invoice, "as4"))
	s.Require().NoError(err)
	_, err = s.redirects.CreateOrUpdate(s.ctx, redirectFor(participantA, invoice))
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.redirects.CreateOrUpdate(s.ctx, redirectFor(participantA, creditNote))
	s.Require().NoError(err)
	_, err = s.infos.Merge(s.ctx, serviceInfo(participantA, creditNote, "as4"))
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	stored, err := s.redirects.Get(s.ctx, participantA, creditNote)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("CN=other", stored.SubjectUniqueIdentifier)

	n, err := s.redirects.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	change, err := s.redirects.DeleteAllOfServiceGroup(s.ctx, participantA)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
	change, err = s.redirects.Delete(s.ctx, participantA, creditNote)
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)
}

func (s *ContractSuite) TestBusinessCard() {
	_, err := s.cards.CreateOrUpdate(s.ctx, businessCard(participantA))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.createGroup(participantA, id.NewUserID())
	change, err := s.cards.CreateOrUpdate(s.ctx, businessCard(participantA))
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	stored, err := s.cards.Get(s.ctx, participantA)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("Alpha Corp", stored.Entities[0].Names[0].Name)

	cards, err := s.cards.List(s.ctx)
	s.Require().NoError(err)
	s.Len(cards, 1)

	change, err = s.cards.Delete(s.ctx, participantA)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
	change, err = s.cards.Delete(s.ctx, participantA)
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)
}

func (s *ContractSuite) TestUsers() {
	user, err := models.NewUser("Admin", "s3cret", time.Now().UTC().Truncate(time.Second))
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(s.ctx, user))

	s.Run("names are unique ignoring case", func() {
		dup, err := models.NewUser("admin", "other", time.Now())
		s.Require().NoError(err)
		s.True(dErrors.HasCode(s.users.Create(s.ctx, dup), dErrors.CodeAlreadyExists))
	})

	s.Run("lookup by id and name", func() {
		byID, err := s.users.Get(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Require().NotNil(byID)
		s.Equal("Admin", byID.Name)

		byName, err := s.users.GetByName(s.ctx, "ADMIN")
		s.Require().NoError(err)
		s.Require().NotNil(byName)
		s.Equal(user.ID, byName.ID)

		missing, err := s.users.GetByName(s.ctx, "nobody")
		s.Require().NoError(err)
		s.Nil(missing)
	})

	s.Run("authenticate", func() {
		got, err := s.users.Authenticate(s.ctx, "Admin", "s3cret")
		s.Require().NoError(err)
		s.Equal(user.ID, got.ID)

		_, err = s.users.Authenticate(s.ctx, "Admin", "wrong")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		_, err = s.users.Authenticate(s.ctx, "nobody", "s3cret")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("owner cannot be deleted", func() {
		s.createGroup(participantA, user.ID)
		_, err := s.users.Delete(s.ctx, user.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		_, err = s.groups.Delete(s.ctx, participantA)
		s.Require().NoError(err)
	})

	s.Run("delete is idempotent", func() {
		change, err := s.users.Delete(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(models.Changed, change)
		change, err = s.users.Delete(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(models.Unchanged, change)

		users, err := s.users.List(s.ctx)
		s.Require().NoError(err)
		s.Empty(users)
	})
}

func (s *ContractSuite) TestSettings() {
	current, err := s.settings.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.DefaultSettings(), current)

	current.LocatorEnabled = false
	change, err := s.settings.Update(s.ctx, current)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	change, err = s.settings.Update(s.ctx, current)
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)

	stored, err := s.settings.Get(s.ctx)
	s.Require().NoError(err)
	s.False(stored.LocatorEnabled)
}

func (s *ContractSuite) TestTransportProfiles() {
	profile, err := models.NewTransportProfile("peppol-transport-as4-v2_0", "AS4", false)
	s.Require().NoError(err)
	s.Require().NoError(s.profiles.Create(s.ctx, profile))
	s.True(dErrors.HasCode(s.profiles.Create(s.ctx, profile), dErrors.CodeAlreadyExists))

	profile.Deprecated = true
	change, err := s.profiles.Update(s.ctx, profile)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	_, err = s.profiles.Update(s.ctx, &models.TransportProfile{ID: "missing", Name: "x"})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	stored, err := s.profiles.Get(s.ctx, profile.ID)
	s.Require().NoError(err)
	s.True(stored.Deprecated)

	list, err := s.profiles.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	change, err = s.profiles.Delete(s.ctx, profile.ID)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
	change, err = s.profiles.Delete(s.ctx, profile.ID)
	s.Require().NoError(err)
	s.Equal(models.Unchanged, change)
}

func (s *ContractSuite) TestLocatorInfo() {
	created, err := s.locators.Create(s.ctx, &models.LocatorInfo{
		DisplayName:          "SML test",
		DNSZone:              "acc.edelivery.tech.ec.europa.eu",
		ManagementServiceURL: "https://acc.edelivery.tech.ec.europa.eu/edelivery-sml",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	created.DisplayName = "SMK"
	change, err := s.locators.Update(s.ctx, created)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)

	missing := *created
	missing.ID = "00000000-0000-0000-0000-000000000000"
	_, err = s.locators.Update(s.ctx, &missing)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	stored, err := s.locators.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("SMK", stored.DisplayName)

	list, err := s.locators.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	change, err = s.locators.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.Changed, change)
}
