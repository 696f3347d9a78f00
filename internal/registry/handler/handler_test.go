package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/suite"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
	"smp/internal/registry/meta"
	"smp/internal/registry/models"
	"smp/internal/registry/registration"
	"smp/internal/registry/service"
	"smp/internal/registry/store/kv/inmem"
	id "smp/pkg/domain"
	"smp/pkg/platform/middleware/admin"
	"smp/pkg/testutil"
)

const (
	adminToken = "operator-secret"
	profileAS4 = "peppol-transport-as4-v2_0"
)

var (
	participant = id.MustParticipantID("iso6523-actorid-upis::9915:handler")
	invoice     = id.MustDocumentTypeID("busdox-docid-qns::urn:oasis:names:specification:ubl:schema:xsd:Invoice-2::Invoice##urn:cen.eu:en16931:2017::2.1")
)

// recordingLocator remembers which participants are registered.
type recordingLocator struct {
	mu         sync.Mutex
	registered map[string]bool
}

func (l *recordingLocator) RegisterParticipant(_ context.Context, pid id.ParticipantID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registered[pid.StorageID()] = true
	return nil
}

func (l *recordingLocator) DeregisterParticipant(_ context.Context, pid id.ParticipantID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.registered, pid.StorageID())
	return nil
}

func (l *recordingLocator) isRegistered(pid id.ParticipantID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registered[pid.StorageID()]
}

// HandlerSuite drives the HTTP write API end to end over the in-memory
// backend.
type HandlerSuite struct {
	suite.Suite
	ctx      context.Context
	managers *meta.Manager
	locator  *recordingLocator
	service  *service.Service
	handler  *Handler
	router   http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := backend.NewRegistry(inmem.Register)
	s.Require().NoError(err)
	s.managers, err = meta.New(registry, config.Backend{ID: inmem.BackendID}, meta.WithLogger(logger))
	s.Require().NoError(err)
	s.Require().NoError(s.managers.InitFromConfiguration(s.ctx))

	s.locator = &recordingLocator{registered: map[string]bool{}}
	coordinator := registration.New(s.managers, s.locator, registration.WithLogger(logger))
	s.service = service.New(s.managers, coordinator, service.WithLogger(logger))
	s.handler = New(s.service, s.service, s.managers, WithLogger(logger), WithAdminToken(adminToken))
	s.router = s.handler.Router()

	s.createUser("alice")
	s.createUser("mallory")
	profiles, err := s.managers.TransportProfileManager()
	s.Require().NoError(err)
	profile, err := models.NewTransportProfile(profileAS4, "Peppol AS4 v2", false)
	s.Require().NoError(err)
	s.Require().NoError(profiles.Create(s.ctx, profile))
}

func (s *HandlerSuite) TearDownTest() {
	s.Require().NoError(s.managers.Close())
}

func (s *HandlerSuite) createUser(name string) {
	users, err := s.managers.UserManager()
	s.Require().NoError(err)
	u, err := models.NewUser(name, name+"-pw", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(users.Create(s.ctx, u))
}

func (s *HandlerSuite) do(method, path, user string, body any) *httptest.ResponseRecorder {
	req := testutil.Request(s.T(), method, path, body, testutil.AsUser(user, user+"-pw"))
	return testutil.Serve(s.router, req)
}

func groupPath(pid id.ParticipantID) string {
	return "/" + url.PathEscape(pid.URI())
}

func servicePath(pid id.ParticipantID, docType id.DocumentTypeID) string {
	return groupPath(pid) + "/services/" + url.PathEscape(docType.URI())
}

func (s *HandlerSuite) createGroup() {
	rr := s.do(http.MethodPut, groupPath(participant), "alice", map[string]any{})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
}

func (s *HandlerSuite) groupExists(pid id.ParticipantID) bool {
	groups, err := s.managers.ServiceGroupManager()
	s.Require().NoError(err)
	ok, err := groups.Contains(s.ctx, pid)
	s.Require().NoError(err)
	return ok
}

func serviceInformationBody(profile string) map[string]any {
	return map[string]any{
		"processes": []map[string]any{{
			"process_id": map[string]string{"scheme": id.SchemeProcessCenbii, "value": "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"},
			"endpoints": []map[string]any{{
				"transport_profile":  profile,
				"endpoint_reference": "https://ap.example.com/as4",
			}},
		}},
	}
}

func (s *HandlerSuite) TestHealth() {
	rr := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	resp := testutil.DecodeJSON[HealthResponse](s.T(), rr)
	s.Equal("memory", resp.Backend)

	s.Require().NoError(s.managers.Close())
	rr = s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusServiceUnavailable, rr.Code)
}

func (s *HandlerSuite) TestPutServiceGroup() {
	s.Run("requires credentials", func() {
		rr := s.do(http.MethodPut, groupPath(participant), "", map[string]any{})
		s.Equal(http.StatusUnauthorized, rr.Code)
		s.False(s.groupExists(participant))
	})

	s.Run("creates, registers and commits", func() {
		rr := s.do(http.MethodPut, groupPath(participant), "alice", map[string]any{})
		s.Require().Equal(http.StatusCreated, rr.Code)
		resp := testutil.DecodeJSON[ServiceGroupResponse](s.T(), rr)
		s.Equal(participant.URI(), resp.ParticipantID)
		s.NotEmpty(resp.OperationID)
		s.True(s.groupExists(participant))
		s.True(s.locator.isRegistered(participant))
	})

	s.Run("existing group is updated", func() {
		rr := s.do(http.MethodPut, groupPath(participant), "alice", map[string]any{})
		s.Require().Equal(http.StatusOK, rr.Code)
		resp := testutil.DecodeJSON[ServiceGroupResponse](s.T(), rr)
		s.False(resp.Changed)
		s.Empty(resp.OperationID)
	})

	s.Run("other users cannot update", func() {
		rr := s.do(http.MethodPut, groupPath(participant), "mallory", map[string]any{})
		s.Equal(http.StatusUnauthorized, rr.Code)
	})

	s.Run("malformed participant", func() {
		rr := s.do(http.MethodPut, "/no-separator", "alice", map[string]any{})
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("unknown body field", func() {
		rr := s.do(http.MethodPut, groupPath(participant), "alice", map[string]any{"owner": "someone"})
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

// TestComplete_FailedResponseRollsBack verifies that a create whose
// response ended in an error status is undone on both sides.
// Justification: the registration is only final once the request succeeded.
// TestIdentifierEscaping checks that a participant in the path is decoded
// exactly once, whichever form of the path chi routed on.
func (s *HandlerSuite) TestIdentifierEscaping() {
	tests := []struct {
		name    string
		path    string
		created id.ParticipantID
		absent  id.ParticipantID
	}{
		{
			name:    "escaped percent stays literal",
			path:    "/iso6523-actorid-upis::9915:a%2541",
			created: id.MustParticipantID("iso6523-actorid-upis::9915:a%41"),
			absent:  id.MustParticipantID("iso6523-actorid-upis::9915:aa"),
		},
		{
			name:    "escaped slash is decoded",
			path:    "/iso6523-actorid-upis::9915:x%2Fy",
			created: id.MustParticipantID("iso6523-actorid-upis::9915:x/y"),
			absent:  id.MustParticipantID("iso6523-actorid-upis::9915:x%2Fy"),
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.do(http.MethodPut, tt.path, "alice", map[string]any{})
			s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
			s.True(s.groupExists(tt.created))
			s.False(s.groupExists(tt.absent))
		})
	}

	s.Run("NUL in the participant is rejected", func() {
		rr := s.do(http.MethodPut, "/iso6523-actorid-upis::9915:a%00x", "alice", map[string]any{})
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestComplete_FailedResponseRollsBack() {
	users, err := s.managers.UserManager()
	s.Require().NoError(err)
	alice, err := users.GetByName(s.ctx, "alice")
	s.Require().NoError(err)

	op, err := s.service.CreateServiceGroup(s.ctx, alice.ID, participant, nil)
	s.Require().NoError(err)
	s.Require().True(s.locator.isRegistered(participant))

	rr := httptest.NewRecorder()
	rec := chimw.NewWrapResponseWriter(rr, 1)
	rec.WriteHeader(http.StatusInternalServerError)
	s.handler.complete(s.ctx, rec, op)

	s.Equal(registration.StateCompensatedOk, op.State())
	s.False(s.groupExists(participant))
	s.False(s.locator.isRegistered(participant))
}

func (s *HandlerSuite) TestComplete_NoStatusIsFailure() {
	users, err := s.managers.UserManager()
	s.Require().NoError(err)
	alice, err := users.GetByName(s.ctx, "alice")
	s.Require().NoError(err)

	op, err := s.service.CreateServiceGroup(s.ctx, alice.ID, participant, nil)
	s.Require().NoError(err)
	s.handler.complete(s.ctx, chimw.NewWrapResponseWriter(httptest.NewRecorder(), 1), op)
	s.False(s.groupExists(participant))
}

func (s *HandlerSuite) TestDeleteServiceGroup() {
	s.createGroup()

	rr := s.do(http.MethodDelete, groupPath(participant), "mallory", nil)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.True(s.groupExists(participant))

	rr = s.do(http.MethodDelete, groupPath(participant), "alice", nil)
	s.Equal(http.StatusNoContent, rr.Code)
	s.False(s.groupExists(participant))
	s.False(s.locator.isRegistered(participant))

	rr = s.do(http.MethodDelete, groupPath(participant), "alice", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestServiceMetadata() {
	s.createGroup()
	path := servicePath(participant, invoice)

	rr := s.do(http.MethodPut, path, "alice", serviceInformationBody(profileAS4))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	s.True(testutil.DecodeJSON[ChangeResponse](s.T(), rr).Changed)

	rr = s.do(http.MethodPut, path, "alice", map[string]any{
		"redirect": map[string]string{
			"target_href":               "https://other-smp.example.com",
			"subject_unique_identifier": "CN=other",
		},
	})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	infos, err := s.managers.ServiceInformationManager()
	s.Require().NoError(err)
	info, err := infos.Get(s.ctx, participant, invoice)
	s.Require().NoError(err)
	s.Nil(info)

	rr = s.do(http.MethodDelete, path, "alice", nil)
	s.Equal(http.StatusNoContent, rr.Code)
	rr = s.do(http.MethodDelete, path, "alice", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestServiceMetadata_Rejected() {
	s.createGroup()
	path := servicePath(participant, invoice)

	tests := []struct {
		name   string
		user   string
		body   map[string]any
		status int
	}{
		{name: "unknown transport profile", user: "alice", body: serviceInformationBody("made-up"), status: http.StatusBadRequest},
		{name: "neither processes nor redirect", user: "alice", body: map[string]any{}, status: http.StatusBadRequest},
		{name: "not the owner", user: "mallory", body: serviceInformationBody(profileAS4), status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rr := s.do(http.MethodPut, path, tt.user, tt.body)
			s.Equal(tt.status, rr.Code)
		})
	}

	rr := s.do(http.MethodPut, servicePath(id.MustParticipantID("iso6523-actorid-upis::9915:missing"), invoice), "alice", serviceInformationBody(profileAS4))
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestBusinessCard() {
	s.createGroup()
	path := groupPath(participant) + "/businesscard"
	body := map[string]any{
		"entities": []map[string]any{{
			"names":        []map[string]string{{"name": "Alpha GmbH"}},
			"country_code": "AT",
		}},
	}

	rr := s.do(http.MethodPut, path, "alice", body)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(http.MethodPut, path, "alice", map[string]any{"entities": []any{}})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodDelete, path, "alice", nil)
	s.Equal(http.StatusNoContent, rr.Code)
	rr = s.do(http.MethodDelete, path, "alice", nil)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestDeleteTransportProfile() {
	s.createGroup()
	rr := s.do(http.MethodPut, servicePath(participant, invoice), "alice", serviceInformationBody(profileAS4))
	s.Require().Equal(http.StatusOK, rr.Code)

	path := "/admin/transportprofiles/" + profileAS4
	adminDelete := func(token string) *httptest.ResponseRecorder {
		req := testutil.Request(s.T(), http.MethodDelete, path, nil, testutil.WithHeader(admin.HeaderAdminToken, token))
		return testutil.Serve(s.router, req)
	}

	s.Equal(http.StatusUnauthorized, adminDelete("").Code)
	s.Equal(http.StatusUnauthorized, adminDelete("guess").Code)
	s.Equal(http.StatusConflict, adminDelete(adminToken).Code)

	rr = s.do(http.MethodDelete, servicePath(participant, invoice), "alice", nil)
	s.Require().Equal(http.StatusNoContent, rr.Code)
	s.Equal(http.StatusNoContent, adminDelete(adminToken).Code)
	s.Equal(http.StatusNotFound, adminDelete(adminToken).Code)
}
