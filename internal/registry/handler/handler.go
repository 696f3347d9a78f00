// Package handler is the HTTP write API of the registry. Service group
// writes return a pending registration that the handler resolves once the
// response has been written: a status below 400 commits it, anything else
// rolls it back.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smp/internal/platform/metrics"
	"smp/internal/platform/middleware"
	"smp/internal/registry/models"
	"smp/internal/registry/registration"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/httputil"
	"smp/pkg/platform/middleware/admin"
	"smp/pkg/platform/middleware/metadata"
	"smp/pkg/platform/middleware/requesttime"
	"smp/pkg/requestcontext"
)

const defaultRequestTimeout = 30 * time.Second

// Service is the registry write API used by the handler.
type Service interface {
	CreateServiceGroup(ctx context.Context, owner id.UserID, pid id.ParticipantID, ext models.Extensions) (*registration.PendingOperation, error)
	UpdateServiceGroup(ctx context.Context, user id.UserID, pid id.ParticipantID, ext models.Extensions) (models.Change, error)
	DeleteServiceGroup(ctx context.Context, user id.UserID, pid id.ParticipantID) (*registration.PendingOperation, error)
	SaveServiceInformation(ctx context.Context, user id.UserID, info *models.ServiceInformation) (models.Change, error)
	SaveRedirect(ctx context.Context, user id.UserID, redirect *models.Redirect) (models.Change, error)
	DeleteServiceMetadata(ctx context.Context, user id.UserID, pid id.ParticipantID, docType id.DocumentTypeID) (models.Change, error)
	SaveBusinessCard(ctx context.Context, user id.UserID, card *models.BusinessCard) (models.Change, error)
	DeleteBusinessCard(ctx context.Context, user id.UserID, pid id.ParticipantID) (models.Change, error)
	DeleteTransportProfile(ctx context.Context, profileID string) (models.Change, error)
}

// BackendStatus reports the active backend; "" means none is initialised.
type BackendStatus interface {
	BackendID() string
}

// Handler serves the registry write routes.
type Handler struct {
	service        Service
	authenticator  middleware.Authenticator
	backend        BackendStatus
	logger         *slog.Logger
	metrics        *metrics.Metrics
	adminToken     string
	requestTimeout time.Duration
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithAdminToken enables the operator routes under /admin.
func WithAdminToken(token string) Option {
	return func(h *Handler) {
		h.adminToken = token
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

// New creates a Handler. authenticator checks the Basic credentials of
// every write.
func New(service Service, authenticator middleware.Authenticator, backend BackendStatus, opts ...Option) *Handler {
	h := &Handler{
		service:        service,
		authenticator:  authenticator,
		backend:        backend,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Router returns a chi router with all routes registered.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register registers the registry routes with r.
func (h *Handler) Register(r chi.Router) {
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		ar.Delete("/transportprofiles/{profile}", h.handleDeleteTransportProfile)
	})

	r.Group(func(wr chi.Router) {
		wr.Use(chimw.Timeout(h.requestTimeout))
		wr.Use(middleware.RequireUser(h.authenticator, h.logger))
		wr.Put("/{participant}", h.handlePutServiceGroup)
		wr.Delete("/{participant}", h.handleDeleteServiceGroup)
		wr.Put("/{participant}/services/{doctype}", h.handlePutServiceMetadata)
		wr.Delete("/{participant}/services/{doctype}", h.handleDeleteServiceMetadata)
		wr.Put("/{participant}/businesscard", h.handlePutBusinessCard)
		wr.Delete("/{participant}/businesscard", h.handleDeleteBusinessCard)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	backendID := h.backend.BackendID()
	if backendID == "" {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: backendID})
}

// complete resolves op with the outcome of the response written through rec.
// A response that never got a status counts as a failure.
func (h *Handler) complete(ctx context.Context, rec chimw.WrapResponseWriter, op *registration.PendingOperation) {
	if op == nil {
		return
	}
	outcome := registration.OutcomeFailure
	if status := rec.Status(); status != 0 && status < http.StatusBadRequest {
		outcome = registration.OutcomeSuccess
	}
	// The response is out; finish even if the client has gone.
	if err := op.Resolve(context.WithoutCancel(ctx), outcome); err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve registration",
			"operation_id", op.ID().String(),
			"participant_id", op.ParticipantID().URI(),
			"outcome", outcome.String(),
			"state", op.State().String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

// writeError logs err at a level matching its status and writes it.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	status := httputil.StatusFor(dErrors.CodeOf(err))
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

// pathParam returns a decoded route parameter. chi matches on RawPath when
// the request carried escapes that Path cannot represent (such as %2F), and
// on the already decoded Path otherwise.
func pathParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

func (h *Handler) participant(w http.ResponseWriter, r *http.Request) (id.ParticipantID, bool) {
	raw, err := pathParam(r, "participant")
	if err != nil {
		h.writeError(r.Context(), w, dErrors.Wrap(err, dErrors.CodeBadRequest, "participant identifier is not properly escaped"), "invalid participant")
		return id.ParticipantID{}, false
	}
	pid, err := id.ParseParticipantID(raw)
	if err != nil {
		h.writeError(r.Context(), w, err, "invalid participant")
		return id.ParticipantID{}, false
	}
	return pid, true
}

func (h *Handler) documentType(w http.ResponseWriter, r *http.Request) (id.DocumentTypeID, bool) {
	raw, err := pathParam(r, "doctype")
	if err != nil {
		h.writeError(r.Context(), w, dErrors.Wrap(err, dErrors.CodeBadRequest, "document type identifier is not properly escaped"), "invalid document type")
		return id.DocumentTypeID{}, false
	}
	docType, err := id.ParseDocumentTypeID(raw)
	if err != nil {
		h.writeError(r.Context(), w, err, "invalid document type")
		return id.DocumentTypeID{}, false
	}
	return docType, true
}
