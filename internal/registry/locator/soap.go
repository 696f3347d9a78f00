package locator

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"smp/internal/platform/config"
	"smp/internal/registry/metrics"
	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/circuit"
)

const (
	nsSOAP       = "http://schemas.xmlsoap.org/soap/envelope/"
	nsLocator    = "http://busdox.org/serviceMetadata/locator/1.0/"
	actionPrefix = "http://busdox.org/serviceMetadata/ManageParticipantIdentifierService/1.0/:"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

type operation struct {
	name   string
	action string
}

var (
	opCreate = operation{name: "create_participant", action: actionPrefix + "createIn"}
	opDelete = operation{name: "delete_participant", action: actionPrefix + "deleteIn"}
)

// SOAPClient calls the ManageParticipantIdentifier service of the locator.
// Calls fail fast with CodeLocator while the circuit breaker is open.
type SOAPClient struct {
	endpoint   string
	smpID      string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *circuit.Breaker
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

var _ Client = (*SOAPClient)(nil)

type Option func(*SOAPClient)

func WithLogger(logger *slog.Logger) Option {
	return func(c *SOAPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *SOAPClient) {
		c.metrics = m
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *SOAPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *SOAPClient) {
		if b != nil {
			c.breaker = b
		}
	}
}

// NewSOAPClient builds a client for cfg.URL announcing cfg.SMPID.
func NewSOAPClient(cfg config.Locator, opts ...Option) (*SOAPClient, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("locator url %q must be an absolute URL", cfg.URL)
	}
	if strings.TrimSpace(cfg.SMPID) == "" {
		return nil, errors.New("locator smp id is required")
	}
	c := &SOAPClient{
		endpoint:   strings.TrimSuffix(cfg.URL, "/") + "/manageparticipantidentifier",
		smpID:      cfg.SMPID,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		logger:     slog.Default(),
		tracer:     otel.Tracer("smp/locator"),
		breaker: circuit.New("locator",
			circuit.WithFailureThreshold(cfg.Breaker.FailureThreshold),
			circuit.WithSuccessThreshold(cfg.Breaker.SuccessThreshold),
			circuit.WithCooldown(cfg.Breaker.Cooldown),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RegisterParticipant creates the participant's DNS entry pointing at this registry.
func (c *SOAPClient) RegisterParticipant(ctx context.Context, pid id.ParticipantID) error {
	return c.call(ctx, opCreate, pid)
}

// DeregisterParticipant removes the participant's entry. A participant the
// locator does not know counts as deregistered.
func (c *SOAPClient) DeregisterParticipant(ctx context.Context, pid id.ParticipantID) error {
	return c.call(ctx, opDelete, pid)
}

func (c *SOAPClient) call(ctx context.Context, op operation, pid id.ParticipantID) error {
	ctx, span := c.tracer.Start(ctx, "locator."+op.name, trace.WithAttributes(
		attribute.String("participant_id", pid.URI()),
		attribute.String("smp_id", c.smpID),
	))
	defer span.End()

	if !c.breaker.Allow() {
		span.SetStatus(codes.Error, "circuit open")
		c.metrics.ObserveLocatorCall(op.name, "circuit_open", 0)
		return dErrors.Newf(dErrors.CodeLocator, "locator unavailable: circuit open, %s for %s not attempted", op.name, pid)
	}

	start := time.Now()
	err := c.send(ctx, op, pid)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		// Cancellation is the caller giving up, not the locator failing.
		if ctx.Err() == nil {
			c.recordFailure(ctx)
		}
	} else {
		c.recordSuccess(ctx)
	}
	c.metrics.ObserveLocatorCall(op.name, outcome, time.Since(start))

	if err != nil {
		c.logger.WarnContext(ctx, "locator call failed",
			"operation", op.name,
			"participant_id", pid.URI(),
			"error", err,
		)
		if dErrors.HasCode(err, dErrors.CodeLocator) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeLocator, "locator "+op.name+" failed")
	}
	return nil
}

func (c *SOAPClient) recordFailure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.metrics.SetLocatorBreakerOpen(true)
		c.logger.WarnContext(ctx, "locator circuit breaker opened")
	}
}

func (c *SOAPClient) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.metrics.SetLocatorBreakerOpen(false)
		c.logger.InfoContext(ctx, "locator circuit breaker closed")
	}
}

func (c *SOAPClient) send(ctx context.Context, op operation, pid id.ParticipantID) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := encodeRequest(op, c.smpID, pid)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+op.action+`"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read locator response: %w", err)
	}
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	f, err := decodeFault(body)
	if err != nil {
		return fmt.Errorf("locator returned status %d: %w", resp.StatusCode, err)
	}
	if op == opDelete && f.isNotFound() {
		c.logger.InfoContext(ctx, "locator does not know participant, treating delete as done",
			"participant_id", pid.URI())
		return nil
	}
	return dErrors.Newf(dErrors.CodeLocator, "locator rejected %s for %s: %s", op.name, pid, f.String)
}

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soap:Envelope"`
	NS      string      `xml:"xmlns:soap,attr"`
	Body    requestBody `xml:"soap:Body"`
}

type requestBody struct {
	Request participantRequest
}

type participantRequest struct {
	XMLName     xml.Name
	Participant participantIdentifier `xml:"http://busdox.org/transport/identifiers/1.0/ ParticipantIdentifier"`
	SMPID       string                `xml:"ServiceMetadataPublisherID"`
}

type participantIdentifier struct {
	Scheme string `xml:"scheme,attr"`
	Value  string `xml:",chardata"`
}

func encodeRequest(op operation, smpID string, pid id.ParticipantID) ([]byte, error) {
	element := "CreateParticipantIdentifier"
	if op == opDelete {
		element = "DeleteParticipantIdentifier"
	}
	env := requestEnvelope{
		NS: nsSOAP,
		Body: requestBody{Request: participantRequest{
			XMLName:     xml.Name{Space: nsLocator, Local: element},
			Participant: participantIdentifier{Scheme: pid.Scheme, Value: pid.Value},
			SMPID:       smpID,
		}},
	}
	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode locator request: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

type responseEnvelope struct {
	Body struct {
		Fault *fault `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"detail"`
}

// isNotFound reports whether the fault detail carries a NotFoundFault.
func (f *fault) isNotFound() bool {
	dec := xml.NewDecoder(bytes.NewReader(f.Detail.Inner))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "NotFoundFault" {
			return true
		}
	}
}

func decodeFault(body []byte) (*fault, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode soap response: %w", err)
	}
	if env.Body.Fault == nil {
		return nil, errors.New("soap response carries no fault")
	}
	return env.Body.Fault, nil
}
