package audit

import (
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers changes to what the registry publishes about
	// a participant. These need durable storage.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected writes and anything that should page
	// an operator.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine saga bookkeeping.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from registry logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// ParticipantID is the URI form of the participant the action touched.
	ParticipantID string
	// UserID is the acting user when known, as a UUID string.
	UserID      string
	Action      string
	Reason      string
	Severity    Severity
	OperationID string // Registration run, for correlating saga steps
	RequestID   string // Correlation ID from HTTP request context
}

type AuditEvent string

const (
	// Service group lifecycle
	EventServiceGroupCreated AuditEvent = "service_group_created"
	EventServiceGroupUpdated AuditEvent = "service_group_updated"
	EventServiceGroupDeleted AuditEvent = "service_group_deleted"

	// Per-participant metadata
	EventServiceMetadataSaved   AuditEvent = "service_metadata_saved"
	EventServiceMetadataDeleted AuditEvent = "service_metadata_deleted"
	EventBusinessCardSaved      AuditEvent = "business_card_saved"
	EventBusinessCardDeleted    AuditEvent = "business_card_deleted"

	// Registration saga
	EventRegistrationCompensated AuditEvent = "registration_compensated"
	EventInconsistentState       AuditEvent = "inconsistent_state"

	// Access
	EventUnauthorizedWrite AuditEvent = "unauthorized_write"

	// Configuration
	EventTransportProfileDeleted AuditEvent = "transport_profile_deleted"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventServiceGroupCreated:     CategoryCompliance,
	EventServiceGroupUpdated:     CategoryCompliance,
	EventServiceGroupDeleted:     CategoryCompliance,
	EventServiceMetadataSaved:    CategoryCompliance,
	EventServiceMetadataDeleted:  CategoryCompliance,
	EventBusinessCardSaved:       CategoryCompliance,
	EventBusinessCardDeleted:     CategoryCompliance,
	EventTransportProfileDeleted: CategoryCompliance,

	EventInconsistentState: CategorySecurity,
	EventUnauthorizedWrite: CategorySecurity,

	EventRegistrationCompensated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Severity levels for security events.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Normalize fills in the category from the action and a timestamp when the
// emitter left them empty.
func (e Event) Normalize(now time.Time) Event {
	if e.Category == "" {
		e.Category = AuditEvent(e.Action).Category()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	if e.Severity == "" {
		e.Severity = SeverityInfo
	}
	return e
}
