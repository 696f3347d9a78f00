package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuditEvent_Category(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventServiceGroupCreated.Category())
	assert.Equal(t, CategorySecurity, EventInconsistentState.Category())
	assert.Equal(t, CategoryOperations, EventRegistrationCompensated.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("something_new").Category())
}

func TestEvent_Normalize(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("fills defaults", func(t *testing.T) {
		e := Event{Action: string(EventUnauthorizedWrite)}.Normalize(now)
		assert.Equal(t, CategorySecurity, e.Category)
		assert.Equal(t, now, e.Timestamp)
		assert.Equal(t, SeverityInfo, e.Severity)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		e := Event{
			Action:    string(EventInconsistentState),
			Category:  CategoryCompliance,
			Timestamp: earlier,
			Severity:  SeverityCritical,
		}.Normalize(now)
		assert.Equal(t, CategoryCompliance, e.Category)
		assert.Equal(t, earlier, e.Timestamp)
		assert.Equal(t, SeverityCritical, e.Severity)
	})
}
